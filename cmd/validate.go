package cmd

import (
	"fmt"
	"strings"

	"langusta/core/payload"
	"langusta/core/reconcile"

	"github.com/spf13/cobra"
)

var (
	validatePlatform  string
	validateLanguages []string
)

// validateCmd checks a document without touching any store.
var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a localization document",
	Long: `Decodes a JSON or YAML document for a platform and checks that every required language
is present. Prints the version and key count per language.

Examples:
  langusta validate localizations.json
  langusta validate --platform ios --languages cs,en localizations.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validatePlatform, "platform", "", "Platform overlay to apply (defaults to the configured platform)")
	validateCmd.Flags().StringSliceVar(&validateLanguages, "languages", nil, "Required languages (defaults to the configured languages)")
	RootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, l, err := loadRuntime()
	if err != nil {
		return err
	}
	defer l.Sync()

	platform := validatePlatform
	if platform == "" {
		platform = cfg.Langusta.Platform
	}
	languages := validateLanguages
	if len(languages) == 0 {
		languages = cfg.Langusta.Languages
	}

	data, err := readDocument(args[0])
	if err != nil {
		return err
	}

	p, err := payload.Decode(data, platform)
	if err != nil {
		return err
	}
	if missing := reconcile.MissingLanguages(p, languages); len(missing) > 0 {
		return &reconcile.MissingLanguagesError{Missing: missing}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "version:  %s\n", p.Version)
	fmt.Fprintf(out, "platform: %s\n", platform)
	counts := p.Localizations.KeyCount()
	for _, lang := range p.Localizations.Languages() {
		fmt.Fprintf(out, "  %-6s %d keys\n", lang, counts[lang])
	}
	fmt.Fprintf(out, "required: %s (ok)\n", strings.Join(languages, ", "))
	return nil
}
