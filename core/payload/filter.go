package payload

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Filter trims a raw document to the given language and platform.
// An empty language keeps every language; an empty platform keeps every section.
// When a platform is given, only the common section, that platform's overlay and flat
// string entries survive. Other top-level fields are preserved.
func Filter(data []byte, platform, language string) ([]byte, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, decodeErr(err, "malformed document")
	}

	raw, ok := top["localizations"]
	if !ok {
		return nil, decodeErr(nil, "missing required field %q", "localizations")
	}

	var languages map[string]map[string]json.RawMessage
	if err := json.Unmarshal(raw, &languages); err != nil {
		return nil, decodeErr(err, "malformed localizations")
	}

	filtered := make(map[string]map[string]json.RawMessage, len(languages))
	for lang, sections := range languages {
		if language != "" && lang != language {
			continue
		}
		kept := make(map[string]json.RawMessage, len(sections))
		for key, value := range sections {
			if platform == "" || key == PlatformUniversal || key == platform || !isObject(value) {
				kept[key] = value
			}
		}
		filtered[lang] = kept
	}

	encoded, err := json.Marshal(filtered)
	if err != nil {
		return nil, err
	}
	top["localizations"] = encoded

	return json.Marshal(top)
}

func isObject(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '{':
			return true
		default:
			return false
		}
	}
	return false
}

// yamlDocument is the YAML authoring shape; scalars of any kind decode into the version string.
type yamlDocument struct {
	Version       string                    `yaml:"version"`
	Localizations map[string]map[string]any `yaml:"localizations"`
}

// FromYAML converts a YAML authoring document into wire JSON.
func FromYAML(data []byte) ([]byte, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, decodeErr(err, "malformed yaml document")
	}
	if doc.Version == "" {
		return nil, decodeErr(nil, "missing required field %q", "version")
	}
	if doc.Localizations == nil {
		return nil, decodeErr(nil, "missing required field %q", "localizations")
	}

	out, err := json.Marshal(map[string]any{
		"version":       doc.Version,
		"localizations": doc.Localizations,
	})
	if err != nil {
		return nil, decodeErr(err, "yaml document is not representable as json")
	}
	return out, nil
}
