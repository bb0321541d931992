package payload

import (
	"bytes"
	"encoding/json"
)

// document mirrors the wire format with the required fields as pointers so absence is detectable.
type document struct {
	Version       *string                    `json:"version"`
	Localizations map[string]json.RawMessage `json:"localizations"`
}

// Document is the wire shape produced by Encode.
type Document struct {
	Version       string                        `json:"version"`
	Localizations map[string]map[string]Entries `json:"localizations"`
}

// Decode parses raw document bytes and normalizes them for platform.
// Unknown top-level and per-language keys are ignored.
func Decode(data []byte, platform string) (*Payload, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, decodeErr(nil, "empty document")
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, decodeErr(err, "malformed document")
	}
	if doc.Version == nil {
		return nil, decodeErr(nil, "missing required field %q", "version")
	}
	if doc.Localizations == nil {
		return nil, decodeErr(nil, "missing required field %q", "localizations")
	}

	localizations := make(Localizations, len(doc.Localizations))
	for lang, raw := range doc.Localizations {
		entries, err := decodeLanguage(raw, platform)
		if err != nil {
			return nil, decodeErr(err, "language %q", lang)
		}
		localizations[lang] = entries
	}

	return &Payload{
		Version:       *doc.Version,
		Localizations: localizations,
	}, nil
}

// decodeLanguage merges the platform overlay over the common section.
// Plain string values at the language level count as common entries.
func decodeLanguage(raw json.RawMessage, platform string) (Entries, error) {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sections); err != nil {
		return nil, err
	}
	if sections == nil {
		return nil, decodeErr(nil, "language entry is null")
	}

	merged := Entries{}

	// Flat entries first so an explicit "_" section takes precedence over them.
	for key, value := range sections {
		if key == PlatformUniversal || key == platform {
			continue
		}
		var s string
		if json.Unmarshal(value, &s) == nil {
			merged[key] = s
		}
	}

	if common, ok := sections[PlatformUniversal]; ok {
		if err := mergeSection(merged, common); err != nil {
			return nil, decodeErr(err, "common section")
		}
	}

	if platform != "" && platform != PlatformUniversal {
		if overlay, ok := sections[platform]; ok {
			if err := mergeSection(merged, overlay); err != nil {
				return nil, decodeErr(err, "%s section", platform)
			}
		}
	}

	return merged, nil
}

func mergeSection(dst Entries, raw json.RawMessage) error {
	var section Entries
	if err := json.Unmarshal(raw, &section); err != nil {
		return err
	}
	for key, value := range section {
		dst[key] = value
	}
	return nil
}

// Encode writes the payload in wire format with every language's entries in the common section.
// Decoding the result for any platform yields an equal payload.
func Encode(p *Payload) ([]byte, error) {
	doc := Document{
		Version:       p.Version,
		Localizations: make(map[string]map[string]Entries, len(p.Localizations)),
	}
	for lang, entries := range p.Localizations {
		section := entries
		if section == nil {
			section = Entries{}
		}
		doc.Localizations[lang] = map[string]Entries{PlatformUniversal: section}
	}
	return json.Marshal(doc)
}
