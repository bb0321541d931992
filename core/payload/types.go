package payload

import (
	"maps"
	"slices"
)

// Platform codes understood by the decoder. Any other code is accepted as a custom overlay key.
const (
	// PlatformUniversal selects the common section only.
	PlatformUniversal = "_"
	// PlatformIOS is the iOS overlay key.
	PlatformIOS = "ios"
	// PlatformAndroid is the Android overlay key.
	PlatformAndroid = "an"
)

// Entries maps localization keys to their format strings.
type Entries map[string]string

// Localizations maps language codes to their entries.
type Localizations map[string]Entries

// Payload is a decoded, platform-normalized localization document.
type Payload struct {
	// Version orders payloads; see package version.
	Version string
	// Localizations holds the merged entries per language.
	Localizations Localizations
}

// Languages returns the language codes present, sorted.
func (l Localizations) Languages() []string {
	return slices.Sorted(maps.Keys(l))
}

// Has reports whether the language is present.
func (l Localizations) Has(language string) bool {
	_, ok := l[language]
	return ok
}

// Clone returns a deep copy.
func (l Localizations) Clone() Localizations {
	if l == nil {
		return nil
	}
	out := make(Localizations, len(l))
	for lang, entries := range l {
		out[lang] = maps.Clone(entries)
		if out[lang] == nil {
			out[lang] = Entries{}
		}
	}
	return out
}

// Merge returns a new set with other's entries written over l per language.
// Languages missing from other are carried over unchanged; neither input is modified.
func (l Localizations) Merge(other Localizations) Localizations {
	out := l.Clone()
	if out == nil {
		out = make(Localizations, len(other))
	}
	for lang, entries := range other {
		merged, ok := out[lang]
		if !ok {
			merged = make(Entries, len(entries))
			out[lang] = merged
		}
		for key, value := range entries {
			merged[key] = value
		}
	}
	return out
}

// KeyCount returns the number of entries per language.
func (l Localizations) KeyCount() map[string]int {
	counts := make(map[string]int, len(l))
	for lang, entries := range l {
		counts[lang] = len(entries)
	}
	return counts
}
