// Package payload decodes and encodes localization documents.
//
// A document carries a version and, per language, a common section ("_") plus optional
// platform overlays:
//
//	{
//	  "version": "3",
//	  "localizations": {
//	    "cs": { "_": {"greeting": "Ahoj %@"}, "ios": {"greeting": "Nazdar %@"} },
//	    "en": { "_": {"greeting": "Hello %@"} }
//	  }
//	}
//
// Decoding normalizes the document for one platform: the platform overlay is merged over the
// common section and wins on key collision. Languages carrying plain string entries instead of
// sections (as partial refresh documents do) are taken as already normalized.
//
// # Publish side
//
// Filter trims a raw document to one language and/or platform for server-side filtering, and
// FromYAML converts YAML authoring files of the same shape into wire JSON.
package payload
