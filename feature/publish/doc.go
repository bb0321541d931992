// Package publish is the server side of localization syncing.
//
// It serves the current document from object storage to clients and lets editors upload new
// revisions. Clients send their platform, language and current version:
//
//	GET /localizations?platform=ios&language=cs&version=41
//
// and receive the document trimmed to that platform and language, or 204 No Content when the
// published version is not newer than theirs. Without a language parameter the Accept-Language
// header is matched against the published languages.
//
// Uploads (PUT /localizations, JSON or YAML) are decoded before they are stored, must carry a
// newer version unless forced, and push the previous revision to the archive/ prefix. The archive
// can be listed and pruned.
package publish
