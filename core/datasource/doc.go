// Package datasource supplies localization documents to the reconcile engine.
//
// A DataSource has two halves with different contracts:
//
//   - Baseline returns the document bundled with the application. It is read synchronously
//     and must always succeed; a failure here is fatal for initialization.
//   - LoadRemote fetches a newer document. Returning nil bytes with a nil error means "no data
//     available"; errors are wrapped in TransportError and absorbed by the engine.
//
// The remote request carries optional filters (platform, language, current version) so a
// server can trim or skip the response. Empty filters are not sent.
//
// # Implementations
//
//   - File / Embedded / Static: baseline readers.
//   - HTTP: remote documents over HTTP(S) with a bounded client timeout.
//   - Object: remote documents stored in an S3/MinIO bucket (core/storage).
//   - Composite: combines one baseline reader with one remote loader.
package datasource
