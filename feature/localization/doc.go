// Package localization exposes a running Langusta instance over HTTP.
//
// Routes:
//   - GET  /localization/status     active version, language and key counts
//   - GET  /localization/:key       value for key in the active language; repeated ?arg= values
//     are substituted in order
//   - POST /localization/refresh    pulls the remote document now (API key protected)
//   - PUT  /localization/language   switches the active language (API key protected)
//
// Lookups over HTTP always use the error-returning form, so a missing key is a 404 rather than a
// placeholder string.
package localization
