// Package version orders the opaque version strings carried by localization payloads.
//
// Versions are split into segments on '.', '-', '_' and '+'. Numeric segments are compared as
// integers, so "10" sorts after "9" and "1.10" after "1.9". Non-numeric segments are compared
// lexicographically and always sort after numeric ones. When one version is a prefix of the
// other, the extra segments decide: trailing zeros are ignored ("1.0" equals "1"), a non-zero
// number makes the longer one newer ("1.0.1" after "1.0") and a text segment marks a pre-release
// ("2.0-rc1" before "2.0").
//
// # Usage
//
//	if version.Newer(remote.Version, stored) {
//	    // accept remote payload
//	}
package version
