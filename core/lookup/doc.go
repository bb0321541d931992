// Package lookup resolves localization keys and substitutes arguments.
//
// Resolution is a pure function over a localization set: it returns the format string for a
// key in a language, or a typed error (LanguageNotFoundError, KeyNotFoundError). Format then
// substitutes arguments into "%@" / "%s" placeholders left to right; "%1$@" style placeholders
// address arguments explicitly and "%%" is a literal percent sign. The number of arguments must
// match the placeholders, otherwise an ArgumentMismatchError is returned and no partial string
// is produced.
//
// # Failure policy
//
// A Policy decides what a failed lookup means to the caller:
//
//   - FailFast: the error is raised as a panic, surfacing integration errors early.
//   - Placeholder: the error is reported to a callback and "*key*" is returned instead.
//
// The policy is applied once, by Policy.Apply, after resolution; resolution itself never
// branches on it.
package lookup
