package lookup

import (
	"strconv"
	"strings"

	"langusta/core/payload"
)

// Resolve returns the format string stored for key in language.
func Resolve(set payload.Localizations, language, key string) (string, error) {
	entries, ok := set[language]
	if !ok {
		return "", &LanguageNotFoundError{Language: language}
	}
	value, ok := entries[key]
	if !ok {
		return "", &KeyNotFoundError{Key: key, Language: language}
	}
	return value, nil
}

// Format substitutes args into format.
func Format(format string, args []string) (string, error) {
	if !strings.Contains(format, "%") {
		if len(args) != 0 {
			return "", &ArgumentMismatchError{Expected: 0, Got: len(args)}
		}
		return format, nil
	}

	tokens, expected := scan(format)
	if expected != len(args) {
		return "", &ArgumentMismatchError{Expected: expected, Got: len(args)}
	}

	var b strings.Builder
	b.Grow(len(format))
	for _, tok := range tokens {
		if tok.arg < 0 {
			b.WriteString(tok.text)
			continue
		}
		b.WriteString(args[tok.arg])
	}
	return b.String(), nil
}

// token is either literal text (arg < 0) or a reference to an argument index.
type token struct {
	text string
	arg  int
}

// scan splits format into literal and argument tokens and returns how many arguments it needs.
func scan(format string) ([]token, int) {
	var (
		tokens     []token
		literal    strings.Builder
		sequential int
		highest    int
	)

	flush := func() {
		if literal.Len() > 0 {
			tokens = append(tokens, token{text: literal.String(), arg: -1})
			literal.Reset()
		}
	}

	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i+1 >= len(format) {
			literal.WriteByte(c)
			continue
		}

		next := format[i+1]
		switch {
		case next == '%':
			literal.WriteByte('%')
			i++
		case next == '@' || next == 's':
			flush()
			tokens = append(tokens, token{arg: sequential})
			sequential++
			i++
		default:
			if idx, width, ok := positional(format[i+1:]); ok {
				flush()
				tokens = append(tokens, token{arg: idx - 1})
				if idx > highest {
					highest = idx
				}
				i += width
				continue
			}
			literal.WriteByte(c)
		}
	}
	flush()

	return tokens, max(sequential, highest)
}

// positional parses "N$@" or "N$s" and returns N and the consumed width.
func positional(s string) (int, int, bool) {
	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits == 0 || digits+1 >= len(s) || s[digits] != '$' {
		return 0, 0, false
	}
	if verb := s[digits+1]; verb != '@' && verb != 's' {
		return 0, 0, false
	}
	n, err := strconv.Atoi(s[:digits])
	if err != nil || n < 1 {
		return 0, 0, false
	}
	return n, digits + 2, true
}
