package version

import (
	"math/big"
	"strings"
)

// Compare returns -1 if a is older than b, 0 if they are equivalent and 1 if a is newer.
func Compare(a, b string) int {
	as := segments(a)
	bs := segments(b)

	// An empty version is older than anything, including "0".
	switch {
	case len(as) == 0 && len(bs) == 0:
		return 0
	case len(as) == 0:
		return -1
	case len(bs) == 0:
		return 1
	}

	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := compareSegment(as[i], bs[i]); c != 0 {
			return c
		}
	}

	switch {
	case len(as) > len(bs):
		return tail(as[len(bs):])
	case len(as) < len(bs):
		return -tail(bs[len(as):])
	default:
		return 0
	}
}

// tail ranks the extra segments of the longer version against a shorter one sharing its prefix.
// Zero segments are padding, a non-zero number makes it newer and a text segment marks a
// pre-release, which is older.
func tail(extra []string) int {
	for _, seg := range extra {
		n, ok := numeric(seg)
		switch {
		case !ok:
			return -1
		case n.Sign() != 0:
			return 1
		}
	}
	return 0
}

// Newer reports whether candidate is strictly newer than current.
// An empty current version is older than any non-empty candidate.
func Newer(candidate, current string) bool {
	return Compare(candidate, current) > 0
}

func segments(v string) []string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(strings.TrimPrefix(v, "v"), "V")
	if v == "" {
		return nil
	}
	return strings.FieldsFunc(v, func(r rune) bool {
		return r == '.' || r == '-' || r == '_' || r == '+'
	})
}

func compareSegment(a, b string) int {
	an, aNum := numeric(a)
	bn, bNum := numeric(b)

	switch {
	case aNum && bNum:
		return an.Cmp(bn)
	case aNum:
		return -1
	case bNum:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// numeric parses s as an unbounded non-negative integer so date-like versions
// such as "20240131120000" never overflow.
func numeric(s string) (*big.Int, bool) {
	if s == "" {
		return nil, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return nil, false
		}
	}
	n, ok := new(big.Int).SetString(s, 10)
	return n, ok
}
