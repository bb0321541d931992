package lookup

import (
	"fmt"
	"strings"
)

// Policy decides how a failed lookup is surfaced.
type Policy int

const (
	// FailFast panics with the lookup error.
	FailFast Policy = iota
	// Placeholder reports the error and returns "*key*".
	Placeholder
)

// String returns the configuration name of the policy.
func (p Policy) String() string {
	switch p {
	case FailFast:
		return "failfast"
	case Placeholder:
		return "placeholder"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy parses a configuration value ("failfast" or "placeholder", case-insensitive).
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "failfast", "fail_fast", "fail-fast":
		return FailFast, nil
	case "placeholder", "":
		return Placeholder, nil
	default:
		return 0, fmt.Errorf("unknown value policy %q", s)
	}
}

// PlaceholderFor returns the stand-in rendered for a missing key.
func PlaceholderFor(key string) string {
	return "*" + key + "*"
}

// Apply turns a lookup result into the string handed to the consumer.
// Under FailFast a non-nil err panics; under Placeholder onFailure (if set) receives err once
// and the placeholder for key is returned.
func (p Policy) Apply(key, value string, err error, onFailure func(error)) string {
	if err == nil {
		return value
	}
	if p == FailFast {
		panic(err)
	}
	if onFailure != nil {
		onFailure(err)
	}
	return PlaceholderFor(key)
}
