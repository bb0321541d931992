package lookup

import (
	"errors"
	"fmt"
)

var (
	// ErrLanguageNotFound matches every LanguageNotFoundError.
	ErrLanguageNotFound = errors.New("lookup: language not found")
	// ErrKeyNotFound matches every KeyNotFoundError.
	ErrKeyNotFound = errors.New("lookup: key not found")
	// ErrArgumentMismatch matches every ArgumentMismatchError.
	ErrArgumentMismatch = errors.New("lookup: argument count mismatch")
)

// LanguageNotFoundError is returned when the active language has no entries.
type LanguageNotFoundError struct {
	Language string
}

func (e *LanguageNotFoundError) Error() string {
	return fmt.Sprintf("language '%s' wasn't found", e.Language)
}

func (e *LanguageNotFoundError) Is(target error) bool { return target == ErrLanguageNotFound }

// KeyNotFoundError is returned when a key is missing in the active language.
type KeyNotFoundError struct {
	Key      string
	Language string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("localization for given key '%s' wasn't found in '%s' language", e.Key, e.Language)
}

func (e *KeyNotFoundError) Is(target error) bool { return target == ErrKeyNotFound }

// ArgumentMismatchError is returned when the argument count does not match the placeholders.
type ArgumentMismatchError struct {
	Key      string
	Expected int
	Got      int
}

func (e *ArgumentMismatchError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("format expects %d arguments, got %d", e.Expected, e.Got)
	}
	return fmt.Sprintf("localization '%s' expects %d arguments, got %d", e.Key, e.Expected, e.Got)
}

func (e *ArgumentMismatchError) Is(target error) bool { return target == ErrArgumentMismatch }
