package reconcile

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"langusta/core/payload"

	"go.uber.org/zap"
)

// Origin tells where the active set came from.
type Origin string

const (
	// OriginBaseline is the bundled document.
	OriginBaseline Origin = "baseline"
	// OriginStored is a persisted record newer than the baseline.
	OriginStored Origin = "stored"
	// OriginRemote is a merged remote update.
	OriginRemote Origin = "remote"
)

// State is an immutable snapshot of the active set.
type State struct {
	// Version is the version of the last accepted document.
	Version string
	// Localizations backs lookups. It must not be mutated.
	Localizations payload.Localizations
	// Origin records which source produced this state.
	Origin Origin
	// UpdatedAt is when this state became active.
	UpdatedAt time.Time
}

// Outcome classifies a refresh.
type Outcome string

const (
	// OutcomeAccepted means the remote document was newer and has been merged and persisted.
	OutcomeAccepted Outcome = "accepted"
	// OutcomeDiscarded means the remote document was not newer than the stored version.
	OutcomeDiscarded Outcome = "discarded"
	// OutcomeNoData means the data source returned nothing or failed.
	OutcomeNoData Outcome = "no_data"
	// OutcomeInvalid means the remote document could not be decoded.
	OutcomeInvalid Outcome = "invalid"
	// OutcomeStoreError means persisting the accepted document failed; nothing changed.
	OutcomeStoreError Outcome = "store_error"
)

// Result describes a completed refresh.
type Result struct {
	Outcome Outcome `json:"outcome"`
	// PreviousVersion is the version compared against.
	PreviousVersion string `json:"previous_version"`
	// RemoteVersion is the decoded remote version, empty when nothing was decoded.
	RemoteVersion string `json:"remote_version,omitempty"`
	// Shared is true when the result came from another caller's in-flight refresh.
	Shared bool `json:"shared"`
	// Err holds the absorbed failure for no_data, invalid and store_error outcomes.
	Err error `json:"-"`
}

// Changed reports whether the active set was replaced.
func (r Result) Changed() bool {
	return r.Outcome == OutcomeAccepted
}

// Options configures an Engine.
type Options struct {
	// Platform selects the overlay merged over the common section.
	Platform string
	// Languages lists the supported languages; each must be present in the baseline.
	Languages []string
	// Logger receives decision logs. Nil disables logging.
	Logger *zap.Logger
}

// ErrMissingLanguages matches every MissingLanguagesError.
var ErrMissingLanguages = errors.New("reconcile: baseline is missing supported languages")

// MissingLanguagesError is returned when the baseline lacks a supported language.
type MissingLanguagesError struct {
	Missing []string
}

func (e *MissingLanguagesError) Error() string {
	return fmt.Sprintf("baseline is missing supported languages: %s", strings.Join(e.Missing, ", "))
}

func (e *MissingLanguagesError) Is(target error) bool { return target == ErrMissingLanguages }
