package reconcile

import (
	"fmt"

	"langusta/core/payload"
	"langusta/core/store"
	"langusta/core/version"
)

// Action is the decision taken by a plan.
type Action string

const (
	// ActionUseBaseline persists and activates the baseline.
	ActionUseBaseline Action = "use_baseline"
	// ActionUseStored activates the stored record.
	ActionUseStored Action = "use_stored"
	// ActionAccept merges, persists and activates a remote document.
	ActionAccept Action = "accept"
	// ActionDiscard leaves everything untouched.
	ActionDiscard Action = "discard"
)

// Plan is a reconciliation decision before it is applied.
type Plan struct {
	Action Action
	// Reason explains the decision for logs.
	Reason string
	// Version and Localizations are the state to persist and/or activate.
	// Empty for ActionDiscard.
	Version       string
	Localizations payload.Localizations
}

// PlanBaseline decides between the baseline and a stored record (nil if none).
func PlanBaseline(baseline *payload.Payload, stored *store.Record) Plan {
	if stored != nil && version.Newer(stored.Version, baseline.Version) {
		return Plan{
			Action:        ActionUseStored,
			Reason:        fmt.Sprintf("stored version %s is newer than baseline %s", stored.Version, baseline.Version),
			Version:       stored.Version,
			Localizations: stored.Localizations,
		}
	}

	reason := "no stored record"
	if stored != nil {
		reason = fmt.Sprintf("stored version %s is not newer than baseline %s", stored.Version, baseline.Version)
	}
	return Plan{
		Action:        ActionUseBaseline,
		Reason:        reason,
		Version:       baseline.Version,
		Localizations: baseline.Localizations,
	}
}

// PlanRefresh decides whether remote supersedes the stored version. An accepted plan carries
// the remote entries merged over active.
func PlanRefresh(remote *payload.Payload, storedVersion string, active payload.Localizations) Plan {
	if !version.Newer(remote.Version, storedVersion) {
		return Plan{
			Action: ActionDiscard,
			Reason: fmt.Sprintf("remote version %s is not newer than %s", remote.Version, storedVersion),
		}
	}
	return Plan{
		Action:        ActionAccept,
		Reason:        fmt.Sprintf("remote version %s is newer than %s", remote.Version, storedVersion),
		Version:       remote.Version,
		Localizations: active.Merge(remote.Localizations),
	}
}

// MissingLanguages returns the supported languages absent from p, in the given order.
func MissingLanguages(p *payload.Payload, languages []string) []string {
	var missing []string
	for _, lang := range languages {
		if !p.Localizations.Has(lang) {
			missing = append(missing, lang)
		}
	}
	return missing
}
