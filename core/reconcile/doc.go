// Package reconcile decides which localization set is active and keeps it persisted.
//
// The engine reconciles three sources: the baseline document bundled with the application, the
// record persisted in a store.Store, and documents fetched from a remote data source. Every
// decision is first computed as a Plan (a pure function of the inputs) and then applied.
//
// # Initialize
//
// The baseline is read and decoded synchronously; it must be valid and must contain every
// supported language. A stored record strictly newer than the baseline wins and becomes active.
// Otherwise the baseline is persisted and becomes active.
//
// # Refresh
//
// A remote document strictly newer than the stored version is merged over the active set per
// language (remote keys overwrite, absent languages are kept), the merged set is persisted and
// swapped in. Older or equal documents are discarded. Transport and decode failures are absorbed:
// the active set is left untouched and the failure is reported only through the Result.
//
// # Concurrency
//
// The active set is held in an atomic pointer and replaced wholesale, never mutated in place.
// Overlapping Refresh calls share one in-flight reconciliation (singleflight), and every
// persist-and-swap runs under a mutex so a (version, localizations) pair is never interleaved.
//
// # Usage
//
//	engine := reconcile.New(source, st, reconcile.Options{
//	    Platform:  payload.PlatformIOS,
//	    Languages: []string{"cs", "en"},
//	    Logger:    log,
//	})
//	if err := engine.Initialize(ctx); err != nil { ... }
//	res := engine.Refresh(ctx, "")
package reconcile
