// Package store persists the last accepted localization version and its mapping.
//
// The Store interface is a plain key-value contract: it has no opinion on which version wins,
// that decision belongs to the reconcile engine. Save writes the version and the mapping as a
// single atomic unit so a reader can never observe a version paired with another version's data.
//
// # Implementations
//
//   - Memory: process-local, for tests and ephemeral clients.
//   - SQL: a single row per namespace in the langusta_records table (gorm; MySQL or SQLite).
//   - Redis: a hash per namespace written inside MULTI/EXEC.
//
// # Usage
//
//	st := store.NewSQL(db, "mobile")
//	if err := st.Migrate(ctx); err != nil { ... }
//	rec, err := store.LoadRecord(ctx, st)
package store
