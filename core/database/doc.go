// Package database opens the relational database behind the SQL version store.
//
// It wraps GORM and selects the dialector from Config.Driver:
//   - mysql: DSN built from host, port, credentials and name with connect, read and write timeouts
//   - sqlite: Name is the file path, ":memory:" for an ephemeral database
//
// The connection is pinged before it is returned, so callers can treat a database as optional
// and fall back to another store when Connect fails.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logg.Warn("Database unavailable, using memory store", zap.Error(err))
//	}
package database
