// Package database handles connections to the account and ledger store.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly configure
// MySQL connections based on the application's configuration. A sqlite driver is
// supported for local development and package tests.
//
// # Connect
//
// The generic Connect function establishes a connection to the database. The
// uniqueness constraint on the donation order table is what backs the
// at-most-once crediting guarantee, so schema migration happens in the
// account feature, not here.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
