// Package sqlite provides a SQLite-based implementation of driven.AggregateStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. A period's bucket counts are replaced inside one transaction so readers
// never observe a half-written upload.
//
// # Schema
//
// The schema is managed through versioned migrations stored in the migrations/
// directory. Each migration is a pair of .up.sql and .down.sql files; applied
// versions are recorded in schema_migrations.
//
// # Data Location
//
// NewStore with an empty directory opens a private in-memory database that lives
// as long as the Store. Given a directory, the database is kept in aggregates.db.
package sqlite
