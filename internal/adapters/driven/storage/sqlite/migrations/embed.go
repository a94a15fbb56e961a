// Package migrations holds the schema for the SQLite aggregate store.
// Files are applied in name order by sqlite.Store when it opens.
package migrations

import "embed"

// FS holds the *.up.sql and *.down.sql files.
//
//go:embed *.sql
var FS embed.FS
