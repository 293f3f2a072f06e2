// Package migrations provides embedded SQL migration files, applied at
// server startup and by integration tests.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
