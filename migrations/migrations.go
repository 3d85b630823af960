// Package migrations embeds the SQL schema used by integration tests and
// local development databases.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
