// Package migrations embeds the SQL schema migrations so the server and the
// migrate command ship them inside the binary.
package migrations

import "embed"

// FS holds every *.up.sql and *.down.sql file of this directory
//
//go:embed *.sql
var FS embed.FS
