// Package migrations embeds the schema migration files. Each file is
// forward-only DDL; files are applied in filename order.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
