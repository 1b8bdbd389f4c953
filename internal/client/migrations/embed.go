// Package migrations embeds the SQL migrations applied to the local client
// state database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
