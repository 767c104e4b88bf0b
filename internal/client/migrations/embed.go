// Package migrations embeds the client's goose migration scripts.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
