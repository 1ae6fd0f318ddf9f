// Package migrations embeds the forward-only SQL schema applied by goose at
// server start-up.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
