// Package migrations embeds the combat log schema migrations applied by goose.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
