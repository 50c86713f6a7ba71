// Package migrations embeds the goose migration scripts so the server can
// migrate on startup without a separate tool.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
