// Package migrations embeds the schema and seed migrations applied at
// startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
