// Package migrations embeds the goose migration set for Harmony's
// relational JobStore schema (spec.md §6 "Persisted state layout").
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
