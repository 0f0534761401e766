// Package migrations holds the embedded goose SQL migrations for the
// Postgres schema (users, follows, messages).
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
