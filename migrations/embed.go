// Package migrations embeds the SQL migration files so the migrator and the
// integration tests run against the same schema without external paths.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
