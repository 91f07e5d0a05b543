// Package migrations embeds the SQL migrations so the binaries run them without a checkout.
package migrations

import "embed"

//go:embed postgres/*.sql
var Postgres embed.FS

const PostgresDir = "postgres"
