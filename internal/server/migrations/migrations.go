// Package migrations embeds the SQL schema for every supported dialect.
// Each dialect lives in its own directory and is applied with goose.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS
