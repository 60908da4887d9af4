// Package migrations holds the spectrum library schema. Files are named
// NNN_description.up.sql / .down.sql and applied in version order.
package migrations

import "embed"

// FS holds the migration scripts.
//
//go:embed *.up.sql *.down.sql
var FS embed.FS
