// Package appfs ships the static assets the binaries need at runtime:
// database migrations, the authored course catalog and the email templates.
package appfs

import "embed"

//go:embed migrations assets
var FS embed.FS
