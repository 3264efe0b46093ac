// Package appfs exposes the repo's embedded static files.
package appfs

import "embed"

//go:embed migrations
var FS embed.FS
