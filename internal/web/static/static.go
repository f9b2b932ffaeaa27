// Package static embeds the signup web UI.
package static

import "embed"

// FS exposes web static assets for HTTP serving.
//
//go:embed *.html *.css *.js
var FS embed.FS
