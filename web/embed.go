// Package web embeds the HTML shells and static assets served by the HTTP
// handler.
package web

import "embed"

//go:embed *.html static
var Files embed.FS
