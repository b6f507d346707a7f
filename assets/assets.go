// Package assets embeds the built calculator front-end.
package assets

import _ "embed"

// Index is the minified single-page application produced by cmd/minify.
//
//go:embed index.html
var Index []byte

// Favicon is the site icon.
//
//go:embed favicon.svg
var Favicon []byte
