// Package fonts provides the Go font family shared by text measurement and
// the renderers, so measured extents match drawn glyphs.
//
// The fonts ship with golang.org/x/image and are compiled into the binary.
package fonts

import (
	"encoding/base64"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family name the embedded fonts are declared as.
const FontFamily = "Go"

// FallbackFontFamily lists fallbacks for viewers without the embedded font.
const FallbackFontFamily = `Go, Helvetica, Arial, sans-serif`

// RegularTTF returns the Go Regular font data.
func RegularTTF() []byte { return goregular.TTF }

// BoldTTF returns the Go Bold font data.
func BoldTTF() []byte { return gobold.TTF }

// TTF returns the bold or regular font data.
func TTF(bold bool) []byte {
	if bold {
		return gobold.TTF
	}
	return goregular.TTF
}

// Base64 encodings are computed once on first access.
var (
	regularBase64 = sync.OnceValue(func() string { return base64.StdEncoding.EncodeToString(goregular.TTF) })
	boldBase64    = sync.OnceValue(func() string { return base64.StdEncoding.EncodeToString(gobold.TTF) })
)

// TTFBase64 returns the font data as a base64 string for data URLs.
func TTFBase64(bold bool) string {
	if bold {
		return boldBase64()
	}
	return regularBase64()
}
