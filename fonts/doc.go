// Package fonts resolves CSS font descriptions to renderable faces.
//
// A [Font] is parsed from the computed `font` shorthand a browser reports
// for an element, for example:
//
//	f, err := fonts.Parse(`italic 700 16px / 24px "Helvetica Neue", Arial, sans-serif`)
//
// A [Registry] maps family names to font data and hands out cached
// [text.Face] values for a Font. The default registry ships the Go fonts
// (golang.org/x/image/font/gofont) for the generic families, so every Font
// resolves to something drawable:
//
//	face, err := fonts.DefaultRegistry().Face(f)
//
// Custom fonts are added with [Registry.Register] or [Registry.RegisterFile].
package fonts
