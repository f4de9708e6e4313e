// Package scene loads box trees for the compositor from TOML or YAML files.
//
// A scene describes the output of a layout pass: every node carries its
// border box in page pixels, inline CSS declarations and the line boxes of
// its text. Inherited properties (color, font, text-transform, lang) flow
// from parent to child the way a browser computes them.
//
//	[root]
//	rect = [0, 0, 240, 120]
//	style = "background: white; border: 1px solid #ccc; border-radius: 8px"
//
//	[[root.children]]
//	rect = [16, 16, 208, 24]
//	style = "font: bold 16px sans-serif; color: #333"
//	text = [{ content = "Hello", lines = [[16, 16, 208, 24]] }]
//
// The same document in YAML uses the same keys.
package scene
