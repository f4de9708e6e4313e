package scene

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/snapshot"
)

// ErrUnknownFormat is returned for scene files that are neither TOML nor
// YAML.
var ErrUnknownFormat = errors.New("scene: unknown format")

// ErrNoRoot is returned for documents without a root node.
var ErrNoRoot = errors.New("scene: document has no root node")

// Format is a scene file encoding.
type Format uint8

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Node is one box of a scene file.
type Node struct {
	// Rect is x, y, width, height in page pixels.
	Rect [4]float64 `toml:"rect" yaml:"rect"`
	// Style holds inline CSS declarations, e.g. "background: #fff; border: 1px solid #ccc".
	Style string `toml:"style" yaml:"style"`
	// Lang is the language tag used for text-transform.
	Lang     string  `toml:"lang" yaml:"lang"`
	Text     []Text  `toml:"text" yaml:"text"`
	Children []*Node `toml:"children" yaml:"children"`
}

// Text is a text fragment with the line boxes it occupies.
type Text struct {
	Content string       `toml:"content" yaml:"content"`
	Lines   [][4]float64 `toml:"lines" yaml:"lines"`
}

type document struct {
	Root *Node `toml:"root" yaml:"root"`
}

// Scene is a decoded scene file. It implements snapshot.Provider for its
// nodes with styles already resolved against their ancestors.
type Scene struct {
	Root   *Node
	styles map[*Node]snapshot.Style
}

var _ snapshot.Provider[*Node] = (*Scene)(nil)

// Load reads and decodes the scene file at path.
func Load(path string) (*Scene, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scene document.
func Parse(data []byte, format Format) (*Scene, error) {
	var doc document
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
			return nil, fmt.Errorf("scene: decode toml: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("scene: decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	if doc.Root == nil {
		return nil, ErrNoRoot
	}
	s := &Scene{Root: doc.Root, styles: make(map[*Node]snapshot.Style)}
	if err := s.resolve(doc.Root, initial); err != nil {
		return nil, err
	}
	return s, nil
}

// resolve computes the style of n and its descendants.
func (s *Scene) resolve(n *Node, parent snapshot.Style) error {
	own, err := parseDeclarations(n.Style)
	if err != nil {
		return err
	}
	if n.Lang != "" {
		own["lang"] = n.Lang
	}
	st := make(snapshot.Style, len(own)+len(inherited))
	for _, prop := range inherited {
		if v, ok := parent[prop]; ok {
			st[prop] = v
		}
	}
	maps.Copy(st, own)
	s.styles[n] = st
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		if err := s.resolve(c, st); err != nil {
			return err
		}
	}
	return nil
}

// Rect implements snapshot.Provider.
func (s *Scene) Rect(n *Node) (snapshot.Rect, error) {
	if n == nil {
		return snapshot.Rect{}, errors.New("scene: nil node")
	}
	return snapshot.R(n.Rect[0], n.Rect[1], n.Rect[2], n.Rect[3]), nil
}

// ComputedStyle implements snapshot.Provider.
func (s *Scene) ComputedStyle(n *Node) snapshot.Style {
	return s.styles[n]
}

// Children implements snapshot.Provider.
func (s *Scene) Children(n *Node) []*Node {
	return n.Children
}

// TextFragments implements snapshot.Provider.
func (s *Scene) TextFragments(n *Node) []snapshot.TextFragment {
	frags := make([]snapshot.TextFragment, 0, len(n.Text))
	for _, t := range n.Text {
		rects := make([]snapshot.Rect, len(t.Lines))
		for i, l := range t.Lines {
			rects[i] = snapshot.R(l[0], l[1], l[2], l[3])
		}
		frags = append(frags, snapshot.TextFragment{Content: t.Content, Rects: rects})
	}
	return frags
}

// Build converts the scene into a StyledBox tree.
func (s *Scene) Build() (*snapshot.StyledBox, error) {
	return snapshot.Build[*Node](s, s.Root)
}
