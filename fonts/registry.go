package fonts

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// FallbackFamily is used when none of a font's families is registered.
const FallbackFamily = "sans-serif"

// genericAliases maps CSS generic families without a bundled face to the
// family that serves them.
var genericAliases = map[string]string{
	"serif":         "sans-serif",
	"system-ui":     "sans-serif",
	"ui-sans-serif": "sans-serif",
	"ui-serif":      "sans-serif",
	"cursive":       "sans-serif",
	"fantasy":       "sans-serif",
	"go":            "sans-serif",
	"ui-monospace":  "monospace",
	"go mono":       "monospace",
}

type variant struct {
	bold   bool
	italic bool
}

// entry holds font data for one family variant. Built-in fonts are parsed
// on first use.
type entry struct {
	data   []byte
	source *text.FontSource
}

type faceKey struct {
	source *text.FontSource
	size   float64
}

// Registry maps font families to font data and caches faces.
// Registry is safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	families map[string]map[variant]*entry
	faces    map[faceKey]text.Face
}

// NewRegistry returns a registry preloaded with the Go fonts serving the
// "sans-serif" and "monospace" generic families.
func NewRegistry() *Registry {
	r := &Registry{
		families: make(map[string]map[variant]*entry),
		faces:    make(map[faceKey]text.Face),
	}
	r.add("sans-serif", variant{}, goregular.TTF)
	r.add("sans-serif", variant{bold: true}, gobold.TTF)
	r.add("sans-serif", variant{italic: true}, goitalic.TTF)
	r.add("sans-serif", variant{bold: true, italic: true}, gobolditalic.TTF)
	r.add("monospace", variant{}, gomono.TTF)
	r.add("monospace", variant{bold: true}, gomonobold.TTF)
	r.add("monospace", variant{italic: true}, gomonoitalic.TTF)
	r.add("monospace", variant{bold: true, italic: true}, gomonobolditalic.TTF)
	return r
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the shared registry used when no registry is
// configured explicitly.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

func (r *Registry) add(family string, v variant, data []byte) {
	family = normalizeFamily(family)
	if r.families[family] == nil {
		r.families[family] = make(map[variant]*entry)
	}
	r.families[family][v] = &entry{data: data}
}

// Register adds TTF/OTF data for a family variant. The data is parsed
// immediately so broken fonts are reported here rather than at paint time.
func (r *Registry) Register(family string, style Style, weight Weight, data []byte) error {
	src, err := text.NewFontSource(data)
	if err != nil {
		return fmt.Errorf("fonts: register %q: %w", family, err)
	}

	v := variant{bold: weight.IsBold(), italic: style != StyleNormal}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.add(family, v, data)
	r.families[normalizeFamily(family)][v].source = src
	return nil
}

// RegisterFile reads a font file and registers it as the regular variant
// of family.
func (r *Registry) RegisterFile(family, path string) error {
	// #nosec G304 -- font path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("fonts: read %s: %w", path, err)
	}
	return r.Register(family, StyleNormal, WeightNormal, data)
}

// Families returns the registered family names.
func (r *Registry) Families() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.families))
	for name := range r.families {
		names = append(names, name)
	}
	return names
}

// Face returns a face for f, trying its families in order, then
// [FallbackFamily]. Faces are cached per font source and size.
func (r *Registry) Face(f Font) (text.Face, error) {
	size := f.Size
	if size <= 0 {
		size = DefaultSize
	}
	want := variant{bold: f.Weight.IsBold(), italic: f.Style != StyleNormal}

	r.mu.Lock()
	defer r.mu.Unlock()

	e := r.lookup(f.Families, want)
	if e == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFamily, strings.Join(f.Families, ", "))
	}
	if e.source == nil {
		src, err := text.NewFontSource(e.data)
		if err != nil {
			return nil, fmt.Errorf("fonts: load face: %w", err)
		}
		e.source = src
	}

	key := faceKey{source: e.source, size: size}
	face, ok := r.faces[key]
	if !ok {
		face = e.source.Face(size)
		r.faces[key] = face
	}
	return face, nil
}

// lookup finds the best entry for the families. Callers hold r.mu.
func (r *Registry) lookup(families []string, want variant) *entry {
	candidates := make([]string, 0, len(families)+1)
	candidates = append(candidates, families...)
	candidates = append(candidates, FallbackFamily)
	for _, fam := range candidates {
		name := normalizeFamily(fam)
		variants, ok := r.families[name]
		if !ok {
			alias, aliased := genericAliases[name]
			if !aliased {
				continue
			}
			if variants, ok = r.families[alias]; !ok {
				continue
			}
		}
		if e, ok := variants[want]; ok {
			return e
		}
		// No synthetic styles: drop italic first, then bold.
		for _, v := range []variant{{bold: want.bold}, {italic: want.italic}, {}} {
			if e, ok := variants[v]; ok {
				return e
			}
		}
	}
	return nil
}

// Measure returns the advance width of s in f. Unresolvable fonts measure
// as zero.
func (r *Registry) Measure(s string, f Font) float64 {
	if s == "" {
		return 0
	}
	face, err := r.Face(f)
	if err != nil {
		return 0
	}
	return face.Advance(s)
}

func normalizeFamily(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
