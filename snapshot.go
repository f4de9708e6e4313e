package snapshot

import "fmt"

// Snapshot paints the tree rooted at root into a new Surface. The surface
// is large enough for the root box, its shadows and its outline; the root
// lands at the surface's origin offset and descendants keep their
// position relative to it.
//
// The caller owns the returned Surface and should Close it when done.
func Snapshot(root *StyledBox, opts ...Option) (*Surface, error) {
	g, err := Measure(root)
	if err != nil {
		return nil, fmt.Errorf("snapshot: measure: %w", err)
	}
	s := NewSurface(g, opts...)
	if err := Render(root, s, g); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("snapshot: render: %w", err)
	}
	return s, nil
}
