// Package snapshot renders a tree of styled boxes into a single raster
// image.
//
// # Overview
//
// snapshot reproduces how a group of laid-out elements looks without a
// layout engine: the caller supplies each box's rectangle and computed
// paint attributes, and snapshot paints shadows, backgrounds, borders and
// wrapped text into a surface that is exactly large enough to hold the
// root box together with its shadows and outline.
//
// # Quick Start
//
//	import "github.com/gogpu/snapshot"
//
//	root := &snapshot.StyledBox{
//	    Rect:            snapshot.R(0, 0, 200, 80),
//	    BackgroundColor: color.White,
//	    Radius:          snapshot.UniformRadius(8),
//	    Shadows:         snapshot.ParseShadowList("rgba(0, 0, 0, 0.3) 0px 4px 12px 0px"),
//	}
//
//	s, err := snapshot.Snapshot(root)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//	s.SavePNG("card.png")
//
// Trees can also be built from any document model that implements
// [Provider], using [Build] or [Capture].
//
// # Paint Order
//
// Every box paints its shadows (last declared first, so the first shadow
// ends up on top), then its background, then its borders, then its text.
// Children follow in order, depth-first, so later siblings cover earlier
// ones.
//
// # Coordinate System
//
// Box rectangles are in page coordinates. A box lands on the surface at
//
//	surface = box - root + origin
//
// where origin is [Geometry] OriginOffsetX/Y, non-zero when the root's
// shadows or outline extend to its left or top. Only the root's shadows
// and outline grow the surface; descendants that overflow are clipped.
//
// # Unsupported Features
//
// Background images and gradients, inset shadows and outline strokes are
// not painted. Such branches are logged at debug level with
// [ErrNotSupported].
//
// # Logging
//
// Logging is silent by default. Use [SetLogger] to route snapshot and gg
// diagnostics to a [log/slog] handler.
package snapshot
