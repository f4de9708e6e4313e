package blur

// Alpha blurs an 8-bit coverage plane of the given width and height in
// place. Samples outside the plane count as zero coverage, so shapes
// touching the border fade out instead of smearing the edge.
func Alpha(plane []uint8, width, height int, sigma float64) {
	if sigma <= 0 || width <= 0 || height <= 0 || len(plane) < width*height {
		return
	}

	kernel := kernels.get(sigma)
	half := len(kernel) / 2
	temp := make([]float32, width*height)

	// Horizontal pass: plane -> temp.
	for y := 0; y < height; y++ {
		row := plane[y*width : (y+1)*width]
		for x := 0; x < width; x++ {
			var acc float32
			for k, w := range kernel {
				sx := x + k - half
				if sx < 0 || sx >= width {
					continue
				}
				acc += float32(row[sx]) * w
			}
			temp[y*width+x] = acc
		}
	}

	// Vertical pass: temp -> plane.
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			var acc float32
			for k, w := range kernel {
				sy := y + k - half
				if sy < 0 || sy >= height {
					continue
				}
				acc += temp[sy*width+x] * w
			}
			plane[y*width+x] = clampUint8(acc)
		}
	}
}

func clampUint8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}
