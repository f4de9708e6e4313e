// Package blur implements the gaussian blur used for box shadows.
//
// Shadows are rasterized as coverage only, so the blur runs on a single
// 8-bit alpha plane instead of full RGBA pixels:
//   - Gaussian kernels with sigma-based sizing (3 sigma each side)
//   - Separable two-pass convolution, O(w*h*k) instead of O(w*h*k*k)
//   - A small shared kernel cache, safe for concurrent use
package blur
