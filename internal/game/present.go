package game

import "wasmsnake/internal/engine"

// Presenter displays one frame. It is only ever called from the tick.
type Presenter interface {
	Present(f engine.Frame) error
}

// Full-viewport quad, interleaved x, y, u, v. v grows downwards so framebuffer
// row 0 lands at the top of the screen.
var QuadVertices = [16]float32{
	-1, 1, 0, 0,
	1, 1, 1, 0,
	1, -1, 1, 1,
	-1, -1, 0, 1,
}

var QuadIndices = [6]uint16{0, 1, 2, 0, 2, 3}

const QuadStride = 4

// Intensity maps a color index to greyscale in [0,1]. Out-of-range indices
// are clamped; the fragment shader does the same.
func Intensity(idx int32) float32 {
	return float32(Grey(idx)) / 255
}

// Grey is Intensity as an 8-bit level.
func Grey(idx int32) uint8 {
	if idx < 0 {
		return 0
	}
	if idx > 255 {
		return 255
	}
	return uint8(idx)
}
