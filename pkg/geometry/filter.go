package geometry

import "math"

// Filter is the per-layer color adjustment: brightness and contrast as
// percentage multipliers where 100 means "no change". Brightness scales
// channel intensity; contrast scales the deviation from mid-gray (128).
// Brightness is applied first, matching the order the live renderer
// declares the two adjustments.
type Filter struct {
	Brightness float64
	Contrast   float64
}

// NeutralFilter returns the identity adjustment.
func NeutralFilter() Filter {
	return Filter{Brightness: 100, Contrast: 100}
}

// IsNeutral reports whether applying the filter changes nothing.
func (f Filter) IsNeutral() bool {
	return f.Brightness == 100 && f.Contrast == 100
}

// Apply remaps a single 8-bit channel value. Alpha channels must not be
// passed through this; the adjustment applies to color only.
func (f Filter) Apply(v uint8) uint8 {
	out := float64(v) * f.Brightness / 100
	out = (out-128)*f.Contrast/100 + 128
	return uint8(Clamp(math.Round(out), 0, 255))
}

// LUT precomputes the remap for all 256 channel values so whole images
// can be filtered without repeating the float math per pixel.
func (f Filter) LUT() [256]uint8 {
	var lut [256]uint8
	for i := range lut {
		lut[i] = f.Apply(uint8(i))
	}
	return lut
}
