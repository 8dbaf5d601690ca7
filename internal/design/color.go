package design

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultScaffoldColor is the ARGB color given to the scaffold.
const DefaultScaffoldColor uint32 = 0xFF_33_66_CC

var golden = (1 + math.Sqrt(5)) / 2

func frac(x float64) float64 { return x - math.Floor(x) }

// StapleColor returns the idx-th color of the staple palette as opaque
// ARGB. Consecutive indices are spread along the hue circle by the golden
// ratio so neighbouring staples stay distinguishable.
func StapleColor(idx int) uint32 {
	f := float64(idx)
	hue := frac(f*golden) * 360
	sat := frac(f*7*(1+math.Sqrt(5)/2))*0.4 + 0.4
	val := frac(f*11*(1+math.Sqrt(5)/2))*0.7 + 0.1
	return argb(colorful.Hsv(hue, sat, val))
}

func argb(c colorful.Color) uint32 {
	r, g, b := c.Clamped().RGB255()
	return 0xFF000000 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// ColorHex formats the RGB part of an ARGB color as #rrggbb.
func ColorHex(c uint32) string {
	return colorful.Color{
		R: float64((c>>16)&0xFF) / 255,
		G: float64((c>>8)&0xFF) / 255,
		B: float64(c&0xFF) / 255,
	}.Hex()
}

// ParseColor reads a #rrggbb color into opaque ARGB.
func ParseColor(s string) (uint32, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return 0, fmt.Errorf("parse color %q: %w", s, err)
	}
	return argb(c), nil
}
