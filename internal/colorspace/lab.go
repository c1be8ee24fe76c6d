// Package colorspace converts camera samples to CIE L*a*b* and measures
// perceptual color difference with CIEDE2000.
package colorspace

import (
	"math"

	"cubescan/internal/models"
)

// D65 reference white, 2° observer
const (
	whiteX = 95.047
	whiteY = 100.0
	whiteZ = 108.883
)

// Lab is a color in CIE L*a*b* space
type Lab struct {
	L float64
	A float64
	B float64
}

// ToLab converts a BGR device sample to L*a*b* referenced to D65.
// XYZ and Lab values are rounded to four decimals.
func ToLab(c models.Color) Lab {
	r := linearize(c.R) * 100
	g := linearize(c.G) * 100
	b := linearize(c.B) * 100

	x := round4(r*0.4124+g*0.3576+b*0.1805) / whiteX
	y := round4(r*0.2126+g*0.7152+b*0.0722) / whiteY
	z := round4(r*0.0193+g*0.1192+b*0.9505) / whiteZ

	fx, fy, fz := labF(x), labF(y), labF(z)

	return Lab{
		L: round4(116*fy - 16),
		A: round4(500 * (fx - fy)),
		B: round4(200 * (fy - fz)),
	}
}

func linearize(v uint8) float64 {
	c := float64(v) / 255
	if c > 0.04045 {
		return math.Pow((c+0.055)/1.055, 2.4)
	}
	return c / 12.92
}

func labF(t float64) float64 {
	if t > 0.008856 {
		return math.Pow(t, 1.0/3.0)
	}
	return 7.787*t + 16.0/116.0
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
