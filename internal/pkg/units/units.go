package units

import "math"

const (
	MetresPerNM   = 1852.0
	MetresPerFoot = 0.3048
)

// NMToMetres converts nautical miles to metres.
func NMToMetres(nm float64) float64 {
	return nm * MetresPerNM
}

// FeetToMetres converts feet to metres.
func FeetToMetres(ft float64) float64 {
	return ft * MetresPerFoot
}

// MetresToFeet converts metres to feet.
func MetresToFeet(m float64) float64 {
	return m / MetresPerFoot
}

// GradientPercent returns the climb gradient between two (NM, ft) positions as a
// percentage of horizontal distance. Zero horizontal distance yields 0.
func GradientPercent(d1NM, alt1FT, d2NM, alt2FT float64) float64 {
	dx := NMToMetres(d2NM - d1NM)
	if dx == 0 {
		return 0
	}
	return FeetToMetres(alt2FT-alt1FT) / dx * 100
}

// GradientDegrees converts a percentage gradient to an angle in degrees.
func GradientDegrees(pct float64) float64 {
	return math.Atan(pct/100) * 180 / math.Pi
}

// AltitudeAfter returns the altitude in feet reached after flying deltaNM at a
// constant gradient of pct percent from altFT.
func AltitudeAfter(altFT, pct, deltaNM float64) float64 {
	return altFT + MetresToFeet(NMToMetres(deltaNM)*pct/100)
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
