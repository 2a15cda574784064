package core

import "math"

// NearestPow returns the power of base nearest to n. Ties round up.
func NearestPow(n, base uint32) uint32 {
	if n <= 1 || base < 2 {
		return 1
	}

	down := uint64(1)
	for down*uint64(base) <= uint64(n) {
		down *= uint64(base)
	}
	if down == uint64(n) {
		return n
	}
	up := down * uint64(base)

	if uint64(n)-down < up-uint64(n) {
		return uint32(down)
	}
	return uint32(up)
}

// LinearToSRGB applies the sRGB transfer curve to a linear intensity
func LinearToSRGB(x float64) float64 {
	if x <= 0.0031308 {
		return 12.92 * x
	}
	return 1.055*math.Pow(x, 1.0/2.4) - 0.055
}

// SRGBToLinear inverts LinearToSRGB
func SRGBToLinear(x float64) float64 {
	if x <= 0.04045 {
		return x / 12.92
	}
	return math.Pow((x+0.055)/1.055, 2.4)
}

// SRGBDelta is the perceived width of the interval center ± delta/2
func SRGBDelta(center, delta float64) float64 {
	return LinearToSRGB(center+delta/2) - LinearToSRGB(center-delta/2)
}
