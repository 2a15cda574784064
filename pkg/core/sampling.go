package core

import (
	"math"
)

// HaltonSeq is a 2D Halton sequence (bases 2 and 3) with a Cranley-Patterson
// rotation. The same scramble and index always produce the same point.
type HaltonSeq struct {
	Scramble Vec2
	Index    uint64
}

// NewHaltonSeq creates a sequence starting at index 0
func NewHaltonSeq(scramble Vec2) *HaltonSeq {
	return &HaltonSeq{Scramble: scramble}
}

// Point returns the current sample in [0,1)²
func (h *HaltonSeq) Point() Vec2 {
	return NewVec2(
		wrapUnit(RadicalInverse(h.Index, 2)+h.Scramble.X),
		wrapUnit(RadicalInverse(h.Index, 3)+h.Scramble.Y),
	)
}

// Advance moves to the next index
func (h *HaltonSeq) Advance() {
	h.Index++
}

// RadicalInverse mirrors the base-b digits of i around the radix point
func RadicalInverse(i uint64, base uint64) float64 {
	inv := 1.0 / float64(base)
	f := inv
	result := 0.0
	for i > 0 {
		result += f * float64(i%base)
		i /= base
		f *= inv
	}
	return result
}

func wrapUnit(x float64) float64 {
	x -= math.Floor(x)
	if x >= 1 {
		return 0
	}
	return x
}

// SampleCosineHemisphere maps a 2D sample to a cosine-weighted direction
// in the hemisphere around normal. The disk point comes from the concentric
// mapping and is lifted onto the hemisphere.
func SampleCosineHemisphere(normal Vec3, sample Vec2) Vec3 {
	disk := SamplePointInUnitDisk(sample)
	x := disk.X
	y := disk.Y
	zCoord := math.Sqrt(math.Max(0, 1.0-x*x-y*y))

	// Find a vector perpendicular to normal
	var nt Vec3
	if math.Abs(normal.X) > 0.1 {
		nt = NewVec3(0, 1, 0)
	} else {
		nt = NewVec3(1, 0, 0)
	}

	tangent := nt.Cross(normal).Normalize()
	bitangent := normal.Cross(tangent)

	return tangent.Multiply(x).Add(bitangent.Multiply(y)).Add(normal.Multiply(zCoord))
}

// SamplePointInUnitDisk generates a point in a unit disk using concentric mapping
// This avoids rejection sampling by mapping a square uniformly to a disk
func SamplePointInUnitDisk(sample Vec2) Vec3 {
	// Map sample to [-1,1]² and handle degeneracy at the origin
	uOffset := NewVec2(2*sample.X-1, 2*sample.Y-1)
	if uOffset.X == 0 && uOffset.Y == 0 {
		return NewVec3(0, 0, 0)
	}

	var theta, r float64
	if math.Abs(uOffset.X) > math.Abs(uOffset.Y) {
		r = uOffset.X
		theta = math.Pi / 4 * (uOffset.Y / uOffset.X)
	} else {
		r = uOffset.Y
		theta = math.Pi/2 - math.Pi/4*(uOffset.X/uOffset.Y)
	}

	return NewVec3(r*math.Cos(theta), r*math.Sin(theta), 0)
}
