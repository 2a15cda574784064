package geometry

import (
	"fmt"
	"strings"

	"github.com/df07/go-lightmap-baker/pkg/core"
)

// Rotation is a 90-degree rotation matrix stored as three columns
type Rotation [3][3]int8

var (
	RotUnit = Rotation{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	RotX90  = Rotation{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}}
	RotY90  = Rotation{{0, 0, -1}, {0, 1, 0}, {1, 0, 0}}
	RotZ90  = Rotation{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}}
)

var rotationNames = map[string]Rotation{
	"unit": RotUnit,
	"x90":  RotX90,
	"y90":  RotY90,
	"z90":  RotZ90,
}

// ParseRotation parses "unit", "x90", "y90", "z90" or products like "x90*z90".
// An empty string is the unit rotation.
func ParseRotation(s string) (Rotation, error) {
	result := RotUnit
	if strings.TrimSpace(s) == "" {
		return result, nil
	}
	for _, part := range strings.Split(s, "*") {
		r, ok := rotationNames[strings.ToLower(strings.TrimSpace(part))]
		if !ok {
			return RotUnit, fmt.Errorf("invalid rotation %q", part)
		}
		result = result.Mul(r)
	}
	return result, nil
}

// Apply multiplies the matrix with an integer vector
func (r Rotation) Apply(p core.IVec3) core.IVec3 {
	return core.IVec3{
		X: int(r[0][0])*p.X + int(r[1][0])*p.Y + int(r[2][0])*p.Z,
		Y: int(r[0][1])*p.X + int(r[1][1])*p.Y + int(r[2][1])*p.Z,
		Z: int(r[0][2])*p.X + int(r[1][2])*p.Y + int(r[2][2])*p.Z,
	}
}

// ApplyF multiplies the matrix with a float vector
func (r Rotation) ApplyF(p core.Vec3) core.Vec3 {
	return core.Vec3{
		X: float64(r[0][0])*p.X + float64(r[1][0])*p.Y + float64(r[2][0])*p.Z,
		Y: float64(r[0][1])*p.X + float64(r[1][1])*p.Y + float64(r[2][1])*p.Z,
		Z: float64(r[0][2])*p.X + float64(r[1][2])*p.Y + float64(r[2][2])*p.Z,
	}
}

// Mul returns the product r*other (other is applied first)
func (r Rotation) Mul(other Rotation) Rotation {
	var out Rotation
	for j := 0; j < 3; j++ {
		col := r.Apply(core.IVec3{X: int(other[j][0]), Y: int(other[j][1]), Z: int(other[j][2])})
		out[j] = [3]int8{int8(col.X), int8(col.Y), int8(col.Z)}
	}
	return out
}

// Inverse returns the transpose
func (r Rotation) Inverse() Rotation {
	var out Rotation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = r[j][i]
		}
	}
	return out
}

// internalOffset is (I-R)*(1,1,1)/2; every component is an integer
func (r Rotation) internalOffset() core.IVec3 {
	ones := core.IVec3{X: 1, Y: 1, Z: 1}
	off := ones.Subtract(r.Apply(ones))
	return core.IVec3{X: off.X / 2, Y: off.Y / 2, Z: off.Z / 2}
}

// RotateInternal rotates a point of the unit cube around its center,
// computed as R*p + (I-R)*(½,½,½) without leaving integer arithmetic
func (r Rotation) RotateInternal(p core.IVec3) core.IVec3 {
	return r.Apply(p).Add(r.internalOffset())
}

// RotateInternalF is RotateInternal for arbitrary points
func (r Rotation) RotateInternalF(p core.Vec3) core.Vec3 {
	return r.ApplyF(p).Add(r.internalOffset().ToVec3())
}
