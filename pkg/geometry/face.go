package geometry

import (
	"github.com/df07/go-lightmap-baker/pkg/core"
)

// MatID references a material through the map palette
type MatID uint8

// FaceShape distinguishes rectangles from triangles
type FaceShape uint8

const (
	Triangle FaceShape = iota
	Rectangle
)

func (s FaceShape) String() string {
	if s == Rectangle {
		return "rect"
	}
	return "tri"
}

// Face is a rectangular or triangular surface on the integer grid.
//
// Vertex order has a fixed meaning:
//
//	v0: origin+tangent1
//	 ^        * (v3 = origin+tangent1+tangent2, not stored)
//	 |
//	 +--------> v2: origin+tangent2
//	v1: origin
type Face struct {
	Vert  [3]core.IVec3
	Shape FaceShape
	Mat   MatID
}

// NewRectangle creates a rectangle. The fourth corner is v0+v2-v1.
func NewRectangle(mat MatID, v0, v1, v2 core.IVec3) Face {
	return Face{Vert: [3]core.IVec3{v0, v1, v2}, Shape: Rectangle, Mat: mat}
}

// NewTriangle creates a triangle with the right angle (if any) at v1
func NewTriangle(mat MatID, v0, v1, v2 core.IVec3) Face {
	return Face{Vert: [3]core.IVec3{v0, v1, v2}, Shape: Triangle, Mat: mat}
}

// Origin returns v1
func (f Face) Origin() core.IVec3 {
	return f.Vert[1]
}

// SizedTangents returns v0-v1 and v2-v1, not scaled to unit length
func (f Face) SizedTangents() [2]core.IVec3 {
	return [2]core.IVec3{f.Vert[0].Subtract(f.Vert[1]), f.Vert[2].Subtract(f.Vert[1])}
}

// SizedNormal returns (v1-v0)×(v2-v0), not scaled to unit length
func (f Face) SizedNormal() core.IVec3 {
	a := f.Vert[1].Subtract(f.Vert[0])
	b := f.Vert[2].Subtract(f.Vert[0])
	return a.Cross(b)
}

// Normal returns the unit normal
func (f Face) Normal() core.Vec3 {
	return f.SizedNormal().ToVec3().Normalize()
}

// IsDegenerate reports whether the face has zero area
func (f Face) IsDegenerate() bool {
	return f.SizedNormal() == core.IVec3{}
}

// PosForUV maps face coordinates to a world position: origin + u*t1 + v*t2
func (f Face) PosForUV(uv core.Vec2) core.Vec3 {
	t := f.SizedTangents()
	return f.Origin().ToVec3().
		Add(t[0].ToVec3().Multiply(uv.X)).
		Add(t[1].ToVec3().Multiply(uv.Y))
}

// Vertices returns 4 vertices for a rectangle, 3 for a triangle
func (f Face) Vertices() []core.IVec3 {
	if f.Shape == Rectangle {
		t := f.SizedTangents()
		v3 := f.Origin().Add(t[0]).Add(t[1])
		return []core.IVec3{f.Vert[0], f.Vert[1], f.Vert[2], v3}
	}
	return []core.IVec3{f.Vert[0], f.Vert[1], f.Vert[2]}
}

// MapPositions returns a copy with fn applied to every stored vertex
func (f Face) MapPositions(fn func(core.IVec3) core.IVec3) Face {
	for i := range f.Vert {
		f.Vert[i] = fn(f.Vert[i])
	}
	return f
}

// Translated returns a copy moved by delta
func (f Face) Translated(delta core.IVec3) Face {
	return f.MapPositions(func(p core.IVec3) core.IVec3 { return p.Add(delta) })
}

// MinCorner returns the integer minimum of the face's bounding box
func (f Face) MinCorner() core.IVec3 {
	verts := f.Vertices()
	m := verts[0]
	for _, v := range verts[1:] {
		m.X = min(m.X, v.X)
		m.Y = min(m.Y, v.Y)
		m.Z = min(m.Z, v.Z)
	}
	return m
}

// BoundingBox returns the bounding box of the face
func (f Face) BoundingBox() core.AABB {
	verts := f.Vertices()
	points := make([]core.Vec3, len(verts))
	for i, v := range verts {
		points[i] = v.ToVec3()
	}
	return core.NewAABBFromPoints(points...)
}

// Hit tests the ray against both sides of the face and records the hit
// with the given id. Only hits nearer than hr.T are recorded.
func (f Face) Hit(ray core.Ray, hr *core.HitRecord, id int) bool {
	if f.Shape == Rectangle {
		return f.hitRectangle(ray, hr, id)
	}
	return f.hitTriangle(ray, hr, id)
}

// planeHit returns the ray parameter where it crosses the face plane,
// and the crossing point relative to the origin
func (f Face) planeHit(ray core.Ray, hr *core.HitRecord) (t float64, p core.Vec3, ok bool) {
	o := f.Origin().ToVec3()
	tan := f.SizedTangents()
	n := tan[0].ToVec3().Cross(tan[1].ToVec3())

	s := ray.Origin.Subtract(o)
	t = -n.Dot(s) / n.Dot(ray.Direction)

	// NaN fails this test as well
	if !(t > 0 && t < hr.T) {
		return 0, core.Vec3{}, false
	}
	return t, ray.At(t).Subtract(o), true
}

func (f Face) hitRectangle(ray core.Ray, hr *core.HitRecord, id int) bool {
	t, p, ok := f.planeHit(ray, hr)
	if !ok {
		return false
	}

	tan := f.SizedTangents()
	a := tan[0].ToVec3()
	b := tan[1].ToVec3()

	pa := p.Dot(a)
	pb := p.Dot(b)
	a2 := a.Dot(a)
	b2 := b.Dot(b)

	if pa < 0 || pb < 0 || pa > a2 || pb > b2 {
		return false
	}

	hr.Record(t, f.Normal(), core.NewVec2(pa/a2, pb/b2), id)
	return true
}

func (f Face) hitTriangle(ray core.Ray, hr *core.HitRecord, id int) bool {
	t, p, ok := f.planeHit(ray, hr)
	if !ok {
		return false
	}

	tan := f.SizedTangents()
	a := tan[0].ToVec3()
	b := tan[1].ToVec3()
	n := a.Cross(b)

	// Barycentric coordinates after Shirley, Fundamentals of Computer Graphics.
	// l1 weighs the origin, l2 and l3 the tangent tips, so (l2, l3) are the
	// same face coordinates PosForUV takes.
	nc := a.Cross(p)
	na := b.Subtract(a).Cross(p.Subtract(a))
	n2 := n.Dot(n)
	l1 := n.Dot(na) / n2
	l3 := n.Dot(nc) / n2
	l2 := 1 - l1 - l3

	if !(min(l1, l2, l3) > 0) {
		return false
	}

	hr.Record(t, f.Normal(), core.NewVec2(l2, l3), id)
	return true
}
