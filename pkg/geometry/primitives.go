package geometry

import "github.com/df07/go-lightmap-baker/pkg/core"

func v(x, y, z int) core.IVec3 { return core.IVec3{X: x, Y: y, Z: z} }

// UnitFaces returns the surfaces of a block type inside the unit cube.
// Unknown types have no faces.
func UnitFaces(typ BlockType, mat MatID) []Face {
	switch typ {
	case BlockCube:
		return unitCubeFaces(mat)
	case BlockWedge:
		return unitWedgeFaces(mat)
	case BlockTetra:
		return unitTetraFaces(mat)
	case BlockInverseTetra:
		return unitInverseTetraFaces(mat)
	default:
		return nil
	}
}

func unitCubeFaces(mat MatID) []Face {
	return []Face{
		NewRectangle(mat, v(0, 1, 1), v(0, 1, 0), v(0, 0, 0)), // left
		NewRectangle(mat, v(1, 0, 0), v(1, 1, 0), v(1, 1, 1)), // right
		NewRectangle(mat, v(0, 0, 0), v(1, 0, 0), v(1, 0, 1)), // bottom
		NewRectangle(mat, v(1, 1, 1), v(1, 1, 0), v(0, 1, 0)), // top
		NewRectangle(mat, v(0, 1, 0), v(1, 1, 0), v(1, 0, 0)), // back
		NewRectangle(mat, v(1, 0, 1), v(1, 1, 1), v(0, 1, 1)), // front
	}
}

// unitWedgeFaces is a ramp rising from x=1 to x=0, seen from the front:
//
//	+
//	|\
//	+-+
func unitWedgeFaces(mat MatID) []Face {
	return []Face{
		NewRectangle(mat, v(0, 1, 1), v(0, 1, 0), v(0, 0, 0)), // left
		NewRectangle(mat, v(0, 0, 0), v(1, 0, 0), v(1, 0, 1)), // bottom
		NewRectangle(mat, v(1, 0, 1), v(1, 0, 0), v(0, 1, 0)), // slope
		NewTriangle(mat, v(1, 0, 0), v(0, 0, 0), v(0, 1, 0)),  // back
		NewTriangle(mat, v(0, 1, 1), v(0, 0, 1), v(1, 0, 1)),  // front
	}
}

func unitTetraFaces(mat MatID) []Face {
	return []Face{
		NewTriangle(mat, v(0, 1, 0), v(0, 0, 0), v(0, 0, 1)), // left
		NewTriangle(mat, v(0, 0, 1), v(0, 0, 0), v(1, 0, 0)), // bottom
		NewTriangle(mat, v(1, 0, 0), v(0, 0, 0), v(0, 1, 0)), // back
		NewTriangle(mat, v(0, 1, 0), v(0, 0, 1), v(1, 0, 0)), // diagonal
	}
}

func unitInverseTetraFaces(mat MatID) []Face {
	return []Face{
		NewRectangle(mat, v(1, 0, 0), v(1, 1, 0), v(1, 1, 1)), // right
		NewRectangle(mat, v(1, 0, 1), v(1, 1, 1), v(0, 1, 1)), // front
		NewRectangle(mat, v(1, 1, 1), v(1, 1, 0), v(0, 1, 0)), // top
		NewTriangle(mat, v(0, 0, 1), v(0, 1, 1), v(0, 1, 0)),  // left
		NewTriangle(mat, v(1, 0, 0), v(1, 0, 1), v(0, 0, 1)),  // bottom
		NewTriangle(mat, v(0, 1, 0), v(1, 1, 0), v(1, 0, 0)),  // back
		NewTriangle(mat, v(1, 0, 0), v(0, 0, 1), v(0, 1, 0)),  // diagonal
	}
}
