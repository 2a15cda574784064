package geometry

import (
	"fmt"

	"github.com/df07/go-lightmap-baker/pkg/core"
)

// BlockType selects the unit primitive a block is built from
type BlockType uint8

const (
	BlockCube BlockType = iota
	BlockWedge
	BlockTetra
	BlockInverseTetra
)

const maxBlockType = BlockInverseTetra

// ParseBlockType validates a numeric block type
func ParseBlockType(i int) (BlockType, error) {
	if i < 0 || i > int(maxBlockType) {
		return 0, fmt.Errorf("invalid block type: %d, should be 0..=%d", i, maxBlockType)
	}
	return BlockType(i), nil
}

// Block is a solid volume: a rotated unit primitive, scaled by Size and moved to Pos
type Block struct {
	Pos      core.IVec3
	Rotation Rotation
	Size     core.IVec3
	Type     BlockType
	Mat      MatID
}

// Faces returns the block's surfaces in world coordinates
func (b Block) Faces() []Face {
	unit := UnitFaces(b.Type, b.Mat)
	faces := make([]Face, len(unit))
	for i, f := range unit {
		faces[i] = f.MapPositions(b.Transform)
	}
	return faces
}

// Transform maps a unit-cube vertex to world space
func (b Block) Transform(p core.IVec3) core.IVec3 {
	return b.Rotation.RotateInternal(p).Scale(b.Size).Add(b.Pos)
}

// Inverse maps a world position back to internal [0,1]³ coordinates
func (b Block) Inverse(p core.Vec3) core.Vec3 {
	local := p.Subtract(b.Pos.ToVec3()).DivideVec(b.Size.ToVec3())
	return b.Rotation.Inverse().RotateInternalF(local)
}

// BoundingBox spans Pos to Pos+Size
func (b Block) BoundingBox() core.AABB {
	return core.NewAABB(b.Pos.ToVec3(), b.Pos.Add(b.Size).ToVec3())
}

// Contains reports whether p lies strictly inside the solid
func (b Block) Contains(p core.Vec3) bool {
	if !b.BoundingBox().ContainsStrict(p) {
		return false
	}

	q := b.Inverse(p)
	switch b.Type {
	case BlockCube:
		return true
	case BlockWedge:
		return q.X+q.Y < 1
	case BlockTetra:
		return q.X+q.Y+q.Z < 1
	case BlockInverseTetra:
		return q.X+q.Y+q.Z > 1
	default:
		return false
	}
}
