package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/df07/go-lightmap-baker/pkg/baking"
	"github.com/df07/go-lightmap-baker/pkg/core"
	"github.com/df07/go-lightmap-baker/pkg/geometry"
)

// MapFile is the JSON map format
type MapFile struct {
	Metadata  Metadata               `json:"metadata"`
	Palette   map[string]string      `json:"palette"` // material ID -> material name
	Materials map[string]MaterialDef `json:"materials"`
	Blocks    []BlockDef             `json:"blocks"`
}

// Metadata holds the scene lighting
type Metadata struct {
	SunDir   *[3]float64 `json:"sun_dir,omitempty"` // direction sun light travels
	SunColor [3]float64  `json:"sun_color"`
	SkyColor [3]float64  `json:"sky_color"`
}

// MaterialDef is a material given either by colors or by textures.
// A texture, when set, replaces the color of the same channel.
type MaterialDef struct {
	Diffuse         [3]float64 `json:"diffuse"`
	Emissive        [3]float64 `json:"emissive"`
	DiffuseTexture  string     `json:"diffuse_texture,omitempty"`
	EmissiveTexture string     `json:"emissive_texture,omitempty"`
}

// BlockDef is one block as stored in a map file
type BlockDef struct {
	Pos      [3]int `json:"pos"`
	Size     [3]int `json:"size"`
	Type     int    `json:"type"`
	Rotation string `json:"rotation,omitempty"`
	Mat      int    `json:"mat"`
}

// LoadMapFile reads and decodes a JSON map file
func LoadMapFile(filename string) (*MapFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file: %w", err)
	}

	var m MapFile
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse map file %s: %w", filename, err)
	}
	return &m, nil
}

// Save writes the map as indented JSON
func (m *MapFile) Save(filename string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode map: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write map file: %w", err)
	}
	return nil
}

// ToBlock validates a block definition
func (d BlockDef) ToBlock() (geometry.Block, error) {
	typ, err := geometry.ParseBlockType(d.Type)
	if err != nil {
		return geometry.Block{}, err
	}
	rot, err := geometry.ParseRotation(d.Rotation)
	if err != nil {
		return geometry.Block{}, err
	}
	if d.Mat < 0 || d.Mat > 255 {
		return geometry.Block{}, fmt.Errorf("invalid material id: %d", d.Mat)
	}
	for _, s := range d.Size {
		if s <= 0 {
			return geometry.Block{}, fmt.Errorf("invalid block size: %v", d.Size)
		}
	}
	return geometry.Block{
		Pos:      ivec(d.Pos),
		Size:     ivec(d.Size),
		Type:     typ,
		Rotation: rot,
		Mat:      geometry.MatID(d.Mat),
	}, nil
}

// ToBlocks converts all block definitions
func (m *MapFile) ToBlocks() ([]geometry.Block, error) {
	blocks := make([]geometry.Block, len(m.Blocks))
	for i, d := range m.Blocks {
		b, err := d.ToBlock()
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		blocks[i] = b
	}
	return blocks, nil
}

// BuildInput turns a map into bake input. Texture paths are relative to dir.
func (m *MapFile) BuildInput(dir string) (baking.Input, error) {
	blocks, err := m.ToBlocks()
	if err != nil {
		return baking.Input{}, err
	}

	var faces []geometry.Face
	for _, b := range blocks {
		faces = append(faces, b.Faces()...)
	}

	palette := make(baking.Palette, len(m.Palette))
	for key, name := range m.Palette {
		id, err := strconv.ParseUint(key, 10, 8)
		if err != nil {
			return baking.Input{}, fmt.Errorf("invalid palette id %q: %w", key, err)
		}
		palette[geometry.MatID(id)] = name
	}

	materials := make(map[string]baking.Material, len(m.Materials))
	for name, def := range m.Materials {
		mat, err := def.resolve(dir)
		if err != nil {
			return baking.Input{}, fmt.Errorf("material %s: %w", name, err)
		}
		materials[name] = mat
	}

	sunDir := baking.DefaultSunDir
	if m.Metadata.SunDir != nil {
		sunDir = vec(*m.Metadata.SunDir)
		if sunDir.LengthSquared() == 0 {
			return baking.Input{}, errors.New("sun_dir must not be zero")
		}
		sunDir = sunDir.Normalize()
	}

	return baking.Input{
		Faces:     faces,
		Blocks:    blocks,
		SunDir:    sunDir,
		SunColor:  vec(m.Metadata.SunColor),
		SkyColor:  vec(m.Metadata.SkyColor),
		Palette:   palette,
		Materials: materials,
	}, nil
}

func (d MaterialDef) resolve(dir string) (baking.Material, error) {
	mat := baking.Material{Diffuse: vec(d.Diffuse), Emissive: vec(d.Emissive)}

	if d.DiffuseTexture != "" {
		avg, err := AverageColor(resolvePath(dir, d.DiffuseTexture))
		if err != nil {
			return mat, err
		}
		mat.Diffuse = avg
	}
	if d.EmissiveTexture != "" {
		avg, err := AverageColor(resolvePath(dir, d.EmissiveTexture))
		if err != nil {
			return mat, err
		}
		mat.Emissive = avg
	}
	return mat, nil
}

func resolvePath(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

func vec(a [3]float64) core.Vec3 {
	return core.NewVec3(a[0], a[1], a[2])
}

func ivec(a [3]int) core.IVec3 {
	return core.NewIVec3(a[0], a[1], a[2])
}
