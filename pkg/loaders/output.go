package loaders

import (
	"archive/zip"
	"encoding/gob"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-lightmap-baker/pkg/core"
	"github.com/df07/go-lightmap-baker/pkg/geometry"
	"github.com/df07/go-lightmap-baker/pkg/lightmap"
	"github.com/df07/go-lightmap-baker/pkg/log"
)

const (
	IndirectPrefix   = "lm_indirect_"
	VisibilityPrefix = "lm_visibility_"

	// MeshFile is the zip archive holding the gob-encoded meshes
	MeshFile  = "mesh.zip"
	meshEntry = "mesh.bin"
)

// Zone is the set of snippets sharing one pair of atlases
type Zone struct {
	Pos       core.IVec3
	AtlasSize int
	Snippets  []lightmap.Snippet
	Offsets   []image.Point // atlas position of each snippet's outer image
}

// Vertex is a mesh vertex with its lightmap atlas coordinates
type Vertex struct {
	Position    [3]float32
	Normal      [3]float32
	LightCoords [2]float32
}

// ZoneMesh holds the triangles of one zone, three vertices each
type ZoneMesh struct {
	Zone     [3]int
	Vertices []Vertex
}

// ZoneName is the atlas file name of a zone. Coordinates are biased by
// 0x7fff and printed as 4 hex digits each.
func ZoneName(prefix string, zone core.IVec3) string {
	const bias = 0x7fff
	return fmt.Sprintf("%s%04x%04x%04x.png", prefix,
		uint16(zone.X+bias), uint16(zone.Y+bias), uint16(zone.Z+bias))
}

// AssembleZones groups snippets by zone and packs each zone on an atlas
func AssembleZones(snippets []lightmap.Snippet) ([]Zone, error) {
	faces := make([]geometry.Face, len(snippets))
	for i, s := range snippets {
		faces[i] = s.Face
	}
	byZone, order := geometry.GroupByZone(faces)

	zones := make([]Zone, 0, len(order))
	for _, pos := range order {
		ids := byZone[pos]
		zs := make([]lightmap.Snippet, len(ids))
		for i, id := range ids {
			zs[i] = snippets[id]
		}

		size, offsets, err := lightmap.PackSnippets(zs)
		if err != nil {
			return nil, fmt.Errorf("zone %v: %w", pos, err)
		}
		zones = append(zones, Zone{Pos: pos, AtlasSize: size, Snippets: zs, Offsets: offsets})
	}
	return zones, nil
}

// SaveLightmaps writes the indirect and visibility atlases of every zone to dir
func SaveLightmaps(dir string, zones []Zone, logger log.Logger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, z := range zones {
		visibility, ambient := lightmap.Atlases(z.Snippets, z.AtlasSize, z.Offsets)
		if err := savePNG(filepath.Join(dir, ZoneName(IndirectPrefix, z.Pos)), ambient); err != nil {
			return err
		}
		if err := savePNG(filepath.Join(dir, ZoneName(VisibilityPrefix, z.Pos)), visibility); err != nil {
			return err
		}
		logger.Debugf("saved zone %v: %d faces on a %dx%[3]d atlas", z.Pos, len(z.Snippets), z.AtlasSize)
	}
	logger.Infof("saved %d lightmap pairs to %s", len(zones), dir)
	return nil
}

func savePNG(filename string, img image.Image) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", filename, err)
	}
	return nil
}

// BuildMesh returns the triangles of a zone with atlas coordinates.
// Light coordinates point at texel centers just inside each image's margin.
func BuildMesh(z Zone) ZoneMesh {
	mesh := ZoneMesh{Zone: [3]int{z.Pos.X, z.Pos.Y, z.Pos.Z}}
	for i, s := range z.Snippets {
		mesh.Vertices = append(mesh.Vertices, faceVertices(s.Face, z.Offsets[i], s.Size(), z.AtlasSize)...)
	}
	return mesh
}

func faceVertices(face geometry.Face, offset, size image.Point, atlasSize int) []Vertex {
	const m = lightmap.Margin + 0.5
	atlas := float64(atlasSize)
	normal := face.Normal()

	vertex := func(pos core.IVec3, x, y float64) Vertex {
		p := pos.ToVec3()
		return Vertex{
			Position:    [3]float32{float32(p.X), float32(p.Y), float32(p.Z)},
			Normal:      [3]float32{float32(normal.X), float32(normal.Y), float32(normal.Z)},
			LightCoords: [2]float32{float32(x / atlas), float32(y / atlas)},
		}
	}

	offX, offY := float64(offset.X), float64(offset.Y)
	sizeX, sizeY := float64(size.X), float64(size.Y)
	t := face.SizedTangents()
	origin := face.Origin()

	o := vertex(origin, offX+m, offY+m)
	a := vertex(origin.Add(t[0]), offX+sizeX-m, offY+m)
	b := vertex(origin.Add(t[1]), offX+m, offY+sizeY-m)

	if face.Shape == geometry.Triangle {
		return []Vertex{a, o, b}
	}
	c := vertex(origin.Add(t[0]).Add(t[1]), offX+sizeX-m, offY+sizeY-m)
	return []Vertex{a, o, b, b, c, a}
}

// SaveMesh writes the meshes as a gob-encoded entry of a zip archive
func SaveMesh(filename string, meshes []ZoneMesh, logger log.Logger) error {
	logger.Infof("writing compressed mesh to %s", filename)
	start := time.Now()

	zipFile, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create mesh file: %w", err)
	}
	defer zipFile.Close()

	zw := zip.NewWriter(zipFile)
	cw, err := zw.Create(meshEntry)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", meshEntry, err)
	}
	if err := gob.NewEncoder(cw).Encode(meshes); err != nil {
		return fmt.Errorf("failed to encode mesh: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish mesh file: %w", err)
	}

	logger.Debugf("wrote mesh in %d ms", time.Since(start).Nanoseconds()/1e6)
	return nil
}

// LoadMesh reads meshes written by SaveMesh
func LoadMesh(filename string) ([]ZoneMesh, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open mesh file: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != meshEntry {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", f.Name, err)
		}
		defer rc.Close()

		var meshes []ZoneMesh
		if err := gob.NewDecoder(rc).Decode(&meshes); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", f.Name, err)
		}
		return meshes, nil
	}
	return nil, fmt.Errorf("%s not found in %s", meshEntry, filename)
}

// SaveOutput assembles zones and writes atlases and mesh to dir
func SaveOutput(dir string, snippets []lightmap.Snippet, logger log.Logger) ([]Zone, error) {
	zones, err := AssembleZones(snippets)
	if err != nil {
		return nil, err
	}
	if err := SaveLightmaps(dir, zones, logger); err != nil {
		return nil, err
	}

	meshes := make([]ZoneMesh, len(zones))
	for i, z := range zones {
		meshes[i] = BuildMesh(z)
	}
	if err := SaveMesh(filepath.Join(dir, MeshFile), meshes, logger); err != nil {
		return nil, err
	}
	return zones, nil
}
