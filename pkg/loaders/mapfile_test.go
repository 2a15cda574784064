package loaders

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-lightmap-baker/pkg/baking"
	"github.com/df07/go-lightmap-baker/pkg/core"
	"github.com/df07/go-lightmap-baker/pkg/geometry"
)

const testMap = `{
  "metadata": {"sun_color": [1, 1, 0.9], "sky_color": [0.2, 0.3, 0.4]},
  "palette": {"1": "stone", "2": "lamp"},
  "materials": {
    "stone": {"diffuse": [0.9, 0.9, 0.9], "diffuse_texture": "quad.png"},
    "lamp": {"emissive": [1, 0.5, 0]}
  },
  "blocks": [
    {"pos": [0, 0, 0], "size": [1, 1, 1], "type": 0, "mat": 1},
    {"pos": [0, 1, 0], "size": [2, 1, 1], "type": 1, "rotation": "y90", "mat": 2}
  ]
}`

func writeMap(t *testing.T, dir, content string) string {
	t.Helper()
	filename := filepath.Join(dir, "map.json")
	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write map: %v", err)
	}
	return filename
}

func TestLoadMapFile(t *testing.T) {
	dir := t.TempDir()
	m, err := LoadMapFile(writeMap(t, dir, testMap))
	if err != nil {
		t.Fatalf("LoadMapFile failed: %v", err)
	}

	if len(m.Blocks) != 2 {
		t.Fatalf("Expected 2 blocks, got %d", len(m.Blocks))
	}
	if m.Blocks[1].Rotation != "y90" || m.Blocks[1].Type != 1 {
		t.Errorf("Expected wedge with y90, got %+v", m.Blocks[1])
	}
	if m.Metadata.SunDir != nil {
		t.Errorf("Expected no sun_dir, got %v", *m.Metadata.SunDir)
	}
	if m.Palette["2"] != "lamp" {
		t.Errorf("Expected palette 2 to be lamp, got %q", m.Palette["2"])
	}
}

func TestLoadMapFile_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadMapFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
	if _, err := LoadMapFile(writeMap(t, dir, "{not json")); err == nil {
		t.Error("Expected error for malformed JSON")
	}
}

func TestBuildInput(t *testing.T) {
	dir := t.TempDir()
	writeQuadPNG(t, filepath.Join(dir, "quad.png"))
	m, err := LoadMapFile(writeMap(t, dir, testMap))
	if err != nil {
		t.Fatalf("LoadMapFile failed: %v", err)
	}

	input, err := m.BuildInput(dir)
	if err != nil {
		t.Fatalf("BuildInput failed: %v", err)
	}

	// Cube has 6 faces, wedge has 5
	if len(input.Blocks) != 2 {
		t.Errorf("Expected 2 blocks, got %d", len(input.Blocks))
	}
	if len(input.Faces) != 11 {
		t.Errorf("Expected 11 faces, got %d", len(input.Faces))
	}
	if input.SunDir != baking.DefaultSunDir {
		t.Errorf("Expected default sun direction, got %v", input.SunDir)
	}
	if input.SkyColor != core.NewVec3(0.2, 0.3, 0.4) {
		t.Errorf("Expected sky color (0.2,0.3,0.4), got %v", input.SkyColor)
	}
	if input.Palette[geometry.MatID(1)] != "stone" || input.Palette[geometry.MatID(2)] != "lamp" {
		t.Errorf("Unexpected palette %v", input.Palette)
	}

	// The texture overrides the diffuse color
	stone := input.Materials["stone"]
	if !colorNear(stone.Diffuse, core.NewVec3(0.5, 0.5, 0.5)) {
		t.Errorf("Expected stone diffuse from texture average, got %v", stone.Diffuse)
	}
	lamp := input.Materials["lamp"]
	if lamp.Emissive != core.NewVec3(1, 0.5, 0) {
		t.Errorf("Expected lamp emission (1,0.5,0), got %v", lamp.Emissive)
	}
	if lamp.Diffuse != (core.Vec3{}) {
		t.Errorf("Expected black lamp diffuse, got %v", lamp.Diffuse)
	}
}

func TestBuildInput_SunDirNormalized(t *testing.T) {
	sun := [3]float64{0, -2, 0}
	m := &MapFile{Metadata: Metadata{SunDir: &sun}}

	input, err := m.BuildInput(t.TempDir())
	if err != nil {
		t.Fatalf("BuildInput failed: %v", err)
	}
	if math.Abs(input.SunDir.Y+1) > 1e-12 || input.SunDir.X != 0 || input.SunDir.Z != 0 {
		t.Errorf("Expected sun direction (0,-1,0), got %v", input.SunDir)
	}
}

func TestBuildInput_Errors(t *testing.T) {
	zero := [3]float64{}
	tests := []struct {
		name    string
		m       MapFile
		wantErr string
	}{
		{
			name:    "bad block type",
			m:       MapFile{Blocks: []BlockDef{{Size: [3]int{1, 1, 1}, Type: 9}}},
			wantErr: "invalid block type",
		},
		{
			name:    "bad rotation",
			m:       MapFile{Blocks: []BlockDef{{Size: [3]int{1, 1, 1}, Rotation: "x45"}}},
			wantErr: "invalid rotation",
		},
		{
			name:    "empty block",
			m:       MapFile{Blocks: []BlockDef{{Size: [3]int{1, 0, 1}}}},
			wantErr: "invalid block size",
		},
		{
			name:    "material out of range",
			m:       MapFile{Blocks: []BlockDef{{Size: [3]int{1, 1, 1}, Mat: 256}}},
			wantErr: "invalid material id",
		},
		{
			name:    "bad palette key",
			m:       MapFile{Palette: map[string]string{"stone": "stone"}},
			wantErr: "invalid palette id",
		},
		{
			name:    "missing texture",
			m:       MapFile{Materials: map[string]MaterialDef{"stone": {DiffuseTexture: "missing.png"}}},
			wantErr: "material stone",
		},
		{
			name:    "zero sun direction",
			m:       MapFile{Metadata: Metadata{SunDir: &zero}},
			wantErr: "sun_dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.m.BuildInput(t.TempDir())
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestMissingTextureWrapsNotExist(t *testing.T) {
	m := MapFile{Materials: map[string]MaterialDef{"stone": {EmissiveTexture: "missing.png"}}}
	_, err := m.BuildInput(t.TempDir())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestMapFileSave(t *testing.T) {
	dir := t.TempDir()
	m, err := LoadMapFile(writeMap(t, dir, testMap))
	if err != nil {
		t.Fatalf("LoadMapFile failed: %v", err)
	}

	saved := filepath.Join(dir, "saved.json")
	if err := m.Save(saved); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	again, err := LoadMapFile(saved)
	if err != nil {
		t.Fatalf("LoadMapFile of saved map failed: %v", err)
	}
	if len(again.Blocks) != len(m.Blocks) || again.Blocks[1] != m.Blocks[1] {
		t.Errorf("Saved map differs: %+v vs %+v", again.Blocks, m.Blocks)
	}
}
