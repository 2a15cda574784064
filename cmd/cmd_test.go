package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-lightmap-baker/pkg/baking"
	"github.com/df07/go-lightmap-baker/pkg/core"
	"github.com/df07/go-lightmap-baker/pkg/geometry"
)

func TestWriteStageTable(t *testing.T) {
	stats := []baking.StageStats{
		{Stage: baking.StageSun, Faces: 4, Samples: 400, Duration: 1500 * time.Microsecond},
		{Stage: baking.StageEmission, Faces: 4},
		{Stage: baking.StageIndirect1, Faces: 0},
	}

	var buf bytes.Buffer
	writeStageTable(&buf, stats, 2*time.Second)
	out := buf.String()

	for _, want := range []string{"Stage", "sun", "emission", "indirect 1", "400", "100", "TOTAL", "2s"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected stage table to contain %q:\n%s", want, out)
		}
	}
}

func TestWritePresetTable(t *testing.T) {
	var buf bytes.Buffer
	writePresetTable(&buf, baking.Presets())
	out := buf.String()

	for _, want := range []string{"low", "medium", "high", "3000", "0.0005"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected preset table to contain %q:\n%s", want, out)
		}
	}
}

func TestCollectMapStats(t *testing.T) {
	a := geometry.Block{Size: core.NewIVec3(1, 1, 1), Rotation: geometry.RotUnit, Mat: 1}
	b := geometry.Block{Pos: core.NewIVec3(1, 0, 0), Size: core.NewIVec3(1, 1, 1), Rotation: geometry.RotUnit, Mat: 2}
	far := geometry.Block{Pos: core.NewIVec3(300, 0, 0), Size: core.NewIVec3(1, 1, 1), Rotation: geometry.RotUnit, Mat: 9}

	var faces []geometry.Face
	for _, blk := range []geometry.Block{a, b, far} {
		faces = append(faces, blk.Faces()...)
	}
	input := baking.Input{
		Faces:   faces,
		Blocks:  []geometry.Block{a, b, far},
		Palette: baking.Palette{1: "stone", 2: "lamp"},
		Materials: map[string]baking.Material{
			"stone": {Diffuse: core.NewVec3(0.5, 0.5, 0.5)},
			"lamp":  {Emissive: core.NewVec3(1, 1, 1)},
		},
	}

	stats := CollectMapStats(input, 1)

	// The touching faces of a and b are hidden
	if stats.Faces != 18 || stats.VisibleFaces != 16 {
		t.Errorf("Expected 18 faces with 16 visible, got %d and %d", stats.Faces, stats.VisibleFaces)
	}
	if stats.Blocks != 3 {
		t.Errorf("Expected 3 blocks, got %d", stats.Blocks)
	}
	if stats.Zones != 2 {
		t.Errorf("Expected 2 zones, got %d", stats.Zones)
	}
	// Every unit face is 2x2 texels at resolution 1
	if stats.Texels != 16*4 {
		t.Errorf("Expected %d texels, got %d", 16*4, stats.Texels)
	}
	if stats.EmissiveFaces != 5 {
		t.Errorf("Expected 5 emissive faces, got %d", stats.EmissiveFaces)
	}
	if stats.MaterialsInUse != 2 || stats.UnknownMatIDs != 1 {
		t.Errorf("Expected 2 materials in use and 1 unknown id, got %d and %d", stats.MaterialsInUse, stats.UnknownMatIDs)
	}
}

func TestProgressLogger(t *testing.T) {
	progress := progressLogger()
	for _, stage := range []baking.Stage{baking.StageSun, baking.StageSky} {
		for done := 0; done <= 20; done++ {
			progress(baking.Progress{Stage: stage, Done: done, Total: 20})
		}
	}
	progress(baking.Progress{Stage: baking.StageEmission})
}
