package baking

import (
	"time"

	"github.com/df07/go-lightmap-baker/pkg/lightmap"
)

// Stage names a pipeline pass
type Stage string

const (
	StageValidity  Stage = "validity"
	StageSun       Stage = "sun"
	StageSky       Stage = "sky"
	StageEmission  Stage = "emission"
	StageIndirect1 Stage = "indirect 1"
	StageIndirect2 Stage = "indirect 2"
	StageIndirect3 Stage = "indirect 3"
)

// Progress reports faces finished within a stage
type Progress struct {
	Stage Stage
	Done  int
	Total int
}

// Percent returns Done/Total rounded up, 100 for an empty stage
func (p Progress) Percent() int {
	if p.Total == 0 {
		return 100
	}
	return (100*p.Done + p.Total - 1) / p.Total
}

// ProgressFunc receives progress updates from the collecting goroutine.
// It must not block for long.
type ProgressFunc func(Progress)

// StageStats summarizes one finished stage
type StageStats struct {
	Stage    Stage
	Faces    int
	Samples  int
	Duration time.Duration
}

// Result is the outcome of a bake. A canceled bake has no snippets.
type Result struct {
	Snippets []lightmap.Snippet
	Stats    []StageStats
	Canceled bool
}
