package core

import (
	"math"
	"testing"
)

func TestVec3_Cross(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec3
		expected Vec3
	}{
		{"X cross Y", NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(0, 0, 1)},
		{"Y cross Z", NewVec3(0, 1, 0), NewVec3(0, 0, 1), NewVec3(1, 0, 0)},
		{"Z cross X", NewVec3(0, 0, 1), NewVec3(1, 0, 0), NewVec3(0, 1, 0)},
		{"Parallel", NewVec3(2, 0, 0), NewVec3(3, 0, 0), NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cross(tt.b); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestIVec3_MatchesFloatCross(t *testing.T) {
	a := NewIVec3(2, -1, 3)
	b := NewIVec3(0, 4, -2)
	if got, want := a.Cross(b).ToVec3(), a.ToVec3().Cross(b.ToVec3()); got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestIVec3_Less(t *testing.T) {
	tests := []struct {
		a, b     IVec3
		expected bool
	}{
		{NewIVec3(0, 0, 0), NewIVec3(1, 0, 0), true},
		{NewIVec3(1, 0, 0), NewIVec3(0, 5, 5), false},
		{NewIVec3(1, 2, 3), NewIVec3(1, 2, 4), true},
		{NewIVec3(1, 2, 3), NewIVec3(1, 2, 3), false},
	}
	for _, tt := range tests {
		if got := tt.a.Less(tt.b); got != tt.expected {
			t.Errorf("%v < %v: expected %v, got %v", tt.a, tt.b, tt.expected, got)
		}
	}
}

func TestHitRecord_KeepsNearest(t *testing.T) {
	hr := NewHitRecord()
	if hr.Hit || !math.IsInf(hr.T, 1) {
		t.Fatalf("Expected empty record, got %+v", hr)
	}

	hr.Record(3, NewVec3(0, 1, 0), NewVec2(0.1, 0.2), 1)
	hr.Record(5, NewVec3(1, 0, 0), NewVec2(0.3, 0.4), 2)
	hr.Record(2, NewVec3(0, 0, 1), NewVec2(0.5, 0.6), 3)

	if hr.ID != 3 || hr.T != 2 {
		t.Errorf("Expected nearest hit id 3 at t=2, got id %d at t=%f", hr.ID, hr.T)
	}
	if hr.UV != NewVec2(0.5, 0.6) {
		t.Errorf("Expected UV of nearest hit, got %v", hr.UV)
	}
}

func TestAABB_HitAndContains(t *testing.T) {
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		expected bool
	}{
		{"through center", NewRay(NewVec3(-1, 0.5, 0.5), NewVec3(1, 0, 0)), true},
		{"pointing away", NewRay(NewVec3(-1, 0.5, 0.5), NewVec3(-1, 0, 0)), false},
		{"parallel outside", NewRay(NewVec3(-1, 2, 0.5), NewVec3(1, 0, 0)), false},
		{"from inside", NewRay(NewVec3(0.5, 0.5, 0.5), NewVec3(0, 1, 0)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, 0, math.Inf(1)); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}

	if !box.Contains(NewVec3(1, 0.5, 0.5)) {
		t.Error("Expected boundary point to be contained")
	}
	if box.ContainsStrict(NewVec3(1, 0.5, 0.5)) {
		t.Error("Expected boundary point to be outside the strict interior")
	}
	if box.LongestAxis() != 2 {
		t.Errorf("Expected ties to resolve to Z, got %d", box.LongestAxis())
	}
}
