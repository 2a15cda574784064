package geometry

import (
	"sort"

	"github.com/df07/go-lightmap-baker/pkg/core"
)

const (
	LogZoneSize = 7
	ZoneSize    = 1 << LogZoneSize
	zoneMask    = ZoneSize - 1
)

// TruncToZone rounds every coordinate down to a multiple of ZoneSize
func TruncToZone(p core.IVec3) core.IVec3 {
	return core.IVec3{X: p.X &^ zoneMask, Y: p.Y &^ zoneMask, Z: p.Z &^ zoneMask}
}

// ZoneFor returns the zone of a face, decided by its bounding box minimum
func ZoneFor(f Face) core.IVec3 {
	return TruncToZone(f.MinCorner())
}

// GroupByZone returns face indices per zone, plus the zones in a stable order
func GroupByZone(faces []Face) (map[core.IVec3][]int, []core.IVec3) {
	byZone := make(map[core.IVec3][]int)
	for i, f := range faces {
		zone := ZoneFor(f)
		byZone[zone] = append(byZone[zone], i)
	}

	zones := make([]core.IVec3, 0, len(byZone))
	for zone := range byZone {
		zones = append(zones, zone)
	}
	sort.Slice(zones, func(i, j int) bool { return zones[i].Less(zones[j]) })

	return byZone, zones
}
