package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPedestrianLinksWithinRadius(t *testing.T) {
	points := []Point{
		{StopID: "A", X: 0, Y: 0},
		{StopID: "B", X: 300, Y: 0},
		{StopID: "C", X: 5000, Y: 5000},
	}
	g := NewGrid(points, 500)
	links := g.PedestrianLinks(points)

	aTargets := map[string]bool{}
	for _, l := range links["A"] {
		aTargets[l.StopID] = true
	}
	assert.True(t, aTargets["A"], "self-pairs are included by design")
	assert.True(t, aTargets["B"])
	assert.False(t, aTargets["C"], "C is far outside the radius")
}

func TestPedestrianLinksAreSymmetric(t *testing.T) {
	points := []Point{
		{StopID: "A", X: 0, Y: 0},
		{StopID: "B", X: 300, Y: 0},
	}
	g := NewGrid(points, 500)
	links := g.PedestrianLinks(points)

	hasAB := false
	for _, l := range links["A"] {
		if l.StopID == "B" {
			hasAB = true
		}
	}
	hasBA := false
	for _, l := range links["B"] {
		if l.StopID == "A" {
			hasBA = true
		}
	}
	assert.True(t, hasAB)
	assert.True(t, hasBA)
}

func TestZoneForLongitude(t *testing.T) {
	// Prague sits at roughly 14.4E, UTM zone 33.
	assert.Equal(t, 33, zoneForLongitude(14.4))
	// Zone boundaries: longitude 0 is the start of zone 31.
	assert.Equal(t, 31, zoneForLongitude(0))
	assert.Equal(t, 1, zoneForLongitude(-180))
}
