package geo

import "math"

// Point is a stop's position in the Projector's planar frame.
type Point struct {
	StopID string
	X, Y   float64
}

// Link is a pedestrian connection between two stops, with the projected
// Manhattan distance between them in metres.
type Link struct {
	StopID string
	Meters float64
}

type cellKey struct {
	cx, cy int
}

// Grid buckets points into radius-sized square cells so that nearby-point
// enumeration is a 3×3 cell scan instead of an all-pairs comparison.
type Grid struct {
	radius float64
	cells  map[cellKey][]Point
}

// NewGrid buckets points into cells of the given radius.
func NewGrid(points []Point, radius float64) *Grid {
	g := &Grid{
		radius: radius,
		cells:  map[cellKey][]Point{},
	}
	for _, p := range points {
		k := g.cellOf(p.X, p.Y)
		g.cells[k] = append(g.cells[k], p)
	}
	return g
}

func (g *Grid) cellOf(x, y float64) cellKey {
	return cellKey{cx: int(math.Floor(x / g.radius)), cy: int(math.Floor(y / g.radius))}
}

// PedestrianLinks returns, for every stop, the set of stops (including
// the stop itself, as a zero-distance self-link) within the grid's radius
// by Manhattan distance in the planar frame. The 3×3
// neighbourhood scan is exhaustive because the radius equals the cell
// size: any point within Manhattan distance R of (x, y) lies in (x, y)'s
// cell or one of its eight neighbours.
func (g *Grid) PedestrianLinks(points []Point) map[string][]Link {
	links := map[string][]Link{}

	for _, p := range points {
		center := g.cellOf(p.X, p.Y)
		var candidates []Point
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				k := cellKey{cx: center.cx + dx, cy: center.cy + dy}
				candidates = append(candidates, g.cells[k]...)
			}
		}

		for _, c := range candidates {
			d := manhattan(p.X, p.Y, c.X, c.Y)
			if d <= g.radius {
				links[p.StopID] = append(links[p.StopID], Link{StopID: c.StopID, Meters: d})
			}
		}
	}

	return links
}

func manhattan(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y2
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
