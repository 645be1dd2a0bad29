package seating

// Sight is what a seat sees along one direction. Found is false when the
// direction runs off the grid (or, for Immediate, when the neighbour is absent).
type Sight struct {
	State Cell
	Index int
	Found bool
}

// Visible resolves, for each direction, the neighbour relevant under v.
//
// Immediate yields the adjacent cell, which may be Floor. FirstVisible marches
// outward and yields the first Empty or Occupied cell; directions with only
// floor up to the edge are reported as not found.
func (g *Grid) Visible(index int, v Visibility) [8]Sight {
	var out [8]Sight
	for _, dir := range Directions {
		out[dir] = g.look(index, dir, v)
	}
	return out
}

// OccupiedAround counts the Occupied cells among the neighbours Visible reports.
func (g *Grid) OccupiedAround(index int, v Visibility) int {
	n := 0
	for _, dir := range Directions {
		if s := g.look(index, dir, v); s.Found && s.State == Occupied {
			n++
		}
	}
	return n
}

func (g *Grid) look(index int, dir Direction, v Visibility) Sight {
	if v == Immediate {
		n, ok := g.Neighbor(index, dir, 1)
		if !ok {
			return Sight{}
		}
		return Sight{State: g.cells[n], Index: n, Found: true}
	}

	reach := max(g.w, g.h)
	for d := 1; d <= reach; d++ {
		n, ok := g.Neighbor(index, dir, d)
		if !ok {
			return Sight{}
		}
		if c := g.cells[n]; c != Floor {
			return Sight{State: c, Index: n, Found: true}
		}
	}
	return Sight{}
}
