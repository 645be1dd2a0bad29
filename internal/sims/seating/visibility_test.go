package seating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstVisibleSkipsFloor(t *testing.T) {
	g := mustParse(t, "...#\n")

	sights := g.Visible(0, FirstVisible)
	assert.Equal(t, Sight{State: Occupied, Index: 3, Found: true}, sights[East])
	assert.Equal(t, 1, g.OccupiedAround(0, FirstVisible))

	sights = g.Visible(0, Immediate)
	assert.Equal(t, Sight{State: Floor, Index: 1, Found: true}, sights[East])
	assert.Equal(t, 0, g.OccupiedAround(0, Immediate))
}

func TestFirstVisibleOnlyFloorIsNotFound(t *testing.T) {
	g := mustParse(t, "L...\n")
	sights := g.Visible(0, FirstVisible)
	for _, s := range sights {
		assert.False(t, s.Found)
	}
}

func TestFirstVisibleSeesEightOccupied(t *testing.T) {
	g := mustParse(t, ".......#.\n"+
		"...#.....\n"+
		".#.......\n"+
		".........\n"+
		"..#L....#\n"+
		"....#....\n"+
		".........\n"+
		"#........\n"+
		"...#.....\n")

	idx := g.Index(4, 3)
	assert.Equal(t, Empty, g.At(idx))
	assert.Equal(t, 8, g.OccupiedAround(idx, FirstVisible))
	assert.Equal(t, 2, g.OccupiedAround(idx, Immediate))
}

func TestFirstVisibleBlockedByEmptySeat(t *testing.T) {
	g := mustParse(t, ".............\n"+
		".L.L.#.#.#.#.\n"+
		".............\n")

	idx := g.Index(1, 1)
	sights := g.Visible(idx, FirstVisible)
	assert.Equal(t, Sight{State: Empty, Index: g.Index(1, 3), Found: true}, sights[East])
	assert.Equal(t, 0, g.OccupiedAround(idx, FirstVisible))
}

func TestFirstVisibleSeesNothing(t *testing.T) {
	g := mustParse(t, ".##.##.\n"+
		"#.#.#.#\n"+
		"##...##\n"+
		"...L...\n"+
		"##...##\n"+
		"#.#.#.#\n"+
		".##.##.\n")

	idx := g.Index(3, 3)
	assert.Equal(t, 0, g.OccupiedAround(idx, FirstVisible))
	for _, s := range g.Visible(idx, FirstVisible) {
		assert.False(t, s.Found)
	}
}

func TestVisibleDirectionsAreIndependent(t *testing.T) {
	g := mustParse(t, step2Immediate)

	sights := g.Visible(0, Immediate)
	assert.Equal(t, Floor, sights[East].State)
	assert.Equal(t, Empty, sights[SouthEast].State)
	assert.Equal(t, Occupied, sights[South].State)
	assert.False(t, sights[North].Found)

	sights = g.Visible(8, FirstVisible)
	assert.Equal(t, Sight{State: Occupied, Index: 9, Found: true}, sights[East])
	assert.Equal(t, Sight{State: Occupied, Index: 19, Found: true}, sights[SouthEast])
	assert.Equal(t, Sight{State: Empty, Index: 18, Found: true}, sights[South])
	assert.Equal(t, Sight{State: Empty, Index: 35, Found: true}, sights[SouthWest])
	assert.Equal(t, Sight{State: Occupied, Index: 6, Found: true}, sights[West])
	assert.False(t, sights[NorthWest].Found)
	assert.False(t, sights[North].Found)
	assert.False(t, sights[NorthEast].Found)
	assert.Equal(t, 3, g.OccupiedAround(8, FirstVisible))
}
