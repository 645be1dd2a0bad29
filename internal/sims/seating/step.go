package seating

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Step computes the generation that follows cur under rule. cur is only read;
// the result is a new grid. The boolean reports whether any cell changed.
func Step(cur *Grid, rule Rule) (*Grid, bool) {
	next := newBlankGrid(cur.w, cur.h)
	changed := StepInto(next, cur, rule)
	return next, changed
}

// StepInto writes the generation that follows cur into dst, which must have
// the same shape and must not alias cur.
func StepInto(dst, cur *Grid, rule Rule) bool {
	mustMatch(dst, cur)
	return stepRows(dst, cur, rule, 0, cur.h)
}

// StepParallel is StepInto with rows split into contiguous bands, one per
// worker. Every worker reads cur and writes a disjoint range of dst; Wait is
// the only synchronisation.
func StepParallel(dst, cur *Grid, rule Rule, workers int) bool {
	mustMatch(dst, cur)
	if workers <= 1 || cur.h < 2 {
		return stepRows(dst, cur, rule, 0, cur.h)
	}
	workers = min(workers, cur.h)
	band := (cur.h + workers - 1) / workers

	changed := make([]bool, workers)
	var eg errgroup.Group
	for i := 0; i < workers; i++ {
		start := i * band
		end := min(start+band, cur.h)
		if start >= end {
			break
		}
		eg.Go(func() error {
			changed[i] = stepRows(dst, cur, rule, start, end)
			return nil
		})
	}
	_ = eg.Wait()

	for _, c := range changed {
		if c {
			return true
		}
	}
	return false
}

func stepRows(dst, cur *Grid, rule Rule, fromRow, toRow int) bool {
	changed := false
	for i := fromRow * cur.w; i < toRow*cur.w; i++ {
		c := cur.cells[i]
		next := c
		switch c {
		case Empty:
			if cur.OccupiedAround(i, rule.Visibility) == 0 {
				next = Occupied
			}
		case Occupied:
			if cur.OccupiedAround(i, rule.Visibility) >= rule.Threshold {
				next = Empty
			}
		}
		dst.cells[i] = next
		if next != c {
			changed = true
		}
	}
	return changed
}

func mustMatch(dst, cur *Grid) {
	if dst.w != cur.w || dst.h != cur.h {
		panic(fmt.Sprintf("seating: step into %dx%d grid from %dx%d", dst.w, dst.h, cur.w, cur.h))
	}
	if len(dst.cells) > 0 && &dst.cells[0] == &cur.cells[0] {
		panic("seating: step destination aliases the current generation")
	}
}
