package spreadsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func pos(row, col int) Position { return Position{Row: row, Col: col} }

func TestDependencyGraphSetPrecedentsKeepsEdgesMutuallyConsistent(t *testing.T) {
	g := newDependencyGraph()
	a, b := pos(0, 0), pos(1, 0)
	g.setPrecedents(a, []Position{b})

	assert.True(t, g.hasDependents(b))
	assert.False(t, g.hasDependents(a))

	g.setPrecedents(a, nil)
	assert.False(t, g.hasDependents(b))
}

func TestDependencyGraphWouldCycleDetectsSelfReference(t *testing.T) {
	g := newDependencyGraph()
	a := pos(0, 0)
	cycles, through := g.wouldCycle(a, []Position{a})
	assert.True(t, cycles)
	assert.Equal(t, a, through)
}

func TestDependencyGraphWouldCycleDetectsIndirectCycle(t *testing.T) {
	g := newDependencyGraph()
	a, b, c := pos(0, 0), pos(1, 0), pos(2, 0)
	g.setPrecedents(b, []Position{c})
	g.setPrecedents(c, []Position{a})

	cycles, through := g.wouldCycle(a, []Position{b})
	assert.True(t, cycles)
	// c is the last edge of the cycle (c -> a), not a itself.
	assert.Equal(t, c, through)
}

func TestDependencyGraphWouldCycleAllowsDiamond(t *testing.T) {
	g := newDependencyGraph()
	a, b, c, d := pos(0, 0), pos(1, 0), pos(2, 0), pos(3, 0)
	g.setPrecedents(b, []Position{a})
	g.setPrecedents(c, []Position{a})

	cycles, _ := g.wouldCycle(d, []Position{b, c})
	assert.False(t, cycles)
}

func TestDependencyGraphInvalidateShortCircuits(t *testing.T) {
	g := newDependencyGraph()
	a, b, c := pos(0, 0), pos(1, 0), pos(2, 0)
	g.setPrecedents(b, []Position{a})
	g.setPrecedents(c, []Position{b})

	cells := map[Position]*Cell{
		a: newEmptyCell(),
		b: newEmptyCell(),
		c: newEmptyCell(),
	}
	one := NumberValue(1)
	cells[b].cache = &one
	cells[c].cache = &one

	g.invalidate(a, cells)
	assert.Nil(t, cells[b].cache)
	assert.Nil(t, cells[c].cache)

	// b's cache is already clear, so a second walk from a stops at b and
	// does not descend to c.
	cells[c].cache = &one
	g.invalidate(a, cells)
	assert.NotNil(t, cells[c].cache)
}
