package spreadsheet

import (
	"fmt"
	"io"
)

// Sheet is a sparse, single-sheet table of Cells plus the dependency graph
// over their formulas. It owns every Cell it allocates and is the sole
// mutator of dependency edges - no other component reaches in to change a
// Cell's precedents/dependents outside the edit protocol below.
//
// There is exactly one Sheet, not a table of worksheets routed by name:
// cross-sheet references are out of scope, so storage is a single
// `map[Position]*Cell` with no worksheet or named-range indirection above
// it.
type Sheet struct {
	cells map[Position]*Cell
	graph *dependencyGraph
}

// NewSheet returns an empty Sheet.
func NewSheet() *Sheet {
	return &Sheet{
		cells: make(map[Position]*Cell),
		graph: newDependencyGraph(),
	}
}

func (s *Sheet) lookup(pos Position) CellValue {
	c, ok := s.cells[pos]
	if !ok {
		return EmptyValue
	}
	return c.valueWith(s.lookup)
}

// SetCell materializes pos (if not already allocated) and installs text as
// its content, running the full probe -> cycle-check -> commit ->
// invalidate protocol. Returns *InvalidPositionError, *ParseError, or
// *CircularDependencyError on rejection; on any rejection other than a
// successful probe's auto-materialization, the cell at pos is left
// exactly as it was before the call.
func (s *Sheet) SetCell(pos Position, text string) error {
	if !pos.IsValid() {
		return &InvalidPositionError{Position: pos}
	}

	// Probe: build the candidate off to the side; a parse failure here
	// never touches the Sheet at all.
	candidate, err := buildCandidate(text)
	if err != nil {
		return err
	}
	refs := candidate.ReferencedCells()

	// Auto-materialize referenced-but-missing positions as Empty cells.
	// This persists even if the edit is later rejected by the cycle check
	// below - it is required for edges to stay consistent and is treated
	// as observationally inert.
	for _, ref := range refs {
		if !ref.IsValid() {
			continue
		}
		if _, ok := s.cells[ref]; !ok {
			s.cells[ref] = newEmptyCell()
		}
	}

	// Cycle check: does installing these precedent edges on pos create a
	// cycle reachable from pos?
	if cycles, through := s.graph.wouldCycle(pos, refs); cycles {
		return &CircularDependencyError{Cell: pos, Through: through}
	}

	// Commit: swap content, then rewire precedent/dependent edges to
	// match the new content (setPrecedents tears down the old edge set
	// first, so both halves of the commit happen inside this one call).
	cell, ok := s.cells[pos]
	if !ok {
		cell = newEmptyCell()
		s.cells[pos] = cell
	}
	cell.setContent(candidate)
	s.graph.setPrecedents(pos, refs)

	// Invalidate: clear memoized results on every transitive dependent.
	s.graph.invalidate(pos, s.cells)

	return nil
}

// GetCell returns the cell allocated at pos, or (nil, nil) if pos has no
// allocated cell: it was never allocated (directly or via
// auto-materialization), or ClearCell freed it.
func (s *Sheet) GetCell(pos Position) (*Cell, error) {
	if !pos.IsValid() {
		return nil, &InvalidPositionError{Position: pos}
	}
	c, ok := s.cells[pos]
	if !ok {
		return nil, nil
	}
	return c, nil
}

// Value returns the current value of the cell at pos, evaluating and
// memoizing on demand; EmptyValue if pos is unallocated.
func (s *Sheet) Value(pos Position) (CellValue, error) {
	if !pos.IsValid() {
		return CellValue{}, &InvalidPositionError{Position: pos}
	}
	return s.lookup(pos), nil
}

// ClearCell resets the slot at pos to Empty, running the same edit
// protocol as SetCell (clearing a formula can never fail a cycle check,
// since an Empty cell has no references). If the slot still has
// dependents afterward, it stays allocated as an Empty cell; otherwise it
// is freed from the sparse map outright. A no-op if pos was never
// allocated.
func (s *Sheet) ClearCell(pos Position) error {
	if !pos.IsValid() {
		return &InvalidPositionError{Position: pos}
	}
	cell, ok := s.cells[pos]
	if !ok {
		return nil
	}
	cell.setContent(clearedCell())
	s.graph.setPrecedents(pos, nil)
	s.graph.invalidate(pos, s.cells)

	if !s.isReferenced(pos) {
		delete(s.cells, pos)
	}
	return nil
}

// isReferenced reports whether any other cell currently references pos,
// checked directly against the dependency graph the Sheet owns (Cell
// itself carries no dependents data; see graph.go).
func (s *Sheet) isReferenced(pos Position) bool {
	return s.graph.hasDependents(pos)
}

// PrintableSize returns the smallest bounding rectangle such that every
// cell outside it has empty text() - auto-materialized Empty cells (whose
// text() is always "") are invisible to this computation.
func (s *Sheet) PrintableSize() Size {
	maxRow, maxCol := -1, -1
	for pos, cell := range s.cells {
		if cell.Text() == "" {
			continue
		}
		if pos.Row > maxRow {
			maxRow = pos.Row
		}
		if pos.Col > maxCol {
			maxCol = pos.Col
		}
	}
	if maxRow < 0 {
		return Size{}
	}
	return Size{Rows: maxRow + 1, Cols: maxCol + 1}
}

// PrintValues writes the value() of every cell in the printable-size
// rectangle to out: tab-separated columns, newline-terminated rows. Empty
// or unallocated cells print as an empty field.
func (s *Sheet) PrintValues(out io.Writer) error {
	return s.printGrid(out, func(c *Cell) string {
		if c == nil {
			return ""
		}
		return c.valueWith(s.lookup).String()
	})
}

// PrintTexts writes the text() of every cell in the printable-size
// rectangle to out, in the same tab/newline grid as PrintValues.
func (s *Sheet) PrintTexts(out io.Writer) error {
	return s.printGrid(out, func(c *Cell) string {
		if c == nil {
			return ""
		}
		return c.Text()
	})
}

func (s *Sheet) printGrid(out io.Writer, field func(*Cell) string) error {
	size := s.PrintableSize()
	for row := 0; row < size.Rows; row++ {
		for col := 0; col < size.Cols; col++ {
			if col > 0 {
				if _, err := io.WriteString(out, "\t"); err != nil {
					return err
				}
			}
			cell := s.cells[Position{Row: row, Col: col}]
			if _, err := fmt.Fprint(out, field(cell)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(out, "\n"); err != nil {
			return err
		}
	}
	return nil
}
