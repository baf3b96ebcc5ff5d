package spreadsheet

// cellKind tags which of the three content variants a Cell currently
// holds: Empty, Text, or Formula.
type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellText
	cellFormula
)

// escapeChar forces a formula-looking or apostrophe-leading string to be
// treated as text.
const escapeChar = '\''

// Cell holds one of Empty / Text(raw) / Formula(expression, ast, cache).
// Dependency edges for a Cell are tracked by the owning Sheet's
// dependencyGraph, keyed by the Cell's Position - Cell itself only owns
// its content variant and cache.
type Cell struct {
	kind    cellKind
	raw     string   // Text: the raw string as typed, including any leading escape char
	formula *Formula // Formula: the parsed expression
	cache   *CellValue
}

// newEmptyCell returns a cell in the Empty variant.
func newEmptyCell() *Cell {
	return &Cell{kind: cellEmpty}
}

// setContent mutates the cell's content after the caller (Sheet) has
// already run the edit protocol's probe/cycle-check; it never fails,
// since the candidate content was already built successfully by
// buildCandidate.
func (c *Cell) setContent(candidate *Cell) {
	c.kind = candidate.kind
	c.raw = candidate.raw
	c.formula = candidate.formula
	c.cache = nil
}

// buildCandidate parses text into a new, unattached Cell without mutating
// c: "" becomes Empty, a leading '=' followed by at least one more
// character becomes Formula, anything else becomes Text. Returns a
// *ParseError if text is a formula that fails to parse.
func buildCandidate(text string) (*Cell, error) {
	switch {
	case text == "":
		return newEmptyCell(), nil
	case len(text) >= 2 && text[0] == '=':
		f, err := ParseFormula(text[1:])
		if err != nil {
			return nil, err
		}
		return &Cell{kind: cellFormula, formula: f}, nil
	default:
		return &Cell{kind: cellText, raw: text}, nil
	}
}

// clearedCell returns a fresh Empty cell, equivalent to set("").
func clearedCell() *Cell {
	return newEmptyCell()
}

// valueWith returns the cell's current value. Formula cells memoize: this
// evaluates on demand when the cache is empty, via lookup.
func (c *Cell) valueWith(lookup lookupFunc) CellValue {
	switch c.kind {
	case cellEmpty:
		return EmptyValue
	case cellText:
		if len(c.raw) > 0 && c.raw[0] == escapeChar {
			return TextValue(c.raw[1:])
		}
		return TextValue(c.raw)
	case cellFormula:
		if c.cache != nil {
			return *c.cache
		}
		n, err := c.formula.Evaluate(lookup)
		var v CellValue
		if err != nil {
			if ferr, ok := err.(FormulaError); ok {
				v = CellValue{Kind: KindError, Err: ferr}
			} else {
				v = ErrorValue(ErrValue)
			}
		} else {
			v = NumberValue(n)
		}
		c.cache = &v
		return v
	default:
		return EmptyValue
	}
}

// Text returns the cell's original/canonical display text: "" for Empty,
// raw for Text, and "=" + the formula's canonical Expression() for
// Formula (the canonical form, not necessarily the original input text).
func (c *Cell) Text() string {
	switch c.kind {
	case cellText:
		return c.raw
	case cellFormula:
		return "=" + c.formula.Expression()
	default:
		return ""
	}
}

// ReferencedCells delegates to the current variant: empty for
// Empty/Text, the formula's referenced positions for Formula.
func (c *Cell) ReferencedCells() []Position {
	if c.kind != cellFormula {
		return nil
	}
	return c.formula.ReferencedCells()
}

// invalidateCache clears a memoized Formula result. A no-op for
// non-Formula cells or an already-clear cache; callers use the return
// value to implement the invalidation walk's monotonic short-circuit:
// false means the subtree below was already invalidated by a prior edit
// and can be pruned.
func (c *Cell) invalidateCache() (cleared bool) {
	if c.cache == nil {
		return false
	}
	c.cache = nil
	return true
}
