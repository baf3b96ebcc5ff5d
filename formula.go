package spreadsheet

import "math"

// Formula is a parsed arithmetic expression over cell references. It owns
// its AST and exposes evaluate/print directly, with no interning,
// ref-counting, or worksheet-ownership machinery: there is exactly one
// Sheet here, so nothing needs deduplicating across a multi-sheet
// workbook.
type Formula struct {
	source string // the original expression text, leading '=' already stripped
	ast    astNode
}

// ParseFormula parses expr (already stripped of its leading '=') into a
// Formula. It returns a *ParseError on any syntactic error; the caller
// must not install a Formula built from a failed parse.
func ParseFormula(expr string) (*Formula, error) {
	ast, err := parse(expr)
	if err != nil {
		return nil, err
	}
	return &Formula{source: expr, ast: ast}, nil
}

// Evaluate walks the AST against lookup, producing a Number or raising a
// FormulaError. A non-finite result is reported as Div0.
func (f *Formula) Evaluate(lookup lookupFunc) (value float64, ferr error) {
	v, err := f.ast.eval(lookup)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, NewFormulaError(ErrDiv0)
	}
	return v, nil
}

// ReferencedCells returns the deduplicated sequence of positions the
// formula references, with invalid positions filtered out, in the AST's
// left-to-right traversal order with duplicates removed.
func (f *Formula) ReferencedCells() []Position {
	raw := f.ast.appendRefs(nil)
	seen := make(map[Position]struct{}, len(raw))
	result := make([]Position, 0, len(raw))
	for _, p := range raw {
		if !p.IsValid() {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		result = append(result, p)
	}
	return result
}

// Expression returns the canonical printable form of the AST: minimum
// necessary parentheses, left-associative infix, unary sign attached
// directly to its operand.
func (f *Formula) Expression() string {
	return f.ast.print(0, false)
}
