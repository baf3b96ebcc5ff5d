package spreadsheet

// FormulaErrorCode is the closed set of evaluation error tags a formula
// can raise. Equality is by tag.
type FormulaErrorCode uint8

const (
	ErrRef FormulaErrorCode = iota + 1
	ErrValue
	ErrDiv0
)

// formulaErrorText maps each code to its fixed, exact printed form.
var formulaErrorText = map[FormulaErrorCode]string{
	ErrRef:   "#REF!",
	ErrValue: "#VALUE!",
	ErrDiv0:  "#DIV/0!",
}

// FormulaError is a value (not an exception) carrying one of the three
// evaluation error tags.
type FormulaError struct {
	Code FormulaErrorCode
}

// NewFormulaError builds a FormulaError for the given code.
func NewFormulaError(code FormulaErrorCode) FormulaError {
	return FormulaError{Code: code}
}

// Error implements the error interface so FormulaError can be returned
// from Formula.Evaluate directly.
func (e FormulaError) Error() string {
	return e.String()
}

// String returns the fixed printed form: "#REF!", "#VALUE!", or "#DIV/0!".
func (e FormulaError) String() string {
	return formulaErrorText[e.Code]
}

// ValueKind tags the variant held by a CellValue.
type ValueKind uint8

const (
	KindEmpty ValueKind = iota
	KindNumber
	KindText
	KindError
)

// CellValue is a tagged value: Empty, Number(float64), Text(string), or
// Error(FormulaError). Only the field matching Kind is meaningful.
type CellValue struct {
	Kind   ValueKind
	Number float64
	Text   string
	Err    FormulaError
}

// EmptyValue is the zero CellValue.
var EmptyValue = CellValue{Kind: KindEmpty}

// NumberValue builds a Number CellValue.
func NumberValue(n float64) CellValue {
	return CellValue{Kind: KindNumber, Number: n}
}

// TextValue builds a Text CellValue.
func TextValue(s string) CellValue {
	return CellValue{Kind: KindText, Text: s}
}

// ErrorValue builds an Error CellValue.
func ErrorValue(code FormulaErrorCode) CellValue {
	return CellValue{Kind: KindError, Err: NewFormulaError(code)}
}

// String renders the value the way a cell would print it: empty string
// for Empty, the decimal form of Number, the raw Text, or the fixed
// FormulaError form.
func (v CellValue) String() string {
	switch v.Kind {
	case KindNumber:
		return formatNumber(v.Number)
	case KindText:
		return v.Text
	case KindError:
		return v.Err.String()
	default:
		return ""
	}
}
