package spreadsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormulaErrorStrings(t *testing.T) {
	assert.Equal(t, "#REF!", NewFormulaError(ErrRef).String())
	assert.Equal(t, "#VALUE!", NewFormulaError(ErrValue).String())
	assert.Equal(t, "#DIV/0!", NewFormulaError(ErrDiv0).String())
}

func TestCellValueString(t *testing.T) {
	assert.Equal(t, "", EmptyValue.String())
	assert.Equal(t, "42", NumberValue(42).String())
	assert.Equal(t, "3.5", NumberValue(3.5).String())
	assert.Equal(t, "hello", TextValue("hello").String())
	assert.Equal(t, "#DIV/0!", ErrorValue(ErrDiv0).String())
}

func TestFormulaErrorImplementsError(t *testing.T) {
	var err error = NewFormulaError(ErrValue)
	assert.Equal(t, "#VALUE!", err.Error())
}
