package spreadsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCandidateVariants(t *testing.T) {
	empty, err := buildCandidate("")
	require.NoError(t, err)
	assert.Equal(t, cellEmpty, empty.kind)

	text, err := buildCandidate("hello")
	require.NoError(t, err)
	assert.Equal(t, cellText, text.kind)
	assert.Equal(t, "hello", text.Text())

	formula, err := buildCandidate("=1+2")
	require.NoError(t, err)
	assert.Equal(t, cellFormula, formula.kind)
}

func TestBuildCandidateRejectsBadFormula(t *testing.T) {
	_, err := buildCandidate("=1+")
	assert.Error(t, err)
}

func TestCellTextEscapePrefix(t *testing.T) {
	c, err := buildCandidate("'=not a formula")
	require.NoError(t, err)
	assert.Equal(t, "'=not a formula", c.Text())
	assert.Equal(t, "=not a formula", c.valueWith(noRefs).Text)
}

func TestCellFormulaTextIsCanonical(t *testing.T) {
	c, err := buildCandidate("=1-2-3")
	require.NoError(t, err)
	assert.Equal(t, "=1-2-3", c.Text())
}

func TestCellFormulaMemoizesCache(t *testing.T) {
	c, err := buildCandidate("=1+1")
	require.NoError(t, err)
	v := c.valueWith(noRefs)
	assert.Equal(t, 2.0, v.Number)
	require.NotNil(t, c.cache)

	assert.True(t, c.invalidateCache())
	assert.Nil(t, c.cache)
	assert.False(t, c.invalidateCache())
}

func TestCellEmptyAndTextHaveNoReferences(t *testing.T) {
	e, err := buildCandidate("")
	require.NoError(t, err)
	assert.Nil(t, e.ReferencedCells())

	c, err := buildCandidate("plain text")
	require.NoError(t, err)
	assert.Nil(t, c.ReferencedCells())
}

func TestCellFormulaReferencedCells(t *testing.T) {
	c, err := buildCandidate("=A1+B2")
	require.NoError(t, err)
	assert.Equal(t, []Position{{Row: 0, Col: 0}, {Row: 1, Col: 1}}, c.ReferencedCells())
}
