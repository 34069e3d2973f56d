package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnName(t *testing.T) {
	tests := []struct {
		col      int
		expected string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{701, "ZZ"},
		{702, "AAA"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			name, err := ColumnName(tt.col)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, name)
		})
	}
}

func TestColumnName_Invalid(t *testing.T) {
	_, err := ColumnName(-1)
	assert.Error(t, err)
}

func TestCellName(t *testing.T) {
	cell, err := CellName(5, 2)
	require.NoError(t, err)
	assert.Equal(t, "C5", cell)

	_, err = CellName(0, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1-based")
}

func TestQualify(t *testing.T) {
	tests := []struct {
		name     string
		sheet    string
		expected string
	}{
		{name: "plain", sheet: "Job_Application_Tracker", expected: "Job_Application_Tracker!A:Z"},
		{name: "spaces", sheet: "Job Tracker", expected: "'Job Tracker'!A:Z"},
		{name: "apostrophe", sheet: "Sam's Jobs", expected: "'Sam''s Jobs'!A:Z"},
		{name: "no sheet", sheet: "", expected: "A:Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, qualify(tt.sheet, "A:Z"))
		})
	}
}

func TestTableHeader(t *testing.T) {
	assert.Nil(t, Table{}.Header())
	assert.Equal(t, []string{"Job Description"}, Table{{"Job Description"}, {"x"}}.Header())
}
