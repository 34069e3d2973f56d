package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrepareDescription(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text untouched",
			input:    "Backend Engineer\n\nWe use Go.",
			expected: "Backend Engineer\n\nWe use Go.",
		},
		{
			name:     "crlf and extra blank lines",
			input:    "Role: SWE\r\n\r\n\r\n\r\nLocation:   Remote\t ",
			expected: "Role: SWE\n\nLocation: Remote",
		},
		{
			name:     "html posting",
			input:    "<div><p>Backend Engineer</p><ul><li>Go</li><li>SQL</li></ul><script>track()</script></div>",
			expected: "Backend Engineer\n- Go\n- SQL",
		},
		{
			name:     "br tags inside markup",
			input:    "<div>Role: SWE<br>Term: Fall<br/></div>",
			expected: "Role: SWE\nTerm: Fall",
		},
		{
			name:     "stray br in plain text kept",
			input:    "Role: SWE<br>Term: Fall<br/>",
			expected: "Role: SWE<br>Term: Fall<br/>",
		},
		{
			name:     "prose mentioning tags kept",
			input:    "Frontend role. Must know semantic tags like <p>, <ul> and <a>.\nPay: $40/hr",
			expected: "Frontend role. Must know semantic tags like <p>, <ul> and <a>.\nPay: $40/hr",
		},
		{
			name:     "prose opening with a tag name kept",
			input:    "<p> and <li> are block elements; see the style guide.",
			expected: "<p> and <li> are block elements; see the style guide.",
		},
		{
			name:     "entities decoded in html",
			input:    "<p>R&amp;D team</p>",
			expected: "R&D team",
		},
		{
			name:     "angle brackets that are not markup",
			input:    "Salary <100k> negotiable",
			expected: "Salary <100k> negotiable",
		},
		{
			name:     "cleaning to nothing returns raw",
			input:    "<br>",
			expected: "<br>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PrepareDescription(tt.input))
		})
	}
}
