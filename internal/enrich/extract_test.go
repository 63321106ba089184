// internal/enrich/extract_test.go
package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "bare object",
			input:    `{"tags": ["lin"]}`,
			expected: `{"tags": ["lin"]}`,
		},
		{
			name:     "markdown fence",
			input:    "Here you go:\n```json\n{\"tags\": [\"lin\"]}\n```\nHope that helps!",
			expected: `{"tags": ["lin"]}`,
		},
		{
			name:     "nested objects",
			input:    `prefix {"attributes": {"care": "hand wash"}} suffix`,
			expected: `{"attributes": {"care": "hand wash"}}`,
		},
		{
			name:     "braces inside strings",
			input:    `{"tags": ["weird {brace}"], "attributes": {}}`,
			expected: `{"tags": ["weird {brace}"], "attributes": {}}`,
		},
		{
			name:     "escaped quote inside string",
			input:    `{"tags": ["guillemet \" et accolade }"]}`,
			expected: `{"tags": ["guillemet \" et accolade }"]}`,
		},
		{
			name:    "no object at all",
			input:   "Sorry, I cannot classify this product.",
			wantErr: true,
		},
		{
			name:    "unbalanced",
			input:   `{"tags": ["lin"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParsePayload(t *testing.T) {
	payload, err := ParsePayload("```json\n{\"tags\": [\"bougie\", \"cire\"], \"materials\": [\"cire de soja\"]}\n```")
	assert.NoError(t, err)
	assert.Equal(t, []string{"bougie", "cire"}, payload.Tags)
	assert.Equal(t, []string{"cire de soja"}, payload.Materials)
	// Missing fields come back initialized
	assert.NotNil(t, payload.Attributes)

	payload, err = ParsePayload(`{"attributes": {"origine": "Provence"}}`)
	assert.NoError(t, err)
	assert.Empty(t, payload.Tags)
	assert.Equal(t, "Provence", payload.Attributes["origine"])

	_, err = ParsePayload("no json here")
	assert.Error(t, err)

	_, err = ParsePayload(`{"tags": "not-an-array"}`)
	assert.Error(t, err)
}
