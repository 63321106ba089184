// internal/utils/text_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text untouched",
			input: "Savon de Marseille",
			want:  "Savon de Marseille",
		},
		{
			name:  "tags removed and whitespace collapsed",
			input: "<p>Cire   de soja</p>\n<p>faite main</p>",
			want:  "Cire de soja faite main",
		},
		{
			name:  "inline closing tag before punctuation",
			input: "<p>Cire de soja, faite <em>main</em>.</p>",
			want:  "Cire de soja, faite main.",
		},
		{
			name:  "entities decoded and French spacing before punctuation dropped",
			input: "Lin lav&eacute; fran&ccedil;ais !",
			want:  "Lin lavé français!",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripHTML(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Savon", Truncate("Savon", 10))
	assert.Equal(t, "Savon de…", Truncate("Savon de Marseille", 10))
	assert.Equal(t, "", Truncate("Savon", 0))
}
