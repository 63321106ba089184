// internal/utils/slug_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Savon de Marseille":     "savon-de-marseille",
		"  L'Épicerie Fine  ":    "l-epicerie-fine",
		"Bretagne":               "bretagne",
		"Château--Margaux":       "chateau-margaux",
		"Côte d'Azur!":           "cote-d-azur",
		"already-a-slug":         "already-a-slug",
		"UPPER Case 123":         "upper-case-123",
		"---":                    "",
		"façon Française (2024)": "facon-francaise-2024",
	}

	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), "input %q", input)
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{
		"Savon de Marseille",
		"L'Épicerie Fine",
		"-- weird -- input --",
		"déjà-vu",
	}

	for _, input := range inputs {
		once := Slugify(input)
		assert.Equal(t, once, Slugify(once), "input %q", input)
	}
}

func TestSlugifyCharset(t *testing.T) {
	out := Slugify("Ça c'est PARIS — n°1 !")
	assert.True(t, IsValidSlug(out))
	for _, r := range out {
		valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
		assert.True(t, valid, "unexpected rune %q in %q", r, out)
	}
	assert.NotContains(t, out, "--")
}

func TestIsValidSlug(t *testing.T) {
	assert.True(t, IsValidSlug("savon-de-marseille"))
	assert.False(t, IsValidSlug(""))
	assert.False(t, IsValidSlug("Not A Slug"))
	assert.False(t, IsValidSlug("trailing-"))
	assert.False(t, IsValidSlug("-leading"))
	assert.False(t, IsValidSlug("double--hyphen"))
}
