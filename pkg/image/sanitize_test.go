package image

import (
	"regexp"
	"strings"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"My_Group___Name..Test", "my_group__name.test"},
		{"example", "example"},
		{"My-App", "my-app"},
		{"a__b", "a__b"},
		{"a_____b", "a__b"},
		{"a...b", "a.b"},
		{"__.__", "__.__"},
		{"._.", "._"},
		{"a.!.b", "a.b"},
		{"__!_", "__"},
		{"Ärger&Co", "rgerco"},
		{"", ""},
		{"???", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Sanitize(tt.input), tt.input)
	}
}

var sanitizedCharset = regexp.MustCompile(`^[a-z0-9._-]*$`)

func TestSanitizeInvariants(t *testing.T) {
	idempotent := func(s string) bool {
		once := Sanitize(s)
		return Sanitize(once) == once
	}
	if err := quick.Check(idempotent, nil); err != nil {
		t.Error(err)
	}

	wellFormed := func(s string) bool {
		out := Sanitize(s)
		return sanitizedCharset.MatchString(out) &&
			!strings.Contains(out, "___") &&
			!strings.Contains(out, "..") &&
			out == strings.ToLower(out)
	}
	if err := quick.Check(wellFormed, nil); err != nil {
		t.Error(err)
	}
}

func TestSanitizeInvariantsOnNameLikeInput(t *testing.T) {
	inputs := []string{
		"._._._", "_._._.", "..__..__", "a._.b", "A_._B..c___D", "x.!._", "._!_.", "-_-.-_-",
	}
	for _, in := range inputs {
		out := Sanitize(in)
		assert.Equal(t, out, Sanitize(out), in)
		assert.NotContains(t, out, "..", in)
		assert.NotContains(t, out, "___", in)
	}
}
