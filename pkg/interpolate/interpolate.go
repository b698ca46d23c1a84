// Package interpolate expands ${property} references against a property map.
package interpolate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrUnresolvedProperty = errors.New("unresolved property")

// Policy decides what happens to a reference without a matching property.
type Policy int

const (
	// KeepLiteral leaves "${key}" in place.
	KeepLiteral Policy = iota
	// Blank replaces the reference with an empty string.
	Blank
	// Strict fails with ErrUnresolvedProperty.
	Strict
)

var referencePattern = regexp.MustCompile(`\$\{([^${}]+)\}`)

// ParsePolicy maps a configuration value to a Policy. The empty string selects KeepLiteral.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "literal", "keep":
		return KeepLiteral, nil
	case "blank", "empty":
		return Blank, nil
	case "strict", "fail":
		return Strict, nil
	default:
		return KeepLiteral, fmt.Errorf("interpolate: unknown policy %q", s)
	}
}

func (p Policy) String() string {
	switch p {
	case Blank:
		return "blank"
	case Strict:
		return "strict"
	default:
		return "literal"
	}
}

// Interpolate replaces every ${key} in s with props[key]. Only the braced form is recognised, so
// "$key" and "%x" sequences pass through untouched. Replacement values are not expanded again.
func Interpolate(s string, props map[string]string, policy Policy) (string, error) {
	if !strings.Contains(s, "${") {
		return s, nil
	}

	var missing []string
	out := referencePattern.ReplaceAllStringFunc(s, func(ref string) string {
		key := ref[2 : len(ref)-1]
		if v, ok := props[key]; ok {
			return v
		}
		switch policy {
		case Blank:
			return ""
		case Strict:
			missing = append(missing, key)
		}
		return ref
	})

	if len(missing) > 0 {
		return "", fmt.Errorf("%s: %w", strings.Join(missing, ", "), ErrUnresolvedProperty)
	}
	return out, nil
}
