package image

import "strings"

// Sanitize turns name into a token that is safe as a registry path component: at most two
// underscores in a row, no consecutive dots, only [a-z0-9._-]. The run trackers follow the
// emitted characters, which keeps Sanitize idempotent.
func Sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	underscores := 0
	lastWasDot := false
	for _, c := range name {
		switch {
		case c == '_':
			underscores++
			if underscores <= 2 {
				b.WriteRune(c)
			}
		case c == '.':
			if !lastWasDot {
				b.WriteRune(c)
				lastWasDot = true
				underscores = 0
			}
		case isNameChar(c):
			b.WriteRune(c)
			underscores = 0
			lastWasDot = false
		}
	}

	return strings.ToLower(b.String())
}

func isNameChar(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-'
}
