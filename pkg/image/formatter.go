package image

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/xerrors"

	"github.com/ChristofferNissen/chartsmith/pkg/interpolate"
	"github.com/ChristofferNissen/chartsmith/pkg/project"
)

var ErrUnknownFormatToken = errors.New("unknown format token")

// a placeholder is '%', an optional fmt-style width/precision qualifier and a one letter code
var placeholderPattern = regexp.MustCompile(`%(-?[0-9]*(?:\.[0-9]+)?)([A-Za-z])`)

// Formatter computes image names from templates such as "%g/%a:%l".
type Formatter struct {
	Facts  project.Facts
	Now    time.Time
	Policy interpolate.Policy
}

func NewFormatter(facts project.Facts, now time.Time) Formatter {
	return Formatter{
		Facts:  facts,
		Now:    now,
		Policy: interpolate.KeepLiteral,
	}
}

// Format expands ${property} references first and %x placeholders second. An empty template
// yields an empty name without error.
func (f Formatter) Format(template string) (string, error) {
	if template == "" {
		return "", nil
	}

	name, err := interpolate.Interpolate(template, f.Facts.Properties, f.Policy)
	if err != nil {
		return "", xerrors.Errorf("image: formatting %q: %w", template, err)
	}

	name, err = f.replacePlaceholders(name)
	if err != nil {
		return "", xerrors.Errorf("image: formatting %q: %w", template, err)
	}
	return name, nil
}

// FormatImage formats template and parses the result as an image reference.
func (f Formatter) FormatImage(template string) (Image, error) {
	name, err := f.Format(template)
	if err != nil {
		return Image{}, err
	}
	if name == "" {
		return Image{}, nil
	}
	return RefToImage(name)
}

func (f Formatter) replacePlaceholders(s string) (string, error) {
	matches := placeholderPattern.FindAllStringSubmatchIndex(s, -1)
	if matches == nil {
		return s, nil
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		qualifier := s[m[2]:m[3]]
		code := Token(s[m[4]])

		value, err := f.resolve(code)
		if err != nil {
			return "", err
		}

		b.WriteString(s[last:m[0]])
		if qualifier != "" {
			value = fmt.Sprintf("%"+qualifier+"s", value)
		}
		b.WriteString(value)
		last = m[1]
	}
	b.WriteString(s[last:])

	return b.String(), nil
}
