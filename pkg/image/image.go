package image

import (
	"fmt"
	"strings"

	"github.com/distribution/reference"
)

// RefToImage parses the reference string and returns an Image.
func RefToImage(r string) (Image, error) {
	ref, err := reference.ParseAnyReference(r)
	if err != nil {
		return Image{}, fmt.Errorf("failed to parse reference %q: %w", r, err)
	}

	img := Image{}

	switch r := ref.(type) {
	case reference.Canonical:
		img.Registry = reference.Domain(r)
		img.Repository = reference.Path(r)
		img.Digest = r.Digest().String()
		img.UseDigest = true
		if t, ok := r.(reference.Tagged); ok {
			img.Tag = t.Tag()
		}
	case reference.NamedTagged:
		img.Registry = reference.Domain(r)
		img.Repository = reference.Path(r)
		img.Tag = r.Tag()
	case reference.Named:
		img.Registry = reference.Domain(r)
		img.Repository = reference.Path(r)
	default:
		return img, fmt.Errorf("image reference %q not understood", r)
	}

	return img, nil
}

// Image is a parsed container image reference.
type Image struct {
	Registry   string
	Repository string
	Tag        string
	Digest     string
	UseDigest  bool
}

// IsEmpty determines if an image is empty (i.e., registry, repository, and tag are empty).
func (i Image) IsEmpty() bool {
	return i.Registry == "" && i.Repository == "" && i.Tag == ""
}

// TagOrDigest returns a string representation of either the tag or digest.
func (i Image) TagOrDigest() (string, error) {
	switch {
	case i.Tag != "" && i.Digest != "":
		return fmt.Sprintf("%s@%s", i.Tag, i.Digest), nil
	case i.Tag == "" && i.Digest != "":
		return i.Digest, nil
	case i.Tag != "" && i.Digest == "":
		return i.Tag, nil
	default:
		return "", fmt.Errorf("no tag or digest")
	}
}

// String returns the fully qualified reference, e.g. docker.io/sub/my-app:1.0.0.
func (i Image) String() string {
	if i.IsEmpty() {
		return ""
	}

	var refBuilder strings.Builder
	if i.Registry != "" {
		refBuilder.WriteString(strings.Trim(i.Registry, "/"))
		refBuilder.WriteString("/")
	}
	refBuilder.WriteString(strings.Trim(i.Repository, "/"))

	if i.Tag != "" {
		refBuilder.WriteString(":")
		refBuilder.WriteString(strings.TrimPrefix(i.Tag, ":"))
	}

	if i.UseDigest && i.Digest != "" {
		refBuilder.WriteString("@")
		refBuilder.WriteString(strings.TrimPrefix(i.Digest, "@"))
	}

	ref := refBuilder.String()
	res, err := reference.ParseAnyReference(ref)
	if err != nil {
		return ref
	}
	return res.String()
}

// ImageName returns the repository path without registry, tag or digest.
func (i Image) ImageName() (string, error) {
	res, err := reference.ParseNamed(i.String())
	if err != nil {
		return "", fmt.Errorf("failed to parse reference: %w", err)
	}
	return reference.Path(res), nil
}
