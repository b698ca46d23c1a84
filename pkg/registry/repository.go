package registry

import (
	"errors"
	"fmt"
	"strings"
)

// Type is the kind of chart repository, which decides the upload protocol.
type Type string

const (
	Artifactory Type = "artifactory"
	Nexus       Type = "nexus"
	ChartMuseum Type = "chartmuseum"
	OCI         Type = "oci"
)

var ErrUnsupportedRepositoryType = errors.New("unsupported repository type")

// ParseType maps a configuration value to a repository Type.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Known() {
		return "", fmt.Errorf("%q: %w", s, ErrUnsupportedRepositoryType)
	}
	return t, nil
}

// Known reports whether t is one of the supported repository types.
func (t Type) Known() bool {
	switch t {
	case Artifactory, Nexus, ChartMuseum, OCI:
		return true
	}
	return false
}

// Repository is a named upload destination for packaged charts.
type Repository struct {
	Name     string `yaml:"name"`
	Type     Type   `yaml:"type"`
	URL      string `yaml:"url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Valid reports whether the repository can be used for an upload. Credentials are not
// considered here.
func (r *Repository) Valid() bool {
	return r != nil && r.URL != "" && r.Type.Known()
}

func (r Repository) String() string {
	return fmt.Sprintf("%s (%s %s)", r.Name, r.Type, r.URL)
}
