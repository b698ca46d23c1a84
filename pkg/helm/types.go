package helm

import (
	"fmt"
	"strings"

	"github.com/ChristofferNissen/chartsmith/pkg/registry"
)

// Type is the platform flavour a chart is generated for.
type Type string

const (
	Kubernetes Type = "kubernetes"
	OpenShift  Type = "openshift"
)

func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case Kubernetes, OpenShift:
		return t, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnsupportedChartType)
	}
}

type Maintainer struct {
	Name  string `yaml:"name,omitempty" json:"name,omitempty"`
	Email string `yaml:"email,omitempty" json:"email,omitempty"`
}

type Dependency struct {
	Name       string `yaml:"name" json:"name"`
	Version    string `yaml:"version" json:"version"`
	Repository string `yaml:"repository" json:"repository"`
}

// Chart is the descriptor written to Chart.yaml. Field order is the serialization order.
type Chart struct {
	APIVersion   string       `yaml:"apiVersion" json:"apiVersion"`
	Name         string       `yaml:"name" json:"name"`
	Version      string       `yaml:"version" json:"version"`
	Description  string       `yaml:"description,omitempty" json:"description,omitempty"`
	Home         string       `yaml:"home,omitempty" json:"home,omitempty"`
	Icon         string       `yaml:"icon,omitempty" json:"icon,omitempty"`
	Engine       string       `yaml:"engine,omitempty" json:"engine,omitempty"`
	Sources      []string     `yaml:"sources,omitempty" json:"sources,omitempty"`
	Keywords     []string     `yaml:"keywords,omitempty" json:"keywords,omitempty"`
	Maintainers  []Maintainer `yaml:"maintainers,omitempty" json:"maintainers,omitempty"`
	Dependencies []Dependency `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
}

// Fragment is a partial Chart read from disk. A nil field is absent and leaves the base untouched.
type Fragment struct {
	APIVersion   *string       `yaml:"apiVersion"`
	Name         *string       `yaml:"name"`
	Version      *string       `yaml:"version"`
	Description  *string       `yaml:"description"`
	Home         *string       `yaml:"home"`
	Icon         *string       `yaml:"icon"`
	Engine       *string       `yaml:"engine"`
	Sources      *[]string     `yaml:"sources"`
	Keywords     *[]string     `yaml:"keywords"`
	Maintainers  *[]Maintainer `yaml:"maintainers"`
	Dependencies *[]Dependency `yaml:"dependencies"`

	Ignored []string `yaml:"-"`
}

// Config holds everything needed to generate, package and publish the project's charts.
type Config struct {
	Chart              Chart                `yaml:"chart"`
	Types              []Type               `yaml:"types"`
	SourceDir          string               `yaml:"sourceDir"`
	OutputDir          string               `yaml:"outputDir"`
	TarballOutputDir   string               `yaml:"tarballOutputDir"`
	ChartExtension     string               `yaml:"chartExtension"`
	FragmentDirs       []string             `yaml:"fragmentDirs"`
	StableRepository   *registry.Repository `yaml:"stableRepository"`
	SnapshotRepository *registry.Repository `yaml:"snapshotRepository"`
}

const (
	DefaultAPIVersion     = "v1"
	DefaultChartExtension = "tar.gz"
	DefaultSourceDir      = "src/main/chartsmith"
	DefaultOutputDir      = "target/chartsmith/helm"
)

// ChartTypes returns the configured types, kubernetes when none are set.
func (c Config) ChartTypes() []Type {
	if len(c.Types) == 0 {
		return []Type{Kubernetes}
	}
	return c.Types
}

// TarballDir returns the archive output root, the chart output dir when unset.
func (c Config) TarballDir() string {
	if c.TarballOutputDir != "" {
		return c.TarballOutputDir
	}
	return c.OutputDir
}

// Extension returns the archive extension without a leading dot.
func (c Config) Extension() string {
	if c.ChartExtension == "" {
		return DefaultChartExtension
	}
	return strings.TrimPrefix(c.ChartExtension, ".")
}
