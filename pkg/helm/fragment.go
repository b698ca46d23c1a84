package helm

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/ChristofferNissen/chartsmith/pkg/interpolate"
	"github.com/jinzhu/copier"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// FragmentNames are the fragment file names looked up in every search path, in order.
var FragmentNames = []string{"Chart.helm.yaml", "Chart.helm.yml", "Chart.helm.json"}

// FindFragment returns the first fragment file present in searchPaths, or "" when there is none.
func FindFragment(fs afero.Fs, searchPaths []string, logger *slog.Logger) (string, error) {
	found := ""
	for _, dir := range searchPaths {
		for _, name := range FragmentNames {
			p := filepath.Join(dir, name)
			ok, err := afero.Exists(fs, p)
			if err != nil {
				return "", err
			}
			if !ok {
				continue
			}
			if found == "" {
				found = p
				continue
			}
			logger.Warn("Ignoring chart fragment, another one takes precedence",
				slog.String("path", p),
				slog.String("used", found),
			)
		}
	}
	return found, nil
}

// ParseFragment interpolates ${property} references in data and decodes the result.
// Empty content is an empty fragment. The content must hold a single YAML document;
// top-level keys a fragment cannot override are recorded in Fragment.Ignored.
func ParseFragment(data []byte, props map[string]string, policy interpolate.Policy) (*Fragment, error) {
	content, err := interpolate.Interpolate(string(data), props, policy)
	if err != nil {
		return nil, err
	}

	dec := yaml.NewDecoder(bytes.NewBufferString(content))

	f := &Fragment{}
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return f, nil
		}
		return nil, err
	}

	var rest yaml.Node
	if err := dec.Decode(&rest); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, ErrMultipleDocuments
	}

	if err := doc.Decode(f); err != nil {
		return nil, err
	}
	f.Ignored = ignoredKeys(&doc)
	return f, nil
}

var fragmentKeys = func() map[string]bool {
	keys := map[string]bool{}
	t := reflect.TypeOf(Fragment{})
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("yaml"), ",")
		if name != "" && name != "-" {
			keys[name] = true
		}
	}
	return keys
}()

func ignoredKeys(doc *yaml.Node) []string {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	m := doc.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil
	}

	var ignored []string
	for i := 0; i+1 < len(m.Content); i += 2 {
		if k := m.Content[i].Value; !fragmentKeys[k] {
			ignored = append(ignored, k)
		}
	}
	return ignored
}

// LoadFragment reads and parses the fragment at path. Failures are *FragmentParseError.
func LoadFragment(fs afero.Fs, path string, props map[string]string, policy interpolate.Policy) (*Fragment, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, &FragmentParseError{Path: path, Err: err}
	}
	f, err := ParseFragment(data, props, policy)
	if err != nil {
		return nil, &FragmentParseError{Path: path, Err: err}
	}
	return f, nil
}

// Merge returns a copy of base with every field present in f replacing the base field wholesale.
func Merge(base Chart, f *Fragment) (Chart, error) {
	var out Chart
	if err := copier.CopyWithOption(&out, &base, copier.Option{DeepCopy: true}); err != nil {
		return Chart{}, err
	}
	if f == nil {
		return out, nil
	}

	replace(&out.APIVersion, f.APIVersion)
	replace(&out.Name, f.Name)
	replace(&out.Version, f.Version)
	replace(&out.Description, f.Description)
	replace(&out.Home, f.Home)
	replace(&out.Icon, f.Icon)
	replace(&out.Engine, f.Engine)
	replace(&out.Sources, f.Sources)
	replace(&out.Keywords, f.Keywords)
	replace(&out.Maintainers, f.Maintainers)
	replace(&out.Dependencies, f.Dependencies)

	return out, nil
}

func replace[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
