package helm

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ChristofferNissen/chartsmith/pkg/interpolate"
	"github.com/blang/semver/v4"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

// Assembler merges a configured chart with the fragment found on disk and writes Chart.yaml.
type Assembler struct {
	Fs afero.Fs
	// Properties are substituted into fragment files before parsing.
	Properties map[string]string
	Policy     interpolate.Policy
	Logger     *slog.Logger
}

func (a Assembler) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}
	return a.Logger
}

// Assemble returns the merged descriptor for cfg. The first fragment found in searchPaths is
// applied on top of the configured chart. A missing fragment is not an error.
func (a Assembler) Assemble(cfg Config, searchPaths []string) (Chart, error) {
	base := cfg.Chart
	if base.APIVersion == "" {
		base.APIVersion = DefaultAPIVersion
	}

	var fragment *Fragment
	path, err := FindFragment(a.Fs, searchPaths, a.logger())
	if err != nil {
		return Chart{}, err
	}
	if path != "" {
		a.logger().Debug("Applying chart fragment", slog.String("path", path))
		fragment, err = LoadFragment(a.Fs, path, a.Properties, a.Policy)
		if err != nil {
			return Chart{}, err
		}
		if len(fragment.Ignored) > 0 {
			a.logger().Warn("Ignoring chart fragment keys",
				slog.String("path", path),
				slog.Any("keys", fragment.Ignored),
			)
		}
	}

	chart, err := Merge(base, fragment)
	if err != nil {
		return Chart{}, err
	}
	if err := Validate(chart); err != nil {
		return Chart{}, err
	}

	if _, err := semver.ParseTolerant(chart.Version); err != nil {
		a.logger().Warn("Chart version is not SemVer, helm may reject the chart",
			slog.String("chart", chart.Name),
			slog.String("version", chart.Version),
		)
	}

	return chart, nil
}

// Validate checks the fields Chart.yaml cannot do without.
func Validate(c Chart) error {
	if c.Name == "" {
		return xerrors.Errorf("chart name: %w", ErrMissingRequiredField)
	}
	if c.Version == "" {
		return xerrors.Errorf("chart %s version: %w", c.Name, ErrMissingRequiredField)
	}
	return nil
}

// Marshal serializes c as Chart.yaml content.
func Marshal(c Chart) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write stores c at {outputDir}/Chart.yaml. The file is replaced in one step so a failed write
// never leaves a partial descriptor behind.
func (a Assembler) Write(c Chart, outputDir string) (string, error) {
	data, err := Marshal(c)
	if err != nil {
		return "", err
	}

	if err := a.Fs.MkdirAll(outputDir, os.ModePerm); err != nil {
		return "", err
	}
	tmp, err := afero.TempFile(a.Fs, outputDir, ".Chart.yaml-*")
	if err != nil {
		return "", err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = a.Fs.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", err
	}

	target := filepath.Join(outputDir, "Chart.yaml")
	if err := a.Fs.Rename(tmpName, target); err != nil {
		cleanup()
		return "", err
	}

	a.logger().Info("Wrote chart descriptor",
		slog.String("chart", c.Name),
		slog.String("version", c.Version),
		slog.String("path", target),
	)
	return target, nil
}

// CreateChartYAML assembles the chart for cfg and writes it to outputDir.
func (a Assembler) CreateChartYAML(cfg Config, searchPaths []string, outputDir string) (Chart, error) {
	chart, err := a.Assemble(cfg, searchPaths)
	if err != nil {
		return Chart{}, err
	}
	if _, err := a.Write(chart, outputDir); err != nil {
		return Chart{}, err
	}
	return chart, nil
}
