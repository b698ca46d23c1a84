package helm

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ChristofferNissen/chartsmith/pkg/util/file"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// Generator lays out one chart directory per chart type under the configured output dir.
type Generator struct {
	Fs        afero.Fs
	Assembler Assembler
}

// GeneratedChart describes a chart directory written by the Generator.
type GeneratedChart struct {
	Type      Type
	Dir       string
	Chart     Chart
	Templates []string
}

// FragmentSearchPaths returns the fragment lookup order for chart type t.
func FragmentSearchPaths(cfg Config, t Type) []string {
	paths := []string{filepath.Join(cfg.SourceDir, string(t)), cfg.SourceDir}
	return append(paths, cfg.FragmentDirs...)
}

func isManifest(name string) bool {
	if name == "values.yaml" || slices.Contains(FragmentNames, name) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// Generate writes {outputDir}/{type} for every configured chart type. The source directory
// {sourceDir}/{type} must exist.
func (g Generator) Generate(cfg Config) ([]GeneratedChart, error) {
	logger := g.Assembler.logger()
	out := make([]GeneratedChart, 0, len(cfg.ChartTypes()))

	for _, t := range cfg.ChartTypes() {
		src := filepath.Join(cfg.SourceDir, string(t))
		ok, err := afero.DirExists(g.Fs, src)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, xerrors.Errorf("%s: %w", src, ErrMissingSourceDir)
		}

		dst := filepath.Join(cfg.OutputDir, string(t))
		templates := filepath.Join(dst, "templates")
		if err := g.Fs.MkdirAll(templates, os.ModePerm); err != nil {
			return nil, err
		}

		entries, err := afero.ReadDir(g.Fs, src)
		if err != nil {
			return nil, err
		}
		copied := []string{}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			switch {
			case e.Name() == "values.yaml":
				if err := file.Copy(g.Fs, filepath.Join(src, e.Name()), filepath.Join(dst, e.Name())); err != nil {
					return nil, err
				}
			case isManifest(e.Name()):
				if err := file.Copy(g.Fs, filepath.Join(src, e.Name()), filepath.Join(templates, e.Name())); err != nil {
					return nil, err
				}
				copied = append(copied, e.Name())
			}
		}

		chart, err := g.Assembler.CreateChartYAML(cfg, FragmentSearchPaths(cfg, t), dst)
		if err != nil {
			return nil, err
		}

		logger.Info("Generated chart",
			slog.String("chart", chart.Name),
			slog.String("type", string(t)),
			slog.Int("templates", len(copied)),
			slog.String("path", dst),
		)
		out = append(out, GeneratedChart{Type: t, Dir: dst, Chart: chart, Templates: copied})
	}

	return out, nil
}
