package exportArtifacts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/ChristofferNissen/chartsmith/pkg/helm"
	"github.com/ChristofferNissen/chartsmith/pkg/image"
	"github.com/spf13/afero"
)

const FileName = "artifacts.json"

type ExportOption struct {
	Fs     afero.Fs
	Images []image.Image
	Charts []helm.PublishedChart
}

type ChartArtifact struct {
	ChartOverview string    `json:"chart_overview"`
	ChartName     string    `json:"chart_name"`
	ChartVersion  string    `json:"chart_version"`
	ChartType     helm.Type `json:"chart_type"`
	Repository    string    `json:"repository"`
	RepositoryURL string    `json:"repository_url"`
	ChartPath     string    `json:"chart_artifact_path"`
}

type ImageArtifact struct {
	ImageOverview string `json:"image_overview"`
	ImageName     string `json:"image_name"`
	ImageTag      string `json:"image_tag"`
}

type Artifacts struct {
	Images []ImageArtifact `json:"images"`
	Charts []ChartArtifact `json:"charts"`
}

func (eo *ExportOption) Run(ctx context.Context, folder string) (Artifacts, error) {
	// Collect image data
	imageArtifacts := []ImageArtifact{}
	for _, img := range eo.Images {
		name, err := img.ImageName()
		if err != nil {
			name = img.Repository
		}
		imageArtifacts = append(imageArtifacts, ImageArtifact{
			ImageOverview: fmt.Sprintf("Registry: %s, Image: %s, Tag: %s", img.Registry, name, img.Tag),
			ImageName:     img.String(),
			ImageTag:      img.Tag,
		})
	}

	// Collect chart data
	chartArtifacts := []ChartArtifact{}
	for _, c := range eo.Charts {
		chartArtifacts = append(chartArtifacts, ChartArtifact{
			ChartOverview: fmt.Sprintf("Repository: %s, Chart: %s, Version: %s, Type: %s",
				c.Repository, c.Chart, c.Version, c.Type),
			ChartName:     c.Chart,
			ChartVersion:  c.Version,
			ChartType:     c.Type,
			Repository:    c.Repository,
			RepositoryURL: c.URL,
			ChartPath:     c.Archive,
		})
	}

	exportData := Artifacts{
		Images: imageArtifacts,
		Charts: chartArtifacts,
	}

	jsonData, err := json.MarshalIndent(exportData, "", "  ")
	if err != nil {
		return Artifacts{}, fmt.Errorf("failed to export data to JSON: %w", err)
	}

	destPath := FileName
	if folder != "" {
		if err := eo.Fs.MkdirAll(folder, 0755); err != nil {
			slog.Error("Failed to create directory", slog.String("folder", folder), slog.String("error", err.Error()))
			return Artifacts{}, fmt.Errorf("failed to save file in the specified location %s: %w", folder, err)
		}
		destPath = filepath.Join(folder, destPath)
	} else {
		slog.Info("No folder specified, saving in the working directory")
	}

	if err := afero.WriteFile(eo.Fs, destPath, jsonData, 0644); err != nil {
		return Artifacts{}, fmt.Errorf("failed to write artifacts to %s: %w", destPath, err)
	}

	slog.Info("Exported artifacts", slog.String("path", destPath),
		slog.Int("images", len(imageArtifacts)),
		slog.Int("charts", len(chartArtifacts)),
	)
	return exportData, nil
}
