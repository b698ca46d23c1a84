package exportArtifacts

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ChristofferNissen/chartsmith/pkg/helm"
	"github.com/ChristofferNissen/chartsmith/pkg/image"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportOptionRun(t *testing.T) {
	// Arrange
	img, err := image.RefToImage("registry.example.com/sub/my-app:1.0.0")
	require.NoError(t, err)
	published := helm.PublishedChart{
		Chart:      "chartName",
		Version:    "1337",
		Type:       helm.Kubernetes,
		Archive:    "target/kubernetes/chartName-1337.tar.gz",
		Repository: "stable-repo",
		URL:        "https://example.com/artifactory",
	}

	mockFs := afero.NewMemMapFs()
	eo := &ExportOption{
		Fs:     mockFs,
		Images: []image.Image{img},
		Charts: []helm.PublishedChart{published},
	}

	// Act
	out, err := eo.Run(context.Background(), "target/chartsmith")

	// Assert
	require.NoError(t, err)

	content, err := afero.ReadFile(mockFs, "target/chartsmith/artifacts.json")
	require.NoError(t, err)

	var artifact Artifacts
	require.NoError(t, json.Unmarshal(content, &artifact))
	assert.Equal(t, out, artifact)

	require.Len(t, artifact.Images, 1)
	assert.Equal(t, "registry.example.com/sub/my-app:1.0.0", artifact.Images[0].ImageName)
	assert.Equal(t, "1.0.0", artifact.Images[0].ImageTag)
	assert.Equal(t, "Registry: registry.example.com, Image: sub/my-app, Tag: 1.0.0", artifact.Images[0].ImageOverview)

	require.Len(t, artifact.Charts, 1)
	assert.Equal(t, "target/kubernetes/chartName-1337.tar.gz", artifact.Charts[0].ChartPath)
	assert.Equal(t, helm.Kubernetes, artifact.Charts[0].ChartType)
}

func TestExportOptionRun_NoData(t *testing.T) {
	// Arrange
	mockFs := afero.NewMemMapFs()
	eo := &ExportOption{Fs: mockFs}

	// Act
	out, err := eo.Run(context.Background(), "")

	// Assert
	require.NoError(t, err)
	assert.Empty(t, out.Images, "expected no image artifacts")
	assert.Empty(t, out.Charts, "expected no chart artifacts")

	ok, err := afero.Exists(mockFs, "artifacts.json")
	require.NoError(t, err)
	assert.True(t, ok)
}
