package internal

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ChristofferNissen/chartsmith/internal/bootstrap"
	"github.com/ChristofferNissen/chartsmith/internal/output"
	"github.com/ChristofferNissen/chartsmith/pkg/exportArtifacts"
	"github.com/ChristofferNissen/chartsmith/pkg/helm"
	"github.com/ChristofferNissen/chartsmith/pkg/image"
	"github.com/ChristofferNissen/chartsmith/pkg/registry"
)

const pipelineConfig = `
project:
  groupId: org.example.sub
  artifactId: chartName
  version: "1337"
  properties:
    dockerRegistry: quay.io
images:
  - alias: app
    name: "${dockerRegistry}/%g/%a:%v"
helm:
  sourceDir: /work/src
  outputDir: /work/target/helm
  tarballOutputDir: /work/target
  types: [kubernetes, openshift]
  stableRepository:
    name: stable-repo
    type: artifactory
    url: https://example.com/artifactory
servers:
  - id: stable-repo
    username: U
    password: P
export:
  enabled: true
  folder: /work/target
`

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) UploadSingle(ctx context.Context, archive string, repo registry.Repository) error {
	args := m.Called(ctx, archive, repo)
	return args.Error(0)
}

func testViper(t *testing.T, content string) *viper.Viper {
	t.Helper()
	v := bootstrap.NewViper()
	require.NoError(t, bootstrap.ReadConfig(v, []byte(content)))
	return v
}

func testFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, typ := range []string{"kubernetes", "openshift"} {
		require.NoError(t, afero.WriteFile(fs, "/work/src/"+typ+"/deployment.yaml", []byte("kind: Deployment\n"), 0644))
	}
	require.NoError(t, afero.WriteFile(fs, "/work/src/kubernetes/Chart.helm.yaml", []byte("description: ${dockerRegistry} chart\n"), 0644))
	return fs
}

func testPipeline(t *testing.T, fs afero.Fs, uploader registry.Uploader, content string) *Pipeline {
	t.Helper()
	return &Pipeline{
		Viper:    testViper(t, content),
		Fs:       fs,
		Uploader: uploader,
		Now:      func() time.Time { return time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC) },
		Output:   []output.Option{output.Writer(io.Discard)},
	}
}

func TestPipelineCI(t *testing.T) {
	fs := testFs(t)
	expectedRepo := registry.Repository{
		Name:     "stable-repo",
		Type:     registry.Artifactory,
		URL:      "https://example.com/artifactory",
		Username: "U",
		Password: "P",
	}
	uploader := new(MockUploader)
	uploader.On("UploadSingle", mock.Anything, "/work/target/kubernetes/chartName-1337.tar.gz", expectedRepo).Return(nil).Once()
	uploader.On("UploadSingle", mock.Anything, "/work/target/openshift/chartName-1337.tar.gz", expectedRepo).Return(nil).Once()

	p := testPipeline(t, fs, uploader, pipelineConfig)
	require.NoError(t, p.Run(context.Background(), CIGoals...))
	uploader.AssertExpectations(t)

	require.Len(t, p.images, 1)
	assert.Equal(t, "quay.io/sub/chartname:1337", p.images[0].Name)

	data, err := afero.ReadFile(fs, "/work/target/helm/kubernetes/Chart.yaml")
	require.NoError(t, err)
	assert.Equal(t, "apiVersion: v1\nname: chartName\nversion: \"1337\"\ndescription: quay.io chart\n", string(data))

	data, err = afero.ReadFile(fs, "/work/target/helm/openshift/Chart.yaml")
	require.NoError(t, err)
	assert.NotContains(t, string(data), "description")

	content, err := afero.ReadFile(fs, "/work/target/"+exportArtifacts.FileName)
	require.NoError(t, err)
	var artifacts exportArtifacts.Artifacts
	require.NoError(t, json.Unmarshal(content, &artifacts))
	assert.Len(t, artifacts.Images, 1)
	require.Len(t, artifacts.Charts, 2)
	assert.Equal(t, helm.Kubernetes, artifacts.Charts[0].ChartType)
	assert.Equal(t, helm.OpenShift, artifacts.Charts[1].ChartType)
}

func TestPipelinePackage(t *testing.T) {
	fs := testFs(t)
	uploader := new(MockUploader)

	p := testPipeline(t, fs, uploader, pipelineConfig)
	require.NoError(t, p.Run(context.Background(), GoalChart, GoalPackage))

	for _, archive := range []string{
		"/work/target/kubernetes/chartName-1337.tar.gz",
		"/work/target/openshift/chartName-1337.tar.gz",
	} {
		ok, err := afero.Exists(fs, archive)
		require.NoError(t, err)
		assert.True(t, ok, archive)
	}
	uploader.AssertNotCalled(t, "UploadSingle", mock.Anything, mock.Anything, mock.Anything)
}

func TestPipelineStopsAtFirstFailure(t *testing.T) {
	fs := testFs(t)
	require.NoError(t, fs.RemoveAll("/work/src/openshift"))
	uploader := new(MockUploader)

	p := testPipeline(t, fs, uploader, pipelineConfig)
	err := p.Run(context.Background(), CIGoals...)
	assert.ErrorIs(t, err, helm.ErrMissingSourceDir)
	uploader.AssertNotCalled(t, "UploadSingle", mock.Anything, mock.Anything, mock.Anything)

	ok, _ := afero.Exists(fs, "/work/target/"+exportArtifacts.FileName)
	assert.False(t, ok)
}

func TestPipelineImageErrors(t *testing.T) {
	content := strings.Replace(pipelineConfig, "%g/%a:%v", "%g/%a:%x", 1)
	p := testPipeline(t, testFs(t), new(MockUploader), content)

	err := p.Run(context.Background(), GoalImage)
	assert.ErrorIs(t, err, image.ErrUnknownFormatToken)
}

func TestPipelineSnapshotWithoutRepository(t *testing.T) {
	content := strings.Replace(pipelineConfig, `version: "1337"`, `version: 1337-SNAPSHOT`, 1)
	p := testPipeline(t, testFs(t), new(MockUploader), content)

	err := p.Run(context.Background(), GoalChart, GoalPush)
	assert.ErrorIs(t, err, helm.ErrNoRepositoryConfigured)
}
