package registry

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	helm_registry "helm.sh/helm/v3/pkg/registry"
)

type MockChartPusher struct {
	mock.Mock
}

func (m *MockChartPusher) Login(host string, opts ...helm_registry.LoginOption) error {
	args := m.Called(host, opts)
	return args.Error(0)
}

func (m *MockChartPusher) Push(data []byte, ref string, opts ...helm_registry.PushOption) (*helm_registry.PushResult, error) {
	args := m.Called(data, ref, opts)
	res, _ := args.Get(0).(*helm_registry.PushResult)
	return res, args.Error(1)
}

func chartArchive(t *testing.T, name, version string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	chartYAML := []byte("apiVersion: v1\nname: " + name + "\nversion: " + version + "\n")
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name: name + "/Chart.yaml",
		Mode: 0644,
		Size: int64(len(chartYAML)),
	}))
	_, err := tw.Write(chartYAML)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func TestOCIUploaderPush(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := chartArchive(t, "chartName", "1337")
	require.NoError(t, afero.WriteFile(fs, "/target/kubernetes/chartName-1337.tar.gz", data, 0644))

	pusher := new(MockChartPusher)
	pusher.On("Login", "registry.example.com", mock.Anything).Return(nil)
	pusher.On("Push", data, "registry.example.com/charts/chartName:1337", mock.Anything).
		Return(&helm_registry.PushResult{Ref: "registry.example.com/charts/chartName:1337"}, nil)

	u := NewOCIUploader(fs, pusher)
	repo := Repository{Name: "oci", Type: OCI, URL: "oci://registry.example.com/charts/", Username: "U", Password: "P"}
	require.NoError(t, u.UploadSingle(context.Background(), "/target/kubernetes/chartName-1337.tar.gz", repo))

	pusher.AssertExpectations(t)
}

func TestOCIUploaderAnonymous(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := chartArchive(t, "chartName", "0.1.0")
	require.NoError(t, afero.WriteFile(fs, "/chart.tgz", data, 0644))

	pusher := new(MockChartPusher)
	pusher.On("Push", data, "localhost:5000/chartName:0.1.0", mock.Anything).
		Return(&helm_registry.PushResult{Ref: "localhost:5000/chartName:0.1.0"}, nil)

	u := NewOCIUploader(fs, pusher)
	require.NoError(t, u.UploadSingle(context.Background(), "/chart.tgz", Repository{Name: "local", Type: OCI, URL: "oci://localhost:5000"}))

	pusher.AssertExpectations(t)
	pusher.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestOCIUploaderFailures(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := chartArchive(t, "chartName", "1.0.0")
	require.NoError(t, afero.WriteFile(fs, "/chart.tgz", data, 0644))
	require.NoError(t, afero.WriteFile(fs, "/broken.tgz", []byte("not a chart"), 0644))
	repo := Repository{Name: "oci", Type: OCI, URL: "oci://registry.example.com", Username: "U", Password: "P"}

	t.Run("login rejected", func(t *testing.T) {
		pusher := new(MockChartPusher)
		pusher.On("Login", "registry.example.com", mock.Anything).Return(errors.New("denied"))

		err := NewOCIUploader(fs, pusher).UploadSingle(context.Background(), "/chart.tgz", repo)
		var uploadErr *UploadError
		require.True(t, errors.As(err, &uploadErr))
		assert.Contains(t, err.Error(), "denied")
		pusher.AssertNotCalled(t, "Push", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("push rejected", func(t *testing.T) {
		pusher := new(MockChartPusher)
		pusher.On("Login", mock.Anything, mock.Anything).Return(nil)
		pusher.On("Push", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("quota"))

		err := NewOCIUploader(fs, pusher).UploadSingle(context.Background(), "/chart.tgz", repo)
		assert.ErrorContains(t, err, "quota")
	})

	t.Run("invalid archive", func(t *testing.T) {
		pusher := new(MockChartPusher)
		err := NewOCIUploader(fs, pusher).UploadSingle(context.Background(), "/broken.tgz", repo)
		assert.Error(t, err)
		pusher.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	})
}
