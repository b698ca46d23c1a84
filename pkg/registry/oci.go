package registry

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	"github.com/spf13/afero"
	"helm.sh/helm/v3/pkg/chart/loader"
	helm_registry "helm.sh/helm/v3/pkg/registry"
)

// ChartPusher is the subset of the Helm registry client used to push charts.
type ChartPusher interface {
	Login(host string, opts ...helm_registry.LoginOption) error
	Push(data []byte, ref string, opts ...helm_registry.PushOption) (*helm_registry.PushResult, error)
}

var _ ChartPusher = (*helm_registry.Client)(nil)

// OCIUploader pushes archives to an OCI registry as Helm chart artifacts.
type OCIUploader struct {
	Fs     afero.Fs
	Client ChartPusher
}

var _ Uploader = (*OCIUploader)(nil)

func NewOCIUploader(fs afero.Fs, client ChartPusher) *OCIUploader {
	return &OCIUploader{Fs: fs, Client: client}
}

func (u *OCIUploader) UploadSingle(_ context.Context, archive string, repo Repository) error {
	uploadErr := func(err error) error {
		return &UploadError{Repository: repo.Name, Archive: archive, Err: err}
	}

	data, err := afero.ReadFile(u.Fs, archive)
	if err != nil {
		return uploadErr(err)
	}

	chartRef, err := loader.LoadArchive(bytes.NewReader(data))
	if err != nil {
		return uploadErr(err)
	}

	base := strings.TrimSuffix(strings.TrimPrefix(repo.URL, "oci://"), "/")
	if repo.Username != "" {
		host := strings.SplitN(base, "/", 2)[0]
		if err := u.Client.Login(host, helm_registry.LoginOptBasicAuth(repo.Username, repo.Password)); err != nil {
			return uploadErr(err)
		}
	}

	ref := base + "/" + chartRef.Name() + ":" + chartRef.Metadata.Version
	res, err := u.Client.Push(data, ref)
	if err != nil {
		return uploadErr(err)
	}

	slog.Info("Pushed chart", slog.String("ref", res.Ref), slog.String("repository", repo.Name))
	return nil
}
