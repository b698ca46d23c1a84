package registry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/spf13/afero"
)

// HTTPUploader uploads archives to Artifactory, Nexus and ChartMuseum repositories.
type HTTPUploader struct {
	Fs     afero.Fs
	Client *retryablehttp.Client
}

var _ Uploader = (*HTTPUploader)(nil)

func NewHTTPUploader(fs afero.Fs, logger *slog.Logger) *HTTPUploader {
	if logger == nil {
		logger = slog.Default()
	}
	client := retryablehttp.NewClient()
	client.Logger = logger
	// upload failures are terminal
	client.RetryMax = 0
	// hand the last response back so the status code ends up in the UploadError
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &HTTPUploader{
		Fs:     fs,
		Client: client,
	}
}

// uploadTarget returns the method and URL used to deliver file to repo.
func uploadTarget(repo Repository, file string) (string, string) {
	switch repo.Type {
	case ChartMuseum:
		return http.MethodPost, repo.URL
	default:
		return http.MethodPut, strings.TrimSuffix(repo.URL, "/") + "/" + file
	}
}

func (u *HTTPUploader) UploadSingle(ctx context.Context, archive string, repo Repository) error {
	uploadErr := func(status int, err error) error {
		return &UploadError{Repository: repo.Name, Archive: archive, StatusCode: status, Err: err}
	}

	body, err := afero.ReadFile(u.Fs, archive)
	if err != nil {
		return uploadErr(0, err)
	}

	method, target := uploadTarget(repo, filepath.Base(archive))
	req, err := retryablehttp.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return uploadErr(0, err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	if repo.Username != "" {
		req.SetBasicAuth(repo.Username, repo.Password)
	}

	slog.Debug("Uploading chart", slog.String("archive", archive), slog.String("method", method), slog.String("url", target))
	resp, err := u.Client.Do(req)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return uploadErr(0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return uploadErr(resp.StatusCode, fmt.Errorf("%s %s: %s", method, target, strings.TrimSpace(string(msg))))
	}

	slog.Info("Uploaded chart", slog.String("archive", archive), slog.String("repository", repo.Name), slog.Int("status", resp.StatusCode))
	return nil
}
