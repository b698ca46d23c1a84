package registry

import (
	"context"
	"fmt"
)

// Uploader transfers one packaged chart archive to a repository.
type Uploader interface {
	UploadSingle(ctx context.Context, archive string, repo Repository) error
}

// UploadError reports a failed transfer. StatusCode is set when the repository answered.
type UploadError struct {
	Repository string
	Archive    string
	StatusCode int
	Err        error
}

func (e *UploadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upload of %s to repository %s failed with status %d: %v", e.Archive, e.Repository, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upload of %s to repository %s failed: %v", e.Archive, e.Repository, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// Uploaders dispatches to the uploader registered for the repository's type.
type Uploaders map[Type]Uploader

var _ Uploader = (Uploaders)(nil)

func (u Uploaders) UploadSingle(ctx context.Context, archive string, repo Repository) error {
	up, ok := u[repo.Type]
	if !ok {
		return &UploadError{
			Repository: repo.Name,
			Archive:    archive,
			Err:        fmt.Errorf("%q: %w", repo.Type, ErrUnsupportedRepositoryType),
		}
	}
	return up.UploadSingle(ctx, archive, repo)
}
