package helm

import (
	"context"
	"log/slog"

	"github.com/ChristofferNissen/chartsmith/pkg/project"
	"github.com/ChristofferNissen/chartsmith/pkg/registry"
	"github.com/ChristofferNissen/chartsmith/pkg/util/bar"
	"golang.org/x/xerrors"
)

// Publisher packages the chart of every configured type and uploads the archives.
type Publisher struct {
	Packager Packager
	Uploader registry.Uploader
	// Servers supply credentials the repository does not carry inline.
	Servers  []registry.ServerEntry
	Logger   *slog.Logger
	Progress bool
}

// PublishedChart is one archive delivered to a repository.
type PublishedChart struct {
	Chart      string `json:"chart"`
	Version    string `json:"version"`
	Type       Type   `json:"type"`
	Archive    string `json:"archive"`
	Repository string `json:"repository"`
	URL        string `json:"url"`
}

// SelectRepository returns the snapshot repository for snapshot versions, the stable one otherwise.
func SelectRepository(cfg Config) (*registry.Repository, error) {
	repo := cfg.StableRepository
	if project.IsSnapshot(cfg.Chart.Version) {
		repo = cfg.SnapshotRepository
	}
	if !repo.Valid() {
		return nil, ErrNoRepositoryConfigured
	}
	return repo, nil
}

// Publish uploads one archive per chart type, in order. The first packaging or upload error
// is returned as is and stops the remaining types.
func (p Publisher) Publish(ctx context.Context, cfg Config) ([]PublishedChart, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	selected, err := SelectRepository(cfg)
	if err != nil {
		return nil, err
	}
	repo, err := registry.WithCredentials(*selected, p.Servers)
	if err != nil {
		return nil, xerrors.Errorf("resolving credentials: %w", err)
	}

	types := cfg.ChartTypes()
	published := make([]PublishedChart, 0, len(types))

	progress := func() {}
	if p.Progress {
		b := bar.New("Publishing charts\r", len(types))
		progress = func() { _ = b.Add(1) }
	}

	for _, t := range types {
		archive, err := p.Packager.Package(ctx, cfg, t)
		if err != nil {
			return published, err
		}

		logger.Debug("Uploading chart",
			slog.String("chart", cfg.Chart.Name),
			slog.String("type", string(t)),
			slog.String("repository", repo.Name),
		)
		if err := p.Uploader.UploadSingle(ctx, archive, repo); err != nil {
			return published, err
		}

		published = append(published, PublishedChart{
			Chart:      cfg.Chart.Name,
			Version:    cfg.Chart.Version,
			Type:       t,
			Archive:    archive,
			Repository: repo.Name,
			URL:        repo.URL,
		})
		progress()
	}

	return published, nil
}
