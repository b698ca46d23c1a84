package helm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ChristofferNissen/chartsmith/pkg/util/file"
	"github.com/klauspost/compress/gzip"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// Packager turns the generated chart directory of one chart type into an archive.
type Packager interface {
	Package(ctx context.Context, cfg Config, t Type) (string, error)
}

// ArchivePath returns {tarballOutputDir}/{type}/{name}-{version}.{extension}.
func ArchivePath(cfg Config, t Type) string {
	name := fmt.Sprintf("%s-%s.%s", cfg.Chart.Name, cfg.Chart.Version, cfg.Extension())
	return filepath.Join(cfg.TarballDir(), string(t), name)
}

// TarPackager writes tar archives with the chart directory under a {name}/ prefix.
type TarPackager struct {
	Fs     afero.Fs
	Logger *slog.Logger
}

func (p TarPackager) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

var _ Packager = TarPackager{}

func (p TarPackager) Package(ctx context.Context, cfg Config, t Type) (archive string, err error) {
	var compress bool
	switch cfg.Extension() {
	case "tar.gz", "tgz":
		compress = true
	case "tar":
	default:
		return "", xerrors.Errorf("%q: %w", cfg.Extension(), ErrUnsupportedExtension)
	}

	src := filepath.Join(cfg.OutputDir, string(t))
	ok, err := afero.DirExists(p.Fs, src)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", xerrors.Errorf("%s: %w", src, ErrMissingSourceDir)
	}

	archive = ArchivePath(cfg, t)
	if err := p.Fs.MkdirAll(filepath.Dir(archive), os.ModePerm); err != nil {
		return "", err
	}
	f, err := p.Fs.Create(archive)
	if err != nil {
		return "", err
	}
	defer func() {
		closeErr := f.Close()
		if err == nil {
			err = closeErr
		}
		if err != nil {
			_ = p.Fs.Remove(archive)
		}
	}()

	var w io.Writer = f
	if compress {
		gz := gzip.NewWriter(f)
		defer func() {
			closeErr := gz.Close()
			if err == nil {
				err = closeErr
			}
		}()
		w = gz
	}

	if err := file.TarDirectory(ctx, p.Fs, src, cfg.Chart.Name, w, true, nil, archive); err != nil {
		return "", err
	}

	p.logger().Info("Packaged chart",
		slog.String("chart", cfg.Chart.Name),
		slog.String("type", string(t)),
		slog.String("archive", archive),
	)
	return archive, nil
}
