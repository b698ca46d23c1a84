package bootstrap

import (
	"log/slog"

	"github.com/ChristofferNissen/chartsmith/pkg/registry"
	"github.com/spf13/afero"
	"go.uber.org/fx"
)

func ProvideFs() afero.Fs {
	return afero.NewOsFs()
}

// ProvideUploaders registers the HTTP uploader for the HTTP based repository types and the OCI
// uploader for OCI registries.
func ProvideUploaders(fs afero.Fs, client registry.ChartPusher, logger *slog.Logger) registry.Uploaders {
	http := registry.NewHTTPUploader(fs, logger)
	return registry.Uploaders{
		registry.Artifactory: http,
		registry.Nexus:       http,
		registry.ChartMuseum: http,
		registry.OCI:         registry.NewOCIUploader(fs, client),
	}
}

var UploaderModule = fx.Options(
	fx.Provide(ProvideFs),
	registry.RegistryModule,
	fx.Provide(ProvideUploaders),
)
