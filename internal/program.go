package internal

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/ChristofferNissen/chartsmith/internal/bootstrap"
	"github.com/ChristofferNissen/chartsmith/internal/output"
	"github.com/ChristofferNissen/chartsmith/pkg/exportArtifacts"
	"github.com/ChristofferNissen/chartsmith/pkg/helm"
	"github.com/ChristofferNissen/chartsmith/pkg/image"
	"github.com/ChristofferNissen/chartsmith/pkg/interpolate"
	"github.com/ChristofferNissen/chartsmith/pkg/project"
	"github.com/ChristofferNissen/chartsmith/pkg/registry"
	"github.com/ChristofferNissen/chartsmith/pkg/util/state"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Goal is one step of the build. Goals run in the order they are requested.
type Goal string

const (
	GoalImage   Goal = "image"
	GoalChart   Goal = "chart"
	GoalPackage Goal = "package"
	GoalPush    Goal = "push"
	GoalExport  Goal = "export"
)

// CIGoals is the full flow: image names, charts, publishing and the artifacts export.
var CIGoals = []Goal{GoalImage, GoalChart, GoalPush, GoalExport}

func Program(args []string, goals ...Goal) error {
	done := make(chan error) // Channel to signal completion

	output.Header(version, commit, date)

	app := fx.New(
		bootstrap.ViperModule(args),
		LoggerModule,
		bootstrap.UploaderModule,
		fx.Invoke(func(lc fx.Lifecycle, v *viper.Viper, fs afero.Fs, uploaders registry.Uploaders, logger *slog.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					p := Pipeline{
						Viper:    v,
						Fs:       fs,
						Uploader: uploaders,
						Logger:   logger,
						Now:      time.Now,
						Progress: true,
					}
					go func() {
						// the start context is cancelled once fx has started
						done <- p.Run(context.WithoutCancel(ctx), goals...) // Send the result to the channel
					}()
					return nil
				},
				OnStop: func(ctx context.Context) error {
					return nil
				},
			})
		}),
	)

	go func() {
		app.Run() // Run the Fx app in a separate goroutine
		close(done)
	}()

	// Wait for the program to signal completion
	if err := <-done; err != nil {
		return err
	}

	return nil
}

// Pipeline runs goals against the parsed configuration stored in Viper.
type Pipeline struct {
	Viper    *viper.Viper
	Fs       afero.Fs
	Uploader registry.Uploader
	Logger   *slog.Logger
	Now      func() time.Time
	Output   []output.Option
	Progress bool

	images    []image.Formatted
	generated []helm.GeneratedChart
	published []helm.PublishedChart
}

func (p *Pipeline) Run(ctx context.Context, goals ...Goal) error {
	if p.Logger == nil {
		p.Logger = slog.Default()
	}
	if p.Now == nil {
		p.Now = time.Now
	}

	var (
		verbose   bool                          = state.GetValue[bool](p.Viper, "verbose")
		facts     project.Facts                 = state.GetValue[project.Facts](p.Viper, state.ProjectKey)
		policy    interpolate.Policy            = state.GetValue[interpolate.Policy](p.Viper, state.PolicyKey)
		images    []image.Named                 = state.GetValue[[]image.Named](p.Viper, state.ImagesKey)
		chartConf helm.Config                   = state.GetValue[helm.Config](p.Viper, state.ChartConfigKey)
		servers   []registry.ServerEntry        = state.GetValue[[]registry.ServerEntry](p.Viper, state.ServersKey)
		exportCfg bootstrap.ExportConfigSection = state.GetValue[bootstrap.ExportConfigSection](p.Viper, state.ExportKey)
	)

	if verbose {
		logLevel.Set(slog.LevelDebug)
	}

	p.Logger.Info("chartsmith",
		slog.String("version", version),
		slog.String("project", facts.ArtifactID),
		slog.String("projectVersion", facts.Version),
		slog.Bool("snapshot", facts.Snapshot),
	)

	for _, goal := range goals {
		p.Logger.Debug("Running goal", slog.String("goal", string(goal)))

		switch goal {
		case GoalImage:
			formatter := image.NewFormatter(facts, p.Now())
			formatter.Policy = policy
			formatted, err := formatter.FormatAll(images)
			if err != nil {
				return err
			}
			p.images = formatted
			output.RenderImageTable(formatted, p.Output...)

		case GoalChart:
			g := helm.Generator{
				Fs: p.Fs,
				Assembler: helm.Assembler{
					Fs:         p.Fs,
					Properties: facts.Properties,
					Policy:     policy,
					Logger:     p.Logger,
				},
			}
			generated, err := g.Generate(chartConf)
			if err != nil {
				return err
			}
			p.generated = generated
			output.RenderChartTable(generated, p.Output...)

		case GoalPackage:
			packager := helm.TarPackager{Fs: p.Fs, Logger: p.Logger}
			archives := make(map[helm.Type]string)
			for _, t := range chartConf.ChartTypes() {
				archive, err := packager.Package(ctx, chartConf, t)
				if err != nil {
					output.RenderPackageTable(archives, chartConf.ChartTypes(), p.Output...)
					return err
				}
				archives[t] = archive
			}
			output.RenderPackageTable(archives, chartConf.ChartTypes(), p.Output...)

		case GoalPush:
			publisher := helm.Publisher{
				Packager: helm.TarPackager{Fs: p.Fs, Logger: p.Logger},
				Uploader: p.Uploader,
				Servers:  servers,
				Logger:   p.Logger,
				Progress: p.Progress,
			}
			published, err := publisher.Publish(ctx, chartConf)
			p.published = append(p.published, published...)
			output.RenderPublishTable(published, p.Output...)
			if err != nil {
				return err
			}

		case GoalExport:
			if !exportCfg.Enabled {
				p.Logger.Debug("Export disabled, skipping")
				continue
			}
			refs := make([]image.Image, 0, len(p.images))
			for _, i := range p.images {
				refs = append(refs, i.Ref)
			}
			eo := exportArtifacts.ExportOption{
				Fs:     p.Fs,
				Images: refs,
				Charts: p.published,
			}
			if _, err := eo.Run(ctx, exportCfg.Folder); err != nil {
				return err
			}

		default:
			p.Logger.Warn("Unknown goal, skipping", slog.String("goal", string(goal)))
		}
	}

	return nil
}
