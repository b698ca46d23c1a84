package bootstrap

import (
	"bytes"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/ChristofferNissen/chartsmith/pkg/helm"
	"github.com/ChristofferNissen/chartsmith/pkg/image"
	"github.com/ChristofferNissen/chartsmith/pkg/interpolate"
	"github.com/ChristofferNissen/chartsmith/pkg/project"
	"github.com/ChristofferNissen/chartsmith/pkg/registry"
	"github.com/ChristofferNissen/chartsmith/pkg/util/state"
	"github.com/ChristofferNissen/chartsmith/pkg/util/ternary"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

// KeyDelimiter separates nested configuration keys. Property names contain dots.
const KeyDelimiter = "::"

type projectConfigSection struct {
	GroupID    string `yaml:"groupId"`
	ArtifactID string `yaml:"artifactId"`
	Version    string `yaml:"version"`
}

// propertiesSection is decoded from the raw configuration since viper lowercases map keys.
type propertiesSection struct {
	Project struct {
		Properties map[string]string `yaml:"properties"`
	} `yaml:"project"`
}

type repositoryConfigSection struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	URL      string `yaml:"url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type helmConfigSection struct {
	Chart              string                   `yaml:"chart"`
	Version            string                   `yaml:"version"`
	APIVersion         string                   `yaml:"apiVersion"`
	Description        string                   `yaml:"description"`
	Home               string                   `yaml:"home"`
	Icon               string                   `yaml:"icon"`
	Engine             string                   `yaml:"engine"`
	Sources            []string                 `yaml:"sources"`
	Keywords           []string                 `yaml:"keywords"`
	Maintainers        []helm.Maintainer        `yaml:"maintainers"`
	Dependencies       []helm.Dependency        `yaml:"dependencies"`
	Types              []string                 `yaml:"types"`
	SourceDir          string                   `yaml:"sourceDir"`
	OutputDir          string                   `yaml:"outputDir"`
	TarballOutputDir   string                   `yaml:"tarballOutputDir"`
	ChartExtension     string                   `yaml:"chartExtension"`
	FragmentDirs       []string                 `yaml:"fragmentDirs"`
	StableRepository   *repositoryConfigSection `yaml:"stableRepository"`
	SnapshotRepository *repositoryConfigSection `yaml:"snapshotRepository"`
}

type ExportConfigSection struct {
	Enabled bool   `yaml:"enabled"`
	Folder  string `yaml:"folder"`
}

type config struct {
	Project       projectConfigSection     `yaml:"project"`
	Images        []image.Named            `yaml:"images"`
	Helm          helmConfigSection        `yaml:"helm"`
	Servers       []registry.ServerEntry   `yaml:"servers"`
	Interpolation struct{ Policy string } `yaml:"interpolation"`
	Export        ExportConfigSection      `yaml:"export"`
}

// NewViper returns a viper instance using KeyDelimiter and the chartsmith defaults.
func NewViper() *viper.Viper {
	v := viper.NewWithOptions(viper.KeyDelimiter(KeyDelimiter))

	v.SetDefault("verbose", false)
	v.SetDefault("helm::apiVersion", helm.DefaultAPIVersion)
	v.SetDefault("helm::chartExtension", helm.DefaultChartExtension)
	v.SetDefault("helm::types", []string{string(helm.Kubernetes)})
	v.SetDefault("helm::sourceDir", helm.DefaultSourceDir)
	v.SetDefault("helm::outputDir", helm.DefaultOutputDir)
	v.SetDefault("export::folder", "target/chartsmith")

	return v
}

// Reads flags from user and sets state accordingly
func LoadViperConfiguration(args []string) (*viper.Viper, error) {
	v := NewViper()

	flags := pflag.NewFlagSet("chartsmith", pflag.ContinueOnError)
	flags.StringP("file", "f", "unused", "path to configuration file")
	flags.Bool("verbose", false, "enable debug logging")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}

	// Configure Viper configuration paths
	v.SetConfigName("chartsmith") // name of config file (without extension)
	v.SetConfigType("yaml")       // REQUIRED if the config file does not have the extension in the name

	if v.GetString("file") == "unused" {
		v.AddConfigPath("/etc/chartsmith/")         // path to look for the config file in
		v.AddConfigPath("$HOME/.config/chartsmith") // call multiple times to add many search paths
		v.AddConfigPath(".")                        // optionally look for config in the working directory
	} else {
		v.SetConfigFile(v.GetString("file"))
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(v.ConfigFileUsed())
	if err != nil {
		return nil, err
	}
	if err := ReadConfig(v, content); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		slog.Info("Config file changed. It will not take effect before next run.", slog.String("config", e.Name))
	})
	v.WatchConfig()

	return v, nil
}

// ReadConfig loads the YAML configuration content into v and stores the parsed values back
// into v under the state keys.
func ReadConfig(v *viper.Viper, content []byte) error {
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return err
	}

	raw := propertiesSection{}
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return xerrors.Errorf("reading project properties: %w", err)
	}

	return parseConfig(v, raw.Project.Properties)
}

func parseConfig(v *viper.Viper, properties map[string]string) error {
	conf := config{}
	if err := v.Unmarshal(&conf); err != nil {
		return err
	}

	if conf.Project.ArtifactID == "" {
		s := `
project:
  groupId: org.example
  artifactId: my-app   <---
  version: 1.0.0
`
		return xerrors.Errorf("The project section has no artifactId. Please add the value and try again...\nExample config:\n%s", s)
	}

	facts := project.NewFacts(conf.Project.GroupID, conf.Project.ArtifactID, conf.Project.Version, properties)
	state.SetValue(v, state.ProjectKey, facts)

	policy, err := interpolate.ParsePolicy(conf.Interpolation.Policy)
	if err != nil {
		return err
	}
	state.SetValue(v, state.PolicyKey, policy)

	state.SetValue(v, state.ImagesKey, conf.Images)

	chartConfig, err := toChartConfig(conf.Helm, facts)
	if err != nil {
		return err
	}
	state.SetValue(v, state.ChartConfigKey, chartConfig)

	state.SetValue(v, state.ServersKey, withEnvPasswords(conf.Servers))
	state.SetValue(v, state.ExportKey, conf.Export)

	return nil
}

func toChartConfig(h helmConfigSection, facts project.Facts) (helm.Config, error) {
	types := make([]helm.Type, 0, len(h.Types))
	for _, s := range h.Types {
		t, err := helm.ParseType(s)
		if err != nil {
			return helm.Config{}, err
		}
		types = append(types, t)
	}

	return helm.Config{
		Chart: helm.Chart{
			APIVersion:   h.APIVersion,
			Name:         ternary.Default(h.Chart, facts.ArtifactID),
			Version:      ternary.Default(h.Version, facts.Version),
			Description:  h.Description,
			Home:         h.Home,
			Icon:         h.Icon,
			Engine:       h.Engine,
			Sources:      h.Sources,
			Keywords:     h.Keywords,
			Maintainers:  h.Maintainers,
			Dependencies: h.Dependencies,
		},
		Types:              types,
		SourceDir:          h.SourceDir,
		OutputDir:          h.OutputDir,
		TarballOutputDir:   h.TarballOutputDir,
		ChartExtension:     h.ChartExtension,
		FragmentDirs:       h.FragmentDirs,
		StableRepository:   toRepository(h.StableRepository),
		SnapshotRepository: toRepository(h.SnapshotRepository),
	}, nil
}

func toRepository(r *repositoryConfigSection) *registry.Repository {
	if r == nil {
		return nil
	}
	return to.Ptr(registry.Repository{
		Name:     r.Name,
		Type:     registry.Type(strings.ToLower(r.Type)),
		URL:      r.URL,
		Username: r.Username,
		Password: r.Password,
	})
}

var envUnsafe = regexp.MustCompile(`[^A-Z0-9]+`)

// PasswordEnv returns the environment variable consulted for a server entry without password.
func PasswordEnv(id string) string {
	return "CHARTSMITH_SERVER_" + envUnsafe.ReplaceAllString(strings.ToUpper(id), "_") + "_PASSWORD"
}

func withEnvPasswords(servers []registry.ServerEntry) []registry.ServerEntry {
	out := make([]registry.ServerEntry, 0, len(servers))
	for _, s := range servers {
		if s.Password == "" {
			if v, ok := os.LookupEnv(PasswordEnv(s.ID)); ok {
				slog.Info("Server password is empty, using value of environment variable",
					slog.String("server", s.ID),
					slog.String("env", PasswordEnv(s.ID)),
				)
				s.Password = v
			}
		}
		out = append(out, s)
	}
	return out
}

var ViperModule = func(args []string) fx.Option {
	return fx.Provide(func() (*viper.Viper, error) {
		return LoadViperConfiguration(args)
	})
}
