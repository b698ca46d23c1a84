package image

import "log/slog"

// Formatted is the outcome of formatting one configured image name.
type Formatted struct {
	Alias    string `json:"alias,omitempty"`
	Template string `json:"template"`
	Name     string `json:"name"`
	Ref      Image  `json:"-"`
}

// Named is a configured image: an optional alias and a name template.
type Named struct {
	Alias string `yaml:"alias"`
	Name  string `yaml:"name"`
}

// FormatAll formats every configured image in order and stops at the first error. Names that
// format to the empty string are skipped.
func (f Formatter) FormatAll(images []Named) ([]Formatted, error) {
	out := make([]Formatted, 0, len(images))
	for _, n := range images {
		name, err := f.Format(n.Name)
		if err != nil {
			return nil, err
		}
		if name == "" {
			slog.Debug("Skipping image without name", slog.String("alias", n.Alias))
			continue
		}

		ref, err := RefToImage(name)
		if err != nil {
			return nil, err
		}
		slog.Debug("Formatted image name",
			slog.String("template", n.Name),
			slog.String("name", name),
		)
		out = append(out, Formatted{Alias: n.Alias, Template: n.Name, Name: name, Ref: ref})
	}
	return out, nil
}
