package output

import (
	"strings"

	"github.com/ChristofferNissen/chartsmith/pkg/helm"
	"github.com/ChristofferNissen/chartsmith/pkg/image"
	"github.com/ChristofferNissen/chartsmith/pkg/util/terminal"
	"github.com/jedib0t/go-pretty/v6/table"
)

// create a new table.writer with header and output mirror
func newTable(title string, header table.Row, args *Options) table.Writer {
	t := table.NewWriter()
	t.SetTitle(title)
	t.SetOutputMirror(args.Writer)
	t.AppendHeader(header)
	return t
}

func RenderImageTable(images []image.Formatted, setters ...Option) {
	t := newTable("Images", table.Row{"#", "Alias", "Template", "Name", "Registry", "Tag"}, newOptions(setters...))
	for id, i := range images {
		t.AppendRow(table.Row{id, i.Alias, i.Template, i.Name, i.Ref.Registry, i.Ref.Tag})
	}
	t.Render()
}

func RenderChartTable(charts []helm.GeneratedChart, setters ...Option) {
	t := newTable("Charts", table.Row{"#", "Type", "Chart", "Version", "API", "Templates", "Path"}, newOptions(setters...))
	for id, c := range charts {
		t.AppendRow(table.Row{
			id,
			c.Type,
			c.Chart.Name,
			c.Chart.Version,
			c.Chart.APIVersion,
			strings.Join(c.Templates, "\n"),
			c.Dir,
		})
	}
	t.Render()
}

func RenderPackageTable(archives map[helm.Type]string, types []helm.Type, setters ...Option) {
	t := newTable("Archives", table.Row{"#", "Type", "Archive", ""}, newOptions(setters...))
	for id, typ := range types {
		archive, ok := archives[typ]
		t.AppendRow(table.Row{id, typ, archive, terminal.StatusEmoji(ok)})
	}
	t.Render()
}

func RenderPublishTable(published []helm.PublishedChart, setters ...Option) {
	t := newTable("Published Charts", table.Row{"#", "Type", "Chart", "Version", "Repository", "URL", ""}, newOptions(setters...))
	for id, p := range published {
		t.AppendRow(table.Row{id, p.Type, p.Chart, p.Version, p.Repository, p.URL, terminal.GetRocketEmoji()})
	}
	t.SortBy([]table.SortBy{
		{Number: 1, Mode: table.AscNumeric},
	})
	t.Render()
}
