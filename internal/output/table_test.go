package output

import (
	"bytes"
	"testing"

	"github.com/ChristofferNissen/chartsmith/pkg/helm"
	"github.com/ChristofferNissen/chartsmith/pkg/image"
	"github.com/ChristofferNissen/chartsmith/pkg/util/terminal"
	"github.com/stretchr/testify/assert"
)

func TestRenderImageTable(t *testing.T) {
	var buf bytes.Buffer
	RenderImageTable([]image.Formatted{
		{
			Alias:    "app",
			Template: "%g/%a:%l",
			Name:     "sub/my-app:latest",
			Ref:      image.Image{Registry: "docker.io", Repository: "sub/my-app", Tag: "latest"},
		},
	}, Writer(&buf))

	out := buf.String()
	assert.Contains(t, out, "Images")
	assert.Contains(t, out, "%g/%a:%l")
	assert.Contains(t, out, "sub/my-app:latest")
	assert.Contains(t, out, "docker.io")
}

func TestRenderChartTable(t *testing.T) {
	var buf bytes.Buffer
	RenderChartTable([]helm.GeneratedChart{
		{
			Type:      helm.OpenShift,
			Dir:       "target/chartsmith/helm/openshift",
			Chart:     helm.Chart{APIVersion: "v1", Name: "chartName", Version: "1337"},
			Templates: []string{"deployment.yaml"},
		},
	}, Writer(&buf))

	out := buf.String()
	assert.Contains(t, out, "openshift")
	assert.Contains(t, out, "chartName")
	assert.Contains(t, out, "deployment.yaml")
}

func TestRenderPackageTable(t *testing.T) {
	var buf bytes.Buffer
	RenderPackageTable(
		map[helm.Type]string{helm.Kubernetes: "target/kubernetes/chartName-1337.tar.gz"},
		[]helm.Type{helm.Kubernetes, helm.OpenShift},
		Writer(&buf),
	)

	out := buf.String()
	assert.Contains(t, out, "chartName-1337.tar.gz")
	assert.Contains(t, out, terminal.GetCheckMarkEmoji())
	assert.Contains(t, out, terminal.GetErrorEmoji())
}

func TestRenderPublishTable(t *testing.T) {
	var buf bytes.Buffer
	RenderPublishTable([]helm.PublishedChart{
		{Chart: "chartName", Version: "1337", Type: helm.Kubernetes, Repository: "stable-repo", URL: "https://example.com"},
	}, Writer(&buf))

	out := buf.String()
	assert.Contains(t, out, "stable-repo")
	assert.Contains(t, out, terminal.GetRocketEmoji())
}
