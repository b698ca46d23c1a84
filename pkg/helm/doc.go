/*
Package helm builds Helm charts from project configuration. It merges the configured chart
descriptor with an optional on-disk fragment into Chart.yaml, lays out chart directories per
chart type, packages them into archives and publishes the archives to a chart repository.
*/

package helm
