/*
Package project holds the read-only facts about the project being built (coordinates, version and
properties). Image names and chart metadata are computed from these facts.
*/
package project

import (
	"maps"
	"strings"
)

// SnapshotSuffix marks a version that has not been released yet.
const SnapshotSuffix = "-SNAPSHOT"

// Facts is an immutable snapshot of the project model. Construct it with NewFacts and do not
// modify it afterwards.
type Facts struct {
	GroupID    string
	ArtifactID string
	Version    string
	Snapshot   bool
	Properties map[string]string
}

// NewFacts copies props and classifies version as snapshot or release.
func NewFacts(groupID, artifactID, version string, props map[string]string) Facts {
	return Facts{
		GroupID:    groupID,
		ArtifactID: artifactID,
		Version:    version,
		Snapshot:   IsSnapshot(version),
		Properties: maps.Clone(props),
	}
}

// Property looks up a project property.
func (f Facts) Property(key string) (string, bool) {
	if f.Properties == nil {
		return "", false
	}
	v, ok := f.Properties[key]
	return v, ok
}

// IsSnapshot reports whether version is a pre-release snapshot version.
func IsSnapshot(version string) bool {
	return strings.HasSuffix(version, SnapshotSuffix)
}
