package image

import (
	"fmt"
	"strings"
	"time"
)

const (
	// UserProperty overrides the %g token.
	UserProperty = "image.user"
	// TagProperty overrides the %v, %t and %l tokens when non-empty.
	TagProperty = "image.tag"

	snapshotLatest = "latest"
	snapshotPrefix = "snapshot-"
)

// Token is a single placeholder code in an image name template.
type Token byte

const (
	TokenUser              Token = 'g'
	TokenName              Token = 'a'
	TokenTag               Token = 'v'
	TokenSnapshotTimestamp Token = 't'
	TokenSnapshotLatest    Token = 'l'
)

// Tokens lists every supported placeholder code.
var Tokens = []Token{TokenUser, TokenName, TokenTag, TokenSnapshotTimestamp, TokenSnapshotLatest}

func (t Token) String() string {
	return "%" + string(t)
}

// resolve computes the value of t. The user and name tokens are sanitized, tags are not.
func (f Formatter) resolve(t Token) (string, error) {
	switch t {
	case TokenUser:
		return f.user(), nil
	case TokenName:
		return Sanitize(f.Facts.ArtifactID), nil
	case TokenTag, TokenSnapshotTimestamp, TokenSnapshotLatest:
		return f.tag(t), nil
	default:
		return "", fmt.Errorf("%s: %w", t, ErrUnknownFormatToken)
	}
}

func (f Formatter) user() string {
	if user, ok := f.Facts.Property(UserProperty); ok {
		return user
	}
	group := strings.TrimRight(f.Facts.GroupID, ".")
	if idx := strings.LastIndex(group, "."); idx != -1 {
		group = group[idx+1:]
	}
	return Sanitize(group)
}

func (f Formatter) tag(t Token) string {
	if tag, ok := f.Facts.Property(TagProperty); ok && tag != "" {
		return tag
	}
	if f.Facts.Snapshot {
		switch t {
		case TokenSnapshotTimestamp:
			return snapshotPrefix + snapshotTimestamp(f.Now)
		case TokenSnapshotLatest:
			return snapshotLatest
		}
	}
	return f.Facts.Version
}

// snapshotTimestamp renders yyMMdd-HHmmss-SSSS, the last field being milliseconds padded to four digits.
func snapshotTimestamp(now time.Time) string {
	return fmt.Sprintf("%s-%04d", now.Format("060102-150405"), now.Nanosecond()/int(time.Millisecond))
}
