package registry

import (
	"errors"

	"golang.org/x/xerrors"
)

var (
	ErrNoCredentialsFound   = errors.New("no credentials found in configuration or server list")
	ErrMissingUsername      = errors.New("found in server list but has no username/password")
	ErrMissingPassword      = errors.New("has a username but no password defined")
	ErrDuplicateServerEntry = errors.New("defined more than once in server list")
)

// ServerEntry is an out-of-band credential entry, matched to a Repository by ID == Name.
type ServerEntry struct {
	ID       string `yaml:"id"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type Credentials struct {
	Username string
	Password string
}

// ResolveCredentials returns the credentials to use for repo. Inline credentials are returned
// unchanged when both are set. Otherwise the server entry with the repository's name supplies
// each missing field, and an inline field is never replaced.
func ResolveCredentials(repo Repository, entries []ServerEntry) (Credentials, error) {
	creds := Credentials{Username: repo.Username, Password: repo.Password}
	if creds.Username != "" && creds.Password != "" {
		return creds, nil
	}

	servers, duplicates := indexServers(entries)
	if duplicates[repo.Name] {
		return Credentials{}, xerrors.Errorf("repository %s: %w", repo.Name, ErrDuplicateServerEntry)
	}
	entry, ok := servers[repo.Name]
	if !ok {
		return Credentials{}, xerrors.Errorf("repository %s: %w", repo.Name, ErrNoCredentialsFound)
	}

	if creds.Username == "" {
		if entry.Username == "" {
			return Credentials{}, xerrors.Errorf("repository %s: %w", repo.Name, ErrMissingUsername)
		}
		creds.Username = entry.Username
	}
	if creds.Password == "" {
		if entry.Password == "" {
			return Credentials{}, xerrors.Errorf("repository %s: %w", repo.Name, ErrMissingPassword)
		}
		creds.Password = entry.Password
	}

	return creds, nil
}

// WithCredentials returns a copy of repo carrying the resolved credentials.
func WithCredentials(repo Repository, entries []ServerEntry) (Repository, error) {
	creds, err := ResolveCredentials(repo, entries)
	if err != nil {
		return Repository{}, err
	}
	repo.Username = creds.Username
	repo.Password = creds.Password
	return repo, nil
}

func indexServers(entries []ServerEntry) (map[string]ServerEntry, map[string]bool) {
	servers := make(map[string]ServerEntry, len(entries))
	duplicates := make(map[string]bool)
	for _, e := range entries {
		if _, seen := servers[e.ID]; seen {
			duplicates[e.ID] = true
			continue
		}
		servers[e.ID] = e
	}
	return servers, duplicates
}
