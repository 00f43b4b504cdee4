package source

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tacogips/tmplstore/internal/debug"
)

const (
	// GitHubScheme prefixes short GitHub locations: github:owner/repo/path[@ref].
	GitHubScheme = "github:"
	// DefaultGitHubRawURL serves raw repository files.
	DefaultGitHubRawURL = "https://raw.githubusercontent.com"

	githubWebPrefix = "https://github.com/"
	defaultRef      = "main"
)

// GitHubRef identifies one file in a GitHub repository.
type GitHubRef struct {
	Owner string
	Repo  string
	Ref   string
	Path  string
}

// IsGitHub reports whether location names a file in a GitHub repository.
func IsGitHub(location string) bool {
	loc := strings.TrimSpace(location)
	if strings.HasPrefix(loc, GitHubScheme) {
		return true
	}
	return strings.HasPrefix(loc, githubWebPrefix) && strings.Contains(loc, "/blob/")
}

// ParseGitHubLocation parses a GitHub file location.
// Supported formats:
//   - github:owner/repo/path/to/file.json
//   - github:owner/repo/path/to/file.json@ref
//   - https://github.com/owner/repo/blob/ref/path/to/file.json
func ParseGitHubLocation(location string) (*GitHubRef, error) {
	loc := strings.TrimSpace(location)

	switch {
	case strings.HasPrefix(loc, GitHubScheme):
		rest := strings.TrimPrefix(loc, GitHubScheme)
		ref := defaultRef
		if idx := strings.LastIndex(rest, "@"); idx != -1 {
			ref = rest[idx+1:]
			rest = rest[:idx]
			if ref == "" {
				return nil, fmt.Errorf("empty ref in %s", location)
			}
		}
		parts := strings.SplitN(rest, "/", 3)
		if len(parts) < 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return nil, fmt.Errorf("expected github:owner/repo/path, got %s", location)
		}
		return &GitHubRef{Owner: parts[0], Repo: parts[1], Ref: ref, Path: parts[2]}, nil

	case strings.HasPrefix(loc, githubWebPrefix):
		// owner/repo/blob/ref/path
		parts := strings.SplitN(strings.TrimPrefix(loc, githubWebPrefix), "/", 5)
		if len(parts) < 5 || parts[2] != "blob" || parts[0] == "" || parts[1] == "" || parts[3] == "" || parts[4] == "" {
			return nil, fmt.Errorf("expected https://github.com/owner/repo/blob/ref/path, got %s", location)
		}
		return &GitHubRef{Owner: parts[0], Repo: parts[1], Ref: parts[3], Path: parts[4]}, nil

	default:
		return nil, fmt.Errorf("not a GitHub location: %s", location)
	}
}

// RawURL returns the raw file URL for r under base.
func (r *GitHubRef) RawURL(base string) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s", strings.TrimSuffix(base, "/"), r.Owner, r.Repo, r.Ref, strings.TrimPrefix(r.Path, "/"))
}

// GitHubSource implements Source for files stored in GitHub repositories by
// fetching them from the raw content host.
type GitHubSource struct {
	http *HTTPSource
	// RawURL is the raw content base URL.
	RawURL string
}

// NewGitHubSource creates a GitHub source from cfg.
func NewGitHubSource(cfg Config) *GitHubSource {
	raw := cfg.GitHubRawURL
	if raw == "" {
		raw = DefaultGitHubRawURL
	}
	return &GitHubSource{
		http:   NewHTTPSource(cfg),
		RawURL: raw,
	}
}

// Name returns the source name.
func (s *GitHubSource) Name() string {
	return "github"
}

// Fetch downloads the file named by location.
func (s *GitHubSource) Fetch(ctx context.Context, location string) ([]byte, error) {
	ref, err := ParseGitHubLocation(location)
	if err != nil {
		return nil, NewInvalidLocationError(s.Name(), location, err)
	}

	rawURL := ref.RawURL(s.RawURL)
	debug.Debug("[github] %s -> %s", location, rawURL)

	data, err := s.http.Fetch(ctx, rawURL)
	if err != nil {
		var srcErr *SourceError
		if errors.As(err, &srcErr) {
			return nil, NewSourceError(srcErr.Type, s.Name(), location, srcErr.Message, srcErr.Cause)
		}
		return nil, NewFetchError(s.Name(), location, err)
	}
	return data, nil
}
