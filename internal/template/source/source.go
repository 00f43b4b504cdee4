// Package source fetches raw template payloads from local files, HTTP(S)
// URLs and GitHub repositories.
package source

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Source abstracts payload locations (local filesystem, HTTP, ...).
type Source interface {
	// Fetch returns the raw payload stored at location.
	Fetch(ctx context.Context, location string) ([]byte, error)

	// Name returns the source name (e.g., "http", "local").
	Name() string
}

// Config configures the sources created by New.
type Config struct {
	// BaseDir resolves relative local paths. Empty means the working directory.
	BaseDir string
	// Timeout bounds HTTP requests. Zero means no client timeout.
	Timeout time.Duration
	// Token is an optional bearer token for HTTP sources.
	Token string
	// UserAgent is sent with HTTP requests.
	UserAgent string
	// GitHubRawURL overrides DefaultGitHubRawURL for GitHub locations.
	GitHubRawURL string
}

// IsRemote reports whether location is an HTTP(S) URL.
func IsRemote(location string) bool {
	lower := strings.ToLower(strings.TrimSpace(location))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// New creates the source matching location.
func New(location string, cfg Config) (Source, error) {
	if strings.TrimSpace(location) == "" {
		return nil, fmt.Errorf("location cannot be empty")
	}
	if IsGitHub(location) {
		return NewGitHubSource(cfg), nil
	}
	if IsRemote(location) {
		return NewHTTPSource(cfg), nil
	}
	return NewLocalSourceWithBase(cfg.BaseDir), nil
}

// Fetch is a convenience wrapper that picks a source for location and
// fetches from it.
func Fetch(ctx context.Context, location string, cfg Config) ([]byte, error) {
	src, err := New(location, cfg)
	if err != nil {
		return nil, err
	}
	return src.Fetch(ctx, location)
}
