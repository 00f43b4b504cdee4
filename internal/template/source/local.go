package source

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/tacogips/tmplstore/internal/debug"
)

// StdinLocation reads the payload from standard input.
const StdinLocation = "-"

// LocalSource implements Source for local files.
type LocalSource struct {
	// BaseDir is the base directory for resolving relative paths.
	// If empty, uses current working directory.
	BaseDir string
	// Stdin is read for StdinLocation. Nil means os.Stdin.
	Stdin io.Reader
}

// NewLocalSource creates a new local filesystem source.
func NewLocalSource() *LocalSource {
	return &LocalSource{}
}

// NewLocalSourceWithBase creates a new local source with a base directory.
func NewLocalSourceWithBase(baseDir string) *LocalSource {
	return &LocalSource{
		BaseDir: baseDir,
	}
}

// Name returns the source name.
func (s *LocalSource) Name() string {
	return "local"
}

// Fetch reads the file at location. file:// URLs are accepted.
func (s *LocalSource) Fetch(ctx context.Context, location string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewFetchError(s.Name(), location, err)
	}

	if location == StdinLocation {
		r := s.Stdin
		if r == nil {
			r = os.Stdin
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, NewFetchError(s.Name(), location, err)
		}
		return data, nil
	}

	path, err := s.Resolve(location)
	if err != nil {
		debug.Debug("[local] Resolve failed: %v", err)
		return nil, NewInvalidLocationError(s.Name(), location, err)
	}
	debug.Debug("[local] Reading %s", path)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewNotFoundError(s.Name(), location)
		}
		return nil, NewFetchError(s.Name(), location, err)
	}
	if info.IsDir() {
		return nil, NewInvalidLocationError(s.Name(), location, fmt.Errorf("%s is a directory", path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewFetchError(s.Name(), location, err)
	}
	return data, nil
}

// Resolve converts location into an absolute, cleaned file path. Relative
// paths may not climb above BaseDir.
func (s *LocalSource) Resolve(location string) (string, error) {
	path := strings.TrimSpace(location)
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	if strings.HasPrefix(path, "file://") {
		u, err := url.Parse(path)
		if err != nil {
			return "", fmt.Errorf("invalid file URL: %w", err)
		}
		if u.Host != "" && u.Host != "localhost" {
			return "", fmt.Errorf("file URL must not name a remote host: %s", u.Host)
		}
		path = u.Path
	}

	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}

	cleaned := filepath.Clean(path)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes base directory: %s", location)
	}

	base := s.BaseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		base = wd
	}
	return filepath.Join(base, cleaned), nil
}
