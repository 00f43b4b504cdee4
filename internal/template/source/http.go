package source

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/tacogips/tmplstore/internal/debug"
)

// HTTPSource implements Source for HTTP(S) URLs.
type HTTPSource struct {
	client *resty.Client
}

// NewHTTPSource creates an HTTP source from cfg.
func NewHTTPSource(cfg Config) *HTTPSource {
	client := resty.New().
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	if cfg.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.UserAgent)
	}
	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}
	return &HTTPSource{client: client}
}

// Name returns the source name.
func (s *HTTPSource) Name() string {
	return "http"
}

// Fetch performs a GET request against location and returns the body.
func (s *HTTPSource) Fetch(ctx context.Context, location string) ([]byte, error) {
	if !IsRemote(location) {
		return nil, NewInvalidLocationError(s.Name(), location,
			fmt.Errorf("expected an http:// or https:// URL"))
	}

	debug.Debug("[http] GET %s", location)
	resp, err := s.client.R().
		SetContext(ctx).
		Get(strings.TrimSpace(location))
	if err != nil {
		if isTimeout(err) {
			return nil, NewTimeoutError(s.Name(), location, err)
		}
		return nil, NewFetchError(s.Name(), location, err)
	}

	debug.Debug("[http] %s -> %d (%d bytes)", location, resp.StatusCode(), len(resp.Body()))
	switch code := resp.StatusCode(); {
	case code == http.StatusNotFound:
		return nil, NewNotFoundError(s.Name(), location)
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return nil, NewAuthError(s.Name(), location)
	case !resp.IsSuccess():
		return nil, NewFetchError(s.Name(), location,
			fmt.Errorf("unexpected status %s", resp.Status()))
	}
	return resp.Body(), nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
