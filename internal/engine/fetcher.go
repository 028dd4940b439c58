package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/tartampluch/go-screening/internal/config"
)

// VCardFetcher defines the contract for retrieving a remote contact card.
type VCardFetcher interface {
	Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error)
}

// HTTPFetcher implements VCardFetcher using the standard net/http library.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher creates a new instance of HTTPFetcher with configured timeouts.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{
			Timeout: config.HTTPTimeout,
		},
	}
}

// Fetch retrieves a vCard from a remote URL, limited to config.MaxHTTPResponseSize.
// Query parameters are stripped from the logged URL since they may carry tokens.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL, user, pass string) (io.ReadCloser, error) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}

	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	safeURL := u.Scheme + "://" + u.Host + u.Path
	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, safeURL),
	)

	log.Debug("Initiating vCard download")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)

	if user != "" || pass != "" {
		req.SetBasicAuth(user, pass)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error during fetch: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		log.Warn("Server returned error status",
			slog.Int(config.LogKeyStatus, resp.StatusCode),
		)
		return nil, fmt.Errorf("server returned unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	return &limitedReadCloser{
		Reader: io.LimitReader(resp.Body, config.MaxHTTPResponseSize),
		Closer: resp.Body,
	}, nil
}

// limitedReadCloser pairs a size-limited reader with the original body closer.
type limitedReadCloser struct {
	io.Reader
	io.Closer
}

// ContactSource opens a contact card from a local path or an http(s) URL.
type ContactSource struct {
	Fetcher VCardFetcher
	User    string
	Pass    string
}

// Open returns a stream for location. Anything that is not an http(s) URL is
// treated as a file path.
func (s ContactSource) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, errors.New(config.ErrLocalPathEmpty)
	}

	if strings.HasPrefix(location, config.SchemeHTTP+"://") || strings.HasPrefix(location, config.SchemeHTTPS+"://") {
		if s.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return s.Fetcher.Fetch(ctx, location, s.User, s.Pass)
	}
	return os.Open(location)
}

// LoadProfile opens location and imports the profile from it.
func (s ContactSource) LoadProfile(ctx context.Context, location string) (Profile, error) {
	rc, err := s.Open(ctx, location)
	if err != nil {
		if ctx.Err() != nil {
			return Profile{}, ctx.Err()
		}
		return Profile{}, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = rc.Close() }()

	return ImportProfile(rc)
}
