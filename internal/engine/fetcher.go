package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"

	"github.com/tartampluch/go-bongabdo/internal/config"
)

// VCardFetcher retrieves the address book whose birthdays are re-expressed in
// the Bangla calendar.
type VCardFetcher interface {
	Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error)
}

// HTTPFetcher downloads a vCard export or CardDAV collection over HTTP(S).
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher returns a fetcher bounded by config.HTTPTimeout.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{Timeout: config.HTTPTimeout},
	}
}

// Fetch downloads an address book. The returned body is capped at
// config.MaxHTTPResponseSize and must be closed by the caller.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL, user, pass string) (io.ReadCloser, error) {
	u, err := parseSourceURL(targetURL)
	if err != nil {
		return nil, err
	}

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, redactURL(u)),
	)
	log.Debug(config.MsgFetchStart)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRequestBuild, err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	req.Header.Set(config.HeaderAccept, config.MimeVCard)
	if user != "" || pass != "" {
		req.SetBasicAuth(user, pass)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrNetwork, err)
	}

	if err := checkResponse(resp); err != nil {
		_ = resp.Body.Close()
		log.Warn(config.MsgFetchStatus,
			slog.Int(config.LogKeyStatus, resp.StatusCode),
			slog.String(config.LogKeyError, err.Error()))
		return nil, err
	}

	log.Info(config.MsgFetchReceiving, slog.Int64(config.LogKeyLength, resp.ContentLength))

	return cappedBody{
		Reader: io.LimitReader(resp.Body, config.MaxHTTPResponseSize),
		Closer: resp.Body,
	}, nil
}

// parseSourceURL accepts absolute http and https URLs only.
func parseSourceURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}
	return u, nil
}

// redactURL drops user info and the query, which may carry tokens.
func redactURL(u *url.URL) string {
	safe := url.URL{Scheme: u.Scheme, Host: u.Host, Path: u.Path}
	return safe.String()
}

// checkResponse rejects error statuses and HTML pages. Servers behind a
// login portal often answer 200 with a sign-in form.
func checkResponse(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s: %s", config.ErrHTTPAuth, resp.Status)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%s: %s", config.ErrHTTPStatus, resp.Status)
	}

	if ct := resp.Header.Get(config.HeaderContentType); ct != "" {
		if mt, _, err := mime.ParseMediaType(ct); err == nil && mt == config.MimeHTML {
			return fmt.Errorf("%s: %s", config.ErrNotVCard, mt)
		}
	}
	return nil
}

// cappedBody reads through the size limit and closes the response body.
type cappedBody struct {
	io.Reader
	io.Closer
}
