package monitor

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/aleister1102/pagewatch/internal/common"
	"github.com/aleister1102/pagewatch/internal/config"
	"github.com/rs/zerolog"
)

// FetchResult is either accessible content or an inaccessible page. Err
// explains an inaccessible result and is nil otherwise.
type FetchResult struct {
	Accessible  bool
	Content     []byte
	StatusCode  int
	ContentType string
	Err         error
}

// Fetcher retrieves page content. It never returns errors or retries; every
// failure becomes an inaccessible result.
type Fetcher struct {
	httpClient *http.Client
	cfg        config.FetcherConfig
	logger     zerolog.Logger
}

// NewFetcher creates a new Fetcher.
func NewFetcher(client *http.Client, cfg config.FetcherConfig, logger zerolog.Logger) *Fetcher {
	if cfg.MaxContentSize <= 0 {
		cfg.MaxContentSize = config.DefaultFetcherMaxContentSize
	}
	return &Fetcher{
		httpClient: client,
		cfg:        cfg,
		logger:     logger.With().Str("component", "Fetcher").Logger(),
	}
}

// Fetch GETs url and returns its body byte for byte.
func (f *Fetcher) Fetch(ctx context.Context, url string) FetchResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return f.inaccessible(url, 0, common.WrapError(err, fmt.Sprintf("creating request for %s", url)))
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return f.inaccessible(url, 0, common.NewNetworkError(url, "HTTP request failed", err))
	}
	defer resp.Body.Close()

	if !f.cfg.AcceptsAnyStatus() && (resp.StatusCode < 200 || resp.StatusCode >= 300) {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
		return f.inaccessible(url, resp.StatusCode, common.NewHTTPErrorWithURL(resp.StatusCode, http.StatusText(resp.StatusCode), url))
	}

	maxSize := int64(f.cfg.MaxContentSize)
	if resp.ContentLength > maxSize {
		return f.inaccessible(url, resp.StatusCode, fmt.Errorf("content too large: %d bytes (max: %d bytes)", resp.ContentLength, maxSize))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSize+1))
	if err != nil {
		return f.inaccessible(url, resp.StatusCode, common.NewNetworkError(url, "failed to read response body", err))
	}
	if int64(len(body)) > maxSize {
		return f.inaccessible(url, resp.StatusCode, fmt.Errorf("content too large: more than %d bytes", maxSize))
	}

	contentType := resp.Header.Get("Content-Type")

	f.logger.Debug().
		Str("url", url).
		Int("status_code", resp.StatusCode).
		Str("content_type", contentType).
		Int("size", len(body)).
		Msg("Page fetched")

	return FetchResult{
		Accessible:  true,
		Content:     body,
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
	}
}

func (f *Fetcher) inaccessible(url string, status int, err error) FetchResult {
	f.logger.Warn().Err(err).Str("url", url).Int("status_code", status).Msg("Page inaccessible")
	return FetchResult{StatusCode: status, Err: err}
}
