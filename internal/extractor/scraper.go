package extractor

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/akolanti/DocAgent/internal/customHttpClient"
	"github.com/akolanti/DocAgent/internal/domain/commonModels"
	"github.com/akolanti/DocAgent/internal/domain/faults"
	"github.com/akolanti/DocAgent/pkg/logger_i"
)

// Scraper fetches regulation pages and parses them into segments.
type Scraper struct {
	baseURL string
	headers map[string]string
	client  *http.Client
	logger  *logger_i.Logger
}

// NewScraper builds a scraper for the given base URL with browser-like
// headers, some agencies refuse the default Go user agent.
func NewScraper(baseURL string, timeout time.Duration) *Scraper {
	return &Scraper{
		baseURL: baseURL,
		headers: map[string]string{
			"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
				"AppleWebKit/537.36 (KHTML, like Gecko) " +
				"Chrome/122.0.0.0 Safari/537.36",
			"Accept-Language": "en-US,en;q=0.9",
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		},
		client: customHttpClient.NewPooledClient(timeout),
		logger: logger_i.NewLogger("Scraper"),
	}
}

// SetHeaders merges custom headers over the defaults.
func (s *Scraper) SetHeaders(headers map[string]string) {
	for k, v := range headers {
		s.headers[k] = v
	}
}

// Fetch downloads a page. Relative paths are joined onto the base URL, the
// fully resolved URL is returned as the source identifier.
func (s *Scraper) Fetch(ctx context.Context, path string) (string, string, error) {
	fullURL := path
	if s.baseURL != "" && !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		if strings.HasPrefix(path, "/") {
			fullURL = s.baseURL + path
		} else {
			fullURL = s.baseURL + "/" + path
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return "", fullURL, faults.Wrap(faults.ValidationError, err, "bad fetch path %s", path)
	}
	for k, v := range s.headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fullURL, faults.Wrap(faults.ParseFailure, err, "fetch failed for %s", fullURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fullURL, faults.New(faults.ParseFailure, "fetch of %s returned status %d", fullURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fullURL, faults.Wrap(faults.ParseFailure, err, "reading body of %s", fullURL)
	}

	s.logger.Debug("fetched page", "url", fullURL, "bytes", len(body))
	return string(body), fullURL, nil
}

// FetchAndParse fetches a page and extracts segments with the configured
// selectors.
func (s *Scraper) FetchAndParse(ctx context.Context, path string, cfg Config) ([]commonModels.Segment, string, error) {
	markup, fullURL, err := s.Fetch(ctx, path)
	if err != nil {
		return nil, fullURL, err
	}
	segments, err := ParseHTML(markup, fullURL, cfg)
	return segments, fullURL, err
}
