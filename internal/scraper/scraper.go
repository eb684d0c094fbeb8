package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/pfrederiksen/contest-digest/internal/logger"
)

const (
	SourceURL = "https://oipage.tommyjin.cn/"
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	Timeout   = 10 * time.Second

	// maxBodySize caps how much of the page is read
	maxBodySize = 8 << 20
)

// FetchError reports a failure to retrieve the source page:
// a network error, a timeout, or a non-2xx status.
type FetchError struct {
	URL        string
	StatusCode int
	Timeout    bool
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.Timeout:
		return fmt.Sprintf("request timeout: failed to fetch contest data from %s", e.URL)
	case e.StatusCode != 0:
		return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
	default:
		return fmt.Sprintf("failed to fetch contest data: %v", e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Scraper handles fetching the contest listing page
type Scraper struct {
	client    *http.Client
	url       string
	userAgent string
	timeout   time.Duration
}

// Option configures a Scraper
type Option func(*Scraper)

// WithURL overrides the source page URL
func WithURL(url string) Option {
	return func(s *Scraper) {
		if url != "" {
			s.url = url
		}
	}
}

// WithTimeout overrides the fetch timeout
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		if d > 0 {
			s.timeout = d
			s.client.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(s *Scraper) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		url:       SourceURL,
		userAgent: UserAgent,
		timeout:   Timeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// URL returns the page the scraper reads from
func (s *Scraper) URL() string {
	return s.url
}

// Fetch retrieves the raw page markup. The request is bounded by the scraper timeout;
// every failure is returned as a *FetchError.
func (s *Scraper) Fetch(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		logger.RecordTiming("fetch.duration", time.Since(start))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return "", &FetchError{URL: s.url, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &FetchError{URL: s.url, Timeout: isTimeout(ctx, err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{URL: s.url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", &FetchError{URL: s.url, Timeout: isTimeout(ctx, err), Err: fmt.Errorf("reading body: %w", err)}
	}

	logger.Debug("Fetched contest page", logger.Fields{
		"url":   s.url,
		"bytes": len(body),
	})

	return string(body), nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
