// Package fetch retrieves job posting pages and reduces them to plain text.
// Some users paste a posting URL instead of the posting itself; fetching and
// stripping the page lets the flow continue, and the error values below tell
// the caller when to ask for pasted text instead.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DefaultTimeout bounds the whole fetch, including redirects.
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent mimics a desktop browser; many job boards refuse
	// requests with an obvious bot user agent.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	maxRedirects = 5

	// minContentLength is the smallest stripped-text size considered a real
	// posting rather than an error page or consent wall.
	minContentLength = 100
)

var (
	// ErrAccessBlocked means the site refuses scraping (HTTP 403 or 999).
	ErrAccessBlocked = errors.New("access blocked by the site, paste the job posting text directly")

	// ErrContentTooShort means the stripped text is too small to be a posting.
	ErrContentTooShort = errors.New("extracted content too short or invalid")
)

var spacePattern = regexp.MustCompile(`\s+`)

// StatusError reports a failed fetch. Status is zero for network-level
// failures that never produced an HTTP response.
type StatusError struct {
	URL     string
	Status  int
	Message string
	Cause   error
}

func (e *StatusError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch error for %s (%d): %s", e.URL, e.Status, e.Message)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *StatusError) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
}

// DefaultOptions returns the defaults used for job posting pages.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// IsURL reports whether the input looks like a URL rather than pasted text.
func IsURL(s string) bool {
	s = strings.TrimSpace(s)
	if u, err := url.Parse(s); err == nil && u.Scheme != "" && u.Host != "" {
		return true
	}
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http") || strings.HasPrefix(lower, "www.")
}

// Text fetches the URL and returns the page reduced to plain text: script and
// style blocks dropped, all remaining markup stripped, entities decoded and
// whitespace collapsed.
func Text(ctx context.Context, urlStr string, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	client := &http.Client{
		Timeout: opts.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", &StatusError{URL: urlStr, Message: "invalid request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := client.Do(req)
	if err != nil {
		return "", &StatusError{URL: urlStr, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &StatusError{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == 999:
		// LinkedIn answers scrapers with the nonstandard 999.
		return "", ErrAccessBlocked
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", &StatusError{
			URL:     urlStr,
			Status:  resp.StatusCode,
			Message: http.StatusText(resp.StatusCode),
		}
	}

	text, err := stripHTML(string(body))
	if err != nil {
		return "", &StatusError{URL: urlStr, Message: "failed to parse HTML", Cause: err}
	}
	if len(text) < minContentLength {
		return "", ErrContentTooShort
	}
	return text, nil
}

// stripHTML removes script/style blocks and all tags, returning decoded text
// with collapsed whitespace.
func stripHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	doc.Find("script, style, noscript").Remove()
	text := doc.Text()
	return strings.TrimSpace(spacePattern.ReplaceAllString(text, " ")), nil
}
