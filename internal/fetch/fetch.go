// Package fetch issues the HTTP requests used to check external links.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout bounds a single request.
const DefaultTimeout = 10 * time.Second

// DefaultMaxRedirects is how many redirects Head follows before reporting the 3xx itself.
const DefaultMaxRedirects = 5

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; cv-portfolio-linkcheck/1.0)"

// maxTitleBytes caps how much of a page Title reads.
const maxTitleBytes = 512 << 10

// Result describes the outcome of a request.
// StatusCode is 0 when no response was received.
type Result struct {
	URL        string
	FinalURL   string
	StatusCode int
	Redirects  int
}

// OK reports whether the final status is in the 200-399 range.
func (r *Result) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode <= 399
}

// Options configures request behavior.
type Options struct {
	Timeout      time.Duration
	UserAgent    string
	MaxRedirects int
	Client       *http.Client
}

// DefaultOptions returns sensible defaults for link checks.
func DefaultOptions() *Options {
	return &Options{
		Timeout:      DefaultTimeout,
		UserAgent:    DefaultUserAgent,
		MaxRedirects: DefaultMaxRedirects,
	}
}

// client returns a client that never follows redirects on its own.
func (o *Options) client() *http.Client {
	base := o.Client
	if base == nil {
		base = http.DefaultClient
	}
	c := *base
	c.Timeout = o.Timeout
	c.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &c
}

// Head sends HEAD requests to urlStr, following up to MaxRedirects Location headers.
// A network failure returns a Result with StatusCode 0 alongside the error.
func Head(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := checkURL(urlStr); err != nil {
		return &Result{URL: urlStr, FinalURL: urlStr}, err
	}

	client := opts.client()
	result := &Result{URL: urlStr, FinalURL: urlStr}

	for {
		status, location, err := headOnce(ctx, client, result.FinalURL, opts.UserAgent)
		if err != nil {
			result.StatusCode = 0
			return result, &Error{URL: result.FinalURL, Message: "HTTP request failed", Cause: err}
		}
		result.StatusCode = status

		if status < 300 || status >= 400 || location == "" || result.Redirects >= opts.MaxRedirects {
			return result, nil
		}

		next, err := resolve(result.FinalURL, location)
		if err != nil {
			return result, &Error{URL: result.FinalURL, Message: "invalid redirect location", Cause: err}
		}
		result.FinalURL = next
		result.Redirects++
	}
}

func headOnce(ctx context.Context, client *http.Client, urlStr, userAgent string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, urlStr, nil)
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode, resp.Header.Get("Location"), nil
}

// Title fetches urlStr with GET and returns the trimmed text of its <title> element.
func Title(ctx context.Context, urlStr string, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := checkURL(urlStr); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)

	c := opts.client()
	c.CheckRedirect = nil
	resp, err := c.Do(req)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxTitleBytes))
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to parse HTML", Cause: err}
	}
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " "), nil
}

func checkURL(urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}
	return nil
}

func resolve(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return b.ResolveReference(r).String(), nil
}
