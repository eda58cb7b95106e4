package transit

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/net/html/charset"
)

const (
	// DefaultBaseURL is the operator's arrival times page.
	DefaultBaseURL = "https://www.salamancadetransportes.com/tiempos-de-llegada/"

	// DefaultUserAgent is sent with every request; the operator rejects
	// obvious bots.
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

	// DefaultTimeout bounds a single request.
	DefaultTimeout = 10 * time.Second

	maxResponseBodySize = 1 << 20 // 1MB
)

// ClientParams holds configuration for creating a Client.
type ClientParams struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	// Retries is the number of extra attempts made after a transport error.
	Retries int
	// RetryBaseDelay is the first backoff delay. Defaults to 500ms; tests can
	// set a small value.
	RetryBaseDelay time.Duration
	HTTPClient     *http.Client
}

// Client fetches and extracts the arrivals page of one line at a time.
type Client struct {
	baseURL        string
	userAgent      string
	timeout        time.Duration
	retries        int
	retryBaseDelay time.Duration
	httpClient     *http.Client
}

// NewClient creates a Client, filling unset params with defaults.
func NewClient(p ClientParams) *Client {
	c := &Client{
		baseURL:        p.BaseURL,
		userAgent:      p.UserAgent,
		timeout:        p.Timeout,
		retries:        p.Retries,
		retryBaseDelay: p.RetryBaseDelay,
		httpClient:     p.HTTPClient,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.retries < 0 {
		c.retries = 0
	}
	if c.retryBaseDelay <= 0 {
		c.retryBaseDelay = 500 * time.Millisecond
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	return c
}

// URL returns the arrivals page URL for the given line reference.
func (c *Client) URL(ref string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base url %q: %w", c.baseURL, err)
	}
	q := u.Query()
	q.Set("ref", ref)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Fetch retrieves the page for line and returns its formatted arrivals.
// Transport errors are retried with exponential backoff; HTTP status and
// parse errors are not. Every returned error is a *FetchError.
func (c *Client) Fetch(ctx context.Context, line LineSpec) (string, error) {
	pageURL, err := c.URL(line.Ref)
	if err != nil {
		return "", &FetchError{Kind: KindTransport, Line: line.Name, Err: err}
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.retryBaseDelay
	eb.MaxElapsedTime = 0
	b := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(c.retries)), ctx)

	v, err := backoff.RetryWithData(func() (string, error) {
		v, err := c.fetchOnce(ctx, line, pageURL)
		if err != nil && KindOf(err) != KindTransport {
			return "", backoff.Permanent(err)
		}
		return v, err
	}, b)
	if err != nil && KindOf(err) == KindUnknown {
		// cancelled while waiting between attempts
		err = &FetchError{Kind: KindTransport, Line: line.Name, URL: pageURL, Err: err}
	}
	return v, err
}

func (c *Client) fetchOnce(ctx context.Context, line LineSpec, pageURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	fail := func(kind ErrorKind, status int, err error) (string, error) {
		return "", &FetchError{Kind: kind, Line: line.Name, URL: pageURL, StatusCode: status, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return fail(KindTransport, 0, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "es-ES,es;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(KindTransport, 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBodySize))
		return fail(KindHTTPStatus, resp.StatusCode, fmt.Errorf("unexpected status %s", resp.Status))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return fail(KindTransport, resp.StatusCode, fmt.Errorf("reading body: %w", err))
	}

	// DetermineEncoding only inspects body; an empty page is an empty document.
	enc, _, _ := charset.DetermineEncoding(body, resp.Header.Get("Content-Type"))
	utf8Body := enc.NewDecoder().Reader(bytes.NewReader(body))

	v, err := ExtractFrom(utf8Body, line.Name)
	if err != nil {
		return fail(KindParse, resp.StatusCode, err)
	}
	return v, nil
}
