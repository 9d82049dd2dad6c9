package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goccy/go-json"

	"github.com/dmitrijs2005/dbdbedit/internal/common"
	"github.com/dmitrijs2005/dbdbedit/internal/logging"
)

const maxResponseBody = 1 << 20

type HTTPClient struct {
	baseURL  *url.URL
	http     *http.Client
	timeout  time.Duration
	minQuery int
	csrf     string
	log      logging.Logger
}

type Option func(*HTTPClient)

// WithTimeout bounds every request. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithCSRFToken sets a token used until the catalog issues its own cookie.
func WithCSRFToken(token string) Option {
	return func(c *HTTPClient) { c.csrf = token }
}

// WithMinQueryLength sets the shortest query Autocomplete sends.
func WithMinQueryLength(n int) Option {
	return func(c *HTTPClient) { c.minQuery = n }
}

// WithHTTPClient replaces the underlying client. A cookie jar is attached if
// it has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("catalog url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("catalog url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{
		baseURL:  u,
		http:     &http.Client{},
		minQuery: 3,
		log:      logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		c.http.Jar = jar
	}
	return c, nil
}

func (c *HTTPClient) Prime(ctx context.Context, pagePath string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve(pagePath), nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody))
	return nil
}

// CSRFToken prefers the cookie issued by the catalog over the configured one.
func (c *HTTPClient) CSRFToken() string {
	for _, ck := range c.http.Jar.Cookies(c.baseURL) {
		if ck.Name == common.CSRFCookieName {
			return ck.Value
		}
	}
	return c.csrf
}

func (c *HTTPClient) SaveDocument(ctx context.Context, pagePath string, form url.Values) (string, error) {
	var out struct {
		Redirect string `json:"redirect"`
	}
	if err := c.postForm(ctx, c.resolve(pagePath), form, &out); err != nil {
		return "", err
	}
	if out.Redirect == "" {
		return "", fmt.Errorf("%w: no redirect", ErrMalformedResponse)
	}
	return out.Redirect, nil
}

func (c *HTTPClient) AddPublication(ctx context.Context, r PublicationRequest) (Publication, error) {
	form := url.Values{}
	form.Set("number", strconv.Itoa(r.Number))
	form.Set("db_name", r.DBName)
	form.Set("authors", r.Authors)
	form.Set("title", r.Title)
	form.Set("journal", r.Journal)
	form.Set("volume", r.Volume)
	form.Set("year", r.Year)
	form.Set("pages", r.Pages)
	form.Set("download", r.Link)

	var pub Publication
	if err := c.postForm(ctx, c.resolve(common.AddPublicationPath), form, &pub); err != nil {
		return Publication{}, err
	}
	if pub.Cite == "" {
		return Publication{}, fmt.Errorf("%w: no cite", ErrMalformedResponse)
	}
	return pub, nil
}

func (c *HTTPClient) Autocomplete(ctx context.Context, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < c.minQuery {
		return nil, nil
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	u := c.resolve(common.AutocompletePath) + "?" + url.Values{"q": {query}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	var out struct {
		Results []string `json:"results"`
	}
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

func (c *HTTPClient) postForm(ctx context.Context, target string, form url.Values, out any) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	// Sent even when empty; the catalog decides what a missing token means.
	req.Header.Set(common.CSRFHeaderName, c.CSRFToken())

	return c.doJSON(req, out)
}

func (c *HTTPClient) doJSON(req *http.Request, out any) error {
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// do sends req and maps failures. On success the caller owns resp.Body.
func (c *HTTPClient) do(req *http.Request) (*http.Response, error) {
	c.log.Debug(req.Context(), "catalog request", "method", req.Method, "url", req.URL.String())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.mapError(err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w: %s", ErrForbidden, resp.Status)
	}
	return nil, fmt.Errorf("%w: %s: %s", ErrRejected, resp.Status, strings.TrimSpace(string(body)))
}

func (c *HTTPClient) mapError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func (c *HTTPClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *HTTPClient) resolve(path string) string {
	ref, err := url.Parse(path)
	if err != nil {
		return c.baseURL.String() + path
	}
	return c.baseURL.ResolveReference(ref).String()
}
