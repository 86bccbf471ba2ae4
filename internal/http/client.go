// Package http implements the transport layer for the VulnGuard API: request
// building against the two API surfaces, authentication headers, version
// injection, retry on transient server failures, and diagnostic logging.
package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/vulnguard-io/vulnguard-client/internal/constants"
	"github.com/vulnguard-io/vulnguard-client/pkg/vulnguard"
)

// API selects which base URL a request targets.
type API int

const (
	// LegacyAPI is the attribute-style v1 surface with bare JSON payloads.
	LegacyAPI API = iota
	// RestAPI is the versioned surface with a data/links envelope.
	RestAPI
)

// Logger interface for HTTP client logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request represents one outgoing API request.
type Request struct {
	Method  string
	Path    string
	API     API
	Query   url.Values
	Headers map[string]string
	Body    interface{}

	// ExcludeVersion suppresses REST version injection. Next-link follows
	// set it because the link already carries a fully-qualified query
	// string and the endpoint rejects a duplicated version parameter.
	ExcludeVersion bool
}

// Response represents an API response.
type Response struct {
	StatusCode int
	Headers    nethttp.Header
	Body       []byte
}

// Client is the HTTP transport for the VulnGuard API.
type Client struct {
	baseURL     string
	restBaseURL string
	token       string
	version     string
	userAgent   string
	httpClient  *retryablehttp.Client
	logger      Logger
	debug       bool
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets a logger for the client.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithVersion sets the REST API version sent on versioned calls.
func WithVersion(version string) Option {
	return func(c *Client) {
		c.version = version
	}
}

// WithRetryConfig tunes the retry policy for transient server failures.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithSkipTLSVerify disables TLS certificate verification.
func WithSkipTLSVerify(skip bool) Option {
	return func(c *Client) {
		if !skip {
			return
		}

		transport := nethttp.DefaultTransport.(*nethttp.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 -- opt-in for local development
		c.httpClient.HTTPClient.Transport = transport
	}
}

// NewClient creates a new transport against the given legacy and REST base
// URLs. Trailing slashes are trimmed so path joining stays predictable.
func NewClient(apiURL, restAPIURL, token string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.Logger = nil
	retryClient.CheckRetry = checkRetry
	// Hand back the last response after retries are exhausted so callers get
	// an APIError with the body instead of a bare "giving up" error.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		baseURL:     strings.TrimSuffix(apiURL, "/"),
		restBaseURL: strings.TrimSuffix(restAPIURL, "/"),
		token:       token,
		userAgent:   "vulnguard-client/1.0",
		httpClient:  retryClient,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// checkRetry retries transport failures and 5xx responses only. Client
// errors, including 429, are terminal on the first attempt.
func checkRetry(ctx context.Context, resp *nethttp.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil || resp == nil {
		return true, nil
	}

	return resp.StatusCode >= nethttp.StatusInternalServerError, nil
}

// Do executes a request and returns the response. Any response with a
// non-success status, after the retry policy is exhausted, returns a
// *vulnguard.APIError carrying the response body.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL, err := c.buildURL(req)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader

	if req.Body != nil {
		bodyBytes, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		bodyReader = bytes.NewReader(bodyBytes)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	c.setHeaders(httpReq, req)

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, fullURL, err)
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    fullURL,
		})
	}

	if resp.StatusCode >= nethttp.StatusBadRequest {
		if c.logger != nil {
			c.logger.Error("HTTP request failed", map[string]interface{}{
				"method": req.Method,
				"url":    fullURL,
				"status": resp.StatusCode,
				"body":   string(respBody),
			})
		}

		return resp, &vulnguard.APIError{
			StatusCode: resp.StatusCode,
			Method:     req.Method,
			URL:        fullURL,
			Body:       respBody,
		}
	}

	return resp, nil
}

// buildURL joins the request path with the selected base URL and encodes the
// query. Absolute paths (cursor links) are used verbatim. A caller-supplied
// limit parameter is dropped when the path already embeds one, because the
// endpoint treats duplicate keys as an array and rejects the request.
func (c *Client) buildURL(req *Request) (string, error) {
	path := req.Path

	// Old-style project deletion paths are bridged onto the REST surface.
	if req.Method == nethttp.MethodDelete && IsLegacyProjectPath(path) {
		path = RewriteLegacyProjectPath(path)
		req.API = RestAPI
	}

	var fullURL string

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		fullURL = path
	} else {
		base := c.baseURL
		if req.API == RestAPI {
			base = c.restBaseURL
		}

		fullURL = base + "/" + CleanPath(path)
	}

	parsed, err := url.Parse(fullURL)
	if err != nil {
		return "", fmt.Errorf("parsing request URL %q: %w", fullURL, err)
	}

	query := url.Values{}
	for key, values := range req.Query {
		query[key] = values
	}

	embedded := parsed.Query()

	if req.API == RestAPI && !req.ExcludeVersion && !query.Has("version") && !embedded.Has("version") {
		version := c.version
		if version == "" {
			version = constants.FallbackAPIVersion
		}

		query.Set("version", version)
	}

	if embedded.Has("limit") {
		query.Del("limit")
	}

	for key, values := range query {
		for _, value := range values {
			embedded.Add(key, value)
		}
	}

	parsed.RawQuery = embedded.Encode()

	return parsed.String(), nil
}

// setHeaders applies auth, agent, and content-type policy. GET and DELETE
// send plain auth headers; POST and PUT add application/json; PATCH uses the
// REST surface's typed-JSON content type.
func (c *Client) setHeaders(httpReq *retryablehttp.Request, req *Request) {
	httpReq.Header.Set("Authorization", "token "+c.token)
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Accept", "application/json")

	switch req.Method {
	case nethttp.MethodPost, nethttp.MethodPut:
		httpReq.Header.Set("Content-Type", "application/json")
	case nethttp.MethodPatch:
		httpReq.Header.Set("Content-Type", "application/vnd.api+json")
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
}

// Get performs a GET against the legacy surface.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodGet, Path: path, API: LegacyAPI, Query: query})
}

// GetRest performs a GET against the REST surface.
func (c *Client) GetRest(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodGet, Path: path, API: RestAPI, Query: query})
}

// Post performs a POST against the legacy surface.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPost, Path: path, API: LegacyAPI, Body: body})
}

// PostRest performs a POST against the REST surface.
func (c *Client) PostRest(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPost, Path: path, API: RestAPI, Body: body})
}

// Put performs a PUT against the legacy surface.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPut, Path: path, API: LegacyAPI, Body: body})
}

// Patch performs a PATCH against the REST surface.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPatch, Path: path, API: RestAPI, Body: body})
}

// Delete performs a DELETE. Old-style project paths are rewritten to their
// REST form inside Do.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodDelete, Path: path, API: LegacyAPI})
}

// DeleteRest performs a DELETE against the REST surface.
func (c *Client) DeleteRest(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodDelete, Path: path, API: RestAPI})
}

// GetPage fetches the first page of a REST listing, implementing
// vulnguard.PageGetter.
func (c *Client) GetPage(ctx context.Context, path string, query url.Values) (*vulnguard.Page, error) {
	resp, err := c.GetRest(ctx, path, query)
	if err != nil {
		return nil, err
	}

	return decodePage(resp.Body)
}

// GetNextPage follows an opaque cursor link verbatim, suppressing version
// re-injection.
func (c *Client) GetNextPage(ctx context.Context, link string) (*vulnguard.Page, error) {
	resp, err := c.Do(ctx, &Request{
		Method:         nethttp.MethodGet,
		Path:           link,
		API:            RestAPI,
		ExcludeVersion: true,
	})
	if err != nil {
		return nil, err
	}

	return decodePage(resp.Body)
}

// decodePage parses a data/links envelope. A missing data key yields a nil
// Data slice, which the pagination walker distinguishes from an empty page.
func decodePage(body []byte) (*vulnguard.Page, error) {
	var doc vulnguard.Document

	err := json.Unmarshal(body, &doc)
	if err != nil {
		return nil, fmt.Errorf("parsing page envelope: %w", err)
	}

	page := &vulnguard.Page{Links: doc.Links}

	if doc.Data == nil {
		return page, nil
	}

	trimmed := bytes.TrimSpace(doc.Data)

	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		return page, nil
	case trimmed[0] == '[':
		err = json.Unmarshal(trimmed, &page.Data)
		if err != nil {
			return nil, fmt.Errorf("parsing page data: %w", err)
		}
	default:
		page.Data = []json.RawMessage{doc.Data}
	}

	return page, nil
}
