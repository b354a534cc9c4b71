// Package productapi is a thin client for a REST "products" collection such as
// the one served by json-server. Each method issues exactly one HTTP request and
// never retries; callers decide how failures are presented.
package productapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/miguelzg1911/product-crud-client/internal/model"
	"github.com/miguelzg1911/product-crud-client/internal/obs"
)

const (
	maxBodyBytes = 4 << 20
	maxErrorBody = 512
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithTimeout sets a per-request timeout. By default requests wait for the
// server indefinitely; zero keeps that behavior.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = &d
	}
}

// WithHeaders assigns default headers added to every request.
func WithHeaders(h http.Header) Option {
	return func(c *Client) {
		for k, values := range h {
			for _, v := range values {
				c.headers.Add(k, v)
			}
		}
	}
}

// Client issues CRUD requests against a products collection URL.
type Client struct {
	collection string
	httpClient *http.Client
	headers    http.Header
	timeout    *time.Duration
}

// New creates a Client for the collection URL, e.g. http://localhost:3000/products.
func New(collectionURL string, opts ...Option) (*Client, error) {
	collectionURL = strings.TrimRight(strings.TrimSpace(collectionURL), "/")
	if collectionURL == "" {
		return nil, errors.New("productapi: collection URL is required")
	}
	parsed, err := url.Parse(collectionURL)
	if err != nil {
		return nil, fmt.Errorf("productapi: invalid collection URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("productapi: collection URL %q must be absolute", collectionURL)
	}

	c := &Client{
		collection: collectionURL,
		httpClient: &http.Client{},
		headers:    make(http.Header),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout != nil {
		hc := *c.httpClient
		hc.Timeout = *c.timeout
		c.httpClient = &hc
	}
	return c, nil
}

// CollectionURL returns the URL products are listed and created at.
func (c *Client) CollectionURL() string { return c.collection }

// ResourceURL returns the URL addressing a single product.
func (c *Client) ResourceURL(id model.ID) string {
	return c.collection + "/" + url.PathEscape(id.String())
}

// List fetches every product in the collection.
func (c *Client) List(ctx context.Context) ([]model.Product, error) {
	resp, err := c.do(ctx, http.MethodGet, c.collection, nil)
	if err != nil {
		return nil, err
	}
	var products []model.Product
	if err := decode(resp, &products); err != nil {
		return nil, err
	}
	for _, p := range products {
		if err := p.Check(); err != nil {
			return nil, &DecodeError{Err: err}
		}
	}
	return products, nil
}

// Create posts in and returns the product echoed back with its assigned id.
func (c *Client) Create(ctx context.Context, in model.ProductInput) (model.Product, error) {
	resp, err := c.do(ctx, http.MethodPost, c.collection, in)
	if err != nil {
		return model.Product{}, err
	}
	return decodeProduct(resp)
}

// Update replaces the product addressed by id. A non-2xx answer yields ErrNotFound.
func (c *Client) Update(ctx context.Context, id model.ID, in model.ProductInput) (model.Product, error) {
	resp, err := c.do(ctx, http.MethodPut, c.ResourceURL(id), in)
	if err != nil {
		return model.Product{}, notFound(err)
	}
	return decodeProduct(resp)
}

// Delete removes the product addressed by id. A non-2xx answer yields ErrNotFound.
func (c *Client) Delete(ctx context.Context, id model.ID) error {
	resp, err := c.do(ctx, http.MethodDelete, c.ResourceURL(id), nil)
	if err != nil {
		return notFound(err)
	}
	// Some servers echo the deleted object, others answer 204; the body is not needed.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	_ = resp.Body.Close()
	return nil
}

func notFound(err error) error {
	var herr *HTTPError
	if errors.As(err, &herr) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}

func (c *Client) do(ctx context.Context, method, target string, body any) (*http.Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("productapi: encode request: %w", err)
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, r)
	if err != nil {
		return nil, fmt.Errorf("productapi: build request: %w", err)
	}
	req.Header = c.headers.Clone()
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := obs.RequestIDFromContext(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	req.Header.Set(obs.RequestIDHeader, reqID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		obs.Logger.Warn("api_call_failed",
			"method", method,
			"url", target,
			"request_id", reqID,
			"error", err,
		)
		return nil, fmt.Errorf("productapi: %s %s: %w", method, target, err)
	}
	obs.Logger.Debug("api_call",
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"latency_ms", float64(time.Since(start).Microseconds())/1000.0,
		"request_id", reqID,
	)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, handleError(method, target, resp)
	}
	return resp, nil
}

func handleError(method, target string, resp *http.Response) error {
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &HTTPError{
		Method:     method,
		URL:        target,
		StatusCode: resp.StatusCode,
		Body:       body,
		Header:     resp.Header.Clone(),
	}
}

func decode(resp *http.Response, out any) error {
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("productapi: read response: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{Body: data, Err: err}
	}
	return nil
}

func decodeProduct(resp *http.Response) (model.Product, error) {
	var p model.Product
	if err := decode(resp, &p); err != nil {
		return model.Product{}, err
	}
	if err := p.Check(); err != nil {
		return model.Product{}, &DecodeError{Err: err}
	}
	return p, nil
}
