package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

const defaultTimeout = 10 * time.Second

// TokenSource supplies the bearer token for authenticated calls, usually
// from the request context. A nil source or an empty token means the
// request is sent without an Authorization header; enforcement is the
// server's job.
type TokenSource func(ctx context.Context) string

// StatusError is returned for any non-2xx upstream response. The body is
// carried verbatim so call sites can surface it untranslated.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Code)
}

// Client performs requests against one upstream service base URL.
// It does no retry and no error translation. The reference cache is
// only consulted by the Cached* helpers.
type Client struct {
	http    *http.Client
	baseURL string
	token   TokenSource
	cache   *cache.Cache
}

func New(baseURL string, token TokenSource) *Client {
	return &Client{
		http:    &http.Client{Timeout: defaultTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		cache:   cache.New(10*time.Minute, 15*time.Minute),
	}
}

// Query builds the query string for a filter object. Unset optional fields
// never appear; numeric and boolean values are stringified explicitly.
type Query struct {
	values url.Values
}

func NewQuery() *Query {
	return &Query{values: url.Values{}}
}

func (q *Query) Str(key, value string) *Query {
	if value != "" {
		q.values.Set(key, value)
	}
	return q
}

func (q *Query) Int(key string, value *int) *Query {
	if value != nil {
		q.values.Set(key, fmt.Sprintf("%d", *value))
	}
	return q
}

func (q *Query) Bool(key string, value *bool) *Query {
	if value != nil {
		q.values.Set(key, fmt.Sprintf("%t", *value))
	}
	return q
}

func (q *Query) Encode() string {
	if q == nil || len(q.values) == 0 {
		return ""
	}
	return "?" + q.values.Encode()
}

func (c *Client) endpoint(path string, q *Query) string {
	return c.baseURL + path + q.Encode()
}

func (c *Client) do(req *http.Request, out any) error {
	if c.token != nil {
		if t := c.token(req.Context()); t != "" {
			req.Header.Set("Authorization", "Bearer "+t)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) Get(ctx context.Context, path string, q *Query, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, q), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode payload: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, nil), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) PostJSON(ctx context.Context, path string, payload, out any) error {
	return c.sendJSON(ctx, http.MethodPost, path, payload, out)
}

func (c *Client) PutJSON(ctx context.Context, path string, payload, out any) error {
	return c.sendJSON(ctx, http.MethodPut, path, payload, out)
}

func (c *Client) Patch(ctx context.Context, path string, payload, out any) error {
	return c.sendJSON(ctx, http.MethodPatch, path, payload, out)
}

// FormField is one multipart field. Fields are appended in the order given;
// an empty Value is still sent (it clears the target field upstream).
// Callers omit a field entirely to leave the upstream value untouched.
type FormField struct {
	Name  string
	Value string
}

// FilePart is an optional binary attachment for multipart writes.
type FilePart struct {
	Field    string
	Filename string
	Content  io.Reader
}

func (c *Client) sendMultipart(ctx context.Context, method, path string, fields []FormField, file *FilePart, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", f.Name, err)
		}
	}
	if file != nil {
		part, err := w.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			return fmt.Errorf("failed to create file part: %w", err)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return fmt.Errorf("failed to copy file content: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, nil), &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req, out)
}

func (c *Client) PostMultipart(ctx context.Context, path string, fields []FormField, file *FilePart, out any) error {
	return c.sendMultipart(ctx, http.MethodPost, path, fields, file, out)
}

func (c *Client) PutMultipart(ctx context.Context, path string, fields []FormField, file *FilePart, out any) error {
	return c.sendMultipart(ctx, http.MethodPut, path, fields, file, out)
}

// getCached serves slow-moving reference collections (promotions,
// departments, countries, categories) through the local cache.
func (c *Client) getCached(ctx context.Context, key, path string, q *Query, out any) error {
	if raw, found := c.cache.Get(key); found {
		return json.Unmarshal(raw.([]byte), out)
	}
	if err := c.Get(ctx, path, q, out); err != nil {
		return err
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return nil
	}
	c.cache.Set(key, raw, cache.DefaultExpiration)
	return nil
}
