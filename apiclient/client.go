package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"adminconsole/models"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

const maxBodySize = 32 << 20

type Client struct {
	baseURL string
	http    *http.Client
	token   string
	log     *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithServiceToken sets the token used when the context carries none, which is
// the case for background pollers.
func WithServiceToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type tokenKey struct{}

// ContextWithToken makes calls made with ctx act as the given upstream user.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// File is one part of a multipart create request.
type File struct {
	Field    string
	Filename string
	Content  io.Reader
}

// List fetches a collection and unwraps it from the resource's envelope key.
func List[T any](ctx context.Context, c *Client, res Resource) ([]T, error) {
	_, body, err := c.do(ctx, http.MethodGet, res.Path, nil, "")
	if err != nil {
		return nil, err
	}

	raw := json.RawMessage(body)
	if res.Key != "" {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("%s: %w", res.Name, ErrMalformedResponse)
		}

		var ok bool
		if raw, ok = envelope[res.Key]; !ok {
			return nil, fmt.Errorf("%s: missing key %q: %w", res.Name, res.Key, ErrMalformedResponse)
		}
	}

	trimmed := bytes.TrimSpace(raw)
	if bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%s: expected array: %w", res.Name, ErrMalformedResponse)
	}

	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", res.Name, err, ErrMalformedResponse)
	}

	return items, nil
}

// Create posts a JSON body to the resource.
func (c *Client) Create(ctx context.Context, res Resource, payload interface{}) (*models.UpstreamResult, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	status, body, err := c.do(ctx, http.MethodPost, res.Path, bytes.NewReader(data), "application/json")
	if err != nil {
		return nil, err
	}

	return checkResult(status, body)
}

// CreateMultipart posts fields and files as multipart/form-data.
func (c *Client) CreateMultipart(ctx context.Context, res Resource, fields map[string]string, files []File) (*models.UpstreamResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, err
		}
	}

	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	status, body, err := c.do(ctx, http.MethodPost, res.Path, &buf, w.FormDataContentType())
	if err != nil {
		return nil, err
	}

	return checkResult(status, body)
}

func (c *Client) Delete(ctx context.Context, res Resource, id string) error {
	_, _, err := c.do(ctx, http.MethodDelete, res.Path+"/"+url.PathEscape(id), nil, "")
	return err
}

func (c *Client) ApproveBudget(ctx context.Context, id string) error {
	return c.action(ctx, http.MethodPost, "/api/budget-approve/"+url.PathEscape(id))
}

func (c *Client) MarkLoanPaid(ctx context.Context, id string) error {
	return c.action(ctx, http.MethodPost, "/api/loan/"+url.PathEscape(id)+"/mark-as-paid")
}

func (c *Client) ApproveReturn(ctx context.Context, id string) error {
	return c.action(ctx, http.MethodPut, "/api/return-items/approve/"+url.PathEscape(id))
}

func (c *Client) RejectReturn(ctx context.Context, id string) error {
	return c.action(ctx, http.MethodPut, "/api/return-items/reject/"+url.PathEscape(id))
}

func (c *Client) Login(ctx context.Context, req models.AuthRequest) (*models.AuthResponse, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	_, body, err := c.do(ctx, http.MethodPost, "/api/login", bytes.NewReader(data), "application/json")
	if err != nil {
		return nil, err
	}

	var resp models.AuthResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("login: %w", ErrMalformedResponse)
	}

	if resp.Token == "" || resp.User.Id == "" {
		return nil, fmt.Errorf("login: missing token or user: %w", ErrMalformedResponse)
	}

	return &resp, nil
}

func (c *Client) action(ctx context.Context, method, path string) error {
	status, body, err := c.do(ctx, method, path, nil, "")
	if err != nil {
		return err
	}

	_, err = checkResult(status, body)
	return err
}

// do sends the request and returns the body of a 2xx answer. Anything else
// comes back as *Error.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, err
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if id, err := uuid.NewV4(); err == nil {
		req.Header.Set("X-Request-ID", id.String())
	}

	token, _ := ctx.Value(tokenKey{}).(string)
	if token == "" {
		token = c.token
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	t := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("upstream request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%s %s: reading body: %w", method, path, err)
	}

	c.log.Debug("upstream request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(t)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, data, parseError(resp.StatusCode, data)
	}

	return resp.StatusCode, data, nil
}

func parseError(status int, body []byte) error {
	e := &Error{Status: status}

	var result models.UpstreamResult
	if err := json.Unmarshal(body, &result); err == nil {
		e.Message = result.Message
		e.Errors = result.Errors
	}

	if e.Message == "" && len(e.Errors) == 0 {
		e.Message = http.StatusText(status)
	}

	return e
}

// checkResult applies the body flags some endpoints add on top of the status:
// success:false or a status other than 200 means the write did not happen.
func checkResult(status int, body []byte) (*models.UpstreamResult, error) {
	var result models.UpstreamResult

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return &result, nil
	}

	if err := json.Unmarshal(trimmed, &result); err != nil {
		return &result, nil
	}

	if result.Success != nil && !*result.Success {
		return &result, &Error{Status: status, Message: result.Message, Errors: result.Errors}
	}

	if result.Status != nil && *result.Status != http.StatusOK {
		return &result, &Error{Status: *result.Status, Message: result.Message, Errors: result.Errors}
	}

	return &result, nil
}
