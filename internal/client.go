package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// Backend is the typed façade over the chat service REST API. The store and
// the pipelines depend on this interface only; *Client is the HTTP
// implementation and tests substitute fakes.
type Backend interface {
	ListModels(ctx context.Context) ([]Model, error)
	ListChats(ctx context.Context) ([]Session, error)
	CreateChat(ctx context.Context, model string) (*Session, error)
	SendMessage(ctx context.Context, chatID string, msg Message) (*Message, error)
	UpdateChat(ctx context.Context, chatID string, session *Session) (*Session, error)
	DeleteChat(ctx context.Context, chatID string) error
}

// DefaultServerURL is where the backend listens when run locally.
const DefaultServerURL = "http://localhost:8000/api"

const defaultModelsTTL = 5 * time.Minute

// Client talks to the chat backend over HTTP. All failures, transport or
// non-2xx, normalize to *NetworkError. The model list is cached in memory
// with a TTL; session data is never cached locally.
type Client struct {
	baseURL string
	httpc   *http.Client

	mu        sync.Mutex
	models    []Model
	modelsAt  time.Time
	modelsTTL time.Duration
}

var _ Backend = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.httpc = h }
}

// WithModelsTTL overrides how long the model list is cached.
func WithModelsTTL(d time.Duration) ClientOption {
	return func(c *Client) { c.modelsTTL = d }
}

// NewClient creates a client for the backend at baseURL (e.g.
// "http://localhost:8000/api").
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   baseURL,
		httpc:     &http.Client{Timeout: 60 * time.Second},
		modelsTTL: defaultModelsTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs one JSON round trip. in is marshaled as the request body when
// non-nil; the response body is unmarshaled into out when non-nil.
func (c *Client) do(ctx context.Context, op, method, path string, in, out interface{}) error {
	u := c.baseURL + path

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return &NetworkError{Op: op, URL: u, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &NetworkError{Op: op, URL: u, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: op, URL: u, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &NetworkError{
			Op:     op,
			URL:    u,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("%s", string(data)),
		}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &NetworkError{Op: op, URL: u, Status: resp.StatusCode, Err: err}
		}
	}

	return nil
}

// ListModels returns the models offered by the backend. Served from the
// in-memory cache while fresh.
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	c.mu.Lock()
	if c.models != nil && time.Since(c.modelsAt) < c.modelsTTL {
		cached := make([]Model, len(c.models))
		copy(cached, c.models)
		c.mu.Unlock()
		LogDebug("model list served from cache (%d models)", len(cached))
		return cached, nil
	}
	c.mu.Unlock()

	var out struct {
		Models []Model `json:"models"`
	}
	if err := c.do(ctx, "list models", http.MethodGet, "/models", nil, &out); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.models = out.Models
	c.modelsAt = time.Now()
	c.mu.Unlock()

	return out.Models, nil
}

// ListChats returns every session stored server-side.
func (c *Client) ListChats(ctx context.Context) ([]Session, error) {
	var out struct {
		Chats []Session `json:"chats"`
	}
	if err := c.do(ctx, "list chats", http.MethodGet, "/chats", nil, &out); err != nil {
		return nil, err
	}
	return out.Chats, nil
}

// CreateChat creates a new backend session for the given model and returns it
// with the backend-assigned id.
func (c *Client) CreateChat(ctx context.Context, model string) (*Session, error) {
	in := map[string]string{"model": model}
	var out Session
	if err := c.do(ctx, "create chat", http.MethodPost, "/chats", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendMessage posts one message to a session and returns the assistant reply.
func (c *Client) SendMessage(ctx context.Context, chatID string, msg Message) (*Message, error) {
	var out struct {
		Response Message `json:"response"`
	}
	path := "/chats/" + url.PathEscape(chatID) + "/messages"
	if err := c.do(ctx, "send message", http.MethodPost, path, msg, &out); err != nil {
		return nil, err
	}
	return &out.Response, nil
}

// UpdateChat replaces the stored session server-side.
func (c *Client) UpdateChat(ctx context.Context, chatID string, session *Session) (*Session, error) {
	var out Session
	path := "/chats/" + url.PathEscape(chatID)
	if err := c.do(ctx, "update chat", http.MethodPut, path, session, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteChat removes the session server-side.
func (c *Client) DeleteChat(ctx context.Context, chatID string) error {
	path := "/chats/" + url.PathEscape(chatID)
	return c.do(ctx, "delete chat", http.MethodDelete, path, nil, nil)
}
