// Package client talks to the todo HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Innocent9712/much-to-do/Server/TodoList/internal/config"
	"github.com/Innocent9712/much-to-do/Server/TodoList/internal/todo"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: HTTP %d", e.Status)
	}
	return fmt.Sprintf("api: HTTP %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == http.StatusNotFound
}

// Client is safe for concurrent use.
type Client struct {
	todosURL string
	http     *http.Client
}

// New returns a client for the API rooted at apiBase, e.g.
// http://localhost:8888/.netlify/functions. A zero timeout means none.
func New(apiBase string, timeout time.Duration) *Client {
	return &Client{
		todosURL: config.TodosURL(apiBase),
		http:     &http.Client{Timeout: timeout},
	}
}

// TodosURL is the collection endpoint this client targets.
func (c *Client) TodosURL() string { return c.todosURL }

func (c *Client) List(ctx context.Context) ([]todo.Todo, error) {
	var out []todo.Todo
	if err := c.do(ctx, http.MethodGet, c.todosURL, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id string) (todo.Todo, error) {
	var out todo.Todo
	err := c.do(ctx, http.MethodGet, c.itemURL(id), nil, &out)
	return out, err
}

func (c *Client) Create(ctx context.Context, text string) (todo.Todo, error) {
	var out todo.Todo
	err := c.do(ctx, http.MethodPost, c.todosURL, map[string]string{"text": text}, &out)
	return out, err
}

// Update sends only the fields set in p.
func (c *Client) Update(ctx context.Context, id string, p todo.Patch) (todo.Todo, error) {
	body := map[string]any{}
	if p.Text != nil {
		body["text"] = *p.Text
	}
	if p.Completed != nil {
		body["completed"] = *p.Completed
	}
	var out todo.Todo
	err := c.do(ctx, http.MethodPut, c.itemURL(id), body, &out)
	return out, err
}

func (c *Client) Delete(ctx context.Context, id string) error {
	var out struct {
		Message string `json:"message"`
	}
	return c.do(ctx, http.MethodDelete, c.itemURL(id), nil, &out)
}

// Ping probes the collection endpoint. A nil error means connected; an
// *APIError means reachable but unhealthy.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, c.todosURL, nil, nil)
}

func (c *Client) itemURL(id string) string {
	return c.todosURL + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, u string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	ae := &APIError{Status: resp.StatusCode}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(b, &body) == nil && body.Error != "" {
		ae.Message = body.Error
	} else {
		ae.Message = strings.TrimSpace(string(b))
	}
	return ae
}
