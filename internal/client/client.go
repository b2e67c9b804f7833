// Package client talks to TodoService over HTTP.
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

	dom "github.com/Joshcode41/todo-app/internal/domain"
	"github.com/Joshcode41/todo-app/internal/dto"
)

const todoPath = "/api/Todo"

// ErrMalformedResponse is returned when a 2xx body does not carry the expected todo.
var ErrMalformedResponse = errors.New("malformed response")

// errNoBody reports a 2xx answer whose body could not be decoded into out.
var errNoBody = errors.New("undecodable body")

// StatusError is returned for any non-2xx answer.
type StatusError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the service at baseURL (e.g. "http://localhost:8080").
func New(baseURL string, timeout time.Duration) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

func (c *Client) List(ctx context.Context) ([]dom.Todo, error) {
	var out dto.ListTodosResponse
	if err := c.do(ctx, "list", http.MethodGet, todoPath, nil, &out); err != nil {
		return nil, err
	}
	list := make([]dom.Todo, 0, len(out.Todos))
	for _, t := range out.Todos {
		list = append(list, fromResponse(t))
	}
	return list, nil
}

func (c *Client) Get(ctx context.Context, id string) (dom.Todo, error) {
	var out dto.TodoEnvelope
	if err := c.do(ctx, "get", http.MethodGet, todoPath+"/"+url.PathEscape(id), nil, &out); err != nil {
		return dom.Todo{}, err
	}
	return envelopeTodo("get", out)
}

func (c *Client) Create(ctx context.Context, title, description string) (dom.Todo, error) {
	req := dto.CreateTodoRequest{Title: title, Description: description}
	var out dto.TodoEnvelope
	if err := c.do(ctx, "create", http.MethodPost, todoPath, req, &out); err != nil {
		return dom.Todo{}, err
	}
	return envelopeTodo("create", out)
}

// Update sends the full replacement. Only the status decides success; when the
// body is empty or not a todo envelope the submitted todo is returned.
func (c *Client) Update(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	req := dto.UpdateTodoRequest{ID: dto.ID(t.ID), Title: t.Title, Description: t.Description}
	var out dto.TodoEnvelope
	err := c.do(ctx, "update", http.MethodPut, todoPath, req, &out)
	if errors.Is(err, errNoBody) {
		return t, nil
	}
	if err != nil {
		return dom.Todo{}, err
	}
	if out.Todo.ID == "" {
		return t, nil
	}
	return fromResponse(out.Todo), nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, "delete", http.MethodDelete, todoPath+"?id="+url.QueryEscape(id), nil, nil)
}

// do performs one request. out may be nil. A 2xx body that does not decode
// into out, including an empty one, yields an error wrapping errNoBody.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e dto.ErrorResponse
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&e)
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode: %w: %w", op, errNoBody, err)
	}
	return nil
}

func envelopeTodo(op string, env dto.TodoEnvelope) (dom.Todo, error) {
	if env.Todo.ID == "" {
		return dom.Todo{}, fmt.Errorf("%s: %w: missing todo", op, ErrMalformedResponse)
	}
	return fromResponse(env.Todo), nil
}

func fromResponse(r dto.TodoResponse) dom.Todo {
	return dom.Todo{
		ID:          r.ID.String(),
		Title:       r.Title,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
