// Package client is a typed Go client for the blog API. It mirrors the HTTP
// contract one-to-one: opaque bearer tokens, paginated post listings, and the
// message/errors failure envelope.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// User is the account record as returned by the API. The password hash is
// never part of the payload.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Author is the minimal user view embedded in posts.
type Author struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Post struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Author    *Author   `json:"user,omitempty"`
}

// PostPage is one page of the public feed.
type PostPage struct {
	Data        []Post `json:"data"`
	CurrentPage int    `json:"current_page"`
	LastPage    int    `json:"last_page"`
	PerPage     int    `json:"per_page"`
	Total       int64  `json:"total"`
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// PostForm carries the fields for creating a post.
type PostForm struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

// PostPatch is a partial update; nil fields are omitted from the request.
type PostPatch struct {
	Title     *string `json:"title,omitempty"`
	Content   *string `json:"content,omitempty"`
	Published *bool   `json:"published,omitempty"`
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Message string `json:"message"`
	User    User   `json:"user"`
	Token   string `json:"token"`
}

// APIError is a structured failure response from the server.
type APIError struct {
	StatusCode int
	Message    string
	// Errors maps field name to messages on validation failures (422).
	Errors map[string][]string
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	return fmt.Sprintf("api error %d: %s (fields: %s)", e.StatusCode, e.Message, strings.Join(fields, ", "))
}

// IsUnauthenticated reports whether the server rejected the credential.
func (e *APIError) IsUnauthenticated() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// TransportError wraps network-level failures: the request never produced a
// structured server response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "transport error: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client issues typed requests against a blog API base URL. Methods taking a
// token attach it as a bearer credential; pass "" for public endpoints.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// Option customizes client construction.
type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client, e.g. to set a timeout.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		if httpc != nil {
			c.httpc = httpc
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/register", "", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/login", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/logout", token, nil, nil)
}

func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/me", token, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// ListPosts fetches one page of the public feed. Pages are 1-based; 0 means
// the first page.
func (c *Client) ListPosts(ctx context.Context, page int) (*PostPage, error) {
	path := "/posts"
	if page > 0 {
		path += "?page=" + strconv.Itoa(page)
	}
	var out PostPage
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetPost(ctx context.Context, id int64) (*Post, error) {
	var out Post
	if err := c.do(ctx, http.MethodGet, "/posts/"+strconv.FormatInt(id, 10), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePost(ctx context.Context, token string, form PostForm) (*Post, error) {
	var out struct {
		Post Post `json:"post"`
	}
	if err := c.do(ctx, http.MethodPost, "/posts", token, form, &out); err != nil {
		return nil, err
	}
	return &out.Post, nil
}

func (c *Client) UpdatePost(ctx context.Context, token string, id int64, patch PostPatch) (*Post, error) {
	var out struct {
		Post Post `json:"post"`
	}
	if err := c.do(ctx, http.MethodPut, "/posts/"+strconv.FormatInt(id, 10), token, patch, &out); err != nil {
		return nil, err
	}
	return &out.Post, nil
}

func (c *Client) DeletePost(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+strconv.FormatInt(id, 10), token, nil, nil)
}

// do performs one request/response cycle. Non-2xx responses become *APIError;
// failures before a response arrives become *TransportError.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope struct {
			Message string              `json:"message"`
			Errors  map[string][]string `json:"errors"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr == nil {
			apiErr.Message = envelope.Message
			apiErr.Errors = envelope.Errors
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
