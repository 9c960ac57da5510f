// Package client is the Go counterpart of the browser front end: a REST
// client for the catalog API, a session identity cache and the favorites
// reconciliation protocol.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/roteiro/core/internal/domain/entities"
	"github.com/roteiro/core/internal/ports"
)

// Client wraps the REST API, one method per endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiError is the {"error": message} body the server renders on failures.
type apiError struct {
	Error string `json:"error"`
}

// do issues the request and decodes the response into out (when non-nil).
// notFound is the sentinel returned for a 404 on this endpoint.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}, notFound error) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		if resp.StatusCode == http.StatusNotFound && notFound != nil {
			return notFound
		}
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s (status %d)", method, path, apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ListUsers lists users; login narrows to an exact match when non-empty.
func (c *Client) ListUsers(ctx context.Context, login string) ([]*entities.User, error) {
	path := "/usuarios"
	if login != "" {
		path += "?login=" + url.QueryEscape(login)
	}
	var users []*entities.User
	if err := c.do(ctx, http.MethodGet, path, nil, &users, nil); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches a user by id.
func (c *Client) GetUser(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := c.do(ctx, http.MethodGet, "/usuarios/"+url.PathEscape(id), nil, &user, entities.ErrUserNotFound); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a user through the legacy endpoint.
func (c *Client) CreateUser(ctx context.Context, req ports.CreateUserRequest) (*entities.User, error) {
	var user entities.User
	if err := c.do(ctx, http.MethodPost, "/usuarios", req, &user, nil); err != nil {
		return nil, err
	}
	return &user, nil
}

// PatchUser shallow-merges the given fields into the stored user record.
func (c *Client) PatchUser(ctx context.Context, id string, patch ports.UserPatch) (*entities.User, error) {
	var user entities.User
	if err := c.do(ctx, http.MethodPatch, "/usuarios/"+url.PathEscape(id), patch, &user, entities.ErrUserNotFound); err != nil {
		return nil, err
	}
	return &user, nil
}

// ItemQuery narrows catalog listings.
type ItemQuery struct {
	FeaturedOnly bool
	Search       string
}

// ListItems lists catalog items.
func (c *Client) ListItems(ctx context.Context, query ItemQuery) ([]*entities.Item, error) {
	params := url.Values{}
	if query.FeaturedOnly {
		params.Set("destaque", "true")
	}
	if query.Search != "" {
		params.Set("q", query.Search)
	}
	path := "/itens"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var items []*entities.Item
	if err := c.do(ctx, http.MethodGet, path, nil, &items, nil); err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem fetches an item by id.
func (c *Client) GetItem(ctx context.Context, id string) (*entities.Item, error) {
	var item entities.Item
	if err := c.do(ctx, http.MethodGet, "/itens/"+url.PathEscape(id), nil, &item, entities.ErrItemNotFound); err != nil {
		return nil, err
	}
	return &item, nil
}

// GetFavorites fetches the user's favorite item ids.
func (c *Client) GetFavorites(ctx context.Context, userID string) ([]string, error) {
	var favorites []string
	if err := c.do(ctx, http.MethodGet, "/favoritos/"+url.PathEscape(userID), nil, &favorites, entities.ErrUserNotFound); err != nil {
		return nil, err
	}
	return favorites, nil
}

// Register creates an account and returns the token and created record.
func (c *Client) Register(ctx context.Context, req ports.RegisterRequest) (*ports.AuthResponse, error) {
	var resp ports.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp, nil); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login authenticates and returns the token and user record.
func (c *Client) Login(ctx context.Context, login, password string) (*ports.AuthResponse, error) {
	req := ports.LoginRequest{Login: login, Password: password}
	var resp ports.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp, nil); err != nil {
		return nil, err
	}
	return &resp, nil
}
