// Package client provides a Go client for the inventory service REST API.
// It is the programmatic surface behind the invctl command line tool.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the inventory service. The zero value is not usable; use New.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

// WithToken sets a previously issued access token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// New builds a client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the access token currently in use.
func (c *Client) Token() string {
	return c.token
}

// APIError is a failed response from the service.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
}

// Session is the login response.
type Session struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	FullName    string    `json:"full_name"`
	IsAdmin     bool      `json:"is_admin"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// User is the public user representation.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	IsAdmin  bool   `json:"is_admin"`
}

// ItemCode is a catalog entry.
type ItemCode struct {
	ID          int64  `json:"id"`
	Codigo      string `json:"codigo"`
	Tipo        string `json:"tipo"`
	Descripcion string `json:"descripcion"`
}

// Item is the composite inventory item representation.
type Item struct {
	ID               int64     `json:"id"`
	FechaIngreso     time.Time `json:"fecha_ingreso"`
	SN               string    `json:"sn"`
	ItemCodeID       int64     `json:"item_code_id"`
	TipoServicio     string    `json:"tipo_servicio"`
	EstadoActual     string    `json:"estado_actual"`
	AsignadoAID      *int64    `json:"asignado_a_id"`
	TerminalComercio *string   `json:"terminal_comercio"`
	ItemCode         ItemCode  `json:"item_code"`
	AsignadoA        *User     `json:"asignado_a"`
}

// ItemInput is the create/update payload.
type ItemInput struct {
	SN               string  `json:"sn"`
	ItemCodeID       int64   `json:"item_code_id"`
	TipoServicio     string  `json:"tipo_servicio"`
	EstadoActual     string  `json:"estado_actual"`
	AsignadoAID      *int64  `json:"asignado_a_id"`
	TerminalComercio *string `json:"terminal_comercio"`
}

// StatusInput is the status update payload.
type StatusInput struct {
	EstadoActual     string  `json:"estado_actual"`
	TerminalComercio *string `json:"terminal_comercio"`
}

// Login authenticates and stores the issued token for subsequent calls.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	var session Session
	payload := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth", payload, &session); err != nil {
		return nil, err
	}
	c.token = session.AccessToken
	return &session, nil
}

// Logout revokes the current token.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

// CreateUser registers an account (admin only).
func (c *Client) CreateUser(ctx context.Context, username, password, fullName string, isAdmin bool) (*User, error) {
	payload := map[string]any{
		"username":  username,
		"password":  password,
		"full_name": fullName,
		"is_admin":  isAdmin,
	}
	var user User
	if err := c.do(ctx, http.MethodPost, "/users", payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Technicians lists accounts for assignment (admin only).
func (c *Client) Technicians(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/users/technicians", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ItemCodes lists the hardware catalog.
func (c *Client) ItemCodes(ctx context.Context) ([]ItemCode, error) {
	var codes []ItemCode
	if err := c.do(ctx, http.MethodGet, "/item-codes", nil, &codes); err != nil {
		return nil, err
	}
	return codes, nil
}

// CreateItem registers an inventory item.
func (c *Client) CreateItem(ctx context.Context, input ItemInput) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodPost, "/inventory", input, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Items lists every inventory item, newest first.
func (c *Client) Items(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := c.do(ctx, http.MethodGet, "/inventory", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// MyItems lists the items assigned to the caller.
func (c *Client) MyItems(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := c.do(ctx, http.MethodGet, "/inventory/my-items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Item fetches a single inventory item.
func (c *Client) Item(ctx context.Context, id int64) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/inventory/%d", id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem applies a full update.
func (c *Client) UpdateItem(ctx context.Context, id int64, input ItemInput) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/inventory/%d", id), input, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItemStatus moves an item through its lifecycle (assignee only).
func (c *Client) UpdateItemStatus(ctx context.Context, id int64, input StatusInput) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/inventory/%d/status", id), input, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes an item (admin only).
func (c *Client) DeleteItem(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/inventory/%d", id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return parseAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func parseAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error.Message != "" {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
	}
	return apiErr
}
