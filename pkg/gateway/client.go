// Package gateway is the HTTP client for the assistant REST API. It does no
// formatting or retry logic; server error bodies pass through verbatim and
// transport failures surface as a typed error the session layer renders.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// APIError is a non-2xx response with the server's own error text.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// TransportError is a network-level failure or an unreadable response body.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type User struct {
	Id       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type Product struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Stock    int     `json:"stock"`
}

type ChatMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// UpdateFields mirrors the partial-update body; nil fields are omitted.
type UpdateFields struct {
	Price    *float64 `json:"price,omitempty"`
	Category *string  `json:"category,omitempty"`
	Stock    *int     `json:"stock,omitempty"`
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken installs the bearer token used on subsequent requests. An empty
// token clears it.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Token() string {
	return c.token
}

func (c *Client) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	var out AuthResult
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/login", body, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	var out AuthResult
	body := map[string]string{"username": username, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/register", body, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/logout", nil, nil)
	c.token = ""
	return err
}

func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var out struct {
		Products []Product `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]Product, error) {
	var out struct {
		Products []Product `json:"products"`
	}
	path := "/api/products/category/" + url.PathEscape(category)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

func (c *Client) SearchProduct(ctx context.Context, name string) ([]Product, error) {
	var out struct {
		Products []Product `json:"products"`
	}
	path := "/api/products/search?name=" + url.QueryEscape(name)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out struct {
		Categories []string `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/products/categories", nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

func (c *Client) AddProduct(ctx context.Context, product Product) error {
	return c.do(ctx, http.MethodPost, "/api/products", product, nil)
}

func (c *Client) UpdateProduct(ctx context.Context, name string, fields UpdateFields) error {
	path := "/api/products/update/" + url.PathEscape(name)
	return c.do(ctx, http.MethodPut, path, fields, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, name string) error {
	path := "/api/products/delete/" + url.PathEscape(name)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// ReduceStock returns the stock level remaining after the reduction.
func (c *Client) ReduceStock(ctx context.Context, name string, amount int) (int, error) {
	var out struct {
		Message string `json:"message"`
		Stock   int    `json:"stock"`
	}
	path := "/api/products/reduce-stock/" + url.PathEscape(name)
	if err := c.do(ctx, http.MethodPut, path, map[string]int{"amount": amount}, &out); err != nil {
		return 0, err
	}
	return out.Stock, nil
}

func (c *Client) SendChatMessage(ctx context.Context, text string) (string, error) {
	var out struct {
		Response string `json:"response"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/chat", map[string]string{"message": text}, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}

func (c *Client) FetchChatHistory(ctx context.Context) ([]ChatMessage, error) {
	var out struct {
		Messages []ChatMessage `json:"messages"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/chat/history", nil, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

func (c *Client) SaveChatHistory(ctx context.Context, messages []ChatMessage) error {
	body := map[string]interface{}{"messages": messages}
	return c.do(ctx, http.MethodPost, "/api/chat/history", body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var serverErr struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(raw, &serverErr); err != nil || serverErr.Error == "" {
			return &APIError{Status: resp.StatusCode, Message: resp.Status}
		}
		return &APIError{Status: resp.StatusCode, Message: serverErr.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &TransportError{Err: err}
	}
	return nil
}
