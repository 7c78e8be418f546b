// Package client is a Go consumer of the storefront API. Credentials live on
// an explicit Client value passed to every call site; there is no ambient
// global session state.
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
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Product mirrors the API's product JSON.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Brand       string    `json:"brand"`
	Stock       int       `json:"stock"`
	Images      []string  `json:"images"`
	Rating      float64   `json:"rating"`
	NumReviews  int       `json:"numReviews"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProductList is the {products, page, pages, total} list contract.
type ProductList struct {
	Products []Product `json:"products"`
	Page     int       `json:"page"`
	Pages    int       `json:"pages"`
	Total    int       `json:"total"`
}

// Session is the authenticated identity returned by login/register.
type Session struct {
	Token string `json:"token"`
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// APIError is any non-success response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	token      string
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken installs the bearer credential on this client only.
func (c *Client) SetToken(token string) { c.token = token }

// ListProducts fetches a catalog page for the given filter state. A
// malformed or partial response degrades to an empty list and a single page
// instead of failing.
func (c *Client) ListProducts(ctx context.Context, f Filters) (*ProductList, error) {
	params := f.Values()
	params.Set("page", fmt.Sprint(f.Page()))
	params.Set("limit", fmt.Sprint(PageSize))

	var list ProductList
	if err := c.getJSON(ctx, "/api/products?"+params.Encode(), &list); err != nil {
		return nil, err
	}

	if list.Products == nil {
		list.Products = []Product{}
	}
	if list.Pages < 1 {
		list.Pages = 1
	}
	if list.Page < 1 {
		list.Page = 1
	}
	return &list, nil
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	var p Product
	if err := c.getJSON(ctx, "/api/products/"+url.PathEscape(id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// FeaturedProducts fetches the promotional subset (at most 8).
func (c *Client) FeaturedProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.getJSON(ctx, "/api/products/featured", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Login exchanges credentials for a session and installs its token.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	return c.authenticate(ctx, "/api/auth/login", email, password, "")
}

// Register creates an account and installs its token.
func (c *Client) Register(ctx context.Context, name, email, password string) (*Session, error) {
	return c.authenticate(ctx, "/api/auth/register", email, password, name)
}

func (c *Client) authenticate(ctx context.Context, path, email, password, name string) (*Session, error) {
	payload := map[string]string{"email": email, "password": password}
	if name != "" {
		payload["name"] = name
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var session Session
	if err := c.do(req, &session); err != nil {
		return nil, err
	}

	c.token = session.Token
	return &session, nil
}

// Profile fetches the authenticated user.
func (c *Client) Profile(ctx context.Context) (map[string]interface{}, error) {
	var profile map[string]interface{}
	if err := c.getJSON(ctx, "/api/auth/profile", &profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ProductInput holds the writable product fields for create/update. Nil
// fields are omitted from the request, which the server treats as "keep the
// stored value" on update.
type ProductInput struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	Brand       *string
	Stock       *int
	Featured    *bool
	// ImagePaths are local files to upload; when present on update the
	// server replaces the image list wholesale.
	ImagePaths []string
}

// CreateProduct creates a product (admin token required).
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	return c.submitProduct(ctx, http.MethodPost, "/api/products", input)
}

// UpdateProduct partially updates a product (admin token required).
func (c *Client) UpdateProduct(ctx context.Context, id string, input ProductInput) (*Product, error) {
	return c.submitProduct(ctx, http.MethodPut, "/api/products/"+url.PathEscape(id), input)
}

// DeleteProduct permanently deletes a product (admin token required).
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.BaseURL+"/api/products/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *Client) submitProduct(ctx context.Context, method, path string, input ProductInput) (*Product, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	writeField := func(key string, value interface{}) {
		w.WriteField(key, fmt.Sprint(value))
	}
	if input.Name != nil {
		writeField("name", *input.Name)
	}
	if input.Description != nil {
		writeField("description", *input.Description)
	}
	if input.Price != nil {
		writeField("price", *input.Price)
	}
	if input.Category != nil {
		writeField("category", *input.Category)
	}
	if input.Brand != nil {
		writeField("brand", *input.Brand)
	}
	if input.Stock != nil {
		writeField("stock", *input.Stock)
	}
	if input.Featured != nil {
		writeField("featured", *input.Featured)
	}

	for _, imagePath := range input.ImagePaths {
		if err := attachImage(w, imagePath); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var p Product
	if err := c.do(req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func attachImage(w *multipart.Writer, imagePath string) error {
	file, err := os.Open(imagePath)
	if err != nil {
		return err
	}
	defer file.Close()

	part, err := w.CreateFormFile("images", filepath.Base(imagePath))
	if err != nil {
		return err
	}
	_, err = io.Copy(part, file)
	return err
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{Status: res.StatusCode, Message: "request failed"}
		var payload struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
			apiErr.Message = payload.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		// Tolerate malformed success bodies: the caller sees zero values
		// and applies its own defaults, prior state stays intact.
		return nil
	}
	return nil
}
