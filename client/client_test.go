package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProductsSendsFilterParams(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		got = map[string]string{
			"page":     q.Get("page"),
			"limit":    q.Get("limit"),
			"category": q.Get("category"),
			"keyword":  q.Get("keyword"),
			"sortBy":   q.Get("sortBy"),
		}
		json.NewEncoder(w).Encode(listResponse())
	}))
	defer server.Close()

	f := NewFilters()
	f.SetCategory("Books")
	f.SetKeyword("go")
	f.SetSortBy("price")
	f.SetPage(2)

	_, err := New(server.URL).ListProducts(context.Background(), f)

	require.NoError(t, err)
	assert.Equal(t, "2", got["page"])
	assert.Equal(t, "12", got["limit"])
	assert.Equal(t, "Books", got["category"])
	assert.Equal(t, "go", got["keyword"])
	assert.Equal(t, "price", got["sortBy"])
}

func TestListProductsToleratesPartialResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Neither products nor pages present.
		w.Write([]byte(`{"total": 0}`))
	}))
	defer server.Close()

	list, err := New(server.URL).ListProducts(context.Background(), NewFilters())

	require.NoError(t, err)
	assert.NotNil(t, list.Products)
	assert.Empty(t, list.Products)
	assert.Equal(t, 1, list.Pages)
	assert.Equal(t, 1, list.Page)
}

func TestErrorResponsesCarryServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Product not found"})
	}))
	defer server.Close()

	_, err := New(server.URL).GetProduct(context.Background(), "missing")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Product not found", apiErr.Message)
}

func TestLoginInstallsBearerToken(t *testing.T) {
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			json.NewEncoder(w).Encode(Session{Token: "jwt-token", Email: "a@b.c", Role: "customer"})
		case "/api/auth/profile":
			authHeader = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(map[string]string{"email": "a@b.c"})
		}
	}))
	defer server.Close()

	c := New(server.URL)
	session, err := c.Login(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", session.Token)

	_, err = c.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer jwt-token", authHeader)
}

func TestDeleteProduct(t *testing.T) {
	var method, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		json.NewEncoder(w).Encode(map[string]string{"message": "Product deleted successfully"})
	}))
	defer server.Close()

	err := New(server.URL).DeleteProduct(context.Background(), "abc-123")

	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/api/products/abc-123", path)
}
