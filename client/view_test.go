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

func listResponse(names ...string) ProductList {
	products := make([]Product, len(names))
	for i, n := range names {
		products[i] = Product{ID: n, Name: n, Price: 1}
	}
	return ProductList{Products: products, Page: 1, Pages: 1, Total: len(products)}
}

func TestViewLoadAppliesResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(listResponse("Blue Shirt", "Red Scarf"))
	}))
	defer server.Close()

	view := NewCatalogView(New(server.URL))
	require.NoError(t, view.Load(context.Background()))

	assert.Len(t, view.Products(), 2)
	assert.Equal(t, 1, view.Pages())
	assert.Equal(t, 2, view.Total())
}

func TestViewStaleResponseIsDiscarded(t *testing.T) {
	oldArrived := make(chan struct{})
	release := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("keyword") == "old" {
			close(oldArrived)
			<-release // hold the stale response until the new one landed
			json.NewEncoder(w).Encode(listResponse("STALE"))
			return
		}
		json.NewEncoder(w).Encode(listResponse("FRESH"))
	}))
	defer server.Close()

	view := NewCatalogView(New(server.URL))
	view.UpdateFilters(func(f *Filters) { f.SetKeyword("old") })

	staleDone := make(chan error, 1)
	go func() { staleDone <- view.Load(context.Background()) }()
	<-oldArrived

	// The user changes the filter while the first request is in flight.
	view.UpdateFilters(func(f *Filters) { f.SetKeyword("new") })
	require.NoError(t, view.Load(context.Background()))
	require.Len(t, view.Products(), 1)
	require.Equal(t, "FRESH", view.Products()[0].Name)

	// The stale response resolves afterwards and must not win.
	close(release)
	require.NoError(t, <-staleDone)

	assert.Equal(t, "FRESH", view.Products()[0].Name)
}

func TestViewErrorLeavesStateIntact(t *testing.T) {
	failing := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"message": "Server error"})
			return
		}
		json.NewEncoder(w).Encode(listResponse("Blue Shirt"))
	}))
	defer server.Close()

	view := NewCatalogView(New(server.URL))
	require.NoError(t, view.Load(context.Background()))
	require.Len(t, view.Products(), 1)

	failing = true
	err := view.Load(context.Background())

	require.Error(t, err)
	// No automatic retry, prior UI state stays on screen.
	assert.Len(t, view.Products(), 1)
	assert.Equal(t, "Blue Shirt", view.Products()[0].Name)
}
