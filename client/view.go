package client

import (
	"context"
	"sync"
)

// CatalogView holds the product listing state behind the storefront's
// browse screen. Loads carry a generation counter: only the latest in-flight
// request may update the view, so a slow superseded response can never
// overwrite newer state.
type CatalogView struct {
	client *Client

	mu       sync.Mutex
	filters  Filters
	gen      uint64
	products []Product
	page     int
	pages    int
	total    int
}

func NewCatalogView(c *Client) *CatalogView {
	return &CatalogView{
		client:  c,
		filters: NewFilters(),
		pages:   1,
		page:    1,
	}
}

// UpdateFilters mutates the filter state under the view's lock and bumps the
// generation, invalidating responses of loads started before the change.
func (v *CatalogView) UpdateFilters(mutate func(*Filters)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	mutate(&v.filters)
	v.gen++
}

// Filters returns a copy of the current filter state.
func (v *CatalogView) Filters() Filters {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filters
}

// Load fetches the page the current filters describe and applies the result
// unless a newer load or filter change has superseded this one. On error the
// prior view state is left intact.
func (v *CatalogView) Load(ctx context.Context) error {
	v.mu.Lock()
	v.gen++
	gen := v.gen
	filters := v.filters
	v.mu.Unlock()

	list, err := v.client.ListProducts(ctx, filters)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		// A newer request owns the view now; drop this result.
		return nil
	}

	v.products = list.Products
	v.page = list.Page
	v.pages = list.Pages
	v.total = list.Total
	return nil
}

// Products returns the currently displayed page.
func (v *CatalogView) Products() []Product {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]Product, len(v.products))
	copy(out, v.products)
	return out
}

func (v *CatalogView) Page() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.page
}

func (v *CatalogView) Pages() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pages
}

func (v *CatalogView) Total() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.total
}
