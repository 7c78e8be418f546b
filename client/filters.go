package client

import (
	"net/url"
	"strconv"
)

const (
	// PageSize matches the server's default list limit.
	PageSize = 12

	// DefaultSort is newest-first, the server's fallback token.
	DefaultSort = "createdAt"
)

// Filters is the catalog filter state the UI holds. It stays bidirectionally
// consistent with URL query parameters so a shared or reloaded URL reproduces
// the same result set. Fields are unexported: every mutation goes through a
// setter, and every setter except SetPage resets the page to 1, because
// changing a filter invalidates the old page's meaning.
type Filters struct {
	category string
	keyword  string
	minPrice string
	maxPrice string
	sortBy   string
	inStock  bool
	page     int
}

func NewFilters() Filters {
	return Filters{sortBy: DefaultSort, page: 1}
}

func (f *Filters) Category() string { return f.category }
func (f *Filters) Keyword() string  { return f.keyword }
func (f *Filters) MinPrice() string { return f.minPrice }
func (f *Filters) MaxPrice() string { return f.maxPrice }
func (f *Filters) SortBy() string   { return f.sortBy }
func (f *Filters) InStock() bool    { return f.inStock }
func (f *Filters) Page() int        { return f.page }

func (f *Filters) SetCategory(category string) {
	f.category = category
	f.page = 1
}

func (f *Filters) SetKeyword(keyword string) {
	f.keyword = keyword
	f.page = 1
}

func (f *Filters) SetPriceRange(minPrice, maxPrice string) {
	f.minPrice = minPrice
	f.maxPrice = maxPrice
	f.page = 1
}

func (f *Filters) SetSortBy(sortBy string) {
	if sortBy == "" {
		sortBy = DefaultSort
	}
	f.sortBy = sortBy
	f.page = 1
}

func (f *Filters) SetInStock(inStock bool) {
	f.inStock = inStock
	f.page = 1
}

// SetPage changes only the page; other filters are untouched.
func (f *Filters) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	f.page = page
}

// Reset returns every field to its default, dropping all URL parameters.
func (f *Filters) Reset() {
	*f = NewFilters()
}

// Values emits only non-default fields, so a clean filter state maps to a
// clean URL.
func (f Filters) Values() url.Values {
	values := url.Values{}
	if f.category != "" {
		values.Set("category", f.category)
	}
	if f.keyword != "" {
		values.Set("keyword", f.keyword)
	}
	if f.minPrice != "" {
		values.Set("minPrice", f.minPrice)
	}
	if f.maxPrice != "" {
		values.Set("maxPrice", f.maxPrice)
	}
	if f.sortBy != "" && f.sortBy != DefaultSort {
		values.Set("sortBy", f.sortBy)
	}
	if f.inStock {
		values.Set("inStock", "true")
	}
	if f.page > 1 {
		values.Set("page", strconv.Itoa(f.page))
	}
	return values
}

// ParseFilters rebuilds the state a shared URL encodes. Unknown or malformed
// values fall back to defaults.
func ParseFilters(values url.Values) Filters {
	f := NewFilters()
	f.category = values.Get("category")
	f.keyword = values.Get("keyword")
	f.minPrice = values.Get("minPrice")
	f.maxPrice = values.Get("maxPrice")

	if s := values.Get("sortBy"); s != "" {
		f.sortBy = s
	}
	if values.Get("inStock") == "true" {
		f.inStock = true
	}
	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 1 {
		f.page = page
	}
	return f
}
