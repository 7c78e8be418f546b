// Package catalog turns list-request parameters into a filter + sort +
// pagination plan and applies it to a product scan. ScyllaDB has no substring
// or multi-column range predicates, so the handlers scan the products table
// and this package does the rest in memory.
package catalog

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"storefront_back_end/internal/models"
)

const (
	DefaultPage  = 1
	DefaultLimit = 12
	MaxLimit     = 100

	// SortNewest is the fallback for any unrecognized sort token.
	SortNewest    = "createdAt"
	SortPriceAsc  = "price"
	SortPriceDesc = "price_desc"
	SortName      = "name"
	SortRating    = "rating"
)

// QuerySpec is the normalized form of a catalog list request.
type QuerySpec struct {
	Page     int
	Limit    int
	Keyword  string
	Category string
	MinPrice *float64
	MaxPrice *float64
	SortBy   string
	InStock  *bool
}

// Result is the list response contract shared with the client:
// {products, page, pages, total}.
type Result struct {
	Products []models.Product `json:"products"`
	Page     int              `json:"page"`
	Pages    int              `json:"pages"`
	Total    int              `json:"total"`
}

// ParseQuery normalizes raw URL parameters. Absent or non-numeric page/limit
// values fall back to their defaults rather than failing the request.
func ParseQuery(values url.Values) QuerySpec {
	spec := QuerySpec{
		Page:     parsePositiveInt(values.Get("page"), DefaultPage),
		Limit:    parsePositiveInt(values.Get("limit"), DefaultLimit),
		Keyword:  values.Get("keyword"),
		Category: values.Get("category"),
		SortBy:   values.Get("sortBy"),
	}

	if spec.Limit > MaxLimit {
		spec.Limit = DefaultLimit
	}
	if spec.SortBy == "" {
		spec.SortBy = SortNewest
	}

	if raw := values.Get("minPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			spec.MinPrice = &v
		}
	}
	if raw := values.Get("maxPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			spec.MaxPrice = &v
		}
	}
	if raw := values.Get("inStock"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			spec.InStock = &v
		}
	}

	return spec
}

func parsePositiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Apply executes the plan over a full catalog scan: every supplied filter is
// ANDed, the result is sorted, then paginated. A page past the last one
// yields an empty product list, not an error.
func Apply(products []models.Product, spec QuerySpec) Result {
	// A zero-value spec coming from a caller that skipped ParseQuery gets
	// the same defaults the parser applies.
	if spec.Page < 1 {
		spec.Page = DefaultPage
	}
	if spec.Limit < 1 {
		spec.Limit = DefaultLimit
	}

	filtered := filter(products, spec)
	sortProducts(filtered, spec.SortBy)

	total := len(filtered)
	pages := (total + spec.Limit - 1) / spec.Limit
	if pages < 1 {
		pages = 1
	}

	skip := (spec.Page - 1) * spec.Limit
	end := skip + spec.Limit
	if skip > total {
		skip = total
	}
	if end > total {
		end = total
	}

	page := make([]models.Product, 0, end-skip)
	page = append(page, filtered[skip:end]...)

	return Result{
		Products: page,
		Page:     spec.Page,
		Pages:    pages,
		Total:    total,
	}
}

func filter(products []models.Product, spec QuerySpec) []models.Product {
	keyword := strings.ToLower(spec.Keyword)

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		// Keyword matches the name only, by deliberate policy. Description
		// hits belong to the search endpoint, not the catalog filter.
		if keyword != "" && !strings.Contains(strings.ToLower(p.Name), keyword) {
			continue
		}
		if spec.Category != "" && p.Category != spec.Category {
			continue
		}
		if spec.MinPrice != nil && p.Price < *spec.MinPrice {
			continue
		}
		if spec.MaxPrice != nil && p.Price > *spec.MaxPrice {
			continue
		}
		if spec.InStock != nil && *spec.InStock && p.Stock <= 0 {
			continue
		}
		out = append(out, p)
	}
	return out
}

func sortProducts(products []models.Product, sortBy string) {
	switch sortBy {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortName:
		sort.SliceStable(products, func(i, j int) bool {
			return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
		})
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	default:
		// Unknown tokens degrade to newest-first instead of failing.
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	}
}
