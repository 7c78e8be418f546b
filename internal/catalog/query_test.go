package catalog

import (
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_back_end/internal/models"
)

func makeProduct(name, category string, price float64, stock int) models.Product {
	return models.Product{
		ID:        gocql.TimeUUID(),
		Name:      name,
		Category:  category,
		Price:     price,
		Stock:     stock,
		CreatedAt: time.Now(),
	}
}

func TestParseQueryDefaults(t *testing.T) {
	spec := ParseQuery(url.Values{})

	assert.Equal(t, DefaultPage, spec.Page)
	assert.Equal(t, DefaultLimit, spec.Limit)
	assert.Equal(t, SortNewest, spec.SortBy)
	assert.Nil(t, spec.MinPrice)
	assert.Nil(t, spec.MaxPrice)
	assert.Nil(t, spec.InStock)
}

func TestParseQueryCoercion(t *testing.T) {
	cases := []struct {
		name      string
		values    url.Values
		wantPage  int
		wantLimit int
	}{
		{"non numeric", url.Values{"page": {"abc"}, "limit": {"xyz"}}, 1, 12},
		{"zero", url.Values{"page": {"0"}, "limit": {"0"}}, 1, 12},
		{"negative", url.Values{"page": {"-3"}, "limit": {"-1"}}, 1, 12},
		{"over cap", url.Values{"limit": {"500"}}, 1, 12},
		{"valid", url.Values{"page": {"3"}, "limit": {"24"}}, 3, 24},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := ParseQuery(tc.values)
			assert.Equal(t, tc.wantPage, spec.Page)
			assert.Equal(t, tc.wantLimit, spec.Limit)
		})
	}
}

func TestParseQueryFilters(t *testing.T) {
	spec := ParseQuery(url.Values{
		"keyword":  {"shirt"},
		"category": {"Clothing"},
		"minPrice": {"10"},
		"maxPrice": {"50.5"},
		"sortBy":   {"price"},
		"inStock":  {"true"},
	})

	assert.Equal(t, "shirt", spec.Keyword)
	assert.Equal(t, "Clothing", spec.Category)
	require.NotNil(t, spec.MinPrice)
	assert.Equal(t, 10.0, *spec.MinPrice)
	require.NotNil(t, spec.MaxPrice)
	assert.Equal(t, 50.5, *spec.MaxPrice)
	assert.Equal(t, SortPriceAsc, spec.SortBy)
	require.NotNil(t, spec.InStock)
	assert.True(t, *spec.InStock)
}

func TestParseQueryIgnoresMalformedBounds(t *testing.T) {
	spec := ParseQuery(url.Values{
		"minPrice": {"cheap"},
		"maxPrice": {""},
		"inStock":  {"maybe"},
	})

	assert.Nil(t, spec.MinPrice)
	assert.Nil(t, spec.MaxPrice)
	assert.Nil(t, spec.InStock)
}

func TestApplyKeywordIsCaseInsensitiveNameOnly(t *testing.T) {
	products := []models.Product{
		makeProduct("Blue Shirt", "Clothing", 20, 5),
		makeProduct("Red Scarf", "Clothing", 15, 5),
	}
	products[1].Description = "goes well with any shirt"

	res := Apply(products, QuerySpec{Page: 1, Limit: 12, Keyword: "shirt"})

	require.Len(t, res.Products, 1)
	assert.Equal(t, "Blue Shirt", res.Products[0].Name)
}

func TestApplyCategoryIsExact(t *testing.T) {
	products := []models.Product{
		makeProduct("Phone", "Electronics", 300, 2),
		makeProduct("Gadget", "Electronics & Gadgets", 10, 2),
	}

	res := Apply(products, QuerySpec{Page: 1, Limit: 12, Category: "Electronics"})

	require.Len(t, res.Products, 1)
	assert.Equal(t, "Phone", res.Products[0].Name)
}

func TestApplyFiltersAreANDed(t *testing.T) {
	inStock := true
	min, max := 10.0, 30.0
	products := []models.Product{
		makeProduct("Blue Shirt", "Clothing", 20, 3),
		makeProduct("Blue Shirt Deluxe", "Clothing", 80, 3), // price out of range
		makeProduct("Blue Shirt Basic", "Clothing", 15, 0),  // out of stock
		makeProduct("Blue Mug", "Home & Garden", 12, 9),     // wrong category
	}

	res := Apply(products, QuerySpec{
		Page: 1, Limit: 12,
		Keyword:  "blue",
		Category: "Clothing",
		MinPrice: &min,
		MaxPrice: &max,
		InStock:  &inStock,
	})

	require.Len(t, res.Products, 1)
	assert.Equal(t, "Blue Shirt", res.Products[0].Name)
}

func TestApplyPagination(t *testing.T) {
	var products []models.Product
	for i := 0; i < 25; i++ {
		products = append(products, makeProduct(fmt.Sprintf("Book %02d", i), "Books", float64(i+1), 1))
	}

	res := Apply(products, QuerySpec{Page: 2, Limit: 12, SortBy: SortPriceAsc})

	assert.Equal(t, 25, res.Total)
	assert.Equal(t, 3, res.Pages)
	assert.Equal(t, 2, res.Page)
	require.Len(t, res.Products, 12)
	// Items 13..24 by ascending price.
	assert.Equal(t, 13.0, res.Products[0].Price)
	assert.Equal(t, 24.0, res.Products[11].Price)
}

func TestApplyCatalogScenario(t *testing.T) {
	// page=2&limit=12&category=Books&sortBy=price over 25 Books plus noise.
	var products []models.Product
	for i := 0; i < 25; i++ {
		products = append(products, makeProduct(fmt.Sprintf("Book %02d", i), "Books", float64(i+1), 1))
	}
	products = append(products, makeProduct("Camera", "Electronics", 5, 1))

	res := Apply(products, QuerySpec{Page: 2, Limit: 12, Category: "Books", SortBy: SortPriceAsc})

	assert.Equal(t, 25, res.Total)
	assert.Equal(t, 3, res.Pages)
	require.Len(t, res.Products, 12)
	for i, p := range res.Products {
		assert.Equal(t, float64(13+i), p.Price)
		assert.Equal(t, "Books", p.Category)
	}
}

func TestApplyPagePastEndIsEmptyNotError(t *testing.T) {
	products := []models.Product{
		makeProduct("Lone Item", "Books", 5, 1),
	}

	res := Apply(products, QuerySpec{Page: 9, Limit: 12})

	assert.Empty(t, res.Products)
	assert.Equal(t, 1, res.Pages)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 9, res.Page)
}

func TestApplyEmptyCatalog(t *testing.T) {
	res := Apply(nil, QuerySpec{Page: 1, Limit: 12})

	assert.NotNil(t, res.Products)
	assert.Empty(t, res.Products)
	assert.Equal(t, 1, res.Pages)
	assert.Equal(t, 0, res.Total)
}

func TestApplySortTokens(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	a := makeProduct("alpha", "Books", 30, 1)
	b := makeProduct("Bravo", "Books", 10, 1)
	c := makeProduct("charlie", "Books", 20, 1)
	a.CreatedAt, a.Rating = base, 1
	b.CreatedAt, b.Rating = base.Add(time.Hour), 5
	c.CreatedAt, c.Rating = base.Add(2*time.Hour), 3
	products := []models.Product{a, b, c}

	cases := []struct {
		sortBy string
		want   []string
	}{
		{SortPriceAsc, []string{"Bravo", "charlie", "alpha"}},
		{SortPriceDesc, []string{"alpha", "charlie", "Bravo"}},
		{SortName, []string{"alpha", "Bravo", "charlie"}},
		{SortRating, []string{"Bravo", "charlie", "alpha"}},
		{SortNewest, []string{"charlie", "Bravo", "alpha"}},
		{"garbage-token", []string{"charlie", "Bravo", "alpha"}},
	}

	for _, tc := range cases {
		t.Run(tc.sortBy, func(t *testing.T) {
			res := Apply(products, QuerySpec{Page: 1, Limit: 12, SortBy: tc.sortBy})
			var got []string
			for _, p := range res.Products {
				got = append(got, p.Name)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestApplyReturnsAtMostLimit(t *testing.T) {
	var products []models.Product
	for i := 0; i < 40; i++ {
		products = append(products, makeProduct(fmt.Sprintf("P%d", i), "Toys", 1, 1))
	}

	for page := 1; page <= 5; page++ {
		res := Apply(products, QuerySpec{Page: page, Limit: 12})
		assert.LessOrEqual(t, len(res.Products), 12)
	}
}

func TestApplyZeroValueSpec(t *testing.T) {
	var products []models.Product
	for i := 0; i < 20; i++ {
		products = append(products, makeProduct(fmt.Sprintf("P%d", i), "Toys", 1, 1))
	}

	res := Apply(products, QuerySpec{})

	assert.Equal(t, DefaultPage, res.Page)
	assert.Len(t, res.Products, DefaultLimit)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, 20, res.Total)
}
