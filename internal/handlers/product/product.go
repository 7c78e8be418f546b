package product

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"storefront_back_end/internal/apierror"
	"storefront_back_end/internal/cache"
	"storefront_back_end/internal/catalog"
	"storefront_back_end/internal/database"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/services"
)

const productColumns = "product_id, name, description, price, category, brand, stock, images, rating, num_reviews, featured, created_at, updated_at"

// Indirections over the store and object layers; handler tests swap these
// for fakes, everything else goes through them unchanged.
var (
	catalogSession     = database.GetCatalogSession
	fetchProduct       = fetchProductRow
	insertProduct      = insertProductRow
	storeImages        = storeImageFiles
	removeImages       = removeImageObjects
	invalidateProducts = cache.InvalidateProducts
	signImage          = services.GenerateSignedURL
)

// loadCatalog returns the full product scan, served from Redis when warm.
// ScyllaDB has no substring/range predicates across columns, so listing
// filters in memory over this scan (see internal/catalog).
func loadCatalog(ctx context.Context) ([]models.Product, error) {
	if products, ok := cache.GetProductList(ctx); ok {
		return products, nil
	}

	session, err := catalogSession()
	if err != nil {
		return nil, apierror.Wrap(apierror.BackendUnavailable, "catalog store unavailable", err)
	}

	iter := session.Query(`SELECT ` + productColumns + ` FROM products`).Iter()

	var products []models.Product
	var p models.Product

	for iter.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Brand,
		&p.Stock, &p.Images, &p.Rating, &p.NumReviews, &p.Featured, &p.CreatedAt, &p.UpdatedAt) {
		products = append(products, p)
		p = models.Product{} // reset for the next row
	}

	if err := iter.Close(); err != nil {
		return nil, apierror.Wrap(apierror.BackendUnavailable, "catalog scan failed", err)
	}

	cache.SetProductList(ctx, products)
	return products, nil
}

// ListProducts handles GET /api/products with the full filter/sort/paginate
// query spec. Response shape: {products, page, pages, total}.
func ListProducts(c *gin.Context) {
	products, err := loadCatalog(c.Request.Context())
	if err != nil {
		apierror.Respond(c, err)
		return
	}

	spec := catalog.ParseQuery(c.Request.URL.Query())
	c.JSON(http.StatusOK, catalog.Apply(products, spec))
}

// GetFeaturedProducts returns at most 8 featured products, newest first.
func GetFeaturedProducts(c *gin.Context) {
	products, err := loadCatalog(c.Request.Context())
	if err != nil {
		apierror.Respond(c, err)
		return
	}

	featured := make([]models.Product, 0, 8)
	for _, p := range products {
		if p.Featured {
			featured = append(featured, p)
		}
	}

	res := catalog.Apply(featured, catalog.QuerySpec{Page: 1, Limit: 8, SortBy: catalog.SortNewest})
	c.JSON(http.StatusOK, res.Products)
}

// GetProductByID returns a single product or 404.
func GetProductByID(c *gin.Context) {
	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierror.Respond(c, apierror.New(apierror.NotFound, "Product not found"))
		return
	}

	session, err := catalogSession()
	if err != nil {
		apierror.Respond(c, apierror.Wrap(apierror.BackendUnavailable, "catalog store unavailable", err))
		return
	}

	p, err := fetchProduct(session, gocql.UUID(productUUID))
	if err == gocql.ErrNotFound {
		apierror.Respond(c, apierror.New(apierror.NotFound, "Product not found"))
		return
	}
	if err != nil {
		apierror.Respond(c, apierror.Wrap(apierror.BackendUnavailable, "product read failed", err))
		return
	}

	c.JSON(http.StatusOK, p)
}

func fetchProductRow(session *gocql.Session, id gocql.UUID) (models.Product, error) {
	var p models.Product
	err := session.Query(`SELECT `+productColumns+` FROM products WHERE product_id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Brand,
			&p.Stock, &p.Images, &p.Rating, &p.NumReviews, &p.Featured, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// SearchProducts handles GET /api/products/search?q= via Elasticsearch, with
// an in-memory scan fallback when the index is cold or down.
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		apierror.Respond(c, apierror.New(apierror.Validation, "Missing 'q' parameter"))
		return
	}

	// 1. Elasticsearch first.
	if results, err := services.SearchProducts(query); err == nil && len(results) > 0 {
		signProductImages(c.Request.Context(), results)
		c.JSON(http.StatusOK, results)
		return
	}

	// 2. Fallback: substring scan over name, description and brand.
	products, err := loadCatalog(c.Request.Context())
	if err != nil {
		apierror.Respond(c, err)
		return
	}

	queryLower := strings.ToLower(query)
	matches := make([]models.Product, 0)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), queryLower) ||
			strings.Contains(strings.ToLower(p.Description), queryLower) ||
			strings.Contains(strings.ToLower(p.Brand), queryLower) {
			// Both search branches answer with presigned image URLs.
			p.Images = signImagePaths(c.Request.Context(), p.Images)
			matches = append(matches, p)
		}
	}

	c.JSON(http.StatusOK, matches)
}

// signImagePaths swaps stored "/uploads/..." paths for presigned URLs,
// skipping paths the object store cannot sign.
func signImagePaths(ctx context.Context, paths []string) []string {
	signed := []string{}
	for _, path := range paths {
		if path == "" {
			continue
		}
		if signedURL, err := signImage(ctx, path, 24*time.Hour); err == nil {
			signed = append(signed, signedURL)
		}
	}
	return signed
}

func signProductImages(ctx context.Context, results []map[string]interface{}) {
	for i := range results {
		urls, ok := results[i]["images"].([]interface{})
		if !ok {
			continue
		}
		paths := make([]string, 0, len(urls))
		for _, u := range urls {
			if str, ok := u.(string); ok {
				paths = append(paths, str)
			}
		}
		results[i]["images"] = signImagePaths(ctx, paths)
	}
}
