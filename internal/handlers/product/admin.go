package product

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"storefront_back_end/internal/apierror"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/services"
)

// CreateProduct handles POST /api/products (admin): multipart fields plus up
// to 5 image files. Every input is validated before the first write.
func CreateProduct(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		apierror.Respond(c, apierror.New(apierror.Validation, "Invalid multipart form"))
		return
	}

	p := models.Product{
		Name:        formValue(form.Value, "name"),
		Description: formValue(form.Value, "description"),
		Category:    formValue(form.Value, "category"),
		Brand:       formValue(form.Value, "brand"),
	}

	if p.Name == "" || p.Description == "" || p.Category == "" || formValue(form.Value, "price") == "" {
		apierror.Respond(c, apierror.New(apierror.Validation, "name, description, price and category are required"))
		return
	}
	if !models.IsValidCategory(p.Category) {
		apierror.Respond(c, apierror.New(apierror.Validation, "Unknown category"))
		return
	}

	p.Price, err = parseNonNegativeFloat(formValue(form.Value, "price"))
	if err != nil {
		apierror.Respond(c, apierror.New(apierror.Validation, "price must be a non-negative number"))
		return
	}
	if raw := formValue(form.Value, "stock"); raw != "" {
		p.Stock, err = parseNonNegativeInt(raw)
		if err != nil {
			apierror.Respond(c, apierror.New(apierror.Validation, "stock must be a non-negative integer"))
			return
		}
	}
	if raw := formValue(form.Value, "featured"); raw != "" {
		p.Featured, _ = strconv.ParseBool(raw)
	}

	files := form.File["images"]
	if err := ValidateImageFiles(files); err != nil {
		apierror.Respond(c, err)
		return
	}

	ctx := c.Request.Context()
	p.Images, err = storeImages(ctx, files)
	if err != nil {
		apierror.Respond(c, err)
		return
	}

	p.ID = gocql.TimeUUID()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt

	session, err := catalogSession()
	if err != nil {
		apierror.Respond(c, apierror.Wrap(apierror.BackendUnavailable, "catalog store unavailable", err))
		return
	}

	if err := insertProduct(session, p); err != nil {
		apierror.Respond(c, apierror.Wrap(apierror.BackendUnavailable, "product creation failed", err))
		return
	}

	invalidateProducts(ctx)
	go services.IndexProduct(p)

	c.JSON(http.StatusCreated, p)
}

// UpdateProduct handles PUT /api/products/:id (admin): partial merge of
// submitted fields; the image list is replaced wholesale only when new files
// are uploaded.
func UpdateProduct(c *gin.Context) {
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

	form, err := c.MultipartForm()
	if err != nil {
		apierror.Respond(c, apierror.New(apierror.Validation, "Invalid multipart form"))
		return
	}

	if err := mergeProductFields(&p, form.Value); err != nil {
		apierror.Respond(c, err)
		return
	}

	ctx := c.Request.Context()
	files := form.File["images"]
	var replacedImages []string
	if len(files) > 0 {
		if err := ValidateImageFiles(files); err != nil {
			apierror.Respond(c, err)
			return
		}

		newImages, err := storeImages(ctx, files)
		if err != nil {
			apierror.Respond(c, err)
			return
		}

		// Wholesale replacement, never a merge. The old objects stay in
		// storage until the row is written, so a failed write cannot leave
		// the stored record pointing at deleted images.
		replacedImages = p.Images
		p.Images = newImages
	}

	p.UpdatedAt = time.Now()

	if err := insertProduct(session, p); err != nil {
		apierror.Respond(c, apierror.Wrap(apierror.BackendUnavailable, "product update failed", err))
		return
	}

	if len(replacedImages) > 0 {
		go removeImages(replacedImages)
	}

	invalidateProducts(ctx)
	go services.IndexProduct(p)

	c.JSON(http.StatusOK, p)
}

// mergeProductFields applies submitted form fields onto p; fields absent
// from the request keep their stored values. Image handling stays with the
// caller.
func mergeProductFields(p *models.Product, values map[string][]string) error {
	if v, ok := formPresent(values, "name"); ok {
		p.Name = v
	}
	if v, ok := formPresent(values, "description"); ok {
		p.Description = v
	}
	if v, ok := formPresent(values, "brand"); ok {
		p.Brand = v
	}
	if v, ok := formPresent(values, "category"); ok {
		if !models.IsValidCategory(v) {
			return apierror.New(apierror.Validation, "Unknown category")
		}
		p.Category = v
	}
	if v, ok := formPresent(values, "price"); ok {
		price, err := parseNonNegativeFloat(v)
		if err != nil {
			return apierror.New(apierror.Validation, "price must be a non-negative number")
		}
		p.Price = price
	}
	if v, ok := formPresent(values, "stock"); ok {
		stock, err := parseNonNegativeInt(v)
		if err != nil {
			return apierror.New(apierror.Validation, "stock must be a non-negative integer")
		}
		p.Stock = stock
	}
	if v, ok := formPresent(values, "featured"); ok {
		p.Featured, _ = strconv.ParseBool(v)
	}
	return nil
}

// DeleteProduct handles DELETE /api/products/:id (admin). Permanent, no
// soft delete, no cascade.
func DeleteProduct(c *gin.Context) {
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

	if err := session.Query(`DELETE FROM products WHERE product_id = ?`, p.ID).Exec(); err != nil {
		apierror.Respond(c, apierror.Wrap(apierror.BackendUnavailable, "product deletion failed", err))
		return
	}

	invalidateProducts(c.Request.Context())
	go services.DeindexProduct(p.ID.String())
	go removeImages(p.Images)

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// insertProductRow writes the full row; with a fixed column set an upsert
// covers both create and the merged update.
func insertProductRow(session *gocql.Session, p models.Product) error {
	query := `INSERT INTO products (` + productColumns + `)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return session.Query(query, p.ID, p.Name, p.Description, p.Price, p.Category, p.Brand,
		p.Stock, p.Images, p.Rating, p.NumReviews, p.Featured, p.CreatedAt, p.UpdatedAt).Exec()
}

func removeImageObjects(paths []string) {
	ctx := context.Background()
	for _, path := range paths {
		if err := services.RemoveObject(ctx, path); err != nil {
			log.Println("⚠️ Stored image removal failed:", path, err)
		}
	}
}

func formValue(values map[string][]string, key string) string {
	if v, ok := values[key]; ok && len(v) > 0 {
		return v[0]
	}
	return ""
}

func formPresent(values map[string][]string, key string) (string, bool) {
	v, ok := values[key]
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[0], true
}

func parseNonNegativeFloat(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0, apierror.New(apierror.Validation, "invalid number")
	}
	return v, nil
}

func parseNonNegativeInt(raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, apierror.New(apierror.Validation, "invalid integer")
	}
	return v, nil
}
