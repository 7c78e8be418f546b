package routes

import (
	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/handlers/product"
	"storefront_back_end/internal/handlers/user"
	"storefront_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// Catalog
	products := api.Group("/products")
	products.GET("", product.ListProducts)
	products.GET("/featured", product.GetFeaturedProducts)
	products.GET("/search", product.SearchProducts)
	products.GET("/:id", product.GetProductByID)

	admin := products.Group("", middleware.AuthRequired(), middleware.RequireAdmin)
	admin.POST("", product.CreateProduct)
	admin.PUT("/:id", product.UpdateProduct)
	admin.DELETE("/:id", product.DeleteProduct)

	// Auth
	auth := api.Group("/auth")
	auth.POST("/register", user.Register)
	auth.POST("/login", middleware.LoginRateLimit(), user.Login)
	auth.GET("/profile", middleware.AuthRequired(), user.Profile)
}
