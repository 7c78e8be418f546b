package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/config"
	"storefront_back_end/internal/database"
	"storefront_back_end/internal/routes"
)

func main() {
	config.Load()

	database.ConnectDatabases()

	// Warm the Redis connection so the first request doesn't pay for it.
	warmupRedisCache()

	r := gin.Default()
	r.Use(cors.Default())
	routes.RegisterRoutes(r)

	port := config.Getenv("PORT", "8080")
	log.Println("🚀 Storefront server listening on port", port)
	r.Run(":" + port)
}

func warmupRedisCache() {
	ctx := context.Background()
	if err := database.Redis.Ping(ctx).Err(); err == nil {
		log.Println("✅ Redis cache warmed up")
	}
}
