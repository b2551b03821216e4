package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"shopmart/internal/caching"
	"shopmart/internal/clients"
	"shopmart/internal/handlers"
	"shopmart/internal/middleware"
	"shopmart/internal/repositories"
	"shopmart/internal/services"
	"shopmart/migrations"
	"shopmart/pkg/database"
)

const version = "1.0.0"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.RunMigrations(pool, migrations.FS, "."); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	minioSvc, err := services.NewMinioService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}

	// Create repositories
	productRepo := repositories.NewProductRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)
	orderItemRepo := repositories.NewOrderItemRepo(pool)

	// Create cache service
	redisClient := caching.NewRedisClient(redisAddr, redisPassword, redisDB)
	cacheSvc := caching.NewRedisCacheService(redisClient)

	// Create services
	catalogSvc := services.NewCatalogService(productRepo, cacheSvc)
	orderSvc := services.NewOrderService(orderRepo, orderItemRepo)
	cartSvc := services.NewCartService(cacheSvc)

	// Cart snapshots come from the local catalog unless a remote catalog
	// deployment is configured.
	var productSource handlers.ProductSource = catalogSvc
	if catalogURL := os.Getenv("CATALOG_API_URL"); catalogURL != "" {
		productSource = clients.NewCatalogClient(catalogURL, 10*time.Second)
		log.Printf("Using remote catalog at %s for cart snapshots", catalogURL)
	}

	// Create handlers
	productHandlers := handlers.NewProductHandlers(catalogSvc, minioSvc)
	orderHandlers := handlers.NewOrderHandlers(orderSvc)
	cartHandlers := handlers.NewCartHandlers(cartSvc, productSource)
	healthHandlers := handlers.NewHealthHandlers(pool, redisClient)

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// Catalog routes
	e.GET("/products/categories", productHandlers.GetProductCategories)
	e.GET("/products/:key", productHandlers.GetProductOrListing)
	e.POST("/products", productHandlers.CreateProduct)
	e.PUT("/products/:id", productHandlers.UpdateProduct)
	e.DELETE("/products/:id", productHandlers.DeleteProduct)
	e.POST("/products/:id/image", productHandlers.UploadProductImage)

	// Cart routes (session cookie, no auth required)
	e.GET("/cart", cartHandlers.GetCart)
	e.POST("/cart", cartHandlers.AddToCart)
	e.DELETE("/cart/:productId", cartHandlers.RemoveFromCart)
	e.DELETE("/cart", cartHandlers.ClearCart)

	// Order routes (require JWT)
	orders := e.Group("/orders")
	orders.Use(middleware.JWTMiddleware(jwtSecret))
	orders.POST("", orderHandlers.CreateOrder)
	orders.GET("", orderHandlers.GetOrderDetails)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Shopmart server v%s starting on port %d", version, port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
