package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/edenivgi/bar-stock/internal/config"
	"github.com/edenivgi/bar-stock/internal/database"
	"github.com/edenivgi/bar-stock/internal/handlers"
	"github.com/edenivgi/bar-stock/internal/services"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize the sheet archive when object storage is configured.
	// Without it imports still work, uploaded sheets just aren't kept.
	var archive *services.SheetArchive
	if cfg.S3Enabled {
		if cfg.S3AccessKey == "" || cfg.S3SecretKey == "" {
			log.Println("S3 credentials not configured, sheet archiving disabled")
		} else {
			archive, err = services.NewSheetArchive(
				cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey,
				cfg.S3Bucket, cfg.S3Region, cfg.S3UseSSL,
			)
			if err != nil {
				log.Printf("Warning: Failed to initialize sheet archive: %v", err)
				archive = nil
			} else if err := archive.EnsureBucket(context.Background()); err != nil {
				log.Printf("Warning: Failed to ensure S3 bucket exists: %v", err)
			} else {
				log.Println("Sheet archive initialized")
			}
		}
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Create handler with dependencies
	h := handlers.New(db, cfg, archive)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// API routes
	api := app.Group("/api")

	// Catalog items
	items := api.Group("/items")
	items.Get("/", h.ListItems)
	items.Get("/stats", h.GetItemStats)
	items.Get("/:id", h.GetItem)
	items.Post("/", h.CreateItem)
	items.Put("/:id", h.UpdateItem)
	items.Put("/:id/stock", h.UpdateItemStock)
	items.Delete("/:id", h.DeleteItem)

	// Catalog facets
	api.Get("/suppliers", h.ListSuppliers)
	api.Get("/categories", h.ListCategories)

	// Count sheet imports
	imports := api.Group("/imports")
	imports.Post("/preview", h.PreviewImport)
	imports.Post("/apply", h.ApplyImport)
	imports.Get("/", h.ListImports)
	imports.Get("/:id/sheet", h.GetImportSheet)

	// Reorder calculation
	api.Get("/reorder", h.GetReorderPreview)
	api.Post("/reorder/orders", h.CreateReorderOrders)

	// Stock orders
	orders := api.Group("/orders")
	orders.Get("/", h.ListOrders)
	orders.Get("/active", h.GetActiveOrders)
	orders.Get("/:id", h.GetOrder)
	orders.Put("/:id/status", h.UpdateOrderStatus)
	orders.Delete("/:id", h.DeleteOrder)

	// Shopping cart
	cart := api.Group("/cart")
	cart.Get("/", h.GetCart)
	cart.Post("/items", h.AddToCart)
	cart.Put("/items/:itemId", h.UpdateCartLine)
	cart.Delete("/items/:itemId", h.RemoveFromCart)
	cart.Delete("/", h.ClearCart)
	cart.Post("/checkout", h.CheckoutCart)

	// Bar book
	barbook := api.Group("/barbook")
	barbook.Get("/", h.GetBarBook)
	barbook.Put("/", h.SaveBarBook)
	barbook.Delete("/", h.ClearBarBook)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
