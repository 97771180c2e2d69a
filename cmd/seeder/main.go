package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"github.com/edenivgi/bar-stock/internal/config"
	"github.com/edenivgi/bar-stock/internal/database"
)

// SeedItem is one catalog entry of the seed file.
type SeedItem struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Supplier     string   `json:"supplier"`
	Price        float64  `json:"price"`
	Stock        float64  `json:"stock_quantity"`
	MinStock     *float64 `json:"min_stock_level"`
	OptimalStock *float64 `json:"optimal_stock_level"`
	ImageURL     *string  `json:"image_url"`
	Description  *string  `json:"description"`
	Tags         []string `json:"tags"`
}

func main() {
	// Command line flags
	seedFile := flag.String("file", "seed/catalog.json", "JSON catalog file to seed from")
	dryRun := flag.Bool("dry-run", false, "Preview changes without writing to database")
	flag.Parse()

	// Load .env
	godotenv.Load()

	// Load config
	cfg := config.Load()

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations so a fresh database can be seeded directly
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Printf("Reading seed catalog from: %s", *seedFile)
	items, err := loadSeedFile(*seedFile)
	if err != nil {
		log.Fatalf("Failed to load seed file: %v", err)
	}

	log.Printf("Found %d catalog items to seed", len(items))

	if *dryRun {
		log.Println("DRY RUN - No changes will be made")
		printPreview(items, 20)
		return
	}

	inserted, updated, err := seedCatalog(db, items)
	if err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	log.Printf("Seed complete: %d new items, %d updated", inserted, updated)
}

// loadSeedFile reads and validates the JSON catalog file
func loadSeedFile(path string) ([]SeedItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var items []SeedItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	var valid []SeedItem
	for i, item := range items {
		item.Name = strings.TrimSpace(item.Name)
		if item.Name == "" {
			log.Printf("Warning: skipping entry %d: name is empty", i+1)
			continue
		}
		if item.Category == "" {
			item.Category = "wine"
		}
		valid = append(valid, item)
	}
	return valid, nil
}

// seedCatalog upserts the seed items by name in a single transaction.
// Existing items keep their current stock count; only the catalog
// attributes are refreshed.
func seedCatalog(db *database.DB, items []SeedItem) (inserted, updated int, err error) {
	ctx := context.Background()

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, item := range items {
		var existingID int
		err := tx.QueryRow(ctx, `
			SELECT id FROM items WHERE TRIM(name) = $1
		`, item.Name).Scan(&existingID)

		if err == pgx.ErrNoRows {
			_, err = tx.Exec(ctx, `
				INSERT INTO items (name, category, supplier, price, stock_quantity,
					min_stock_level, optimal_stock_level, image_url, description, tags)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			`, item.Name, item.Category, item.Supplier, item.Price, item.Stock,
				item.MinStock, item.OptimalStock, item.ImageURL, item.Description, item.Tags)
			if err != nil {
				return inserted, updated, fmt.Errorf("failed to insert %s: %w", item.Name, err)
			}
			inserted++
		} else if err != nil {
			return inserted, updated, fmt.Errorf("failed to check existing %s: %w", item.Name, err)
		} else {
			_, err = tx.Exec(ctx, `
				UPDATE items SET
					category = $1, supplier = $2, price = $3,
					min_stock_level = $4, optimal_stock_level = $5,
					image_url = $6, description = $7, tags = $8,
					updated_at = NOW()
				WHERE id = $9
			`, item.Category, item.Supplier, item.Price,
				item.MinStock, item.OptimalStock,
				item.ImageURL, item.Description, item.Tags, existingID)
			if err != nil {
				return inserted, updated, fmt.Errorf("failed to update %s: %w", item.Name, err)
			}
			updated++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return inserted, updated, nil
}

// printPreview shows a sample of the items to be seeded
func printPreview(items []SeedItem, limit int) {
	fmt.Println("\n=== Preview of catalog items ===")
	fmt.Printf("Total: %d items\n\n", len(items))

	categoryCount := make(map[string]int)
	for _, item := range items {
		categoryCount[item.Category]++
	}

	fmt.Println("Items per category:")
	for category, count := range categoryCount {
		fmt.Printf("  %s: %d items\n", category, count)
	}

	fmt.Printf("\nSample items (first %d):\n", limit)
	for i, item := range items {
		if i >= limit {
			break
		}
		supplier := item.Supplier
		if supplier == "" {
			supplier = "(no supplier)"
		}
		fmt.Printf("  %s [%s] %.2f - %s\n", item.Name, item.Category, item.Price, supplier)
	}
}
