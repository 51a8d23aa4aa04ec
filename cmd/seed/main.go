package main

import (
	"log"
	"os"
	"time"

	"sales-assistant-be/internal/model"
	"sales-assistant-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type seedProduct struct {
	Name     string
	Price    float64
	Category string
	Stock    int
}

var products = []seedProduct{
	{Name: "iPhone 13", Price: 799.99, Category: "Electronics", Stock: 50},
	{Name: "Samsung Galaxy S21", Price: 699.99, Category: "Electronics", Stock: 45},
	{Name: "MacBook Pro", Price: 1299.99, Category: "Electronics", Stock: 30},
	{Name: "Nike Air Max", Price: 129.99, Category: "Footwear", Stock: 100},
	{Name: "Adidas T-Shirt", Price: 29.99, Category: "Clothing", Stock: 200},
	{Name: "Sony Headphones", Price: 199.99, Category: "Electronics", Stock: 75},
	{Name: "Levi's Jeans", Price: 59.99, Category: "Clothing", Stock: 150},
	{Name: "Canon Camera", Price: 899.99, Category: "Electronics", Stock: 25},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// Reset the catalog before seeding.
	if err := db.Exec(`DELETE FROM products`).Error; err != nil {
		log.Fatal("Error: Failed to clear products:", err)
	}

	now := time.Now()
	for _, p := range products {
		row := &model.Product{
			Id:        uuid.New(),
			Name:      p.Name,
			Price:     p.Price,
			Category:  p.Category,
			Stock:     p.Stock,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := db.Create(row).Error; err != nil {
			log.Fatalf("Error: Failed to seed product %q: %v", p.Name, err)
		}
	}

	log.Println("Database seeded successfully!")
}
