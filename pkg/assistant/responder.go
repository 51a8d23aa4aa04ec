// Package assistant turns free-form chat messages into inventory actions
// and renders the reply text the chat endpoint returns.
package assistant

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"sales-assistant-be/internal/constant"
)

// Product is the inventory view the responder renders from.
type Product struct {
	Name     string
	Price    float64
	Stock    int
	Category string
}

// ProductUpdate carries the single field an "update product:" command changes.
type ProductUpdate struct {
	Price    *float64
	Stock    *int
	Category *string
}

// Inventory is the product store the responder consults. Lookups by name are
// exact matches; SearchByName and FilterByCategory are case-insensitive
// substring matches.
type Inventory interface {
	FindByName(ctx context.Context, name string) (*Product, error)
	Create(ctx context.Context, product Product) error
	Update(ctx context.Context, name string, update ProductUpdate) error
	Delete(ctx context.Context, name string) error
	ListAll(ctx context.Context) ([]Product, error)
	SearchByName(ctx context.Context, term string) ([]Product, error)
	FilterByCategory(ctx context.Context, category string) ([]Product, error)
}

var (
	addProductPattern    = regexp.MustCompile(`^add product:\s*([^,]+),\s*(\d+\.?\d*),\s*(\d+),\s*([^,]+)`)
	updateProductPattern = regexp.MustCompile(`^update product:\s*([^,]+),\s*([^,]+),\s*([^,]+)`)
)

type Responder struct {
	inventory Inventory
}

func NewResponder(inventory Inventory) *Responder {
	return &Responder{inventory: inventory}
}

// Reply resolves one user message into the assistant's answer. Commands are
// matched on the lowercased, trimmed message, so product names flowing through
// the chat surface are stored and matched in lowercase.
func (r *Responder) Reply(ctx context.Context, message string) string {
	message = strings.ToLower(strings.TrimSpace(message))

	switch message {
	case "hi", "hello", "hey", "start":
		return constant.AssistantGreeting
	case "help":
		return constant.AssistantHelp
	}

	switch {
	case strings.HasPrefix(message, "add product:"):
		return r.addProduct(ctx, message)
	case strings.HasPrefix(message, "update product:"):
		return r.updateProduct(ctx, message)
	case strings.HasPrefix(message, "delete product:"):
		return r.deleteProduct(ctx, message)
	case message == "show all products" || message == "list products" || message == "products":
		return r.listProducts(ctx)
	case strings.HasPrefix(message, "search"):
		return r.searchProducts(ctx, strings.TrimSpace(strings.TrimPrefix(message, "search")))
	case strings.HasPrefix(message, "category"):
		return r.productsByCategory(ctx, strings.TrimSpace(strings.TrimPrefix(message, "category")))
	}

	return constant.AssistantFallback
}

func (r *Responder) addProduct(ctx context.Context, message string) string {
	match := addProductPattern.FindStringSubmatch(message)
	if match == nil {
		return "Please use the format: Add product: [name], [price], [stock], [category]"
	}

	name := strings.TrimSpace(match[1])
	price, err := strconv.ParseFloat(match[2], 64)
	if err != nil {
		return fmt.Sprintf("Error adding product: %s", err)
	}
	stock, err := strconv.Atoi(match[3])
	if err != nil {
		return fmt.Sprintf("Error adding product: %s", err)
	}
	category := strings.TrimSpace(match[4])

	existing, err := r.inventory.FindByName(ctx, name)
	if err != nil {
		return fmt.Sprintf("Error adding product: %s", err)
	}
	if existing != nil {
		return fmt.Sprintf("Product '%s' already exists. Would you like to update it instead?", name)
	}

	if err := r.inventory.Create(ctx, Product{Name: name, Price: price, Stock: stock, Category: category}); err != nil {
		return fmt.Sprintf("Error adding product: %s", err)
	}
	return fmt.Sprintf("Successfully added product: %s ($%s, %d in stock, %s)", name, formatPrice(price), stock, category)
}

func (r *Responder) updateProduct(ctx context.Context, message string) string {
	match := updateProductPattern.FindStringSubmatch(message)
	if match == nil {
		return "Please use the format: Update product: [name], [field], [new value]"
	}

	name := strings.TrimSpace(match[1])
	field := strings.ToLower(strings.TrimSpace(match[2]))
	value := strings.TrimSpace(match[3])

	product, err := r.inventory.FindByName(ctx, name)
	if err != nil {
		return fmt.Sprintf("Error updating product: %s", err)
	}
	if product == nil {
		return fmt.Sprintf("Product '%s' not found.", name)
	}

	var update ProductUpdate
	switch field {
	case "price":
		price, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Sprintf("Error updating product: %s", err)
		}
		update.Price = &price
	case "stock":
		stock, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Sprintf("Error updating product: %s", err)
		}
		update.Stock = &stock
	case "category":
		update.Category = &value
	default:
		return fmt.Sprintf("Invalid field: %s. Please use: price, stock, or category", field)
	}

	if err := r.inventory.Update(ctx, name, update); err != nil {
		return fmt.Sprintf("Error updating product: %s", err)
	}
	return fmt.Sprintf("Successfully updated %s for %s to %s", field, name, value)
}

func (r *Responder) deleteProduct(ctx context.Context, message string) string {
	name := strings.TrimSpace(strings.TrimPrefix(message, "delete product:"))

	product, err := r.inventory.FindByName(ctx, name)
	if err != nil {
		return fmt.Sprintf("Error deleting product: %s", err)
	}
	if product == nil {
		return fmt.Sprintf("Product '%s' not found.", name)
	}

	if err := r.inventory.Delete(ctx, name); err != nil {
		return fmt.Sprintf("Error deleting product: %s", err)
	}
	return fmt.Sprintf("Successfully deleted product: %s", name)
}

func (r *Responder) listProducts(ctx context.Context) string {
	products, err := r.inventory.ListAll(ctx)
	if err != nil {
		return fmt.Sprintf("An error occurred: %s", err)
	}
	if len(products) == 0 {
		return "No products found in inventory."
	}

	var b strings.Builder
	b.WriteString("Here are all products:\n\n")
	for _, p := range products {
		fmt.Fprintf(&b, "- %s: $%s, %d in stock, %s\n", p.Name, formatPrice(p.Price), p.Stock, p.Category)
	}
	return b.String()
}

func (r *Responder) searchProducts(ctx context.Context, term string) string {
	products, err := r.inventory.SearchByName(ctx, term)
	if err != nil {
		return fmt.Sprintf("An error occurred: %s", err)
	}
	if len(products) == 0 {
		return fmt.Sprintf("No products found matching '%s'.", term)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d products matching '%s':\n\n", len(products), term)
	for _, p := range products {
		fmt.Fprintf(&b, "- %s: $%s, %d in stock, %s\n", p.Name, formatPrice(p.Price), p.Stock, p.Category)
	}
	return b.String()
}

func (r *Responder) productsByCategory(ctx context.Context, category string) string {
	products, err := r.inventory.FilterByCategory(ctx, category)
	if err != nil {
		return fmt.Sprintf("An error occurred: %s", err)
	}
	if len(products) == 0 {
		return fmt.Sprintf("No products found in category '%s'.", category)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Products in category '%s':\n\n", category)
	for _, p := range products {
		fmt.Fprintf(&b, "- %s: $%s, %d in stock\n", p.Name, formatPrice(p.Price), p.Stock)
	}
	return b.String()
}

// formatPrice renders prices without a fixed precision, so 1.5 stays "1.5"
// and 799.99 stays "799.99".
func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
