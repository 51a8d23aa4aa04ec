package command

import (
	"strings"
	"testing"
)

var testCategories = []string{"Electronics", "Clothing", "Footwear"}

func TestInterpretStructuredCommands(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		want      Intent
	}{
		{
			name:      "list products",
			utterance: "list products",
			want:      Intent{Kind: KindListProducts},
		},
		{
			name:      "show products alias",
			utterance: "Show Products",
			want:      Intent{Kind: KindListProducts},
		},
		{
			name:      "select known category",
			utterance: "select category:Electronics",
			want:      Intent{Kind: KindSelectCategory, Category: "electronics"},
		},
		{
			name:      "show category",
			utterance: "show category: clothing",
			want:      Intent{Kind: KindShowCategory, Category: "clothing"},
		},
		{
			name:      "search by show keyword",
			utterance: "show iPhone 13",
			want:      Intent{Kind: KindSearchProduct, Name: "iPhone 13"},
		},
		{
			name:      "search by find keyword",
			utterance: "find laptop",
			want:      Intent{Kind: KindSearchProduct, Name: "laptop"},
		},
		{
			name:      "delete product",
			utterance: "delete iPhone 13",
			want:      Intent{Kind: KindDeleteProduct, Name: "iPhone 13"},
		},
		{
			name:      "reduce stock",
			utterance: "reduce stock name:pen amount:5",
			want:      Intent{Kind: KindReduceStock, Name: "pen", Amount: 5},
		},
		{
			name:      "free text falls through",
			utterance: "what can you do",
			want:      Intent{Kind: KindNone},
		},
		{
			name:      "greeting falls through",
			utterance: "hello",
			want:      Intent{Kind: KindNone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interpret(tt.utterance, testCategories)

			if got.Kind != tt.want.Kind {
				t.Fatalf("Kind = %d, want %d", got.Kind, tt.want.Kind)
			}
			if got.Name != tt.want.Name {
				t.Errorf("Name = %q, want %q", got.Name, tt.want.Name)
			}
			if got.Category != tt.want.Category {
				t.Errorf("Category = %q, want %q", got.Category, tt.want.Category)
			}
			if got.Amount != tt.want.Amount {
				t.Errorf("Amount = %d, want %d", got.Amount, tt.want.Amount)
			}
		})
	}
}

func TestInterpretAddProduct(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		wantName  string
		wantPrice float64
		wantCat   string
		wantStock int
	}{
		{
			name:      "plain add",
			utterance: "add name:Pen price:1.5 category:Office stock:100",
			wantName:  "Pen",
			wantPrice: 1.5,
			wantCat:   "Office",
			wantStock: 100,
		},
		{
			name:      "uppercase keywords",
			utterance: "ADD NAME:Pen PRICE:99.99 CATEGORY:Office STOCK:10",
			wantName:  "Pen",
			wantPrice: 99.99,
			wantCat:   "Office",
			wantStock: 10,
		},
		{
			name:      "integer price",
			utterance: "add name:desk price:120 category:furniture stock:3",
			wantName:  "desk",
			wantPrice: 120,
			wantCat:   "furniture",
			wantStock: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interpret(tt.utterance, testCategories)

			if got.Kind != KindAddProduct {
				t.Fatalf("Kind = %d, want KindAddProduct", got.Kind)
			}
			if got.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", got.Name, tt.wantName)
			}
			if got.Price != tt.wantPrice {
				t.Errorf("Price = %v, want %v", got.Price, tt.wantPrice)
			}
			if got.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", got.Category, tt.wantCat)
			}
			if got.Stock != tt.wantStock {
				t.Errorf("Stock = %d, want %d", got.Stock, tt.wantStock)
			}
		})
	}
}

func TestInterpretUpdateProduct(t *testing.T) {
	priceIntent := Interpret("update name:pen price:2.5", testCategories)
	if priceIntent.Kind != KindUpdateProduct {
		t.Fatalf("Kind = %d, want KindUpdateProduct", priceIntent.Kind)
	}
	if priceIntent.Update.Price == nil || *priceIntent.Update.Price != 2.5 {
		t.Errorf("Update.Price = %v, want 2.5", priceIntent.Update.Price)
	}
	if priceIntent.Update.Category != nil || priceIntent.Update.Stock != nil {
		t.Errorf("unexpected extra fields in partial update: %+v", priceIntent.Update)
	}

	catIntent := Interpret("update name:pen category:stationery", testCategories)
	if catIntent.Update.Category == nil || *catIntent.Update.Category != "stationery" {
		t.Errorf("Update.Category = %v, want stationery", catIntent.Update.Category)
	}

	stockIntent := Interpret("update name:pen stock:42", testCategories)
	if stockIntent.Update.Stock == nil || *stockIntent.Update.Stock != 42 {
		t.Errorf("Update.Stock = %v, want 42", stockIntent.Update.Stock)
	}
}

func TestInterpretHints(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		wantIn    string
	}{
		{
			name:      "add missing fields",
			utterance: "add name:Pen",
			wantIn:    `To add a product, use format: "add name:ProductName price:99.99 category:Category stock:10"`,
		},
		{
			name:      "update missing value",
			utterance: "update name:Pen",
			wantIn:    "To update a product, use format:",
		},
		{
			name:      "bare show",
			utterance: "show",
			wantIn:    "Please specify a product name",
		},
		{
			name:      "bare delete",
			utterance: "delete",
			wantIn:    `"delete iPhone"`,
		},
		{
			name:      "malformed reduce stock",
			utterance: "reduce stock pen by 5",
			wantIn:    `"reduce stock name:ProductName amount:5"`,
		},
		{
			name:      "unknown category",
			utterance: "select category:Toys",
			wantIn:    `Category "toys" not found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interpret(tt.utterance, testCategories)

			if got.Kind != KindHint {
				t.Fatalf("Kind = %d, want KindHint", got.Kind)
			}
			if !strings.Contains(got.Hint, tt.wantIn) {
				t.Errorf("Hint = %q, want it to contain %q", got.Hint, tt.wantIn)
			}
		})
	}
}

func TestInterpretUnknownCategoryListsKnownOnes(t *testing.T) {
	got := Interpret("select category:toys", testCategories)

	if got.Kind != KindHint {
		t.Fatalf("Kind = %d, want KindHint", got.Kind)
	}
	for _, cat := range testCategories {
		if !strings.Contains(got.Hint, cat) {
			t.Errorf("Hint does not mention category %q: %q", cat, got.Hint)
		}
	}
}
