package session

import "testing"

func TestNormalizeTranscript(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"show all products", "please show all products", "list products"},
		{"list all products", "List All Products", "list products"},
		{"search phrase", "can you find the iphone", "show the iphone"},
		{"show phrase", "Show Laptop", "show laptop"},
		{"add product", "Add Product name:pen price:1.5 category:office stock:100", "add name:pen price:1.5 category:office stock:100"},
		{"update product", "update product name:pen price:2", "update name:pen price:2"},
		{"delete product", "please delete product pen", "delete pen"},
		{"free text passes through", "What can you do?", "What can you do?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTranscript(tt.in); got != tt.want {
				t.Errorf("NormalizeTranscript(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
