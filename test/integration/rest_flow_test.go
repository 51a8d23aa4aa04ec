package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"sales-assistant-be/internal/bootstrap"
	"sales-assistant-be/internal/config"
	"sales-assistant-be/internal/dto"
	"sales-assistant-be/internal/server"
	"sales-assistant-be/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	container := bootstrap.NewContainer(db, cfg)
	srv := server.New(cfg, container)
	return srv.GetApp()
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}, out interface{}) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t)

	var health map[string]string
	status := doJSON(t, app, http.MethodGet, "/api/health", "", nil, &health)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", health["status"])
}

func TestAuthAndChatFlow(t *testing.T) {
	app := newTestApp(t)

	username := "it-user-" + uuid.NewString()[:8]
	register := map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	}

	var auth dto.AuthResponse
	status := doJSON(t, app, http.MethodPost, "/api/register", "", register, &auth)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, username, auth.User.Username)
	require.NotEmpty(t, auth.Token)

	// Duplicate registration is rejected
	var dupErr map[string]string
	status = doJSON(t, app, http.MethodPost, "/api/register", "", register, &dupErr)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Username already exists", dupErr["error"])

	// Login with the same credentials
	var login dto.AuthResponse
	status = doJSON(t, app, http.MethodPost, "/api/login", "",
		map[string]string{"username": username, "password": "secret123"}, &login)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, login.Token)

	// Wrong password
	var badLogin map[string]string
	status = doJSON(t, app, http.MethodPost, "/api/login", "",
		map[string]string{"username": username, "password": "wrong"}, &badLogin)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid username or password", badLogin["error"])

	// Chat requires a token
	status = doJSON(t, app, http.MethodPost, "/api/chat", "",
		dto.SendChatRequest{Message: "hi"}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	// Greeting round trip
	var chat dto.SendChatResponse
	status = doJSON(t, app, http.MethodPost, "/api/chat", login.Token,
		dto.SendChatRequest{Message: "hi"}, &chat)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, chat.Response, "Welcome to our E-commerce Chatbot!")

	// Both turns are persisted in order
	var history dto.ChatHistoryResponse
	status = doJSON(t, app, http.MethodGet, "/api/chat/history", login.Token, nil, &history)
	require.Equal(t, http.StatusOK, status)
	require.GreaterOrEqual(t, len(history.Messages), 2)
	assert.Equal(t, "user", history.Messages[0].Role)
	assert.Equal(t, "hi", history.Messages[0].Content)
	assert.Equal(t, "assistant", history.Messages[1].Role)

	// Logout
	var logout map[string]string
	status = doJSON(t, app, http.MethodPost, "/api/logout", login.Token, nil, &logout)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Logged out successfully", logout["message"])
}

func TestProductCrudFlow(t *testing.T) {
	app := newTestApp(t)

	name := "it-gadget-" + uuid.NewString()[:8]
	price := 49.99
	stock := 20

	var created dto.ProductDTO
	status := doJSON(t, app, http.MethodPost, "/api/products", "",
		dto.AddProductRequest{Name: name, Price: &price, Category: "it-testing", Stock: &stock}, &created)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, name, created.Name)
	defer func() {
		doJSON(t, app, http.MethodDelete, "/api/products/delete/"+name, "", nil, nil)
	}()

	// Duplicate add
	var dupErr map[string]string
	status = doJSON(t, app, http.MethodPost, "/api/products", "",
		dto.AddProductRequest{Name: name, Price: &price, Category: "it-testing", Stock: &stock}, &dupErr)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Product with this name already exists", dupErr["error"])

	// List contains the product
	var list dto.ProductListResponse
	status = doJSON(t, app, http.MethodGet, "/api/products", "", nil, &list)
	require.Equal(t, http.StatusOK, status)
	found := false
	for _, p := range list.Products {
		if p.Name == name {
			found = true
		}
	}
	assert.True(t, found, "created product should appear in the listing")

	// Search by partial name
	var search dto.ProductListResponse
	status = doJSON(t, app, http.MethodGet, "/api/products/search?name=it-gadget", "", nil, &search)
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, search.Products)

	// Partial update
	newPrice := 39.99
	var updated dto.ProductDTO
	status = doJSON(t, app, http.MethodPut, "/api/products/update/"+name, "",
		dto.UpdateProductRequest{Price: &newPrice}, &updated)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, newPrice, updated.Price)
	assert.Equal(t, stock, updated.Stock)

	// Reduce stock
	var reduced dto.ReduceStockResponse
	status = doJSON(t, app, http.MethodPut, "/api/products/reduce-stock/"+name, "",
		dto.ReduceStockRequest{Amount: 5}, &reduced)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Stock reduced by 5", reduced.Message)
	assert.Equal(t, stock-5, reduced.Stock)

	// Over-reduction is rejected
	var overErr map[string]string
	status = doJSON(t, app, http.MethodPut, "/api/products/reduce-stock/"+name, "",
		dto.ReduceStockRequest{Amount: 1000}, &overErr)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Not enough stock available", overErr["error"])

	// Delete
	var deleted map[string]string
	status = doJSON(t, app, http.MethodDelete, "/api/products/delete/"+name, "", nil, &deleted)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, fmt.Sprintf("Product %q deleted successfully", name), deleted["message"])

	// Gone now
	var missing map[string]string
	status = doJSON(t, app, http.MethodDelete, "/api/products/delete/"+name, "", nil, &missing)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Product not found", missing["error"])
}
