package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"sales-assistant-be/internal/entity"
	"sales-assistant-be/internal/repository/specification"
	"sales-assistant-be/internal/repository/unitofwork"
	"sales-assistant-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.ProductRepository())
	assert.NotNil(t, uow.ChatMessageRepository())
	assert.NotNil(t, uow.ChatHistorySnapshotRepository())
}

func TestProductRepositoryRoundTrip(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(ctx)
	repo := uow.ProductRepository()

	name := "it-widget-" + uuid.NewString()[:8]
	product := &entity.Product{
		Id:        uuid.New(),
		Name:      name,
		Price:     12.5,
		Category:  "it-testing",
		Stock:     7,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, product))
	defer func() {
		_ = repo.Delete(ctx, product.Id)
	}()

	// Exact name lookup
	found, err := repo.FindOne(ctx, specification.ByName{Name: name})
	require.NoError(t, err)
	assert.Equal(t, product.Id, found.Id)
	assert.Equal(t, 12.5, found.Price)

	// Partial, case-insensitive match
	matches, err := repo.FindAll(ctx, specification.NameContains{Term: "IT-WIDGET"})
	require.NoError(t, err)
	assert.NotEmpty(t, matches)

	// Category filtering and the distinct category listing
	inCategory, err := repo.FindAll(ctx, specification.ByCategory{Category: "it-testing"})
	require.NoError(t, err)
	assert.NotEmpty(t, inCategory)

	categories, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Contains(t, categories, "it-testing")

	// Update
	found.Stock = 3
	require.NoError(t, repo.Update(ctx, found))
	refetched, err := repo.FindOne(ctx, specification.ByID{ID: product.Id})
	require.NoError(t, err)
	assert.Equal(t, 3, refetched.Stock)
}
