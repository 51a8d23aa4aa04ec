package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sales-assistant-be/internal/dto"
	"sales-assistant-be/internal/entity"
	"sales-assistant-be/internal/repository/specification"
	"sales-assistant-be/internal/repository/unitofwork"
	"sales-assistant-be/pkg/events"
	pktNats "sales-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

var (
	ErrProductNotFound      = errors.New("Product not found")
	ErrProductAlreadyExists = errors.New("Product with this name already exists")
	ErrNotEnoughStock       = errors.New("Not enough stock available")
	ErrAmountNotPositive    = errors.New("Amount must be positive")
	ErrNegativeStock        = errors.New("Stock cannot be negative")
	ErrNoUpdateData         = errors.New("No update data provided")
)

const (
	categoryCacheKey = "product_categories"
	categoryCacheTTL = 5 * time.Minute

	// Stock levels at or below this fire a low-stock alert on the bus.
	lowStockThreshold = 5

	StockAlertTopic = "stock.alerts"
)

// StockAlertMessage is the payload published when stock drops low.
type StockAlertMessage struct {
	ProductName string `json:"product_name"`
	Stock       int    `json:"stock"`
}

type IProductService interface {
	List(ctx context.Context) (*dto.ProductListResponse, error)
	Search(ctx context.Context, name string) (*dto.ProductListResponse, error)
	ByCategory(ctx context.Context, category string) (*dto.ProductListResponse, error)
	Categories(ctx context.Context) ([]string, error)
	FindByName(ctx context.Context, name string) (*dto.ProductDTO, error)
	Add(ctx context.Context, req *dto.AddProductRequest) (*dto.ProductDTO, error)
	Update(ctx context.Context, name string, req *dto.UpdateProductRequest) (*dto.ProductDTO, error)
	Delete(ctx context.Context, name string) error
	ReduceStock(ctx context.Context, name string, amount int) (*dto.ReduceStockResponse, error)
}

type productService struct {
	uowFactory     unitofwork.RepositoryFactory
	cache          *gocache.Cache
	eventPublisher *pktNats.Publisher
	alertBus       *gochannel.GoChannel
}

func NewProductService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher, alertBus *gochannel.GoChannel) IProductService {
	return &productService{
		uowFactory:     uowFactory,
		cache:          gocache.New(categoryCacheTTL, 10*time.Minute),
		eventPublisher: eventPublisher,
		alertBus:       alertBus,
	}
}

func (s *productService) List(ctx context.Context) (*dto.ProductListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	products, err := uow.ProductRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: false})
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{Products: toProductDTOs(products)}, nil
}

func (s *productService) Search(ctx context.Context, name string) (*dto.ProductListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	products, err := uow.ProductRepository().FindAll(ctx, specification.NameContains{Term: name})
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{Products: toProductDTOs(products)}, nil
}

func (s *productService) ByCategory(ctx context.Context, category string) (*dto.ProductListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	products, err := uow.ProductRepository().FindAll(ctx, specification.ByCategory{Category: category})
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{Products: toProductDTOs(products)}, nil
}

// Categories serves the distinct category list from a short-lived cache.
// Any product mutation invalidates it.
func (s *productService) Categories(ctx context.Context) ([]string, error) {
	if cached, ok := s.cache.Get(categoryCacheKey); ok {
		return cached.([]string), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	categories, err := uow.ProductRepository().Categories(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(categoryCacheKey, categories, categoryCacheTTL)
	return categories, nil
}

func (s *productService) FindByName(ctx context.Context, name string) (*dto.ProductDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	product, err := uow.ProductRepository().FindOne(ctx, specification.ByName{Name: name})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	d := toProductDTO(product)
	return &d, nil
}

func (s *productService) Add(ctx context.Context, req *dto.AddProductRequest) (*dto.ProductDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.ProductRepository().FindOne(ctx, specification.ByName{Name: req.Name})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrProductAlreadyExists
	}

	now := time.Now()
	product := &entity.Product{
		Id:        uuid.New(),
		Name:      req.Name,
		Price:     *req.Price,
		Category:  req.Category,
		Stock:     *req.Stock,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ProductRepository().Create(ctx, product); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.cache.Delete(categoryCacheKey)
	s.publishEvent(ctx, events.TypeProductAdded, product)

	d := toProductDTO(product)
	return &d, nil
}

func (s *productService) Update(ctx context.Context, name string, req *dto.UpdateProductRequest) (*dto.ProductDTO, error) {
	update := entity.ProductUpdate{Price: req.Price, Category: req.Category, Stock: req.Stock}
	if update.IsEmpty() {
		return nil, ErrNoUpdateData
	}
	if update.Stock != nil && *update.Stock < 0 {
		return nil, ErrNegativeStock
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOne(ctx, specification.ByName{Name: name})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.Category != nil {
		product.Category = *update.Category
	}
	if update.Stock != nil {
		product.Stock = *update.Stock
	}
	product.UpdatedAt = time.Now()

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ProductRepository().Update(ctx, product); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.cache.Delete(categoryCacheKey)
	s.publishEvent(ctx, events.TypeProductUpdated, product)

	d := toProductDTO(product)
	return &d, nil
}

func (s *productService) Delete(ctx context.Context, name string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOne(ctx, specification.ByName{Name: name})
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ProductRepository().Delete(ctx, product.Id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.cache.Delete(categoryCacheKey)
	s.publishEvent(ctx, events.TypeProductDeleted, product)
	return nil
}

func (s *productService) ReduceStock(ctx context.Context, name string, amount int) (*dto.ReduceStockResponse, error) {
	if amount <= 0 {
		return nil, ErrAmountNotPositive
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOne(ctx, specification.ByName{Name: name})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if product.Stock < amount {
		return nil, ErrNotEnoughStock
	}

	product.Stock -= amount
	product.UpdatedAt = time.Now()

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ProductRepository().Update(ctx, product); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TypeStockReduced, product)

	if product.Stock <= lowStockThreshold {
		s.publishStockAlert(product)
	}

	return &dto.ReduceStockResponse{
		Message: fmt.Sprintf("Stock reduced by %d", amount),
		Stock:   product.Stock,
	}, nil
}

func (s *productService) publishEvent(ctx context.Context, eventType string, product *entity.Product) {
	if s.eventPublisher == nil {
		return
	}
	event := events.New(eventType, map[string]interface{}{
		"product_id": product.Id,
		"name":       product.Name,
		"category":   product.Category,
		"stock":      product.Stock,
	})
	_ = s.eventPublisher.Publish(ctx, event)
}

func (s *productService) publishStockAlert(product *entity.Product) {
	if s.alertBus == nil {
		return
	}
	payload, err := json.Marshal(StockAlertMessage{ProductName: product.Name, Stock: product.Stock})
	if err != nil {
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	_ = s.alertBus.Publish(StockAlertTopic, msg)
}

func toProductDTO(p *entity.Product) dto.ProductDTO {
	return dto.ProductDTO{
		Id:        p.Id,
		Name:      p.Name,
		Price:     p.Price,
		Category:  p.Category,
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toProductDTOs(products []*entity.Product) []dto.ProductDTO {
	out := make([]dto.ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, toProductDTO(p))
	}
	return out
}
