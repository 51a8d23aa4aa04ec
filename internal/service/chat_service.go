package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"sales-assistant-be/internal/constant"
	"sales-assistant-be/internal/dto"
	"sales-assistant-be/internal/entity"
	"sales-assistant-be/internal/repository/specification"
	"sales-assistant-be/internal/repository/unitofwork"
	"sales-assistant-be/pkg/assistant"

	"github.com/google/uuid"
)

var ErrMessageRequired = errors.New("Message is required")

type IChatService interface {
	SendMessage(ctx context.Context, userId uuid.UUID, message string) (*dto.SendChatResponse, error)
	GetHistory(ctx context.Context, userId uuid.UUID) (*dto.ChatHistoryResponse, error)
	SaveHistory(ctx context.Context, userId uuid.UUID, req *dto.SaveChatHistoryRequest) error
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	responder  *assistant.Responder
}

func NewChatService(uowFactory unitofwork.RepositoryFactory, products IProductService) IChatService {
	inventory := &inventoryAdapter{uowFactory: uowFactory, products: products}
	return &chatService{
		uowFactory: uowFactory,
		responder:  assistant.NewResponder(inventory),
	}
}

// SendMessage resolves the assistant's reply and records both turns of the
// exchange so the history endpoint can replay them.
func (s *chatService) SendMessage(ctx context.Context, userId uuid.UUID, message string) (*dto.SendChatResponse, error) {
	if message == "" {
		return nil, ErrMessageRequired
	}

	response := s.responder.Reply(ctx, message)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	userMsg := &entity.ChatMessage{
		Id:        uuid.New(),
		UserId:    userId,
		Role:      constant.ChatMessageRoleUser,
		Content:   message,
		CreatedAt: now,
	}
	if err := uow.ChatMessageRepository().Create(ctx, userMsg); err != nil {
		return nil, err
	}

	assistantMsg := &entity.ChatMessage{
		Id:        uuid.New(),
		UserId:    userId,
		Role:      constant.ChatMessageRoleAssistant,
		Content:   response,
		CreatedAt: now.Add(time.Millisecond),
	}
	if err := uow.ChatMessageRepository().Create(ctx, assistantMsg); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.SendChatResponse{Response: response}, nil
}

func (s *chatService) GetHistory(ctx context.Context, userId uuid.UUID) (*dto.ChatHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ChatMessageDTO, 0, len(messages))
	for _, m := range messages {
		out = append(out, dto.ChatMessageDTO{
			Role:      m.Role,
			Content:   m.Content,
			Timestamp: m.CreatedAt.Format(time.RFC3339),
		})
	}
	return &dto.ChatHistoryResponse{Messages: out}, nil
}

// SaveHistory stores the client's rendered conversation as one JSON document
// per user, replacing any earlier snapshot.
func (s *chatService) SaveHistory(ctx context.Context, userId uuid.UUID, req *dto.SaveChatHistoryRequest) error {
	payload, err := json.Marshal(req.Messages)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	now := time.Now()
	snapshot := &entity.ChatHistorySnapshot{
		Id:        uuid.New(),
		UserId:    userId,
		Messages:  payload,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uow.ChatHistorySnapshotRepository().Upsert(ctx, snapshot); err != nil {
		return err
	}

	return uow.Commit()
}

// inventoryAdapter backs the responder with the product store. Reads go
// straight to the repositories; writes go through the product service so
// chat-driven mutations publish the same events and invalidate the same
// caches as the REST endpoints.
type inventoryAdapter struct {
	uowFactory unitofwork.RepositoryFactory
	products   IProductService
}

func (a *inventoryAdapter) FindByName(ctx context.Context, name string) (*assistant.Product, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)
	product, err := uow.ProductRepository().FindOne(ctx, specification.ByName{Name: name})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	p := toAssistantProduct(product)
	return &p, nil
}

func (a *inventoryAdapter) Create(ctx context.Context, product assistant.Product) error {
	_, err := a.products.Add(ctx, &dto.AddProductRequest{
		Name:     product.Name,
		Price:    &product.Price,
		Category: product.Category,
		Stock:    &product.Stock,
	})
	return err
}

func (a *inventoryAdapter) Update(ctx context.Context, name string, update assistant.ProductUpdate) error {
	_, err := a.products.Update(ctx, name, &dto.UpdateProductRequest{
		Price:    update.Price,
		Category: update.Category,
		Stock:    update.Stock,
	})
	return err
}

func (a *inventoryAdapter) Delete(ctx context.Context, name string) error {
	return a.products.Delete(ctx, name)
}

func (a *inventoryAdapter) ListAll(ctx context.Context) ([]assistant.Product, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)
	products, err := uow.ProductRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: false})
	if err != nil {
		return nil, err
	}
	return toAssistantProducts(products), nil
}

func (a *inventoryAdapter) SearchByName(ctx context.Context, term string) ([]assistant.Product, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)
	products, err := uow.ProductRepository().FindAll(ctx, specification.NameContains{Term: term})
	if err != nil {
		return nil, err
	}
	return toAssistantProducts(products), nil
}

func (a *inventoryAdapter) FilterByCategory(ctx context.Context, category string) ([]assistant.Product, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)
	products, err := uow.ProductRepository().FindAll(ctx, specification.CategoryContains{Term: category})
	if err != nil {
		return nil, err
	}
	return toAssistantProducts(products), nil
}

func toAssistantProduct(p *entity.Product) assistant.Product {
	return assistant.Product{Name: p.Name, Price: p.Price, Stock: p.Stock, Category: p.Category}
}

func toAssistantProducts(products []*entity.Product) []assistant.Product {
	out := make([]assistant.Product, 0, len(products))
	for _, p := range products {
		out = append(out, toAssistantProduct(p))
	}
	return out
}
