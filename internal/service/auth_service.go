package service

import (
	"context"
	"errors"
	"time"

	"sales-assistant-be/internal/dto"
	"sales-assistant-be/internal/entity"
	"sales-assistant-be/internal/repository/specification"
	"sales-assistant-be/internal/repository/unitofwork"
	"sales-assistant-be/pkg/events"
	pktNats "sales-assistant-be/pkg/nats"
	"sales-assistant-be/pkg/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("Username already exists")
	ErrEmailTaken         = errors.New("Email already exists")
	ErrInvalidCredentials = errors.New("Invalid username or password")
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	revocations    *store.RevocationStore
	eventPublisher *pktNats.Publisher
	jwtSecret      string
	tokenTTL       time.Duration
}

// NewAuthService issues and revokes tokens with the same secret the route
// middleware verifies with; both sides must receive cfg.App.JwtSecret.
func NewAuthService(uowFactory unitofwork.RepositoryFactory, revocations *store.RevocationStore, eventPublisher *pktNats.Publisher, jwtSecret string) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		revocations:    revocations,
		eventPublisher: eventPublisher,
		jwtSecret:      jwtSecret,
		tokenTTL:       time.Hour * 24,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: req.Username})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	existing, err = uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Id:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		event := events.New(events.TypeUserRegistered, map[string]interface{}{
			"user_id":  user.Id,
			"username": user.Username,
		})
		_ = s.eventPublisher.Publish(ctx, event)
	}

	return &dto.AuthResponse{
		User:  dto.UserDTO{Id: user.Id, Username: user.Username, Email: user.Email},
		Token: token,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: req.Username})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		event := events.New(events.TypeUserLogin, map[string]interface{}{
			"user_id":  user.Id,
			"username": user.Username,
		})
		_ = s.eventPublisher.Publish(ctx, event)
	}

	return &dto.AuthResponse{
		User:  dto.UserDTO{Id: user.Id, Username: user.Username, Email: user.Email},
		Token: token,
	}, nil
}

// Logout invalidates the presented token for its remaining lifetime.
func (s *authService) Logout(ctx context.Context, token string) error {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		// Expired or malformed tokens need no revocation entry.
		return nil
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}

	return s.revocations.Revoke(ctx, token, time.Until(exp.Time))
}

func (s *authService) issueToken(user *entity.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.Id.String(),
		"username": user.Username,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
