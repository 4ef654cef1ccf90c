package handler_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"

	"profilehub/internal/auth"
	"profilehub/internal/config"
	"profilehub/internal/handler"
	"profilehub/internal/model"
	"profilehub/internal/router"
	"profilehub/internal/service"
)

const testSecret = "test-secret"

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password string) (string, error) {
	args := m.Called(ctx, name, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockProfileService is a mock implementation of service.ProfileService.
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Upsert(ctx context.Context, userID uuid.UUID, firstName, lastName, username string) (*model.Profile, error) {
	args := m.Called(ctx, userID, firstName, lastName, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileService) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileService) List(ctx context.Context) ([]model.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Profile), args.Error(1)
}

func (m *MockProfileService) Delete(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// newTestServer wires handlers through the real router, so requests pass the
// same validation and auth gate as in production.
func newTestServer(authSvc service.AuthService, profileSvc service.ProfileService) *echo.Echo {
	e := echo.New()
	cfg := &config.Config{JWTSecret: testSecret, JWTTTL: time.Hour}
	router.Register(e, cfg,
		handler.NewAuthHandler(authSvc),
		handler.NewUserHandler(authSvc),
		handler.NewProfileHandler(profileSvc),
	)
	return e
}

// issueToken signs a token the test server's auth gate accepts.
func issueToken(userID uuid.UUID) string {
	token, err := auth.NewJWTService(testSecret, time.Hour).GenerateToken(userID)
	if err != nil {
		panic(err)
	}
	return token
}
