package http

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mpopescu/phonebook/pkg/health"

	"github.com/mpopescu/phonebook/internal/auth"
	"github.com/mpopescu/phonebook/internal/domain"
	"github.com/mpopescu/phonebook/internal/service"
)

const testSecret = "test-secret-key-for-testing"

const validID = "64a1f2e8b3c4d5e6f7a8b9c0"

// --- Mock Contact Repository ---

type mockContactRepo struct {
	mock.Mock
}

func (m *mockContactRepo) List(ctx context.Context, order domain.SortOrder, filter string) ([]domain.Contact, error) {
	args := m.Called(ctx, order, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contact), args.Error(1)
}

func (m *mockContactRepo) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func (m *mockContactRepo) ExistsByFields(ctx context.Context, firstName, lastName, phoneNumber string) (bool, error) {
	args := m.Called(ctx, firstName, lastName, phoneNumber)
	return args.Bool(0), args.Error(1)
}

func (m *mockContactRepo) Create(ctx context.Context, c *domain.Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockContactRepo) Replace(ctx context.Context, id string, c *domain.Contact) (*domain.Contact, error) {
	args := m.Called(ctx, id, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func (m *mockContactRepo) UpdateFields(ctx context.Context, id, firstName, lastName, phoneNumber string) (bool, error) {
	args := m.Called(ctx, id, firstName, lastName, phoneNumber)
	return args.Bool(0), args.Error(1)
}

func (m *mockContactRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockContactRepo) ValidID(id string) bool {
	args := m.Called(id)
	return args.Bool(0)
}

// --- Mock User Repository ---

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

// --- Stub Event Publisher ---

type stubPublisher struct{}

func (stubPublisher) PublishContactCreated(context.Context, *domain.Contact) error { return nil }
func (stubPublisher) PublishContactUpdated(context.Context, *domain.Contact) error { return nil }
func (stubPublisher) PublishContactDeleted(context.Context, string) error          { return nil }

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestJWTManager() *auth.JWTManager {
	return auth.NewJWTManager(testSecret, time.Hour)
}

// newTestRouter builds the full router with mock repositories behind real
// services, so tests exercise the same wiring the server runs with.
func newTestRouter(contacts *mockContactRepo, users *mockUserRepo) http.Handler {
	logger := newTestLogger()
	jwtManager := newTestJWTManager()
	contactService := service.NewContactService(contacts, stubPublisher{}, logger)
	authService := service.NewAuthService(users, jwtManager, logger)
	return NewRouter(contactService, authService, jwtManager, health.NewHandler(), logger)
}

func validToken() string {
	token, err := newTestJWTManager().Issue("admin")
	if err != nil {
		panic(err)
	}
	return token
}
