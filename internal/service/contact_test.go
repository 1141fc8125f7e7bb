package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mpopescu/phonebook/pkg/errors"

	"github.com/mpopescu/phonebook/internal/domain"
)

// --- Mock Contact Repository ---

type mockContactRepository struct {
	mock.Mock
}

func (m *mockContactRepository) List(ctx context.Context, order domain.SortOrder, filter string) ([]domain.Contact, error) {
	args := m.Called(ctx, order, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contact), args.Error(1)
}

func (m *mockContactRepository) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func (m *mockContactRepository) ExistsByFields(ctx context.Context, firstName, lastName, phoneNumber string) (bool, error) {
	args := m.Called(ctx, firstName, lastName, phoneNumber)
	return args.Bool(0), args.Error(1)
}

func (m *mockContactRepository) Create(ctx context.Context, c *domain.Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockContactRepository) Replace(ctx context.Context, id string, c *domain.Contact) (*domain.Contact, error) {
	args := m.Called(ctx, id, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func (m *mockContactRepository) UpdateFields(ctx context.Context, id, firstName, lastName, phoneNumber string) (bool, error) {
	args := m.Called(ctx, id, firstName, lastName, phoneNumber)
	return args.Bool(0), args.Error(1)
}

func (m *mockContactRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockContactRepository) ValidID(id string) bool {
	args := m.Called(id)
	return args.Bool(0)
}

// --- Mock Event Publisher ---

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishContactCreated(ctx context.Context, c *domain.Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockPublisher) PublishContactUpdated(ctx context.Context, c *domain.Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockPublisher) PublishContactDeleted(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newContactService(repo *mockContactRepository, producer *mockPublisher) *ContactService {
	return NewContactService(repo, producer, newTestLogger())
}

const validID = "64a1f2e8b3c4d5e6f7a8b9c0"

// --- List ---

func TestContactService_List(t *testing.T) {
	repo := new(mockContactRepository)
	producer := new(mockPublisher)
	svc := newContactService(repo, producer)

	expected := []domain.Contact{
		{ID: validID, FirstName: "Ana", LastName: "Pop", PhoneNumber: "0712345678"},
	}
	repo.On("List", mock.Anything, domain.SortAsc, "").Return(expected, nil)

	contacts, err := svc.List(context.Background(), domain.SortAsc, "")
	require.NoError(t, err)
	assert.Equal(t, expected, contacts)
	repo.AssertExpectations(t)
}

func TestContactService_ListPropagatesStoreError(t *testing.T) {
	repo := new(mockContactRepository)
	producer := new(mockPublisher)
	svc := newContactService(repo, producer)

	repo.On("List", mock.Anything, domain.SortDesc, "555").Return(nil, errors.New("connection reset"))

	_, err := svc.List(context.Background(), domain.SortDesc, "555")
	assert.Error(t, err)
}

// --- Get ---

func TestContactService_Get(t *testing.T) {
	repo := new(mockContactRepository)
	producer := new(mockPublisher)
	svc := newContactService(repo, producer)

	expected := &domain.Contact{ID: validID, FirstName: "Ana"}
	repo.On("ValidID", validID).Return(true)
	repo.On("GetByID", mock.Anything, validID).Return(expected, nil)

	contact, err := svc.Get(context.Background(), validID)
	require.NoError(t, err)
	assert.Equal(t, expected, contact)
}

func TestContactService_GetMalformedIDIsNotFound(t *testing.T) {
	repo := new(mockContactRepository)
	producer := new(mockPublisher)
	svc := newContactService(repo, producer)

	repo.On("ValidID", "nope").Return(false)

	_, err := svc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

// --- Create ---

func TestContactService_Create(t *testing.T) {
	repo := new(mockContactRepository)
	producer := new(mockPublisher)
	svc := newContactService(repo, producer)

	repo.On("ExistsByFields", mock.Anything, "Ana", "Pop", "0712345678").Return(false, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Contact) bool {
		return c.FirstName == "Ana" && c.LastName == "Pop" && c.PhoneNumber == "0712345678"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Contact).ID = validID
	}).Return(nil)
	producer.On("PublishContactCreated", mock.Anything, mock.Anything).Return(nil)

	contact, err := svc.Create(context.Background(), ContactInput{
		FirstName:   "Ana",
		LastName:    "Pop",
		PhoneNumber: "0712345678",
	})
	require.NoError(t, err)
	assert.Equal(t, validID, contact.ID)
	repo.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestContactService_CreateMissingFields(t *testing.T) {
	repo := new(mockContactRepository)
	producer := new(mockPublisher)
	svc := newContactService(repo, producer)

	tests := []struct {
		name  string
		input ContactInput
	}{
		{name: "missing firstName", input: ContactInput{LastName: "Pop", PhoneNumber: "0712"}},
		{name: "missing lastName", input: ContactInput{FirstName: "Ana", PhoneNumber: "0712"}},
		{name: "missing phoneNumber", input: ContactInput{FirstName: "Ana", LastName: "Pop"}},
		{name: "all missing", input: ContactInput{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.input)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestContactService_CreateDuplicateTriple(t *testing.T) {
	repo := new(mockContactRepository)
	producer := new(mockPublisher)
	svc := newContactService(repo, producer)

	repo.On("ExistsByFields", mock.Anything, "Ana", "Pop", "0712345678").Return(true, nil)

	_, err := svc.Create(context.Background(), ContactInput{
		FirstName:   "Ana",
		LastName:    "Pop",
		PhoneNumber: "0712345678",
	})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestContactService_CreateSucceedsWhenPublishFails(t *testing.T) {
	repo := new(mockContactRepository)
	producer := new(mockPublisher)
	svc := newContactService(repo, producer)

	repo.On("ExistsByFields", mock.Anything, "Ana", "Pop", "0712345678").Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	producer.On("PublishContactCreated", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	_, err := svc.Create(context.Background(), ContactInput{
		FirstName:   "Ana",
		LastName:    "Pop",
		PhoneNumber: "0712345678",
	})
	assert.NoError(t, err)
}

// --- Update (single) ---

func TestContactService_Update(t *testing.T) {
	repo := new(mockContactRepository)
	producer := new(mockPublisher)
	svc := newContactService(repo, producer)

	updated := &domain.Contact{ID: validID, FirstName: "Ana", LastName: "Popescu", PhoneNumber: "0799"}
	repo.On("ValidID", validID).Return(true)
	repo.On("Replace", mock.Anything, validID, mock.Anything).Return(updated, nil)
	producer.On("PublishContactUpdated", mock.Anything, updated).Return(nil)

	contact, err := svc.Update(context.Background(), validID, ContactInput{
		FirstName:   "Ana",
		LastName:    "Popescu",
		PhoneNumber: "0799",
	})
	require.NoError(t, err)
	assert.Equal(t, "Popescu", contact.LastName)
}

func TestContactService_UpdateMalformedIDIsBadRequest(t *testing.T) {
	repo := new(mockContactRepository)
	producer := new(mockPublisher)
	svc := newContactService(repo, producer)

	repo.On("ValidID", "zzz").Return(false)

	_, err := svc.Update(context.Background(), "zzz", ContactInput{FirstName: "Ana"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything, mock.Anything)
}

func TestContactService_UpdateUnknownIDIsNotFound(t *testing.T) {
	repo := new(mockContactRepository)
	producer := new(mockPublisher)
	svc := newContactService(repo, producer)

	repo.On("ValidID", validID).Return(true)
	repo.On("Replace", mock.Anything, validID, mock.Anything).Return(nil, apperrors.NotFound("contact", validID))

	_, err := svc.Update(context.Background(), validID, ContactInput{FirstName: "Ana"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// --- BulkUpdate ---

func TestContactService_BulkUpdateMixedEntries(t *testing.T) {
	repo := new(mockContactRepository)
	producer := new(mockPublisher)
	svc := newContactService(repo, producer)

	const otherID = "64a1f2e8b3c4d5e6f7a8b9c1"
	const staleID = "64a1f2e8b3c4d5e6f7a8b9c2"

	entries := []BulkUpdateEntry{
		{ID: validID, FirstName: "Ana", LastName: "Pop", PhoneNumber: "0711"},
		{ID: "malformed", FirstName: "Bad", LastName: "Id", PhoneNumber: "0000"},
		{ID: otherID, FirstName: "Ion", LastName: "Dl", PhoneNumber: "0722"},
		{ID: staleID, FirstName: "Same", LastName: "Data", PhoneNumber: "0733"},
	}

	repo.On("ValidID", validID).Return(true)
	repo.On("ValidID", "malformed").Return(false)
	repo.On("ValidID", otherID).Return(true)
	repo.On("ValidID", staleID).Return(true)

	repo.On("UpdateFields", mock.Anything, validID, "Ana", "Pop", "0711").Return(true, nil)
	repo.On("UpdateFields", mock.Anything, otherID, "Ion", "Dl", "0722").Return(true, nil)
	// Matches a record but changes nothing: not reported as updated.
	repo.On("UpdateFields", mock.Anything, staleID, "Same", "Data", "0733").Return(false, nil)

	producer.On("PublishContactUpdated", mock.Anything, mock.Anything).Return(nil)

	updated, err := svc.BulkUpdate(context.Background(), entries)
	require.NoError(t, err)

	ids := make([]string, 0, len(updated))
	for _, e := range updated {
		ids = append(ids, e.ID)
	}
	assert.ElementsMatch(t, []string{validID, otherID}, ids)
	repo.AssertNotCalled(t, "UpdateFields", mock.Anything, "malformed", mock.Anything, mock.Anything, mock.Anything)
}

func TestContactService_BulkUpdateStoreErrorAbortsAll(t *testing.T) {
	repo := new(mockContactRepository)
	producer := new(mockPublisher)
	svc := newContactService(repo, producer)

	const otherID = "64a1f2e8b3c4d5e6f7a8b9c1"

	repo.On("ValidID", mock.Anything).Return(true)
	repo.On("UpdateFields", mock.Anything, validID, mock.Anything, mock.Anything, mock.Anything).Return(false, errors.New("connection reset"))
	repo.On("UpdateFields", mock.Anything, otherID, mock.Anything, mock.Anything, mock.Anything).Return(true, nil).Maybe()
	producer.On("PublishContactUpdated", mock.Anything, mock.Anything).Return(nil).Maybe()

	_, err := svc.BulkUpdate(context.Background(), []BulkUpdateEntry{
		{ID: validID, FirstName: "Ana"},
		{ID: otherID, FirstName: "Ion"},
	})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestContactService_BulkUpdateEmpty(t *testing.T) {
	repo := new(mockContactRepository)
	producer := new(mockPublisher)
	svc := newContactService(repo, producer)

	updated, err := svc.BulkUpdate(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, updated)
	assert.NotNil(t, updated)
}

// --- Delete ---

func TestContactService_Delete(t *testing.T) {
	repo := new(mockContactRepository)
	producer := new(mockPublisher)
	svc := newContactService(repo, producer)

	repo.On("ValidID", validID).Return(true)
	repo.On("Delete", mock.Anything, validID).Return(nil)
	producer.On("PublishContactDeleted", mock.Anything, validID).Return(nil)

	err := svc.Delete(context.Background(), validID)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestContactService_DeleteMalformedID(t *testing.T) {
	repo := new(mockContactRepository)
	producer := new(mockPublisher)
	svc := newContactService(repo, producer)

	repo.On("ValidID", "zzz").Return(false)

	err := svc.Delete(context.Background(), "zzz")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestContactService_DeleteUnknownID(t *testing.T) {
	repo := new(mockContactRepository)
	producer := new(mockPublisher)
	svc := newContactService(repo, producer)

	repo.On("ValidID", validID).Return(true)
	repo.On("Delete", mock.Anything, validID).Return(apperrors.NotFound("contact", validID))

	err := svc.Delete(context.Background(), validID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
