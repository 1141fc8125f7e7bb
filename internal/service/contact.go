package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/mpopescu/phonebook/pkg/errors"

	"github.com/mpopescu/phonebook/internal/domain"
	"github.com/mpopescu/phonebook/internal/repository"
)

// Publisher publishes contact lifecycle events. Satisfied by event.Producer.
type Publisher interface {
	PublishContactCreated(ctx context.Context, c *domain.Contact) error
	PublishContactUpdated(ctx context.Context, c *domain.Contact) error
	PublishContactDeleted(ctx context.Context, id string) error
}

// ContactService implements the business rules for the contact collection.
type ContactService struct {
	repo     repository.ContactRepository
	producer Publisher
	logger   *slog.Logger
}

// NewContactService creates a new contact service.
func NewContactService(repo repository.ContactRepository, producer Publisher, logger *slog.Logger) *ContactService {
	return &ContactService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// ContactInput holds the writable fields of a contact.
type ContactInput struct {
	FirstName   string
	LastName    string
	PhoneNumber string
}

// BulkUpdateEntry is one element of a bulk update request. Each entry carries
// its own identifier alongside the field values to apply.
type BulkUpdateEntry struct {
	ID          string `json:"_id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
}

// List returns contacts sorted by firstName in the given order. A non-empty
// filter restricts the result to contacts matching it on any of the three
// fields. No matches is an empty list, never an error.
func (s *ContactService) List(ctx context.Context, order domain.SortOrder, filter string) ([]domain.Contact, error) {
	contacts, err := s.repo.List(ctx, order, filter)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

// Get retrieves a single contact. A malformed identifier is reported as not
// found, same as an unknown one; the two cases are indistinguishable to the
// caller.
func (s *ContactService) Get(ctx context.Context, id string) (*domain.Contact, error) {
	if !s.repo.ValidID(id) {
		return nil, apperrors.NotFound("contact", id)
	}
	return s.repo.GetByID(ctx, id)
}

// Create inserts a new contact after checking that no contact with the exact
// same field triple exists. The check and the insert are separate store
// calls, so concurrent identical creates can still race in a duplicate.
func (s *ContactService) Create(ctx context.Context, input ContactInput) (*domain.Contact, error) {
	if input.FirstName == "" {
		return nil, apperrors.InvalidInput("firstName is required")
	}
	if input.LastName == "" {
		return nil, apperrors.InvalidInput("lastName is required")
	}
	if input.PhoneNumber == "" {
		return nil, apperrors.InvalidInput("phoneNumber is required")
	}

	exists, err := s.repo.ExistsByFields(ctx, input.FirstName, input.LastName, input.PhoneNumber)
	if err != nil {
		return nil, fmt.Errorf("check existing contact: %w", err)
	}
	if exists {
		return nil, apperrors.AlreadyExists("contact")
	}

	contact := &domain.Contact{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		PhoneNumber: input.PhoneNumber,
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}

	if err := s.producer.PublishContactCreated(ctx, contact); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish contact.created event",
			slog.String("contact_id", contact.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "contact created", slog.String("contact_id", contact.ID))

	return contact, nil
}

// Update replaces the fields of a single contact and returns the updated
// record. A malformed identifier is rejected outright rather than being
// reinterpreted as a bulk request.
func (s *ContactService) Update(ctx context.Context, id string, input ContactInput) (*domain.Contact, error) {
	if !s.repo.ValidID(id) {
		return nil, apperrors.InvalidInput("invalid contact id: " + id)
	}

	updated, err := s.repo.Replace(ctx, id, &domain.Contact{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		PhoneNumber: input.PhoneNumber,
	})
	if err != nil {
		return nil, err
	}

	if err := s.producer.PublishContactUpdated(ctx, updated); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish contact.updated event",
			slog.String("contact_id", updated.ID),
			slog.String("error", err.Error()),
		)
	}

	return updated, nil
}

// BulkUpdate applies a batch of independent updates. Entries with a malformed
// identifier are skipped; the rest are dispatched to the store concurrently.
// The returned slice holds exactly the entries the store reports as actually
// modified; a zero-effect update (identical data or no matching record) is
// not an error and not reported. Any store communication failure aborts the
// whole operation.
func (s *ContactService) BulkUpdate(ctx context.Context, entries []BulkUpdateEntry) ([]BulkUpdateEntry, error) {
	updated := make([]BulkUpdateEntry, 0, len(entries))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, entry := range entries {
		entry := entry
		if !s.repo.ValidID(entry.ID) {
			s.logger.DebugContext(ctx, "skipping bulk update entry with malformed id",
				slog.String("contact_id", entry.ID),
			)
			continue
		}

		g.Go(func() error {
			modified, err := s.repo.UpdateFields(ctx, entry.ID, entry.FirstName, entry.LastName, entry.PhoneNumber)
			if err != nil {
				return fmt.Errorf("update contact %s: %w", entry.ID, err)
			}
			if modified {
				mu.Lock()
				updated = append(updated, entry)
				mu.Unlock()

				if err := s.producer.PublishContactUpdated(ctx, &domain.Contact{
					ID:          entry.ID,
					FirstName:   entry.FirstName,
					LastName:    entry.LastName,
					PhoneNumber: entry.PhoneNumber,
				}); err != nil {
					s.logger.ErrorContext(ctx, "failed to publish contact.updated event",
						slog.String("contact_id", entry.ID),
						slog.String("error", err.Error()),
					)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("bulk update: %w", err)
	}

	return updated, nil
}

// Delete removes a contact. A missing or malformed identifier is a bad
// request, an unknown one is not found.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	if id == "" || !s.repo.ValidID(id) {
		return apperrors.InvalidInput("invalid contact id: " + id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.producer.PublishContactDeleted(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish contact.deleted event",
			slog.String("contact_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "contact deleted", slog.String("contact_id", id))

	return nil
}
