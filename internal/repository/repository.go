package repository

import (
	"context"

	"github.com/mpopescu/phonebook/internal/domain"
)

// ContactRepository defines the interface for contact persistence operations.
// Identifiers are opaque strings; the store decides what a well-formed
// identifier looks like, which is why ValidID lives here and not in the
// service layer.
type ContactRepository interface {
	// List returns all contacts sorted by firstName in the given order.
	// A non-empty filter restricts the result to contacts whose firstName,
	// lastName, or phoneNumber matches the filter pattern.
	List(ctx context.Context, order domain.SortOrder, filter string) ([]domain.Contact, error)

	// GetByID retrieves a contact by its identifier.
	GetByID(ctx context.Context, id string) (*domain.Contact, error)

	// ExistsByFields reports whether a contact with the exact
	// (firstName, lastName, phoneNumber) triple already exists.
	ExistsByFields(ctx context.Context, firstName, lastName, phoneNumber string) (bool, error)

	// Create inserts a new contact and fills in its assigned identifier.
	Create(ctx context.Context, c *domain.Contact) error

	// Replace overwrites the firstName, lastName, and phoneNumber of the
	// contact with the given id and returns the updated record.
	Replace(ctx context.Context, id string, c *domain.Contact) (*domain.Contact, error)

	// UpdateFields applies the given field values to the contact with the
	// given id. It reports whether the store actually modified a record;
	// updates that match nothing or change nothing return false.
	UpdateFields(ctx context.Context, id, firstName, lastName, phoneNumber string) (bool, error)

	// Delete removes the contact with the given id.
	Delete(ctx context.Context, id string) error

	// ValidID reports whether id is well-formed for the store's
	// identifier format.
	ValidID(id string) bool
}

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// GetByUsername retrieves a user by username.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// Create inserts a new user into the store. Used by the seed command.
	Create(ctx context.Context, u *domain.User) error
}
