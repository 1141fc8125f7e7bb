package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/mpopescu/phonebook/pkg/errors"

	"github.com/mpopescu/phonebook/internal/domain"
)

// contactsCollection is the name of the MongoDB collection holding contacts.
const contactsCollection = "contacts"

// ContactRepository implements repository.ContactRepository using MongoDB.
type ContactRepository struct {
	coll *mongo.Collection
}

// NewContactRepository creates a new MongoDB-backed contact repository.
func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{coll: db.Collection(contactsCollection)}
}

// contactDoc is the BSON shape of a contact. The domain type keeps the id as
// an opaque string; the ObjectID stays an implementation detail of this package.
type contactDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	FirstName   string             `bson:"firstName"`
	LastName    string             `bson:"lastName"`
	PhoneNumber string             `bson:"phoneNumber"`
}

func (d *contactDoc) toDomain() domain.Contact {
	return domain.Contact{
		ID:          d.ID.Hex(),
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		PhoneNumber: d.PhoneNumber,
	}
}

// listFilter builds the query document for List. An empty pattern matches
// everything; otherwise the pattern is applied as a regex OR-matched against
// the three contact fields.
func listFilter(pattern string) bson.M {
	if pattern == "" {
		return bson.M{}
	}
	re := primitive.Regex{Pattern: pattern}
	return bson.M{"$or": bson.A{
		bson.M{"firstName": re},
		bson.M{"lastName": re},
		bson.M{"phoneNumber": re},
	}}
}

// sortDirection maps a SortOrder onto a MongoDB sort value for firstName.
func sortDirection(order domain.SortOrder) int {
	if order == domain.SortDesc {
		return -1
	}
	return 1
}

// List returns contacts sorted by firstName, optionally filtered by pattern.
func (r *ContactRepository) List(ctx context.Context, order domain.SortOrder, filter string) ([]domain.Contact, error) {
	opts := options.Find().SetSort(bson.D{{Key: "firstName", Value: sortDirection(order)}})

	cursor, err := r.coll.Find(ctx, listFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("find contacts: %w", err)
	}
	defer cursor.Close(ctx)

	contacts := []domain.Contact{}
	for cursor.Next(ctx) {
		var doc contactDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode contact: %w", err)
		}
		contacts = append(contacts, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}

	return contacts, nil
}

// GetByID retrieves a contact by its identifier. A malformed identifier is
// reported as not found; the caller cannot tell the two cases apart.
func (r *ContactRepository) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("contact", id)
	}

	var doc contactDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("contact", id)
		}
		return nil, fmt.Errorf("find contact %s: %w", id, err)
	}

	c := doc.toDomain()
	return &c, nil
}

// ExistsByFields reports whether a contact with the exact field triple exists.
func (r *ContactRepository) ExistsByFields(ctx context.Context, firstName, lastName, phoneNumber string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{
		"firstName":   firstName,
		"lastName":    lastName,
		"phoneNumber": phoneNumber,
	}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count contacts: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new contact and fills in the assigned identifier.
func (r *ContactRepository) Create(ctx context.Context, c *domain.Contact) error {
	res, err := r.coll.InsertOne(ctx, bson.M{
		"firstName":   c.FirstName,
		"lastName":    c.LastName,
		"phoneNumber": c.PhoneNumber,
	})
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	c.ID = oid.Hex()

	return nil
}

// Replace overwrites the three contact fields and returns the updated record.
func (r *ContactRepository) Replace(ctx context.Context, id string, c *domain.Contact) (*domain.Contact, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("contact", id)
	}

	update := bson.M{"$set": bson.M{
		"firstName":   c.FirstName,
		"lastName":    c.LastName,
		"phoneNumber": c.PhoneNumber,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc contactDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("contact", id)
		}
		return nil, fmt.Errorf("update contact %s: %w", id, err)
	}

	updated := doc.toDomain()
	return &updated, nil
}

// UpdateFields applies the field values to the contact with the given id and
// reports whether the store modified a record. Matching a record but writing
// identical data counts as not modified.
func (r *ContactRepository) UpdateFields(ctx context.Context, id, firstName, lastName, phoneNumber string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, apperrors.InvalidInput("invalid contact id: " + id)
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"firstName":   firstName,
		"lastName":    lastName,
		"phoneNumber": phoneNumber,
	}})
	if err != nil {
		return false, fmt.Errorf("update contact %s: %w", id, err)
	}

	return res.ModifiedCount == 1, nil
}

// Delete removes the contact with the given id.
func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.InvalidInput("invalid contact id: " + id)
	}

	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NotFound("contact", id)
		}
		return fmt.Errorf("delete contact %s: %w", id, err)
	}

	return nil
}

// ValidID reports whether id is a well-formed ObjectID hex string.
func (r *ContactRepository) ValidID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}
