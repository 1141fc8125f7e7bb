package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	apperrors "github.com/mpopescu/phonebook/pkg/errors"

	"github.com/mpopescu/phonebook/internal/domain"
)

// usersCollection is the name of the MongoDB collection holding users.
const usersCollection = "users"

// UserRepository implements repository.UserRepository using MongoDB.
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a new MongoDB-backed user repository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type userDoc struct {
	Username string `bson:"username"`
	Password string `bson:"password"`
}

// GetByUsername retrieves a user by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var doc userDoc
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("user", username)
		}
		return nil, fmt.Errorf("find user %s: %w", username, err)
	}

	return &domain.User{Username: doc.Username, Password: doc.Password}, nil
}

// Create inserts a new user into the store.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	_, err := r.coll.InsertOne(ctx, userDoc{
		Username: u.Username,
		Password: u.Password,
	})
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}
