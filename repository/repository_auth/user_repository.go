package repository_auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/murasame-lab/voxtrain/domain"
	"github.com/murasame-lab/voxtrain/domain/domain_auth"
	"github.com/murasame-lab/voxtrain/mongo"
	"go.mongodb.org/mongo-driver/bson"
)

type userRepository struct {
	db         mongo.Database
	collection string
}

func NewUserRepository(db mongo.Database) domain_auth.UserRepository {
	return &userRepository{
		db:         db,
		collection: domain.CollectionUser,
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain_auth.User) error {
	if user == nil {
		return errors.New("user cannot be nil")
	}
	coll := r.db.Collection(r.collection)
	if _, err := coll.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain_auth.User, error) {
	coll := r.db.Collection(r.collection)
	var user domain_auth.User
	if err := coll.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, domain_auth.ErrUserNotFound
	}
	return &user, nil
}
