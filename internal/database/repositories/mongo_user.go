package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"scribe/internal/common"
	"scribe/internal/database/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection names shared with the index setup in package database.
const (
	UsersCollection = "users"
	NotesCollection = "notes"
)

type userDocument struct {
	ID        string    `bson:"_id"`
	Email     string    `bson:"email"`
	Password  string    `bson:"hashed_password"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d userDocument) model() (*models.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("error decoding user id %q: %w", d.ID, err)
	}
	return &models.User{ID: id, Email: d.Email, Password: d.Password, CreatedAt: d.CreatedAt.UTC()}, nil
}

type mongoUserRepository struct {
	users *mongo.Collection
}

// NewMongoUserRepository expects a unique index on "email".
func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{users: db.Collection(UsersCollection)}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *models.User) error {
	doc := userDocument{ID: uuid.NewString(), Email: user.Email, Password: user.Password, CreatedAt: now()}
	_, err := r.users.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return common.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}
	user.ID = uuid.MustParse(doc.ID)
	user.CreatedAt = doc.CreatedAt
	return nil
}

func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDocument
	err := r.users.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return doc.model()
}
