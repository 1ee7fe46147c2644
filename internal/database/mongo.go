package database

import (
	"context"
	"fmt"
	"time"

	"scribe/internal/database/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type mongoService struct {
	client *mongo.Client
	db     *mongo.Database
	users  repositories.UserRepository
	notes  repositories.NoteRepository
}

func openMongo(ctx context.Context, uri, dbName string) (Service, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	db := client.Database(dbName)
	if err := ensureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &mongoService{
		client: client,
		db:     db,
		users:  repositories.NewMongoUserRepository(db),
		notes:  repositories.NewMongoNoteRepository(db),
	}, nil
}

// ensureIndexes is the document-store counterpart of the SQL migrations.
// The unique email index is what makes concurrent signups safe.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(repositories.UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_key"),
	})
	if err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}
	_, err = db.Collection(repositories.NotesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: 1}},
		Options: options.Index().SetName("notes_owner_id_idx"),
	})
	if err != nil {
		return fmt.Errorf("create notes owner index: %w", err)
	}
	return nil
}

func (s *mongoService) Users() repositories.UserRepository { return s.users }

func (s *mongoService) Notes() repositories.NoteRepository { return s.notes }

func (s *mongoService) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	stats := map[string]string{"driver": "mongo", "database": s.db.Name()}
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}
	stats["status"] = "up"
	stats["message"] = "It's healthy"
	return stats
}

func (s *mongoService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
