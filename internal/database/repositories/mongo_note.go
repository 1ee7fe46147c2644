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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type noteDocument struct {
	ID        string    `bson:"_id"`
	Title     string    `bson:"title"`
	Content   string    `bson:"content"`
	OwnerID   string    `bson:"owner_id"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d noteDocument) model() (models.Note, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return models.Note{}, fmt.Errorf("error decoding note id %q: %w", d.ID, err)
	}
	owner, err := uuid.Parse(d.OwnerID)
	if err != nil {
		return models.Note{}, fmt.Errorf("error decoding owner id %q: %w", d.OwnerID, err)
	}
	return models.Note{
		ID:        id,
		Title:     d.Title,
		Content:   d.Content,
		OwnerID:   owner,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}, nil
}

type mongoNoteRepository struct {
	notes *mongo.Collection
}

// NewMongoNoteRepository expects an index on "owner_id".
func NewMongoNoteRepository(db *mongo.Database) NoteRepository {
	return &mongoNoteRepository{notes: db.Collection(NotesCollection)}
}

func (r *mongoNoteRepository) Create(ctx context.Context, note *models.Note) error {
	ts := now()
	doc := noteDocument{
		ID:        uuid.NewString(),
		Title:     note.Title,
		Content:   note.Content,
		OwnerID:   note.OwnerID.String(),
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if _, err := r.notes.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("error creating note: %w", err)
	}
	note.ID = uuid.MustParse(doc.ID)
	note.CreatedAt, note.UpdatedAt = ts, ts
	return nil
}

func (r *mongoNoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	var doc noteDocument
	err := r.notes.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting note: %w", err)
	}
	note, err := doc.model()
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *mongoNoteRepository) GetAll(ctx context.Context, ownerID uuid.UUID) ([]models.Note, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.notes.Find(ctx, bson.M{"owner_id": ownerID.String()}, opts)
	if err != nil {
		return nil, fmt.Errorf("error querying notes: %w", err)
	}
	defer cursor.Close(ctx)

	notes := []models.Note{}
	for cursor.Next(ctx) {
		var doc noteDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("error decoding note: %w", err)
		}
		note, err := doc.model()
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}
	return notes, nil
}

func (r *mongoNoteRepository) Update(ctx context.Context, note *models.Note) error {
	ts := now()
	update := bson.M{"$set": bson.M{"title": note.Title, "content": note.Content, "updated_at": ts}}
	result, err := r.notes.UpdateOne(ctx, bson.M{"_id": note.ID.String()}, update)
	if err != nil {
		return fmt.Errorf("error updating note: %w", err)
	}
	if result.MatchedCount == 0 {
		return common.ErrNotFound
	}
	note.UpdatedAt = ts
	return nil
}

func (r *mongoNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.notes.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("error deleting note: %w", err)
	}
	if result.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}
