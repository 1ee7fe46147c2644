package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"scribe/internal/common"
	"scribe/internal/database/models"

	"github.com/google/uuid"
)

type noteRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewNoteRepository(db *sql.DB, dialect Dialect) NoteRepository {
	return &noteRepository{db: db, dialect: dialect}
}

func (r *noteRepository) Create(ctx context.Context, note *models.Note) error {
	query := r.dialect.rebind(`
		INSERT INTO notes (id, title, content, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	id, ts := uuid.New(), now()
	if _, err := r.db.ExecContext(ctx, query, id, note.Title, note.Content, note.OwnerID, ts, ts); err != nil {
		return fmt.Errorf("error creating note: %w", err)
	}
	note.ID, note.CreatedAt, note.UpdatedAt = id, ts, ts
	return nil
}

func (r *noteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	note := models.Note{}
	query := r.dialect.rebind(`SELECT id, title, content, user_id, created_at, updated_at FROM notes WHERE id = ?`)
	err := r.db.QueryRowContext(ctx, query, id).Scan(&note.ID, &note.Title, &note.Content, &note.OwnerID, &note.CreatedAt, &note.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting note: %w", err)
	}
	return &note, nil
}

func (r *noteRepository) GetAll(ctx context.Context, ownerID uuid.UUID) ([]models.Note, error) {
	query := r.dialect.rebind(`
		SELECT id, title, content, user_id, created_at, updated_at
		FROM notes WHERE user_id = ?
		ORDER BY created_at, id`)
	result, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error querying notes: %w", err)
	}
	defer result.Close()
	notes := []models.Note{}
	for result.Next() {
		var note models.Note
		err := result.Scan(
			&note.ID,
			&note.Title,
			&note.Content,
			&note.OwnerID,
			&note.CreatedAt,
			&note.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning note: %w", err)
		}
		notes = append(notes, note)
	}
	if err = result.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}
	return notes, nil
}

// Update replaces title and content of the note with note.ID. The owner
// column is never written.
func (r *noteRepository) Update(ctx context.Context, note *models.Note) error {
	query := r.dialect.rebind(`
		UPDATE notes
		SET title = ?, content = ?, updated_at = ?
		WHERE id = ?`)
	ts := now()
	result, err := r.db.ExecContext(ctx, query, note.Title, note.Content, ts, note.ID)
	if err != nil {
		return fmt.Errorf("error updating note: %w", err)
	}
	if err := expectOneRow(result); err != nil {
		return err
	}
	note.UpdatedAt = ts
	return nil
}

func (r *noteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := r.dialect.rebind(`DELETE FROM notes WHERE id = ?`)
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error deleting note: %w", err)
	}
	return expectOneRow(result)
}

func expectOneRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}
