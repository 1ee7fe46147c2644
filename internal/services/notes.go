package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"scribe/internal/common"
	"scribe/internal/database/models"
	"scribe/internal/database/repositories"

	"github.com/google/uuid"
)

// NoteService enforces note ownership. A note that belongs to someone else is
// reported exactly like a note that does not exist.
type NoteService struct {
	notes repositories.NoteRepository
}

func NewNoteService(notes repositories.NoteRepository) *NoteService {
	return &NoteService{notes: notes}
}

func (s *NoteService) Create(ctx context.Context, user *models.User, title, content string) (*models.Note, error) {
	if err := validateNote(title); err != nil {
		return nil, err
	}
	note := &models.Note{Title: title, Content: content, OwnerID: user.ID}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// List reads the user's notes fresh on every call.
func (s *NoteService) List(ctx context.Context, user *models.User) ([]models.Note, error) {
	notes, err := s.notes.GetAll(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return notes, nil
}

func (s *NoteService) Get(ctx context.Context, user *models.User, id uuid.UUID) (*models.Note, error) {
	return s.owned(ctx, user, id)
}

// Update replaces title and content. The owner never changes.
func (s *NoteService) Update(ctx context.Context, user *models.User, id uuid.UUID, title, content string) (*models.Note, error) {
	if err := validateNote(title); err != nil {
		return nil, err
	}
	note, err := s.owned(ctx, user, id)
	if err != nil {
		return nil, err
	}
	note.Title, note.Content = title, content
	if err := s.notes.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, user *models.User, id uuid.UUID) error {
	if _, err := s.owned(ctx, user, id); err != nil {
		return err
	}
	return s.notes.Delete(ctx, id)
}

func (s *NoteService) owned(ctx context.Context, user *models.User, id uuid.UUID) (*models.Note, error) {
	note, err := s.notes.GetByID(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if note.OwnerID != user.ID {
		return nil, common.ErrNotFound
	}
	return note, nil
}

func validateNote(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	return nil
}
