package services

import (
	"context"
	"sync"
	"time"

	"scribe/internal/common"
	"scribe/internal/database/models"

	"github.com/google/uuid"
)

type memUsers struct {
	mu     sync.Mutex
	byMail map[string]models.User
	getErr error
}

func newMemUsers() *memUsers { return &memUsers{byMail: map[string]models.User{}} }

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byMail[u.Email]; ok {
		return common.ErrEmailTaken
	}
	u.ID, u.CreatedAt = uuid.New(), time.Now()
	m.byMail[u.Email] = *u
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	u, ok := m.byMail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &u, nil
}

type memNotes struct {
	mu    sync.Mutex
	order []uuid.UUID
	byID  map[uuid.UUID]models.Note
	err   error
}

func newMemNotes() *memNotes { return &memNotes{byID: map[uuid.UUID]models.Note{}} }

func (m *memNotes) Create(_ context.Context, n *models.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	n.ID = uuid.New()
	n.CreatedAt, n.UpdatedAt = time.Now(), time.Now()
	m.byID[n.ID] = *n
	m.order = append(m.order, n.ID)
	return nil
}

func (m *memNotes) GetByID(_ context.Context, id uuid.UUID) (*models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	n, ok := m.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &n, nil
}

func (m *memNotes) GetAll(_ context.Context, owner uuid.UUID) ([]models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Note
	for _, id := range m.order {
		if n, ok := m.byID[id]; ok && n.OwnerID == owner {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memNotes) Update(_ context.Context, n *models.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.byID[n.ID]
	if !ok {
		return common.ErrNotFound
	}
	cur.Title, cur.Content, cur.UpdatedAt = n.Title, n.Content, time.Now()
	m.byID[n.ID] = cur
	n.UpdatedAt = cur.UpdatedAt
	return nil
}

func (m *memNotes) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return common.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}
