package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	model "github.com/kasundularaam/flash-feather-starter-v6/internal/models"
)

// MemoryStore est une implémentation en mémoire, thread-safe, utilisée
// par les tests et le développement local sans base de données.
type MemoryStore struct {
	mu sync.RWMutex

	byID    map[string]*model.User
	byEmail map[string]*model.User
	byName  map[string]*model.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[string]*model.User),
		byEmail: make(map[string]*model.User),
		byName:  make(map[string]*model.User),
	}
}

func (m *MemoryStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (m *MemoryStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (m *MemoryStore) FindByName(ctx context.Context, name string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.byName[name]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (m *MemoryStore) Create(ctx context.Context, user *model.User) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byEmail[user.Email]; exists {
		return nil, ErrDuplicate
	}
	if _, exists := m.byName[user.Name]; exists {
		return nil, ErrDuplicate
	}

	user.ID = uuid.NewString()
	user.IsActive = true
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	// on stocke une copie pour éviter toute mutation externe
	cp := *user
	m.byID[user.ID] = &cp
	m.byEmail[user.Email] = &cp
	m.byName[user.Name] = &cp

	result := cp
	return &result, nil
}

func (m *MemoryStore) UpdateProfilePicture(ctx context.Context, id, pictureURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	user.ProfilePicture = pictureURL
	user.UpdatedAt = time.Now()
	return nil
}

// Delete retire un utilisateur du store (utile pour simuler un compte supprimé)
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(m.byID, user.ID)
	delete(m.byEmail, user.Email)
	delete(m.byName, user.Name)
	return nil
}
