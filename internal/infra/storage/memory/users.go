package memory

import (
	"context"
	"sync"

	domainauth "bookingengine/internal/domain/auth"
	domainuser "bookingengine/internal/domain/user"
)

// UserRepository stores users in memory with a unique-email guarantee.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[domainuser.ID]*domainuser.User
	byEmail map[string]domainuser.ID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[domainuser.ID]*domainuser.User),
		byEmail: make(map[string]domainuser.ID),
	}
}

func (r *UserRepository) ByID(ctx context.Context, id domainuser.ID) (*domainuser.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domainuser.ErrNotFound
	}
	return u, nil
}

func (r *UserRepository) ByEmail(ctx context.Context, email string) (*domainuser.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[domainuser.NormalizeEmail(email)]
	if !ok {
		return nil, domainuser.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *UserRepository) Save(ctx context.Context, u *domainuser.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	email := domainuser.NormalizeEmail(u.Email)
	if owner, ok := r.byEmail[email]; ok && owner != u.ID {
		return domainuser.ErrEmailAlreadyUsed
	}
	r.byID[u.ID] = u
	r.byEmail[email] = u.ID
	return nil
}

// SessionStore keeps opaque session tokens in memory.
type SessionStore struct {
	mu    sync.RWMutex
	items map[domainauth.Token]*domainauth.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{items: make(map[domainauth.Token]*domainauth.Session)}
}

func (s *SessionStore) ByToken(ctx context.Context, token domainauth.Token) (*domainauth.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.items[token]
	if !ok {
		return nil, domainauth.ErrSessionNotFound
	}
	return session, nil
}

func (s *SessionStore) Save(ctx context.Context, session *domainauth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[session.Token] = session
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, token domainauth.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, token)
	return nil
}

var (
	_ domainuser.Repository   = (*UserRepository)(nil)
	_ domainauth.SessionStore = (*SessionStore)(nil)
)
