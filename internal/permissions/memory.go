package permissions

import (
	"context"
	"errors"
	"sync"
)

// memoryRepo is an in-memory Repository used when no Redis is configured.
type memoryRepo struct {
	mu           sync.RWMutex
	bans         map[string]*Ban
	timeProvider TimeProvider
}

// NewInMemory creates an in-memory blacklist repository.
func NewInMemory(timeProvider TimeProvider) Repository {
	return &memoryRepo{
		bans:         make(map[string]*Ban),
		timeProvider: timeProvider,
	}
}

func (r *memoryRepo) Ban(_ context.Context, ban *Ban) error {
	if ban == nil {
		return errors.New("ban cannot be nil")
	}
	if ban.UserID == "" {
		return errors.New("ban user id cannot be empty")
	}

	ban.CreatedAt = r.timeProvider.Now()

	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *ban
	r.bans[ban.UserID] = &stored
	return nil
}

func (r *memoryRepo) Unban(_ context.Context, userID string) error {
	if userID == "" {
		return errors.New("user id cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bans, userID)
	return nil
}

func (r *memoryRepo) IsBanned(_ context.Context, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, banned := r.bans[userID]
	return banned, nil
}

func (r *memoryRepo) ListBans(_ context.Context) ([]*Ban, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bans := make([]*Ban, 0, len(r.bans))
	for _, ban := range r.bans {
		copied := *ban
		bans = append(bans, &copied)
	}
	return bans, nil
}
