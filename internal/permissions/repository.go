package permissions

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks -source=repository.go

// Ban is one blacklist entry.
type Ban struct {
	ID        string
	UserID    string
	Reason    string
	CreatedAt time.Time
}

// Repository is the persistent blacklist store.
type Repository interface {
	// Ban adds a user to the blacklist
	Ban(ctx context.Context, ban *Ban) error

	// Unban removes a user from the blacklist
	Unban(ctx context.Context, userID string) error

	// IsBanned reports whether a user is on the blacklist
	IsBanned(ctx context.Context, userID string) (bool, error)

	// ListBans returns every blacklist entry
	ListBans(ctx context.Context) ([]*Ban, error)
}

// TimeProvider abstracts the clock so tests can pin record timestamps.
type TimeProvider interface {
	Now() time.Time
}

// SystemTime is the production TimeProvider.
type SystemTime struct{}

func (SystemTime) Now() time.Time {
	return time.Now().UTC()
}
