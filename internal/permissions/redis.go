package permissions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const blacklistIndexKey = "blacklist:users"

// Data is the stored form of a Ban.
type Data struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

type redisRepo struct {
	client       *redis.Client
	timeProvider TimeProvider
}

// NewRedis creates a Redis-backed blacklist repository.
func NewRedis(redisClient *redis.Client, timeProvider TimeProvider) Repository {
	return &redisRepo{
		client:       redisClient,
		timeProvider: timeProvider,
	}
}

func banKey(userID string) string {
	return fmt.Sprintf("blacklist:%s", userID)
}

func (r *redisRepo) Ban(ctx context.Context, ban *Ban) error {
	if ban == nil {
		return errors.New("ban cannot be nil")
	}
	if ban.UserID == "" {
		return errors.New("ban user id cannot be empty")
	}

	ban.CreatedAt = r.timeProvider.Now()

	data := Data{
		ID:        ban.ID,
		UserID:    ban.UserID,
		Reason:    ban.Reason,
		CreatedAt: ban.CreatedAt,
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal ban data: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, banKey(ban.UserID), string(jsonData), 0)
	pipe.SAdd(ctx, blacklistIndexKey, ban.UserID)
	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set ban in Redis: %w", err)
	}

	return nil
}

func (r *redisRepo) Unban(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.New("user id cannot be empty")
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, banKey(userID))
	pipe.SRem(ctx, blacklistIndexKey, userID)
	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete ban from Redis: %w", err)
	}

	return nil
}

func (r *redisRepo) IsBanned(ctx context.Context, userID string) (bool, error) {
	banned, err := r.client.SIsMember(ctx, blacklistIndexKey, userID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist in Redis: %w", err)
	}
	return banned, nil
}

func (r *redisRepo) ListBans(ctx context.Context) ([]*Ban, error) {
	userIDs, err := r.client.SMembers(ctx, blacklistIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get blacklist from Redis: %w", err)
	}

	bans := make([]*Ban, len(userIDs))

	g, ctx := errgroup.WithContext(ctx)
	for i, userID := range userIDs {
		i, userID := i, userID
		g.Go(func() error {
			ban, err := r.getBan(ctx, userID)
			if err != nil {
				return fmt.Errorf("failed to get ban %s: %w", userID, err)
			}
			bans[i] = ban
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return bans, nil
}

func (r *redisRepo) getBan(ctx context.Context, userID string) (*Ban, error) {
	jsonData, err := r.client.Get(ctx, banKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("ban not found")
		}
		return nil, fmt.Errorf("failed to get ban from Redis: %w", err)
	}

	var data Data
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ban data: %w", err)
	}

	return &Ban{
		ID:        data.ID,
		UserID:    data.UserID,
		Reason:    data.Reason,
		CreatedAt: data.CreatedAt,
	}, nil
}
