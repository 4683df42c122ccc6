package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCodeNotFound means no confirmation code is pending for the user: never
// issued, expired, or already consumed.
var ErrCodeNotFound = errors.New("confirmation code not found")

// ConfirmationCodeRepository keeps the emailed confirmation codes between
// signup and token exchange. Only a bcrypt hash of the code is stored; the
// TTL bounds how long a leaked code stays usable, and Delete makes a consumed
// code single-use.
type ConfirmationCodeRepository interface {
	Store(ctx context.Context, userID int64, codeHash string, ttl time.Duration) error
	Get(ctx context.Context, userID int64) (string, error)
	Delete(ctx context.Context, userID int64) error
}

type confirmationCodeRepository struct {
	rdb *redis.Client
}

func NewConfirmationCodeRepository(rdb *redis.Client) ConfirmationCodeRepository {
	return &confirmationCodeRepository{rdb: rdb}
}

func codeKey(userID int64) string {
	return fmt.Sprintf("confirmation_code:user:%d", userID)
}

func (r *confirmationCodeRepository) Store(ctx context.Context, userID int64, codeHash string, ttl time.Duration) error {
	if err := r.rdb.Set(ctx, codeKey(userID), codeHash, ttl).Err(); err != nil {
		return fmt.Errorf("store confirmation code: %w", err)
	}
	return nil
}

func (r *confirmationCodeRepository) Get(ctx context.Context, userID int64) (string, error) {
	hash, err := r.rdb.Get(ctx, codeKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCodeNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get confirmation code: %w", err)
	}
	return hash, nil
}

func (r *confirmationCodeRepository) Delete(ctx context.Context, userID int64) error {
	if err := r.rdb.Del(ctx, codeKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete confirmation code: %w", err)
	}
	return nil
}
