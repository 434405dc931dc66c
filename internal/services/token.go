package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jshn22/jira-clone/internal/database"
	"github.com/jshn22/jira-clone/internal/models"
)

// TokenService persists refresh token hashes. Raw refresh tokens never touch
// the database; callers hash them with HashToken first.
type TokenService struct {
	db *database.DB
}

func NewTokenService(db *database.DB) *TokenService {
	return &TokenService{db: db}
}

func (s *TokenService) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	_, err := s.db.Pool.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, tokenHash, expiresAt)
	return err
}

// Rotate atomically replaces a user's refresh token. The delete doubles as
// validation: when oldHash is unknown, expired, or belongs to another user,
// the rotation fails with models.ErrNotFound and nothing new is stored.
func (s *TokenService) Rotate(ctx context.Context, userID uuid.UUID, oldHash, newHash string, expiresAt time.Time) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		DELETE FROM refresh_tokens
		WHERE token_hash = $1 AND user_id = $2 AND expires_at > NOW()
	`, oldHash, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: refresh token", models.ErrNotFound)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, newHash, expiresAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// RevokeAllUserTokens invalidates every session of a user. Used when a
// refresh token is replayed after rotation, which means it leaked.
func (s *TokenService) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, userID)
	return err
}

func (s *TokenService) CleanupExpired(ctx context.Context) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at < NOW()`)
	return err
}
