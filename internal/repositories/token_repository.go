package repositories

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/juanqui-art/inmo-app-sub002/internal/models"
)

// TokenRepository stores refresh tokens hashed with SHA-256; the raw
// token only ever lives in the client's cookie or keychain.
type TokenRepository interface {
	Create(ctx context.Context, t *models.RefreshToken) error
	GetByRawToken(ctx context.Context, raw string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uuid.UUID, replacedBy *uuid.UUID) error
	RevokeAllByUserID(ctx context.Context, userID uuid.UUID) error
	CleanupExpired(ctx context.Context) (int64, error)
}

type tokenRepo struct {
	db DB
}

func NewTokenRepository(db DB) TokenRepository {
	return &tokenRepo{db: db}
}

func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func (r *tokenRepo) Create(ctx context.Context, t *models.RefreshToken) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO refresh_tokens (
            id, user_id, token_hash, client_id_type, client_id_value,
            expires_at, revoked, created_at
        ) VALUES ($1,$2,$3,$4,$5,$6,FALSE, NOW())
    `,
		t.ID,
		t.UserID,
		t.TokenHash,
		t.ClientIDType,
		t.ClientIDValue,
		t.ExpiresAt,
	)
	return err
}

func (r *tokenRepo) GetByRawToken(ctx context.Context, raw string) (*models.RefreshToken, error) {
	row := r.db.QueryRow(ctx, `
        SELECT id, user_id, token_hash, client_id_type, client_id_value,
               expires_at, revoked, created_at, replaced_by_token_id
        FROM refresh_tokens
        WHERE token_hash=$1
    `, HashToken(raw))

	var t models.RefreshToken
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.TokenHash,
		&t.ClientIDType,
		&t.ClientIDValue,
		&t.ExpiresAt,
		&t.Revoked,
		&t.CreatedAt,
		&t.ReplacedByTokenID,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *tokenRepo) Revoke(ctx context.Context, id uuid.UUID, replacedBy *uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE refresh_tokens SET revoked=TRUE, replaced_by_token_id=$1 WHERE id=$2`,
		replacedBy, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *tokenRepo) RevokeAllByUserID(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE refresh_tokens SET revoked=TRUE WHERE user_id=$1 AND NOT revoked`, userID)
	return err
}

func (r *tokenRepo) CleanupExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at < $1`, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
