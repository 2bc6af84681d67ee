package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/juanqui-art/inmo-app-sub002/internal/models"
)

type FavoriteRepository interface {
	// Upsert saves the favorite and reports whether a new row was created.
	Upsert(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)
	Delete(ctx context.Context, userID, propertyID uuid.UUID) error
	Exists(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Favorite, error)
	ListPropertyIDsByUserID(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	CountByPropertyID(ctx context.Context, propertyID uuid.UUID) (int, error)
}

type favoriteRepo struct {
	db DB
}

func NewFavoriteRepository(db DB) FavoriteRepository {
	return &favoriteRepo{db: db}
}

func (r *favoriteRepo) Upsert(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `
        INSERT INTO favorites (id, user_id, property_id, created_at)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (user_id, property_id) DO NOTHING
    `, uuid.New(), userID, propertyID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// Delete is idempotent. Removing a favorite that does not exist is not
// an error.
func (r *favoriteRepo) Delete(ctx context.Context, userID, propertyID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM favorites WHERE user_id=$1 AND property_id=$2`, userID, propertyID)
	return err
}

func (r *favoriteRepo) Exists(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id=$1 AND property_id=$2)`,
		userID, propertyID).Scan(&exists)
	return exists, err
}

func (r *favoriteRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Favorite, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, user_id, property_id, created_at
        FROM favorites
        WHERE user_id=$1
        ORDER BY created_at DESC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Favorite
	for rows.Next() {
		var f models.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.PropertyID, &f.CreatedAt); err != nil {
			if err == pgx.ErrNoRows {
				return nil, nil
			}
			return nil, err
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}

func (r *favoriteRepo) ListPropertyIDsByUserID(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT property_id FROM favorites WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *favoriteRepo) CountByPropertyID(ctx context.Context, propertyID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM favorites WHERE property_id=$1`, propertyID).Scan(&n)
	return n, err
}
