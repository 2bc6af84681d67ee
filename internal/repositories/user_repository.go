package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/juanqui-art/inmo-app-sub002/internal/models"
	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
	UpdateIfVersion(ctx context.Context, u *models.User, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.User) error) error
	Delete(ctx context.Context, id uuid.UUID) error

	ListByRole(ctx context.Context, role models.UserRoleType) ([]*models.User, error)
	ListAll(ctx context.Context, page, size int) ([]*models.User, int, error)
	CountByRole(ctx context.Context) (map[models.UserRoleType]int, error)
}

type userRepo struct {
	*BaseVersionedRepo[*models.User]
	db     DB
	encKey []byte
}

// NewUserRepository encrypts phone numbers and TOTP secrets at rest with
// the 32-byte AES-GCM key.
func NewUserRepository(db DB, key []byte) UserRepository {
	r := &userRepo{db: db, encKey: key}
	selectStmt := baseSelectUser() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, r.scanUser)
	return r
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	encPhone, encTOTP, err := r.encryptPII(u)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
        INSERT INTO users (
            id, email, phone_number, password_hash, totp_secret,
            first_name, last_name, role, agency_name, license_id,
            is_banned, created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,FALSE, NOW(), NOW(), 1)
    `,
		u.ID,
		u.Email,
		encPhone,
		u.PasswordHash,
		encTOTP,
		u.FirstName,
		u.LastName,
		u.Role,
		u.AgencyName,
		u.LicenseID,
	)
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRow(ctx, baseSelectUser()+" WHERE email=$1", email)
	return r.scanUser(row)
}

func (r *userRepo) Update(ctx context.Context, u *models.User) error {
	_, err := r.update(ctx, u, false, 0)
	return err
}

func (r *userRepo) UpdateIfVersion(ctx context.Context, u *models.User, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, u, true, expected)
}

func (r *userRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.User) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *userRepo) update(ctx context.Context, u *models.User, check bool, expected int64) (pgconn.CommandTag, error) {
	encPhone, encTOTP, err := r.encryptPII(u)
	if err != nil {
		return pgconn.CommandTag{}, err
	}

	sql := `
        UPDATE users SET
            email=$1, phone_number=$2, password_hash=$3, totp_secret=$4,
            first_name=$5, last_name=$6, role=$7, agency_name=$8, license_id=$9,
            is_banned=$10, banned_at=$11, updated_at=NOW()
    `
	args := []interface{}{
		u.Email, encPhone, u.PasswordHash, encTOTP,
		u.FirstName, u.LastName, u.Role, u.AgencyName, u.LicenseID,
		u.IsBanned, u.BannedAt,
	}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$12 AND row_version=$13`
		args = append(args, u.ID, expected)
	} else {
		sql += ` WHERE id=$12`
		args = append(args, u.ID)
	}

	return r.db.Exec(ctx, sql, args...)
}

func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepo) ListByRole(ctx context.Context, role models.UserRoleType) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, baseSelectUser()+" WHERE role=$1 ORDER BY created_at", role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(rows)
}

func (r *userRepo) ListAll(ctx context.Context, page, size int) ([]*models.User, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size
	rows, err := r.db.Query(ctx, baseSelectUser()+" ORDER BY created_at LIMIT $1 OFFSET $2", size, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users, err := r.collect(rows)
	return users, total, err
}

func (r *userRepo) CountByRole(ctx context.Context) (map[models.UserRoleType]int, error) {
	rows, err := r.db.Query(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[models.UserRoleType]int)
	for rows.Next() {
		var role models.UserRoleType
		var n int
		if err := rows.Scan(&role, &n); err != nil {
			return nil, err
		}
		out[role] = n
	}
	return out, rows.Err()
}

func (r *userRepo) collect(rows pgx.Rows) ([]*models.User, error) {
	var out []*models.User
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *userRepo) encryptPII(u *models.User) (string, string, error) {
	var encPhone, encTOTP string
	if u.PhoneNumber != "" {
		v, err := utils.Encrypt(r.encKey, u.PhoneNumber)
		if err != nil {
			return "", "", err
		}
		encPhone = v
	}
	if u.TOTPSecret != "" {
		v, err := utils.Encrypt(r.encKey, u.TOTPSecret)
		if err != nil {
			return "", "", err
		}
		encTOTP = v
	}
	return encPhone, encTOTP, nil
}

func baseSelectUser() string {
	return `
        SELECT
            id, email, phone_number, password_hash, totp_secret,
            first_name, last_name, role, agency_name, license_id,
            is_banned, banned_at,
            created_at, updated_at, row_version
        FROM users
    `
}

func (r *userRepo) scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	var encPhone, encTOTP string
	err := row.Scan(
		&u.ID,
		&u.Email,
		&encPhone,
		&u.PasswordHash,
		&encTOTP,
		&u.FirstName,
		&u.LastName,
		&u.Role,
		&u.AgencyName,
		&u.LicenseID,
		&u.IsBanned,
		&u.BannedAt,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if encPhone != "" {
		phone, dErr := utils.Decrypt(r.encKey, encPhone)
		if dErr != nil {
			return nil, dErr
		}
		u.PhoneNumber = phone
	}
	if encTOTP != "" {
		secret, dErr := utils.Decrypt(r.encKey, encTOTP)
		if dErr != nil {
			return nil, dErr
		}
		u.TOTPSecret = secret
	}
	return &u, nil
}
