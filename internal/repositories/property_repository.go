package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/juanqui-art/inmo-app-sub002/internal/models"
)

// SortOption enumerates the catalog sort orders exposed by search.
type SortOption string

const (
	SortNewest    SortOption = "newest"
	SortPriceAsc  SortOption = "price_asc"
	SortPriceDesc SortOption = "price_desc"
	SortAreaDesc  SortOption = "area_desc"
)

// PropertyFilter is the query object for catalog search. Nil fields are
// ignored. Keyword matches title/description/city case-insensitively;
// Features requires every listed tag to be present.
type PropertyFilter struct {
	City         *string
	Type         *models.PropertyType
	Transaction  *models.TransactionType
	Status       *models.PropertyStatusType
	AgentID      *uuid.UUID
	MinPrice     *float64
	MaxPrice     *float64
	MinBedrooms  *int
	MinBathrooms *int
	MinAreaM2    *float64
	Keyword      *string
	Features     []string

	Sort SortOption
	Page int
	Size int
}

type BoundingBox struct {
	NELat float64
	NELng float64
	SWLat float64
	SWLng float64
}

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	ListByAgentID(ctx context.Context, agentID uuid.UUID) ([]*models.Property, error)

	Update(ctx context.Context, p *models.Property) error
	UpdateIfVersion(ctx context.Context, p *models.Property, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Property) error) error
	Delete(ctx context.Context, id uuid.UUID) error

	Search(ctx context.Context, f PropertyFilter) ([]*models.Property, int, error)
	ListInBoundingBox(ctx context.Context, box BoundingBox, status models.PropertyStatusType, limit int) ([]*models.Property, error)
	CountByStatus(ctx context.Context) (map[models.PropertyStatusType]int, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type propertyRepo struct {
	*BaseVersionedRepo[*models.Property]
	db DB
}

func NewPropertyRepository(db DB) PropertyRepository {
	r := &propertyRepo{db: db}
	selectStmt := baseSelectProperty() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanProperty)
	return r
}

func (r *propertyRepo) Create(ctx context.Context, p *models.Property) error {
	features, err := marshalFeatures(p.Features)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
        INSERT INTO properties (
            id, agent_id, title, description, type, transaction, status,
            price, bedrooms, bathrooms, area_m2,
            address, city, state, zip_code, latitude, longitude,
            features, is_demo,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18::jsonb,$19, NOW(), NOW(), 1)
    `,
		p.ID,
		p.AgentID,
		p.Title,
		p.Description,
		p.Type,
		p.Transaction,
		p.Status,
		p.Price,
		p.Bedrooms,
		p.Bathrooms,
		p.AreaM2,
		p.Address,
		p.City,
		p.State,
		p.ZipCode,
		p.Latitude,
		p.Longitude,
		features,
		p.IsDemo,
	)
	return err
}

func (r *propertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *propertyRepo) ListByAgentID(ctx context.Context, agentID uuid.UUID) ([]*models.Property, error) {
	rows, err := r.db.Query(ctx, baseSelectProperty()+" WHERE agent_id=$1 ORDER BY created_at DESC", agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProperties(rows)
}

func (r *propertyRepo) Update(ctx context.Context, p *models.Property) error {
	_, err := r.update(ctx, p, false, 0)
	return err
}

func (r *propertyRepo) UpdateIfVersion(ctx context.Context, p *models.Property, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, p, true, expected)
}

func (r *propertyRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Property) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *propertyRepo) update(ctx context.Context, p *models.Property, check bool, expected int64) (pgconn.CommandTag, error) {
	features, err := marshalFeatures(p.Features)
	if err != nil {
		return pgconn.CommandTag{}, err
	}

	sql := `
        UPDATE properties SET
            title=$1, description=$2, type=$3, transaction=$4, status=$5,
            price=$6, bedrooms=$7, bathrooms=$8, area_m2=$9,
            address=$10, city=$11, state=$12, zip_code=$13,
            latitude=$14, longitude=$15, features=$16::jsonb, updated_at=NOW()
    `
	args := []interface{}{
		p.Title, p.Description, p.Type, p.Transaction, p.Status,
		p.Price, p.Bedrooms, p.Bathrooms, p.AreaM2,
		p.Address, p.City, p.State, p.ZipCode,
		p.Latitude, p.Longitude, features,
	}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$17 AND row_version=$18`
		args = append(args, p.ID, expected)
	} else {
		sql += ` WHERE id=$17`
		args = append(args, p.ID)
	}

	return r.db.Exec(ctx, sql, args...)
}

func (r *propertyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM properties WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Search runs a dynamic filter query with a window-function total so a
// single round-trip serves both the page and the count.
func (r *propertyRepo) Search(ctx context.Context, f PropertyFilter) ([]*models.Property, int, error) {
	where, args := BuildPropertyWhere(f)

	order := orderClause(f.Sort)
	limitIdx := len(args) + 1
	args = append(args, f.Size, (f.Page-1)*f.Size)

	sql := fmt.Sprintf(
		"%s, COUNT(*) OVER() AS total FROM properties %s %s LIMIT $%d OFFSET $%d",
		baseSelectPropertyColumns(), where, order, limitIdx, limitIdx+1,
	)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*models.Property
	var total int
	for rows.Next() {
		p, n, err := scanPropertyWithTotal(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
		total = n
	}
	return out, total, rows.Err()
}

func (r *propertyRepo) ListInBoundingBox(
	ctx context.Context,
	box BoundingBox,
	status models.PropertyStatusType,
	limit int,
) ([]*models.Property, error) {
	rows, err := r.db.Query(ctx, baseSelectProperty()+`
        WHERE status=$1
          AND latitude  BETWEEN $2 AND $3
          AND longitude BETWEEN $4 AND $5
        ORDER BY created_at DESC
        LIMIT $6
    `, status, box.SWLat, box.NELat, box.SWLng, box.NELng, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProperties(rows)
}

func (r *propertyRepo) CountByStatus(ctx context.Context) (map[models.PropertyStatusType]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM properties GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[models.PropertyStatusType]int)
	for rows.Next() {
		var st models.PropertyStatusType
		var n int
		if err := rows.Scan(&st, &n); err != nil {
			return nil, err
		}
		out[st] = n
	}
	return out, rows.Err()
}

/* ------------------------------------------------------------------
   SQL building
------------------------------------------------------------------ */

// BuildPropertyWhere renders the WHERE clause and positional args for a
// filter. Exported so the query shape is unit-testable without a database.
func BuildPropertyWhere(f PropertyFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	add := func(cond string, val interface{}) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Status != nil {
		add("status=$%d", *f.Status)
	}
	if f.AgentID != nil {
		add("agent_id=$%d", *f.AgentID)
	}
	if f.City != nil {
		add("city ILIKE $%d", *f.City)
	}
	if f.Type != nil {
		add("type=$%d", *f.Type)
	}
	if f.Transaction != nil {
		add("transaction=$%d", *f.Transaction)
	}
	if f.MinPrice != nil {
		add("price >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("price <= $%d", *f.MaxPrice)
	}
	if f.MinBedrooms != nil {
		add("bedrooms >= $%d", *f.MinBedrooms)
	}
	if f.MinBathrooms != nil {
		add("bathrooms >= $%d", *f.MinBathrooms)
	}
	if f.MinAreaM2 != nil {
		add("area_m2 >= $%d", *f.MinAreaM2)
	}
	if f.Keyword != nil && *f.Keyword != "" {
		args = append(args, "%"+*f.Keyword+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(title ILIKE $%d OR description ILIKE $%d OR city ILIKE $%d)", n, n, n))
	}
	if len(f.Features) > 0 {
		// jsonb containment: every requested tag must be present
		b, _ := json.Marshal(f.Features)
		args = append(args, string(b))
		conds = append(conds, fmt.Sprintf("features @> $%d::jsonb", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

func orderClause(s SortOption) string {
	switch s {
	case SortPriceAsc:
		return "ORDER BY price ASC, created_at DESC"
	case SortPriceDesc:
		return "ORDER BY price DESC, created_at DESC"
	case SortAreaDesc:
		return "ORDER BY area_m2 DESC, created_at DESC"
	default:
		return "ORDER BY created_at DESC"
	}
}

/* ------------------------------------------------------------------
   Scanning
------------------------------------------------------------------ */

func baseSelectPropertyColumns() string {
	return `
        SELECT
            id, agent_id, title, description, type, transaction, status,
            price, bedrooms, bathrooms, area_m2,
            address, city, state, zip_code, latitude, longitude,
            features::text, is_demo,
            created_at, updated_at, row_version
    `
}

func baseSelectProperty() string {
	return baseSelectPropertyColumns() + " FROM properties "
}

func marshalFeatures(features []string) (string, error) {
	if features == nil {
		features = []string{}
	}
	b, err := json.Marshal(features)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func scanProperty(row pgx.Row) (*models.Property, error) {
	var p models.Property
	var featuresJSON string
	err := row.Scan(
		&p.ID,
		&p.AgentID,
		&p.Title,
		&p.Description,
		&p.Type,
		&p.Transaction,
		&p.Status,
		&p.Price,
		&p.Bedrooms,
		&p.Bathrooms,
		&p.AreaM2,
		&p.Address,
		&p.City,
		&p.State,
		&p.ZipCode,
		&p.Latitude,
		&p.Longitude,
		&featuresJSON,
		&p.IsDemo,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if featuresJSON != "" {
		if err := json.Unmarshal([]byte(featuresJSON), &p.Features); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func scanPropertyWithTotal(row pgx.Row) (*models.Property, int, error) {
	var p models.Property
	var featuresJSON string
	var total int
	err := row.Scan(
		&p.ID,
		&p.AgentID,
		&p.Title,
		&p.Description,
		&p.Type,
		&p.Transaction,
		&p.Status,
		&p.Price,
		&p.Bedrooms,
		&p.Bathrooms,
		&p.AreaM2,
		&p.Address,
		&p.City,
		&p.State,
		&p.ZipCode,
		&p.Latitude,
		&p.Longitude,
		&featuresJSON,
		&p.IsDemo,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.RowVersion,
		&total,
	)
	if err != nil {
		return nil, 0, err
	}
	if featuresJSON != "" {
		if err := json.Unmarshal([]byte(featuresJSON), &p.Features); err != nil {
			return nil, 0, err
		}
	}
	return &p, total, nil
}

func collectProperties(rows pgx.Rows) ([]*models.Property, error) {
	var out []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
