package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/juanqui-art/inmo-app-sub002/internal/models"
)

type AppointmentRepository interface {
	Create(ctx context.Context, a *models.Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error)

	ListByBuyerID(ctx context.Context, buyerID uuid.UUID) ([]*models.Appointment, error)
	ListByAgentID(ctx context.Context, agentID uuid.UUID) ([]*models.Appointment, error)
	ListLiveByAgentBetween(ctx context.Context, agentID uuid.UUID, from, to time.Time) ([]*models.Appointment, error)

	// ExistsLiveAt reports whether either party already holds a live
	// appointment at the exact slot start.
	ExistsLiveAt(ctx context.Context, agentID, buyerID uuid.UUID, startsAt time.Time) (bool, error)
	ExistsByPropertyID(ctx context.Context, propertyID uuid.UUID) (bool, error)

	UpdateIfVersion(ctx context.Context, a *models.Appointment, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Appointment) error) error

	CompletePast(ctx context.Context, now time.Time) (int64, error)
	ListConfirmedStartingWithin(ctx context.Context, now time.Time, window time.Duration) ([]*models.Appointment, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID, at time.Time) error
}

type appointmentRepo struct {
	*BaseVersionedRepo[*models.Appointment]
	db DB
}

func NewAppointmentRepository(db DB) AppointmentRepository {
	r := &appointmentRepo{db: db}
	selectStmt := baseSelectAppointment() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanAppointment)
	return r
}

func (r *appointmentRepo) Create(ctx context.Context, a *models.Appointment) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO appointments (
            id, property_id, buyer_id, agent_id, starts_at, status, note,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7, NOW(), NOW(), 1)
    `,
		a.ID,
		a.PropertyID,
		a.BuyerID,
		a.AgentID,
		a.StartsAt,
		a.Status,
		a.Note,
	)
	return err
}

func (r *appointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *appointmentRepo) ListByBuyerID(ctx context.Context, buyerID uuid.UUID) ([]*models.Appointment, error) {
	rows, err := r.db.Query(ctx,
		baseSelectAppointment()+" WHERE buyer_id=$1 ORDER BY starts_at DESC", buyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAppointments(rows)
}

func (r *appointmentRepo) ListByAgentID(ctx context.Context, agentID uuid.UUID) ([]*models.Appointment, error) {
	rows, err := r.db.Query(ctx,
		baseSelectAppointment()+" WHERE agent_id=$1 ORDER BY starts_at DESC", agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAppointments(rows)
}

func (r *appointmentRepo) ListLiveByAgentBetween(
	ctx context.Context,
	agentID uuid.UUID,
	from, to time.Time,
) ([]*models.Appointment, error) {
	rows, err := r.db.Query(ctx, baseSelectAppointment()+`
        WHERE agent_id=$1
          AND status IN ($2, $3)
          AND starts_at >= $4 AND starts_at < $5
        ORDER BY starts_at
    `, agentID, models.AppointmentStatusPending, models.AppointmentStatusConfirmed, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAppointments(rows)
}

func (r *appointmentRepo) ExistsLiveAt(
	ctx context.Context,
	agentID, buyerID uuid.UUID,
	startsAt time.Time,
) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM appointments
            WHERE (agent_id=$1 OR buyer_id=$2)
              AND starts_at=$3
              AND status IN ($4, $5)
        )
    `, agentID, buyerID, startsAt,
		models.AppointmentStatusPending, models.AppointmentStatusConfirmed).Scan(&exists)
	return exists, err
}

func (r *appointmentRepo) ExistsByPropertyID(ctx context.Context, propertyID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM appointments WHERE property_id=$1)`, propertyID).Scan(&exists)
	return exists, err
}

func (r *appointmentRepo) UpdateIfVersion(
	ctx context.Context,
	a *models.Appointment,
	expected int64,
) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
        UPDATE appointments SET
            starts_at=$1, status=$2, note=$3, reminder_sent_at=$4, canceled_by=$5,
            updated_at=NOW(), row_version=row_version+1
        WHERE id=$6 AND row_version=$7
    `,
		a.StartsAt, a.Status, a.Note, a.ReminderSentAt, a.CanceledBy,
		a.ID, expected,
	)
}

func (r *appointmentRepo) UpdateWithRetry(
	ctx context.Context,
	id uuid.UUID,
	mutate func(*models.Appointment) error,
) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

// CompletePast flips live appointments whose slot has passed to COMPLETED.
// Run from cron; returns the number of rows touched.
func (r *appointmentRepo) CompletePast(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE appointments
        SET status=$1, updated_at=NOW(), row_version=row_version+1
        WHERE status IN ($2, $3) AND starts_at < $4
    `, models.AppointmentStatusCompleted,
		models.AppointmentStatusPending, models.AppointmentStatusConfirmed, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *appointmentRepo) ListConfirmedStartingWithin(
	ctx context.Context,
	now time.Time,
	window time.Duration,
) ([]*models.Appointment, error) {
	rows, err := r.db.Query(ctx, baseSelectAppointment()+`
        WHERE status=$1
          AND reminder_sent_at IS NULL
          AND starts_at > $2 AND starts_at <= $3
        ORDER BY starts_at
    `, models.AppointmentStatusConfirmed, now, now.Add(window))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAppointments(rows)
}

func (r *appointmentRepo) MarkReminderSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE appointments SET reminder_sent_at=$1, updated_at=NOW() WHERE id=$2`, at, id)
	return err
}

func baseSelectAppointment() string {
	return `
        SELECT
            id, property_id, buyer_id, agent_id, starts_at, status, note,
            reminder_sent_at, canceled_by,
            created_at, updated_at, row_version
        FROM appointments
    `
}

func scanAppointment(row pgx.Row) (*models.Appointment, error) {
	var a models.Appointment
	err := row.Scan(
		&a.ID,
		&a.PropertyID,
		&a.BuyerID,
		&a.AgentID,
		&a.StartsAt,
		&a.Status,
		&a.Note,
		&a.ReminderSentAt,
		&a.CanceledBy,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	a.StartsAt = a.StartsAt.UTC()
	return &a, nil
}

func collectAppointments(rows pgx.Rows) ([]*models.Appointment, error) {
	var out []*models.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
