package clinician

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/guardia/guardia/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type clinicianRepoPG struct{ pool *pgxpool.Pool }

func NewClinicianRepoPG(pool *pgxpool.Pool) ClinicianRepository {
	return &clinicianRepoPG{pool: pool}
}

func (r *clinicianRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const clinicianCols = `id, user_id, first_name, last_name, role, hospital, service, active,
	created_at, updated_at`

func (r *clinicianRepoPG) scanClinician(row pgx.Row) (*Clinician, error) {
	var c Clinician
	err := row.Scan(&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Role, &c.Hospital,
		&c.Service, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

func (r *clinicianRepoPG) Create(ctx context.Context, c *Clinician) error {
	c.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO clinician (id, user_id, first_name, last_name, role, hospital, service, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		c.ID, c.UserID, c.FirstName, c.LastName, c.Role, c.Hospital, c.Service, c.Active)
	return err
}

func (r *clinicianRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Clinician, error) {
	c, err := r.scanClinician(r.conn(ctx).QueryRow(ctx,
		`SELECT `+clinicianCols+` FROM clinician WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *clinicianRepoPG) GetByUserID(ctx context.Context, userID string) (*Clinician, error) {
	c, err := r.scanClinician(r.conn(ctx).QueryRow(ctx,
		`SELECT `+clinicianCols+` FROM clinician WHERE user_id = $1 AND active`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *clinicianRepoPG) Update(ctx context.Context, c *Clinician) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE clinician SET first_name=$2, last_name=$3, role=$4, service=$5,
			active=$6, updated_at=NOW()
		WHERE id = $1`,
		c.ID, c.FirstName, c.LastName, c.Role, c.Service, c.Active)
	return err
}

func (r *clinicianRepoPG) ListByHospital(ctx context.Context, hospital string, limit, offset int) ([]*Clinician, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM clinician WHERE hospital = $1`, hospital).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+clinicianCols+` FROM clinician
		WHERE hospital = $1 ORDER BY last_name, first_name LIMIT $2 OFFSET $3`,
		hospital, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Clinician
	for rows.Next() {
		c, err := r.scanClinician(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, c)
	}
	return items, total, rows.Err()
}
