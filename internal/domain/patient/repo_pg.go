package patient

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

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

func (r *patientRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const patientCols = `id, hospital, mrn, first_name, last_name, birth_date, gender,
	service, bed_number, room, diagnosis, allergies, active, created_at, updated_at`

func (r *patientRepoPG) scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Hospital, &p.MRN, &p.FirstName, &p.LastName, &p.BirthDate, &p.Gender,
		&p.Service, &p.BedNumber, &p.Room, &p.Diagnosis, &p.Allergies, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient (id, hospital, mrn, first_name, last_name, birth_date, gender,
			service, bed_number, room, diagnosis, allergies, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		p.ID, p.Hospital, p.MRN, p.FirstName, p.LastName, p.BirthDate, p.Gender,
		p.Service, p.BedNumber, p.Room, p.Diagnosis, p.Allergies, p.Active)
	return err
}

func (r *patientRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := r.scanPatient(r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *patientRepoPG) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*Patient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+patientCols+` FROM patient WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]*Patient, len(ids))
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, err
		}
		byID[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Preserve the caller's ordering; missing ids are skipped.
	var items []*Patient
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			items = append(items, p)
		}
	}
	return items, nil
}

func (r *patientRepoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET first_name=$2, last_name=$3, birth_date=$4, gender=$5,
			service=$6, bed_number=$7, room=$8, diagnosis=$9, allergies=$10,
			active=$11, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.FirstName, p.LastName, p.BirthDate, p.Gender,
		p.Service, p.BedNumber, p.Room, p.Diagnosis, p.Allergies, p.Active)
	return err
}

func (r *patientRepoPG) ListByHospital(ctx context.Context, hospital string, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM patient WHERE hospital = $1`, hospital).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+patientCols+` FROM patient
		WHERE hospital = $1 ORDER BY last_name, first_name LIMIT $2 OFFSET $3`,
		hospital, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}
