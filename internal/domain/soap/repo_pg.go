package soap

import (
	"context"
	"errors"
	"time"

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

type noteRepoPG struct{ pool *pgxpool.Pool }

func NewNoteRepoPG(pool *pgxpool.Pool) NoteRepository {
	return &noteRepoPG{pool: pool}
}

func (r *noteRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const noteCols = `id, patient_id, hospital, author_id, subjective, objective, assessment, plan,
	bp, heart_rate, resp_rate, temperature, o2_sat, created_at`

func (r *noteRepoPG) scanNote(row pgx.Row) (*Note, error) {
	var n Note
	err := row.Scan(&n.ID, &n.PatientID, &n.Hospital, &n.AuthorID,
		&n.Subjective, &n.Objective, &n.Assessment, &n.Plan,
		&n.BP, &n.HeartRate, &n.RespRate, &n.Temperature, &n.O2Sat, &n.CreatedAt)
	return &n, err
}

func (r *noteRepoPG) Create(ctx context.Context, n *Note) error {
	n.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO soap_note (id, patient_id, hospital, author_id, subjective, objective,
			assessment, plan, bp, heart_rate, resp_rate, temperature, o2_sat)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		n.ID, n.PatientID, n.Hospital, n.AuthorID, n.Subjective, n.Objective,
		n.Assessment, n.Plan, n.BP, n.HeartRate, n.RespRate, n.Temperature, n.O2Sat)
	return err
}

func (r *noteRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Note, error) {
	n, err := r.scanNote(r.conn(ctx).QueryRow(ctx,
		`SELECT `+noteCols+` FROM soap_note WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return n, err
}

func (r *noteRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Note, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM soap_note WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+noteCols+` FROM soap_note
		WHERE patient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Note
	for rows.Next() {
		n, err := r.scanNote(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, n)
	}
	return items, total, rows.Err()
}

func (r *noteRepoPG) MostRecentSince(ctx context.Context, patientID uuid.UUID, since time.Time) (*Note, error) {
	n, err := r.scanNote(r.conn(ctx).QueryRow(ctx, `
		SELECT `+noteCols+` FROM soap_note
		WHERE patient_id = $1 AND created_at >= $2
		ORDER BY created_at DESC LIMIT 1`,
		patientID, since))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return n, err
}
