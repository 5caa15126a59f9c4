package task

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

type taskRepoPG struct{ pool *pgxpool.Pool }

func NewTaskRepoPG(pool *pgxpool.Pool) TaskRepository {
	return &taskRepoPG{pool: pool}
}

func (r *taskRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const taskCols = `t.id, t.hospital, t.patient_id, t.title, t.description, t.status, t.priority,
	t.due_date, t.assigned_to_id, t.created_by_id, t.completed_at, t.created_at, t.updated_at`

func (r *taskRepoPG) scanTask(row pgx.Row) (*Task, error) {
	var t Task
	err := row.Scan(&t.ID, &t.Hospital, &t.PatientID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.DueDate, &t.AssignedToID, &t.CreatedByID, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt)
	return &t, err
}

func (r *taskRepoPG) Create(ctx context.Context, t *Task) error {
	t.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO task (id, hospital, patient_id, title, description, status, priority,
			due_date, assigned_to_id, created_by_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		t.ID, t.Hospital, t.PatientID, t.Title, t.Description, t.Status, t.Priority,
		t.DueDate, t.AssignedToID, t.CreatedByID)
	return err
}

func (r *taskRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	t, err := r.scanTask(r.conn(ctx).QueryRow(ctx,
		`SELECT `+taskCols+` FROM task t WHERE t.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return t, err
}

func (r *taskRepoPG) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*Task, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+taskCols+`, c.first_name, c.last_name
		FROM task t
		LEFT JOIN clinician c ON c.id = t.assigned_to_id
		WHERE t.id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]*Task, len(ids))
	for rows.Next() {
		var t Task
		var firstName, lastName *string
		err := rows.Scan(&t.ID, &t.Hospital, &t.PatientID, &t.Title, &t.Description, &t.Status, &t.Priority,
			&t.DueDate, &t.AssignedToID, &t.CreatedByID, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt,
			&firstName, &lastName)
		if err != nil {
			return nil, err
		}
		if firstName != nil && lastName != nil {
			name := *firstName + " " + *lastName
			t.AssignedToName = &name
		}
		byID[t.ID] = &t
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var items []*Task
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			items = append(items, t)
		}
	}
	return items, nil
}

func (r *taskRepoPG) Update(ctx context.Context, t *Task) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE task SET title=$2, description=$3, status=$4, priority=$5,
			due_date=$6, assigned_to_id=$7, completed_at=$8, updated_at=NOW()
		WHERE id = $1`,
		t.ID, t.Title, t.Description, t.Status, t.Priority,
		t.DueDate, t.AssignedToID, t.CompletedAt)
	return err
}

func (r *taskRepoPG) ListOpenByPatient(ctx context.Context, patientID uuid.UUID, hospital string) ([]*Task, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+taskCols+` FROM task t
		WHERE t.patient_id = $1 AND t.hospital = $2
		  AND t.status IN ('pending', 'in_progress')
		ORDER BY t.created_at`,
		patientID, hospital)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Task
	for rows.Next() {
		t, err := r.scanTask(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func (r *taskRepoPG) ListByHospital(ctx context.Context, hospital string, limit, offset int) ([]*Task, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM task WHERE hospital = $1`, hospital).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+taskCols+` FROM task t
		WHERE t.hospital = $1 ORDER BY t.created_at DESC LIMIT $2 OFFSET $3`,
		hospital, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Task
	for rows.Next() {
		t, err := r.scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, t)
	}
	return items, total, rows.Err()
}
