package handover

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
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

type handoverRepoPG struct{ pool *pgxpool.Pool }

func NewHandoverRepoPG(pool *pgxpool.Pool) HandoverRepository {
	return &handoverRepoPG{pool: pool}
}

func (r *handoverRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const handoverCols = `id, hospital, service, shift_type, shift_date, start_time, end_time,
	created_by, status, included_patient_ids, included_task_ids,
	checklist_items, general_notes, generated_summary, critical_patients,
	finalized_at, version, created_at, updated_at`

func (r *handoverRepoPG) scanHandover(row pgx.Row) (*Handover, error) {
	var h Handover
	var checklist, critical []byte
	err := row.Scan(&h.ID, &h.Hospital, &h.Service, &h.ShiftType, &h.ShiftDate, &h.StartTime, &h.EndTime,
		&h.CreatedBy, &h.Status, &h.IncludedPatientIDs, &h.IncludedTaskIDs,
		&checklist, &h.GeneralNotes, &h.GeneratedSummary, &critical,
		&h.FinalizedAt, &h.Version, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(checklist) > 0 {
		if err := json.Unmarshal(checklist, &h.ChecklistItems); err != nil {
			return nil, fmt.Errorf("decode checklist items: %w", err)
		}
	}
	if len(critical) > 0 {
		if err := json.Unmarshal(critical, &h.CriticalPatients); err != nil {
			return nil, fmt.Errorf("decode critical patients: %w", err)
		}
	}
	return &h, nil
}

// uniqueViolation is the Postgres error code raised by the partial unique
// index guarding one open handover per shift slot.
const uniqueViolation = "23505"

func (r *handoverRepoPG) Create(ctx context.Context, h *Handover) error {
	h.ID = uuid.New()
	checklist, err := json.Marshal(h.ChecklistItems)
	if err != nil {
		return fmt.Errorf("encode checklist items: %w", err)
	}
	_, err = r.conn(ctx).Exec(ctx, `
		INSERT INTO handover (id, hospital, service, shift_type, shift_date, start_time, end_time,
			created_by, status, included_patient_ids, included_task_ids,
			checklist_items, general_notes, version)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,0)`,
		h.ID, h.Hospital, h.Service, h.ShiftType, h.ShiftDate, h.StartTime, h.EndTime,
		h.CreatedBy, h.Status, h.IncludedPatientIDs, h.IncludedTaskIDs,
		checklist, h.GeneralNotes)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return duplicateError("an open handover already exists for %s/%s %s %s",
				h.Hospital, h.Service, h.ShiftType, h.ShiftDate.Format(shiftDateLayout))
		}
		return err
	}
	return nil
}

func (r *handoverRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Handover, error) {
	h, err := r.scanHandover(r.conn(ctx).QueryRow(ctx,
		`SELECT `+handoverCols+` FROM handover WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return h, err
}

func (r *handoverRepoPG) FindOpenBySlot(ctx context.Context, hospital, service string, shiftType ShiftType, shiftDate time.Time) (*Handover, error) {
	h, err := r.scanHandover(r.conn(ctx).QueryRow(ctx, `
		SELECT `+handoverCols+` FROM handover
		WHERE hospital = $1 AND service = $2 AND shift_type = $3 AND shift_date = $4
		  AND status IN ('draft', 'in_progress')`,
		hospital, service, shiftType, shiftDate))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return h, err
}

func (r *handoverRepoPG) UpdateOpen(ctx context.Context, h *Handover) (bool, error) {
	checklist, err := json.Marshal(h.ChecklistItems)
	if err != nil {
		return false, fmt.Errorf("encode checklist items: %w", err)
	}
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE handover SET included_patient_ids=$2, included_task_ids=$3,
			checklist_items=$4, general_notes=$5, status=$6, updated_at=NOW()
		WHERE id = $1 AND status <> 'finalized'`,
		h.ID, h.IncludedPatientIDs, h.IncludedTaskIDs,
		checklist, h.GeneralNotes, h.Status)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *handoverRepoPG) Finalize(ctx context.Context, id uuid.UUID, summary string, critical []CriticalPatientInfo, finalizedAt time.Time) (bool, error) {
	criticalJSON, err := json.Marshal(critical)
	if err != nil {
		return false, fmt.Errorf("encode critical patients: %w", err)
	}
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE handover SET status='finalized', generated_summary=$2,
			critical_patients=$3, finalized_at=$4, version=version+1, updated_at=NOW()
		WHERE id = $1 AND status <> 'finalized'`,
		id, summary, criticalJSON, finalizedAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *handoverRepoPG) ListByHospital(ctx context.Context, hospital string, limit, offset int) ([]*Handover, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM handover WHERE hospital = $1`, hospital).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+handoverCols+` FROM handover
		WHERE hospital = $1
		ORDER BY shift_date DESC, created_at DESC
		LIMIT $2 OFFSET $3`,
		hospital, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Handover
	for rows.Next() {
		h, err := r.scanHandover(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, h)
	}
	return items, total, rows.Err()
}
