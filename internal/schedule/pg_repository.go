package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) GetWeeklySchedule(ctx context.Context, professionalID uuid.UUID) (*WeeklySchedule, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, professional_id, slot_duration_minutes, week, created_at, updated_at
		FROM weekly_schedules
		WHERE professional_id = $1
	`, professionalID)
	return scanWeeklySchedule(row)
}

func (r *PgRepository) UpsertWeeklySchedule(ctx context.Context, ws *WeeklySchedule) (*WeeklySchedule, error) {
	week, err := json.Marshal(ws.Week)
	if err != nil {
		return nil, fmt.Errorf("encode week: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO weekly_schedules (id, professional_id, slot_duration_minutes, week, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (professional_id) DO UPDATE
		SET slot_duration_minutes = EXCLUDED.slot_duration_minutes,
		    week = EXCLUDED.week,
		    updated_at = now()
		RETURNING id, professional_id, slot_duration_minutes, week, created_at, updated_at
	`, uuid.New(), ws.ProfessionalID, ws.SlotDuration, week)

	return scanWeeklySchedule(row)
}

func (r *PgRepository) ListBlocks(ctx context.Context, professionalID uuid.UUID) ([]Block, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, professional_id, start_date, end_date, is_all_day, start_time, end_time, reason, created_at, updated_at
		FROM schedule_blocks
		WHERE professional_id = $1
		ORDER BY start_date, start_time
	`, professionalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Block
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *b)
	}
	return result, rows.Err()
}

func (r *PgRepository) CreateBlock(ctx context.Context, b Block) (*Block, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO schedule_blocks (id, professional_id, start_date, end_date, is_all_day, start_time, end_time, reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		RETURNING id, professional_id, start_date, end_date, is_all_day, start_time, end_time, reason, created_at, updated_at
	`, uuid.New(), b.ProfessionalID, b.StartDate, b.EndDate, b.AllDay, nullIfEmpty(b.StartTime), nullIfEmpty(b.EndTime), b.Reason)

	return scanBlock(row)
}

func (r *PgRepository) DeleteBlock(ctx context.Context, professionalID, blockID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM schedule_blocks
		WHERE id = $1 AND professional_id = $2
	`, blockID, professionalID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBlockNotFound
	}
	return nil
}

// Helpers

func scanWeeklySchedule(row pgx.Row) (*WeeklySchedule, error) {
	var ws WeeklySchedule
	var week []byte

	err := row.Scan(
		&ws.ID,
		&ws.ProfessionalID,
		&ws.SlotDuration,
		&week,
		&ws.CreatedAt,
		&ws.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(week, &ws.Week); err != nil {
		return nil, fmt.Errorf("decode week: %w", err)
	}
	return &ws, nil
}

func scanBlock(row pgx.Row) (*Block, error) {
	var b Block
	var startTime, endTime *string

	err := row.Scan(
		&b.ID,
		&b.ProfessionalID,
		&b.StartDate,
		&b.EndDate,
		&b.AllDay,
		&startTime,
		&endTime,
		&b.Reason,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBlockNotFound
		}
		return nil, err
	}

	if startTime != nil {
		b.StartTime = *startTime
	}
	if endTime != nil {
		b.EndTime = *endTime
	}
	return &b, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
