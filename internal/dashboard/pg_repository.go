package dashboard

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) CountByStatus(ctx context.Context, date string, professionalID *uuid.UUID) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT status, count(*)
		FROM appointments
		WHERE date = $1
		  AND ($2::uuid IS NULL OR professional_id = $2)
		GROUP BY status
	`, date, professionalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *PgRepository) CountTriagePending(ctx context.Context, date string, professionalID *uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*)
		FROM appointments a
		LEFT JOIN triage_records t ON t.appointment_id = a.id
		WHERE a.date = $1
		  AND a.status IN ('scheduled', 'confirmed')
		  AND t.id IS NULL
		  AND ($2::uuid IS NULL OR a.professional_id = $2)
	`, date, professionalID).Scan(&n)
	return n, err
}
