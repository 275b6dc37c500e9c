package document

import (
	"context"
	"errors"

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

func scanDocument(row pgx.Row) (*Document, error) {
	var d Document

	err := row.Scan(
		&d.ID,
		&d.PatientID,
		&d.ProfessionalID,
		&d.Type,
		&d.Content,
		&d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *PgRepository) Create(ctx context.Context, d Document) (*Document, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO documents (id, patient_id, professional_id, type, content, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING id, patient_id, professional_id, type, content, created_at
	`, uuid.New(), d.PatientID, d.ProfessionalID, d.Type, d.Content)

	return scanDocument(row)
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*Document, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, patient_id, professional_id, type, content, created_at
		FROM documents
		WHERE id = $1
	`, id)
	return scanDocument(row)
}

func (r *PgRepository) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]Document, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, patient_id, professional_id, type, content, created_at
		FROM documents
		WHERE patient_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, patientID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}
	return result, rows.Err()
}
