package triage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const triageColumns = `id, appointment_id, patient_id, systolic_bp, diastolic_bp, heart_rate,
	respiratory_rate, temperature_c, spo2, weight_kg, height_cm, complaint, priority, created_at`

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func scanRecord(row pgx.Row) (*Record, error) {
	var r Record

	err := row.Scan(
		&r.ID,
		&r.AppointmentID,
		&r.PatientID,
		&r.SystolicBP,
		&r.DiastolicBP,
		&r.HeartRate,
		&r.RespiratoryRate,
		&r.TemperatureC,
		&r.SpO2,
		&r.WeightKg,
		&r.HeightCm,
		&r.Complaint,
		&r.Priority,
		&r.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (p *PgRepository) Create(ctx context.Context, r Record) (*Record, error) {
	row := p.pool.QueryRow(ctx, `
		INSERT INTO triage_records (`+triageColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now())
		RETURNING `+triageColumns+`
	`, uuid.New(), r.AppointmentID, r.PatientID, r.SystolicBP, r.DiastolicBP, r.HeartRate,
		r.RespiratoryRate, r.TemperatureC, r.SpO2, r.WeightKg, r.HeightCm, r.Complaint, r.Priority)

	return scanRecord(row)
}

func (p *PgRepository) GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*Record, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT `+triageColumns+`
		FROM triage_records
		WHERE appointment_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, appointmentID)
	return scanRecord(row)
}

func (p *PgRepository) ListByPatient(ctx context.Context, patientID uuid.UUID, limit int) ([]Record, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT `+triageColumns+`
		FROM triage_records
		WHERE patient_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, patientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *r)
	}
	return result, rows.Err()
}
