package appointment

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

// Helpers

func scanProfessional(row pgx.Row) (*Professional, error) {
	var p Professional
	var specialty *string

	err := row.Scan(
		&p.ID,
		&p.Name,
		&specialty,
		&p.CRM,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfessionalNotFound
		}
		return nil, err
	}

	p.Specialty = specialty
	return &p, nil
}

const appointmentSelect = `
	SELECT a.id, a.professional_id, a.patient_id, a.date, a.start_time, a.end_time,
	       a.status, a.attendance_number, a.contact_phone, a.notes,
	       a.created_at, a.updated_at, p.name
	FROM appointments a
	JOIN patients p ON p.id = a.patient_id
`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	var endTime *string

	err := row.Scan(
		&a.ID,
		&a.ProfessionalID,
		&a.PatientID,
		&a.Date,
		&a.StartTime,
		&endTime,
		&a.Status,
		&a.AttendanceNumber,
		&a.ContactPhone,
		&a.Notes,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.PatientName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	if endTime != nil {
		a.EndTime = *endTime
	}
	return &a, nil
}

// Interface methods

func (r *PgRepository) GetProfessionalByID(ctx context.Context, id uuid.UUID) (*Professional, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, specialty, crm, created_at, updated_at
		FROM professionals
		WHERE id = $1
	`, id)
	return scanProfessional(row)
}

func (r *PgRepository) ListProfessionals(ctx context.Context) ([]Professional, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, specialty, crm, created_at, updated_at
		FROM professionals
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Professional
	for rows.Next() {
		p, err := scanProfessional(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, appointmentSelect+`WHERE a.id = $1`, id)
	return scanAppointment(row)
}

func (r *PgRepository) ListByProfessionalDate(ctx context.Context, professionalID uuid.UUID, date string) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, appointmentSelect+`
		WHERE a.professional_id = $1 AND a.date = $2
		ORDER BY a.start_time
	`, professionalID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}
	return result, rows.Err()
}

func (r *PgRepository) Create(ctx context.Context, a Appointment) (*Appointment, error) {
	id := uuid.New()

	var endTime *string
	if a.EndTime != "" {
		endTime = &a.EndTime
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO appointments (id, professional_id, patient_id, date, start_time, end_time,
		                          status, attendance_number, contact_phone, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
	`, id, a.ProfessionalID, a.PatientID, a.Date, a.StartTime, endTime,
		StatusScheduled, a.AttendanceNumber, a.ContactPhone, a.Notes)
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *PgRepository) UpdateTimes(ctx context.Context, id uuid.UUID, date, startTime, endTime string) (*Appointment, error) {
	var end *string
	if endTime != "" {
		end = &endTime
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE appointments
		SET date = $2,
		    start_time = $3,
		    end_time = $4,
		    updated_at = now()
		WHERE id = $1
	`, id, date, startTime, end)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrAppointmentNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *PgRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) (*Appointment, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE appointments
		SET status = $2,
		    updated_at = now()
		WHERE id = $1
		  AND status = $3
	`, id, to, from)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrAppointmentNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *PgRepository) NextAttendanceNumber(ctx context.Context, date string) (int, error) {
	var next int
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(MAX(attendance_number), 0) + 1
		FROM appointments
		WHERE date = $1
	`, date).Scan(&next)
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (r *PgRepository) FindStaleScheduled(ctx context.Context, before string) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, appointmentSelect+`
		WHERE a.status = 'scheduled'
		  AND a.date < $1
	`, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}
	return result, rows.Err()
}
