package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medisoap/clinic-server/internal/db"
	"github.com/medisoap/clinic-server/internal/logging"
	"github.com/medisoap/clinic-server/internal/schedule"
)

var specialties = []string{
	"Clínica Geral",
	"Cardiologia",
	"Dermatologia",
	"Pediatria",
	"Ortopedia",
	"Ginecologia",
	"Endocrinologia",
	"Psiquiatria",
}

func main() {
	log := logging.Setup(os.Getenv("APP_ENV"), "seed")
	log.Info().Msg("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal().Msg("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	bg := context.Background()
	profIDs, err := seedProfessionals(bg, pool, 12)
	if err != nil {
		log.Fatal().Err(err).Msg("seed professionals")
	}
	if err := seedWeeklySchedules(bg, pool, profIDs); err != nil {
		log.Fatal().Err(err).Msg("seed weekly schedules")
	}
	if err := seedBlocks(bg, pool, profIDs); err != nil {
		log.Fatal().Err(err).Msg("seed blocks")
	}
	patientIDs, err := seedPatients(bg, pool, 500)
	if err != nil {
		log.Fatal().Err(err).Msg("seed patients")
	}
	if err := seedAppointments(bg, pool, profIDs, patientIDs); err != nil {
		log.Fatal().Err(err).Msg("seed appointments")
	}

	log.Info().
		Int("professionals", len(profIDs)).
		Int("patients", len(patientIDs)).
		Msg("seed complete")
}

func seedProfessionals(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()
		name := "Dr(a). " + gofakeit.Name()
		spec := specialties[gofakeit.Number(0, len(specialties)-1)]
		crm := fmt.Sprintf("CRM-SP %06d", gofakeit.Number(100000, 999999))

		_, err := tx.Exec(ctx, `
			INSERT INTO professionals (id, name, specialty, crm, created_at, updated_at)
			VALUES ($1, $2, $3, $4, now(), now())
		`, id, name, spec, crm)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, tx.Commit(ctx)
}

func seedWeeklySchedules(ctx context.Context, pool *pgxpool.Pool, profIDs []uuid.UUID) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, profID := range profIDs {
		week := map[int][]schedule.Interval{}
		// Weekdays only; roughly half the professionals also work mornings
		// on Saturday.
		for day := 1; day <= 5; day++ {
			week[day] = []schedule.Interval{
				{Start: "08:00", End: "12:00"},
				{Start: "14:00", End: "18:00"},
			}
		}
		if gofakeit.Bool() {
			week[6] = []schedule.Interval{{Start: "08:00", End: "12:00"}}
		}

		raw, err := json.Marshal(week)
		if err != nil {
			return err
		}

		durations := []int{20, 30, 40, 60}
		_, err = tx.Exec(ctx, `
			INSERT INTO weekly_schedules (id, professional_id, slot_duration_minutes, week, created_at, updated_at)
			VALUES ($1, $2, $3, $4, now(), now())
		`, uuid.New(), profID, durations[gofakeit.Number(0, len(durations)-1)], raw)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// seedBlocks gives roughly a third of the professionals one upcoming
// absence, mixing all-day stretches with partial-day windows.
func seedBlocks(ctx context.Context, pool *pgxpool.Pool, profIDs []uuid.UUID) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	reasons := []string{"Congresso", "Férias", "Plantão hospitalar", "Reunião administrativa"}

	for _, profID := range profIDs {
		if gofakeit.Number(0, 2) != 0 {
			continue
		}

		startDate := time.Now().AddDate(0, 0, gofakeit.Number(3, 20))
		allDay := gofakeit.Bool()
		endDate := startDate
		var startTime, endTime *string
		if allDay {
			endDate = startDate.AddDate(0, 0, gofakeit.Number(0, 4))
		} else {
			st, et := "13:00", "18:00"
			startTime, endTime = &st, &et
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO schedule_blocks (id, professional_id, start_date, end_date, is_all_day, start_time, end_time, reason, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		`, uuid.New(), profID, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"),
			allDay, startTime, endTime, reasons[gofakeit.Number(0, len(reasons)-1)])
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func seedPatients(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	const batchSize = 100

	ids := make([]uuid.UUID, 0, count)
	for offset := 0; offset < count; offset += batchSize {
		end := offset + batchSize
		if end > count {
			end = count
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return nil, err
		}

		for i := offset; i < end; i++ {
			id := uuid.New()
			email := gofakeit.Email()
			birth := gofakeit.DateRange(
				time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC),
			).Format("2006-01-02")

			_, err := tx.Exec(ctx, `
				INSERT INTO patients (id, name, document, birth_date, sex, phone, email, address, allergies, notes, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, '', '', now(), now())
			`, id, gofakeit.Name(), randomCPF(), birth,
				gofakeit.RandomString([]string{"F", "M"}),
				gofakeit.Phone(), email, gofakeit.Address().Address)
			if err != nil {
				_ = tx.Rollback(ctx)
				return nil, err
			}
			ids = append(ids, id)
		}

		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}
	}

	return ids, nil
}

// seedAppointments books the next few weekdays solid enough to make the
// agenda screens interesting, one attendance-number sequence per day.
func seedAppointments(ctx context.Context, pool *pgxpool.Pool, profIDs, patientIDs []uuid.UUID) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	starts := []string{"08:00", "08:30", "09:00", "09:30", "10:00", "14:00", "14:30", "15:00"}

	for dayOffset := 0; dayOffset < 5; dayOffset++ {
		date := time.Now().AddDate(0, 0, dayOffset)
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		dateStr := date.Format("2006-01-02")

		number := 0
		for _, profID := range profIDs {
			for _, start := range starts {
				if gofakeit.Number(0, 2) != 0 {
					continue
				}
				number++
				patientID := patientIDs[gofakeit.Number(0, len(patientIDs)-1)]

				endMin, _ := schedule.ParseClock(start)
				endStr := schedule.FormatClock(endMin + 30)

				_, err := tx.Exec(ctx, `
					INSERT INTO appointments (id, professional_id, patient_id, date, start_time, end_time,
					                          status, attendance_number, contact_phone, notes, created_at, updated_at)
					VALUES ($1, $2, $3, $4, $5, $6, 'scheduled', $7, $8, '', now(), now())
				`, uuid.New(), profID, patientID, dateStr, start, endStr, number, gofakeit.Phone())
				if err != nil {
					return err
				}
			}
		}
	}

	return tx.Commit(ctx)
}

// randomCPF builds a valid CPF, check digits included, stored as 11 digits.
func randomCPF() string {
	d := make([]int, 11)
	for i := 0; i < 9; i++ {
		d[i] = gofakeit.Number(0, 9)
	}

	sum := 0
	for i := 0; i < 9; i++ {
		sum += d[i] * (10 - i)
	}
	d[9] = (sum * 10 % 11) % 10

	sum = 0
	for i := 0; i < 10; i++ {
		sum += d[i] * (11 - i)
	}
	d[10] = (sum * 10 % 11) % 10

	out := make([]byte, 11)
	for i, n := range d {
		out[i] = byte('0' + n)
	}
	return string(out)
}
