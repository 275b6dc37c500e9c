package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type fakeRepo struct {
	ws     *WeeklySchedule
	blocks []Block
}

func (f *fakeRepo) GetWeeklySchedule(_ context.Context, _ uuid.UUID) (*WeeklySchedule, error) {
	if f.ws == nil {
		return nil, ErrScheduleNotFound
	}
	return f.ws, nil
}

func (f *fakeRepo) UpsertWeeklySchedule(_ context.Context, ws *WeeklySchedule) (*WeeklySchedule, error) {
	f.ws = ws
	return ws, nil
}

func (f *fakeRepo) ListBlocks(_ context.Context, _ uuid.UUID) ([]Block, error) {
	return f.blocks, nil
}

func (f *fakeRepo) CreateBlock(_ context.Context, b Block) (*Block, error) {
	b.ID = uuid.New()
	f.blocks = append(f.blocks, b)
	return &b, nil
}

func (f *fakeRepo) DeleteBlock(_ context.Context, _, _ uuid.UUID) error {
	return nil
}

func TestSaveWeeklySchedule_Valid(t *testing.T) {
	svc := NewService(&fakeRepo{})

	ws, err := svc.SaveWeeklySchedule(context.Background(), WeeklySchedule{
		ProfessionalID: uuid.New(),
		SlotDuration:   30,
		Week: map[int][]Interval{
			1: {{Start: "09:00", End: "12:00"}, {Start: "14:00", End: "18:00"}},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ws.SlotDuration != 30 {
		t.Fatalf("slot duration = %d", ws.SlotDuration)
	}
}

func TestSaveWeeklySchedule_Rejections(t *testing.T) {
	svc := NewService(&fakeRepo{})
	profID := uuid.New()

	cases := []struct {
		name string
		ws   WeeklySchedule
	}{
		{"zero duration", WeeklySchedule{ProfessionalID: profID, SlotDuration: 0}},
		{"bad weekday", WeeklySchedule{ProfessionalID: profID, SlotDuration: 30, Week: map[int][]Interval{7: {{Start: "09:00", End: "10:00"}}}}},
		{"empty interval", WeeklySchedule{ProfessionalID: profID, SlotDuration: 30, Week: map[int][]Interval{1: {{Start: "10:00", End: "10:00"}}}}},
		{"inverted interval", WeeklySchedule{ProfessionalID: profID, SlotDuration: 30, Week: map[int][]Interval{1: {{Start: "12:00", End: "09:00"}}}}},
		{"malformed time", WeeklySchedule{ProfessionalID: profID, SlotDuration: 30, Week: map[int][]Interval{1: {{Start: "9am", End: "12:00"}}}}},
		{"no professional", WeeklySchedule{SlotDuration: 30}},
	}

	for _, tc := range cases {
		if _, err := svc.SaveWeeklySchedule(context.Background(), tc.ws); !errors.Is(err, ErrInvalidSchedule) {
			t.Errorf("%s: err = %v, want ErrInvalidSchedule", tc.name, err)
		}
	}
}

func TestCreateBlock_DefaultsEndDateAndStripsTimes(t *testing.T) {
	svc := NewService(&fakeRepo{})

	b, err := svc.CreateBlock(context.Background(), Block{
		ProfessionalID: uuid.New(),
		StartDate:      "2026-09-07",
		AllDay:         true,
		StartTime:      "09:00", // leftover from the form, must be dropped
		EndTime:        "10:00",
		Reason:         "Feriado",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.EndDate != "2026-09-07" {
		t.Errorf("end date = %q, want start date", b.EndDate)
	}
	if b.StartTime != "" || b.EndTime != "" {
		t.Errorf("all-day block kept a time window: %q-%q", b.StartTime, b.EndTime)
	}
}

func TestCreateBlock_Rejections(t *testing.T) {
	svc := NewService(&fakeRepo{})
	profID := uuid.New()

	cases := []struct {
		name string
		b    Block
	}{
		{"inverted range", Block{ProfessionalID: profID, StartDate: "2026-09-08", EndDate: "2026-09-07", AllDay: true}},
		{"timed without window", Block{ProfessionalID: profID, StartDate: "2026-09-07"}},
		{"empty window", Block{ProfessionalID: profID, StartDate: "2026-09-07", StartTime: "10:00", EndTime: "10:00"}},
		{"bad date", Block{ProfessionalID: profID, StartDate: "07/09/2026", AllDay: true}},
	}

	for _, tc := range cases {
		if _, err := svc.CreateBlock(context.Background(), tc.b); !errors.Is(err, ErrInvalidSchedule) {
			t.Errorf("%s: err = %v, want ErrInvalidSchedule", tc.name, err)
		}
	}
}
