package schedule

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service guards writes to the agenda configuration. Reads pass through;
// writes are validated so the engine never sees a malformed template.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) WeeklySchedule(ctx context.Context, professionalID uuid.UUID) (*WeeklySchedule, error) {
	return s.repo.GetWeeklySchedule(ctx, professionalID)
}

func (s *Service) SaveWeeklySchedule(ctx context.Context, ws WeeklySchedule) (*WeeklySchedule, error) {
	if ws.ProfessionalID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing professional id", ErrInvalidSchedule)
	}
	if ws.SlotDuration <= 0 {
		return nil, fmt.Errorf("%w: slot duration must be positive", ErrInvalidSchedule)
	}
	for day, intervals := range ws.Week {
		if day < 0 || day > 6 {
			return nil, fmt.Errorf("%w: weekday %d out of range", ErrInvalidSchedule, day)
		}
		for _, iv := range intervals {
			start, err := ParseClock(iv.Start)
			if err != nil {
				return nil, err
			}
			end, err := ParseClock(iv.End)
			if err != nil {
				return nil, err
			}
			if start >= end {
				return nil, fmt.Errorf("%w: interval %s-%s is empty", ErrInvalidSchedule, iv.Start, iv.End)
			}
		}
	}
	return s.repo.UpsertWeeklySchedule(ctx, &ws)
}

func (s *Service) Blocks(ctx context.Context, professionalID uuid.UUID) ([]Block, error) {
	return s.repo.ListBlocks(ctx, professionalID)
}

func (s *Service) CreateBlock(ctx context.Context, b Block) (*Block, error) {
	if b.ProfessionalID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing professional id", ErrInvalidSchedule)
	}
	if _, err := Weekday(b.StartDate); err != nil {
		return nil, err
	}
	if b.EndDate == "" {
		b.EndDate = b.StartDate
	}
	if _, err := Weekday(b.EndDate); err != nil {
		return nil, err
	}
	if b.EndDate < b.StartDate {
		return nil, fmt.Errorf("%w: block ends before it starts", ErrInvalidSchedule)
	}

	if !b.AllDay {
		start, err := ParseClock(b.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := ParseClock(b.EndTime)
		if err != nil {
			return nil, err
		}
		if start >= end {
			return nil, fmt.Errorf("%w: block window %s-%s is empty", ErrInvalidSchedule, b.StartTime, b.EndTime)
		}
	} else {
		b.StartTime, b.EndTime = "", ""
	}

	return s.repo.CreateBlock(ctx, b)
}

func (s *Service) DeleteBlock(ctx context.Context, professionalID, blockID uuid.UUID) error {
	return s.repo.DeleteBlock(ctx, professionalID, blockID)
}
