package schedule

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrScheduleNotFound = errors.New("weekly schedule not found")
	ErrBlockNotFound    = errors.New("schedule block not found")
)

// Repository covers the persistence of weekly schedules and blocks. The
// engine itself never touches storage; services fetch a snapshot through
// this interface and hand it over.
type Repository interface {
	GetWeeklySchedule(ctx context.Context, professionalID uuid.UUID) (*WeeklySchedule, error)
	UpsertWeeklySchedule(ctx context.Context, ws *WeeklySchedule) (*WeeklySchedule, error)

	ListBlocks(ctx context.Context, professionalID uuid.UUID) ([]Block, error)
	CreateBlock(ctx context.Context, b Block) (*Block, error)
	DeleteBlock(ctx context.Context, professionalID, blockID uuid.UUID) error
}
