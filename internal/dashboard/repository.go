package dashboard

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// CountByStatus groups the date's appointments by status. A nil
	// professionalID means clinic-wide.
	CountByStatus(ctx context.Context, date string, professionalID *uuid.UUID) (map[string]int, error)

	// CountTriagePending counts the date's active appointments that have no
	// triage record yet.
	CountTriagePending(ctx context.Context, date string, professionalID *uuid.UUID) (int, error)
}
