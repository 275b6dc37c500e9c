package patient

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	ID        uuid.UUID
	Name      string
	Document  string // national ID (CPF), digits only
	BirthDate string // YYYY-MM-DD
	Sex       string
	Phone     string
	Email     *string
	Address   string
	Allergies string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
