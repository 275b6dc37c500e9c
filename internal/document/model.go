package document

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypePrescription Type = "prescription"
	TypeReferral     Type = "referral"
	TypeExamRequest  Type = "exam_request"
	TypeCertificate  Type = "certificate"
)

func (t Type) Valid() bool {
	switch t {
	case TypePrescription, TypeReferral, TypeExamRequest, TypeCertificate:
		return true
	}
	return false
}

// Document is a generated, stored plain-text medical document. Printing
// and PDF export happen elsewhere; this service only produces the text.
type Document struct {
	ID             uuid.UUID
	PatientID      uuid.UUID
	ProfessionalID uuid.UUID
	Type           Type
	Content        string
	CreatedAt      time.Time
}
