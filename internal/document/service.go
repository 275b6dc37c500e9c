package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medisoap/clinic-server/internal/appointment"
	"github.com/medisoap/clinic-server/internal/patient"
)

var ErrInvalidDocument = errors.New("invalid document request")

type IssueRequest struct {
	PatientID       uuid.UUID
	ProfessionalID  uuid.UUID
	Type            Type
	Items           []string
	TargetSpecialty string
	DaysOff         int
	Observations    string
}

type Service struct {
	repo     Repository
	patients patient.Repository
	appts    appointment.Repository
	now      func() time.Time
}

func NewService(repo Repository, patients patient.Repository, appts appointment.Repository) *Service {
	return &Service{
		repo:     repo,
		patients: patients,
		appts:    appts,
		now:      time.Now,
	}
}

// Issue renders a document from the clinic's templates and stores it.
func (s *Service) Issue(ctx context.Context, req IssueRequest) (*Document, error) {
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidDocument, req.Type)
	}
	switch req.Type {
	case TypePrescription, TypeExamRequest:
		if len(req.Items) == 0 {
			return nil, fmt.Errorf("%w: %s needs at least one item", ErrInvalidDocument, req.Type)
		}
	case TypeReferral:
		if req.TargetSpecialty == "" {
			return nil, fmt.Errorf("%w: referral needs a target specialty", ErrInvalidDocument)
		}
	}

	pat, err := s.patients.GetByID(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}
	prof, err := s.appts.GetProfessionalByID(ctx, req.ProfessionalID)
	if err != nil {
		return nil, err
	}

	fields := Fields{
		PatientName:      pat.Name,
		PatientDocument:  formatCPF(pat.Document),
		ProfessionalName: prof.Name,
		CRM:              prof.CRM,
		Date:             s.now().Format("02/01/2006"),
		Items:            req.Items,
		TargetSpecialty:  req.TargetSpecialty,
		DaysOff:          req.DaysOff,
		Observations:     req.Observations,
	}
	if prof.Specialty != nil {
		fields.Specialty = *prof.Specialty
	}

	content, err := render(req.Type, fields)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, Document{
		PatientID:      req.PatientID,
		ProfessionalID: req.ProfessionalID,
		Type:           req.Type,
		Content:        content,
	})
	if err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Document, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]Document, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

// formatCPF prints a stored 11-digit document as 000.000.000-00; anything
// else is passed through as-is.
func formatCPF(digits string) string {
	if len(digits) != 11 {
		return digits
	}
	return digits[:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:]
}
