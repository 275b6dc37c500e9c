package patient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidPatient = errors.New("invalid patient data")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Search(ctx context.Context, term string, limit, offset int) ([]Patient, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.Search(ctx, strings.TrimSpace(term), limit, offset)
}

func (s *Service) Create(ctx context.Context, p Patient) (*Patient, error) {
	if err := normalize(&p); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, p Patient) (*Patient, error) {
	if p.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidPatient)
	}
	if err := normalize(&p); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("update patient: %w", err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func normalize(p *Patient) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPatient)
	}

	// Documents arrive formatted (000.000.000-00); store digits only.
	var digits strings.Builder
	for _, c := range p.Document {
		if c >= '0' && c <= '9' {
			digits.WriteRune(c)
		}
	}
	p.Document = digits.String()

	return nil
}
