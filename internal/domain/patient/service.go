package patient

import (
	"context"
	"fmt"
	"strings"
)

type Service struct {
	patients Repository
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients}
}

func (s *Service) List(ctx context.Context) ([]*Patient, error) {
	return s.patients.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if p.Age <= 0 {
		return fmt.Errorf("age is required")
	}
	if p.Gender == "" {
		p.Gender = GenderOther
	}
	if !validGenders[p.Gender] {
		return fmt.Errorf("invalid gender: %s", p.Gender)
	}
	if p.Domains == nil {
		p.Domains = []string{}
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*Patient, error) {
	if params.Name != nil && strings.TrimSpace(*params.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	if params.Age != nil && *params.Age <= 0 {
		return nil, fmt.Errorf("age is required")
	}
	if params.Gender != nil && !validGenders[*params.Gender] {
		return nil, fmt.Errorf("invalid gender: %s", *params.Gender)
	}
	return s.patients.Update(ctx, id, params)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.patients.Delete(ctx, id)
}

// Search scans all patients for a case-insensitive match on name or contact
// email. An empty query matches nothing.
func (s *Service) Search(ctx context.Context, query string) ([]*Patient, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []*Patient{}, nil
	}
	patients, err := s.patients.List(ctx)
	if err != nil {
		return nil, err
	}
	results := []*Patient{}
	for _, p := range patients {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Contact.Email), q) {
			results = append(results, p)
		}
	}
	return results, nil
}
