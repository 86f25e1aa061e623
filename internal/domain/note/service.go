package note

import (
	"context"
	"fmt"
	"strings"
)

type Service struct {
	notes Repository
}

func NewService(notes Repository) *Service {
	return &Service{notes: notes}
}

func (s *Service) ListByPatient(ctx context.Context, patientID string) ([]*Note, error) {
	return s.notes.ListByPatient(ctx, patientID)
}

func (s *Service) Create(ctx context.Context, n *Note) error {
	if strings.TrimSpace(n.Text) == "" {
		return fmt.Errorf("note text is required")
	}
	if n.Domain == "" {
		n.Domain = DefaultDomain
	}
	return s.notes.Create(ctx, n)
}
