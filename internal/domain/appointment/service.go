package appointment

import (
	"context"
	"fmt"
)

type Service struct {
	appointments Repository
}

func NewService(appointments Repository) *Service {
	return &Service{appointments: appointments}
}

func (s *Service) List(ctx context.Context) ([]*Appointment, error) {
	return s.appointments.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, a *Appointment) error {
	if a.PatientID == "" {
		return fmt.Errorf("patientId is required")
	}
	if a.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	return s.appointments.Create(ctx, a)
}

func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*Appointment, error) {
	if params.PatientID != nil && *params.PatientID == "" {
		return nil, fmt.Errorf("patientId is required")
	}
	if params.Date != nil && params.Date.IsZero() {
		return nil, fmt.Errorf("date is required")
	}
	return s.appointments.Update(ctx, id, params)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.appointments.Delete(ctx, id)
}
