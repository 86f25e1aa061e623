package appointment

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when an appointment id has no record.
	ErrNotFound = errors.New("appointment not found")
	// ErrConflict is returned when a patient already has an appointment on
	// the same calendar day.
	ErrConflict = errors.New("appointment conflict")
)

type Repository interface {
	List(ctx context.Context) ([]*Appointment, error)
	GetByID(ctx context.Context, id string) (*Appointment, error)
	// Create enforces the same-day rule: at most one appointment per
	// patient per calendar day.
	Create(ctx context.Context, a *Appointment) error
	// Update merges the provided fields and re-checks the same-day rule
	// against every other appointment.
	Update(ctx context.Context, id string, params UpdateParams) (*Appointment, error)
	// Delete removes the appointment; deleting an absent id is a no-op.
	Delete(ctx context.Context, id string) error
}
