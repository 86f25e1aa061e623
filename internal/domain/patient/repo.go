package patient

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a patient id has no record.
var ErrNotFound = errors.New("patient not found")

type Repository interface {
	List(ctx context.Context) ([]*Patient, error)
	GetByID(ctx context.Context, id string) (*Patient, error)
	Create(ctx context.Context, p *Patient) error
	Update(ctx context.Context, id string, params UpdateParams) (*Patient, error)
	// Delete removes the patient and cascades deletion of the patient's
	// notes and appointments. Deleting an absent id is a no-op.
	Delete(ctx context.Context, id string) error
}
