package note

import "context"

type Repository interface {
	ListByPatient(ctx context.Context, patientID string) ([]*Note, error)
	Create(ctx context.Context, n *Note) error
}
