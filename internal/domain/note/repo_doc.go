package note

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/docassist/docassist/internal/platform/docstore"
)

// Repo persists notes in the shared document store.
type Repo struct {
	store *docstore.Store
}

func NewRepo(store *docstore.Store) *Repo {
	return &Repo{store: store}
}

func decode(doc *docstore.Document) ([]*Note, error) {
	var notes []*Note
	if err := json.Unmarshal(doc.Notes, &notes); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}
	return notes, nil
}

func (r *Repo) ListByPatient(_ context.Context, patientID string) ([]*Note, error) {
	out := []*Note{}
	err := r.store.View(func(doc *docstore.Document) error {
		notes, err := decode(doc)
		if err != nil {
			return err
		}
		for _, n := range notes {
			if n.PatientID == patientID {
				out = append(out, n)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) Create(_ context.Context, n *Note) error {
	n.ID = uuid.NewString()
	n.CreatedAt = time.Now().UTC()
	return r.store.Update(func(doc *docstore.Document) error {
		notes, err := decode(doc)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(append(notes, n))
		if err != nil {
			return fmt.Errorf("encode notes: %w", err)
		}
		doc.Notes = raw
		return nil
	})
}
