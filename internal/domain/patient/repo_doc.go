package patient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/docassist/docassist/internal/platform/docstore"
)

// Repo persists patients in the shared document store.
type Repo struct {
	store *docstore.Store
}

func NewRepo(store *docstore.Store) *Repo {
	return &Repo{store: store}
}

func decode(doc *docstore.Document) ([]*Patient, error) {
	var patients []*Patient
	if err := json.Unmarshal(doc.Patients, &patients); err != nil {
		return nil, fmt.Errorf("decode patients: %w", err)
	}
	return patients, nil
}

func encode(doc *docstore.Document, patients []*Patient) error {
	raw, err := json.Marshal(patients)
	if err != nil {
		return fmt.Errorf("encode patients: %w", err)
	}
	doc.Patients = raw
	return nil
}

func (r *Repo) List(_ context.Context) ([]*Patient, error) {
	var out []*Patient
	err := r.store.View(func(doc *docstore.Document) error {
		patients, err := decode(doc)
		if err != nil {
			return err
		}
		out = patients
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*Patient{}
	}
	return out, nil
}

func (r *Repo) GetByID(_ context.Context, id string) (*Patient, error) {
	var out *Patient
	err := r.store.View(func(doc *docstore.Document) error {
		patients, err := decode(doc)
		if err != nil {
			return err
		}
		for _, p := range patients {
			if p.ID == id {
				out = p
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	return r.store.Update(func(doc *docstore.Document) error {
		patients, err := decode(doc)
		if err != nil {
			return err
		}
		return encode(doc, append(patients, p))
	})
}

func (r *Repo) Update(_ context.Context, id string, params UpdateParams) (*Patient, error) {
	var out *Patient
	err := r.store.Update(func(doc *docstore.Document) error {
		patients, err := decode(doc)
		if err != nil {
			return err
		}
		for _, p := range patients {
			if p.ID != id {
				continue
			}
			merge(p, params)
			out = p
			return encode(doc, patients)
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// merge replaces stored fields with the provided ones, keeping id and
// createdAt untouched.
func merge(p *Patient, params UpdateParams) {
	if params.Name != nil {
		p.Name = *params.Name
	}
	if params.Age != nil {
		p.Age = *params.Age
	}
	if params.Gender != nil {
		p.Gender = *params.Gender
	}
	if params.Domains != nil {
		p.Domains = *params.Domains
	}
	if params.Contact != nil {
		p.Contact = *params.Contact
	}
	if params.Notes != nil {
		p.Notes = *params.Notes
	}
}

func (r *Repo) Delete(_ context.Context, id string) error {
	return r.store.Update(func(doc *docstore.Document) error {
		patients, err := decode(doc)
		if err != nil {
			return err
		}
		kept := make([]*Patient, 0, len(patients))
		for _, p := range patients {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		if err := encode(doc, kept); err != nil {
			return err
		}
		if doc.Notes, err = docstore.FilterByPatient(doc.Notes, id); err != nil {
			return err
		}
		if doc.Appointments, err = docstore.FilterByPatient(doc.Appointments, id); err != nil {
			return err
		}
		return nil
	})
}
