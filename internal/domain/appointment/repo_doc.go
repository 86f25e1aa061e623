package appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/docassist/docassist/internal/platform/docstore"
)

// Repo persists appointments in the shared document store.
type Repo struct {
	store *docstore.Store
}

func NewRepo(store *docstore.Store) *Repo {
	return &Repo{store: store}
}

func decode(doc *docstore.Document) ([]*Appointment, error) {
	var appts []*Appointment
	if err := json.Unmarshal(doc.Appointments, &appts); err != nil {
		return nil, fmt.Errorf("decode appointments: %w", err)
	}
	return appts, nil
}

func encode(doc *docstore.Document, appts []*Appointment) error {
	raw, err := json.Marshal(appts)
	if err != nil {
		return fmt.Errorf("encode appointments: %w", err)
	}
	doc.Appointments = raw
	return nil
}

func (r *Repo) List(_ context.Context) ([]*Appointment, error) {
	var out []*Appointment
	err := r.store.View(func(doc *docstore.Document) error {
		appts, err := decode(doc)
		if err != nil {
			return err
		}
		out = appts
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*Appointment{}
	}
	return out, nil
}

func (r *Repo) GetByID(_ context.Context, id string) (*Appointment, error) {
	var out *Appointment
	err := r.store.View(func(doc *docstore.Document) error {
		appts, err := decode(doc)
		if err != nil {
			return err
		}
		for _, a := range appts {
			if a.ID == id {
				out = a
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

func (r *Repo) Create(_ context.Context, a *Appointment) error {
	return r.store.Update(func(doc *docstore.Document) error {
		appts, err := decode(doc)
		if err != nil {
			return err
		}
		if conflicts(appts, a.PatientID, a.Date, "") {
			return ErrConflict
		}
		a.ID = uuid.NewString()
		a.CreatedAt = time.Now().UTC()
		return encode(doc, append(appts, a))
	})
}

func (r *Repo) Update(_ context.Context, id string, params UpdateParams) (*Appointment, error) {
	var out *Appointment
	err := r.store.Update(func(doc *docstore.Document) error {
		appts, err := decode(doc)
		if err != nil {
			return err
		}
		for _, a := range appts {
			if a.ID != id {
				continue
			}
			merged := *a
			if params.PatientID != nil {
				merged.PatientID = *params.PatientID
			}
			if params.Date != nil {
				merged.Date = *params.Date
			}
			if params.Reason != nil {
				merged.Reason = *params.Reason
			}
			if conflicts(appts, merged.PatientID, merged.Date, id) {
				return ErrConflict
			}
			*a = merged
			out = a
			return encode(doc, appts)
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) Delete(_ context.Context, id string) error {
	return r.store.Update(func(doc *docstore.Document) error {
		appts, err := decode(doc)
		if err != nil {
			return err
		}
		kept := make([]*Appointment, 0, len(appts))
		for _, a := range appts {
			if a.ID != id {
				kept = append(kept, a)
			}
		}
		return encode(doc, kept)
	})
}

// conflicts reports whether any appointment other than excludeID falls on the
// same calendar day for the same patient. Linear scan; the first match wins.
func conflicts(appts []*Appointment, patientID string, date time.Time, excludeID string) bool {
	day := Day(date)
	for _, a := range appts {
		if a.ID == excludeID {
			continue
		}
		if a.PatientID == patientID && a.Day() == day {
			return true
		}
	}
	return false
}
