package patient

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/docassist/docassist/internal/platform/docstore"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.json")
	return NewRepo(docstore.Open(path, zerolog.Nop()))
}

func TestRepo_CreateAssignsUniqueIDs(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		p := &Patient{Name: "Ann", Age: 30, Gender: GenderOther, Domains: []string{}}
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ID == "" {
			t.Fatal("expected non-empty id")
		}
		if seen[p.ID] {
			t.Fatalf("duplicate id %s", p.ID)
		}
		seen[p.ID] = true
		if p.CreatedAt.IsZero() {
			t.Error("expected createdAt to be set")
		}
	}
}

func TestRepo_UpdateMergesAndPreservesIdentity(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := &Patient{Name: "Ann", Age: 30, Gender: GenderOther, Domains: []string{}}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	name := "Ann Updated"
	age := 31
	got, err := repo.Update(ctx, p.ID, UpdateParams{Name: &name, Age: &age})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Ann Updated" || got.Age != 31 {
		t.Errorf("merge failed: %+v", got)
	}
	if got.ID != p.ID {
		t.Error("id must not change on update")
	}
	if !got.CreatedAt.Equal(p.CreatedAt) {
		t.Error("createdAt must not change on update")
	}
	if got.Gender != GenderOther {
		t.Errorf("untouched field changed: %s", got.Gender)
	}
}

func TestRepo_UpdateNotFound(t *testing.T) {
	repo := newTestRepo(t)
	name := "X"
	_, err := repo.Update(context.Background(), "missing", UpdateParams{Name: &name})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_GetByIDNotFound(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_DeleteCascades(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	ann := &Patient{Name: "Ann", Age: 30, Gender: GenderOther, Domains: []string{}}
	bob := &Patient{Name: "Bob", Age: 40, Gender: GenderOther, Domains: []string{}}
	if err := repo.Create(ctx, ann); err != nil {
		t.Fatal(err)
	}
	if err := repo.Create(ctx, bob); err != nil {
		t.Fatal(err)
	}

	// Attach notes and appointments for both patients directly.
	err := repo.store.Update(func(doc *docstore.Document) error {
		doc.Notes = json.RawMessage(`[
			{"id":"n1","patientId":"` + ann.ID + `","text":"a"},
			{"id":"n2","patientId":"` + bob.ID + `","text":"b"}
		]`)
		doc.Appointments = json.RawMessage(`[
			{"id":"a1","patientId":"` + ann.ID + `","date":"2024-05-01T09:00:00Z"},
			{"id":"a2","patientId":"` + bob.ID + `","date":"2024-05-01T09:00:00Z"}
		]`)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := repo.Delete(ctx, ann.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := repo.GetByID(ctx, ann.ID); !errors.Is(err, ErrNotFound) {
		t.Error("expected patient removed")
	}
	if _, err := repo.GetByID(ctx, bob.ID); err != nil {
		t.Errorf("other patient must survive: %v", err)
	}

	err = repo.store.View(func(doc *docstore.Document) error {
		var notes, appts []struct {
			ID        string `json:"id"`
			PatientID string `json:"patientId"`
		}
		if err := json.Unmarshal(doc.Notes, &notes); err != nil {
			return err
		}
		if err := json.Unmarshal(doc.Appointments, &appts); err != nil {
			return err
		}
		if len(notes) != 1 || notes[0].ID != "n2" {
			t.Errorf("expected only Bob's note kept, got %+v", notes)
		}
		if len(appts) != 1 || appts[0].ID != "a2" {
			t.Errorf("expected only Bob's appointment kept, got %+v", appts)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestRepo_DeleteAbsentIsNoOp(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.Delete(context.Background(), "missing"); err != nil {
		t.Errorf("expected no-op, got %v", err)
	}
}
