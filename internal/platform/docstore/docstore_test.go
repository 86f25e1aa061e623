package docstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.json")
	return Open(path, zerolog.Nop()), path
}

func TestView_MissingFileYieldsEmptyDocument(t *testing.T) {
	s, path := newTestStore(t)

	err := s.View(func(doc *Document) error {
		if string(doc.Patients) != "[]" {
			t.Errorf("expected empty patients, got %s", doc.Patients)
		}
		if string(doc.Appointments) != "[]" {
			t.Errorf("expected empty appointments, got %s", doc.Appointments)
		}
		if string(doc.Notes) != "[]" {
			t.Errorf("expected empty notes, got %s", doc.Notes)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The empty document must have been persisted immediately.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected data file to exist after init: %v", err)
	}
}

func TestLoad_CorruptFileResets(t *testing.T) {
	s, path := newTestStore(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := s.View(func(doc *Document) error {
		if string(doc.Patients) != "[]" {
			t.Errorf("expected reset patients, got %s", doc.Patients)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Errorf("rewritten file is not valid JSON: %v", err)
	}
}

func TestLoad_BackfillsMissingCollections(t *testing.T) {
	s, path := newTestStore(t)
	if err := os.WriteFile(path, []byte(`{"patients":[{"id":"p1"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	err := s.View(func(doc *Document) error {
		if string(doc.Appointments) != "[]" {
			t.Errorf("expected backfilled appointments, got %s", doc.Appointments)
		}
		if string(doc.Notes) != "[]" {
			t.Errorf("expected backfilled notes, got %s", doc.Notes)
		}
		var patients []map[string]any
		if err := json.Unmarshal(doc.Patients, &patients); err != nil {
			return err
		}
		if len(patients) != 1 {
			t.Errorf("expected existing patients preserved, got %d", len(patients))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdate_PersistsAndRoundTrips(t *testing.T) {
	s, path := newTestStore(t)

	err := s.Update(func(doc *Document) error {
		doc.Patients = json.RawMessage(`[{"id":"p1","name":"Ann"}]`)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Reopen on the same path, simulating a process restart.
	reopened := Open(path, zerolog.Nop())
	err = reopened.View(func(doc *Document) error {
		var patients []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(doc.Patients, &patients); err != nil {
			return err
		}
		if len(patients) != 1 || patients[0].Name != "Ann" {
			t.Errorf("round-trip mismatch: %+v", patients)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdate_FailedFnDoesNotFlush(t *testing.T) {
	s, path := newTestStore(t)

	wantErr := os.ErrInvalid
	err := s.Update(func(doc *Document) error {
		return wantErr
	})
	if err != wantErr {
		t.Fatalf("expected fn error to propagate, got %v", err)
	}

	// The file only contains the initial empty document.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	if string(doc.Patients) != "[]" {
		t.Errorf("expected untouched file, got patients %s", doc.Patients)
	}
}

func TestFlush_LeavesNoTempFiles(t *testing.T) {
	s, path := newTestStore(t)
	if err := s.Update(func(doc *Document) error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() != filepath.Base(path) {
			t.Errorf("unexpected file left behind: %s", e.Name())
		}
	}
}

func TestFilterByPatient(t *testing.T) {
	col := json.RawMessage(`[
		{"id":"n1","patientId":"p1","text":"a"},
		{"id":"n2","patientId":"p2","text":"b"},
		{"id":"n3","patientId":"p1","text":"c"}
	]`)

	out, err := FilterByPatient(col, "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var kept []struct {
		ID        string `json:"id"`
		PatientID string `json:"patientId"`
	}
	if err := json.Unmarshal(out, &kept); err != nil {
		t.Fatal(err)
	}
	if len(kept) != 1 || kept[0].ID != "n2" {
		t.Errorf("expected only n2 kept, got %+v", kept)
	}
}

func TestFilterByPatient_PreservesUnknownFields(t *testing.T) {
	col := json.RawMessage(`[{"id":"n1","patientId":"p2","extra":"keep-me"}]`)

	out, err := FilterByPatient(col, "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var kept []map[string]any
	if err := json.Unmarshal(out, &kept); err != nil {
		t.Fatal(err)
	}
	if len(kept) != 1 || kept[0]["extra"] != "keep-me" {
		t.Errorf("expected unknown fields preserved, got %+v", kept)
	}
}
