package note

import (
	"context"
	"strconv"
	"testing"
	"time"
)

type mockRepo struct {
	notes  []*Note
	nextID int
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID string) ([]*Note, error) {
	out := []*Note{}
	for _, n := range m.notes {
		if n.PatientID == patientID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mockRepo) Create(_ context.Context, n *Note) error {
	m.nextID++
	n.ID = strconv.Itoa(m.nextID)
	n.CreatedAt = time.Now()
	m.notes = append(m.notes, n)
	return nil
}

func TestService_CreateDefaultsDomain(t *testing.T) {
	svc := NewService(&mockRepo{})
	n := &Note{PatientID: "p1", Text: "feeling well"}
	if err := svc.Create(context.Background(), n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Domain != DefaultDomain {
		t.Errorf("expected domain defaulted to %q, got %q", DefaultDomain, n.Domain)
	}
	if n.ID == "" || n.CreatedAt.IsZero() {
		t.Errorf("expected id and createdAt assigned: %+v", n)
	}
}

func TestService_CreateRequiresText(t *testing.T) {
	svc := NewService(&mockRepo{})
	if err := svc.Create(context.Background(), &Note{PatientID: "p1"}); err == nil {
		t.Error("expected error for missing text")
	}
	if err := svc.Create(context.Background(), &Note{PatientID: "p1", Text: "   "}); err == nil {
		t.Error("expected error for blank text")
	}
}

func TestService_ListByPatientFilters(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	svc.Create(ctx, &Note{PatientID: "p1", Text: "a"})
	svc.Create(ctx, &Note{PatientID: "p2", Text: "b"})
	svc.Create(ctx, &Note{PatientID: "p1", Text: "c"})

	notes, err := svc.ListByPatient(ctx, "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notes) != 2 {
		t.Errorf("expected 2 notes for p1, got %d", len(notes))
	}
}
