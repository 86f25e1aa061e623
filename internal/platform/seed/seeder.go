// Package seed generates reproducible synthetic patients, appointments, and
// notes for demo environments and developer on-boarding. Data is written
// through the domain services so every invariant (defaults, the same-day
// appointment rule) holds for seeded records too.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/docassist/docassist/internal/domain/appointment"
	"github.com/docassist/docassist/internal/domain/note"
	"github.com/docassist/docassist/internal/domain/patient"
)

// Config controls the volume and shape of generated data.
type Config struct {
	PatientCount           int
	AppointmentsPerPatient int
	NotesPerPatient        int
	Seed                   int64
}

// DefaultConfig returns a small data set suitable for demos.
func DefaultConfig() Config {
	return Config{
		PatientCount:           10,
		AppointmentsPerPatient: 2,
		NotesPerPatient:        3,
	}
}

// Result summarizes a seed run.
type Result struct {
	Patients     int           `json:"patients"`
	Appointments int           `json:"appointments"`
	Notes        int           `json:"notes"`
	Duration     time.Duration `json:"duration"`
}

var (
	firstNames = []string{
		"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael",
		"Linda", "David", "Elizabeth", "William", "Barbara", "Richard",
		"Susan", "Joseph", "Jessica", "Thomas", "Sarah", "Daniel", "Karen",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
		"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
		"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	}
	specialties = []string{
		"Cardiology", "Dermatology", "Neurology", "Orthopedics", "Pediatrics",
		"General",
	}
	visitReasons = []string{
		"Routine check-up", "Follow-up visit", "Lab results review",
		"Vaccination", "Consultation", "Annual physical",
	}
	noteTexts = []string{
		"Patient reports feeling well overall.",
		"Blood pressure within normal range.",
		"Prescribed course completed, no side effects reported.",
		"Recommended increased physical activity.",
		"Mild seasonal allergy symptoms discussed.",
		"Scheduled follow-up labs.",
	}
)

// Seeder writes synthetic records through the domain services.
type Seeder struct {
	patients     *patient.Service
	appointments *appointment.Service
	notes        *note.Service
	logger       zerolog.Logger
}

func NewSeeder(patients *patient.Service, appointments *appointment.Service, notes *note.Service, logger zerolog.Logger) *Seeder {
	return &Seeder{patients: patients, appointments: appointments, notes: notes, logger: logger}
}

// Run generates the configured data set. The same Config.Seed produces the
// same sequence of names, reasons, and note texts.
func (s *Seeder) Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.PatientCount <= 0 {
		cfg = DefaultConfig()
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	start := time.Now()
	res := &Result{}

	for i := 0; i < cfg.PatientCount; i++ {
		p := s.makePatient(rng)
		if err := s.patients.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("seed patient: %w", err)
		}
		res.Patients++

		// Distinct day offsets keep seeded appointments conflict-free.
		for j := 0; j < cfg.AppointmentsPerPatient; j++ {
			when := time.Now().AddDate(0, 0, j*4+1+rng.Intn(3))
			a := &appointment.Appointment{
				PatientID: p.ID,
				Date:      time.Date(when.Year(), when.Month(), when.Day(), 9+rng.Intn(8), 0, 0, 0, time.Local),
				Reason:    visitReasons[rng.Intn(len(visitReasons))],
			}
			err := s.appointments.Create(ctx, a)
			if err != nil {
				return nil, fmt.Errorf("seed appointment: %w", err)
			}
			res.Appointments++
		}

		for j := 0; j < cfg.NotesPerPatient; j++ {
			n := &note.Note{
				PatientID: p.ID,
				Text:      noteTexts[rng.Intn(len(noteTexts))],
				Domain:    specialties[rng.Intn(len(specialties))],
			}
			if err := s.notes.Create(ctx, n); err != nil {
				return nil, fmt.Errorf("seed note: %w", err)
			}
			res.Notes++
		}
	}

	res.Duration = time.Since(start)
	s.logger.Info().
		Int("patients", res.Patients).
		Int("appointments", res.Appointments).
		Int("notes", res.Notes).
		Dur("duration", res.Duration).
		Msg("seed complete")
	return res, nil
}

func (s *Seeder) makePatient(rng *rand.Rand) *patient.Patient {
	first := firstNames[rng.Intn(len(firstNames))]
	last := lastNames[rng.Intn(len(lastNames))]
	gender := patient.GenderOther
	switch rng.Intn(3) {
	case 0:
		gender = patient.GenderMale
	case 1:
		gender = patient.GenderFemale
	}
	domains := []string{specialties[rng.Intn(len(specialties))]}
	return &patient.Patient{
		Name:    first + " " + last,
		Age:     18 + rng.Intn(70),
		Gender:  gender,
		Domains: domains,
		Contact: patient.Contact{
			Email: fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), rng.Intn(100)),
			Phone: fmt.Sprintf("555-%04d", rng.Intn(10000)),
		},
	}
}
