package note

import "time"

// DefaultDomain categorizes notes created without an explicit domain.
const DefaultDomain = "General"

// Note is a free-text clinical note attached to a patient. Notes are
// append-only: there is no update or delete operation.
type Note struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patientId"`
	Text      string    `json:"text"`
	Domain    string    `json:"domain"`
	CreatedAt time.Time `json:"createdAt"`
}
