package appointment

import "time"

// Appointment is a scheduled visit. Date is the exact instant of the visit;
// the same-day rule compares calendar days only.
type Appointment struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patientId"`
	Date      time.Time `json:"date"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

// Day returns the calendar-day key used for conflict detection.
func (a *Appointment) Day() string {
	return Day(a.Date)
}

// Day formats an instant as its calendar day in the instant's own location.
func Day(t time.Time) string {
	return t.Format("2006-01-02")
}

// UpdateParams carries the fields of an update request. Nil fields keep the
// stored value.
type UpdateParams struct {
	PatientID *string    `json:"patientId"`
	Date      *time.Time `json:"date"`
	Reason    *string    `json:"reason"`
}
