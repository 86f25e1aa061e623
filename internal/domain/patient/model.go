package patient

import "time"

// Gender values accepted for a patient record.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

var validGenders = map[string]bool{
	GenderMale: true, GenderFemale: true, GenderOther: true,
}

// Contact holds optional ways to reach a patient.
type Contact struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Patient is a patient record as persisted in the data file. ID and
// CreatedAt are set on creation and never change afterwards.
type Patient struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Gender    string    `json:"gender"`
	Domains   []string  `json:"domains"`
	Contact   Contact   `json:"contact"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

// UpdateParams carries the fields of an update request. Nil fields keep the
// stored value; non-nil fields replace it wholesale (the contact object is
// not deep-merged).
type UpdateParams struct {
	Name    *string   `json:"name"`
	Age     *int      `json:"age"`
	Gender  *string   `json:"gender"`
	Domains *[]string `json:"domains"`
	Contact *Contact  `json:"contact"`
	Notes   *string   `json:"notes"`
}
