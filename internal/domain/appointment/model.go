package appointment

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carebook/carebook/internal/platform/timeutil"
	"github.com/carebook/carebook/internal/platform/validate"
)

// Appointment maps to the appointment table. Patient holds the normalized
// NHS number of the patient the appointment is for; Time is the appointment
// start and Duration the compact span string (e.g. "1h 30m").
type Appointment struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Patient    string    `db:"patient" json:"patient"`
	Status     Status    `db:"status" json:"status"`
	Time       time.Time `db:"start_time" json:"time"`
	Duration   string    `db:"duration" json:"duration"`
	Clinician  string    `db:"clinician" json:"clinician"`
	Department string    `db:"department" json:"department"`
	Postcode   string    `db:"postcode" json:"postcode"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// EndTime returns the appointment end instant, or false when the stored
// duration does not parse.
func (a *Appointment) EndTime() (time.Time, bool) {
	return timeutil.EndTime(a.Time, a.Duration)
}

// CreateInput carries the fields for a new appointment. Normalize must be
// called (and succeed) before the input is handed to the service.
type CreateInput struct {
	Patient    string    `json:"patient"`
	Status     Status    `json:"status"`
	Time       time.Time `json:"time"`
	Duration   string    `json:"duration"`
	Clinician  string    `json:"clinician"`
	Department string    `json:"department"`
	Postcode   string    `json:"postcode"`
}

// Normalize validates the input and rewrites patient, postcode, and duration
// to their canonical forms. Any initial status is acceptable as long as it is
// a member of the status set; the transition guard only applies to updates.
func (in *CreateInput) Normalize() error {
	nhs, ok := validate.FormatNHSNumber(in.Patient)
	if !ok {
		return validationErrorf("invalid NHS number: must be 10 digits with valid checksum")
	}
	in.Patient = nhs

	if !in.Status.Valid() {
		return validationErrorf("invalid appointment status: %q", in.Status)
	}
	if in.Time.IsZero() {
		return validationErrorf("time is required")
	}

	if _, ok := timeutil.ParseDuration(in.Duration); !ok {
		return validationErrorf("invalid duration: must be like \"1h\", \"30m\", or \"1h 30m\"")
	}
	in.Duration = strings.TrimSpace(in.Duration)

	if in.Clinician == "" {
		return validationErrorf("clinician is required")
	}
	if in.Department == "" {
		return validationErrorf("department is required")
	}

	pc, ok := validate.FormatUKPostcode(in.Postcode)
	if !ok {
		return validationErrorf("invalid UK postcode format")
	}
	in.Postcode = pc

	return nil
}

// UpdateInput carries a partial appointment update. Nil fields are left
// untouched by the update.
type UpdateInput struct {
	Patient    *string    `json:"patient,omitempty"`
	Status     *Status    `json:"status,omitempty"`
	Time       *time.Time `json:"time,omitempty"`
	Duration   *string    `json:"duration,omitempty"`
	Clinician  *string    `json:"clinician,omitempty"`
	Department *string    `json:"department,omitempty"`
	Postcode   *string    `json:"postcode,omitempty"`
}

// Normalize validates and canonicalizes every field that is present.
func (in *UpdateInput) Normalize() error {
	if in.Patient != nil {
		nhs, ok := validate.FormatNHSNumber(*in.Patient)
		if !ok {
			return validationErrorf("invalid NHS number: must be 10 digits with valid checksum")
		}
		in.Patient = &nhs
	}
	if in.Status != nil && !in.Status.Valid() {
		return validationErrorf("invalid appointment status: %q", *in.Status)
	}
	if in.Time != nil && in.Time.IsZero() {
		return validationErrorf("time must not be zero")
	}
	if in.Duration != nil {
		if _, ok := timeutil.ParseDuration(*in.Duration); !ok {
			return validationErrorf("invalid duration: must be like \"1h\", \"30m\", or \"1h 30m\"")
		}
		d := strings.TrimSpace(*in.Duration)
		in.Duration = &d
	}
	if in.Clinician != nil && *in.Clinician == "" {
		return validationErrorf("clinician must not be empty")
	}
	if in.Department != nil && *in.Department == "" {
		return validationErrorf("department must not be empty")
	}
	if in.Postcode != nil {
		pc, ok := validate.FormatUKPostcode(*in.Postcode)
		if !ok {
			return validationErrorf("invalid UK postcode format")
		}
		in.Postcode = &pc
	}
	return nil
}

// Fields returns the update as a column→value map for the repository,
// omitting nil fields. An empty map means there is nothing to change.
func (in *UpdateInput) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if in.Patient != nil {
		fields["patient"] = *in.Patient
	}
	if in.Status != nil {
		fields["status"] = *in.Status
	}
	if in.Time != nil {
		fields["start_time"] = *in.Time
	}
	if in.Duration != nil {
		fields["duration"] = *in.Duration
	}
	if in.Clinician != nil {
		fields["clinician"] = *in.Clinician
	}
	if in.Department != nil {
		fields["department"] = *in.Department
	}
	if in.Postcode != nil {
		fields["postcode"] = *in.Postcode
	}
	return fields
}
