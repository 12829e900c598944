// Package patient implements the patient register: demographic records keyed
// by NHS number.
package patient

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carebook/carebook/internal/platform/validate"
)

// Date is a calendar date without a time component, encoded as "2006-01-02"
// in JSON and stored as a SQL DATE.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	d.Time = t
	return nil
}

// Value implements driver.Valuer for database writes.
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan implements sql.Scanner for database reads.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = v
		return nil
	case string:
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return err
		}
		d.Time = t
		return nil
	case nil:
		d.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

// Patient maps to the patients table. NHSNumber is stored in its canonical
// 10-digit form and is unique across the register.
type Patient struct {
	ID          uuid.UUID `db:"id" json:"id"`
	NHSNumber   string    `db:"nhs_number" json:"nhs_number"`
	Name        string    `db:"name" json:"name"`
	DateOfBirth Date      `db:"date_of_birth" json:"date_of_birth"`
	Postcode    string    `db:"postcode" json:"postcode"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// CreateInput carries the fields for a new patient.
type CreateInput struct {
	NHSNumber   string `json:"nhs_number"`
	Name        string `json:"name"`
	DateOfBirth Date   `json:"date_of_birth"`
	Postcode    string `json:"postcode"`
}

// Normalize validates the input and rewrites the NHS number and postcode to
// their canonical forms.
func (in *CreateInput) Normalize() error {
	nhs, ok := validate.FormatNHSNumber(in.NHSNumber)
	if !ok {
		return validationErrorf("invalid NHS number: must be 10 digits with valid checksum")
	}
	in.NHSNumber = nhs

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return validationErrorf("name is required")
	}
	if in.DateOfBirth.IsZero() {
		return validationErrorf("date_of_birth is required")
	}

	pc, ok := validate.FormatUKPostcode(in.Postcode)
	if !ok {
		return validationErrorf("invalid UK postcode format")
	}
	in.Postcode = pc

	return nil
}

// UpdateInput carries a partial patient update. The NHS number identifies a
// patient and is immutable, so it is not part of the update surface.
type UpdateInput struct {
	Name        *string `json:"name,omitempty"`
	DateOfBirth *Date   `json:"date_of_birth,omitempty"`
	Postcode    *string `json:"postcode,omitempty"`
}

// Normalize validates and canonicalizes every field that is present.
func (in *UpdateInput) Normalize() error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return validationErrorf("name must not be empty")
		}
		in.Name = &name
	}
	if in.DateOfBirth != nil && in.DateOfBirth.IsZero() {
		return validationErrorf("date_of_birth must not be zero")
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

// Fields returns the update as a column→value map, omitting nil fields.
func (in *UpdateInput) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.DateOfBirth != nil {
		fields["date_of_birth"] = *in.DateOfBirth
	}
	if in.Postcode != nil {
		fields["postcode"] = *in.Postcode
	}
	return fields
}
