package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Genders
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Roles lists the accepted role values in display order.
var Roles = []string{RoleUser, RoleAdmin}

// Genders lists the accepted gender values in display order.
var Genders = []string{GenderMale, GenderFemale, GenderOther}

// UserID is the opaque identifier assigned by the user API.
// The API may encode it either as a JSON string or a JSON number.
type UserID string

// UnmarshalJSON accepts both `"42"` and `42`.
func (id *UserID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = UserID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("user id: %w", err)
	}
	*id = UserID(n.String())
	return nil
}

// String returns the identifier as text.
func (id UserID) String() string {
	return string(id)
}

// User represents a user record as returned by the user API.
// Password is write-only and never read back.
type User struct {
	ID        UserID     `json:"_id"`                 // Server-assigned identifier
	Name      string     `json:"name"`                // Display name
	Email     string     `json:"email"`               // Contact email
	Role      string     `json:"role"`                // admin | user
	Address   string     `json:"address"`             // Postal address
	Active    bool       `json:"active"`              // Account enabled
	Languages []string   `json:"languages"`           // Subset of LanguageVocabulary
	Phone     string     `json:"phone"`               // Optional phone number
	Birthdate *Date      `json:"birthdate,omitempty"` // Optional birth date
	Gender    string     `json:"gender"`              // male | female | other
	Image     string     `json:"image,omitempty"`     // Stored image URL
	CreatedAt *time.Time `json:"createdAt,omitempty"` // Creation timestamp
	UpdatedAt *time.Time `json:"updatedAt,omitempty"` // Last update timestamp
}

// DateLayout is the ISO calendar date layout used on the wire and in date inputs.
const DateLayout = "2006-01-02"

// Date is a calendar date without time of day.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date in UTC.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "yyyy-MM-dd" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// String formats the date as "yyyy-MM-dd".
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON writes the date as "yyyy-MM-dd".
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

// UnmarshalJSON reads "yyyy-MM-dd" or a full RFC 3339 timestamp.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	if parsed, err := ParseDate(s); err == nil {
		*d = parsed
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}
	*d = NewDate(t)
	return nil
}
