package models

import (
	"errors"
	"fmt"
	"strconv"
)

// Mode selects which rule set applies to a form.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeUpdate Mode = "update"
)

// Form field identifiers. They double as HTML input names and as keys of field errors.
const (
	FieldName      = "name"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldRole      = "role"
	FieldAddress   = "address"
	FieldActive    = "active"
	FieldLanguages = "languages"
	FieldPhone     = "phone"
	FieldBirthdate = "birthdate"
	FieldGender    = "gender"
	FieldImage     = "image"
)

var (
	// ErrUnknownField is returned when a form post names a field the form does not have.
	ErrUnknownField = errors.New("unknown form field")
	// ErrInvalidField is returned when a posted value cannot be held by its field.
	ErrInvalidField = errors.New("invalid form value")
)

// UserForm holds the values currently entered in a user form.
// Text inputs keep exactly what was typed; Birthdate is the raw date input value.
// Password is write-only: it lives for one request and is never stored.
type UserForm struct {
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Password  string      `json:"-"`
	Role      string      `json:"role"`
	Address   string      `json:"address"`
	Active    bool        `json:"active"`
	Languages LanguageSet `json:"languages"`
	Phone     string      `json:"phone"`
	Birthdate string      `json:"birthdate"`
	Gender    string      `json:"gender"`
}

// NewCreateForm returns the initial values of an empty create form.
func NewCreateForm() UserForm {
	return UserForm{
		Role:      RoleUser,
		Active:    true,
		Languages: LanguageSet{},
		Gender:    GenderOther,
	}
}

// NewUpdateForm fills a form from an existing user.
func NewUpdateForm(u User) UserForm {
	form := UserForm{
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Address:   u.Address,
		Active:    u.Active,
		Languages: NewLanguageSet(u.Languages...),
		Phone:     u.Phone,
		Gender:    u.Gender,
	}
	if u.Birthdate != nil && !u.Birthdate.IsZero() {
		form.Birthdate = u.Birthdate.String()
	}
	return form
}

// Set updates a single scalar field from its posted text value.
// Languages are changed through the LanguageSet, not through Set.
func (f *UserForm) Set(field, value string) error {
	switch field {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldPassword:
		f.Password = value
	case FieldRole:
		f.Role = value
	case FieldAddress:
		f.Address = value
	case FieldActive:
		active, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalidField, field, value, err)
		}
		f.Active = active
	case FieldPhone:
		f.Phone = value
	case FieldBirthdate:
		f.Birthdate = value
	case FieldGender:
		f.Gender = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Value returns the text value of a scalar field, as it would be posted.
func (f UserForm) Value(field string) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldPassword:
		return f.Password
	case FieldRole:
		return f.Role
	case FieldAddress:
		return f.Address
	case FieldActive:
		return strconv.FormatBool(f.Active)
	case FieldPhone:
		return f.Phone
	case FieldBirthdate:
		return f.Birthdate
	case FieldGender:
		return f.Gender
	}
	return ""
}

// Input converts the form into validator input for the given mode.
// The password is only carried on create; an empty birthdate is absent.
func (f UserForm) Input(mode Mode) UserInput {
	in := UserInput{
		Name:      strPtr(f.Name),
		Email:     strPtr(f.Email),
		Role:      strPtr(f.Role),
		Address:   strPtr(f.Address),
		Active:    &f.Active,
		Languages: f.Languages.Slice(),
		Phone:     strPtr(f.Phone),
		Gender:    strPtr(f.Gender),
	}
	if mode == ModeCreate {
		in.Password = strPtr(f.Password)
	}
	if f.Birthdate != "" {
		in.Birthdate = strPtr(f.Birthdate)
	}
	return in
}

// UserInput is the validator input. A nil field is absent.
type UserInput struct {
	Name      *string
	Email     *string
	Password  *string
	Role      *string
	Address   *string
	Active    *bool
	Languages []string
	Phone     *string
	Birthdate *string
	Gender    *string
	Image     *Upload
}

func strPtr(s string) *string {
	return &s
}
