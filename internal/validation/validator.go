// Package validation checks user form input against the field rules of the
// create and update forms and produces the normalized metadata blob.
package validation

import (
	"errors"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"

	"github.com/sbilibin2017/gw-user-admin/internal/models"
)

// ErrInvalid is matched by every *ValidationError.
var ErrInvalid = errors.New("validation failed")

// ValidationError maps field names to human-readable messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return ErrInvalid.Error() + ": " + strings.Join(parts, "; ")
}

// Is lets callers use errors.Is(err, ErrInvalid).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

// MinBirthdate is the earliest accepted birth date.
var MinBirthdate = models.Date{Time: time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)}

// Accepted image content types, declared by the client.
const imageTypesTag = "oneof=image/png image/jpeg image/jpg"

// Accepted image formats, detected from the file content.
var imageFormats = []string{"image/png", "image/jpeg"}

const imageMessage = "Image must be a PNG or JPEG file"

type cleanup int

const (
	keepRaw cleanup = iota
	trimOnly
	stripMarkup
)

// rule describes one text field. A rule applies to both modes unless createOnly
// is set; requiredOnCreate makes an absent value an error in create mode.
type rule struct {
	field            string
	label            string
	requiredOnCreate bool
	createOnly       bool
	tag              string
	message          string
	cleanup          cleanup
	get              func(models.UserInput) *string
	set              func(*models.Metadata, string)
}

var rules = []rule{
	{
		field: models.FieldName, label: "Name", requiredOnCreate: true,
		tag: "min=1", message: "Name is required", cleanup: stripMarkup,
		get: func(in models.UserInput) *string { return in.Name },
		set: func(m *models.Metadata, v string) { m.Name = &v },
	},
	{
		field: models.FieldEmail, label: "Email", requiredOnCreate: true,
		tag: "email", message: "Invalid email address", cleanup: trimOnly,
		get: func(in models.UserInput) *string { return in.Email },
		set: func(m *models.Metadata, v string) { m.Email = &v },
	},
	{
		field: models.FieldPassword, label: "Password", requiredOnCreate: true, createOnly: true,
		tag: "min=6", message: "Password must be at least 6 characters", cleanup: keepRaw,
		get: func(in models.UserInput) *string { return in.Password },
		set: func(m *models.Metadata, v string) { m.Password = &v },
	},
	{
		field: models.FieldRole, label: "Role", requiredOnCreate: true,
		tag: "oneof=admin user", message: "Role must be admin or user", cleanup: trimOnly,
		get: func(in models.UserInput) *string { return in.Role },
		set: func(m *models.Metadata, v string) { m.Role = &v },
	},
	{
		field: models.FieldAddress, label: "Address", requiredOnCreate: true,
		tag: "min=1", message: "Address is required", cleanup: stripMarkup,
		get: func(in models.UserInput) *string { return in.Address },
		set: func(m *models.Metadata, v string) { m.Address = &v },
	},
	{
		field: models.FieldPhone, label: "Phone",
		cleanup: stripMarkup,
		get:     func(in models.UserInput) *string { return in.Phone },
		set:     func(m *models.Metadata, v string) { m.Phone = &v },
	},
	{
		field: models.FieldGender, label: "Gender", requiredOnCreate: true,
		tag: "oneof=male female other", message: "Gender must be male, female or other", cleanup: trimOnly,
		get: func(in models.UserInput) *string { return in.Gender },
		set: func(m *models.Metadata, v string) { m.Gender = &v },
	},
}

// Validator evaluates the field rules. It holds no per-call state.
type Validator struct {
	validate *validator.Validate
	policy   *bluemonday.Policy
	now      func() time.Time
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock sets the clock used to decide what "today" is.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		v.now = now
	}
}

// New creates a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{
		validate: validator.New(),
		policy:   bluemonday.StrictPolicy(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks in against the rules of mode. On success it returns the
// normalized metadata; otherwise a *ValidationError with one message per field.
func (v *Validator) Validate(mode models.Mode, in models.UserInput) (models.Metadata, error) {
	var meta models.Metadata
	fieldErrs := make(map[string]string)

	for _, r := range rules {
		if r.createOnly && mode != models.ModeCreate {
			continue
		}
		raw := r.get(in)
		if raw == nil {
			if mode == models.ModeCreate && r.requiredOnCreate {
				fieldErrs[r.field] = r.label + " is required"
			}
			continue
		}
		value := v.clean(r.cleanup, *raw)
		if r.tag != "" {
			if err := v.validate.Var(value, r.tag); err != nil {
				fieldErrs[r.field] = r.message
				continue
			}
		}
		r.set(&meta, value)
	}

	switch {
	case in.Active != nil:
		active := *in.Active
		meta.Active = &active
	case mode == models.ModeCreate:
		active := true
		meta.Active = &active
	}

	switch {
	case in.Languages != nil:
		langs, msg := checkLanguages(in.Languages)
		if msg != "" {
			fieldErrs[models.FieldLanguages] = msg
			break
		}
		meta.Languages = &langs
	case mode == models.ModeCreate:
		meta.Languages = &[]string{}
	}

	if in.Birthdate != nil {
		if s := strings.TrimSpace(*in.Birthdate); s != "" {
			date, msg := v.checkBirthdate(s)
			if msg != "" {
				fieldErrs[models.FieldBirthdate] = msg
			} else {
				meta.Birthdate = &date
			}
		}
	}

	if in.Image != nil {
		if msg := v.checkImage(in.Image); msg != "" {
			fieldErrs[models.FieldImage] = msg
		}
	}

	if len(fieldErrs) > 0 {
		return models.Metadata{}, &ValidationError{Fields: fieldErrs}
	}
	return meta, nil
}

// CheckImage validates a single upload the same way Validate does.
func (v *Validator) CheckImage(u *models.Upload) string {
	if u == nil {
		return ""
	}
	_, err := v.Validate(models.ModeUpdate, models.UserInput{Image: u})
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Fields[models.FieldImage]
	}
	return ""
}

// checkImage accepts an upload only when both its declared content type and
// its detected format are PNG or JPEG.
func (v *Validator) checkImage(u *models.Upload) string {
	declared := strings.ToLower(strings.TrimSpace(u.ContentType))
	if err := v.validate.Var(declared, imageTypesTag); err != nil {
		return imageMessage
	}
	detected := mimetype.Detect(u.Data)
	for _, format := range imageFormats {
		if detected.Is(format) {
			return ""
		}
	}
	return imageMessage
}

func (v *Validator) clean(c cleanup, s string) string {
	switch c {
	case trimOnly:
		return strings.TrimSpace(s)
	case stripMarkup:
		return strings.TrimSpace(html.UnescapeString(v.policy.Sanitize(strings.TrimSpace(s))))
	default:
		return s
	}
}

func (v *Validator) checkBirthdate(s string) (models.Date, string) {
	date, err := models.ParseDate(s)
	if err != nil {
		return models.Date{}, "Invalid date"
	}
	if date.Before(MinBirthdate.Time) {
		return models.Date{}, "Birthdate must be on or after " + MinBirthdate.String()
	}
	if today := models.NewDate(v.now()); date.After(today.Time) {
		return models.Date{}, "Birthdate cannot be in the future"
	}
	return date, ""
}

func checkLanguages(tokens []string) ([]string, string) {
	set := models.NewLanguageSet()
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if !models.IsLanguage(token) {
			return nil, fmt.Sprintf("Unknown language %q", token)
		}
		if !set.Has(token) {
			set = append(set, token)
		}
	}
	return set.Slice(), ""
}
