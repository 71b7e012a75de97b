package views

import (
	"net/http"
	"strings"
	"time"

	"github.com/flosch/pongo2/v6"

	"github.com/sbilibin2017/gw-user-admin/internal/models"
	"github.com/sbilibin2017/gw-user-admin/internal/validation"
)

// Option is one entry of a select box or toggle group.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// UsersPage builds the data of the user list page.
func UsersPage(v *models.ListView) pongo2.Context {
	return pongo2.Context{
		"view_id": v.ID,
		"users":   v.Users,
		"notice":  v.Notice,
	}
}

// FormPage builds the data of the create or update form. today bounds the birthdate picker.
func FormPage(d *models.Draft, today time.Time) pongo2.Context {
	title, submit := "Create user", "Create"
	if d.Mode == models.ModeUpdate {
		title, submit = "Edit user", "Save"
	}

	languages := make([]Option, 0, len(models.LanguageVocabulary))
	for _, lang := range models.LanguageVocabulary {
		languages = append(languages, Option{Value: lang, Label: lang, Selected: d.Form.Languages.Has(lang)})
	}

	var imageName string
	if d.Image != nil {
		imageName = d.Image.Filename
	}

	return pongo2.Context{
		"title":         title,
		"submit_label":  submit,
		"action":        "/users/drafts/" + d.ID,
		"create":        d.Mode == models.ModeCreate,
		"form":          d.Form,
		"errors":        d.Errors,
		"roles":         options(models.Roles, d.Form.Role),
		"genders":       options(models.Genders, d.Form.Gender),
		"languages":     languages,
		"preview":       d.Preview,
		"image_name":    imageName,
		"submitting":    d.Submitting,
		"notice":        d.Notice,
		"min_birthdate": validation.MinBirthdate.String(),
		"max_birthdate": models.NewDate(today).String(),
	}
}

// ErrorPage builds the data of a full-page error.
func ErrorPage(status int, message string) pongo2.Context {
	return pongo2.Context{
		"status":      status,
		"status_text": http.StatusText(status),
		"message":     message,
	}
}

func options(values []string, selected string) []Option {
	out := make([]Option, 0, len(values))
	for _, v := range values {
		out = append(out, Option{Value: v, Label: strings.ToUpper(v[:1]) + v[1:], Selected: v == selected})
	}
	return out
}
