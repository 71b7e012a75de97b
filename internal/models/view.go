package models

// Draft is the state of one user form while it is being edited.
type Draft struct {
	ID         string            `json:"id"`
	Mode       Mode              `json:"mode"`
	UserID     UserID            `json:"user_id,omitempty"`     // Target of an update
	Form       UserForm          `json:"form"`                  // Current field values
	Errors     map[string]string `json:"errors,omitempty"`      // Field name -> message
	Submitting bool              `json:"-"`                     // Submission in flight, read from the store lock
	Image      *Upload           `json:"image,omitempty"`       // Selected binary, held for submission
	Preview    string            `json:"preview,omitempty"`     // URL shown as image preview
	ImageInput string            `json:"image_input,omitempty"` // Fingerprint held by the file control
	Notice     string            `json:"notice,omitempty"`      // Transient error message
}

// ListView is the state of one user list page.
type ListView struct {
	ID     string `json:"id"`
	Users  []User `json:"users"`
	Notice string `json:"notice,omitempty"`
}

// Remove drops the user with the given id and reports whether it was present.
func (v *ListView) Remove(id UserID) bool {
	for i, u := range v.Users {
		if u.ID == id {
			v.Users = append(v.Users[:i], v.Users[i+1:]...)
			return true
		}
	}
	return false
}
