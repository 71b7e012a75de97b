package services

//go:generate mockgen -source=interfaces.go -destination=interfaces_mock.go -package=services

import (
	"context"

	"github.com/sbilibin2017/gw-user-admin/internal/models"
)

// ViewStore keeps the state of open forms and list pages between requests.
type ViewStore interface {
	SaveDraft(ctx context.Context, d *models.Draft) error                 // Stores a draft
	GetDraft(ctx context.Context, id string) (*models.Draft, error)       // Loads a draft by id
	DeleteDraft(ctx context.Context, id string) error                     // Removes a draft and its submission lock
	AcquireSubmit(ctx context.Context, id string) (bool, error)           // Takes the submission lock, false when already held
	ReleaseSubmit(ctx context.Context, id string) error                   // Frees the submission lock
	SubmitInFlight(ctx context.Context, id string) (bool, error)          // Reports whether the submission lock is held
	SaveListView(ctx context.Context, v *models.ListView) error           // Stores a list view
	GetListView(ctx context.Context, id string) (*models.ListView, error) // Loads a list view by id
}

// UserGateway talks to the remote user API.
type UserGateway interface {
	List(ctx context.Context) ([]models.User, error)                                      // Returns all users
	Get(ctx context.Context, id models.UserID) (*models.User, error)                      // Returns one user
	Create(ctx context.Context, p models.Payload) (*models.User, error)                   // Creates a user
	Update(ctx context.Context, id models.UserID, p models.Payload) (*models.User, error) // Partially updates a user
	Delete(ctx context.Context, id models.UserID) error                                   // Deletes a user
}

// FormValidator checks form input and builds the metadata blob.
type FormValidator interface {
	Validate(mode models.Mode, in models.UserInput) (models.Metadata, error) // Returns normalized metadata or field errors
	CheckImage(u *models.Upload) string                                      // Returns the image field error, empty when valid
}
