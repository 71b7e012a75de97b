package handlers

//go:generate mockgen -source=drafts.go -destination=drafts_mock.go -package=handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sbilibin2017/gw-user-admin/internal/logger"
	"github.com/sbilibin2017/gw-user-admin/internal/models"
	"github.com/sbilibin2017/gw-user-admin/internal/services"
	"github.com/sbilibin2017/gw-user-admin/internal/validation"
	"github.com/sbilibin2017/gw-user-admin/internal/views"
)

// FormController defines the user form operations used by the handlers below.
type FormController interface {
	NewCreateDraft(ctx context.Context) (*models.Draft, error)
	NewUpdateDraft(ctx context.Context, userID models.UserID) (*models.Draft, error)
	Draft(ctx context.Context, id string) (*models.Draft, error)
	Submit(ctx context.Context, id string, values map[string]string, upload *models.Upload) (*models.Draft, error)
	ToggleLanguage(ctx context.Context, id string, values map[string]string, language string) (*models.Draft, error)
	SelectImage(ctx context.Context, id string, values map[string]string, upload *models.Upload) (*models.Draft, error)
	RemoveImage(ctx context.Context, id string, values map[string]string) (*models.Draft, error)
	Image(ctx context.Context, id string) (*models.Upload, error)
	DismissNotice(ctx context.Context, id string, values map[string]string) (*models.Draft, error)
}

// NewCreateDraftHandler opens an empty create form.
func NewCreateDraftHandler(svc FormController, pages PageRenderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.NewCreateDraft(r.Context())
		if err != nil {
			draftError(w, pages, nil, err)
			return
		}
		seeOther(w, r, draftURL(d.ID))
	}
}

// NewEditUserHandler opens an update form for an existing user.
// A missing user renders a full not found page instead of a form.
func NewEditUserHandler(svc FormController, pages PageRenderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.NewUpdateDraft(r.Context(), models.UserID(chi.URLParam(r, "id")))
		switch {
		case err == nil:
			seeOther(w, r, draftURL(d.ID))
		case errors.Is(err, services.ErrUserNotFound):
			renderError(w, pages, http.StatusNotFound, "User not found")
		default:
			logger.Log.Warnw("failed to open user for editing", "error", err)
			renderError(w, pages, http.StatusBadGateway, "Failed to load user. Please try again.")
		}
	}
}

// NewDraftHandler renders a form.
func NewDraftHandler(svc FormController, pages PageRenderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.Draft(r.Context(), chi.URLParam(r, "draft"))
		if err != nil {
			draftError(w, pages, nil, err)
			return
		}
		renderForm(w, pages, http.StatusOK, d)
	}
}

// NewSubmitDraftHandler applies the posted form and submits it.
// On success the browser is sent to the user list.
func NewSubmitDraftHandler(svc FormController, pages PageRenderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "draft")
		values, upload, err := readFormPost(r)
		if err != nil {
			logger.Log.Warnw("failed to read form post", "draftID", id, "error", err)
			renderError(w, pages, postStatus(err), "The form could not be read.")
			return
		}

		// An issued request runs to completion even if the client goes away.
		ctx := context.WithoutCancel(r.Context())

		d, err := svc.Submit(ctx, id, values, upload)
		if err != nil {
			draftError(w, pages, d, err)
			return
		}
		seeOther(w, r, "/users")
	}
}

// NewToggleLanguageHandler keeps the posted form and toggles one language.
func NewToggleLanguageHandler(svc FormController, pages PageRenderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "draft")
		values, _, err := readFormPost(r)
		if err != nil {
			renderError(w, pages, postStatus(err), "The form could not be read.")
			return
		}
		d, err := svc.ToggleLanguage(r.Context(), id, values, chi.URLParam(r, "language"))
		if err != nil {
			draftError(w, pages, d, err)
			return
		}
		seeOther(w, r, draftURL(id))
	}
}

// NewSelectImageHandler keeps the posted form and holds the posted image.
func NewSelectImageHandler(svc FormController, pages PageRenderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "draft")
		values, upload, err := readFormPost(r)
		if err != nil {
			renderError(w, pages, postStatus(err), "The form could not be read.")
			return
		}
		d, err := svc.SelectImage(r.Context(), id, values, upload)
		if err != nil {
			draftError(w, pages, d, err)
			return
		}
		seeOther(w, r, draftURL(id))
	}
}

// NewRemoveImageHandler keeps the posted form and drops the selected image.
func NewRemoveImageHandler(svc FormController, pages PageRenderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "draft")
		values, _, err := readFormPost(r)
		if err != nil {
			renderError(w, pages, postStatus(err), "The form could not be read.")
			return
		}
		d, err := svc.RemoveImage(r.Context(), id, values)
		if err != nil {
			draftError(w, pages, d, err)
			return
		}
		seeOther(w, r, draftURL(id))
	}
}

// NewDraftImageHandler serves the image held by a form as its preview.
func NewDraftImageHandler(svc FormController) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		img, err := svc.Image(r.Context(), chi.URLParam(r, "draft"))
		if err != nil {
			if errors.Is(err, services.ErrDraftNotFound) || errors.Is(err, services.ErrImageNotFound) {
				http.NotFound(w, r)
				return
			}
			logger.Log.Errorw("failed to load preview image", "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		contentType := img.ContentType
		if contentType == "" {
			contentType = http.DetectContentType(img.Data)
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
		w.Header().Set("Cache-Control", "private, max-age=3600")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(img.Data)
	}
}

// NewDismissDraftNoticeHandler keeps the posted form and clears its notice.
func NewDismissDraftNoticeHandler(svc FormController, pages PageRenderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "draft")
		values, _, err := readFormPost(r)
		if err != nil {
			renderError(w, pages, postStatus(err), "The form could not be read.")
			return
		}
		d, err := svc.DismissNotice(r.Context(), id, values)
		if err != nil {
			draftError(w, pages, d, err)
			return
		}
		seeOther(w, r, draftURL(id))
	}
}

func renderForm(w http.ResponseWriter, pages PageRenderer, status int, d *models.Draft) {
	renderPage(w, pages, status, views.TemplateForm, views.FormPage(d, time.Now()))
}

// draftError answers a failed form operation. Field errors and rejected
// submissions re-render the form; d may be nil for any other error.
// A repeated submit goes to the user list, where the pending submission
// lands on success; on failure the draft keeps its notice.
func draftError(w http.ResponseWriter, pages PageRenderer, d *models.Draft, err error) {
	switch {
	case errors.Is(err, services.ErrDraftNotFound):
		renderError(w, pages, http.StatusNotFound, "This form has expired. Open it again.")
	case errors.Is(err, services.ErrSubmitInFlight):
		w.Header().Set("Location", "/users")
		w.WriteHeader(http.StatusSeeOther)
	case errors.Is(err, validation.ErrInvalid) && d != nil:
		renderForm(w, pages, http.StatusUnprocessableEntity, d)
	case errors.Is(err, services.ErrSubmitFailed) && d != nil:
		renderForm(w, pages, http.StatusBadGateway, d)
	case errors.Is(err, models.ErrUnknownField), errors.Is(err, services.ErrUnknownLanguage):
		renderError(w, pages, http.StatusBadRequest, "The form contains an unknown field.")
	case errors.Is(err, models.ErrInvalidField):
		logger.Log.Infow("rejected form value", "error", err)
		renderError(w, pages, http.StatusBadRequest, "The form contains an invalid value.")
	default:
		logger.Log.Errorw("form request failed", "error", err)
		renderError(w, pages, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}
