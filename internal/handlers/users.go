package handlers

//go:generate mockgen -source=users.go -destination=users_mock.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sbilibin2017/gw-user-admin/internal/logger"
	"github.com/sbilibin2017/gw-user-admin/internal/models"
	"github.com/sbilibin2017/gw-user-admin/internal/services"
	"github.com/sbilibin2017/gw-user-admin/internal/views"
)

// UserLister defines the list page operations used by the handlers below.
type UserLister interface {
	Open(ctx context.Context) (*models.ListView, error)                                        // Fetches users into a new list view
	View(ctx context.Context, viewID string) (*models.ListView, error)                         // Returns a stored list view
	Delete(ctx context.Context, viewID string, userID models.UserID) (*models.ListView, error) // Deletes a user and updates the view
	DismissNotice(ctx context.Context, viewID string) (*models.ListView, error)                // Clears the list notice
}

// NewListUsersHandler fetches every user and renders the list page.
func NewListUsersHandler(svc UserLister, pages PageRenderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.Open(r.Context())
		if err != nil {
			logger.Log.Warnw("failed to open user list", "error", err)
			renderError(w, pages, http.StatusBadGateway, "Failed to load users. Please try again.")
			return
		}
		renderPage(w, pages, http.StatusOK, views.TemplateUsers, views.UsersPage(v))
	}
}

// NewListViewHandler renders a stored list view.
func NewListViewHandler(svc UserLister, pages PageRenderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.View(r.Context(), chi.URLParam(r, "view"))
		if err != nil {
			listError(w, pages, err)
			return
		}
		renderPage(w, pages, http.StatusOK, views.TemplateUsers, views.UsersPage(v))
	}
}

// NewDeleteUserHandler deletes a user and returns to the list view.
// A failed delete is reported by the notice of the view.
func NewDeleteUserHandler(svc UserLister, pages PageRenderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewID := chi.URLParam(r, "view")
		userID := models.UserID(chi.URLParam(r, "id"))

		// The request is not cancelled when the client goes away.
		ctx := context.WithoutCancel(r.Context())

		_, err := svc.Delete(ctx, viewID, userID)
		if err != nil && !errors.Is(err, services.ErrDeleteFailed) {
			listError(w, pages, err)
			return
		}
		seeOther(w, r, listViewURL(viewID))
	}
}

// NewDismissListNoticeHandler clears the notice of a list view.
func NewDismissListNoticeHandler(svc UserLister, pages PageRenderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewID := chi.URLParam(r, "view")
		if _, err := svc.DismissNotice(r.Context(), viewID); err != nil {
			listError(w, pages, err)
			return
		}
		seeOther(w, r, listViewURL(viewID))
	}
}

func listError(w http.ResponseWriter, pages PageRenderer, err error) {
	if errors.Is(err, services.ErrViewNotFound) {
		renderError(w, pages, http.StatusNotFound, "This list has expired. Open the user list again.")
		return
	}
	logger.Log.Errorw("list view request failed", "error", err)
	renderError(w, pages, http.StatusInternalServerError, "Something went wrong. Please try again.")
}
