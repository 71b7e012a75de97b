package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-admin/internal/logger"
	"github.com/sbilibin2017/gw-user-admin/internal/models"
	"github.com/sbilibin2017/gw-user-admin/internal/repositories"
)

var (
	// ErrViewNotFound is returned when a list view does not exist or has expired.
	ErrViewNotFound = errors.New("list view not found")
	// ErrListFailed is returned when the users could not be fetched.
	ErrListFailed = errors.New("failed to load users")
	// ErrDeleteFailed is returned when the user API did not delete a user.
	ErrDeleteFailed = errors.New("failed to delete user")
)

// NoticeDeleteFailed is shown on the list after a failed delete.
const NoticeDeleteFailed = "Failed to delete user. Please try again."

// ListService drives the user list page.
type ListService struct {
	store ViewStore
	users UserGateway
}

// NewListService creates a new ListService.
func NewListService(store ViewStore, users UserGateway) *ListService {
	return &ListService{
		store: store,
		users: users,
	}
}

// Open fetches every user and stores them as a new list view.
func (s *ListService) Open(ctx context.Context) (*models.ListView, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list users", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrListFailed, err)
	}

	v := &models.ListView{
		ID:    uuid.NewString(),
		Users: users,
	}
	if err := s.store.SaveListView(ctx, v); err != nil {
		logger.Log.Errorw("failed to save list view", "viewID", v.ID, "error", err)
		return nil, err
	}
	return v, nil
}

// View returns a stored list view.
func (s *ListService) View(ctx context.Context, id string) (*models.ListView, error) {
	v, err := s.store.GetListView(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrViewNotFound, id)
		}
		logger.Log.Errorw("failed to load list view", "viewID", id, "error", err)
		return nil, err
	}
	return v, nil
}

// Delete removes a user through the user API. The entry leaves the list only
// once the API confirms; otherwise the list is kept and carries a notice.
func (s *ListService) Delete(ctx context.Context, viewID string, userID models.UserID) (*models.ListView, error) {
	v, err := s.View(ctx, viewID)
	if err != nil {
		return nil, err
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		logger.Log.Warnw("failed to delete user", "viewID", viewID, "userID", userID, "error", err)
		v.Notice = NoticeDeleteFailed
		if saveErr := s.save(ctx, v); saveErr != nil {
			return v, saveErr
		}
		return v, fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}

	logger.Log.Infow("user deleted", "viewID", viewID, "userID", userID)
	v.Remove(userID)
	v.Notice = ""
	return v, s.save(ctx, v)
}

// DismissNotice clears the transient notice of a list view.
func (s *ListService) DismissNotice(ctx context.Context, viewID string) (*models.ListView, error) {
	v, err := s.View(ctx, viewID)
	if err != nil {
		return nil, err
	}
	v.Notice = ""
	return v, s.save(ctx, v)
}

func (s *ListService) save(ctx context.Context, v *models.ListView) error {
	if err := s.store.SaveListView(ctx, v); err != nil {
		logger.Log.Errorw("failed to save list view", "viewID", v.ID, "error", err)
		return err
	}
	return nil
}
