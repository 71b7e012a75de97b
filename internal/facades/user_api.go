package facades

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sbilibin2017/gw-user-admin/internal/logger"
	"github.com/sbilibin2017/gw-user-admin/internal/models"
)

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 10 << 20

// UserAPIFacade talks to the external user API over HTTP.
type UserAPIFacade struct {
	baseURL string
	client  *http.Client
}

// NewUserAPIFacade creates a facade for the API rooted at baseURL
// (for example "http://localhost:4000/api").
func NewUserAPIFacade(baseURL string, client *http.Client) *UserAPIFacade {
	if client == nil {
		client = http.DefaultClient
	}
	return &UserAPIFacade{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

type envelope[T any] struct {
	Data T `json:"data"`
}

// List fetches all users.
func (f *UserAPIFacade) List(ctx context.Context) ([]models.User, error) {
	var resp envelope[[]models.User]
	if err := f.do(ctx, "list users", http.MethodGet, "/user", nil, "", &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return []models.User{}, nil
	}
	return resp.Data, nil
}

// Get fetches one user. A 404 or an empty data envelope yields ErrNotFound.
func (f *UserAPIFacade) Get(ctx context.Context, id models.UserID) (*models.User, error) {
	var resp envelope[*models.User]
	err := f.do(ctx, "get user", http.MethodGet, "/user/id/"+url.PathEscape(id.String()), nil, "", &resp)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Status == http.StatusNotFound {
			return nil, fmt.Errorf("get user %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if resp.Data == nil {
		logger.Log.Infow("user not found", "id", id)
		return nil, fmt.Errorf("get user %s: %w", id, ErrNotFound)
	}
	return resp.Data, nil
}

// Create sends a create request with the given payload.
func (f *UserAPIFacade) Create(ctx context.Context, p models.Payload) (*models.User, error) {
	return f.send(ctx, "create user", http.MethodPost, "/user", p)
}

// Update sends a partial update for the user with the given id.
func (f *UserAPIFacade) Update(ctx context.Context, id models.UserID, p models.Payload) (*models.User, error) {
	return f.send(ctx, "update user", http.MethodPut, "/user/"+url.PathEscape(id.String()), p)
}

// Delete removes the user with the given id.
func (f *UserAPIFacade) Delete(ctx context.Context, id models.UserID) error {
	return f.do(ctx, "delete user", http.MethodDelete, "/user/"+url.PathEscape(id.String()), nil, "", nil)
}

func (f *UserAPIFacade) send(ctx context.Context, op, method, path string, p models.Payload) (*models.User, error) {
	var body bytes.Buffer
	contentType, err := p.WriteMultipart(&body)
	if err != nil {
		logger.Log.Errorw("failed to encode payload", "op", op, "error", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var resp envelope[*models.User]
	if err := f.do(ctx, op, method, path, &body, contentType, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (f *UserAPIFacade) do(ctx context.Context, op, method, path string, body io.Reader, contentType string, out any) error {
	endpoint := f.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Log.Errorw("user api request could not be completed",
			"op", op, "method", method, "url", endpoint, "error", err)
		return fmt.Errorf("%s: %w: %w", op, ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		logger.Log.Errorw("failed to read user api response",
			"op", op, "method", method, "url", endpoint, "error", err)
		return fmt.Errorf("%s: %w: %w", op, ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Log.Warnw("user api rejected request",
			"op", op, "method", method, "url", endpoint,
			"status", resp.StatusCode, "body", string(raw))
		return &StatusError{Op: op, Status: resp.StatusCode, Body: string(raw)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		logger.Log.Errorw("failed to decode user api response",
			"op", op, "url", endpoint, "error", err)
		return fmt.Errorf("%s: %w: decode response: %w", op, ErrRequestFailed, err)
	}
	return nil
}
