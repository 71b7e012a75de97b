package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-user-admin/internal/logger"
	"github.com/sbilibin2017/gw-user-admin/internal/models"
)

// ErrNotFound is returned when a draft or list view does not exist or has expired.
var ErrNotFound = errors.New("view not found")

func draftKey(id string) string {
	return fmt.Sprintf("draft:%s", id)
}

func submitKey(id string) string {
	return fmt.Sprintf("draft:%s:submit", id)
}

func listViewKey(id string) string {
	return fmt.Sprintf("listview:%s", id)
}

// ViewCacheRepository keeps drafts and list views in Redis with a TTL.
type ViewCacheRepository struct {
	client *redis.Client
	exp    time.Duration // lifetime of a stored view
}

// NewViewCacheRepository creates a repository whose entries expire after expiration.
func NewViewCacheRepository(client *redis.Client, expiration time.Duration) *ViewCacheRepository {
	return &ViewCacheRepository{
		client: client,
		exp:    expiration,
	}
}

// SaveDraft stores the draft and refreshes its expiration.
func (r *ViewCacheRepository) SaveDraft(ctx context.Context, d *models.Draft) error {
	return r.set(ctx, draftKey(d.ID), d)
}

// GetDraft loads a draft by id.
func (r *ViewCacheRepository) GetDraft(ctx context.Context, id string) (*models.Draft, error) {
	var d models.Draft
	if err := r.get(ctx, draftKey(id), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// DeleteDraft removes a draft together with its submission lock.
func (r *ViewCacheRepository) DeleteDraft(ctx context.Context, id string) error {
	err := r.client.Del(ctx, draftKey(id), submitKey(id)).Err()
	logger.Log.Debugw("view store delete", "key", draftKey(id), "error", err)
	return err
}

// AcquireSubmit takes the submission lock of a draft. It reports false when
// another submission already holds it.
func (r *ViewCacheRepository) AcquireSubmit(ctx context.Context, id string) (bool, error) {
	ok, err := r.client.SetNX(ctx, submitKey(id), "1", r.exp).Result()
	logger.Log.Debugw("view store lock", "key", submitKey(id), "acquired", ok, "error", err)
	return ok, err
}

// ReleaseSubmit frees the submission lock of a draft.
func (r *ViewCacheRepository) ReleaseSubmit(ctx context.Context, id string) error {
	err := r.client.Del(ctx, submitKey(id)).Err()
	logger.Log.Debugw("view store unlock", "key", submitKey(id), "error", err)
	return err
}

// SubmitInFlight reports whether the submission lock of a draft is held.
func (r *ViewCacheRepository) SubmitInFlight(ctx context.Context, id string) (bool, error) {
	n, err := r.client.Exists(ctx, submitKey(id)).Result()
	if err != nil {
		logger.Log.Errorw("view store lock lookup failed", "key", submitKey(id), "error", err)
		return false, err
	}
	return n > 0, nil
}

// SaveListView stores a list view and refreshes its expiration.
func (r *ViewCacheRepository) SaveListView(ctx context.Context, v *models.ListView) error {
	return r.set(ctx, listViewKey(v.ID), v)
}

// GetListView loads a list view by id.
func (r *ViewCacheRepository) GetListView(ctx context.Context, id string) (*models.ListView, error) {
	var v models.ListView
	if err := r.get(ctx, listViewKey(id), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ViewCacheRepository) set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	err = r.client.Set(ctx, key, data, r.exp).Err()
	logger.Log.Debugw("view store set", "key", key, "size", len(data), "error", err)
	return err
}

func (r *ViewCacheRepository) get(ctx context.Context, key string, dst any) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		logger.Log.Debugw("view store get", "key", key, "error", err)
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("%s: %w", key, ErrNotFound)
		}
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}
