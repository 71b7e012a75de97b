package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sbilibin2017/gw-user-admin/internal/models"
)

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// ViewMemoryRepository keeps drafts and list views in process memory.
// Values are stored encoded so callers never share mutable state.
type ViewMemoryRepository struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	locks   map[string]time.Time
	exp     time.Duration
	now     func() time.Time
}

// NewViewMemoryRepository creates an in-memory repository whose entries expire after expiration.
func NewViewMemoryRepository(expiration time.Duration) *ViewMemoryRepository {
	return &ViewMemoryRepository{
		entries: make(map[string]memoryEntry),
		locks:   make(map[string]time.Time),
		exp:     expiration,
		now:     time.Now,
	}
}

func (r *ViewMemoryRepository) SaveDraft(_ context.Context, d *models.Draft) error {
	return r.set(draftKey(d.ID), d)
}

func (r *ViewMemoryRepository) GetDraft(_ context.Context, id string) (*models.Draft, error) {
	var d models.Draft
	if err := r.get(draftKey(id), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *ViewMemoryRepository) DeleteDraft(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, draftKey(id))
	delete(r.locks, submitKey(id))
	return nil
}

func (r *ViewMemoryRepository) AcquireSubmit(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := submitKey(id)
	if expires, held := r.locks[key]; held && r.now().Before(expires) {
		return false, nil
	}
	r.locks[key] = r.now().Add(r.exp)
	return true, nil
}

func (r *ViewMemoryRepository) ReleaseSubmit(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.locks, submitKey(id))
	return nil
}

func (r *ViewMemoryRepository) SubmitInFlight(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	expires, held := r.locks[submitKey(id)]
	return held && r.now().Before(expires), nil
}

func (r *ViewMemoryRepository) SaveListView(_ context.Context, v *models.ListView) error {
	return r.set(listViewKey(v.ID), v)
}

func (r *ViewMemoryRepository) GetListView(_ context.Context, id string) (*models.ListView, error) {
	var v models.ListView
	if err := r.get(listViewKey(id), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ViewMemoryRepository) set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictExpired()
	r.entries[key] = memoryEntry{data: data, expires: r.now().Add(r.exp)}
	return nil
}

func (r *ViewMemoryRepository) get(key string, dst any) error {
	r.mu.Lock()
	entry, ok := r.entries[key]
	r.mu.Unlock()

	if !ok || !r.now().Before(entry.expires) {
		return fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if err := json.Unmarshal(entry.data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// evictExpired drops stale entries; r.mu must be held.
func (r *ViewMemoryRepository) evictExpired() {
	now := r.now()
	for key, entry := range r.entries {
		if !now.Before(entry.expires) {
			delete(r.entries, key)
		}
	}
	for key, expires := range r.locks {
		if !now.Before(expires) {
			delete(r.locks, key)
		}
	}
}
