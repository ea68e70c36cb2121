package service

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"artnotifier/internal/entity"
	"artnotifier/pkg/storage/postgres"

	"github.com/google/uuid"
)

// memStore is an in-memory NotifyRepository and PreferenceRepository with
// the same CAS and owner-scoping rules as the Postgres repositories.
type memStore struct {
	mu       sync.Mutex
	items    map[uuid.UUID]entity.Notification
	prefs    map[uuid.UUID]entity.PreferenceMatrix
	prefsErr error
}

func newMemStore() *memStore {
	return &memStore{
		items: map[uuid.UUID]entity.Notification{},
		prefs: map[uuid.UUID]entity.PreferenceMatrix{},
	}
}

func (m *memStore) Create(_ context.Context, _ postgres.QueryExecuter, n entity.Notification) (*entity.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if n.ID == uuid.Nil {
		n.ID = uuid.Must(uuid.NewV7())
	}
	n.UpdatedAt = n.CreatedAt
	if n.Data == nil {
		n.Data = map[string]any{}
	}
	m.items[n.ID] = n
	return &n, nil
}

func (m *memStore) GetByID(_ context.Context, _ postgres.QueryExecuter, id uuid.UUID) (*entity.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.items[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return &n, nil
}

func (m *memStore) GetByIDAndOwner(ctx context.Context, qe postgres.QueryExecuter, id, owner uuid.UUID) (*entity.Notification, error) {
	n, err := m.GetByID(ctx, qe, id)
	if err != nil {
		return nil, err
	}
	if n.UserID != owner {
		return nil, entity.ErrNotFound
	}
	return n, nil
}

func (m *memStore) match(n entity.Notification, f entity.Filter) bool {
	switch {
	case n.UserID != f.UserID:
		return false
	case f.Unread && n.Status == entity.StatusRead:
		return false
	case !f.Unread && f.Status != "" && n.Status != f.Status:
		return false
	case f.Category != "" && n.Category != f.Category:
		return false
	case f.Channel != "" && n.Channel != f.Channel:
		return false
	}
	return true
}

func (m *memStore) List(_ context.Context, _ postgres.QueryExecuter, f entity.Filter, page entity.PageRequest) ([]entity.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var all []entity.Notification
	for _, n := range m.items {
		if m.match(n, f) {
			all = append(all, n)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return bytes.Compare(all[i].ID[:], all[j].ID[:]) > 0
	})

	off := int(page.Offset())
	if off >= len(all) {
		return nil, nil
	}
	end := off + page.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[off:end], nil
}

func (m *memStore) Count(_ context.Context, _ postgres.QueryExecuter, f entity.Filter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var c int64
	for _, n := range m.items {
		if m.match(n, f) {
			c++
		}
	}
	return c, nil
}

func (m *memStore) CompareAndSwap(_ context.Context, _ postgres.QueryExecuter, prev, next entity.Notification) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.items[prev.ID]
	if !ok || cur.UserID != prev.UserID || cur.Status != prev.Status || cur.RetryCount != prev.RetryCount {
		return false, nil
	}
	cur.Status = next.Status
	cur.SentAt = next.SentAt
	cur.ReadAt = next.ReadAt
	cur.RetryCount = next.RetryCount
	cur.ErrorMessage = next.ErrorMessage
	cur.UpdatedAt = next.UpdatedAt
	m.items[prev.ID] = cur
	return true, nil
}

func (m *memStore) MarkAllRead(_ context.Context, _ postgres.QueryExecuter, owner uuid.UUID, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var c int64
	for id, n := range m.items {
		if n.UserID != owner || n.Status == entity.StatusRead {
			continue
		}
		n.Status = entity.StatusRead
		n.ReadAt = &now
		n.UpdatedAt = now
		m.items[id] = n
		c++
	}
	return c, nil
}

func (m *memStore) Delete(_ context.Context, _ postgres.QueryExecuter, id, owner uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.items[id]
	if !ok || n.UserID != owner {
		return entity.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memStore) GetPreferences(_ context.Context, _ postgres.QueryExecuter, userID uuid.UUID) (*entity.PreferenceMatrix, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.prefsErr != nil {
		return nil, m.prefsErr
	}
	p, ok := m.prefs[userID]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	return &p, nil
}

func (m *memStore) SetPreferences(_ context.Context, _ postgres.QueryExecuter, userID uuid.UUID, p entity.PreferenceMatrix) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.prefs[userID]; !ok {
		return entity.ErrUserNotFound
	}
	m.prefs[userID] = p
	return nil
}

// tickingClock advances by one millisecond per call so records created in
// a loop get distinct timestamps.
func tickingClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	t := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Millisecond)
		return t
	}
}
