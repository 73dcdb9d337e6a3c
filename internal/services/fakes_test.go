package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"asset-desk/internal/entities"
	"asset-desk/internal/repositories"
	"asset-desk/internal/workflow"
	"asset-desk/pkg/constants"
	apperrors "asset-desk/pkg/errors"
	"asset-desk/pkg/eventbus"
	"asset-desk/pkg/types"
)

// memStore - общее in-memory состояние для фейковых репозиториев.
type memStore struct {
	mu       sync.Mutex
	requests map[uint64]entities.AssetRequest
	assets   map[uint64]entities.Asset
	users    map[uint64]entities.User
	history  []entities.RequestHistory
	nextID   uint64

	// failHistory ломает запись истории, чтобы проверить откат решения.
	failHistory error
}

func newMemStore() *memStore {
	return &memStore{
		requests: map[uint64]entities.AssetRequest{},
		assets:   map[uint64]entities.Asset{},
		users:    map[uint64]entities.User{},
		nextID:   1000,
	}
}

type memSnapshot struct {
	requests map[uint64]entities.AssetRequest
	assets   map[uint64]entities.Asset
	history  []entities.RequestHistory
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := memSnapshot{
		requests: make(map[uint64]entities.AssetRequest, len(s.requests)),
		assets:   make(map[uint64]entities.Asset, len(s.assets)),
		history:  append([]entities.RequestHistory(nil), s.history...),
	}
	for k, v := range s.requests {
		snap.requests[k] = v
	}
	for k, v := range s.assets {
		snap.assets[k] = v
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests, s.assets, s.history = snap.requests, snap.assets, snap.history
}

func (s *memStore) newID() uint64 {
	s.nextID++
	return s.nextID
}

// fakeTxManager откатывает in-memory состояние, если fn вернула ошибку.
type fakeTxManager struct{ store *memStore }

func (m fakeTxManager) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	snap := m.store.snapshot()
	if err := fn(nil); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

type fakeRequestRepo struct{ store *memStore }

func (r fakeRequestRepo) GetAll(_ context.Context, filter workflow.RequestFilter) ([]entities.AssetRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	all := make([]entities.AssetRequest, 0, len(r.store.requests))
	for _, req := range r.store.requests {
		all = append(all, req)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return workflow.FilterRequests(all, filter), nil
}

func (r fakeRequestRepo) FindByID(_ context.Context, _ pgx.Tx, id uint64) (*entities.AssetRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	req, ok := r.store.requests[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &req, nil
}

func (r fakeRequestRepo) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.AssetRequest, error) {
	return r.FindByID(ctx, tx, id)
}

func (r fakeRequestRepo) Create(_ context.Context, _ pgx.Tx, req entities.AssetRequest) (uint64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.assets[req.AssetID]; !ok {
		return 0, apperrors.ErrNotFound
	}
	if req.IsAssetRequest() {
		for _, existing := range r.store.requests {
			if existing.AssetID == req.AssetID && existing.IsAssetRequest() &&
				workflow.CheckEditable(existing.EffectiveStatus()) == nil {
				return 0, fmt.Errorf("asset %d already has an active request: %w", req.AssetID, apperrors.ErrConflict)
			}
		}
	}
	req.ID = r.store.newID()
	req.Status.SetValid(constants.RequestStatusPending)
	r.store.requests[req.ID] = req
	return req.ID, nil
}

func (r fakeRequestRepo) UpdateStatus(_ context.Context, _ pgx.Tx, id uint64, status string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	req, ok := r.store.requests[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	req.Status.SetValid(status)
	r.store.requests[id] = req
	return nil
}

func (r fakeRequestRepo) UpdateDescription(_ context.Context, _ pgx.Tx, id uint64, description string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	req, ok := r.store.requests[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	req.Description = description
	r.store.requests[id] = req
	return nil
}

func (r fakeRequestRepo) GetBlocking(_ context.Context, _ pgx.Tx, assetID uint64) ([]entities.AssetRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entities.AssetRequest
	for _, req := range r.store.requests {
		if !workflow.IsBlockingStatus(req.EffectiveStatus()) {
			continue
		}
		if assetID == 0 || req.AssetID == assetID {
			out = append(out, req)
		}
	}
	return out, nil
}

type fakeAssetRepo struct{ store *memStore }

func (r fakeAssetRepo) sorted(match func(entities.Asset) bool) []entities.Asset {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entities.Asset
	for _, a := range r.store.assets {
		if match(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r fakeAssetRepo) GetAll(_ context.Context, filter types.Filter) ([]entities.Asset, uint64, error) {
	all := r.sorted(func(a entities.Asset) bool {
		return filter.Search == "" || strings.Contains(strings.ToLower(a.Name), strings.ToLower(filter.Search))
	})
	return all, uint64(len(all)), nil
}

func (r fakeAssetRepo) FindByID(_ context.Context, _ pgx.Tx, id uint64) (*entities.Asset, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.assets[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &a, nil
}

func (r fakeAssetRepo) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Asset, error) {
	return r.FindByID(ctx, tx, id)
}

func (r fakeAssetRepo) FindByStatus(_ context.Context, status string) ([]entities.Asset, error) {
	return r.sorted(func(a entities.Asset) bool { return a.Status == status }), nil
}

func (r fakeAssetRepo) FindAssignedTo(_ context.Context, employeeID uint64) ([]entities.Asset, error) {
	return r.sorted(func(a entities.Asset) bool {
		return a.AssignedToID.Valid && a.AssignedToID.Uint64 == employeeID
	}), nil
}

func (r fakeAssetRepo) Create(_ context.Context, _ pgx.Tx, a entities.Asset) (uint64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.assets {
		if existing.AssetNumber == a.AssetNumber {
			return 0, fmt.Errorf("asset number %s already exists: %w", a.AssetNumber, apperrors.ErrConflict)
		}
	}
	a.ID = r.store.newID()
	r.store.assets[a.ID] = a
	return a.ID, nil
}

func (r fakeAssetRepo) Update(_ context.Context, _ pgx.Tx, a entities.Asset) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.assets[a.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.store.assets[a.ID] = a
	return nil
}

func (r fakeAssetRepo) Delete(_ context.Context, _ pgx.Tx, id uint64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, req := range r.store.requests {
		if req.AssetID == id {
			return fmt.Errorf("asset %d is referenced by requests: %w", id, apperrors.ErrConflict)
		}
	}
	delete(r.store.assets, id)
	return nil
}

type fakeHistoryRepo struct{ store *memStore }

func (r fakeHistoryRepo) Create(_ context.Context, _ pgx.Tx, item entities.RequestHistory) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failHistory != nil {
		return r.store.failHistory
	}
	item.ID = r.store.newID()
	r.store.history = append(r.store.history, item)
	return nil
}

func (r fakeHistoryRepo) GetByRequestID(_ context.Context, requestID uint64) ([]entities.RequestHistory, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entities.RequestHistory
	for _, h := range r.store.history {
		if h.RequestID == requestID {
			out = append(out, h)
		}
	}
	return out, nil
}

type fakeUserRepo struct{ store *memStore }

func (r fakeUserRepo) GetAll(_ context.Context, role string) ([]entities.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entities.User
	for _, u := range r.store.users {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeUserRepo) FindByID(_ context.Context, _ pgx.Tx, id uint64) (*entities.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (r fakeUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r fakeUserRepo) Create(_ context.Context, _ pgx.Tx, u entities.User) (uint64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return 0, fmt.Errorf("email %s is already registered: %w", u.Email, apperrors.ErrConflict)
		}
	}
	u.ID = r.store.newID()
	r.store.users[u.ID] = u
	return u.ID, nil
}

// fakeCache - in-memory замена Redis без учёта TTL.
type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
	ttl  map[string]time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		c.data[key] = string(v)
	default:
		c.data[key] = fmt.Sprint(v)
	}
	c.ttl[key] = expiration
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", repositories.ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
		delete(c.ttl, k)
	}
	return nil
}

func (c *fakeCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	fmt.Sscan(c.data[key], &n)
	n++
	c.data[key] = fmt.Sprint(n)
	return n, nil
}

func (c *fakeCache) Expire(_ context.Context, key string, expiration time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; !ok {
		return false, nil
	}
	c.ttl[key] = expiration
	return true, nil
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

// recordingPublisher запоминает события вместо шины.
type recordingPublisher struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event eventbus.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Name())
	}
	return out
}

var (
	adminSession    = types.Session{UserID: 1, Name: "Admin", Email: "admin@company.com", Role: constants.RoleAdmin}
	employeeSession = types.Session{UserID: 7, Name: "Ravi", Email: "ravi@company.com", Role: constants.RoleEmployee}
	otherSession    = types.Session{UserID: 8, Name: "Mira", Email: "mira@company.com", Role: constants.RoleEmployee}
)
