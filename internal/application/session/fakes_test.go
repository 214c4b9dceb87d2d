package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/baechuer/courtsplit/internal/domain"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

var errStoreDown = errors.New("store down")

// memStore mirrors the memory store closely enough for service tests, plus failure injection.
type memStore struct {
	mu   sync.Mutex
	byID map[string]*domain.Event

	failSaveCourts  bool
	failSavePlayers bool
	savePlayerCalls int
}

func newMemStore() *memStore { return &memStore{byID: map[string]*domain.Event{}} }

func (m *memStore) LoadEvents(ctx context.Context) ([]*domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Event, 0, len(m.byID))
	for _, e := range m.byID {
		out = append(out, e.Clone())
	}
	return out, nil
}

func (m *memStore) LoadEvent(ctx context.Context, id string) (*domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("event not found")
	}
	return e.Clone(), nil
}

func (m *memStore) SaveNewEvent(ctx context.Context, e *domain.Event) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := e.Clone()
	cp.Courts = nil
	cp.Players = []*domain.Player{}
	m.byID[e.ID] = cp
	return e.ID, nil
}

func (m *memStore) SaveCourts(ctx context.Context, eventID string, courts []domain.Court) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSaveCourts {
		return errStoreDown
	}
	e, ok := m.byID[eventID]
	if !ok {
		return domain.ErrNotFound("event not found")
	}
	tmp := &domain.Event{Courts: courts}
	e.Courts = tmp.Clone().Courts
	return nil
}

func (m *memStore) SavePlayers(ctx context.Context, eventID string, players []*domain.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.savePlayerCalls++
	if m.failSavePlayers {
		return errStoreDown
	}
	e, ok := m.byID[eventID]
	if !ok {
		return domain.ErrNotFound("event not found")
	}
	tmp := &domain.Event{Players: players}
	e.Players = tmp.Clone().Players
	return nil
}

func (m *memStore) UpdateEventFields(ctx context.Context, eventID string, f EventFields) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.byID[eventID]
	if !ok {
		return domain.ErrNotFound("event not found")
	}
	if f.Name != nil {
		e.Name = *f.Name
	}
	if f.MaxPlayers != nil {
		e.MaxPlayers = *f.MaxPlayers
	}
	if f.CourtHourlyRate != nil {
		e.CourtHourlyRate = *f.CourtHourlyRate
	}
	if f.ShuttlecockPrice != nil {
		e.ShuttlecockPrice = *f.ShuttlecockPrice
	}
	if f.ShuttlecocksUsed != nil {
		e.ShuttlecocksUsed = *f.ShuttlecocksUsed
	}
	if f.Status != nil {
		e.Status = *f.Status
	}
	e.UpdatedAt = f.UpdatedAt
	return nil
}

// jsonCache stores JSON like the redis client does, so Get fills dest for real.
type jsonCache struct {
	mu    sync.Mutex
	store map[string][]byte
	gets  int
}

func newJSONCache() *jsonCache { return &jsonCache{store: map[string][]byte{}} }

func (c *jsonCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (c *jsonCache) Set(ctx context.Context, key string, val any, ttl time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = b
	return nil
}

func (c *jsonCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.store, k)
	}
	return nil
}

func (c *jsonCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.store[key]
	return ok
}

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
	fail bool
}

func (p *recordingPublisher) PublishEvent(ctx context.Context, routingKey string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, routingKey)
	if p.fail {
		return errors.New("broker down")
	}
	return nil
}

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

// gatedStore pauses the first LoadEvent after arm, once the snapshot is taken.
type gatedStore struct {
	*memStore

	gmu     sync.Mutex
	armed   bool
	entered chan struct{}
	release chan struct{}
}

func newGatedStore(m *memStore) *gatedStore {
	return &gatedStore{memStore: m, entered: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedStore) arm() {
	g.gmu.Lock()
	defer g.gmu.Unlock()
	g.armed = true
}

func (g *gatedStore) LoadEvent(ctx context.Context, id string) (*domain.Event, error) {
	ev, err := g.memStore.LoadEvent(ctx, id)
	g.gmu.Lock()
	hold := g.armed
	g.armed = false
	g.gmu.Unlock()
	if hold {
		close(g.entered)
		<-g.release
	}
	return ev, err
}
