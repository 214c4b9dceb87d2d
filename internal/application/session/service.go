package session

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/courtsplit/internal/audit"
	"github.com/baechuer/courtsplit/internal/billing"
	"github.com/baechuer/courtsplit/internal/domain"
	"github.com/baechuer/courtsplit/internal/matching"
	"github.com/baechuer/courtsplit/internal/timeslot"
)

// Default reservation offered for a court when the admin does not pick one.
var (
	DefaultReservedStart = timeslot.MustParseClock("20:00")
	DefaultReservedEnd   = timeslot.MustParseClock("22:00")
)

// Actor is the identity collaborator's view of the caller. UserID is empty for anonymous callers.
type Actor struct {
	UserID string
	Role   string
}

func (a Actor) IsAdmin() bool { return a.Role == "admin" }

// Settings tune the service; zero values get defaults.
type Settings struct {
	BillTTL  time.Duration
	Location *time.Location
	Policy   *billing.Policy // nil means billing.DefaultPolicy
	Audit    *audit.Logger
	Matcher  *matching.Matcher
}

type Service struct {
	store EventStore
	clock Clock
	pub   Publisher
	cache Cache

	engine  *billing.Engine
	matcher *matching.Matcher
	audit   *audit.Logger
	loc     *time.Location
	ttlBill time.Duration

	locks *keyedMutex
}

func New(store EventStore, clock Clock, pub Publisher, cache Cache, st Settings) *Service {
	if st.BillTTL == 0 {
		st.BillTTL = 2 * time.Minute
	}
	if st.Location == nil {
		st.Location = time.UTC
	}
	policy := billing.DefaultPolicy()
	if st.Policy != nil {
		policy = *st.Policy
	}
	if st.Audit == nil {
		st.Audit = audit.Nop()
	}
	if st.Matcher == nil {
		st.Matcher = matching.NewMatcher(nil)
	}
	if pub == nil {
		pub = NoopPublisher{}
	}
	return &Service{
		store:   store,
		clock:   clock,
		pub:     pub,
		cache:   cache,
		engine:  billing.NewEngine(policy),
		matcher: st.Matcher,
		audit:   st.Audit,
		loc:     st.Location,
		ttlBill: st.BillTTL,
		locks:   newKeyedMutex(),
	}
}

func requireAdmin(a Actor) error {
	if !a.IsAdmin() {
		return domain.ErrForbidden("admin only")
	}
	return nil
}

// canManagePlayer: admins manage every entry, users their own, and anonymous entries need the
// cancel token issued at registration.
func canManagePlayer(a Actor, p *domain.Player, token string) bool {
	if a.IsAdmin() {
		return true
	}
	if p.UserID == "" {
		return token != "" && p.CancelToken != "" &&
			subtle.ConstantTimeCompare([]byte(token), []byte(p.CancelToken)) == 1
	}
	return strings.TrimSpace(a.UserID) != "" && a.UserID == p.UserID
}

// loadComplete fetches an event and rejects the leftovers of a partial save.
func (s *Service) loadComplete(ctx context.Context, id string) (*domain.Event, error) {
	ev, err := s.store.LoadEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ev.Complete() {
		zlog.Warn().Str("event_id", id).Msg("event has no courts; treating as incomplete")
		return nil, domain.ErrInvalidState("event is incomplete")
	}
	return ev, nil
}

func (s *Service) invalidateBill(ctx context.Context, eventID string) {
	if s.cache == nil {
		return
	}
	key := cacheKeyBill(eventID)
	if err := s.cache.Delete(ctx, key); err != nil {
		zlog.Warn().Err(err).Str("key", key).Msg("cache invalidate failed")
	}
}

func (s *Service) checkCapacity(ctx context.Context, ev *domain.Event) error {
	if err := ev.CheckCapacity(); err != nil {
		s.audit.CapacityViolation(ctx, ev.ID, err)
		return err
	}
	return nil
}

func sessionPayload(ev *domain.Event, actorID string) SessionPayload {
	return SessionPayload{
		EventID:    ev.ID,
		Name:       ev.Name,
		Date:       ev.Date.Format(domain.DateLayout),
		Venue:      ev.Venue,
		MaxPlayers: ev.MaxPlayers,
		Courts:     len(ev.Courts),
		Status:     string(ev.Status),
		ActorID:    actorID,
		UpdatedAt:  ev.UpdatedAt,
	}
}

func playerPayload(eventID string, p *domain.Player) PlayerPayload {
	return PlayerPayload{
		EventID:  eventID,
		PlayerID: p.ID,
		UserID:   p.UserID,
		Name:     p.Name,
		Email:    p.Email,
		Status:   string(p.Status),
		SameDay:  p.CancelledOnEventDay,
	}
}
