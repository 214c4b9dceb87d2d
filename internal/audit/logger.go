package audit

import (
	"context"

	"github.com/rs/zerolog"

	pkgctx "github.com/baechuer/courtsplit/internal/pkg/context"
)

// Logger writes business actions as structured lines tagged audit=true.
type Logger struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Logger {
	return &Logger{
		log: log.With().Bool("audit", true).Logger(),
	}
}

// Nop discards everything; used when no audit sink is configured.
func Nop() *Logger { return New(zerolog.Nop()) }

func (l *Logger) EventCreated(ctx context.Context, eventID, actorID string, courts int) {
	l.log.Info().
		Str("action", "event_created").
		Str("event_id", eventID).
		Str("actor_user_id", actorID).
		Int("courts", courts).
		Str("trace_id", pkgctx.GetRequestID(ctx)).
		Msg("Event created")
}

func (l *Logger) EventUpdated(ctx context.Context, eventID, actorID string) {
	l.log.Info().
		Str("action", "event_updated").
		Str("event_id", eventID).
		Str("actor_user_id", actorID).
		Str("trace_id", pkgctx.GetRequestID(ctx)).
		Msg("Event updated")
}

func (l *Logger) EventCancelled(ctx context.Context, eventID, actorID string) {
	l.log.Warn().
		Str("action", "event_cancelled").
		Str("event_id", eventID).
		Str("actor_user_id", actorID).
		Str("trace_id", pkgctx.GetRequestID(ctx)).
		Msg("Event cancelled")
}

func (l *Logger) PlayerRegistered(ctx context.Context, eventID, playerID, userID, status string) {
	l.log.Info().
		Str("action", "player_registered").
		Str("event_id", eventID).
		Str("player_id", playerID).
		Str("user_id", userID).
		Str("status", status).
		Str("trace_id", pkgctx.GetRequestID(ctx)).
		Msg("Player registered")
}

func (l *Logger) PlayerCancelled(ctx context.Context, eventID, playerID, actorID string, sameDay bool) {
	l.log.Info().
		Str("action", "player_cancelled").
		Str("event_id", eventID).
		Str("player_id", playerID).
		Str("actor_user_id", actorID).
		Bool("same_day", sameDay).
		Str("trace_id", pkgctx.GetRequestID(ctx)).
		Msg("Player cancelled")
}

func (l *Logger) Promoted(ctx context.Context, eventID, playerID string) {
	l.log.Info().
		Str("action", "player_promoted").
		Str("event_id", eventID).
		Str("player_id", playerID).
		Str("trace_id", pkgctx.GetRequestID(ctx)).
		Msg("Player promoted from waitlist")
}

func (l *Logger) MarkedAbsent(ctx context.Context, eventID, playerID, actorID string) {
	l.log.Warn().
		Str("action", "player_absent").
		Str("event_id", eventID).
		Str("player_id", playerID).
		Str("actor_user_id", actorID).
		Str("trace_id", pkgctx.GetRequestID(ctx)).
		Msg("Player marked absent")
}

func (l *Logger) CourtsChanged(ctx context.Context, eventID, actorID, change string, courtNumber int) {
	l.log.Info().
		Str("action", "courts_changed").
		Str("event_id", eventID).
		Str("actor_user_id", actorID).
		Str("change", change).
		Int("court_number", courtNumber).
		Str("trace_id", pkgctx.GetRequestID(ctx)).
		Msg("Courts changed")
}

func (l *Logger) UsageRecorded(ctx context.Context, eventID, actorID string, shuttlecocks int) {
	l.log.Info().
		Str("action", "usage_recorded").
		Str("event_id", eventID).
		Str("actor_user_id", actorID).
		Int("shuttlecocks_used", shuttlecocks).
		Str("trace_id", pkgctx.GetRequestID(ctx)).
		Msg("Court usage recorded")
}

func (l *Logger) BillFinalized(ctx context.Context, eventID, actorID string, edits int, total float64) {
	l.log.Info().
		Str("action", "bill_finalized").
		Str("event_id", eventID).
		Str("actor_user_id", actorID).
		Int("edits", edits).
		Float64("grand_total", total).
		Str("trace_id", pkgctx.GetRequestID(ctx)).
		Msg("Bill edits saved")
}

// CapacityViolation marks a broken registered/max invariant; it is a bug, never user input.
func (l *Logger) CapacityViolation(ctx context.Context, eventID string, err error) {
	l.log.Error().
		Err(err).
		Str("action", "capacity_invariant").
		Str("event_id", eventID).
		Str("trace_id", pkgctx.GetRequestID(ctx)).
		Msg("Registered players exceed capacity")
}
