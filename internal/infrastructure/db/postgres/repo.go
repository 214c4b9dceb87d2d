package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/baechuer/courtsplit/internal/application/session"
	"github.com/baechuer/courtsplit/internal/domain"
	"github.com/baechuer/courtsplit/internal/timeslot"
)

type Repo struct {
	db *sql.DB
}

func New(db *sql.DB) *Repo { return &Repo{db: db} }

var _ session.EventStore = (*Repo)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(s rowScanner) (*domain.Event, error) {
	var e domain.Event
	var status string
	if err := s.Scan(
		&e.ID, &e.Name, &e.Date, &e.Venue, &e.MaxPlayers,
		&e.ShuttlecockPrice, &e.CourtHourlyRate, &e.ShuttlecocksUsed, &status,
		&e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	e.Status = domain.EventStatus(status)
	if !e.Status.Valid() {
		return nil, domain.ErrInvalidState("invalid status in db")
	}
	e.Date = e.Date.UTC()
	e.Players = []*domain.Player{}
	return &e, nil
}

func scanCourt(s rowScanner) (string, domain.Court, error) {
	var eventID string
	var number, rs, re int
	var as, ae sql.NullInt64
	if err := s.Scan(&eventID, &number, &rs, &re, &as, &ae); err != nil {
		return "", domain.Court{}, err
	}
	c := domain.Court{Number: number, ReservedStart: timeslot.Clock(rs), ReservedEnd: timeslot.Clock(re)}
	if as.Valid {
		v := timeslot.Clock(as.Int64)
		c.ActualStart = &v
	}
	if ae.Valid {
		v := timeslot.Clock(ae.Int64)
		c.ActualEnd = &v
	}
	return eventID, c, nil
}

func scanPlayer(s rowScanner) (string, *domain.Player, error) {
	var eventID, status string
	var start sql.NullInt64
	var end int
	var p domain.Player
	if err := s.Scan(
		&eventID, &p.ID, &p.UserID, &p.Name, &p.Email, &start, &end,
		&p.RegisteredAt, &p.Seq, &status, &p.CancelledOnEventDay, &p.Absent, &p.CancelToken,
	); err != nil {
		return "", nil, err
	}
	p.Status = domain.PlayerStatus(status)
	if !p.Status.Valid() {
		return "", nil, domain.ErrInvalidState("invalid player status in db")
	}
	if start.Valid {
		v := timeslot.Clock(start.Int64)
		p.StartTime = &v
	}
	p.EndTime = timeslot.Clock(end)
	p.RegisteredAt = p.RegisteredAt.UTC()
	return eventID, &p, nil
}

func (r *Repo) LoadEvent(ctx context.Context, id string) (*domain.Event, error) {
	e, err := scanEvent(r.db.QueryRowContext(ctx, getEventSQL, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("event not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load event: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, getCourtsSQL, id)
	if err != nil {
		return nil, fmt.Errorf("load courts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		_, c, err := scanCourt(rows)
		if err != nil {
			return nil, err
		}
		e.Courts = append(e.Courts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	prow, err := r.db.QueryContext(ctx, getPlayersSQL, id)
	if err != nil {
		return nil, fmt.Errorf("load players: %w", err)
	}
	defer prow.Close()
	for prow.Next() {
		_, p, err := scanPlayer(prow)
		if err != nil {
			return nil, err
		}
		e.Players = append(e.Players, p)
	}
	if err := prow.Err(); err != nil {
		return nil, err
	}
	return e, nil
}

// LoadEvents reads every event with three queries and stitches courts and players in memory.
func (r *Repo) LoadEvents(ctx context.Context) ([]*domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, listEventsSQL)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var out []*domain.Event
	byID := map[string]*domain.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
		byID[e.ID] = e
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	crows, err := r.db.QueryContext(ctx, listCourtsSQL)
	if err != nil {
		return nil, fmt.Errorf("list courts: %w", err)
	}
	defer crows.Close()
	for crows.Next() {
		eventID, c, err := scanCourt(crows)
		if err != nil {
			return nil, err
		}
		if e, ok := byID[eventID]; ok {
			e.Courts = append(e.Courts, c)
		}
	}
	if err := crows.Err(); err != nil {
		return nil, err
	}

	prows, err := r.db.QueryContext(ctx, listPlayersSQL)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer prows.Close()
	for prows.Next() {
		eventID, p, err := scanPlayer(prows)
		if err != nil {
			return nil, err
		}
		if e, ok := byID[eventID]; ok {
			e.Players = append(e.Players, p)
		}
	}
	if err := prows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveNewEvent inserts the event row only; courts follow in a separate SaveCourts call.
func (r *Repo) SaveNewEvent(ctx context.Context, e *domain.Event) (string, error) {
	_, err := r.db.ExecContext(ctx, insertEventSQL,
		e.ID, e.Name, e.Date.Format(domain.DateLayout), e.Venue, e.MaxPlayers,
		e.ShuttlecockPrice, e.CourtHourlyRate, e.ShuttlecocksUsed, string(e.Status),
		e.CreatedBy, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert event: %w", err)
	}
	return e.ID, nil
}

// SaveCourts replaces the event's courts.
func (r *Repo) SaveCourts(ctx context.Context, eventID string, courts []domain.Court) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, deleteCourtsSQL, eventID); err != nil {
			return fmt.Errorf("delete courts: %w", err)
		}
		for i, c := range courts {
			if _, err := tx.ExecContext(ctx, insertCourtSQL,
				eventID, i, c.Number, int(c.ReservedStart), int(c.ReservedEnd),
				nullClock(c.ActualStart), nullClock(c.ActualEnd),
			); err != nil {
				return fmt.Errorf("insert court %d: %w", c.Number, err)
			}
		}
		return nil
	})
}

// SavePlayers replaces the event's players.
func (r *Repo) SavePlayers(ctx context.Context, eventID string, players []*domain.Player) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, deletePlayersSQL, eventID); err != nil {
			return fmt.Errorf("delete players: %w", err)
		}
		for _, p := range players {
			if _, err := tx.ExecContext(ctx, insertPlayerSQL,
				eventID, p.ID, p.UserID, p.Name, p.Email, nullClock(p.StartTime), int(p.EndTime),
				p.RegisteredAt, p.Seq, string(p.Status), p.CancelledOnEventDay, p.Absent, p.CancelToken,
			); err != nil {
				return fmt.Errorf("insert player %s: %w", p.ID, err)
			}
		}
		return nil
	})
}

func (r *Repo) UpdateEventFields(ctx context.Context, eventID string, f session.EventFields) error {
	sets := []string{}
	args := []any{eventID}
	add := func(col string, val any) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if f.Name != nil {
		add("name", *f.Name)
	}
	if f.Date != nil {
		add("event_date", f.Date.Format(domain.DateLayout))
	}
	if f.Venue != nil {
		add("venue", *f.Venue)
	}
	if f.MaxPlayers != nil {
		add("max_players", *f.MaxPlayers)
	}
	if f.ShuttlecockPrice != nil {
		add("shuttlecock_price", *f.ShuttlecockPrice)
	}
	if f.CourtHourlyRate != nil {
		add("court_hourly_rate", *f.CourtHourlyRate)
	}
	if f.ShuttlecocksUsed != nil {
		add("shuttlecocks_used", *f.ShuttlecocksUsed)
	}
	if f.Status != nil {
		add("status", string(*f.Status))
	}
	add("updated_at", f.UpdatedAt)

	q := "UPDATE events SET " + strings.Join(sets, ", ") + " WHERE id = $1"
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("event not found")
	}
	return nil
}

func nullClock(c *timeslot.Clock) sql.NullInt64 {
	if c == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*c), Valid: true}
}
