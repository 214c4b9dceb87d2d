package handlers

import (
	"net/http"

	"github.com/baechuer/courtsplit/internal/application/session"
	"github.com/baechuer/courtsplit/internal/transport/http/dto"
	"github.com/baechuer/courtsplit/internal/transport/http/response"
	"github.com/baechuer/courtsplit/internal/transport/http/validate"
)

// CancelTokenHeader carries the token an anonymous registrant needs to cancel their entry.
const CancelTokenHeader = "X-Cancel-Token"

func (h *SessionsHandler) Register(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "event_id")
	if !ok {
		return
	}
	var req dto.RegisterReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		badBody(w, r)
		return
	}
	if err := validate.Struct(req); err != nil {
		response.Err(w, r, err)
		return
	}

	ev, p, err := h.svc.Register(r.Context(), req.ToCmd(actor(r), id))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	v := view(r)
	out := dto.RegistrationResp{
		Player:      dto.ToPlayerResp(p, v),
		Event:       dto.ToEventResp(ev, v),
		CancelToken: p.CancelToken,
	}
	// the registrant always sees their own email
	out.Player.Email = p.Email
	response.Data(w, http.StatusCreated, out)
}

func (h *SessionsHandler) CancelPlayer(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "event_id")
	if !ok {
		return
	}
	playerID, ok := pathID(w, r, "player_id")
	if !ok {
		return
	}

	ev, res, err := h.svc.CancelRegistration(r.Context(), session.CancelCmd{
		Actor:       actor(r),
		EventID:     eventID,
		PlayerID:    playerID,
		CancelToken: r.Header.Get(CancelTokenHeader),
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	v := view(r)
	out := dto.CancelResp{Cancelled: dto.ToPlayerResp(res.Cancelled, v), Event: dto.ToEventResp(ev, v)}
	if res.Promoted != nil {
		pr := dto.ToPlayerResp(res.Promoted, v)
		out.Promoted = &pr
	}
	response.Data(w, http.StatusOK, out)
}

func (h *SessionsHandler) MarkAbsent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "event_id")
	if !ok {
		return
	}
	playerID, ok := pathID(w, r, "player_id")
	if !ok {
		return
	}

	ev, _, err := h.svc.MarkAbsent(r.Context(), session.MarkAbsentCmd{
		Actor: actor(r), EventID: eventID, PlayerID: playerID,
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventResp(ev, view(r)))
}
