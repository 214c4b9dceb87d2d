package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/courtsplit/internal/application/session"
	"github.com/baechuer/courtsplit/internal/domain"
	"github.com/baechuer/courtsplit/internal/transport/http/dto"
	"github.com/baechuer/courtsplit/internal/transport/http/response"
	"github.com/baechuer/courtsplit/internal/transport/http/validate"
)

func (h *SessionsHandler) AddCourt(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "event_id")
	if !ok {
		return
	}
	ev, c, err := h.svc.AddCourt(r.Context(), actor(r), id)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.CourtResp{Court: c, Event: dto.ToEventResp(ev, view(r))})
}

func (h *SessionsHandler) RemoveCourt(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "event_id")
	if !ok {
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"index": "must be a non-negative integer",
		}))
		return
	}
	ev, err := h.svc.RemoveCourt(r.Context(), actor(r), id, index)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventResp(ev, view(r)))
}

// RecordUsage stores actual court windows and shuttlecocks, completing the event.
func (h *SessionsHandler) RecordUsage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "event_id")
	if !ok {
		return
	}
	var req dto.UsageReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		badBody(w, r)
		return
	}
	if err := validate.Struct(req); err != nil {
		response.Err(w, r, err)
		return
	}
	ev, err := h.svc.RecordUsage(r.Context(), session.RecordUsageCmd{
		Actor:            actor(r),
		EventID:          id,
		Courts:           req.Windows(),
		ShuttlecocksUsed: req.ShuttlecocksUsed,
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventResp(ev, view(r)))
}
