package handlers

import (
	"net/http"

	"github.com/baechuer/courtsplit/internal/application/session"
	"github.com/baechuer/courtsplit/internal/domain"
	"github.com/baechuer/courtsplit/internal/transport/http/dto"
	"github.com/baechuer/courtsplit/internal/transport/http/response"
	"github.com/baechuer/courtsplit/internal/transport/http/validate"
)

func (h *SessionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEventReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		badBody(w, r)
		return
	}
	if err := validate.Struct(req); err != nil {
		response.Err(w, r, err)
		return
	}
	cmd, err := req.ToCmd(actor(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	ev, err := h.svc.CreateEvent(r.Context(), cmd)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.ToEventResp(ev, view(r)))
}

func (h *SessionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "event_id")
	if !ok {
		return
	}
	var req dto.UpdateEventReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		badBody(w, r)
		return
	}
	if err := validate.Struct(req); err != nil {
		response.Err(w, r, err)
		return
	}
	patch, err := req.ToPatch()
	if err != nil {
		response.Err(w, r, err)
		return
	}
	ev, err := h.svc.UpdateEvent(r.Context(), session.UpdateCmd{Actor: actor(r), EventID: id, Patch: patch})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventResp(ev, view(r)))
}

func (h *SessionsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "event_id")
	if !ok {
		return
	}
	ev, err := h.svc.CancelEvent(r.Context(), actor(r), id)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventResp(ev, view(r)))
}

// List serves ?status=upcoming (default) or ?status=completed.
func (h *SessionsHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		events []*domain.Event
		err    error
	)
	switch r.URL.Query().Get("status") {
	case "", string(domain.StatusUpcoming):
		events, err = h.svc.ListUpcoming(r.Context())
	case string(domain.StatusCompleted):
		events, err = h.svc.ListCompleted(r.Context())
	default:
		response.Err(w, r, domain.ErrValidationMeta("invalid query param", map[string]string{
			"status": "must be one of: upcoming, completed",
		}))
		return
	}
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToListResp(events, view(r)))
}

func (h *SessionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "event_id")
	if !ok {
		return
	}
	ev, err := h.svc.GetEvent(r.Context(), id)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventResp(ev, view(r)))
}

func (h *SessionsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Dashboard(r.Context())
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, d)
}
