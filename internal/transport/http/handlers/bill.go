package handlers

import (
	"net/http"

	"github.com/baechuer/courtsplit/internal/application/session"
	"github.com/baechuer/courtsplit/internal/transport/http/dto"
	"github.com/baechuer/courtsplit/internal/transport/http/response"
	"github.com/baechuer/courtsplit/internal/transport/http/validate"
)

func (h *SessionsHandler) GetBill(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "event_id")
	if !ok {
		return
	}
	bill, err := h.svc.ComputeBill(r.Context(), id)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, bill)
}

// SaveBill applies the admin's per-player time edits and returns the recomputed bill.
func (h *SessionsHandler) SaveBill(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "event_id")
	if !ok {
		return
	}
	var req dto.BillEditsReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		badBody(w, r)
		return
	}
	if err := validate.Struct(req); err != nil {
		response.Err(w, r, err)
		return
	}
	_, bill, err := h.svc.SaveBillEdits(r.Context(), session.SaveEditsCmd{
		Actor: actor(r), EventID: id, Edits: req.ToEdits(),
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, bill)
}

func (h *SessionsHandler) Pairs(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "event_id")
	if !ok {
		return
	}
	groups, err := h.svc.SuggestPairs(r.Context(), id)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, map[string]any{"groups": groups})
}
