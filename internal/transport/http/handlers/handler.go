package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/courtsplit/internal/application/session"
	"github.com/baechuer/courtsplit/internal/domain"
	"github.com/baechuer/courtsplit/internal/transport/http/dto"
	"github.com/baechuer/courtsplit/internal/transport/http/middleware"
	"github.com/baechuer/courtsplit/internal/transport/http/response"
	"github.com/baechuer/courtsplit/internal/transport/http/validate"
)

type SessionsHandler struct {
	svc *session.Service
}

func NewSessionsHandler(svc *session.Service) *SessionsHandler {
	return &SessionsHandler{svc: svc}
}

func actor(r *http.Request) session.Actor {
	return session.Actor{UserID: middleware.UserID(r), Role: middleware.Role(r)}
}

func view(r *http.Request) dto.View {
	return dto.View{IncludeEmail: actor(r).IsAdmin()}
}

// pathID reads a uuid path param and writes a validation error when it is malformed.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := chi.URLParam(r, name)
	if !validate.IsUUID(id) {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			name: "must be uuid",
		}))
		return "", false
	}
	return id, true
}

func badBody(w http.ResponseWriter, r *http.Request) {
	response.Err(w, r, domain.ErrValidationMeta("invalid json body", map[string]string{
		"body": "malformed JSON or invalid fields",
	}))
}
