package response

import (
	"net/http"

	pkgctx "github.com/baechuer/courtsplit/internal/pkg/context"
)

// RequestIDFromRequest prefers the id stored by the RequestID middleware and falls back to the header.
func RequestIDFromRequest(r *http.Request) string {
	if r == nil {
		return ""
	}
	if v := pkgctx.GetRequestID(r.Context()); v != "" {
		return v
	}
	return r.Header.Get("X-Request-Id")
}
