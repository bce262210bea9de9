package httpapi

import (
	"net/http"
	"strings"
)

// actorHandler is a handler that additionally receives the authenticated
// actor's id, resolved from the bearer token by the identity collaborator.
type actorHandler func(w http.ResponseWriter, r *http.Request, actorID string)

// withActor authenticates the request before invoking next. Requests
// without a valid bearer token are rejected with 401.
func (h *Handler) withActor(next actorHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "missing bearer token"})
			return
		}

		actorID, err := h.verifier.VerifyToken(r.Context(), token)
		if err != nil {
			h.logger.Debug("Token verification failed", "error", err)
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid bearer token"})
			return
		}

		next(w, r, actorID)
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
