package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/seedling-labs/gratitude-api/internal/api/shared"
)

// getUserIDFromContext extracts the authenticated user's UUID from the
// request context. The authentication middleware places it there.
func getUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, &pathParamError{param: paramName, reason: "is required"}
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, &pathParamError{param: paramName, reason: "has invalid format"}
	}
	return id, nil
}

type pathParamError struct {
	param  string
	reason string
}

func (e *pathParamError) Error() string {
	return "path parameter " + e.param + " " + e.reason
}

// requireUserID extracts the user ID or writes a 401 and reports failure.
func requireUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return uuid.Nil, false
	}
	return userID, true
}
