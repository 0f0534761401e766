package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/warbler-app/warbler/internal/logger"
)

// Logouter defines the interface that the logout service must implement.
type Logouter interface {
	Logout(ctx context.Context, token string) error
}

// SessionCookieReader reads and clears the session cookie.
type SessionCookieReader interface {
	FromRequest(ctx context.Context, r *http.Request) (string, error)
	ClearCookie(w http.ResponseWriter)
}

// LogoutResponse represents a successful logout response
// swagger:model LogoutResponse
type LogoutResponse struct {
	// Prompt shown after logout
	// default: You have been logged out. Log in to continue.
	Message string `json:"message"`
}

// LogoutErrorResponse represents an error response for logout
// swagger:model LogoutErrorResponse
type LogoutErrorResponse struct {
	// Error message
	// default: Internal server error
	Error string `json:"error"`
}

// NewLogoutHandler returns an HTTP handler for logout. The session record is
// deleted, the cookie cleared, and the response never carries the username.
// Logging out without a session is still a 200.
// @Summary User logout
// @Description Close the session and clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.LogoutResponse "Session closed"
// @Failure 500 {object} handlers.LogoutErrorResponse "Internal server error"
// @Router /logout [get]
func NewLogoutHandler(svc Logouter, cookies SessionCookieReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token, err := cookies.FromRequest(r.Context(), r); err == nil {
			if err := svc.Logout(r.Context(), token); err != nil {
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(LogoutErrorResponse{
					Error: "Internal server error",
				})
				return
			}
		}

		cookies.ClearCookie(w)

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(LogoutResponse{
			Message: "You have been logged out. Log in to continue.",
		})
	}
}
