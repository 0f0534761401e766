package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/warbler-app/warbler/internal/logger"
	"github.com/warbler-app/warbler/internal/models"
	"github.com/warbler-app/warbler/internal/services"
)

// Signuper defines the interface that the signup service must implement.
type Signuper interface {
	Signup(ctx context.Context, username, email, password, imageURL string) (*models.UserDB, error)
}

// SignupRequest represents the JSON body for user signup
// swagger:model SignupRequest
type SignupRequest struct {
	// Username
	// required: true
	// default: testuser
	Username string `json:"username"`

	// Email
	// required: true
	// default: test@test.com
	Email string `json:"email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`

	// Profile image URL, optional
	// default: ""
	ImageURL string `json:"image_url"`
}

// SignupResponse represents a successful signup response
// swagger:model SignupResponse
type SignupResponse struct {
	// Assigned user id
	ID int64 `json:"id"`

	// Username
	Username string `json:"username"`

	// Email
	Email string `json:"email"`

	// Profile image URL
	ImageURL string `json:"image_url"`
}

// SignupErrorResponse represents an error response for signup
// swagger:model SignupErrorResponse
type SignupErrorResponse struct {
	// Error message
	// default: Username or email already exists
	Error string `json:"error"`
}

// NewSignupHandler returns an HTTP handler for user signup.
// @Summary Sign up a new user
// @Description Creates a new user account. Ensures unique username and email. Password is hashed before storing.
// @Tags auth
// @Accept json
// @Produce json
// @Param signupRequest body handlers.SignupRequest true "User signup request"
// @Success 201 {object} handlers.SignupResponse "User successfully created"
// @Failure 400 {object} handlers.SignupErrorResponse "Missing field or username/email already exists"
// @Router /signup [post]
func NewSignupHandler(svc Signuper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignupRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(SignupErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		user, err := svc.Signup(r.Context(), req.Username, req.Email, req.Password, req.ImageURL)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrMissingRequiredField):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(SignupErrorResponse{
					Error: "Email and username are required",
				})
			case errors.Is(err, services.ErrUserAlreadyExists):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(SignupErrorResponse{
					Error: "Username or email already exists",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(SignupErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(SignupResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			ImageURL: user.ImageURL,
		})
	}
}
