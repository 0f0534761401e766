package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/warbler-app/warbler/internal/logger"
	"github.com/warbler-app/warbler/internal/middlewares"
	"github.com/warbler-app/warbler/internal/repositories"
	"github.com/warbler-app/warbler/internal/services"
)

// Follower defines the follow/unfollow operations the service must implement.
type Follower interface {
	Follow(ctx context.Context, followerID, followedID int64) error
	Unfollow(ctx context.Context, followerID, followedID int64) error
}

// FollowResponse represents a successful follow/unfollow response
// swagger:model FollowResponse
type FollowResponse struct {
	// Success message
	// default: Now following user 2
	Message string `json:"message"`
}

// FollowErrorResponse represents an error response for follow operations
// swagger:model FollowErrorResponse
type FollowErrorResponse struct {
	// Error message
	// default: You cannot follow yourself
	Error string `json:"error"`
}

// NewFollowHandler returns an HTTP handler that makes the authenticated user
// follow the user in the URL. Following an already-followed user is a no-op.
// @Summary Follow a user
// @Tags follows
// @Produce json
// @Param userID path int true "User to follow"
// @Success 200 {object} handlers.FollowResponse "Edge created"
// @Failure 400 {object} handlers.FollowErrorResponse "Self-follow or bad id"
// @Failure 404 {object} handlers.FollowErrorResponse "User not found"
// @Router /users/{userID}/follow [post]
func NewFollowHandler(svc Follower) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		followerID := middlewares.GetUserIDFromContext(r.Context())

		followedID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(FollowErrorResponse{
				Error: "invalid user id",
			})
			return
		}

		if err := svc.Follow(r.Context(), followerID, followedID); err != nil {
			switch {
			case errors.Is(err, services.ErrSelfFollow):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(FollowErrorResponse{
					Error: "You cannot follow yourself",
				})
			case errors.Is(err, repositories.ErrReferenceNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(FollowErrorResponse{
					Error: "User not found",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(FollowErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(FollowResponse{
			Message: "Now following user " + strconv.FormatInt(followedID, 10),
		})
	}
}

// NewUnfollowHandler returns an HTTP handler that removes the follow edge
// from the authenticated user to the user in the URL.
// @Summary Unfollow a user
// @Tags follows
// @Produce json
// @Param userID path int true "User to unfollow"
// @Success 200 {object} handlers.FollowResponse "Edge removed"
// @Failure 400 {object} handlers.FollowErrorResponse "Bad id"
// @Router /users/{userID}/follow [delete]
func NewUnfollowHandler(svc Follower) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		followerID := middlewares.GetUserIDFromContext(r.Context())

		followedID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(FollowErrorResponse{
				Error: "invalid user id",
			})
			return
		}

		if err := svc.Unfollow(r.Context(), followerID, followedID); err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(FollowErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(FollowResponse{
			Message: "Unfollowed user " + strconv.FormatInt(followedID, 10),
		})
	}
}
