package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/warbler-app/warbler/internal/logger"
	"github.com/warbler-app/warbler/internal/models"
)

// FollowLister defines the relationship list operations the service must implement.
type FollowLister interface {
	Followers(ctx context.Context, userID int64) ([]models.UserDB, error)
	Following(ctx context.Context, userID int64) ([]models.UserDB, error)
}

// UserSummary is a public view of a user in relationship lists
// swagger:model UserSummary
type UserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	ImageURL string `json:"image_url"`
}

// FollowListResponse represents a followers/following list
// swagger:model FollowListResponse
type FollowListResponse struct {
	Users []UserSummary `json:"users"`
}

// FollowListErrorResponse represents an error response for list operations
// swagger:model FollowListErrorResponse
type FollowListErrorResponse struct {
	// Error message
	// default: Internal server error
	Error string `json:"error"`
}

func toUserSummaries(users []models.UserDB) []UserSummary {
	summaries := make([]UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, UserSummary{
			ID:       u.ID,
			Username: u.Username,
			ImageURL: u.ImageURL,
		})
	}
	return summaries
}

// NewFollowersHandler returns an HTTP handler listing the users that follow
// the user in the URL.
// @Summary List followers
// @Tags follows
// @Produce json
// @Param userID path int true "User id"
// @Success 200 {object} handlers.FollowListResponse "Followers"
// @Failure 400 {object} handlers.FollowListErrorResponse "Bad id"
// @Router /users/{userID}/followers [get]
func NewFollowersHandler(svc FollowLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(FollowListErrorResponse{
				Error: "invalid user id",
			})
			return
		}

		users, err := svc.Followers(r.Context(), userID)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(FollowListErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(FollowListResponse{
			Users: toUserSummaries(users),
		})
	}
}

// NewFollowingHandler returns an HTTP handler listing the users the user in
// the URL follows.
// @Summary List following
// @Tags follows
// @Produce json
// @Param userID path int true "User id"
// @Success 200 {object} handlers.FollowListResponse "Following"
// @Failure 400 {object} handlers.FollowListErrorResponse "Bad id"
// @Router /users/{userID}/following [get]
func NewFollowingHandler(svc FollowLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(FollowListErrorResponse{
				Error: "invalid user id",
			})
			return
		}

		users, err := svc.Following(r.Context(), userID)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(FollowListErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(FollowListResponse{
			Users: toUserSummaries(users),
		})
	}
}
