package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/warbler-app/warbler/internal/logger"
	"github.com/warbler-app/warbler/internal/middlewares"
	"github.com/warbler-app/warbler/internal/models"
	"github.com/warbler-app/warbler/internal/services"
)

// MessagePoster defines the message write operation the service must implement.
type MessagePoster interface {
	Post(ctx context.Context, userID int64, text string) (*models.MessageDB, error)
}

// MessageLister defines the message read operation the service must implement.
type MessageLister interface {
	ListForUser(ctx context.Context, userID int64) ([]models.MessageDB, error)
}

// CreateMessageRequest represents the JSON body for posting a message
// swagger:model CreateMessageRequest
type CreateMessageRequest struct {
	// Message text, at most 140 characters
	// required: true
	// default: Hello warbler!
	Text string `json:"text"`
}

// MessageView is the public view of a message
// swagger:model MessageView
type MessageView struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageListResponse represents a list of messages
// swagger:model MessageListResponse
type MessageListResponse struct {
	Messages []MessageView `json:"messages"`
}

// MessageErrorResponse represents an error response for message operations
// swagger:model MessageErrorResponse
type MessageErrorResponse struct {
	// Error message
	// default: Message text is empty
	Error string `json:"error"`
}

// NewCreateMessageHandler returns an HTTP handler that posts a message as
// the authenticated user.
// @Summary Post a message
// @Tags messages
// @Accept json
// @Produce json
// @Param createMessageRequest body handlers.CreateMessageRequest true "Message"
// @Success 201 {object} handlers.MessageView "Message created"
// @Failure 400 {object} handlers.MessageErrorResponse "Empty or too long text"
// @Router /messages [post]
func NewCreateMessageHandler(svc MessagePoster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middlewares.GetUserIDFromContext(r.Context())

		var req CreateMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(MessageErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		msg, err := svc.Post(r.Context(), userID, req.Text)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEmptyMessage):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(MessageErrorResponse{
					Error: "Message text is empty",
				})
			case errors.Is(err, services.ErrMessageTooLong):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(MessageErrorResponse{
					Error: "Message text exceeds 140 characters",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(MessageErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(MessageView{
			ID:        msg.ID,
			UserID:    msg.UserID,
			Text:      msg.Text,
			CreatedAt: msg.CreatedAt,
		})
	}
}

// NewListMessagesHandler returns an HTTP handler listing a user's messages,
// newest first.
// @Summary List a user's messages
// @Tags messages
// @Produce json
// @Param userID path int true "User id"
// @Success 200 {object} handlers.MessageListResponse "Messages"
// @Failure 400 {object} handlers.MessageErrorResponse "Bad id"
// @Router /users/{userID}/messages [get]
func NewListMessagesHandler(svc MessageLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(MessageErrorResponse{
				Error: "invalid user id",
			})
			return
		}

		messages, err := svc.ListForUser(r.Context(), userID)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(MessageErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		views := make([]MessageView, 0, len(messages))
		for _, m := range messages {
			views = append(views, MessageView{
				ID:        m.ID,
				UserID:    m.UserID,
				Text:      m.Text,
				CreatedAt: m.CreatedAt,
			})
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(MessageListResponse{
			Messages: views,
		})
	}
}
