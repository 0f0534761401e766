package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/warbler-app/warbler/internal/middlewares"
	"github.com/warbler-app/warbler/internal/models"
	"github.com/warbler-app/warbler/internal/services"
)

func TestCreateMessageHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		inputBody    interface{}
		mockSetup    func(svc *MockMessagePoster)
		expectedCode int
	}{
		{
			name:      "success",
			inputBody: CreateMessageRequest{Text: "hello warbler"},
			mockSetup: func(svc *MockMessagePoster) {
				svc.EXPECT().
					Post(gomock.Any(), int64(1), "hello warbler").
					Return(&models.MessageDB{ID: 10, UserID: 1, Text: "hello warbler"}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "invalid JSON",
			inputBody:    "{invalid json}",
			mockSetup:    func(svc *MockMessagePoster) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:      "empty text",
			inputBody: CreateMessageRequest{Text: "   "},
			mockSetup: func(svc *MockMessagePoster) {
				svc.EXPECT().
					Post(gomock.Any(), int64(1), "   ").
					Return(nil, services.ErrEmptyMessage)
			},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockMessagePoster(ctrl)
			tt.mockSetup(mockSvc)

			var bodyBytes []byte
			switch v := tt.inputBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, _ = json.Marshal(v)
			}

			req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewReader(bodyBytes))
			req = req.WithContext(middlewares.SetUserIDToContext(req.Context(), 1))
			w := httptest.NewRecorder()

			handler := NewCreateMessageHandler(mockSvc)
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestListMessagesHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("fresh user has no messages", func(t *testing.T) {
		mockSvc := NewMockMessageLister(ctrl)
		mockSvc.EXPECT().
			ListForUser(gomock.Any(), int64(1)).
			Return([]models.MessageDB{}, nil)

		req := newAuthedRequest(http.MethodGet, "/users/1/messages", 0, "1")
		w := httptest.NewRecorder()

		handler := NewListMessagesHandler(mockSvc)
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp MessageListResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Empty(t, resp.Messages)
	})

	t.Run("returns messages", func(t *testing.T) {
		mockSvc := NewMockMessageLister(ctrl)
		mockSvc.EXPECT().
			ListForUser(gomock.Any(), int64(1)).
			Return([]models.MessageDB{{ID: 2, UserID: 1, Text: "second"}, {ID: 1, UserID: 1, Text: "first"}}, nil)

		req := newAuthedRequest(http.MethodGet, "/users/1/messages", 0, "1")
		w := httptest.NewRecorder()

		handler := NewListMessagesHandler(mockSvc)
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp MessageListResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Messages, 2)
		assert.Equal(t, "second", resp.Messages[0].Text)
	})
}
