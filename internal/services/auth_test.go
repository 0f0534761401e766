package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/warbler-app/warbler/internal/models"
	"github.com/warbler-app/warbler/internal/repositories"
	"github.com/warbler-app/warbler/internal/services"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Signup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name      string
		username  string
		email     string
		password  string
		imageURL  string
		mockSetup func(reader *services.MockUserReader, writer *services.MockUserWriter)
		wantErr   error
		wantID    int64
	}{
		{
			name:     "successful signup",
			username: "testuser",
			email:    "test@test.com",
			password: "secret123",
			mockSetup: func(reader *services.MockUserReader, writer *services.MockUserWriter) {
				reader.EXPECT().
					GetByUsernameOrEmail(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, repositories.ErrNotFound)
				writer.EXPECT().
					Save(gomock.Any(), "testuser", "test@test.com", gomock.Any(), models.DefaultImageURL).
					Return(int64(1), nil)
			},
			wantID: 1,
		},
		{
			name:      "missing email",
			username:  "testuser",
			email:     "",
			password:  "secret123",
			mockSetup: func(reader *services.MockUserReader, writer *services.MockUserWriter) {},
			wantErr:   services.ErrMissingRequiredField,
		},
		{
			name:      "missing username",
			username:  "",
			email:     "test@test.com",
			password:  "secret123",
			mockSetup: func(reader *services.MockUserReader, writer *services.MockUserWriter) {},
			wantErr:   services.ErrMissingRequiredField,
		},
		{
			name:     "user already exists",
			username: "testuser",
			email:    "test@test.com",
			password: "secret123",
			mockSetup: func(reader *services.MockUserReader, writer *services.MockUserWriter) {
				reader.EXPECT().
					GetByUsernameOrEmail(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&models.UserDB{ID: 7, Username: "testuser"}, nil)
			},
			wantErr: services.ErrUserAlreadyExists,
		},
		{
			name:     "constraint violation on save",
			username: "testuser",
			email:    "test@test.com",
			password: "secret123",
			mockSetup: func(reader *services.MockUserReader, writer *services.MockUserWriter) {
				reader.EXPECT().
					GetByUsernameOrEmail(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, repositories.ErrNotFound)
				writer.EXPECT().
					Save(gomock.Any(), "testuser", "test@test.com", gomock.Any(), gomock.Any()).
					Return(int64(0), repositories.ErrAlreadyExists)
			},
			wantErr: services.ErrUserAlreadyExists,
		},
		{
			name:     "reader error",
			username: "testuser",
			email:    "test@test.com",
			password: "secret123",
			mockSetup: func(reader *services.MockUserReader, writer *services.MockUserWriter) {
				reader.EXPECT().
					GetByUsernameOrEmail(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
		{
			name:     "custom image url kept",
			username: "testuser",
			email:    "test@test.com",
			password: "secret123",
			imageURL: "https://example.com/pic.png",
			mockSetup: func(reader *services.MockUserReader, writer *services.MockUserWriter) {
				reader.EXPECT().
					GetByUsernameOrEmail(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, repositories.ErrNotFound)
				writer.EXPECT().
					Save(gomock.Any(), "testuser", "test@test.com", gomock.Any(), "https://example.com/pic.png").
					Return(int64(2), nil)
			},
			wantID: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader := services.NewMockUserReader(ctrl)
			mockWriter := services.NewMockUserWriter(ctrl)
			mockSessions := services.NewMockSessionStore(ctrl)
			mockTokens := services.NewMockTokenIssuer(ctrl)
			tt.mockSetup(mockReader, mockWriter)

			svc := services.NewAuthService(mockReader, mockWriter, mockSessions, mockTokens)

			user, err := svc.Signup(context.Background(), tt.username, tt.email, tt.password, tt.imageURL)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, user)
				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, user)
			assert.Equal(t, tt.wantID, user.ID)
			assert.Equal(t, tt.username, user.Username)
			// Plaintext must never be persisted
			assert.NotEqual(t, tt.password, user.PasswordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tt.password)))
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	password := "secret123"
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	storedUser := &models.UserDB{ID: 1, Username: "testuser", Email: "test@test.com", PasswordHash: string(hashed)}

	tests := []struct {
		name      string
		username  string
		password  string
		mockSetup func(reader *services.MockUserReader, sessions *services.MockSessionStore, tokens *services.MockTokenIssuer)
		wantErr   error
		wantToken string
	}{
		{
			name:     "successful login",
			username: "testuser",
			password: password,
			mockSetup: func(reader *services.MockUserReader, sessions *services.MockSessionStore, tokens *services.MockTokenIssuer) {
				reader.EXPECT().
					GetByUsernameOrEmail(gomock.Any(), gomock.Any(), nil).
					Return(storedUser, nil)
				tokens.EXPECT().
					Issue(gomock.Any(), int64(1)).
					Return("TOKEN", "sid-1", nil)
				sessions.EXPECT().
					Set(gomock.Any(), "sid-1", int64(1)).
					Return(nil)
			},
			wantToken: "TOKEN",
		},
		{
			name:     "wrong password",
			username: "testuser",
			password: "wrongpass",
			mockSetup: func(reader *services.MockUserReader, sessions *services.MockSessionStore, tokens *services.MockTokenIssuer) {
				reader.EXPECT().
					GetByUsernameOrEmail(gomock.Any(), gomock.Any(), nil).
					Return(storedUser, nil)
			},
			wantErr: services.ErrInvalidCredentials,
		},
		{
			name:     "unknown username",
			username: "nobody",
			password: password,
			mockSetup: func(reader *services.MockUserReader, sessions *services.MockSessionStore, tokens *services.MockTokenIssuer) {
				reader.EXPECT().
					GetByUsernameOrEmail(gomock.Any(), gomock.Any(), nil).
					Return(nil, repositories.ErrNotFound)
			},
			wantErr: services.ErrInvalidCredentials,
		},
		{
			name:     "session store error",
			username: "testuser",
			password: password,
			mockSetup: func(reader *services.MockUserReader, sessions *services.MockSessionStore, tokens *services.MockTokenIssuer) {
				reader.EXPECT().
					GetByUsernameOrEmail(gomock.Any(), gomock.Any(), nil).
					Return(storedUser, nil)
				tokens.EXPECT().
					Issue(gomock.Any(), int64(1)).
					Return("TOKEN", "sid-1", nil)
				sessions.EXPECT().
					Set(gomock.Any(), "sid-1", int64(1)).
					Return(errors.New("redis down"))
			},
			wantErr: errors.New("redis down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader := services.NewMockUserReader(ctrl)
			mockWriter := services.NewMockUserWriter(ctrl)
			mockSessions := services.NewMockSessionStore(ctrl)
			mockTokens := services.NewMockTokenIssuer(ctrl)
			tt.mockSetup(mockReader, mockSessions, mockTokens)

			svc := services.NewAuthService(mockReader, mockWriter, mockSessions, mockTokens)

			user, token, err := svc.Login(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				// On failure the caller must never receive a user object
				assert.Nil(t, user)
				assert.Empty(t, token)
				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, user)
			// The returned user carries the identifier assigned at signup
			assert.Equal(t, storedUser.ID, user.ID)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("valid token", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		mockWriter := services.NewMockUserWriter(ctrl)
		mockSessions := services.NewMockSessionStore(ctrl)
		mockTokens := services.NewMockTokenIssuer(ctrl)

		mockTokens.EXPECT().
			Parse(gomock.Any(), "TOKEN").
			Return(int64(1), "sid-1", nil)
		mockSessions.EXPECT().
			Delete(gomock.Any(), "sid-1").
			Return(nil)

		svc := services.NewAuthService(mockReader, mockWriter, mockSessions, mockTokens)
		assert.NoError(t, svc.Logout(context.Background(), "TOKEN"))
	})

	t.Run("invalid token is a no-op", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		mockWriter := services.NewMockUserWriter(ctrl)
		mockSessions := services.NewMockSessionStore(ctrl)
		mockTokens := services.NewMockTokenIssuer(ctrl)

		mockTokens.EXPECT().
			Parse(gomock.Any(), "garbage").
			Return(int64(0), "", errors.New("bad token"))

		svc := services.NewAuthService(mockReader, mockWriter, mockSessions, mockTokens)
		assert.NoError(t, svc.Logout(context.Background(), "garbage"))
	})
}
