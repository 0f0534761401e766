package services

import (
	"context"
	"errors"

	"github.com/warbler-app/warbler/internal/logger"
	"github.com/warbler-app/warbler/internal/models"
	"github.com/warbler-app/warbler/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

// Error variables
var (
	ErrMissingRequiredField = errors.New("email and username are required")
	ErrUserAlreadyExists    = errors.New("username or email already exists")
	// ErrInvalidCredentials covers both unknown username and wrong password,
	// so callers cannot enumerate registered usernames.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsernameOrEmail(ctx context.Context, username *string, email *string) (*models.UserDB, error)
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, username, email, passwordHash, imageURL string) (int64, error)
}

// SessionStore defines the server-side session records consulted at login
// and cleared at logout.
type SessionStore interface {
	Set(ctx context.Context, sessionID string, userID int64) error
	Delete(ctx context.Context, sessionID string) error
}

// TokenIssuer defines the session token codec.
type TokenIssuer interface {
	Issue(ctx context.Context, userID int64) (token string, sessionID string, err error)
	Parse(ctx context.Context, tokenString string) (userID int64, sessionID string, err error)
}

// AuthService handles signup, login and logout.
type AuthService struct {
	reader   UserReader
	writer   UserWriter
	sessions SessionStore
	tokens   TokenIssuer
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, sessions SessionStore, tokens TokenIssuer) *AuthService {
	return &AuthService{
		reader:   reader,
		writer:   writer,
		sessions: sessions,
		tokens:   tokens,
	}
}

// Signup creates a new user. The password is bcrypt-hashed before it is
// persisted; plaintext is never stored. Uniqueness of username and email is
// pre-checked here and additionally enforced by the store's constraints, so
// a concurrent duplicate still surfaces as ErrUserAlreadyExists.
func (svc *AuthService) Signup(ctx context.Context, username, email, password, imageURL string) (*models.UserDB, error) {
	if username == "" || email == "" {
		logger.Log.Errorw("signup missing required field", "username", username, "email", email)
		return nil, ErrMissingRequiredField
	}

	existing, err := svc.reader.GetByUsernameOrEmail(ctx, &username, &email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if existing != nil {
		logger.Log.Errorw("user already exists", "username", username, "email", email)
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	if imageURL == "" {
		imageURL = models.DefaultImageURL
	}

	id, err := svc.writer.Save(ctx, username, email, string(hashedPassword), imageURL)
	if err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			logger.Log.Errorw("user already exists on save", "username", username, "email", email)
			return nil, ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	return &models.UserDB{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		ImageURL:     imageURL,
	}, nil
}

// Login verifies the credentials and opens a session. On success it returns
// the user together with a session token; the caller can always read the
// user's id. Unknown username and wrong password both return
// ErrInvalidCredentials.
func (svc *AuthService) Login(ctx context.Context, username, password string) (*models.UserDB, string, error) {
	user, err := svc.reader.GetByUsernameOrEmail(ctx, &username, nil)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			logger.Log.Errorw("login for unknown username", "username", username)
			return nil, "", ErrInvalidCredentials
		}
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("invalid credentials", "username", username)
		return nil, "", ErrInvalidCredentials
	}

	token, sessionID, err := svc.tokens.Issue(ctx, user.ID)
	if err != nil {
		logger.Log.Errorw("failed to issue session token", "err", err)
		return nil, "", err
	}

	if err := svc.sessions.Set(ctx, sessionID, user.ID); err != nil {
		logger.Log.Errorw("failed to store session", "err", err)
		return nil, "", err
	}

	return user, token, nil
}

// Logout closes the session bound to the token. An unparseable token is
// treated as already logged out.
func (svc *AuthService) Logout(ctx context.Context, token string) error {
	_, sessionID, err := svc.tokens.Parse(ctx, token)
	if err != nil {
		logger.Log.Infow("logout with invalid token", "err", err)
		return nil
	}

	if err := svc.sessions.Delete(ctx, sessionID); err != nil {
		logger.Log.Errorw("failed to delete session", "err", err)
		return err
	}

	return nil
}
