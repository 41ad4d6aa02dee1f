package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Sanyam-Ahuja/study-manager/internal/auth/service"
	"github.com/Sanyam-Ahuja/study-manager/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// "user" parameter carries the username and password hash; the generated
	// id is written back into it.
	//
	// A taken username is reported as models.ErrDuplicateUser.
	Create(ctx context.Context, user *models.User) error
	// Method GetByUsername retrieves a user by username.
	//
	// If no user with such username exists, models.ErrNotFound is returned
	// together with "nil" value.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// Synchronizer replicates the catalog into a user's progress store
type Synchronizer interface {
	// Method Synchronize runs a best-effort catalog replication for the user.
	// It never returns an error; failures are reported in the result.
	Synchronize(ctx context.Context, userID int) models.SyncResult
}

// authService implements registration and login
type authService struct {
	userRepo       UserRepository
	synchronizer   Synchronizer
	tokenGenerator *service.TokenGenerator
	logger         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo UserRepository,
	synchronizer Synchronizer,
	tokenGenerator *service.TokenGenerator,
	logger *zap.Logger,
) *authService {
	return &authService{
		userRepo:       userRepo,
		synchronizer:   synchronizer,
		tokenGenerator: tokenGenerator,
		logger:         logger,
	}
}

// Register creates a new user account and populates its progress store from
// the catalog. The sync step is best-effort: its outcome is logged and a
// failure never rolls back or fails the registration.
func (s *authService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, models.ErrMissingCredentials
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(passwordHash),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.runSync(ctx, user.ID)

	return user, nil
}

// Login authenticates a user, refreshes their progress store from the
// catalog, and issues a bearer token. The sync step is best-effort and runs
// before the token is issued so a first login sees a populated catalog.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", fmt.Errorf("invalid credentials: %w", models.ErrInvalidCredentials)
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		// An unknown username is indistinguishable from a bad password
		if errors.Is(err, models.ErrNotFound) {
			return "", fmt.Errorf("login failed: %w", models.ErrInvalidCredentials)
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("login failed: %w", models.ErrInvalidCredentials)
	}

	s.runSync(ctx, user.ID)

	token, err := s.tokenGenerator.GenerateToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return token, nil
}

// runSync runs the synchronizer and logs its outcome
func (s *authService) runSync(ctx context.Context, userID int) {
	result := s.synchronizer.Synchronize(ctx, userID)
	if result.CatalogUnavailable || result.ChaptersFailed > 0 {
		s.logger.Warn("catalog sync incomplete",
			zap.Int("userId", userID),
			zap.Int("lecturesAdded", result.LecturesAdded),
			zap.Int("chaptersFailed", result.ChaptersFailed),
			zap.Bool("catalogUnavailable", result.CatalogUnavailable),
		)
		return
	}
	if result.LecturesAdded > 0 {
		s.logger.Info("catalog sync added lectures",
			zap.Int("userId", userID),
			zap.Int("lecturesAdded", result.LecturesAdded),
		)
	}
}
