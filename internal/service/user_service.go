package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"taskboard/internal/domain"
	"taskboard/internal/service/auth"
	"taskboard/internal/store"
)

// ProfileUpdate carries the optional profile fields of an update request.
// Nil pointers leave the current value untouched.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	AvatarURL *string
}

// UserService provides account registration, authentication and profile
// management.
type UserService interface {
	// Register creates an account with a hashed password.
	// Returns store.ErrEmailExists if the email is taken.
	Register(ctx context.Context, email, password, firstName, lastName string) (*domain.User, error)

	// Authenticate checks the credentials and returns the account.
	// Returns ErrInvalidCredentials on unknown email or wrong password,
	// ErrAccountDisabled for deactivated accounts.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// ListUsers returns one page of users and the total match count.
	ListUsers(ctx context.Context, filter store.UserFilter) ([]*domain.User, int, error)

	// UpdateProfile applies the non-nil fields of update to the user's profile.
	UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*domain.User, error)

	// DeleteAccount removes the user and everything the user owns.
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	verifier  auth.PasswordVerifier
	logger    *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) *UserServiceImpl {
	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		verifier:  verifier,
		logger:    logger.With("component", "user_service"),
	}
}

// Register creates an account with a hashed password.
func (s *UserServiceImpl) Register(
	ctx context.Context,
	email, password, firstName, lastName string,
) (*domain.User, error) {
	user, err := domain.NewUser(email, password)
	if err != nil {
		return nil, fmt.Errorf("invalid registration: %w", err)
	}
	user.FirstName = firstName
	user.LastName = lastName

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("registration with existing email", "email", user.Email)
			return nil, err
		}
		s.logger.Error("failed to save user", "error", err)
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate checks the credentials and returns the account.
func (s *UserServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user for login", "error", err)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("password mismatch", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to retrieve user", "error", err, "user_id", userID)
		}
		return nil, err
	}
	return user, nil
}

// ListUsers returns one page of users and the total match count.
func (s *UserServiceImpl) ListUsers(ctx context.Context, filter store.UserFilter) ([]*domain.User, int, error) {
	users, total, err := s.userStore.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// UpdateProfile applies the non-nil fields of update to the user's profile.
func (s *UserServiceImpl) UpdateProfile(
	ctx context.Context,
	userID uuid.UUID,
	update ProfileUpdate,
) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.AvatarURL != nil {
		user.AvatarURL = *update.AvatarURL
	}

	if err := s.userStore.Update(ctx, user); err != nil {
		s.logger.Error("failed to update profile", "error", err, "user_id", userID)
		return nil, err
	}

	return user, nil
}

// DeleteAccount removes the user and everything the user owns.
func (s *UserServiceImpl) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if err := s.userStore.Delete(ctx, userID); err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to delete account", "error", err, "user_id", userID)
		}
		return err
	}
	s.logger.Info("account deleted", "user_id", userID)
	return nil
}
