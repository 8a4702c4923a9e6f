// Package server provides the HTTP REST API for the job board.
package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/job-board/internal/config"
	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/types"
)

// UserStore is the slice of the database layer the user service depends on.
type UserStore interface {
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, fullName, email, passwordHash string, role db.Role) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, upd db.ProfileUpdate) error
	LogActivity(ctx context.Context, userID uuid.UUID, action, details string) error
}

// UserService provides business logic for account and profile operations
type UserService struct {
	db             UserStore
	passwordConfig *config.PasswordConfig
	logger         *zap.Logger
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(db UserStore, passwordConfig *config.PasswordConfig, logger *zap.Logger) *UserService {
	return &UserService{
		db:             db,
		passwordConfig: passwordConfig,
		logger:         logger,
	}
}

// convertDBUserToTypesUser converts db.User to types.User, excluding password hash
func convertDBUserToTypesUser(dbUser *db.User) *types.User {
	if dbUser == nil {
		return nil
	}
	return &types.User{
		ID:               dbUser.ID,
		FullName:         dbUser.FullName,
		Email:            dbUser.Email,
		Role:             string(dbUser.Role),
		Phone:            dbUser.Phone,
		Location:         dbUser.Location,
		Skills:           dbUser.Skills,
		ExperienceYears:  dbUser.ExperienceYears,
		ProfileCompleted: dbUser.ProfileCompleted,
		CreatedAt:        dbUser.CreatedAt,
	}
}

// Register creates a new account with password authentication
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*types.User, error) {
	if !db.ValidRole(req.Role) {
		return nil, &ErrValidation{Field: "role", Message: "must be HR or CANDIDATE"}
	}

	exists, err := s.db.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.db.CreateUser(ctx, req.FullName, req.Email, passwordHash, db.Role(req.Role))
	if err != nil {
		// Registration races on the same email resolve at the unique index.
		if err == db.ErrDuplicate {
			return nil, &ErrEmailAlreadyExists{Email: req.Email}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// The account exists at this point; the activity trail is advisory, so
	// a logging failure must not fail the registration.
	if err := s.db.LogActivity(ctx, userID, db.ActionRegistration, req.Email); err != nil {
		s.logger.Warn("failed to log registration activity",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}

	dbUser, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created user: %w", err)
	}
	if dbUser == nil {
		return nil, fmt.Errorf("created user not found: %s", userID)
	}

	return convertDBUserToTypesUser(dbUser), nil
}

// Login authenticates a user and returns user data
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	dbUser, err := s.db.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	// Security: Always return generic error if user not found or password wrong
	if dbUser == nil {
		return nil, &ErrInvalidCredentials{}
	}

	if !s.passwordConfig.VerifyPassword(req.Password, dbUser.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	if err := s.db.LogActivity(ctx, dbUser.ID, db.ActionLogin, req.Email); err != nil {
		s.logger.Warn("failed to log login activity",
			zap.String("user_id", dbUser.ID.String()),
			zap.Error(err))
	}

	return convertDBUserToTypesUser(dbUser), nil
}

// GetProfile returns the profile for the given user ID
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	dbUser, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if dbUser == nil {
		return nil, &ErrUserNotFound{UserID: userID}
	}
	return convertDBUserToTypesUser(dbUser), nil
}

// UpdateProfile writes candidate profile fields and marks the profile completed
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest, resumePath *string) (*types.User, error) {
	dbUser, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if dbUser == nil {
		return nil, &ErrUserNotFound{UserID: userID}
	}

	upd := db.ProfileUpdate{
		Phone:           req.Phone,
		Location:        req.Location,
		Skills:          req.Skills,
		ExperienceYears: req.ExperienceYears,
		ResumePath:      resumePath,
	}
	if err := s.db.UpdateProfile(ctx, userID, upd); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if err := s.db.LogActivity(ctx, userID, db.ActionProfileUpdate, ""); err != nil {
		s.logger.Warn("failed to log profile update activity",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}

	updated, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve updated user: %w", err)
	}
	return convertDBUserToTypesUser(updated), nil
}
