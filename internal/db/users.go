package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `user_id, full_name, email, password_hash, role, phone, location,
	skills, experience_years, resume_path, profile_completed, created_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Role, &u.Phone,
		&u.Location, &u.Skills, &u.ExperienceYears, &u.ResumePath, &u.ProfileCompleted, &u.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

// CreateUser inserts a new user and returns its ID. A duplicate email
// returns ErrDuplicate.
func (db *DB) CreateUser(ctx context.Context, fullName, email, passwordHash string, role Role) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (full_name, email, password_hash, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING user_id`,
		fullName, email, passwordHash, role,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, ErrDuplicate
		}
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// GetUser retrieves a user by ID, or nil if not found.
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE user_id = $1`, id))
}

// GetUserByEmail retrieves a user by email, or nil if not found.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// CheckEmailExists reports whether a user with the given email exists.
func (db *DB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// ProfileUpdate carries the candidate-editable profile fields. ResumePath is
// only written when non-nil so a profile save without a new upload keeps the
// previous resume.
type ProfileUpdate struct {
	Phone           string
	Location        string
	Skills          string
	ExperienceYears int
	ResumePath      *string
}

// UpdateProfile writes candidate profile fields and marks the profile
// completed.
func (db *DB) UpdateProfile(ctx context.Context, userID uuid.UUID, upd ProfileUpdate) error {
	var err error
	if upd.ResumePath != nil {
		_, err = db.pool.Exec(ctx,
			`UPDATE users
			 SET phone = $1, location = $2, skills = $3, experience_years = $4,
			     resume_path = $5, profile_completed = TRUE
			 WHERE user_id = $6`,
			upd.Phone, upd.Location, upd.Skills, upd.ExperienceYears, *upd.ResumePath, userID)
	} else {
		_, err = db.pool.Exec(ctx,
			`UPDATE users
			 SET phone = $1, location = $2, skills = $3, experience_years = $4,
			     profile_completed = TRUE
			 WHERE user_id = $5`,
			upd.Phone, upd.Location, upd.Skills, upd.ExperienceYears, userID)
	}
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// UpdateCandidateAttributes overwrites the stored skills and experience with
// resume-derived values. The newest resume always wins over previously
// declared values.
func (db *DB) UpdateCandidateAttributes(ctx context.Context, userID uuid.UUID, skills string, experienceYears int) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE users SET skills = $1, experience_years = $2 WHERE user_id = $3`,
		skills, experienceYears, userID)
	if err != nil {
		return fmt.Errorf("failed to update candidate attributes: %w", err)
	}
	return nil
}
