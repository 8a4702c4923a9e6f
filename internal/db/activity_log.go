package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ActivityEntry is one row of the audit trail.
type ActivityEntry struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Action    string     `json:"action"`
	Details   string     `json:"details,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Activity log actions.
const (
	ActionRegistration  = "REGISTRATION"
	ActionLogin         = "LOGIN"
	ActionJobPosted     = "JOB_POSTED"
	ActionApplication   = "APPLICATION"
	ActionStatusChange  = "STATUS_CHANGE"
	ActionProfileUpdate = "PROFILE_UPDATE"
)

// LogActivity appends an entry to the audit trail. Failures are returned to
// the caller, who typically logs and continues: the trail is advisory, not
// transactional with the action it records.
func (db *DB) LogActivity(ctx context.Context, userID uuid.UUID, action, details string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO activity_log (user_id, action, details) VALUES ($1, $2, $3)`,
		userID, action, details)
	if err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}
	return nil
}

// ListActivity retrieves recent audit entries, newest first.
func (db *DB) ListActivity(ctx context.Context, limit int) ([]ActivityEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT log_id, user_id, action, details, created_at
		 FROM activity_log ORDER BY created_at DESC LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	var entries []ActivityEntry
	for rows.Next() {
		var e ActivityEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.Details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
