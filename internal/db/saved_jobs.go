package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// SaveJob bookmarks a posting for a candidate. Saving an already-saved job
// returns ErrDuplicate.
func (db *DB) SaveJob(ctx context.Context, candidateID, jobID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO saved_jobs (candidate_id, job_id) VALUES ($1, $2)`,
		candidateID, jobID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to save job: %w", err)
	}
	return nil
}

// UnsaveJob removes a bookmark. Removing a bookmark that does not exist is
// not an error.
func (db *DB) UnsaveJob(ctx context.Context, candidateID, jobID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`DELETE FROM saved_jobs WHERE candidate_id = $1 AND job_id = $2`,
		candidateID, jobID)
	if err != nil {
		return fmt.Errorf("failed to unsave job: %w", err)
	}
	return nil
}

// ListSavedJobs retrieves the postings a candidate has bookmarked, newest
// bookmark first.
func (db *DB) ListSavedJobs(ctx context.Context, candidateID uuid.UUID) ([]Job, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT j.job_id, j.title, j.company, j.location, j.job_type, j.experience_required,
		        j.salary_range, j.skills_required, j.description, j.requirements, j.status,
		        j.posted_by, j.created_at
		 FROM saved_jobs s
		 JOIN jobs j ON s.job_id = j.job_id
		 WHERE s.candidate_id = $1
		 ORDER BY s.saved_on DESC`,
		candidateID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.JobType,
			&j.ExperienceRequired, &j.SalaryRange, &j.SkillsRequired, &j.Description,
			&j.Requirements, &j.Status, &j.PostedBy, &j.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan saved job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// ListSavedJobIDs retrieves just the IDs of a candidate's bookmarks.
func (db *DB) ListSavedJobIDs(ctx context.Context, candidateID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT job_id FROM saved_jobs WHERE candidate_id = $1`, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved job ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan saved job id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
