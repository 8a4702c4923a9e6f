package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateApplication inserts a new application with status Applied and the
// given score snapshot. A second application for the same (job, candidate)
// pair hits the unique constraint and returns ErrDuplicate; the insert is
// atomic so no partial row is left behind.
func (db *DB) CreateApplication(ctx context.Context, app *Application) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO applications (job_id, candidate_id, status, cover_letter, resume_path, score)
		 VALUES ($1, $2, 'Applied', $3, $4, $5)
		 RETURNING application_id`,
		app.JobID, app.CandidateID, app.CoverLetter, app.ResumePath, app.Score,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, ErrDuplicate
		}
		return uuid.Nil, fmt.Errorf("failed to create application: %w", err)
	}
	return id, nil
}

// GetApplication retrieves an application by ID, or nil if not found.
func (db *DB) GetApplication(ctx context.Context, id uuid.UUID) (*Application, error) {
	var a Application
	err := db.pool.QueryRow(ctx,
		`SELECT application_id, job_id, candidate_id, status, cover_letter, resume_path,
		        score, hr_notes, applied_on, updated_on
		 FROM applications WHERE application_id = $1`,
		id,
	).Scan(&a.ID, &a.JobID, &a.CandidateID, &a.Status, &a.CoverLetter, &a.ResumePath,
		&a.Score, &a.HRNotes, &a.AppliedOn, &a.UpdatedOn)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &a, nil
}

// UpdateApplicationStatus sets the status and HR notes of an application and
// refreshes its updated timestamp. Status validity is the caller's concern;
// this only touches the row.
func (db *DB) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status, hrNotes string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE applications
		 SET status = $1, hr_notes = $2, updated_on = NOW()
		 WHERE application_id = $3`,
		status, hrNotes, id)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("application not found: %s", id)
	}
	return nil
}

// ListApplicantsOptions holds optional filters for the HR applicant view.
type ListApplicantsOptions struct {
	Status string     // exact match; "" means any
	JobID  *uuid.UUID // restrict to one posting
}

// ListApplicants retrieves score-annotated applications joined with
// candidate and job metadata, newest first.
func (db *DB) ListApplicants(ctx context.Context, opts ListApplicantsOptions) ([]Applicant, error) {
	query := `SELECT a.application_id, a.candidate_id, u.full_name, u.email, u.phone, u.skills,
	                 j.job_id, j.title, j.company, a.status, a.score, a.resume_path, a.applied_on
	          FROM applications a
	          JOIN users u ON a.candidate_id = u.user_id
	          JOIN jobs j ON a.job_id = j.job_id
	          WHERE 1=1`
	args := []any{}
	argNum := 1

	if opts.Status != "" {
		query += fmt.Sprintf(" AND a.status = $%d", argNum)
		args = append(args, opts.Status)
		argNum++
	}
	if opts.JobID != nil {
		query += fmt.Sprintf(" AND j.job_id = $%d", argNum)
		args = append(args, *opts.JobID)
	}

	query += " ORDER BY a.applied_on DESC"

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}
	defer rows.Close()

	var applicants []Applicant
	for rows.Next() {
		var a Applicant
		if err := rows.Scan(&a.ApplicationID, &a.CandidateID, &a.FullName, &a.Email, &a.Phone,
			&a.Skills, &a.JobID, &a.JobTitle, &a.Company, &a.Status, &a.Score,
			&a.ResumePath, &a.AppliedOn); err != nil {
			return nil, fmt.Errorf("failed to scan applicant: %w", err)
		}
		applicants = append(applicants, a)
	}
	return applicants, nil
}

// ListApplicationsByCandidate retrieves a candidate's applications joined
// with job metadata, newest first.
func (db *DB) ListApplicationsByCandidate(ctx context.Context, candidateID uuid.UUID) ([]CandidateApplication, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT a.application_id, a.job_id, a.candidate_id, a.status, a.cover_letter,
		        a.resume_path, a.score, a.hr_notes, a.applied_on, a.updated_on,
		        j.title, j.company, j.location, j.job_type
		 FROM applications a
		 JOIN jobs j ON a.job_id = j.job_id
		 WHERE a.candidate_id = $1
		 ORDER BY a.applied_on DESC`,
		candidateID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []CandidateApplication
	for rows.Next() {
		var a CandidateApplication
		if err := rows.Scan(&a.ID, &a.JobID, &a.CandidateID, &a.Status, &a.CoverLetter,
			&a.ResumePath, &a.Score, &a.HRNotes, &a.AppliedOn, &a.UpdatedOn,
			&a.JobTitle, &a.Company, &a.JobLocation, &a.JobType); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, nil
}

// HasApplied reports whether a candidate already applied to a job.
func (db *DB) HasApplied(ctx context.Context, jobID, candidateID uuid.UUID) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND candidate_id = $2)`,
		jobID, candidateID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check application: %w", err)
	}
	return exists, nil
}

// CandidateDashboardStats aggregates a candidate's application counts.
func (db *DB) CandidateDashboardStats(ctx context.Context, candidateID uuid.UUID) (*CandidateDashboard, error) {
	var d CandidateDashboard
	err := db.pool.QueryRow(ctx,
		`SELECT
		   COUNT(*),
		   COUNT(*) FILTER (WHERE status = 'In Review'),
		   COUNT(*) FILTER (WHERE status = 'Shortlisted'),
		   COUNT(*) FILTER (WHERE status = 'Interview')
		 FROM applications WHERE candidate_id = $1`,
		candidateID,
	).Scan(&d.Applied, &d.InReview, &d.Shortlisted, &d.Interviews)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate dashboard stats: %w", err)
	}
	return &d, nil
}
