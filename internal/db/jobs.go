package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const jobColumns = `job_id, title, company, location, job_type, experience_required,
	salary_range, skills_required, description, requirements, status, posted_by, created_at`

func scanJob(row pgx.Row) (*Job, error) {
	var j Job
	err := row.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.JobType, &j.ExperienceRequired,
		&j.SalaryRange, &j.SkillsRequired, &j.Description, &j.Requirements, &j.Status,
		&j.PostedBy, &j.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan job: %w", err)
	}
	return &j, nil
}

// CreateJob inserts a new posting and returns its ID.
func (db *DB) CreateJob(ctx context.Context, job *Job) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (title, company, location, job_type, experience_required,
		                   salary_range, skills_required, description, requirements, status, posted_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'Active', $10)
		 RETURNING job_id`,
		job.Title, job.Company, job.Location, job.JobType, job.ExperienceRequired,
		job.SalaryRange, job.SkillsRequired, job.Description, job.Requirements, job.PostedBy,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create job: %w", err)
	}
	return id, nil
}

// GetJob retrieves a posting by ID, or nil if not found.
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	return scanJob(db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE job_id = $1`, id))
}

// UpdateJob overwrites the editable fields of a posting.
func (db *DB) UpdateJob(ctx context.Context, job *Job) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE jobs
		 SET title = $1, company = $2, location = $3, job_type = $4, experience_required = $5,
		     salary_range = $6, skills_required = $7, description = $8, requirements = $9
		 WHERE job_id = $10`,
		job.Title, job.Company, job.Location, job.JobType, job.ExperienceRequired,
		job.SalaryRange, job.SkillsRequired, job.Description, job.Requirements, job.ID)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %s", job.ID)
	}
	return nil
}

// CloseJob marks a posting Closed. Postings are never hard-deleted so
// existing applications keep their target.
func (db *DB) CloseJob(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE jobs SET status = 'Closed' WHERE job_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to close job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %s", id)
	}
	return nil
}

// ListJobsOptions holds optional filters for listing jobs. Substring filters
// are case-insensitive.
type ListJobsOptions struct {
	Search         string // title OR company OR skills_required substring
	TitleOrSkill   string // title OR skills_required OR description substring
	Location       string // location substring
	JobType        string // exact match
	ExperienceBand string // experience_required substring
	HasSalary      bool   // non-empty salary_range only
	Status         string // exact match; "" means any
	Limit          int
	Offset         int
}

// ListJobs retrieves postings matching the filters, newest first.
func (db *DB) ListJobs(ctx context.Context, opts ListJobsOptions) ([]Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE 1=1`
	args := []any{}
	argNum := 1

	add := func(clause string, value any) {
		query += fmt.Sprintf(clause, argNum)
		args = append(args, value)
		argNum++
	}

	if opts.Status != "" {
		add(" AND status = $%d", opts.Status)
	}
	if opts.Search != "" {
		pattern := "%" + opts.Search + "%"
		query += fmt.Sprintf(" AND (title ILIKE $%d OR company ILIKE $%d OR skills_required ILIKE $%d)",
			argNum, argNum, argNum)
		args = append(args, pattern)
		argNum++
	}
	if opts.TitleOrSkill != "" {
		pattern := "%" + opts.TitleOrSkill + "%"
		query += fmt.Sprintf(" AND (title ILIKE $%d OR skills_required ILIKE $%d OR description ILIKE $%d)",
			argNum, argNum, argNum)
		args = append(args, pattern)
		argNum++
	}
	if opts.Location != "" {
		add(" AND location ILIKE $%d", "%"+opts.Location+"%")
	}
	if opts.JobType != "" {
		add(" AND job_type = $%d", opts.JobType)
	}
	if opts.ExperienceBand != "" {
		add(" AND experience_required ILIKE $%d", "%"+opts.ExperienceBand+"%")
	}
	if opts.HasSalary {
		query += ` AND salary_range != ''`
	}

	query += " ORDER BY created_at DESC"

	if opts.Limit > 0 {
		add(" LIMIT $%d", opts.Limit)
	}
	if opts.Offset > 0 {
		add(" OFFSET $%d", opts.Offset)
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.JobType,
			&j.ExperienceRequired, &j.SalaryRange, &j.SkillsRequired, &j.Description,
			&j.Requirements, &j.Status, &j.PostedBy, &j.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// SearchActiveJobs is the chatbot fallback search: substring match across
// title, company, skills and description of active postings.
func (db *DB) SearchActiveJobs(ctx context.Context, term string, limit int) ([]Job, error) {
	pattern := "%" + strings.TrimSpace(term) + "%"
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs
		 WHERE status = 'Active'
		   AND (title ILIKE $1 OR company ILIKE $1 OR skills_required ILIKE $1 OR description ILIKE $1)
		 ORDER BY created_at DESC
		 LIMIT $2`,
		pattern, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.JobType,
			&j.ExperienceRequired, &j.SalaryRange, &j.SkillsRequired, &j.Description,
			&j.Requirements, &j.Status, &j.PostedBy, &j.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// HRDashboardStats aggregates board-wide counts for the HR dashboard.
func (db *DB) HRDashboardStats(ctx context.Context) (*HRDashboard, error) {
	var d HRDashboard
	err := db.pool.QueryRow(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM jobs),
		   (SELECT COUNT(*) FROM jobs WHERE status = 'Active'),
		   (SELECT COUNT(*) FROM applications),
		   (SELECT COUNT(*) FROM applications WHERE status = 'Shortlisted'),
		   (SELECT COUNT(*) FROM applications WHERE status = 'Interview')`,
	).Scan(&d.TotalJobs, &d.ActiveJobs, &d.TotalApplications, &d.Shortlisted, &d.Interviews)
	if err != nil {
		return nil, fmt.Errorf("failed to load HR dashboard stats: %w", err)
	}
	return &d, nil
}
