package db

import (
	"context"
	"fmt"
)

// schemaStatements creates the job board tables. Application and saved-job
// uniqueness is enforced here, in the storage layer, so concurrent requests
// cannot race past an application-level check.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		full_name TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		skills TEXT NOT NULL DEFAULT '',
		experience_years INTEGER NOT NULL DEFAULT 0,
		resume_path TEXT NOT NULL DEFAULT '',
		profile_completed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS jobs (
		job_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title TEXT NOT NULL,
		company TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		job_type TEXT NOT NULL DEFAULT 'Full-time',
		experience_required TEXT NOT NULL DEFAULT '',
		salary_range TEXT NOT NULL DEFAULT '',
		skills_required TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		requirements TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'Active',
		posted_by UUID REFERENCES users(user_id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS applications (
		application_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		job_id UUID NOT NULL REFERENCES jobs(job_id),
		candidate_id UUID NOT NULL REFERENCES users(user_id),
		status TEXT NOT NULL DEFAULT 'Applied',
		cover_letter TEXT NOT NULL DEFAULT '',
		resume_path TEXT NOT NULL DEFAULT '',
		score INTEGER NOT NULL DEFAULT 0,
		hr_notes TEXT NOT NULL DEFAULT '',
		applied_on TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_on TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE(job_id, candidate_id)
	)`,
	`CREATE TABLE IF NOT EXISTS saved_jobs (
		save_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		candidate_id UUID NOT NULL REFERENCES users(user_id),
		job_id UUID NOT NULL REFERENCES jobs(job_id),
		saved_on TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE(candidate_id, job_id)
	)`,
	`CREATE TABLE IF NOT EXISTS activity_log (
		log_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID REFERENCES users(user_id),
		action TEXT NOT NULL,
		details TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// InitSchema creates all tables if they do not exist.
func (db *DB) InitSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// sampleJobs seeds an empty board so the listing and chatbot endpoints have
// something to show on a fresh install.
var sampleJobs = []Job{
	{Title: "Python Developer", Company: "TechCorp", Location: "Bangalore", JobType: "Full-time",
		ExperienceRequired: "2-4 years", SalaryRange: "₹8-12 LPA", SkillsRequired: "Python, Flask, Django, SQL",
		Description: "Backend Python development with Flask/Django", Requirements: "Strong Python skills, REST API experience"},
	{Title: "Frontend Developer", Company: "WebWorks", Location: "Hyderabad", JobType: "Full-time",
		ExperienceRequired: "1-3 years", SalaryRange: "₹6-10 LPA", SkillsRequired: "React, JavaScript, CSS, Bootstrap",
		Description: "React.js & Bootstrap development", Requirements: "Modern JavaScript, responsive design"},
	{Title: "Data Analyst", Company: "DataInsights", Location: "Chennai", JobType: "Full-time",
		ExperienceRequired: "0-2 years", SalaryRange: "₹5-8 LPA", SkillsRequired: "SQL, Python, Excel, Tableau",
		Description: "SQL & Python analysis with data visualization", Requirements: "Strong analytical skills, SQL proficiency"},
	{Title: "HR Executive", Company: "HR Solutions", Location: "Delhi", JobType: "Full-time",
		ExperienceRequired: "1-3 years", SalaryRange: "₹4-7 LPA", SkillsRequired: "Recruitment, Communication",
		Description: "Recruitment & HR management tasks", Requirements: "Good communication, recruiting experience"},
	{Title: "AI Engineer", Company: "AI Labs", Location: "Pune", JobType: "Full-time",
		ExperienceRequired: "3-5 years", SalaryRange: "₹15-25 LPA", SkillsRequired: "Python, TensorFlow, ML, Deep Learning",
		Description: "Machine Learning model development", Requirements: "Strong ML background, research experience"},
}

// SeedSampleJobs inserts sample postings if the jobs table is empty.
func (db *DB) SeedSampleJobs(ctx context.Context) error {
	var count int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count jobs: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, job := range sampleJobs {
		_, err := db.pool.Exec(ctx,
			`INSERT INTO jobs (title, company, location, job_type, experience_required,
			                   salary_range, skills_required, description, requirements, status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'Active')`,
			job.Title, job.Company, job.Location, job.JobType, job.ExperienceRequired,
			job.SalaryRange, job.SkillsRequired, job.Description, job.Requirements,
		)
		if err != nil {
			return fmt.Errorf("failed to seed job %q: %w", job.Title, err)
		}
	}
	return nil
}
