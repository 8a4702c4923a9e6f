// Package chatbot maps free-text queries to a fixed set of intents via
// keyword matching and answers them from the job listing table. This is
// deliberately not NLU: intents are evaluated in a fixed order and the first
// match wins, so ambiguous input always resolves to the earliest matching
// intent.
package chatbot

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/job-board/internal/db"
)

// maxResults bounds how many jobs any single intent returns.
const maxResults = 6

// JobStore is the slice of the storage layer the dispatcher needs.
type JobStore interface {
	ListJobs(ctx context.Context, opts db.ListJobsOptions) ([]db.Job, error)
	SearchActiveJobs(ctx context.Context, term string, limit int) ([]db.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (*db.Job, error)
}

// Response is the structured chatbot reply.
type Response struct {
	Message     string   `json:"message"`
	Jobs        []db.Job `json:"jobs"`
	Suggestions []string `json:"suggestions"`
	Action      string   `json:"action,omitempty"`
}

// intent pairs a predicate with a handler. Intents are evaluated in slice
// order; the first predicate returning true handles the message.
type intent struct {
	name   string
	match  func(msg string) bool
	handle func(ctx context.Context, msg string) (*Response, error)
}

// Dispatcher answers chatbot queries against the job store.
type Dispatcher struct {
	store   JobStore
	intents []intent
}

// New creates a dispatcher bound to a job store.
func New(store JobStore) *Dispatcher {
	d := &Dispatcher{store: store}
	d.intents = []intent{
		{"greeting", matchesAny("hello", "hi", "hey", "start"), d.greeting},
		{"list-jobs", matchesAny("available jobs", "show jobs", "list jobs", "all jobs"), d.listJobs},
		{"location", d.matchLocation, d.byLocation},
		{"skill", matchesAny("python", "java", "react", "developer", "engineer", "analyst", "hr", "ai", "ml"), d.bySkill},
		{"salary", matchesAny("salary", "pay", "package", "lpa"), d.bySalary},
		{"experience", matchesAny("experience", "fresher", "entry level", "senior"), d.byExperience},
		{"job-type", matchesAny("full-time", "part-time", "contract", "internship", "job type"), d.byJobType},
		{"hr-contact", matchesAny("contact", "connect", "recruiter"), d.hrContact},
		{"apply", matchesAny("apply", "application", "how to apply"), d.howToApply},
		{"help", matchesAny("help", "what can you do", "features"), d.help},
	}
	return d
}

// Query dispatches a message to the first matching intent. Input that
// matches no intent falls through to a substring search over active
// postings; a no-match search returns a help message, never an error.
func (d *Dispatcher) Query(ctx context.Context, message string) (*Response, error) {
	msg := strings.ToLower(strings.TrimSpace(message))

	for _, in := range d.intents {
		if in.match(msg) {
			return in.handle(ctx, msg)
		}
	}
	return d.fallbackSearch(ctx, msg)
}

// JobDetails returns one posting for the chatbot detail view, or nil if it
// does not exist.
func (d *Dispatcher) JobDetails(ctx context.Context, jobID uuid.UUID) (*db.Job, error) {
	return d.store.GetJob(ctx, jobID)
}

// matchesAny builds a predicate that is true when any keyword occurs as a
// substring of the message.
func matchesAny(keywords ...string) func(string) bool {
	return func(msg string) bool {
		for _, kw := range keywords {
			if strings.Contains(msg, kw) {
				return true
			}
		}
		return false
	}
}

// cities recognized by the location intent, lowercase token to display name.
var cities = []struct{ token, name string }{
	{"bangalore", "Bangalore"},
	{"delhi", "Delhi"},
	{"mumbai", "Mumbai"},
	{"hyderabad", "Hyderabad"},
	{"chennai", "Chennai"},
	{"pune", "Pune"},
}

func (d *Dispatcher) matchLocation(msg string) bool {
	if strings.Contains(msg, "location") {
		return true
	}
	for _, c := range cities {
		if strings.Contains(msg, c.token) {
			return true
		}
	}
	return false
}

func (d *Dispatcher) greeting(_ context.Context, _ string) (*Response, error) {
	return &Response{
		Message: "👋 Hello! I'm your Job Assistant. I can help you find jobs by title, " +
			"location, or skills, check salary information, and guide you through applying. " +
			"What are you looking for today?",
		Suggestions: []string{
			"Show me Python jobs",
			"Jobs in Bangalore",
			"Full-time positions",
			"Entry level jobs",
		},
	}, nil
}

func (d *Dispatcher) listJobs(ctx context.Context, _ string) (*Response, error) {
	jobs, err := d.activeJobs(ctx, db.ListJobsOptions{})
	if err != nil {
		return nil, err
	}
	return &Response{
		Message:     fmt.Sprintf("📋 Found %d active positions for you!", len(jobs)),
		Jobs:        jobs,
		Suggestions: []string{"Tell me more about these", "Jobs in specific location", "Filter by experience"},
	}, nil
}

func (d *Dispatcher) byLocation(ctx context.Context, msg string) (*Response, error) {
	var location string
	for _, c := range cities {
		if strings.Contains(msg, c.token) {
			location = c.name
			break
		}
	}
	if location == "" {
		return &Response{
			Message:     "Which city are you interested in? (Bangalore, Delhi, Mumbai, Hyderabad, Chennai, Pune)",
			Suggestions: []string{"Bangalore", "Delhi", "Mumbai", "Hyderabad"},
		}, nil
	}

	jobs, err := d.activeJobs(ctx, db.ListJobsOptions{Location: location})
	if err != nil {
		return nil, err
	}
	return &Response{
		Message: fmt.Sprintf("📍 Found %d jobs in %s", len(jobs), location),
		Jobs:    jobs,
	}, nil
}

// skillTerms are the tokens the skill intent can extract as a search term.
var skillTerms = []string{"python", "java", "react", "javascript", "sql", "ai", "ml", "data", "frontend", "backend"}

func (d *Dispatcher) bySkill(ctx context.Context, msg string) (*Response, error) {
	var term string
	for _, s := range skillTerms {
		if strings.Contains(msg, s) {
			term = s
			break
		}
	}
	if term == "" {
		return &Response{Message: "What specific skill or job title are you looking for?"}, nil
	}

	jobs, err := d.activeJobs(ctx, db.ListJobsOptions{TitleOrSkill: term})
	if err != nil {
		return nil, err
	}
	return &Response{
		Message: fmt.Sprintf("💼 Found %d %s related positions", len(jobs), capitalize(term)),
		Jobs:    jobs,
	}, nil
}

func (d *Dispatcher) bySalary(ctx context.Context, _ string) (*Response, error) {
	jobs, err := d.activeJobs(ctx, db.ListJobsOptions{HasSalary: true})
	if err != nil {
		return nil, err
	}
	return &Response{
		Message:     "💰 Here are positions with salary information:",
		Jobs:        jobs,
		Suggestions: []string{"Show high paying jobs", "Entry level salaries"},
	}, nil
}

func (d *Dispatcher) byExperience(ctx context.Context, msg string) (*Response, error) {
	band, label := "2", "2-4 years"
	switch {
	case strings.Contains(msg, "fresher") || strings.Contains(msg, "entry"):
		band, label = "0", "0-2 years"
	case strings.Contains(msg, "senior"):
		band, label = "5+", "5+ years"
	}

	jobs, err := d.activeJobs(ctx, db.ListJobsOptions{ExperienceBand: band})
	if err != nil {
		return nil, err
	}
	return &Response{
		Message: fmt.Sprintf("🎯 Found %d positions for %s experience", len(jobs), label),
		Jobs:    jobs,
	}, nil
}

func (d *Dispatcher) byJobType(ctx context.Context, msg string) (*Response, error) {
	jobType := "Full-time"
	switch {
	case strings.Contains(msg, "part-time") || strings.Contains(msg, "part time"):
		jobType = "Part-time"
	case strings.Contains(msg, "contract"):
		jobType = "Contract"
	case strings.Contains(msg, "internship"):
		jobType = "Internship"
	}

	jobs, err := d.activeJobs(ctx, db.ListJobsOptions{JobType: jobType})
	if err != nil {
		return nil, err
	}
	return &Response{
		Message: fmt.Sprintf("⏰ Found %d %s positions", len(jobs), jobType),
		Jobs:    jobs,
	}, nil
}

func (d *Dispatcher) hrContact(_ context.Context, _ string) (*Response, error) {
	return &Response{
		Message: "📞 To connect with our HR team: apply to any job posting and HR will review " +
			"your application. You'll receive interview invitations via email, and direct " +
			"contact info is available in job postings. Would you like to see available positions?",
		Suggestions: []string{"Show all jobs", "Jobs with immediate hiring"},
	}, nil
}

func (d *Dispatcher) howToApply(_ context.Context, _ string) (*Response, error) {
	return &Response{
		Message: "📝 How to apply: browse jobs that match your skills, open any job card, " +
			"fill in your details and upload a resume, then submit. You can track the status " +
			"from your dashboard. Ready to start? Let me show you some jobs!",
		Suggestions: []string{"Show me jobs", "What documents needed?"},
		Action:      "show_jobs",
	}, nil
}

func (d *Dispatcher) help(_ context.Context, _ string) (*Response, error) {
	return &Response{
		Message: "🤖 I can find jobs by title, skills, or location, filter by experience level, " +
			"check salary information and job types, and guide you through the application " +
			"process. Try asking: \"Show Python jobs in Bangalore\", \"Entry level positions\", " +
			"or \"How to apply?\"",
		Suggestions: []string{"Show all jobs", "Jobs in my city", "Entry level jobs"},
	}, nil
}

const noMatchMessage = "I didn't quite understand that. Try asking: \"Show me jobs in [city]\", " +
	"\"Find [skill] developer jobs\", \"Entry level positions\", or \"Help\" for more options."

func (d *Dispatcher) fallbackSearch(ctx context.Context, msg string) (*Response, error) {
	jobs, err := d.store.SearchActiveJobs(ctx, msg, maxResults)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return &Response{
			Message:     noMatchMessage,
			Suggestions: []string{"Show all jobs", "Help", "Available locations"},
		}, nil
	}
	return &Response{
		Message: fmt.Sprintf("🔍 Found %d jobs matching '%s'", len(jobs), msg),
		Jobs:    jobs,
	}, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// activeJobs runs one filtered listing over active postings, newest first,
// capped at maxResults.
func (d *Dispatcher) activeJobs(ctx context.Context, opts db.ListJobsOptions) ([]db.Job, error) {
	opts.Status = db.JobStatusActive
	opts.Limit = maxResults
	jobs, err := d.store.ListJobs(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	return jobs, nil
}
