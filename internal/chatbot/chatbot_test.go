package chatbot

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-board/internal/db"
)

// fakeStore records the last query it saw and returns canned jobs.
type fakeStore struct {
	jobs       []db.Job
	lastOpts   *db.ListJobsOptions
	lastSearch string
}

func (f *fakeStore) ListJobs(_ context.Context, opts db.ListJobsOptions) ([]db.Job, error) {
	f.lastOpts = &opts
	return f.jobs, nil
}

func (f *fakeStore) SearchActiveJobs(_ context.Context, term string, _ int) ([]db.Job, error) {
	f.lastSearch = term
	return f.jobs, nil
}

func (f *fakeStore) GetJob(_ context.Context, id uuid.UUID) (*db.Job, error) {
	for i := range f.jobs {
		if f.jobs[i].ID == id {
			return &f.jobs[i], nil
		}
	}
	return nil, nil
}

func sampleJobs(n int) []db.Job {
	jobs := make([]db.Job, n)
	for i := range jobs {
		jobs[i] = db.Job{ID: uuid.New(), Title: "Software Engineer", Status: db.JobStatusActive}
	}
	return jobs
}

func TestGreeting(t *testing.T) {
	d := New(&fakeStore{})

	resp, err := d.Query(context.Background(), "Hello there")
	require.NoError(t, err)
	assert.Contains(t, resp.Message, "Job Assistant")
	assert.NotEmpty(t, resp.Suggestions)
	assert.Empty(t, resp.Jobs)
}

func TestListAllJobs(t *testing.T) {
	store := &fakeStore{jobs: sampleJobs(3)}
	d := New(store)

	resp, err := d.Query(context.Background(), "show jobs")
	require.NoError(t, err)
	assert.Len(t, resp.Jobs, 3)

	require.NotNil(t, store.lastOpts)
	assert.Equal(t, db.JobStatusActive, store.lastOpts.Status)
	assert.Equal(t, maxResults, store.lastOpts.Limit)
}

func TestLocationTakesPrecedenceOverSkill(t *testing.T) {
	store := &fakeStore{jobs: sampleJobs(2)}
	d := New(store)

	resp, err := d.Query(context.Background(), "show python jobs in Bangalore")
	require.NoError(t, err)
	assert.Contains(t, resp.Message, "Bangalore")

	require.NotNil(t, store.lastOpts)
	assert.Equal(t, "Bangalore", store.lastOpts.Location)
	assert.Empty(t, store.lastOpts.TitleOrSkill)
}

func TestLocationWithoutCityAsksForOne(t *testing.T) {
	store := &fakeStore{}
	d := New(store)

	resp, err := d.Query(context.Background(), "filter by location")
	require.NoError(t, err)
	assert.Contains(t, resp.Message, "Which city")
	assert.Nil(t, store.lastOpts)
}

func TestSkillSearch(t *testing.T) {
	store := &fakeStore{jobs: sampleJobs(1)}
	d := New(store)

	resp, err := d.Query(context.Background(), "find python developer roles")
	require.NoError(t, err)
	assert.Contains(t, resp.Message, "Python")

	require.NotNil(t, store.lastOpts)
	assert.Equal(t, "python", store.lastOpts.TitleOrSkill)
}

func TestSalaryIntent(t *testing.T) {
	store := &fakeStore{jobs: sampleJobs(2)}
	d := New(store)

	resp, err := d.Query(context.Background(), "what is the salary range")
	require.NoError(t, err)
	assert.Contains(t, resp.Message, "salary")

	require.NotNil(t, store.lastOpts)
	assert.True(t, store.lastOpts.HasSalary)
}

func TestExperienceBands(t *testing.T) {
	cases := []struct {
		message string
		band    string
	}{
		{"fresher openings please", "0"},
		{"senior level experience roles", "5+"},
		{"jobs by experience", "2"},
	}
	for _, tc := range cases {
		t.Run(tc.message, func(t *testing.T) {
			store := &fakeStore{}
			d := New(store)

			_, err := d.Query(context.Background(), tc.message)
			require.NoError(t, err)
			require.NotNil(t, store.lastOpts)
			assert.Equal(t, tc.band, store.lastOpts.ExperienceBand)
		})
	}
}

func TestJobTypeIntent(t *testing.T) {
	store := &fakeStore{}
	d := New(store)

	_, err := d.Query(context.Background(), "any internship openings")
	require.NoError(t, err)
	require.NotNil(t, store.lastOpts)
	assert.Equal(t, "Internship", store.lastOpts.JobType)
}

func TestHowToApply(t *testing.T) {
	d := New(&fakeStore{})

	resp, err := d.Query(context.Background(), "how to apply")
	require.NoError(t, err)
	assert.Contains(t, resp.Message, "apply")
	assert.Equal(t, "show_jobs", resp.Action)
}

func TestHelp(t *testing.T) {
	d := New(&fakeStore{})

	resp, err := d.Query(context.Background(), "help")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Suggestions)
}

func TestFallbackSearchWithResults(t *testing.T) {
	store := &fakeStore{jobs: sampleJobs(1)}
	d := New(store)

	resp, err := d.Query(context.Background(), "unicorn wrangler")
	require.NoError(t, err)
	assert.Len(t, resp.Jobs, 1)
	assert.Equal(t, "unicorn wrangler", store.lastSearch)
}

func TestFallbackSearchWithoutResults(t *testing.T) {
	d := New(&fakeStore{})

	resp, err := d.Query(context.Background(), "unicorn wrangler")
	require.NoError(t, err)
	assert.Empty(t, resp.Jobs)
	assert.Contains(t, resp.Message, "didn't quite understand")
}

func TestJobDetails(t *testing.T) {
	jobs := sampleJobs(2)
	d := New(&fakeStore{jobs: jobs})

	job, err := d.JobDetails(context.Background(), jobs[1].ID)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, jobs[1].ID, job.ID)

	missing, err := d.JobDetails(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}
