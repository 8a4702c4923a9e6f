package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_EmptyRequirements(t *testing.T) {
	assert.Equal(t, 0, Score([]string{"python", "sql"}, nil))
	assert.Equal(t, 0, Score(nil, nil))
	assert.Equal(t, 0, Score([]string{"python"}, []string{}))
}

func TestScore_FullCoverage(t *testing.T) {
	// Candidate covering every requirement scores 100, extra skills do not hurt.
	score := Score([]string{"python", "sql", "docker"}, []string{"python", "sql"})
	assert.Equal(t, 100, score)
}

func TestScore_PartialCoverage(t *testing.T) {
	// 2 of 3 requirements met: floor(100 * 2/3) = 66.
	score := Score([]string{"python", "sql"}, []string{"python", "sql", "django"})
	assert.Equal(t, 66, score)
}

func TestScore_NoCandidate(t *testing.T) {
	assert.Equal(t, 0, Score(nil, []string{"python", "sql"}))
}

func TestScore_CaseInsensitive(t *testing.T) {
	score := Score([]string{"Python", " SQL "}, []string{"python", "sql"})
	assert.Equal(t, 100, score)
}

func TestScore_MonotonicInOverlap(t *testing.T) {
	required := []string{"python", "sql", "django", "react"}
	prev := -1
	candidate := []string{}
	for _, s := range required {
		candidate = append(candidate, s)
		score := Score(candidate, required)
		assert.Greater(t, score, prev)
		prev = score
	}
	assert.Equal(t, 100, prev)
}

func TestParseSkills(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
		{"simple list", "Python, SQL, Django", []string{"python", "sql", "django"}},
		{"duplicates removed", "python, Python, sql", []string{"python", "sql"}},
		{"empty tokens dropped", "python,,sql, ,", []string{"python", "sql"}},
		{"multi-word skill", "Machine Learning, SQL", []string{"machine learning", "sql"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSkills(tt.input))
		})
	}
}

func TestJoinSkills_RoundTrip(t *testing.T) {
	skills := []string{"python", "sql", "machine learning"}
	assert.Equal(t, skills, ParseSkills(JoinSkills(skills)))
}
