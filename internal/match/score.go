// Package match computes compatibility scores between candidate skill sets
// and job requirements.
package match

import "strings"

// Score returns an integer score in [0, 100] measuring how many of the job's
// required skills the candidate covers. The denominator is the job's
// requirement count, so a candidate with extra skills can still score 100.
// An empty requirement set scores 0: there is no ratio to compute against
// nothing, and treating it as a perfect match would rank every candidate
// equally for an underspecified posting.
func Score(candidateSkills, requiredSkills []string) int {
	if len(requiredSkills) == 0 {
		return 0
	}

	have := make(map[string]struct{}, len(candidateSkills))
	for _, s := range candidateSkills {
		have[normalize(s)] = struct{}{}
	}

	required := make(map[string]struct{}, len(requiredSkills))
	for _, s := range requiredSkills {
		required[normalize(s)] = struct{}{}
	}

	matched := 0
	for s := range required {
		if _, ok := have[s]; ok {
			matched++
		}
	}

	return matched * 100 / len(required)
}

// ParseSkills splits a stored comma-delimited skill string into a normalized
// token list: lowercased, trimmed, empties dropped, duplicates removed,
// original order preserved.
func ParseSkills(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var skills []string
	for _, token := range strings.Split(csv, ",") {
		token = normalize(token)
		if token == "" {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		skills = append(skills, token)
	}
	return skills
}

// JoinSkills converts a skill list back to the comma-delimited persistence form.
func JoinSkills(skills []string) string {
	return strings.Join(skills, ", ")
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
