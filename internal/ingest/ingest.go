// Package ingest extracts text from uploaded resume documents and derives
// candidate attributes (skills, years of experience) from it.
package ingest

import (
	"regexp"
	"strconv"
	"strings"
)

// SkillVocabulary is the fixed, ordered list of skill tokens the analyzer
// recognizes. Detected skills are reported in this order.
var SkillVocabulary = []string{
	"python",
	"java",
	"flask",
	"django",
	"react",
	"node",
	"sql",
	"machine learning",
	"html",
	"css",
	"javascript",
}

// experiencePattern matches the first "<N> years" or "<N>+ years" mention.
var experiencePattern = regexp.MustCompile(`(\d+)\s*\+?\s*years`)

// Result holds the attributes derived from a resume.
type Result struct {
	Skills          []string
	ExperienceYears int
}

// Analyze derives skills and experience from resume text. It is a pure
// function of the text: skills are vocabulary tokens appearing as literal
// substrings of the lowercased text, experience comes from the first
// "N years" mention only (no aggregation), defaulting to 0.
func Analyze(text string) Result {
	lowered := strings.ToLower(text)

	var skills []string
	for _, skill := range SkillVocabulary {
		if strings.Contains(lowered, skill) {
			skills = append(skills, skill)
		}
	}

	years := 0
	if m := experiencePattern.FindStringSubmatch(lowered); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			years = n
		}
	}

	return Result{Skills: skills, ExperienceYears: years}
}

// Parse decodes a PDF document and analyzes its text. Decode failure is
// returned to the caller, who decides whether to fall back to declared
// profile fields.
func Parse(data []byte) (Result, error) {
	text, err := ExtractText(data)
	if err != nil {
		return Result{}, err
	}
	return Analyze(text), nil
}
