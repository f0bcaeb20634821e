package services

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"

	"alfredoptarigan/resume-screener/internal/models"
)

const (
	RecommendedMinScore      = 60
	MinResumeLength          = 200
	MissingSkillsFlagMinimum = 4
)

var yearsOfExperience = regexp.MustCompile(`(\d+)\s*\+?\s*years?\s*(of\s*)?(experience|exp)`)

// Category buckets are inclusive on their lower bound.
func Category(score int) models.Category {
	switch {
	case score >= 80:
		return models.Category{Label: "Strong Match", Color: "green"}
	case score >= 60:
		return models.Category{Label: "Maybe", Color: "yellow"}
	case score >= 40:
		return models.Category{Label: "Weak Match", Color: "orange"}
	default:
		return models.Category{Label: "Not Suitable", Color: "red"}
	}
}

// SeniorityLevel prefers an explicit "N years of experience" mention over
// title keywords.
func SeniorityLevel(resumeText string) models.Seniority {
	text := strings.ToLower(resumeText)

	if m := yearsOfExperience.FindStringSubmatch(text); m != nil {
		years, err := strconv.Atoi(m[1])
		if errors.Is(err, strconv.ErrRange) {
			return models.SenioritySenior
		}
		if err == nil {
			switch {
			case years >= 8:
				return models.SenioritySenior
			case years >= 3:
				return models.SeniorityMid
			default:
				return models.SeniorityJunior
			}
		}
	}

	if containsAny(text, "senior", "lead", "architect") {
		return models.SenioritySenior
	}
	if containsAny(text, "junior", "intern", "fresher", "trainee") {
		return models.SeniorityJunior
	}

	return models.SeniorityMid
}

func RedFlags(resumeText string, missingSkills []string) []string {
	flags := []string{}
	text := strings.ToLower(resumeText)

	if len(missingSkills) >= MissingSkillsFlagMinimum {
		flags = append(flags, "High number of missing skills")
	}

	if textLength(resumeText) < MinResumeLength {
		flags = append(flags, "Resume content too short or unreadable")
	}

	if !containsAny(text, "@", "email") {
		flags = append(flags, "No email address found")
	}

	if containsAny(text, "gap", "career break") {
		flags = append(flags, "Possible employment gap mentioned")
	}

	return flags
}

func Highlights(resumeText string) []string {
	highlights := []string{}
	text := strings.ToLower(resumeText)

	if containsAny(text, "github", "portfolio") {
		highlights = append(highlights, "Has GitHub or portfolio link")
	}
	if containsAny(text, "open source", "open-source") {
		highlights = append(highlights, "Open source contributions")
	}
	if containsAny(text, "award", "achievement", "winner") {
		highlights = append(highlights, "Has awards or achievements")
	}
	if containsAny(text, "certified", "certification") {
		highlights = append(highlights, "Has certifications")
	}
	if containsAny(text, "published", "research paper", "patent") {
		highlights = append(highlights, "Published work or patents")
	}

	return highlights
}

// EvaluateResume combines the score with the text heuristics. It has no side
// effects; the same input always yields the same result. Keyword checks are
// plain substring matches, so "no github" still counts as a GitHub mention.
func EvaluateResume(filename, resumeText string, score models.ScoreRecord) models.CandidateResult {
	return models.CandidateResult{
		Filename:    filename,
		ScoreRecord: score,
		Category:    Category(score.Score),
		Seniority:   SeniorityLevel(resumeText),
		RedFlags:    RedFlags(resumeText, score.MissingSkills),
		Highlights:  Highlights(resumeText),
		Recommended: score.Score >= RecommendedMinScore,
	}
}

// textLength counts UTF-16 code units, so a character outside the BMP counts
// twice.
func textLength(s string) int {
	n := 0
	for _, r := range s {
		n += max(utf16.RuneLen(r), 1)
	}
	return n
}

func containsAny(text string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
