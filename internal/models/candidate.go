package models

type ExperienceMatch string

const (
	ExperiencePoor      ExperienceMatch = "Poor"
	ExperienceFair      ExperienceMatch = "Fair"
	ExperienceGood      ExperienceMatch = "Good"
	ExperienceExcellent ExperienceMatch = "Excellent"
)

type Seniority string

const (
	SeniorityJunior Seniority = "Junior"
	SeniorityMid    Seniority = "Mid-Level"
	SenioritySenior Seniority = "Senior"
)

// ScoreRecord is the structured answer of the match scoring model.
type ScoreRecord struct {
	Score           int             `json:"score"`
	MatchedSkills   []string        `json:"matchedSkills"`
	MissingSkills   []string        `json:"missingSkills"`
	ExperienceMatch ExperienceMatch `json:"experienceMatch"`
	Summary         string          `json:"summary"`
}

type Category struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// CandidateResult is the final per-resume record returned to clients.
type CandidateResult struct {
	Filename string `json:"filename"`
	ScoreRecord
	Category    Category  `json:"category"`
	Seniority   Seniority `json:"seniority"`
	RedFlags    []string  `json:"redFlags"`
	Highlights  []string  `json:"highlights"`
	Recommended bool      `json:"recommended"`
}

type ScreeningFailure struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// ScreeningResult holds the ranked candidates of one batch. Failures is only
// populated when per-file failures are isolated instead of aborting the batch.
type ScreeningResult struct {
	Results  []CandidateResult
	Failures []ScreeningFailure
}
