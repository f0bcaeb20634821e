package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/logger"
	"alfredoptarigan/resume-screener/internal/models"
)

const DefaultScoringTemperature float32 = 0.2

type MatchScorer interface {
	Score(ctx context.Context, resumeText, jobDescription string) (*models.ScoreRecord, error)
}

type matchScorer struct {
	llm           LLMClient
	promptBuilder *PromptBuilder
	validate      *validator.Validate
	temperature   float32
	log           *zap.Logger
}

func NewMatchScorer(llm LLMClient, temperature float32, log *zap.Logger) MatchScorer {
	return &matchScorer{
		llm:           llm,
		promptBuilder: NewPromptBuilder(),
		validate:      validator.New(),
		temperature:   temperature,
		log:           log,
	}
}

// scoreResponse mirrors the JSON object requested from the model. Pointers
// distinguish absent keys from zero values.
type scoreResponse struct {
	Score           *float64  `json:"score" validate:"required,min=0,max=100"`
	MatchedSkills   *[]string `json:"matchedSkills" validate:"required"`
	MissingSkills   *[]string `json:"missingSkills" validate:"required"`
	ExperienceMatch *string   `json:"experienceMatch" validate:"required,oneof=Poor Fair Good Excellent"`
	Summary         *string   `json:"summary" validate:"required"`
}

// Score makes exactly one completion call. Failures are not retried.
func (s *matchScorer) Score(ctx context.Context, resumeText, jobDescription string) (*models.ScoreRecord, error) {
	prompt := s.promptBuilder.BuildMatchScoringPrompt(resumeText, jobDescription)

	raw, err := s.llm.GenerateText(ctx, prompt, s.temperature)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScoringFailed, err)
	}

	record, err := s.parseScoreResponse(raw)
	if err != nil {
		s.log.Debug("unparseable scoring response",
			zap.String("provider", s.llm.Provider()),
			zap.String("response", logger.TruncateForLog(raw, 300)),
		)
		return nil, err
	}

	return record, nil
}

func (s *matchScorer) parseScoreResponse(raw string) (*models.ScoreRecord, error) {
	var resp scoreResponse
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}

	if err := s.validate.Struct(resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}

	return &models.ScoreRecord{
		Score:           int(math.Round(*resp.Score)),
		MatchedSkills:   nonNil(*resp.MatchedSkills),
		MissingSkills:   nonNil(*resp.MissingSkills),
		ExperienceMatch: models.ExperienceMatch(*resp.ExperienceMatch),
		Summary:         *resp.Summary,
	}, nil
}

// stripCodeFences removes markdown fence markers the model may wrap its JSON in.
func stripCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
