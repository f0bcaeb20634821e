package services

import (
	"context"
	"errors"
	"sync"

	"alfredoptarigan/resume-screener/internal/models"
)

type fakeLLM struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
	temps    []float32
}

func (f *fakeLLM) GenerateText(_ context.Context, prompt string, temperature float32) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	f.temps = append(f.temps, temperature)
	return f.response, f.err
}

func (f *fakeLLM) Provider() string { return "fake" }

func (f *fakeLLM) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

// fakeExtractor returns canned text per path.
type fakeExtractor struct {
	texts map[string]string
	errs  map[string]error
}

func (f *fakeExtractor) Extract(filePath, _ string) (string, error) {
	if err, ok := f.errs[filePath]; ok {
		return "", err
	}
	if text, ok := f.texts[filePath]; ok {
		return text, nil
	}
	return "", errors.New("unknown path")
}

// fakeScorer returns canned scores keyed by resume text.
type fakeScorer struct {
	mu     sync.Mutex
	scores map[string]models.ScoreRecord
	errs   map[string]error
	calls  int
}

func (f *fakeScorer) Score(ctx context.Context, resumeText, _ string) (*models.ScoreRecord, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := f.errs[resumeText]; ok {
		return nil, err
	}
	score, ok := f.scores[resumeText]
	if !ok {
		return nil, errors.New("no canned score")
	}
	return &score, nil
}
