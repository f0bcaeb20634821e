package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/observability"
)

const (
	MsgNoResumes        = "Please upload at least one resume"
	MsgNoJobDescription = "Please provide a job description"
)

type ScreeningService interface {
	Screen(ctx context.Context, files []models.UploadedResume, jobDescription string) (*models.ScreeningResult, error)
}

type ScreeningOptions struct {
	// Concurrency caps how many resumes are processed at once. 1 processes
	// them strictly one after another.
	Concurrency int
	// IsolateFailures keeps going when a single resume fails and reports it
	// in ScreeningResult.Failures. When false the first failure aborts the batch.
	IsolateFailures bool
}

type screeningService struct {
	worker *resumeWorker
	opts   ScreeningOptions
	log    *zap.Logger
}

func NewScreeningService(
	extractor TextExtractor,
	scorer MatchScorer,
	storage StorageService,
	opts ScreeningOptions,
	log *zap.Logger,
) ScreeningService {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}

	return &screeningService{
		worker: &resumeWorker{
			extractor: extractor,
			scorer:    scorer,
			storage:   storage,
			log:       log,
		},
		opts: opts,
		log:  log,
	}
}

// ValidateScreeningInput checks the batch before any file is touched.
func ValidateScreeningInput(fileCount int, jobDescription string) error {
	if fileCount == 0 {
		return NewValidationError("resumes", MsgNoResumes)
	}
	if strings.TrimSpace(jobDescription) == "" {
		return NewValidationError("jobDescription", MsgNoJobDescription)
	}
	return nil
}

// Screen scores every file and returns the candidates ranked by score,
// highest first. Ties keep upload order.
func (s *screeningService) Screen(ctx context.Context, files []models.UploadedResume, jobDescription string) (*models.ScreeningResult, error) {
	if err := ValidateScreeningInput(len(files), jobDescription); err != nil {
		return nil, err
	}

	start := time.Now()
	defer observability.ObserveBatch(start)

	s.log.Info("🔄 screening started",
		zap.Int("files", len(files)),
		zap.Int("concurrency", s.opts.Concurrency),
		zap.Bool("isolate_failures", s.opts.IsolateFailures),
	)

	results := make([]*models.CandidateResult, len(files))
	failures := make([]error, len(files))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)

	for i, file := range files {
		g.Go(func() error {
			// Files still waiting when the batch is aborted are only cleaned up.
			if err := gCtx.Err(); err != nil {
				if file.Staged {
					s.worker.storage.Remove(file.Path)
				}
				return err
			}

			result, err := s.worker.process(gCtx, file, jobDescription)
			if err != nil {
				if s.opts.IsolateFailures {
					failures[i] = err
					return nil
				}
				return err
			}

			results[i] = &result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.log.Error("❌ screening aborted", zap.Error(err))
		return nil, err
	}

	out := &models.ScreeningResult{
		Results: make([]models.CandidateResult, 0, len(files)),
	}
	for i, r := range results {
		if r != nil {
			out.Results = append(out.Results, *r)
			continue
		}
		if failures[i] != nil {
			out.Failures = append(out.Failures, models.ScreeningFailure{
				Filename: files[i].OriginalName,
				Error:    failures[i].Error(),
			})
		}
	}

	sort.SliceStable(out.Results, func(a, b int) bool {
		return out.Results[a].Score > out.Results[b].Score
	})

	s.log.Info("✅ screening completed",
		zap.Int("ranked", len(out.Results)),
		zap.Int("failed", len(out.Failures)),
		zap.Duration("latency", time.Since(start)),
	)

	return out, nil
}
