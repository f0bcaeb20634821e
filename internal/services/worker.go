package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/observability"
)

// resumeWorker owns one resume from extraction to its removal from staging.
type resumeWorker struct {
	extractor TextExtractor
	scorer    MatchScorer
	storage   StorageService
	log       *zap.Logger
}

func (w *resumeWorker) process(ctx context.Context, file models.UploadedResume, jobDescription string) (result models.CandidateResult, err error) {
	log := w.log.With(zap.String("filename", file.OriginalName))
	start := time.Now()

	defer func() {
		if file.Staged {
			if rmErr := w.storage.Remove(file.Path); rmErr != nil {
				log.Warn("failed to remove staged file", zap.String("path", file.Path), zap.Error(rmErr))
			}
		}

		if err != nil {
			observability.ResumeFailed()
			log.Warn("❌ resume failed", zap.Error(err))
			return
		}

		observability.ResumeScreened(result.Score)
		log.Info("✅ resume screened",
			zap.Int("score", result.Score),
			zap.String("category", result.Category.Label),
			zap.Duration("latency", time.Since(start)),
		)
	}()

	log.Debug("📄 extracting text", zap.String("media_type", file.MediaType))
	resumeText, err := w.extractor.Extract(file.Path, file.MediaType)
	if err != nil {
		return models.CandidateResult{}, fmt.Errorf("%s: %w", file.OriginalName, err)
	}

	if err := ctx.Err(); err != nil {
		return models.CandidateResult{}, err
	}

	log.Debug("🤖 scoring resume", zap.Int("chars", len(resumeText)))
	score, err := w.scorer.Score(ctx, resumeText, jobDescription)
	if err != nil {
		return models.CandidateResult{}, fmt.Errorf("%s: %w", file.OriginalName, err)
	}

	return EvaluateResume(file.OriginalName, resumeText, *score), nil
}
