package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	LLMRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_requests_total",
			Help: "Total number of LLM completion requests by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)
	LLMRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "LLM completion request duration in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40},
		},
		[]string{"provider"},
	)

	ResumesScreenedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resumes_screened_total",
			Help: "Total number of resumes processed by outcome",
		},
		[]string{"outcome"},
	)
	ScreeningBatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "screening_batch_duration_seconds",
			Help:    "Duration of a full screening batch in seconds",
			Buckets: []float64{1, 2, 5, 10, 20, 40, 80, 160},
		},
	)
	CandidateScoreHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "candidate_score",
			Help:    "Distribution of LLM match scores (0-100)",
			Buckets: []float64{20, 40, 60, 80, 100},
		},
	)
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var initOnce sync.Once

// InitMetrics registers all collectors with the default registry. Safe to call
// more than once.
func InitMetrics() {
	initOnce.Do(func() {
		prometheus.MustRegister(LLMRequestsTotal)
		prometheus.MustRegister(LLMRequestDuration)
		prometheus.MustRegister(ResumesScreenedTotal)
		prometheus.MustRegister(ScreeningBatchDuration)
		prometheus.MustRegister(CandidateScoreHistogram)
	})
}

func ObserveLLMRequest(provider string, start time.Time, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	LLMRequestsTotal.WithLabelValues(provider, outcome).Inc()
	LLMRequestDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}

func ResumeScreened(score int) {
	ResumesScreenedTotal.WithLabelValues(OutcomeSuccess).Inc()
	CandidateScoreHistogram.Observe(float64(score))
}

func ResumeFailed() {
	ResumesScreenedTotal.WithLabelValues(OutcomeFailure).Inc()
}

func ObserveBatch(start time.Time) {
	ScreeningBatchDuration.Observe(time.Since(start).Seconds())
}
