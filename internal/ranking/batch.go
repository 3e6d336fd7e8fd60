package ranking

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/medevidences/matchengine/internal/ai"
	"github.com/medevidences/matchengine/internal/marketplace"
	"github.com/medevidences/matchengine/internal/matching"
)

const (
	// DefaultBatchCap bounds how many candidates go to the oracle in one
	// request. A scale/cost control, not a quality filter: callers needing
	// exhaustive ranking call Rank repeatedly and merge.
	DefaultBatchCap = 20

	defaultOracleTimeout = 30 * time.Second

	fallbackRankingReason = "Matched based on experience and skills"
)

// BatchRanker ranks a bounded batch of candidates against one job. It
// attempts the AI ranking oracle first and recovers any oracle failure
// locally with a deterministic heuristic, so it always returns one result
// per submitted candidate.
type BatchRanker struct {
	ranker   ai.Ranker
	logger   *zap.Logger
	batchCap int
	timeout  time.Duration
}

type BatchRankerOption func(*BatchRanker)

// WithBatchCap overrides the per-request candidate cap.
func WithBatchCap(n int) BatchRankerOption {
	return func(b *BatchRanker) { b.batchCap = n }
}

// WithOracleTimeout bounds the single oracle call. On expiry the fallback
// path is taken; the call is never retried.
func WithOracleTimeout(d time.Duration) BatchRankerOption {
	return func(b *BatchRanker) { b.timeout = d }
}

// NewBatchRanker builds a ranker. A nil oracle is allowed and routes every
// batch to the deterministic fallback. A non-positive batch cap is caller
// misuse.
func NewBatchRanker(ranker ai.Ranker, logger *zap.Logger, opts ...BatchRankerOption) (*BatchRanker, error) {
	b := &BatchRanker{
		ranker:   ranker,
		logger:   logger,
		batchCap: DefaultBatchCap,
		timeout:  defaultOracleTimeout,
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.batchCap <= 0 {
		return nil, fmt.Errorf("batch cap must be positive, got %d", b.batchCap)
	}
	if b.timeout <= 0 {
		return nil, fmt.Errorf("oracle timeout must be positive, got %s", b.timeout)
	}
	if b.logger == nil {
		b.logger = zap.NewNop()
	}

	return b, nil
}

// Rank scores at most the leading batch-cap candidates of the pool, in
// caller-supplied order. Oracle failures are recovered locally and never
// returned; the error is reserved for contract misuse.
func (b *BatchRanker) Rank(ctx context.Context, job *marketplace.Job, candidates *marketplace.Candidates) ([]*marketplace.MatchResult, error) {
	if job == nil {
		return nil, fmt.Errorf("job is required")
	}

	batch := candidates.First(b.batchCap).Items
	if len(batch) == 0 {
		return []*marketplace.MatchResult{}, nil
	}

	criteria := matching.ResolveCriteria(job.Category)

	if b.ranker == nil {
		b.logger.Info("ranking oracle is not configured, using fallback scoring",
			zap.String("job_id", job.ID),
			zap.Int("batch_size", len(batch)),
		)
		return b.fallback(job, batch), nil
	}

	octx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	scores, err := b.ranker.RankCandidates(octx, job, batch, criteria)
	if err != nil {
		b.logger.Warn("oracle ranking failed, using fallback scoring",
			zap.String("job_id", job.ID),
			zap.Int("batch_size", len(batch)),
			zap.Error(err),
		)
		return b.fallback(job, batch), nil
	}

	if reason := validateScores(scores, len(batch)); reason != "" {
		b.logger.Warn("oracle response is malformed, using fallback scoring",
			zap.String("job_id", job.ID),
			zap.String("reason", reason),
		)
		return b.fallback(job, batch), nil
	}

	// Oracle-returned order is preserved; sorting is the selector's job.
	results := make([]*marketplace.MatchResult, 0, len(scores))
	for _, score := range scores {
		result := matching.Score(batch[score.Index], job)
		result.MatchPercentage = float64(score.Score)
		result.RankingReason = score.Reason
		results = append(results, result)
	}

	b.logger.Info("oracle ranking completed",
		zap.String("job_id", job.ID),
		zap.Int("ranked", len(results)),
	)

	return results, nil
}

// validateScores checks that the oracle covered every submitted candidate
// exactly once with in-range indices. Anything else counts as a malformed
// response.
func validateScores(scores []ai.RankedScore, batchSize int) string {
	if len(scores) != batchSize {
		return fmt.Sprintf("expected %d rankings, got %d", batchSize, len(scores))
	}

	seen := make(map[int]struct{}, len(scores))
	for _, score := range scores {
		if score.Index < 0 || score.Index >= batchSize {
			return fmt.Sprintf("candidate index %d out of range", score.Index)
		}
		if _, dup := seen[score.Index]; dup {
			return fmt.Sprintf("candidate index %d returned twice", score.Index)
		}
		seen[score.Index] = struct{}{}
	}
	return ""
}

// fallback computes the deterministic candidate-quality heuristic. It is
// independent of the oracle and of the job-fit scorer: a profile-strength
// measure used whenever holistic ranking is unavailable.
func (b *BatchRanker) fallback(job *marketplace.Job, batch []*marketplace.Candidate) []*marketplace.MatchResult {
	results := make([]*marketplace.MatchResult, 0, len(batch))
	for _, candidate := range batch {
		result := matching.Score(candidate, job)
		result.MatchPercentage = fallbackScore(candidate)
		result.RankingReason = fallbackRankingReason
		results = append(results, result)
	}
	return results
}

func fallbackScore(candidate *marketplace.Candidate) float64 {
	var score float64

	switch years := candidate.ExperienceYears; {
	case years >= 5:
		score += 30
	case years >= 3:
		score += 20
	case years >= 1:
		score += 10
	}

	score += math.Min(30, candidate.VettingScore()*0.3)
	score += math.Min(20, float64(2*len(candidate.Skills)))

	if candidate.InterviewCompleted {
		score += 20
	}

	return float64(int(score))
}
