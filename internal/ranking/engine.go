package ranking

import (
	"context"

	"go.uber.org/zap"

	"github.com/medevidences/matchengine/internal/marketplace"
	"github.com/medevidences/matchengine/internal/matching"
)

// Engine exposes the three caller flows of the matching core. It holds no
// mutable state shared across requests; every method may be invoked
// concurrently for independent inputs.
type Engine struct {
	prefilter *PreFilter
	batch     *BatchRanker
	logger    *zap.Logger
}

func NewEngine(batch *BatchRanker, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		prefilter: NewPreFilter(logger),
		batch:     batch,
		logger:    logger,
	}
}

// TopCandidatesForJob is the employer-recommendation flow: pre-filter the
// pool, rank the surviving batch (oracle first, deterministic fallback),
// drop weak matches and keep the best n.
func (e *Engine) TopCandidatesForJob(ctx context.Context, job *marketplace.Job, pool *marketplace.Candidates, n int) ([]*marketplace.MatchResult, error) {
	eligible := e.prefilter.Apply(job, pool)

	e.logger.Info("candidate pool pre-filtered",
		zap.String("job_id", job.ID),
		zap.Int("initial", pool.Len()),
		zap.Int("eligible", eligible.Len()),
	)

	if eligible.Len() == 0 {
		return []*marketplace.MatchResult{}, nil
	}

	results, err := e.batch.Rank(ctx, job, eligible)
	if err != nil {
		return nil, err
	}

	results = matching.CutOff(results, matching.MinMatchPercentage)
	return matching.SelectTop(results, n)
}

// BrowseCandidatesForJob is the cheap employer browse flow: deterministic
// scoring per pair with no pre-filter and no oracle.
func (e *Engine) BrowseCandidatesForJob(job *marketplace.Job, pool *marketplace.Candidates, n int) ([]*marketplace.MatchResult, error) {
	results := make([]*marketplace.MatchResult, 0, pool.Len())
	for _, candidate := range pool.Items {
		results = append(results, matching.Score(candidate, job))
	}

	results = matching.CutOff(results, matching.MinMatchPercentage)
	return matching.SelectTop(results, n)
}

// JobsForCandidate is the candidate-facing "jobs for me" flow: score each
// posting deterministically, drop weak matches and keep the best n.
func (e *Engine) JobsForCandidate(candidate *marketplace.Candidate, jobs *marketplace.Jobs, n int) ([]*marketplace.MatchResult, error) {
	results := make([]*marketplace.MatchResult, 0, jobs.Len())
	for _, job := range jobs.Items {
		results = append(results, matching.Score(candidate, job))
	}

	results = matching.CutOff(results, matching.MinMatchPercentage)
	return matching.SelectTop(results, n)
}
