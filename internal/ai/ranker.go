package ai

import (
	"context"

	"github.com/medevidences/matchengine/internal/marketplace"
	"github.com/medevidences/matchengine/internal/matching"
)

// RankedScore is one entry of the oracle's response: a holistic 0-100 score
// for the candidate at Index in the submitted batch, with a one-sentence
// reason.
type RankedScore struct {
	Index  int
	Score  int
	Reason string
}

// Ranker scores a bounded batch of candidates against one job in a single
// request. Implementations are expected to be I/O-bound; callers bound the
// call with a context deadline and fall back to local heuristics on any
// error.
type Ranker interface {
	RankCandidates(ctx context.Context, job *marketplace.Job, batch []*marketplace.Candidate, criteria *matching.IndustryCriteria) ([]RankedScore, error)
}
