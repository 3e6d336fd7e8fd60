package ranking

import (
	"strings"

	"go.uber.org/zap"

	"github.com/medevidences/matchengine/internal/marketplace"
)

// Rule is a single eligibility gate applied to a candidate pool before the
// expensive ranking step. Rules drop candidates silently and preserve the
// pool's order.
type Rule interface {
	Name() string
	Apply(job *marketplace.Job, candidates *marketplace.Candidates) (*marketplace.Candidates, Step)
}

// Step describes the result of executing one pre-filter rule.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Status represents runtime information about a rule.
type Status struct {
	Name    string
	Details map[string]string
}

// PreFilter narrows a candidate pool to those minimally eligible for a job.
// It is used only in the employer-recommendation flow; the direct
// job-matching flow skips it.
type PreFilter struct {
	rules  []Rule
	logger *zap.Logger
}

// NewPreFilter builds the pre-filter with the standard rule chain.
func NewPreFilter(logger *zap.Logger) *PreFilter {
	return &PreFilter{
		logger: logger,
		rules: []Rule{
			&specializationRule{},
			&experienceFloorRule{},
			&profileCompleteRule{},
			&vettingRule{},
		},
	}
}

// Apply runs every rule in order. A candidate survives only when all rules
// keep it.
func (f *PreFilter) Apply(job *marketplace.Job, candidates *marketplace.Candidates) *marketplace.Candidates {
	if candidates == nil {
		return &marketplace.Candidates{}
	}

	pool := candidates
	for _, rule := range f.rules {
		next, step := rule.Apply(job, pool)
		if f.logger != nil {
			f.logger.Info("pre-filter rule",
				zap.String("name", rule.Name()),
				zap.Int("initial", step.Initial),
				zap.Int("dropped", step.Dropped),
				zap.Int("left", step.Left),
			)
		}
		pool = next
	}

	return pool
}

// Describe returns status entries for the configured rules.
func (f *PreFilter) Describe() []Status {
	statuses := make([]Status, 0, len(f.rules))
	for _, rule := range f.rules {
		if reporter, ok := rule.(interface{ Status() Status }); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}
		statuses = append(statuses, Status{Name: rule.Name()})
	}
	return statuses
}

func keep(candidates *marketplace.Candidates, pred func(*marketplace.Candidate) bool) (*marketplace.Candidates, Step) {
	initial := candidates.Len()
	kept := make([]*marketplace.Candidate, 0, initial)
	for _, candidate := range candidates.Items {
		if pred(candidate) {
			kept = append(kept, candidate)
		}
	}
	return &marketplace.Candidates{Items: kept}, Step{
		Initial: initial,
		Dropped: initial - len(kept),
		Left:    len(kept),
	}
}

// specializationKeywords is the coarse topical gate: the marketplace serves
// medical and scientific roles only, independent of the job's own category.
var specializationKeywords = []string{"medical", "research", "science", "clinical", "health"}

type specializationRule struct{}

func (r *specializationRule) Name() string { return "specialization" }

func (r *specializationRule) Apply(_ *marketplace.Job, candidates *marketplace.Candidates) (*marketplace.Candidates, Step) {
	return keep(candidates, func(c *marketplace.Candidate) bool {
		specialization := strings.ToLower(c.Specialization)
		for _, keyword := range specializationKeywords {
			if strings.Contains(specialization, keyword) {
				return true
			}
		}
		return false
	})
}

func (r *specializationRule) Status() Status {
	return Status{
		Name:    r.Name(),
		Details: map[string]string{"keywords": strings.Join(specializationKeywords, ",")},
	}
}

type experienceFloorRule struct{}

func (r *experienceFloorRule) Name() string { return "experience_floor" }

// Apply requires candidates to hold at least 80% of the years extracted
// from the job's free-text experience requirement. Postings with no digits
// in the requirement impose no floor.
func (r *experienceFloorRule) Apply(job *marketplace.Job, candidates *marketplace.Candidates) (*marketplace.Candidates, Step) {
	required := 0
	if job != nil {
		required = leadingDigits(job.ExperienceRequired)
	}

	return keep(candidates, func(c *marketplace.Candidate) bool {
		if required <= 0 {
			return true
		}
		return float64(c.ExperienceYears) >= float64(required)*0.8
	})
}

// leadingDigits extracts the first run of consecutive digits from the
// string ("5+ years" -> 5, "3-5 years" -> 3, "entry level" -> 0).
func leadingDigits(s string) int {
	value := 0
	seen := false
	for _, r := range s {
		if r >= '0' && r <= '9' {
			value = value*10 + int(r-'0')
			seen = true
			continue
		}
		if seen {
			break
		}
	}
	return value
}

type profileCompleteRule struct{}

func (r *profileCompleteRule) Name() string { return "profile_complete" }

func (r *profileCompleteRule) Apply(_ *marketplace.Job, candidates *marketplace.Candidates) (*marketplace.Candidates, Step) {
	return keep(candidates, func(c *marketplace.Candidate) bool {
		return strings.TrimSpace(c.Bio) != "" && len(c.Skills) > 0
	})
}

type vettingRule struct{}

func (r *vettingRule) Name() string { return "vetting" }

// Apply keeps candidates that either completed the interview or carry an
// AI vetting score from the interview-analysis subsystem.
func (r *vettingRule) Apply(_ *marketplace.Job, candidates *marketplace.Candidates) (*marketplace.Candidates, Step) {
	return keep(candidates, func(c *marketplace.Candidate) bool {
		return c.InterviewCompleted || c.HasVettingScore()
	})
}
