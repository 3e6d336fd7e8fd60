package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medevidences/matchengine/internal/ai"
	"github.com/medevidences/matchengine/internal/marketplace"
	"github.com/medevidences/matchengine/internal/matching"
	"github.com/medevidences/matchengine/internal/util"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Ranker submits a candidate batch to Gemini and decodes the holistic
// ranking response. It implements ai.Ranker.
type Ranker struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200

	// Free-text bounds inside the prompt: long descriptions add cost
	// without improving rankings, and ten skills are enough signal.
	maxDescriptionRunes = 500
	maxPromptSkills     = 10
)

func NewRanker(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Ranker {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Ranker{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// candidateSummary is the compact per-candidate shape submitted to the
// oracle. Index ties the response entries back to the batch.
type candidateSummary struct {
	ID                 string  `json:"id"`
	Index              int     `json:"index"`
	Specialization     string  `json:"specialization"`
	ExperienceYears    int     `json:"experience_years"`
	Skills             string  `json:"skills"`
	Education          string  `json:"education"`
	AIScore            float64 `json:"ai_score"`
	HealthScore        string  `json:"health_score"`
	InterviewCompleted bool    `json:"interview_completed"`
}

// RankCandidates builds the batch prompt, sends it to Gemini and decodes
// the returned scores. Any transport or format problem is returned to the
// caller, which is expected to fall back to local heuristics.
func (r *Ranker) RankCandidates(ctx context.Context, job *marketplace.Job, batch []*marketplace.Candidate, criteria *matching.IndustryCriteria) ([]ai.RankedScore, error) {
	if job == nil {
		return nil, fmt.Errorf("job is required")
	}
	if len(batch) == 0 {
		return nil, fmt.Errorf("candidate batch is empty")
	}

	prompt, err := buildPrompt(job, batch, criteria)
	if err != nil {
		return nil, err
	}

	sessionID := uuid.NewString()

	r.logger.Debug("gemini ranking request",
		zap.String("session_id", sessionID),
		zap.String("job_id", job.ID),
		zap.Int("batch_size", len(batch)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(prompt, r.maxLogLen)),
	)

	raw, err := r.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("gemini ranking response",
		zap.String("session_id", sessionID),
		zap.String("job_id", job.ID),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", util.TruncateForLog(raw, r.maxLogLen)),
	)

	return decodeRankings(raw)
}

func buildPrompt(job *marketplace.Job, batch []*marketplace.Candidate, criteria *matching.IndustryCriteria) (string, error) {
	summaries := make([]candidateSummary, 0, len(batch))
	for i, candidate := range batch {
		summaries = append(summaries, candidateSummary{
			ID:                 candidate.ID,
			Index:              i,
			Specialization:     orNotSpecified(candidate.Specialization),
			ExperienceYears:    candidate.ExperienceYears,
			Skills:             strings.Join(util.FirstN(candidate.Skills, maxPromptSkills), ", "),
			Education:          orNotSpecified(candidate.Education),
			AIScore:            candidate.VettingScore(),
			HealthScore:        orNotSpecified(candidate.HealthScore),
			InterviewCompleted: candidate.InterviewCompleted,
		})
	}

	candidatesJSON, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal candidate summaries: %w", err)
	}

	jobDetails := strings.Join([]string{
		"Title: " + job.Title,
		"Category: " + job.Category,
		"Description: " + util.TruncateRunes(job.Description, maxDescriptionRunes),
		"Experience Required: " + orNotSpecified(job.ExperienceRequired),
		"Skills Required: " + strings.Join(job.SkillsRequired, ", "),
	}, "\n")

	criteriaDetails := strings.Join([]string{
		"Required Skills: " + strings.Join(criteria.RequiredSkills, ", "),
		"Key Traits: " + strings.Join(criteria.KeyTraits, ", "),
		fmt.Sprintf("Scoring Weights: experience %d%%, skills %d%%, education %d%%, soft skills %d%%",
			criteria.WeightExperience, criteria.WeightSkills, criteria.WeightEducation, criteria.WeightSoftSkills),
	}, "\n")

	prompt := strings.ReplaceAll(promptTemplate, "{{CANDIDATE_COUNT}}", strconv.Itoa(len(batch)))
	prompt = strings.ReplaceAll(prompt, "{{JOB_DETAILS}}", jobDetails)
	prompt = strings.ReplaceAll(prompt, "{{CRITERIA}}", criteriaDetails)
	prompt = strings.ReplaceAll(prompt, "{{CANDIDATES_JSON}}", string(candidatesJSON))

	return prompt, nil
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not specified"
	}
	return s
}

// decodeRankings extracts the ranking array from the raw oracle response.
// The oracle is allowed to wrap the JSON in prose or code fences; the array
// is located by the first '[' and the last ']'. Scores and indices may
// arrive as numbers or numeric strings.
func decodeRankings(raw string) ([]ai.RankedScore, error) {
	cleaned := strings.TrimSpace(raw)
	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON array found in oracle response")
	}

	var entries []map[string]any
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &entries); err != nil {
		return nil, fmt.Errorf("parse oracle rankings: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("oracle returned no rankings")
	}

	scores := make([]ai.RankedScore, 0, len(entries))
	for _, entry := range entries {
		index, ok := coerceInt(entry["candidate_index"])
		if !ok {
			return nil, fmt.Errorf("ranking entry is missing candidate_index")
		}
		score, ok := coerceInt(entry["match_score"])
		if !ok {
			return nil, fmt.Errorf("ranking entry is missing match_score")
		}

		scores = append(scores, ai.RankedScore{
			Index:  index,
			Score:  score,
			Reason: coerceString(entry["ranking_reason"]),
		})
	}

	return scores, nil
}

func coerceInt(v any) (int, bool) {
	switch val := v.(type) {
	case float64:
		return int(val), true
	case int:
		return val, true
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0, false
		}
		return int(f), true
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		return int(f), true
	default:
		return 0, false
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	default:
		if v == nil {
			return ""
		}
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}
