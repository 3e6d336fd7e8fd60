package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/medevidences/matchengine/internal/marketplace"
	"github.com/medevidences/matchengine/internal/matching"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func testJob() *marketplace.Job {
	return &marketplace.Job{
		ID:                 "j1",
		Title:              "Clinical Researcher",
		Category:           marketplace.CategoryMedicalResearch,
		Description:        "Run clinical trials",
		SkillsRequired:     []string{"Data Analysis", "Lab Techniques"},
		ExperienceRequired: "3-5 years",
	}
}

func testBatch(n int) []*marketplace.Candidate {
	batch := make([]*marketplace.Candidate, 0, n)
	for i := 0; i < n; i++ {
		batch = append(batch, &marketplace.Candidate{
			ID:              fmt.Sprintf("c%d", i),
			Specialization:  "Medical Research",
			ExperienceYears: 4,
			Skills:          []string{"Data Analysis"},
		})
	}
	return batch
}

func TestRankCandidates(t *testing.T) {
	stub := &stubGenerator{response: `[
		{"candidate_index": 1, "match_score": 92, "ranking_reason": "Strong research background"},
		{"candidate_index": 0, "match_score": 71, "ranking_reason": "Relevant but junior"}
	]`}
	ranker := NewRanker(stub, zap.NewNop(), 0)

	scores, err := ranker.RankCandidates(context.Background(), testJob(), testBatch(2), matching.ResolveCriteria(marketplace.CategoryMedicalResearch))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(scores) != 2 {
		t.Fatalf("expected 2 scores, got %d", len(scores))
	}
	if scores[0].Index != 1 || scores[0].Score != 92 {
		t.Fatalf("unexpected first score: %+v", scores[0])
	}
	if scores[1].Reason != "Relevant but junior" {
		t.Fatalf("unexpected reason: %q", scores[1].Reason)
	}
}

func TestRankCandidatesPromptContents(t *testing.T) {
	stub := &stubGenerator{response: `[{"candidate_index": 0, "match_score": 50, "ranking_reason": "ok"}]`}
	ranker := NewRanker(stub, zap.NewNop(), 0)

	batch := testBatch(1)
	batch[0].Skills = []string{"s1", "s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9", "s10", "s11", "s12"}

	if _, err := ranker.RankCandidates(context.Background(), testJob(), batch, matching.ResolveCriteria(marketplace.CategoryMedicalResearch)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompt := stub.lastPrompt

	if !strings.Contains(prompt, "Rank these 1 candidates") {
		t.Fatalf("candidate count not substituted: %s", prompt)
	}
	if !strings.Contains(prompt, "Title: Clinical Researcher") {
		t.Fatalf("job details missing from prompt")
	}
	if !strings.Contains(prompt, "Specialization relevance (30%)") {
		t.Fatalf("target weights missing from prompt")
	}
	if !strings.Contains(prompt, "Scoring Weights: experience 30%, skills 35%, education 25%, soft skills 10%") {
		t.Fatalf("industry criteria weights missing from prompt")
	}
	if !strings.Contains(prompt, "s10") || strings.Contains(prompt, "s11") {
		t.Fatalf("candidate skills must be capped at 10: %s", prompt)
	}
}

func TestRankCandidatesTruncatesDescription(t *testing.T) {
	stub := &stubGenerator{response: `[{"candidate_index": 0, "match_score": 50, "ranking_reason": "ok"}]`}
	ranker := NewRanker(stub, zap.NewNop(), 0)

	job := testJob()
	job.Description = strings.Repeat("x", 600)

	if _, err := ranker.RankCandidates(context.Background(), job, testBatch(1), matching.ResolveCriteria("")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(stub.lastPrompt, strings.Repeat("x", 501)) {
		t.Fatalf("description must be truncated to 500 runes")
	}
	if !strings.Contains(stub.lastPrompt, strings.Repeat("x", 500)) {
		t.Fatalf("truncated description missing from prompt")
	}
}

func TestRankCandidatesGeneratorError(t *testing.T) {
	stub := &stubGenerator{err: errors.New("rate limited")}
	ranker := NewRanker(stub, zap.NewNop(), 0)

	if _, err := ranker.RankCandidates(context.Background(), testJob(), testBatch(1), matching.ResolveCriteria("")); err == nil {
		t.Fatalf("expected generator error to propagate")
	}
}

func TestRankCandidatesValidation(t *testing.T) {
	ranker := NewRanker(&stubGenerator{}, zap.NewNop(), 0)

	if _, err := ranker.RankCandidates(context.Background(), nil, testBatch(1), matching.ResolveCriteria("")); err == nil {
		t.Fatalf("expected error for nil job")
	}
	if _, err := ranker.RankCandidates(context.Background(), testJob(), nil, matching.ResolveCriteria("")); err == nil {
		t.Fatalf("expected error for empty batch")
	}
}

func TestDecodeRankings(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{
			name: "bare array",
			raw:  `[{"candidate_index": 0, "match_score": 90, "ranking_reason": "fit"}]`,
			want: 1,
		},
		{
			name: "prose wrapper",
			raw:  "Here are the rankings you asked for:\n[{\"candidate_index\": 0, \"match_score\": 90, \"ranking_reason\": \"fit\"}]\nLet me know if you need more detail.",
			want: 1,
		},
		{
			name: "code fence",
			raw:  "```json\n[{\"candidate_index\": 0, \"match_score\": 90, \"ranking_reason\": \"fit\"}]\n```",
			want: 1,
		},
		{
			name: "numeric strings",
			raw:  `[{"candidate_index": "1", "match_score": "88", "ranking_reason": "fit"}]`,
			want: 1,
		},
		{
			name:    "no array",
			raw:     "I could not rank the candidates.",
			wantErr: true,
		},
		{
			name:    "empty array",
			raw:     "[]",
			wantErr: true,
		},
		{
			name:    "not json",
			raw:     "[not json at all]",
			wantErr: true,
		},
		{
			name:    "missing index",
			raw:     `[{"match_score": 90, "ranking_reason": "fit"}]`,
			wantErr: true,
		},
		{
			name:    "missing score",
			raw:     `[{"candidate_index": 0, "ranking_reason": "fit"}]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores, err := decodeRankings(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", scores)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(scores) != tt.want {
				t.Fatalf("expected %d scores, got %d", tt.want, len(scores))
			}
		})
	}
}

func TestDecodeRankingsNumericStrings(t *testing.T) {
	scores, err := decodeRankings(`[{"candidate_index": "1", "match_score": "88.4", "ranking_reason": "fit"}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scores[0].Index != 1 || scores[0].Score != 88 {
		t.Fatalf("unexpected coercion: %+v", scores[0])
	}
}
