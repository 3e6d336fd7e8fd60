package marketplace

import (
	"encoding/json"
	"os"
)

// MatchResult is the engine's per-pair output. It is ephemeral: computed
// per request and never persisted by the engine itself.
//
// MatchedSkills and MissingSkills partition the job's required skills after
// case normalization. MatchReasons is never empty. RankingReason is set
// only when the result was produced by the batch ranker (oracle or its
// fallback).
type MatchResult struct {
	JobID           string   `json:"job_id,omitempty"`
	CandidateID     string   `json:"candidate_id,omitempty"`
	MatchPercentage float64  `json:"match_percentage"`
	MatchedSkills   []string `json:"matched_skills,omitempty"`
	MissingSkills   []string `json:"missing_skills,omitempty"`
	MatchReasons    []string `json:"match_reasons"`
	RankingReason   string   `json:"ranking_reason,omitempty"`
}

// DumpResultsToTmpFile writes the results as indented JSON to a temporary
// file and returns its name.
func DumpResultsToTmpFile(results []*MatchResult) (string, error) {
	file, err := os.CreateTemp("", "match_results_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return "", err
	}
	return file.Name(), nil
}
