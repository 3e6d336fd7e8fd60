package marketplace

import (
	"encoding/json"
	"fmt"
	"os"
)

// Candidate is a profile record supplied by the profile-management
// collaborator. The engine reads it and never mutates it. Optional fields
// stay nil/zero when the collaborator did not provide them.
type Candidate struct {
	ID                 string   `json:"id,omitempty"`
	Specialization     string   `json:"specialization,omitempty"`
	ExperienceYears    int      `json:"experience_years,omitempty"`
	Skills             []string `json:"skills,omitempty"`
	Education          string   `json:"education,omitempty"`
	Bio                string   `json:"bio,omitempty"`
	AIVettingScore     *float64 `json:"ai_vetting_score,omitempty"`
	HealthScore        string   `json:"health_score,omitempty"`
	InterviewCompleted bool     `json:"interview_completed,omitempty"`
	InterviewScore     *float64 `json:"interview_score,omitempty"`
}

// HasVettingScore reports whether the candidate carries a usable AI vetting
// score. A zero score is treated the same as a missing one.
func (c *Candidate) HasVettingScore() bool {
	return c.AIVettingScore != nil && *c.AIVettingScore != 0
}

// VettingScore returns the AI vetting score, defaulting to 0 when absent.
func (c *Candidate) VettingScore() float64 {
	if c.AIVettingScore == nil {
		return 0
	}
	return *c.AIVettingScore
}

type Candidates struct {
	Items []*Candidate
}

func (c *Candidates) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Items)
}

// First returns a new collection containing at most n leading items in the
// original order.
func (c *Candidates) First(n int) *Candidates {
	if c == nil || n < 0 {
		return &Candidates{}
	}
	if n > len(c.Items) {
		n = len(c.Items)
	}
	return &Candidates{Items: c.Items[:n]}
}

func (c *Candidates) IDs() []string {
	ids := make([]string, 0, c.Len())
	for _, candidate := range c.Items {
		ids = append(ids, candidate.ID)
	}
	return ids
}

// CandidatesFromFile loads a candidate pool from a JSON file containing
// either a bare array or an object with an "items" key.
func CandidatesFromFile(path string) (*Candidates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading candidates file: %w", err)
	}

	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parsing candidates file %q: %w", path, err)
	}

	if wrapped, ok := payload.(map[string]any); ok {
		if items, ok := wrapped["items"]; ok {
			payload = items
		}
	}

	candidates, err := DecodeCandidates(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding candidates file %q: %w", path, err)
	}
	return candidates, nil
}
