package marketplace

import (
	"encoding/json"
	"fmt"
	"os"
)

// Categories used by the marketplace job-posting collaborator. Postings may
// carry free-text categories as well; anything unknown resolves to the
// default industry criteria.
const (
	CategoryDoctorsPhysicians  = "Doctors/Physicians"
	CategoryMedicalResearch    = "Medicine & Medical Research"
	CategoryScientificResearch = "Scientific Research"
	CategoryNutritionDietetics = "Nutrition & Dietetics"
	CategoryTeachingAcademia   = "Teaching & Academia"
)

// Job is a posting record supplied by the job-posting collaborator.
// ExperienceRequired is a free-text bucket description ("3-5 years",
// "entry level", ...), not a structured range.
type Job struct {
	ID                 string   `json:"id,omitempty"`
	Title              string   `json:"title,omitempty"`
	Category           string   `json:"category,omitempty"`
	Description        string   `json:"description,omitempty"`
	SkillsRequired     []string `json:"skills_required,omitempty"`
	ExperienceRequired string   `json:"experience_required,omitempty"`
}

type Jobs struct {
	Items []*Job
}

func (j *Jobs) Len() int {
	if j == nil {
		return 0
	}
	return len(j.Items)
}

// JobFromFile loads a single job posting from a JSON file.
func JobFromFile(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading job file: %w", err)
	}

	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parsing job file %q: %w", path, err)
	}

	job, err := DecodeJob(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding job file %q: %w", path, err)
	}
	return job, nil
}

// JobsFromFile loads job postings from a JSON file containing either a bare
// array or an object with an "items" key.
func JobsFromFile(path string) (*Jobs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading jobs file: %w", err)
	}

	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parsing jobs file %q: %w", path, err)
	}

	if wrapped, ok := payload.(map[string]any); ok {
		if items, ok := wrapped["items"]; ok {
			payload = items
		}
	}

	jobs, err := DecodeJobs(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding jobs file %q: %w", path, err)
	}
	return jobs, nil
}
