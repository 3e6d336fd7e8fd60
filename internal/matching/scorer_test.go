package matching

import (
	"reflect"
	"sort"
	"testing"

	"github.com/medevidences/matchengine/internal/marketplace"
)

func f64(v float64) *float64 { return &v }

func TestScoreSkillsComponent(t *testing.T) {
	job := &marketplace.Job{
		ID:             "j1",
		SkillsRequired: []string{"Patient Care", "EMR Systems", "Surgery", "Triage"},
	}
	candidate := &marketplace.Candidate{
		ID:     "c1",
		Skills: []string{"patient care", "SURGERY"},
	}

	result := Score(candidate, job)

	// 2 of 4 required skills -> 50 * 2/4 = 25.
	if result.MatchPercentage != 25 {
		t.Fatalf("expected 25, got %v", result.MatchPercentage)
	}

	union := append(append([]string{}, result.MatchedSkills...), result.MissingSkills...)
	sort.Strings(union)
	required := append([]string{}, job.SkillsRequired...)
	sort.Strings(required)
	if !reflect.DeepEqual(union, required) {
		t.Fatalf("matched+missing must equal required, got %v", union)
	}

	for _, matched := range result.MatchedSkills {
		for _, missing := range result.MissingSkills {
			if matched == missing {
				t.Fatalf("skill %q in both matched and missing", matched)
			}
		}
	}
}

func TestScoreStrongSkillsReason(t *testing.T) {
	job := &marketplace.Job{SkillsRequired: []string{"A", "B"}}
	candidate := &marketplace.Candidate{Skills: []string{"A", "B"}}

	result := Score(candidate, job)

	if result.MatchPercentage != 50 {
		t.Fatalf("expected 50, got %v", result.MatchPercentage)
	}
	if !hasReason(result, "Strong skills match (100%)") {
		t.Fatalf("expected strong skills reason, got %v", result.MatchReasons)
	}
}

func TestScoreNoSkillsReasonAtThreshold(t *testing.T) {
	// Exactly 25 points is not strong enough for the reason.
	job := &marketplace.Job{SkillsRequired: []string{"A", "B"}}
	candidate := &marketplace.Candidate{Skills: []string{"A"}}

	result := Score(candidate, job)

	if result.MatchPercentage != 25 {
		t.Fatalf("expected 25, got %v", result.MatchPercentage)
	}
	for _, reason := range result.MatchReasons {
		if reason != "Basic qualification match" {
			t.Fatalf("unexpected reason %q", reason)
		}
	}
}

func TestScoreSpecializationBonus(t *testing.T) {
	job := &marketplace.Job{Category: marketplace.CategoryScientificResearch}
	candidate := &marketplace.Candidate{Specialization: marketplace.CategoryScientificResearch}

	result := Score(candidate, job)

	if result.MatchPercentage != 30 {
		t.Fatalf("expected 30, got %v", result.MatchPercentage)
	}
	if !hasReason(result, "Perfect specialization match") {
		t.Fatalf("expected specialization reason, got %v", result.MatchReasons)
	}
}

func TestScoreSpecializationIsCaseSensitive(t *testing.T) {
	job := &marketplace.Job{Category: "Scientific Research"}
	candidate := &marketplace.Candidate{Specialization: "scientific research"}

	result := Score(candidate, job)

	if hasReason(result, "Perfect specialization match") {
		t.Fatalf("specialization comparison must be exact, got %v", result.MatchReasons)
	}
}

func TestScoreExperienceBuckets(t *testing.T) {
	tests := []struct {
		name     string
		required string
		years    int
		award    float64
		reason   string
	}{
		{name: "entry level junior", required: "Entry level", years: 1, award: 20, reason: "Experience level matches"},
		{name: "entry level too senior", required: "entry level", years: 4, award: 0},
		{name: "0-2 bucket", required: "0-2 years", years: 3, award: 20, reason: "Experience level matches"},
		{name: "mid bucket low", required: "Mid-level position", years: 2, award: 20, reason: "Experience level matches"},
		{name: "mid bucket high", required: "3-5 years", years: 7, award: 20, reason: "Experience level matches"},
		{name: "mid bucket out of range", required: "3-5 years", years: 8, award: 0},
		{name: "senior bucket", required: "5+ years", years: 5, award: 20, reason: "Senior level experience"},
		{name: "senior keyword", required: "Senior role", years: 10, award: 20, reason: "Senior level experience"},
		{name: "senior too junior", required: "5+ years", years: 4, award: 0},
		{name: "unrecognized phrasing", required: "3-7 years", years: 5, award: 0},
		{name: "another unrecognized phrasing", required: "2+ years", years: 5, award: 0},
		{name: "empty requirement", required: "", years: 5, award: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Score(
				&marketplace.Candidate{ExperienceYears: tt.years},
				&marketplace.Job{ExperienceRequired: tt.required},
			)
			if result.MatchPercentage != tt.award {
				t.Fatalf("expected %v points, got %v", tt.award, result.MatchPercentage)
			}
			if tt.reason != "" && !hasReason(result, tt.reason) {
				t.Fatalf("expected reason %q, got %v", tt.reason, result.MatchReasons)
			}
		})
	}
}

func TestScoreInterviewNoteAddsNoPoints(t *testing.T) {
	candidate := &marketplace.Candidate{
		InterviewCompleted: true,
		InterviewScore:     f64(8.5),
	}

	result := Score(candidate, &marketplace.Job{})

	if result.MatchPercentage != 0 {
		t.Fatalf("interview note must not change the score, got %v", result.MatchPercentage)
	}
	if !hasReason(result, "Strong interview performance") {
		t.Fatalf("expected interview reason, got %v", result.MatchReasons)
	}
}

func TestScoreReasonsNeverEmpty(t *testing.T) {
	result := Score(&marketplace.Candidate{}, &marketplace.Job{})

	if len(result.MatchReasons) != 1 || result.MatchReasons[0] != "Basic qualification match" {
		t.Fatalf("expected default reason, got %v", result.MatchReasons)
	}
}

func TestScoreIsIdempotent(t *testing.T) {
	candidate := &marketplace.Candidate{
		ID:                 "c1",
		Specialization:     marketplace.CategoryDoctorsPhysicians,
		ExperienceYears:    5,
		Skills:             []string{"Patient Care", "Surgery"},
		InterviewCompleted: true,
		InterviewScore:     f64(9),
	}
	job := &marketplace.Job{
		ID:                 "j1",
		Category:           marketplace.CategoryDoctorsPhysicians,
		SkillsRequired:     []string{"Patient Care", "EMR Systems"},
		ExperienceRequired: "3-5 years",
	}

	first := Score(candidate, job)
	second := Score(candidate, job)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs must yield identical results:\n%+v\n%+v", first, second)
	}
}

func TestScoreEndToEndScenario(t *testing.T) {
	job := &marketplace.Job{
		ID:                 "j1",
		Category:           marketplace.CategoryDoctorsPhysicians,
		SkillsRequired:     []string{"Patient Care", "EMR Systems"},
		ExperienceRequired: "3-7 years",
	}
	candidate := &marketplace.Candidate{
		ID:              "c1",
		Specialization:  marketplace.CategoryDoctorsPhysicians,
		Skills:          []string{"Patient Care", "Surgery"},
		ExperienceYears: 5,
	}

	result := Score(candidate, job)

	// Skills 50*1/2 = 25, specialization +30, "3-7 years" matches no
	// bucket -> 55 total with the specialization reason alone.
	if result.MatchPercentage != 55 {
		t.Fatalf("expected 55, got %v", result.MatchPercentage)
	}
	if len(result.MatchReasons) != 1 || result.MatchReasons[0] != "Perfect specialization match" {
		t.Fatalf("unexpected reasons: %v", result.MatchReasons)
	}
	if !reflect.DeepEqual(result.MatchedSkills, []string{"Patient Care"}) {
		t.Fatalf("unexpected matched skills: %v", result.MatchedSkills)
	}
	if !reflect.DeepEqual(result.MissingSkills, []string{"EMR Systems"}) {
		t.Fatalf("unexpected missing skills: %v", result.MissingSkills)
	}
}

func hasReason(result *marketplace.MatchResult, reason string) bool {
	for _, r := range result.MatchReasons {
		if r == reason {
			return true
		}
	}
	return false
}
