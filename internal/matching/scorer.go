package matching

import (
	"fmt"
	"math"
	"strings"

	"github.com/medevidences/matchengine/internal/marketplace"
)

// Weights of the deterministic score components. They cannot jointly
// exceed 100, so the result needs no clamping.
const (
	skillsWeight         = 50.0
	specializationBonus  = 30.0
	experienceBonus      = 20.0
	strongInterviewScore = 7.0
)

const defaultReason = "Basic qualification match"

// Score computes the deterministic 0-100 match between one candidate and
// one job. It is a pure function: no I/O, no mutation of its inputs, safe
// to call concurrently. Missing fields are treated permissively as
// empty/zero, so it cannot fail.
func Score(candidate *marketplace.Candidate, job *marketplace.Job) *marketplace.MatchResult {
	result := &marketplace.MatchResult{
		JobID:       job.ID,
		CandidateID: candidate.ID,
	}

	var total float64

	if len(job.SkillsRequired) > 0 {
		matched, missing := partitionSkills(candidate.Skills, job.SkillsRequired)
		skillsScore := skillsWeight * float64(len(matched)) / float64(len(job.SkillsRequired))
		total += skillsScore

		result.MatchedSkills = matched
		result.MissingSkills = missing

		if skillsScore > skillsWeight/2 {
			result.MatchReasons = append(result.MatchReasons,
				fmt.Sprintf("Strong skills match (%d%%)", int(math.Round(skillsScore*2))))
		}
	}

	// Exact, case-sensitive comparison as stored. An unset specialization
	// never counts as a match, even against an uncategorized job.
	if candidate.Specialization != "" && candidate.Specialization == job.Category {
		total += specializationBonus
		result.MatchReasons = append(result.MatchReasons, "Perfect specialization match")
	}

	if bonus, reason := experienceMatch(candidate.ExperienceYears, job.ExperienceRequired); bonus > 0 {
		total += bonus
		result.MatchReasons = append(result.MatchReasons, reason)
	}

	if candidate.InterviewCompleted && candidate.InterviewScore != nil && *candidate.InterviewScore >= strongInterviewScore {
		result.MatchReasons = append(result.MatchReasons, "Strong interview performance")
	}

	result.MatchPercentage = math.Round(total*10) / 10

	if len(result.MatchReasons) == 0 {
		result.MatchReasons = append(result.MatchReasons, defaultReason)
	}

	return result
}

// partitionSkills splits the job's required skills into matched and missing
// sets. Comparison is case-insensitive; the job's spelling is preserved in
// both outputs, so their union is always exactly the required set.
func partitionSkills(candidateSkills, required []string) (matched, missing []string) {
	have := make(map[string]struct{}, len(candidateSkills))
	for _, skill := range candidateSkills {
		have[strings.ToLower(strings.TrimSpace(skill))] = struct{}{}
	}

	for _, skill := range required {
		if _, ok := have[strings.ToLower(strings.TrimSpace(skill))]; ok {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	return matched, missing
}

// experienceMatch awards the experience bonus by substring-matching the
// free-text requirement against a small set of known bucket phrasings.
// Unrecognized phrasings ("3-7 years", "2+ years", ...) contribute nothing;
// the bucket list intentionally mirrors what employers actually type on the
// marketplace today.
func experienceMatch(years int, required string) (float64, string) {
	bucket := strings.ToLower(required)

	switch {
	case strings.Contains(bucket, "entry") || strings.Contains(bucket, "0-2"):
		if years <= 3 {
			return experienceBonus, "Experience level matches"
		}
	case strings.Contains(bucket, "3-5") || strings.Contains(bucket, "mid"):
		if years >= 2 && years <= 7 {
			return experienceBonus, "Experience level matches"
		}
	case strings.Contains(bucket, "5+") || strings.Contains(bucket, "senior"):
		if years >= 5 {
			return experienceBonus, "Senior level experience"
		}
	}
	return 0, ""
}
