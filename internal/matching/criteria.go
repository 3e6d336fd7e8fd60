package matching

import "github.com/medevidences/matchengine/internal/marketplace"

// IndustryCriteria describes how a job category is evaluated: the skills
// and traits recruiters look for plus the scoring weights communicated to
// the ranking oracle. Weights sum to 100 by convention; this is not
// enforced.
type IndustryCriteria struct {
	RequiredSkills   []string
	KeyTraits        []string
	WeightExperience int
	WeightSkills     int
	WeightEducation  int
	WeightSoftSkills int
}

// criteriaTable is read-only after init and safe to share across requests.
// New categories are added here, never inferred.
var criteriaTable = map[string]*IndustryCriteria{
	marketplace.CategoryDoctorsPhysicians: {
		RequiredSkills:   []string{"Clinical Experience", "Patient Care", "Medical Knowledge", "Board Certification"},
		KeyTraits:        []string{"Empathy", "Decision Making", "Communication", "Ethical Judgment"},
		WeightExperience: 40,
		WeightSkills:     30,
		WeightEducation:  20,
		WeightSoftSkills: 10,
	},
	marketplace.CategoryMedicalResearch: {
		RequiredSkills:   []string{"Research Methodology", "Data Analysis", "Publication Record", "Lab Techniques"},
		KeyTraits:        []string{"Analytical Thinking", "Attention to Detail", "Collaboration", "Innovation"},
		WeightExperience: 30,
		WeightSkills:     35,
		WeightEducation:  25,
		WeightSoftSkills: 10,
	},
	marketplace.CategoryScientificResearch: {
		RequiredSkills:   []string{"Experimental Design", "Statistical Analysis", "Technical Writing", "Literature Review"},
		KeyTraits:        []string{"Critical Thinking", "Curiosity", "Problem Solving", "Persistence"},
		WeightExperience: 30,
		WeightSkills:     35,
		WeightEducation:  25,
		WeightSoftSkills: 10,
	},
	marketplace.CategoryNutritionDietetics: {
		RequiredSkills:   []string{"Nutritional Assessment", "Meal Planning", "Client Counseling", "Evidence-Based Practice"},
		KeyTraits:        []string{"Interpersonal Skills", "Cultural Sensitivity", "Motivational Skills", "Adaptability"},
		WeightExperience: 35,
		WeightSkills:     30,
		WeightEducation:  20,
		WeightSoftSkills: 15,
	},
	marketplace.CategoryTeachingAcademia: {
		RequiredSkills:   []string{"Curriculum Development", "Lecturing", "Research", "Mentoring"},
		KeyTraits:        []string{"Communication", "Patience", "Leadership", "Subject Expertise"},
		WeightExperience: 30,
		WeightSkills:     25,
		WeightEducation:  30,
		WeightSoftSkills: 15,
	},
}

var defaultCriteria = &IndustryCriteria{
	RequiredSkills:   []string{"Domain Knowledge", "Technical Skills", "Problem Solving"},
	KeyTraits:        []string{"Communication", "Teamwork", "Adaptability"},
	WeightExperience: 35,
	WeightSkills:     30,
	WeightEducation:  20,
	WeightSoftSkills: 15,
}

// ResolveCriteria maps a job category to its industry criteria. Unknown or
// empty categories resolve to the default record, so the lookup always
// succeeds.
func ResolveCriteria(category string) *IndustryCriteria {
	if criteria, ok := criteriaTable[category]; ok {
		return criteria
	}
	return defaultCriteria
}
