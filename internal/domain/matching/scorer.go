package matching

import (
	"fmt"
	"math"
)

const (
	SkillsWeight     = 0.5
	ExperienceWeight = 0.3
	EducationWeight  = 0.2

	// QualifyingThreshold is the overall score at which a match is recorded.
	QualifyingThreshold = 70.0
)

// MatchScore holds the component scores and their weighted total, each in [0,100].
type MatchScore struct {
	Overall    float64 `json:"overall"`
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	Education  float64 `json:"education"`
}

func (s MatchScore) Qualifies() bool {
	return s.Overall >= QualifyingThreshold
}

type ScoreInput struct {
	ResumeText     string
	JobDescription string
	JobSkills      []string

	JobExperienceYears *int
	JobEducationLevel  *string

	ResumeExperienceYears *int
	ResumeEducationLevel  *string
}

// Score rates one resume against one job. v must already be fit on a corpus
// that contains the job description.
func Score(v *Vectorizer, in ScoreInput) (MatchScore, error) {
	resumeVec, err := v.Transform(in.ResumeText)
	if err != nil {
		return MatchScore{}, fmt.Errorf("transform resume: %w", err)
	}
	jobVec, err := v.Transform(in.JobDescription)
	if err != nil {
		return MatchScore{}, fmt.Errorf("transform job: %w", err)
	}

	skills := clampScore(Cosine(resumeVec, jobVec) * 100)
	experience := ExperienceScore(in.ResumeExperienceYears, in.JobExperienceYears)
	education := EducationScore(in.ResumeEducationLevel, in.JobEducationLevel)

	return Combine(skills, experience, education), nil
}

// Combine applies the fixed weights. The overall is computed from the
// unrounded components, then everything is rounded to two decimals.
func Combine(skills, experience, education float64) MatchScore {
	overall := skills*SkillsWeight + experience*ExperienceWeight + education*EducationWeight
	return MatchScore{
		Overall:    round2(overall),
		Skills:     round2(skills),
		Experience: round2(experience),
		Education:  round2(education),
	}
}

// ExperienceScore gives full credit when the resume meets the requirement and
// linear partial credit below it. Absent or non-positive values score 0.
func ExperienceScore(resumeYears, jobYears *int) float64 {
	if resumeYears == nil || jobYears == nil {
		return 0
	}
	r, j := *resumeYears, *jobYears
	if r <= 0 || j <= 0 {
		return 0
	}
	if r >= j {
		return 100
	}
	return float64(r) / float64(j) * 100
}

// EducationScore compares ranks; an unrecognized resume level ranks 0 and
// never satisfies a recognized requirement.
func EducationScore(resumeLevel, jobLevel *string) float64 {
	if resumeLevel == nil || jobLevel == nil || *resumeLevel == "" || *jobLevel == "" {
		return 0
	}
	r := ParseEducationLevel(*resumeLevel)
	j := ParseEducationLevel(*jobLevel)
	if r >= j {
		return 100
	}
	if j <= 0 {
		return 0
	}
	return float64(r) / float64(j) * 100
}

func clampScore(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
