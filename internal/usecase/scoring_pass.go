package usecase

import (
	"resume-match/internal/domain/job"
	"resume-match/internal/domain/matching"
	"resume-match/internal/domain/resume"
)

// ScoringPass owns the vectorizer fit for one scoring run. Scores from
// different passes are not comparable.
type ScoringPass struct {
	vec *matching.Vectorizer
}

// NewScoringPass fits a fresh vectorizer on the given job descriptions.
// It returns matching.ErrEmptyCorpus when there is nothing to fit.
func NewScoringPass(jobs []job.Job) (*ScoringPass, error) {
	corpus := make([]string, 0, len(jobs))
	for _, j := range jobs {
		corpus = append(corpus, j.Description)
	}

	v := matching.NewVectorizer()
	if err := v.Fit(corpus); err != nil {
		return nil, err
	}
	return &ScoringPass{vec: v}, nil
}

func (p *ScoringPass) Score(r resume.Resume, j job.Job) (matching.MatchScore, error) {
	return matching.Score(p.vec, matching.ScoreInput{
		ResumeText:            r.TextContent,
		JobDescription:        j.Description,
		JobSkills:             j.Skills,
		JobExperienceYears:    j.ExperienceYears,
		JobEducationLevel:     j.EducationLevel,
		ResumeExperienceYears: r.ExperienceYears,
		ResumeEducationLevel:  r.EducationLevel,
	})
}
