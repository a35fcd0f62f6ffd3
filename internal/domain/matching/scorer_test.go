package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }

func TestExperienceScore(t *testing.T) {
	cases := []struct {
		name   string
		resume *int
		job    *int
		want   float64
	}{
		{name: "meets", resume: intp(5), job: intp(5), want: 100},
		{name: "exceeds", resume: intp(9), job: intp(5), want: 100},
		{name: "partial", resume: intp(3), job: intp(6), want: 50},
		{name: "job zero", resume: intp(3), job: intp(0), want: 0},
		{name: "job absent", resume: intp(3), job: nil, want: 0},
		{name: "resume absent", resume: nil, job: intp(3), want: 0},
		{name: "resume zero", resume: intp(0), job: intp(3), want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExperienceScore(tc.resume, tc.job))
		})
	}
}

func TestEducationScore(t *testing.T) {
	cases := []struct {
		name   string
		resume *string
		job    *string
		want   float64
	}{
		{name: "higher", resume: strp("master"), job: strp("bachelor"), want: 100},
		{name: "equal", resume: strp("bachelor"), job: strp("Bachelor"), want: 100},
		{name: "partial", resume: strp("high_school"), job: strp("phd"), want: 25},
		{name: "spaced alias", resume: strp("High School"), job: strp("phd"), want: 25},
		{name: "unknown resume", resume: strp("wizard"), job: strp("bachelor"), want: 0},
		{name: "job absent", resume: strp("phd"), job: nil, want: 0},
		{name: "resume absent", resume: nil, job: strp("phd"), want: 0},
		{name: "empty job", resume: strp("phd"), job: strp(""), want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EducationScore(tc.resume, tc.job))
		})
	}
}

func TestParseEducationLevel(t *testing.T) {
	assert.Equal(t, EducationHighSchool, ParseEducationLevel("high-school"))
	assert.Equal(t, EducationPhD, ParseEducationLevel(" PHD "))
	assert.Equal(t, EducationUnknown, ParseEducationLevel("wizard"))
	assert.Equal(t, "master", EducationMaster.String())
}

func TestCombine(t *testing.T) {
	s := Combine(80, 100, 100)
	assert.Equal(t, 90.0, s.Overall)
	assert.Equal(t, 80.0, s.Skills)
	assert.True(t, s.Qualifies())

	s = Combine(33.333333, 66.666666, 0)
	assert.Equal(t, 33.33, s.Skills)
	assert.Equal(t, 66.67, s.Experience)
	assert.Equal(t, 36.67, s.Overall)
	assert.False(t, s.Qualifies())
}

func TestScore_NotFitted(t *testing.T) {
	_, err := Score(NewVectorizer(), ScoreInput{ResumeText: "go", JobDescription: "go"})
	require.ErrorIs(t, err, ErrNotFitted)
}

func TestScore_PythonScenario(t *testing.T) {
	v := NewVectorizer()
	require.NoError(t, v.Fit([]string{"python backend engineer"}))

	s, err := Score(v, ScoreInput{
		ResumeText:            "experienced python developer",
		JobDescription:        "python backend engineer",
		JobSkills:             []string{"python"},
		JobExperienceYears:    intp(5),
		JobEducationLevel:     strp("bachelor"),
		ResumeExperienceYears: intp(5),
		ResumeEducationLevel:  strp("bachelor"),
	})
	require.NoError(t, err)

	assert.Greater(t, s.Skills, 0.0)
	assert.Equal(t, 57.74, s.Skills)
	assert.Equal(t, 100.0, s.Experience)
	assert.Equal(t, 100.0, s.Education)
	assert.GreaterOrEqual(t, s.Overall, QualifyingThreshold)
}

func TestScore_MissingOptionalFields(t *testing.T) {
	v := NewVectorizer()
	require.NoError(t, v.Fit([]string{"go platform engineer"}))

	s, err := Score(v, ScoreInput{ResumeText: "go engineer", JobDescription: "go platform engineer"})
	require.NoError(t, err)
	assert.Zero(t, s.Experience)
	assert.Zero(t, s.Education)
	assert.Equal(t, round2(s.Skills*SkillsWeight), s.Overall)
}

func TestScore_SwappedRoles(t *testing.T) {
	a := "experienced python developer with django"
	b := "python backend engineer"

	v := NewVectorizer()
	require.NoError(t, v.Fit([]string{b}))
	forward, err := Score(v, ScoreInput{ResumeText: a, JobDescription: b, ResumeExperienceYears: intp(2), JobExperienceYears: intp(4)})
	require.NoError(t, err)

	w := NewVectorizer()
	require.NoError(t, w.Fit([]string{a}))
	backward, err := Score(w, ScoreInput{ResumeText: b, JobDescription: a, ResumeExperienceYears: intp(4), JobExperienceYears: intp(2)})
	require.NoError(t, err)

	assert.NotEqual(t, forward, backward)
	for _, s := range []MatchScore{forward, backward} {
		assert.GreaterOrEqual(t, s.Overall, 0.0)
		assert.LessOrEqual(t, s.Overall, 100.0)
	}
}
