package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/krishnachadda/ResumeTailor/internal/types"
)

func TestBuildSignals_SetsAreSortedAndDisjoint(t *testing.T) {
	years := 6
	resume := &types.ResumeDocument{
		RawText:         "resume text",
		Skills:          []string{"SQL", "Go", "Go", "Docker"},
		ExperienceYears: &years,
		HasHeadings:     true,
	}
	job := &types.JobPosting{
		Required:      []string{"Kafka", "Go", "Go"},
		Preferred:     []string{"Go", "Docker", "Rust"},
		Seniority:     types.LevelSenior,
		Industry:      types.IndustryFinance,
		KeywordCounts: map[string]int{"Go": 4, "Kafka": 1, "Docker": 1, "Rust": 1},
	}

	s := BuildSignals(resume, job)

	assert.Equal(t, []string{"Docker", "Go", "SQL"}, s.ResumeSkills)
	assert.Equal(t, []string{"Go", "Kafka"}, s.Required)
	assert.Equal(t, []string{"Docker", "Rust"}, s.Preferred)
	assert.Equal(t, []string{"Docker", "Go"}, s.Intersection)
	assert.Equal(t, []string{"Kafka"}, s.MissingRequired)
	assert.Equal(t, []string{"Rust"}, s.MissingPreferred)
	assert.Equal(t, job.KeywordCounts, s.KeywordDensity)
	assert.Equal(t, "resume text", s.ResumeText)
	assert.True(t, s.ResumeHasHeadings)
	assert.False(t, s.ResumeHasBullets)
	assert.Equal(t, &years, s.ResumeYears)
	assert.Equal(t, types.LevelSenior, s.JobSeniority)
	assert.Equal(t, types.IndustryFinance, s.JobIndustry)
}

func TestBuildSignals_DensityIsACopy(t *testing.T) {
	job := &types.JobPosting{KeywordCounts: map[string]int{"Go": 1}}
	s := BuildSignals(&types.ResumeDocument{}, job)

	s.KeywordDensity["Go"] = 99
	assert.Equal(t, 1, job.KeywordCounts["Go"])
}

func TestBuildSignals_EmptyInputs(t *testing.T) {
	s := BuildSignals(&types.ResumeDocument{}, &types.JobPosting{})

	assert.NotNil(t, s.Intersection)
	assert.NotNil(t, s.MissingRequired)
	assert.NotNil(t, s.MissingPreferred)
	assert.Empty(t, s.Intersection)
	assert.Equal(t, 50, NewDefaultPolicy().MatchScore(s))
}
