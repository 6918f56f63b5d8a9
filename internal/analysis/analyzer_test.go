package analysis

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishnachadda/ResumeTailor/internal/parsing"
	"github.com/krishnachadda/ResumeTailor/internal/scoring"
	"github.com/krishnachadda/ResumeTailor/internal/types"
)

func intPtr(i int) *int {
	return &i
}

func TestAnalyze_StrengthsRankedByDensity(t *testing.T) {
	s := &types.MatchSignals{
		ResumeSkills:      []string{"Docker", "Go", "SQL"},
		Intersection:      []string{"Docker", "Go", "SQL"},
		KeywordDensity:    map[string]int{"Go": 5, "SQL": 2, "Docker": 2},
		ResumeHasHeadings: true,
		Required:          []string{"Go", "SQL"},
		Preferred:         []string{"Docker"},
	}

	result := New(DefaultConfig()).Analyze(s, scoring.Scores{Match: 100, ATS: 90}, Target{})

	assert.Equal(t, []string{
		"Strong background in Go",
		"Strong background in Docker",
		"Strong background in SQL",
	}, result.KeyStrengths)
	assert.Empty(t, result.SkillGaps)
	assert.NotNil(t, result.SkillGaps)
	assert.Equal(t, 100, result.MatchScore)
	assert.Equal(t, 90, result.ATSScore)
}

func TestAnalyze_GapsRequiredBeforePreferred(t *testing.T) {
	s := &types.MatchSignals{
		MissingRequired:  []string{"Java", "Kafka"},
		MissingPreferred: []string{"AWS"},
		KeywordDensity:   map[string]int{"AWS": 9, "Java": 1, "Kafka": 3},
	}

	result := New(DefaultConfig()).Analyze(s, scoring.Scores{}, Target{})

	assert.Equal(t, []string{
		"Develop experience with Kafka (required)",
		"Develop experience with Java (required)",
		"Consider building familiarity with AWS (preferred)",
	}, result.SkillGaps)
}

func TestAnalyze_CapsAndUniqueness(t *testing.T) {
	var skills []string
	density := map[string]int{}
	for i := 0; i < 20; i++ {
		skill := fmt.Sprintf("Skill%02d", i)
		skills = append(skills, skill)
		density[skill] = i
	}
	s := &types.MatchSignals{
		ResumeSkills:     skills,
		Intersection:     append(append([]string{}, skills...), skills...),
		MissingRequired:  skills,
		MissingPreferred: skills,
		KeywordDensity:   density,
	}

	for _, cfg := range []Config{DefaultConfig(), {MaxStrengths: 2, MaxGaps: 3, MaxRecommendations: 1}} {
		result := New(cfg).Analyze(s, scoring.Scores{Match: 10, ATS: 10}, Target{Level: types.LevelExecutive, Industry: types.IndustryLegal})

		assert.LessOrEqual(t, len(result.KeyStrengths), cfg.MaxStrengths)
		assert.LessOrEqual(t, len(result.SkillGaps), cfg.MaxGaps)
		assert.LessOrEqual(t, len(result.Recommendations), cfg.MaxRecommendations)
		assertUnique(t, result.KeyStrengths)
		assertUnique(t, result.SkillGaps)
		assertUnique(t, result.Recommendations)
	}
}

func assertUnique(t *testing.T, items []string) {
	t.Helper()
	seen := map[string]bool{}
	for _, item := range items {
		assert.False(t, seen[item], "duplicate entry %q", item)
		seen[item] = true
	}
}

func TestNew_NonPositiveCapsUseDefault(t *testing.T) {
	a := New(Config{})
	assert.Equal(t, DefaultConfig(), a.cfg)
}

func TestIndustryFit(t *testing.T) {
	assert.Equal(t, types.IndustryFinance, IndustryFit(types.IndustryFinance, types.IndustryLegal))
	assert.Equal(t, types.IndustryLegal, IndustryFit(types.IndustryGeneral, types.IndustryLegal))
	assert.Equal(t, types.IndustryGeneral, IndustryFit(types.IndustryGeneral, ""))
	assert.Equal(t, types.IndustryGeneral, IndustryFit("", ""))
}

func TestDegradations(t *testing.T) {
	assert.Len(t, Degradations(&types.MatchSignals{}), 3)
	assert.Empty(t, Degradations(&types.MatchSignals{
		ResumeSkills:      []string{"Go"},
		Required:          []string{"Go"},
		ResumeHasHeadings: true,
	}))
}

func TestAnalyze_Deterministic(t *testing.T) {
	extractor := parsing.NewExtractor(nil)
	resume := extractor.ExtractResume("Summary\nGo engineer, 4 years.\nSkills: Go, Docker, SQL")
	job := extractor.ExtractJob("Requirements: Go, Kubernetes, SQL. Nice to have: Terraform.")
	target := Target{Industry: types.IndustryFinance, Level: types.LevelSenior}

	run := func() types.AnalysisResult {
		s := scoring.BuildSignals(resume, job)
		return New(DefaultConfig()).Analyze(s, scoring.Score(nil, s), target)
	}
	first := run()
	require.NotEmpty(t, first.Recommendations)
	assert.Equal(t, first, run())
}

func TestAnalyze_IndustryMismatchScenario(t *testing.T) {
	extractor := parsing.NewExtractor(nil)
	resume := extractor.ExtractResume("Experience\n- Built cloud software with Go and Kubernetes")
	job := extractor.ExtractJob("Backend Engineer\nWe build cloud software for our SaaS platform.\nRequirements: Go, Kubernetes.")
	require.Equal(t, types.IndustryTechnology, job.Industry)

	s := scoring.BuildSignals(resume, job)
	result := New(DefaultConfig()).Analyze(s, scoring.Score(nil, s), Target{Industry: types.IndustryHealthcare})

	found := false
	for _, rec := range result.Recommendations {
		if strings.Contains(rec, "Technology industry terminology") {
			found = true
		}
	}
	assert.True(t, found, "recommendations: %v", result.Recommendations)
	assert.Equal(t, "Technology", result.IndustryFit)
}
