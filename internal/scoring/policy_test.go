package scoring

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishnachadda/ResumeTailor/internal/parsing"
	"github.com/krishnachadda/ResumeTailor/internal/types"
)

func TestScore_MatchScenario(t *testing.T) {
	extractor := parsing.NewExtractor(nil)
	resume := extractor.ExtractResume("Skills: Python, SQL. 5 years experience.")
	job := extractor.ExtractJob("Required: Python, Java. Preferred: SQL.")

	signals := BuildSignals(resume, job)
	require.Equal(t, []string{"Java", "Python"}, signals.Required)
	require.Equal(t, []string{"SQL"}, signals.Preferred)
	assert.Equal(t, []string{"Python", "SQL"}, signals.Intersection)
	assert.Equal(t, []string{"Java"}, signals.MissingRequired)
	assert.Empty(t, signals.MissingPreferred)

	scores := Score(nil, signals)
	assert.Equal(t, 60, scores.Match)
	// coverage 2/3 -> 67, short resume -15, no bullet lines -5
	assert.Equal(t, 47, scores.ATS)
}

func TestCoverage_CountsAliasSpellings(t *testing.T) {
	extractor := parsing.NewExtractor(nil)
	job := extractor.ExtractJob("Required: Go, Kubernetes, Java.")
	p := NewDefaultPolicy()

	aliased := BuildSignals(extractor.ExtractResume("Skills: Golang, k8s"), job)
	verbatim := BuildSignals(extractor.ExtractResume("Skills: Go, Kubernetes"), job)

	assert.InDelta(t, 2.0/3.0, p.Coverage(aliased), 1e-9)
	assert.Equal(t, p.Coverage(verbatim), p.Coverage(aliased))
}

func TestMatchScore_NeutralWhenJobHasNoSkills(t *testing.T) {
	p := NewDefaultPolicy()
	for _, resumeSkills := range [][]string{nil, {"Go"}, {"Go", "Rust", "SQL"}} {
		s := &types.MatchSignals{ResumeSkills: resumeSkills}
		assert.Equal(t, 50, p.MatchScore(s))
	}
}

func TestMatchScore_Bounds(t *testing.T) {
	p := NewDefaultPolicy()

	full := &types.MatchSignals{
		ResumeSkills: []string{"Go", "SQL", "Rust"},
		Required:     []string{"Go", "SQL"},
		Preferred:    []string{"Rust"},
	}
	assert.Equal(t, 100, p.MatchScore(full))

	none := &types.MatchSignals{
		Required:  []string{"Go", "SQL"},
		Preferred: []string{"Rust"},
	}
	assert.Equal(t, 0, p.MatchScore(none))
}

func TestMatchScore_MonotonicInRequiredSkills(t *testing.T) {
	p := NewDefaultPolicy()
	required := []string{"A", "B", "C", "D", "E"}
	preferred := []string{"F", "G", "H"}

	// every subset of preferred skills as a baseline, then add required skills one at a time
	for mask := 0; mask < 1<<len(preferred); mask++ {
		var resume []string
		for i, skill := range preferred {
			if mask&(1<<i) != 0 {
				resume = append(resume, skill)
			}
		}
		prev := p.MatchScore(&types.MatchSignals{ResumeSkills: resume, Required: required, Preferred: preferred})
		for _, skill := range required {
			resume = append(resume, skill)
			next := p.MatchScore(&types.MatchSignals{ResumeSkills: resume, Required: required, Preferred: preferred})
			assert.GreaterOrEqual(t, next, prev, "adding %s to %v", skill, resume)
			prev = next
		}
	}
}

func TestATSScore_Penalties(t *testing.T) {
	p := NewDefaultPolicy()
	longText := strings.Repeat("x", MinViableResumeLength)

	tests := []struct {
		name     string
		signals  types.MatchSignals
		expected int
	}{
		{
			name: "full coverage no penalties",
			signals: types.MatchSignals{
				ResumeSkills: []string{"Go"}, KeywordDensity: map[string]int{"Go": 3},
				ResumeText: longText, ResumeHasHeadings: true, ResumeHasBullets: true,
			},
			expected: 100,
		},
		{
			name: "count weighted coverage",
			signals: types.MatchSignals{
				ResumeSkills: []string{"Go"}, KeywordDensity: map[string]int{"Go": 3, "Rust": 1},
				ResumeText: longText, ResumeHasHeadings: true, ResumeHasBullets: true,
			},
			expected: 75,
		},
		{
			name: "neutral coverage for a job without keywords",
			signals: types.MatchSignals{
				ResumeText: longText, ResumeHasHeadings: true, ResumeHasBullets: true,
			},
			expected: 50,
		},
		{
			name: "all penalties",
			signals: types.MatchSignals{
				ResumeSkills: []string{"Go"}, KeywordDensity: map[string]int{"Go": 1},
				ResumeText: "short",
			},
			expected: 100 - ShortResumePenalty - NoHeadingsPenalty - NoBulletsPenalty,
		},
		{
			name: "clamped at zero",
			signals: types.MatchSignals{
				KeywordDensity: map[string]int{"Go": 1},
				ResumeText:     "",
			},
			expected: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, p.ATSScore(&tt.signals))
		})
	}
}

func TestATSScore_IndependentOfIndustry(t *testing.T) {
	p := NewDefaultPolicy()
	base := types.MatchSignals{
		ResumeSkills: []string{"Go"}, KeywordDensity: map[string]int{"Go": 1, "SQL": 1},
		ResumeText: "Go developer", JobIndustry: types.IndustryTechnology,
	}
	other := base
	other.JobIndustry = types.IndustryRetail
	other.JobSeniority = types.LevelExecutive
	assert.Equal(t, p.ATSScore(&base), p.ATSScore(&other))
}

func TestScores_AlwaysInRange(t *testing.T) {
	p := NewDefaultPolicy()
	skills := []string{"A", "B", "C", "D"}
	for mask := 0; mask < 1<<len(skills); mask++ {
		var resume []string
		for i, s := range skills {
			if mask&(1<<i) != 0 {
				resume = append(resume, s)
			}
		}
		for split := 0; split <= len(skills); split++ {
			s := &types.MatchSignals{
				ResumeSkills:   resume,
				Required:       skills[:split],
				Preferred:      skills[split:],
				KeywordDensity: map[string]int{"A": mask + 1, "D": split},
				ResumeText:     strings.Repeat("y", mask*60),
			}
			t.Run(fmt.Sprintf("mask=%d split=%d", mask, split), func(t *testing.T) {
				scores := Score(p, s)
				assert.GreaterOrEqual(t, scores.Match, 0)
				assert.LessOrEqual(t, scores.Match, 100)
				assert.GreaterOrEqual(t, scores.ATS, 0)
				assert.LessOrEqual(t, scores.ATS, 100)
				assert.Equal(t, scores, Score(p, s))
			})
		}
	}
}

type fixedPolicy struct{}

func (fixedPolicy) MatchScore(*types.MatchSignals) int { return 42 }
func (fixedPolicy) ATSScore(*types.MatchSignals) int   { return 7 }

func TestScore_SwappablePolicy(t *testing.T) {
	assert.Equal(t, Scores{Match: 42, ATS: 7}, Score(fixedPolicy{}, &types.MatchSignals{}))
}
