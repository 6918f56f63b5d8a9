// Package analysis ranks matched strengths and unmet gaps and derives rule-based recommendations.
package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ecodeclub/ekit/slice"

	"github.com/krishnachadda/ResumeTailor/internal/scoring"
	"github.com/krishnachadda/ResumeTailor/internal/types"
)

// DefaultCap bounds keyStrengths, skillGaps and recommendations
const DefaultCap = 6

// Thresholds below which a recommendation fires
const (
	ATSThreshold   = 70
	MatchThreshold = 60
)

// topMissingInRecommendation is how many skills a recommendation names
const topMissingInRecommendation = 3

// Target is what the user asked for, used only to compare against the posting
type Target struct {
	Industry types.Industry
	Level    types.ExperienceLevel
}

// Config tunes the analyzer
type Config struct {
	MaxStrengths       int
	MaxGaps            int
	MaxRecommendations int
}

// DefaultConfig caps every list at DefaultCap
func DefaultConfig() Config {
	return Config{
		MaxStrengths:       DefaultCap,
		MaxGaps:            DefaultCap,
		MaxRecommendations: DefaultCap,
	}
}

// Analyzer builds AnalysisResults. It holds no per-request state.
type Analyzer struct {
	cfg Config
}

// New creates an Analyzer. Non-positive caps fall back to DefaultCap.
func New(cfg Config) *Analyzer {
	if cfg.MaxStrengths <= 0 {
		cfg.MaxStrengths = DefaultCap
	}
	if cfg.MaxGaps <= 0 {
		cfg.MaxGaps = DefaultCap
	}
	if cfg.MaxRecommendations <= 0 {
		cfg.MaxRecommendations = DefaultCap
	}
	return &Analyzer{cfg: cfg}
}

// Analyze assembles the full AnalysisResult for one request
func (a *Analyzer) Analyze(s *types.MatchSignals, scores scoring.Scores, target Target) types.AnalysisResult {
	strengths := RankByDensity(s.Intersection, s.KeywordDensity)
	gaps := append(RankByDensity(s.MissingRequired, s.KeywordDensity), RankByDensity(s.MissingPreferred, s.KeywordDensity)...)

	return types.AnalysisResult{
		MatchScore:      scores.Match,
		ATSScore:        scores.ATS,
		KeyStrengths:    capUnique(strengthPhrases(strengths), a.cfg.MaxStrengths),
		SkillGaps:       capUnique(a.gapPhrases(s, gaps), a.cfg.MaxGaps),
		Recommendations: capUnique(Recommend(s, scores, target), a.cfg.MaxRecommendations),
		IndustryFit:     string(IndustryFit(s.JobIndustry, target.Industry)),
		Warnings:        Degradations(s),
	}
}

// RankByDensity orders skills by how often the posting mentions them, then alphabetically
func RankByDensity(skills []string, density map[string]int) []string {
	ranked := append([]string(nil), skills...)
	sort.SliceStable(ranked, func(i, j int) bool {
		di, dj := density[ranked[i]], density[ranked[j]]
		if di != dj {
			return di > dj
		}
		return ranked[i] < ranked[j]
	})
	return ranked
}

func strengthPhrases(skills []string) []string {
	return slice.Map(skills, func(_ int, skill string) string {
		return "Strong background in " + skill
	})
}

func (a *Analyzer) gapPhrases(s *types.MatchSignals, gaps []string) []string {
	required := make(map[string]bool, len(s.MissingRequired))
	for _, skill := range s.MissingRequired {
		required[skill] = true
	}
	return slice.Map(gaps, func(_ int, skill string) string {
		if required[skill] {
			return fmt.Sprintf("Develop experience with %s (required)", skill)
		}
		return fmt.Sprintf("Consider building familiarity with %s (preferred)", skill)
	})
}

// IndustryFit reports the posting's industry, falling back to the requested one, then General
func IndustryFit(job, requested types.Industry) types.Industry {
	switch {
	case job != "" && job != types.IndustryGeneral:
		return job
	case requested != "":
		return requested
	default:
		return types.IndustryGeneral
	}
}

// Degradations lists the signals that could not be extracted. They are informational only.
func Degradations(s *types.MatchSignals) []string {
	var warnings []string
	if len(s.ResumeSkills) == 0 {
		warnings = append(warnings, "no recognizable skills found in resume")
	}
	if len(s.Required) == 0 && len(s.Preferred) == 0 {
		warnings = append(warnings, "no recognizable skill requirements found in job description; match score is neutral")
	}
	if !s.ResumeHasHeadings {
		warnings = append(warnings, "no section headings detected in resume")
	}
	return warnings
}

// capUnique drops duplicates, keeping first occurrences, and truncates to limit
func capUnique(items []string, limit int) []string {
	out := make([]string, 0, min(len(items), limit))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if len(out) == limit {
			break
		}
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}
