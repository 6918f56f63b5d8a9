package analysis

import (
	"fmt"
	"strings"

	"github.com/krishnachadda/ResumeTailor/internal/scoring"
	"github.com/krishnachadda/ResumeTailor/internal/types"
)

// rule produces at most one recommendation. Rules run in priority order.
type rule func(s *types.MatchSignals, scores scoring.Scores, target Target) (string, bool)

var rules = []rule{
	atsRule,
	missingRequiredRule,
	experienceRule,
	industryRule,
	matchRule,
	headingsRule,
}

// Recommend evaluates every rule in priority order. When none fires, a single
// recommendation to quantify the strongest matches is returned.
func Recommend(s *types.MatchSignals, scores scoring.Scores, target Target) []string {
	recs := []string{}
	for _, r := range rules {
		if rec, ok := r(s, scores, target); ok {
			recs = append(recs, rec)
		}
	}
	if len(recs) == 0 {
		recs = append(recs, fallbackRecommendation(s))
	}
	return recs
}

func atsRule(s *types.MatchSignals, scores scoring.Scores, _ Target) (string, bool) {
	if scores.ATS >= ATSThreshold {
		return "", false
	}
	rec := fmt.Sprintf("Raise your ATS compatibility (currently %d) by adding measurable achievements and the posting's own keywords", scores.ATS)
	missing := append(RankByDensity(s.MissingRequired, s.KeywordDensity), RankByDensity(s.MissingPreferred, s.KeywordDensity)...)
	if len(missing) > 0 {
		rec += " such as " + joinTop(missing)
	}
	return rec, true
}

func missingRequiredRule(s *types.MatchSignals, _ scoring.Scores, _ Target) (string, bool) {
	if len(s.MissingRequired) == 0 {
		return "", false
	}
	return "Address the top missing required skills: " + joinTop(RankByDensity(s.MissingRequired, s.KeywordDensity)), true
}

// experienceRule treats a resume with no stated years as zero years
func experienceRule(s *types.MatchSignals, _ scoring.Scores, target Target) (string, bool) {
	if target.Level == "" {
		return "", false
	}
	minYears := target.Level.MinYears()
	years := 0
	if s.ResumeYears != nil {
		years = *s.ResumeYears
	}
	if years >= minYears {
		return "", false
	}
	return fmt.Sprintf("Reframe the scope of your responsibilities to reflect %s-level expectations (%d+ years): emphasize ownership and impact over tenure", target.Level, minYears), true
}

func industryRule(s *types.MatchSignals, _ scoring.Scores, target Target) (string, bool) {
	if target.Industry == "" || target.Industry == types.IndustryGeneral {
		return "", false
	}
	if s.JobIndustry == "" || s.JobIndustry == types.IndustryGeneral || s.JobIndustry == target.Industry {
		return "", false
	}
	return fmt.Sprintf("Adopt %s industry terminology: this posting reads as %s, not %s", s.JobIndustry, s.JobIndustry, target.Industry), true
}

func matchRule(_ *types.MatchSignals, scores scoring.Scores, _ Target) (string, bool) {
	if scores.Match >= MatchThreshold {
		return "", false
	}
	return "Foreground transferable accomplishments that show how you can close the remaining skill gaps quickly", true
}

func headingsRule(s *types.MatchSignals, _ scoring.Scores, _ Target) (string, bool) {
	if s.ResumeHasHeadings {
		return "", false
	}
	return "Use standard section headings (Summary, Experience, Skills, Education) so applicant tracking systems can parse your resume", true
}

func fallbackRecommendation(s *types.MatchSignals) string {
	strengths := RankByDensity(s.Intersection, s.KeywordDensity)
	if len(strengths) == 0 {
		return "Quantify the impact of your most relevant achievements with concrete metrics"
	}
	return "Quantify the impact of your strongest matches with concrete metrics: " + joinTop(strengths)
}

func joinTop(skills []string) string {
	if len(skills) > topMissingInRecommendation {
		skills = skills[:topMissingInRecommendation]
	}
	return strings.Join(skills, ", ")
}
