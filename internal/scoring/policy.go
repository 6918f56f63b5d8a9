package scoring

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/krishnachadda/ResumeTailor/internal/types"
)

// Policy computes both scores from a set of match signals.
// Implementations must be deterministic and return integers in [0, 100].
type Policy interface {
	MatchScore(s *types.MatchSignals) int
	ATSScore(s *types.MatchSignals) int
}

// Scores is the pair of integer scores for one request
type Scores struct {
	Match int `json:"matchScore"`
	ATS   int `json:"atsScore"`
}

// Score applies p to s. A nil policy uses the default policy.
func Score(p Policy, s *types.MatchSignals) Scores {
	if p == nil {
		p = NewDefaultPolicy()
	}
	return Scores{Match: p.MatchScore(s), ATS: p.ATSScore(s)}
}

// Default policy constants
const (
	NeutralMatchScore     = 50
	NeutralCoverage       = 0.5
	MinViableResumeLength = 400
	ShortResumePenalty    = 15
	NoHeadingsPenalty     = 10
	NoBulletsPenalty      = 5
	RequiredWeight        = 2
	PreferredWeight       = 1
)

// DefaultPolicy weights required skills double, and scores ATS compatibility as
// count-weighted keyword coverage minus fixed formatting penalties.
type DefaultPolicy struct {
	RequiredWeight        int
	PreferredWeight       int
	NeutralMatchScore     int
	NeutralCoverage       float64
	MinViableResumeLength int
	ShortResumePenalty    int
	NoHeadingsPenalty     int
	NoBulletsPenalty      int
}

// NewDefaultPolicy returns the default weights and penalties
func NewDefaultPolicy() DefaultPolicy {
	return DefaultPolicy{
		RequiredWeight:        RequiredWeight,
		PreferredWeight:       PreferredWeight,
		NeutralMatchScore:     NeutralMatchScore,
		NeutralCoverage:       NeutralCoverage,
		MinViableResumeLength: MinViableResumeLength,
		ShortResumePenalty:    ShortResumePenalty,
		NoHeadingsPenalty:     NoHeadingsPenalty,
		NoBulletsPenalty:      NoBulletsPenalty,
	}
}

// MatchScore = round(100 * (w_r*|R∩S| + w_p*|P∩S|) / (w_r*|R| + w_p*|P|)).
// A job with no extracted skills scores NeutralMatchScore.
func (p DefaultPolicy) MatchScore(s *types.MatchSignals) int {
	denominator := p.RequiredWeight*len(s.Required) + p.PreferredWeight*len(s.Preferred)
	if denominator == 0 {
		return clamp(p.NeutralMatchScore)
	}

	resume := toSet(s.ResumeSkills)
	numerator := 0
	for _, skill := range s.Required {
		if resume[skill] {
			numerator += p.RequiredWeight
		}
	}
	for _, skill := range s.Preferred {
		if resume[skill] {
			numerator += p.PreferredWeight
		}
	}
	return clamp(int(math.Round(100 * float64(numerator) / float64(denominator))))
}

// ATSScore = round(100 * coverage) - formatting penalties
func (p DefaultPolicy) ATSScore(s *types.MatchSignals) int {
	score := int(math.Round(100 * p.Coverage(s)))
	if utf8.RuneCountInString(strings.TrimSpace(s.ResumeText)) < p.MinViableResumeLength {
		score -= p.ShortResumePenalty
	}
	if !s.ResumeHasHeadings {
		score -= p.NoHeadingsPenalty
	}
	if !s.ResumeHasBullets {
		score -= p.NoBulletsPenalty
	}
	return clamp(score)
}

// Coverage is the share of job keyword occurrences, weighted by count, whose skill also appears
// in the resume. A posting with no keywords gives NeutralCoverage.
func (p DefaultPolicy) Coverage(s *types.MatchSignals) float64 {
	total, present := 0, 0
	resume := toSet(s.ResumeSkills)
	for keyword, count := range s.KeywordDensity {
		if count <= 0 {
			continue
		}
		total += count
		if resume[keyword] {
			present += count
		}
	}
	if total == 0 {
		return p.NeutralCoverage
	}
	return float64(present) / float64(total)
}

func clamp(v int) int {
	return max(0, min(100, v))
}
