package parsing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/krishnachadda/ResumeTailor/internal/ingestion"
	"github.com/krishnachadda/ResumeTailor/internal/types"
)

// maxPlausibleYears drops matches like "100 years of company history"
const maxPlausibleYears = 50

var (
	yearsRe    = regexp.MustCompile(`(?i)\b(\d{1,3})(?:\s*(?:-|–|to)\s*(\d{1,3}))?\s*\+?\s*(?:years?|yrs?)\b`)
	fragmentRe = regexp.MustCompile(`[.;!?]\s+|[.;!?]$|\n`)
)

// Strength is how strongly a job posting asks for a skill
type Strength int

// Requirement strengths
const (
	StrengthRequired Strength = iota
	StrengthPreferred
)

var (
	preferredMarkers = []string{"nice to have", "preferred", "bonus", "plus", "desired", "desirable", "ideally", "optional"}
	requiredMarkers  = []string{"must have", "must", "required", "requirements", "requirement", "minimum", "qualifications", "essential"}
)

// Extractor derives signals from text with a fixed dictionary
type Extractor struct {
	dict *Dictionary
}

// NewExtractor creates an extractor. A nil dictionary selects DefaultDictionary.
func NewExtractor(dict *Dictionary) *Extractor {
	if dict == nil {
		dict = DefaultDictionary()
	}
	return &Extractor{dict: dict}
}

// ExtractResume normalizes resume text and pulls out its skills and experience years
func (e *Extractor) ExtractResume(text string) *types.ResumeDocument {
	sections := ingestion.Normalize(text)
	skills := make(map[string]int)
	for _, s := range sections {
		for skill, n := range e.dict.Count(s.Tokens) {
			skills[skill] += n
		}
	}
	return &types.ResumeDocument{
		RawText:         text,
		Sections:        sections,
		Skills:          sortedKeys(skills),
		ExperienceYears: ExtractYears(text),
		HasHeadings:     ingestion.HasHeadings(sections),
		HasBullets:      ingestion.HasBulletLines(ingestion.CleanText(text)),
	}
}

// ExtractJob normalizes a job description and splits its skills into required and preferred.
// Unmarked skills default to required; a skill seen with both strengths is required only.
func (e *Extractor) ExtractJob(text string) *types.JobPosting {
	sections := ingestion.Normalize(text)
	counts := make(map[string]int)
	strength := make(map[string]Strength)

	record := func(fragment string, s Strength) {
		for skill, n := range e.dict.Count(ingestion.Tokenize(fragment)) {
			counts[skill] += n
			if prev, seen := strength[skill]; !seen || (prev == StrengthPreferred && s == StrengthRequired) {
				strength[skill] = s
			}
		}
	}

	previous := StrengthRequired
	for i, section := range sections {
		sectionStrength := StrengthRequired
		if s, ok := markerStrength(section.Heading); ok {
			sectionStrength = s
		} else if i > 0 && e.continuesList(section.Heading) {
			sectionStrength = previous
		}
		previous = sectionStrength
		record(section.Heading, sectionStrength)

		for _, bullet := range section.Bullets {
			current := sectionStrength
			for _, fragment := range splitFragments(bullet) {
				if s, ok := markerStrength(fragment); ok {
					current = s
				}
				record(fragment, current)
			}
		}
	}

	required := []string{}
	preferred := []string{}
	for _, skill := range sortedKeys(counts) {
		if strength[skill] == StrengthRequired {
			required = append(required, skill)
		} else {
			preferred = append(preferred, skill)
		}
	}

	years := ExtractYears(text)
	return &types.JobPosting{
		RawText:       text,
		Sections:      sections,
		Required:      required,
		Preferred:     preferred,
		MinYears:      years,
		Seniority:     InferSeniority(text, years),
		Industry:      InferIndustry(text),
		KeywordCounts: counts,
	}
}

// continuesList reports whether an unmarked heading is really a bare skill line such as
// "Kubernetes" or "AWS" continuing the list above it
func (e *Extractor) continuesList(heading string) bool {
	return heading != "" && e.dict.IsSkillList(ingestion.Tokenize(heading))
}

// splitFragments breaks a bullet at sentence boundaries so "Required: Go. Preferred: SQL." yields two fragments
func splitFragments(bullet string) []string {
	parts := fragmentRe.Split(bullet, -1)
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// markerStrength looks for requirement markers in text. Preferred markers win over required
// ones so "Preferred Qualifications" is preferred.
func markerStrength(text string) (Strength, bool) {
	if text == "" {
		return StrengthRequired, false
	}
	padded := ingestion.TokenText(ingestion.Tokenize(text))
	for _, m := range preferredMarkers {
		if strings.Contains(padded, " "+m+" ") {
			return StrengthPreferred, true
		}
	}
	for _, m := range requiredMarkers {
		if strings.Contains(padded, " "+m+" ") {
			return StrengthRequired, true
		}
	}
	return StrengthRequired, false
}

// ExtractYears returns the largest "N years" figure in text, using the upper bound of ranges.
// Returns nil when no figure is present.
func ExtractYears(text string) *int {
	best := -1
	for _, m := range yearsRe.FindAllStringSubmatch(text, -1) {
		value := m[1]
		if m[2] != "" {
			value = m[2]
		}
		n, err := strconv.Atoi(value)
		if err != nil || n > maxPlausibleYears {
			continue
		}
		if n > best {
			best = n
		}
	}
	if best < 0 {
		return nil
	}
	return &best
}
