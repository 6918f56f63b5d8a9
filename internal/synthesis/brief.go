// Package synthesis turns an analysis into a structured brief per document and has the
// text-generation collaborator write the tailored resume and cover letter from it.
package synthesis

import (
	"fmt"

	"github.com/krishnachadda/ResumeTailor/internal/analysis"
	"github.com/krishnachadda/ResumeTailor/internal/templates"
	"github.com/krishnachadda/ResumeTailor/internal/types"
	"github.com/krishnachadda/ResumeTailor/internal/validation"
)

// DocumentKind names one of the two generated documents
type DocumentKind string

// Document kinds
const (
	KindResume      DocumentKind = "resume"
	KindCoverLetter DocumentKind = "cover_letter"
)

// Brief limits
const (
	maxTalkingPoints = 6
	maxKeywords      = 10
	charsPerWord     = 8
)

// CoverLetterSections is the part order every cover letter follows
var CoverLetterSections = []string{"Greeting", "Opening", "Body", "Closing"}

// LengthBand is the target size of a document
type LengthBand struct {
	MinWords int    `json:"min_words"`
	MaxWords int    `json:"max_words"`
	Pages    string `json:"pages"`
}

func (b LengthBand) String() string {
	return fmt.Sprintf("%d-%d words (%s)", b.MinWords, b.MaxWords, b.Pages)
}

var resumeLengths = map[types.ExperienceLevel]LengthBand{
	types.LevelEntry:     {MinWords: 300, MaxWords: 500, Pages: "one page"},
	types.LevelMid:       {MinWords: 450, MaxWords: 700, Pages: "one page"},
	types.LevelSenior:    {MinWords: 600, MaxWords: 900, Pages: "up to two pages"},
	types.LevelExecutive: {MinWords: 700, MaxWords: 1100, Pages: "two pages"},
}

var coverLetterLengths = map[types.ExperienceLevel]LengthBand{
	types.LevelEntry:     {MinWords: 200, MaxWords: 300, Pages: "under one page"},
	types.LevelMid:       {MinWords: 250, MaxWords: 350, Pages: "under one page"},
	types.LevelSenior:    {MinWords: 300, MaxWords: 400, Pages: "one page"},
	types.LevelExecutive: {MinWords: 300, MaxWords: 450, Pages: "one page"},
}

// Brief is everything the collaborator needs to write one document
type Brief struct {
	Kind       DocumentKind          `json:"kind"`
	Template   types.TemplateID      `json:"template"`
	Layout     templates.Layout      `json:"layout"`
	Tone       string                `json:"tone"`
	Sections   []string              `json:"sections"`
	Industry   string                `json:"industry"`
	Level      types.ExperienceLevel `json:"level"`
	Length     LengthBand            `json:"length"`
	Foreground []string              `json:"foreground"`
	Reframe    []string              `json:"reframe"`
	Keywords   []string              `json:"keywords"`
	// Budget caps the generated text in characters
	Budget         int    `json:"budget"`
	Resume         string `json:"-"`
	JobDescription string `json:"-"`
}

// Structure is what the generated text must contain to be accepted
func (b Brief) Structure() validation.Structure {
	if b.Kind == KindCoverLetter {
		return validation.Structure{MinParagraphs: 3, Greeting: true, SignOff: true}
	}
	return validation.Structure{Headings: b.Sections}
}

// BuildBrief assembles the brief for one document from the request and its analysis
func BuildBrief(kind DocumentKind, req *types.TailoringRequest, s *types.MatchSignals, result types.AnalysisResult) (Brief, error) {
	tmpl, err := templates.Get(req.TemplateOrDefault())
	if err != nil {
		return Brief{}, err
	}

	level := targetLevel(req, s)
	missing := append(analysis.RankByDensity(s.MissingRequired, s.KeywordDensity),
		analysis.RankByDensity(s.MissingPreferred, s.KeywordDensity)...)

	b := Brief{
		Kind:           kind,
		Template:       tmpl.ID,
		Layout:         tmpl.Contract.Layout,
		Tone:           tmpl.Contract.Tone,
		Industry:       result.IndustryFit,
		Level:          level,
		Foreground:     head(analysis.RankByDensity(s.Intersection, s.KeywordDensity), maxTalkingPoints),
		Reframe:        head(missing, maxTalkingPoints),
		Keywords:       head(analysis.RankByDensity(keys(s.KeywordDensity), s.KeywordDensity), maxKeywords),
		Resume:         req.Resume,
		JobDescription: req.JobDescription,
	}
	switch kind {
	case KindResume:
		b.Sections = append([]string(nil), tmpl.Contract.SectionOrder...)
		b.Length = resumeLengths[level]
	case KindCoverLetter:
		b.Sections = append([]string(nil), CoverLetterSections...)
		b.Length = coverLetterLengths[level]
	default:
		return Brief{}, fmt.Errorf("unknown document kind %q", kind)
	}
	b.Budget = b.Length.MaxWords * charsPerWord
	return b, nil
}

// targetLevel is the requested level, else the posting's seniority, else mid
func targetLevel(req *types.TailoringRequest, s *types.MatchSignals) types.ExperienceLevel {
	switch {
	case req.ExperienceLevel != "":
		return req.ExperienceLevel
	case s.JobSeniority != "":
		return s.JobSeniority
	default:
		return types.LevelMid
	}
}

func head(items []string, n int) []string {
	if len(items) > n {
		items = items[:n]
	}
	return append([]string{}, items...)
}

func keys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
