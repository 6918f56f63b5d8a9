package synthesis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishnachadda/ResumeTailor/internal/templates"
	"github.com/krishnachadda/ResumeTailor/internal/types"
)

func testSignals() *types.MatchSignals {
	return &types.MatchSignals{
		Intersection:     []string{"AWS", "Python"},
		MissingRequired:  []string{"Java", "Kubernetes"},
		MissingPreferred: []string{"SQL"},
		KeywordDensity:   map[string]int{"Python": 4, "AWS": 1, "Java": 2, "Kubernetes": 3, "SQL": 1},
		JobSeniority:     types.LevelSenior,
		JobIndustry:      types.IndustryTechnology,
	}
}

func TestBuildBrief_Resume(t *testing.T) {
	req := &types.TailoringRequest{Resume: "r", JobDescription: "j", Template: types.TemplateTech}
	b, err := BuildBrief(KindResume, req, testSignals(), types.AnalysisResult{IndustryFit: "Technology"})
	require.NoError(t, err)

	assert.Equal(t, types.TemplateTech, b.Template)
	assert.Equal(t, templates.LayoutSkillsForward, b.Layout)
	tech, err := templates.Get(types.TemplateTech)
	require.NoError(t, err)
	assert.Equal(t, tech.Contract.SectionOrder, b.Sections)
	assert.Equal(t, []string{"Python", "AWS"}, b.Foreground)
	assert.Equal(t, []string{"Kubernetes", "Java", "SQL"}, b.Reframe)
	assert.Equal(t, []string{"Python", "Kubernetes", "Java", "AWS", "SQL"}, b.Keywords)
	// no requested level, so the posting's seniority drives length
	assert.Equal(t, types.LevelSenior, b.Level)
	assert.Equal(t, resumeLengths[types.LevelSenior], b.Length)
	assert.Equal(t, b.Length.MaxWords*charsPerWord, b.Budget)
	assert.Equal(t, "Technology", b.Industry)
	assert.Equal(t, []string{"Summary", "Skills", "Experience", "Projects", "Education"}, b.Structure().Headings)
}

func TestBuildBrief_CoverLetter(t *testing.T) {
	req := &types.TailoringRequest{Resume: "r", JobDescription: "j", ExperienceLevel: types.LevelEntry}
	b, err := BuildBrief(KindCoverLetter, req, testSignals(), types.AnalysisResult{})
	require.NoError(t, err)

	assert.Equal(t, types.TemplateExecutive, b.Template)
	assert.Equal(t, CoverLetterSections, b.Sections)
	assert.Equal(t, coverLetterLengths[types.LevelEntry], b.Length)
	s := b.Structure()
	assert.True(t, s.Greeting)
	assert.True(t, s.SignOff)
	assert.Empty(t, s.Headings)
}

func TestBuildBrief_DefaultsToMid(t *testing.T) {
	req := &types.TailoringRequest{Resume: "r", JobDescription: "j"}
	b, err := BuildBrief(KindResume, req, &types.MatchSignals{}, types.AnalysisResult{})
	require.NoError(t, err)
	assert.Equal(t, types.LevelMid, b.Level)
	assert.Empty(t, b.Foreground)
	assert.NotNil(t, b.Foreground)
}

func TestBuildBrief_Errors(t *testing.T) {
	_, err := BuildBrief("memo", &types.TailoringRequest{}, &types.MatchSignals{}, types.AnalysisResult{})
	assert.Error(t, err)

	_, err = BuildBrief(KindResume, &types.TailoringRequest{Template: "bogus"}, &types.MatchSignals{}, types.AnalysisResult{})
	assert.Error(t, err)
}

func TestBuildBrief_CapsTalkingPoints(t *testing.T) {
	s := &types.MatchSignals{Intersection: []string{"A", "B", "C", "D", "E", "F", "G", "H"}}
	b, err := BuildBrief(KindResume, &types.TailoringRequest{}, s, types.AnalysisResult{})
	require.NoError(t, err)
	assert.Len(t, b.Foreground, maxTalkingPoints)
}
