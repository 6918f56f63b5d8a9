// Package templates holds the closed catalog of resume templates and the structural contract of each.
package templates

import (
	"fmt"

	"github.com/krishnachadda/ResumeTailor/internal/types"
)

// Layout describes how a template orders its content
type Layout string

// Layouts used by the catalog
const (
	LayoutChronological    Layout = "chronological"
	LayoutSkillsForward    Layout = "skills-forward"
	LayoutPortfolioForward Layout = "portfolio-forward"
)

// Contract is the structural contract generated documents must honor for a template
type Contract struct {
	Layout       Layout   `json:"layout"`
	SectionOrder []string `json:"section_order"`
	Tone         string   `json:"tone"`
}

// Template is one entry of the catalog
type Template struct {
	ID          types.TemplateID `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Preview     string           `json:"preview"`
	Industries  []types.Industry `json:"industries"`
	Contract    Contract         `json:"contract"`
}

var catalog = map[types.TemplateID]Template{
	types.TemplateExecutive: {
		ID:          types.TemplateExecutive,
		Name:        "Executive Professional",
		Description: "Perfect for senior leadership and C-suite positions",
		Preview:     "Clean, authoritative design with emphasis on achievements",
		Industries:  []types.Industry{types.IndustryFinance, types.IndustryConsulting},
		Contract: Contract{
			Layout:       LayoutChronological,
			SectionOrder: []string{"Summary", "Experience", "Achievements", "Skills", "Education"},
			Tone:         "authoritative, results-focused, concise",
		},
	},
	types.TemplateTech: {
		ID:          types.TemplateTech,
		Name:        "Tech Innovator",
		Description: "Optimized for software engineers and tech professionals",
		Preview:     "Modern layout highlighting technical skills and projects",
		Industries:  []types.Industry{types.IndustryTechnology, types.IndustryEngineering},
		Contract: Contract{
			Layout:       LayoutSkillsForward,
			SectionOrder: []string{"Summary", "Skills", "Experience", "Projects", "Education"},
			Tone:         "direct, technical, metric-driven",
		},
	},
	types.TemplateCreative: {
		ID:          types.TemplateCreative,
		Name:        "Creative Professional",
		Description: "Designed for designers, marketers, and creative roles",
		Preview:     "Visually appealing with space for portfolio highlights",
		Industries:  []types.Industry{types.IndustryDesign, types.IndustryMarketing},
		Contract: Contract{
			Layout:       LayoutPortfolioForward,
			SectionOrder: []string{"Profile", "Portfolio", "Experience", "Skills", "Education"},
			Tone:         "energetic, expressive, audience-aware",
		},
	},
	types.TemplateAcademic: {
		ID:          types.TemplateAcademic,
		Name:        "Academic Scholar",
		Description: "Tailored for researchers, professors, and academic positions",
		Preview:     "Traditional format emphasizing publications and research",
		Industries:  []types.Industry{types.IndustryEducation, types.IndustryHealthcare},
		Contract: Contract{
			Layout:       LayoutChronological,
			SectionOrder: []string{"Education", "Research Experience", "Publications", "Teaching", "Skills"},
			Tone:         "formal, precise, evidence-based",
		},
	},
}

// Get returns the catalog entry for id
func Get(id types.TemplateID) (Template, error) {
	if id == "" {
		id = types.DefaultTemplate
	}
	t, ok := catalog[id]
	if !ok {
		return Template{}, fmt.Errorf("unknown template %q", id)
	}
	return t, nil
}

// List returns every template in display order
func List() []Template {
	out := make([]Template, 0, len(types.AllTemplates))
	for _, id := range types.AllTemplates {
		out = append(out, catalog[id])
	}
	return out
}
