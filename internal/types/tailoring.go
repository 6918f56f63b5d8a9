// Package types provides type definitions for structured data used throughout the resume tailor.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// TemplateID identifies one of the fixed resume templates
type TemplateID string

// Template identifiers
const (
	TemplateExecutive TemplateID = "executive"
	TemplateTech      TemplateID = "tech"
	TemplateCreative  TemplateID = "creative"
	TemplateAcademic  TemplateID = "academic"
)

// DefaultTemplate is used when a request does not name a template
const DefaultTemplate = TemplateExecutive

// AllTemplates lists every template in display order
var AllTemplates = []TemplateID{TemplateExecutive, TemplateTech, TemplateCreative, TemplateAcademic}

// ParseTemplateID resolves a template identifier, defaulting empty input to DefaultTemplate
func ParseTemplateID(s string) (TemplateID, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultTemplate, nil
	}
	for _, t := range AllTemplates {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown template %q", s)
}

// Industry is a label from the closed industry enumeration
type Industry string

// Industries offered to the user. IndustryGeneral is the fallback label.
const (
	IndustryTechnology    Industry = "Technology"
	IndustryFinance       Industry = "Finance"
	IndustryHealthcare    Industry = "Healthcare"
	IndustryEducation     Industry = "Education"
	IndustryMarketing     Industry = "Marketing"
	IndustrySales         Industry = "Sales"
	IndustryEngineering   Industry = "Engineering"
	IndustryDesign        Industry = "Design"
	IndustryConsulting    Industry = "Consulting"
	IndustryLegal         Industry = "Legal"
	IndustryManufacturing Industry = "Manufacturing"
	IndustryRetail        Industry = "Retail"
	IndustryGeneral       Industry = "General"
)

// AllIndustries lists the selectable industries in display order (General excluded)
var AllIndustries = []Industry{
	IndustryTechnology,
	IndustryFinance,
	IndustryHealthcare,
	IndustryEducation,
	IndustryMarketing,
	IndustrySales,
	IndustryEngineering,
	IndustryDesign,
	IndustryConsulting,
	IndustryLegal,
	IndustryManufacturing,
	IndustryRetail,
}

// ParseIndustry resolves an industry label case-insensitively. Empty input yields "".
func ParseIndustry(s string) (Industry, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if strings.EqualFold(s, string(IndustryGeneral)) {
		return IndustryGeneral, nil
	}
	for _, ind := range AllIndustries {
		if strings.EqualFold(string(ind), s) {
			return ind, nil
		}
	}
	return "", fmt.Errorf("unknown industry %q", s)
}

// ExperienceLevel is the coarse seniority band of a candidate or role
type ExperienceLevel string

// Experience levels
const (
	LevelEntry     ExperienceLevel = "entry"
	LevelMid       ExperienceLevel = "mid"
	LevelSenior    ExperienceLevel = "senior"
	LevelExecutive ExperienceLevel = "executive"
)

// AllLevels lists the experience levels from junior to senior
var AllLevels = []ExperienceLevel{LevelEntry, LevelMid, LevelSenior, LevelExecutive}

// ParseExperienceLevel resolves an experience level. Empty input yields "".
func ParseExperienceLevel(s string) (ExperienceLevel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	for _, l := range AllLevels {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown experience level %q", s)
}

// MinYears returns the lower bound of years of experience for the level
func (l ExperienceLevel) MinYears() int {
	switch l {
	case LevelMid:
		return 3
	case LevelSenior:
		return 8
	case LevelExecutive:
		return 15
	default:
		return 0
	}
}

// LevelForYears maps years of experience onto a level band
func LevelForYears(years int) ExperienceLevel {
	switch {
	case years < 3:
		return LevelEntry
	case years < 8:
		return LevelMid
	case years < 15:
		return LevelSenior
	default:
		return LevelExecutive
	}
}

// TailoringRequest is one user action: a resume and job description plus presentation choices
type TailoringRequest struct {
	Resume          string          `json:"resume" validate:"required,nonblank"`
	JobDescription  string          `json:"jobDescription" validate:"required,nonblank"`
	Template        TemplateID      `json:"template,omitempty" validate:"omitempty,oneof=executive tech creative academic"`
	Industry        Industry        `json:"industry,omitempty" validate:"omitempty,industry"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel,omitempty" validate:"omitempty,oneof=entry mid senior executive"`
}

var requestValidator = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("industry", func(fl validator.FieldLevel) bool {
		_, err := ParseIndustry(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate validates the TailoringRequest using the validator.
func (r *TailoringRequest) Validate() error {
	return requestValidator.Struct(r)
}

// TemplateOrDefault returns the requested template, or DefaultTemplate when unset
func (r *TailoringRequest) TemplateOrDefault() TemplateID {
	if r.Template == "" {
		return DefaultTemplate
	}
	return r.Template
}

// AnalysisResult is the scored comparison of a resume against a job posting
type AnalysisResult struct {
	MatchScore      int      `json:"matchScore"`
	ATSScore        int      `json:"atsScore"`
	KeyStrengths    []string `json:"keyStrengths"`
	SkillGaps       []string `json:"skillGaps"`
	Recommendations []string `json:"recommendations"`
	IndustryFit     string   `json:"industryFit"`
	Warnings        []string `json:"warnings,omitempty"`
}

// TailoringResult is the terminal output of a tailoring run
type TailoringResult struct {
	Resume      string         `json:"resume"`
	CoverLetter string         `json:"coverLetter"`
	Analysis    AnalysisResult `json:"analysis"`
}
