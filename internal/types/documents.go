package types

// Section is a heading plus the ordered bullets beneath it.
// Heading and Bullets keep display casing; Tokens is the lower-cased matching view.
type Section struct {
	Heading string   `json:"heading"`
	Bullets []string `json:"bullets"`
	Tokens  []string `json:"-"`
}

// ResumeDocument is a resume after normalization and signal extraction
type ResumeDocument struct {
	RawText         string    `json:"raw_text"`
	Sections        []Section `json:"sections"`
	Skills          []string  `json:"skills"`
	ExperienceYears *int      `json:"experience_years,omitempty"`
	HasHeadings     bool      `json:"has_headings"`
	HasBullets      bool      `json:"has_bullets"`
}

// JobPosting is a job description after normalization and signal extraction
type JobPosting struct {
	RawText       string          `json:"raw_text"`
	Sections      []Section       `json:"sections"`
	Required      []string        `json:"required"`
	Preferred     []string        `json:"preferred"`
	MinYears      *int            `json:"min_years,omitempty"`
	Seniority     ExperienceLevel `json:"seniority"`
	Industry      Industry        `json:"industry"`
	KeywordCounts map[string]int  `json:"keyword_counts"`
}

// MatchSignals pairs one resume with one job posting. It is request scoped and never cached.
type MatchSignals struct {
	ResumeSkills     []string       `json:"resume_skills"`
	Required         []string       `json:"required"`
	Preferred        []string       `json:"preferred"`
	Intersection     []string       `json:"intersection"`
	MissingRequired  []string       `json:"missing_required"`
	MissingPreferred []string       `json:"missing_preferred"`
	KeywordDensity   map[string]int `json:"keyword_density"`

	ResumeText        string          `json:"-"`
	ResumeHasHeadings bool            `json:"resume_has_headings"`
	ResumeHasBullets  bool            `json:"resume_has_bullets"`
	ResumeYears       *int            `json:"resume_years,omitempty"`
	JobSeniority      ExperienceLevel `json:"job_seniority"`
	JobIndustry       Industry        `json:"job_industry"`
}
