// Package scoring turns extracted resume and job signals into the match and ATS scores.
package scoring

import (
	"maps"
	"sort"

	"github.com/krishnachadda/ResumeTailor/internal/types"
)

// BuildSignals pairs a resume with a job posting. All skill sets in the result are sorted and
// deduplicated, and a skill listed as both required and preferred counts as required.
func BuildSignals(resume *types.ResumeDocument, job *types.JobPosting) *types.MatchSignals {
	resumeSet := toSet(resume.Skills)
	required := dedupe(job.Required)
	preferred := dedupe(job.Preferred)

	intersection := []string{}
	missingRequired := []string{}
	missingPreferred := []string{}
	for _, skill := range required {
		if resumeSet[skill] {
			intersection = append(intersection, skill)
		} else {
			missingRequired = append(missingRequired, skill)
		}
	}
	requiredSet := toSet(required)
	preferredOnly := []string{}
	for _, skill := range preferred {
		if requiredSet[skill] {
			continue
		}
		preferredOnly = append(preferredOnly, skill)
		if resumeSet[skill] {
			intersection = append(intersection, skill)
		} else {
			missingPreferred = append(missingPreferred, skill)
		}
	}
	sort.Strings(intersection)

	density := make(map[string]int, len(job.KeywordCounts))
	maps.Copy(density, job.KeywordCounts)

	return &types.MatchSignals{
		ResumeSkills:      dedupe(resume.Skills),
		Required:          required,
		Preferred:         preferredOnly,
		Intersection:      intersection,
		MissingRequired:   missingRequired,
		MissingPreferred:  missingPreferred,
		KeywordDensity:    density,
		ResumeText:        resume.RawText,
		ResumeHasHeadings: resume.HasHeadings,
		ResumeHasBullets:  resume.HasBullets,
		ResumeYears:       resume.ExperienceYears,
		JobSeniority:      job.Seniority,
		JobIndustry:       job.Industry,
	}
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

// dedupe returns a sorted copy without duplicates or empty entries
func dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}
