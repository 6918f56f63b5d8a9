package parsing

import (
	"strings"

	"github.com/krishnachadda/ResumeTailor/internal/ingestion"
	"github.com/krishnachadda/ResumeTailor/internal/types"
)

// titleMarkers are checked against the posting's first line, most senior band first
var titleMarkers = []struct {
	level   types.ExperienceLevel
	markers []string
}{
	{types.LevelExecutive, []string{"chief", "vp", "vice president", "director", "head of", "cto", "cfo", "ceo", "coo"}},
	{types.LevelSenior, []string{"senior", "sr", "lead", "staff", "principal"}},
	{types.LevelEntry, []string{"intern", "internship", "junior", "jr", "graduate", "entry level", "apprentice", "trainee"}},
}

// industryLexicon maps each industry to terms that vote for it
var industryLexicon = map[types.Industry][]string{
	types.IndustryTechnology:    {"software", "saas", "cloud", "developer", "api", "platform", "devops", "tech", "startup", "backend", "frontend"},
	types.IndustryFinance:       {"finance", "financial", "banking", "bank", "investment", "trading", "fintech", "accounting", "audit", "portfolio", "asset management"},
	types.IndustryHealthcare:    {"healthcare", "health", "clinical", "patient", "patients", "hospital", "medical", "nursing", "pharmaceutical", "hipaa"},
	types.IndustryEducation:     {"education", "school", "university", "students", "teaching", "curriculum", "faculty", "academic", "classroom"},
	types.IndustryMarketing:     {"marketing", "brand", "campaign", "campaigns", "seo", "advertising", "content strategy", "social media"},
	types.IndustrySales:         {"sales", "quota", "account executive", "prospecting", "revenue targets", "b2b", "closing deals", "territory"},
	types.IndustryEngineering:   {"mechanical", "electrical", "civil", "structural", "autocad", "solidworks", "cad", "hvac"},
	types.IndustryDesign:        {"design", "designer", "ux", "ui", "figma", "visual", "typography", "illustration"},
	types.IndustryConsulting:    {"consulting", "consultant", "consultants", "advisory", "client engagements", "engagement"},
	types.IndustryLegal:         {"legal", "law", "attorney", "counsel", "litigation", "paralegal", "contracts", "regulatory"},
	types.IndustryManufacturing: {"manufacturing", "production", "plant", "assembly", "factory", "lean", "six sigma", "supply chain"},
	types.IndustryRetail:        {"retail", "store", "stores", "merchandising", "shoppers", "e commerce", "ecommerce", "inventory"},
}

// InferSeniority bands the posting by its years requirement, then lets title words override.
// With neither signal the posting is treated as mid level.
func InferSeniority(text string, years *int) types.ExperienceLevel {
	level := types.LevelMid
	if years != nil {
		level = types.LevelForYears(*years)
	}

	title := ingestion.TokenText(ingestion.Tokenize(firstLine(text)))
	for _, tm := range titleMarkers {
		for _, m := range tm.markers {
			if strings.Contains(title, " "+m+" ") {
				return tm.level
			}
		}
	}
	return level
}

// InferIndustry returns the industry whose lexicon terms occur most often.
// Ties go to the earlier industry in AllIndustries; no votes yields IndustryGeneral.
func InferIndustry(text string) types.Industry {
	tokens := ingestion.Tokenize(text)
	best, bestVotes := types.IndustryGeneral, 0
	for _, industry := range types.AllIndustries {
		votes := 0
		for _, term := range industryLexicon[industry] {
			votes += countPhrase(tokens, strings.Fields(term))
		}
		if votes > bestVotes {
			best, bestVotes = industry, votes
		}
	}
	return best
}

// countPhrase counts non-overlapping occurrences of phrase in tokens
func countPhrase(tokens, phrase []string) int {
	n := 0
	for i := 0; i+len(phrase) <= len(tokens); {
		match := true
		for j := range phrase {
			if tokens[i+j] != phrase[j] {
				match = false
				break
			}
		}
		if match {
			n++
			i += len(phrase)
			continue
		}
		i++
	}
	return n
}

func firstLine(text string) string {
	for _, line := range strings.Split(ingestion.CleanText(text), "\n") {
		if line != "" {
			return line
		}
	}
	return ""
}
