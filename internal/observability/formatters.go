// Package observability provides logging, request ids and formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/krishnachadda/ResumeTailor/internal/templates"
	"github.com/krishnachadda/ResumeTailor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 6
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content. Long lines wrap inside the box.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		for _, row := range wrap(line, innerWidth) {
			fmt.Fprintf(p.out, "│ %s │\n", pad(row))
		}
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// innerWidth is the number of runes that fit between the box borders
const innerWidth = boxWidth - 4

// pad right-pads line to the box's inner width, counting runes
func pad(line string) string {
	if n := utf8.RuneCountInString(line); n < innerWidth {
		return line + strings.Repeat(" ", innerWidth-n)
	}
	return line
}

// wrap splits line into rows of at most width runes, breaking at spaces.
// Continuation rows keep the line's indent plus two spaces; words longer than a row are split.
func wrap(line string, width int) []string {
	if utf8.RuneCountInString(line) <= width {
		return []string{line}
	}
	body := strings.TrimLeft(line, " ")
	if body == "" {
		return []string{""}
	}
	indent := line[:len(line)-len(body)]
	if len(indent) >= width/2 {
		indent = ""
	}
	next := indent + "  "

	var rows []string
	row := indent
	rowHasWord := false
	for _, word := range strings.Fields(body) {
		for {
			room := width - utf8.RuneCountInString(row)
			if rowHasWord {
				room--
			}
			n := utf8.RuneCountInString(word)
			if n <= room {
				if rowHasWord {
					row += " "
				}
				row += word
				rowHasWord = true
				break
			}
			if rowHasWord {
				rows = append(rows, row)
				row, rowHasWord = next, false
				continue
			}
			// the word alone overflows an empty row
			runes := []rune(word)
			rows = append(rows, row+string(runes[:room]))
			word = string(runes[room:])
			row = next
		}
	}
	if rowHasWord || len(rows) == 0 {
		rows = append(rows, row)
	}
	return rows
}

// PrintAnalysis outputs the scores and findings of an analysis
func (p *Printer) PrintAnalysis(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Job Match Score:  %3d / 100  %s\n", result.MatchScore, bar(result.MatchScore))
	fmt.Fprintf(&sb, "ATS Score:        %3d / 100  %s\n", result.ATSScore, bar(result.ATSScore))
	fmt.Fprintf(&sb, "Industry Fit:     %s\n", result.IndustryFit)
	writeList(&sb, "Key Strengths", result.KeyStrengths)
	writeList(&sb, "Skill Gaps", result.SkillGaps)
	writeList(&sb, "Recommendations", result.Recommendations)
	writeList(&sb, "Warnings", result.Warnings)

	p.printBox("ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSignals outputs the extracted skill sets behind an analysis
func (p *Printer) PrintSignals(s *types.MatchSignals) {
	if s == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Resume skills:    %d\n", len(s.ResumeSkills))
	fmt.Fprintf(&sb, "Required:         %d (matched %d)\n", len(s.Required), len(s.Required)-len(s.MissingRequired))
	fmt.Fprintf(&sb, "Preferred:        %d (matched %d)\n", len(s.Preferred), len(s.Preferred)-len(s.MissingPreferred))
	if s.ResumeYears != nil {
		fmt.Fprintf(&sb, "Resume years:     %d\n", *s.ResumeYears)
	}
	fmt.Fprintf(&sb, "Job seniority:    %s\n", s.JobSeniority)
	fmt.Fprintf(&sb, "Job industry:     %s\n", s.JobIndustry)

	if len(s.KeywordDensity) > 0 {
		sb.WriteString("\nTop posting keywords:\n")
		keys := make([]string, 0, len(s.KeywordDensity))
		for k := range s.KeywordDensity {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			if s.KeywordDensity[keys[i]] != s.KeywordDensity[keys[j]] {
				return s.KeywordDensity[keys[i]] > s.KeywordDensity[keys[j]]
			}
			return keys[i] < keys[j]
		})
		for _, k := range keys[:min(len(keys), maxItemsToShow)] {
			fmt.Fprintf(&sb, "  • %s ×%d\n", k, s.KeywordDensity[k])
		}
	}

	p.printBox("EXTRACTED SIGNALS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTemplates outputs the template catalog
func (p *Printer) PrintTemplates(list []templates.Template) {
	if len(list) == 0 {
		return
	}

	var sb strings.Builder
	for i, t := range list {
		fmt.Fprintf(&sb, "%s  (%s)\n", t.Name, t.ID)
		fmt.Fprintf(&sb, "    %s\n", t.Description)
		fmt.Fprintf(&sb, "    Layout: %s\n", t.Contract.Layout)
		sb.WriteString("    Sections:\n")
		for n, section := range t.Contract.SectionOrder {
			fmt.Fprintf(&sb, "      %d. %s\n", n+1, section)
		}
		if i < len(list)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("TEMPLATES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDocument outputs a generated document under a title
func (p *Printer) PrintDocument(title, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	p.printBox(strings.ToUpper(title), strings.TrimSpace(text))
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s:\n", title)
	count := min(len(items), maxItemsToShow)
	for _, item := range items[:count] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > count {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-count)
	}
}

// bar renders a 0-100 score as a 20 cell gauge
func bar(score int) string {
	filled := max(0, min(score, 100)) / 5
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", 20-filled) + "]"
}
