package validation

import (
	"fmt"
	"strings"
	"unicode"
)

// maxHeadingWords bounds how long a line can be and still count as a heading
const maxHeadingWords = 6

// Structure is what a generated document must contain to be accepted
type Structure struct {
	// Headings that must each appear on a heading-like line, in any order
	Headings []string
	// MinParagraphs is the minimum number of blank-line separated blocks
	MinParagraphs int
	// Greeting and SignOff require a salutation line and a closing line
	Greeting bool
	SignOff  bool
}

// PlaceholderPhrases mark output that was never filled in with the candidate's facts
var PlaceholderPhrases = []string{
	"[your name]",
	"[company name]",
	"[insert",
	"lorem ipsum",
	"as an ai language model",
	"i cannot help with",
}

var greetings = []string{"dear ", "hello", "hi ", "to whom it may concern", "greetings"}

var signOffs = []string{"sincerely", "regards", "best", "thank you", "thanks", "respectfully", "cordially", "warmly"}

// CheckDocument returns an *Error describing every violation, or nil when text is usable
func CheckDocument(text string, want Structure) error {
	var violations []Violation
	if strings.TrimSpace(text) == "" {
		return &Error{Message: "document is empty", Violations: []Violation{{Type: ViolationEmpty, Details: "no text returned"}}}
	}

	lines := strings.Split(text, "\n")
	for _, h := range want.Headings {
		if !hasHeading(lines, h) {
			violations = append(violations, Violation{
				Type:    ViolationMissingSection,
				Details: fmt.Sprintf("missing section heading %q", h),
			})
		}
	}
	if n := countParagraphs(text); n < want.MinParagraphs {
		violations = append(violations, Violation{
			Type:    ViolationStructure,
			Details: fmt.Sprintf("expected at least %d paragraphs, found %d", want.MinParagraphs, n),
		})
	}
	if want.Greeting && !firstLineHasAny(lines, greetings) {
		violations = append(violations, Violation{Type: ViolationStructure, Details: "missing greeting"})
	}
	if want.SignOff && !anyLineHasAny(lines, signOffs) {
		violations = append(violations, Violation{Type: ViolationStructure, Details: "missing sign-off"})
	}
	violations = append(violations, CheckForbiddenPhrases(text, PlaceholderPhrases)...)

	if len(violations) > 0 {
		return &Error{Message: "document does not match the expected structure", Violations: violations}
	}
	return nil
}

// CheckForbiddenPhrases reports the first forbidden phrase found on each line, case-insensitively
func CheckForbiddenPhrases(text string, phrases []string) []Violation {
	if len(phrases) == 0 {
		return nil
	}
	var violations []Violation
	for i, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		for _, phrase := range phrases {
			p := strings.ToLower(strings.TrimSpace(phrase))
			if p == "" {
				continue
			}
			if strings.Contains(lower, p) {
				lineNum := i + 1
				violations = append(violations, Violation{
					Type:       ViolationForbiddenPhrase,
					Details:    fmt.Sprintf("line %d contains forbidden phrase: %s", lineNum, phrase),
					LineNumber: &lineNum,
				})
				break
			}
		}
	}
	return violations
}

// hasHeading reports whether some short line names the heading, ignoring Markdown and case
func hasHeading(lines []string, heading string) bool {
	want := strings.ToLower(heading)
	for _, line := range lines {
		l := strings.ToLower(trimHeadingMarks(line))
		if l == "" || len(strings.Fields(l)) > maxHeadingWords {
			continue
		}
		if strings.Contains(l, want) {
			return true
		}
	}
	return false
}

func trimHeadingMarks(line string) string {
	return strings.TrimFunc(line, func(r rune) bool {
		return unicode.IsSpace(r) || r == '#' || r == '*' || r == '_' || r == ':' || r == '='
	})
}

func countParagraphs(text string) int {
	n := 0
	for _, block := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		if strings.TrimSpace(block) != "" {
			n++
		}
	}
	return n
}

func firstLineHasAny(lines []string, prefixes []string) bool {
	for _, line := range lines {
		l := strings.ToLower(strings.TrimSpace(line))
		if l == "" {
			continue
		}
		for _, p := range prefixes {
			if strings.HasPrefix(l, p) {
				return true
			}
		}
		return false
	}
	return false
}

func anyLineHasAny(lines []string, prefixes []string) bool {
	for _, line := range lines {
		l := strings.ToLower(strings.TrimSpace(line))
		for _, p := range prefixes {
			if strings.HasPrefix(l, p) {
				return true
			}
		}
	}
	return false
}
