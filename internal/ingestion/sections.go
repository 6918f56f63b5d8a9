package ingestion

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/krishnachadda/ResumeTailor/internal/types"
)

const (
	maxHeadingWords = 6
	maxHeadingChars = 48
	maxInlineWords  = 4
)

var inlineHeadingRe = regexp.MustCompile(`^([A-Za-z][A-Za-z &/'-]{0,40}):\s+(\S.*)$`)

// headingSmallWords may stay lower case inside a Title Case heading
var headingSmallWords = map[string]bool{
	"and": true, "of": true, "&": true, "the": true, "in": true, "for": true, "to": true, "a": true, "/": true,
}

// Normalize splits cleaned text into ordered sections.
// It never fails: text without recognizable structure comes back as one unnamed section.
func Normalize(raw string) []types.Section {
	text := CleanText(raw)
	if text == "" {
		return []types.Section{{Heading: "", Bullets: []string{}}}
	}

	var sections []types.Section
	current := types.Section{}
	flush := func() {
		if current.Heading != "" || len(current.Bullets) > 0 {
			sections = append(sections, current)
		}
		current = types.Section{}
	}

	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}

		if heading, ok := headingText(line); ok {
			flush()
			current.Heading = heading
			continue
		}

		if m := inlineHeadingRe.FindStringSubmatch(line); m != nil && len(strings.Fields(m[1])) <= maxInlineWords {
			flush()
			sections = append(sections, types.Section{
				Heading: strings.TrimSpace(m[1]),
				Bullets: []string{strings.TrimSpace(m[2])},
			})
			continue
		}

		bullet := line
		if isBulletLine(line) {
			bullet = stripBullet(line)
		}
		if bullet != "" {
			current.Bullets = append(current.Bullets, bullet)
		}
	}
	flush()

	if len(sections) == 0 {
		sections = []types.Section{{Heading: "", Bullets: []string{text}}}
	}

	for i := range sections {
		if sections[i].Bullets == nil {
			sections[i].Bullets = []string{}
		}
		sections[i].Tokens = sectionTokens(sections[i])
	}
	return sections
}

// HasHeadings reports whether any section carries a heading
func HasHeadings(sections []types.Section) bool {
	for _, s := range sections {
		if s.Heading != "" {
			return true
		}
	}
	return false
}

// headingText decides whether a line is a standalone heading and returns its display text.
func headingText(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "#") {
		h := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		return h, h != ""
	}
	if isBulletLine(trimmed) {
		return "", false
	}

	candidate := trimmed
	colon := strings.HasSuffix(candidate, ":")
	if colon {
		candidate = strings.TrimSpace(strings.TrimSuffix(candidate, ":"))
	}
	if candidate == "" || len(candidate) > maxHeadingChars {
		return "", false
	}
	words := strings.Fields(candidate)
	if len(words) > maxHeadingWords {
		return "", false
	}
	if strings.ContainsAny(candidate, ".,;!?") {
		return "", false
	}
	if !unicode.IsLetter([]rune(candidate)[0]) {
		return "", false
	}
	if colon || isUpper(candidate) || isTitleCase(words) {
		return candidate, true
	}
	return "", false
}

func isUpper(s string) bool {
	return s == strings.ToUpper(s)
}

func isTitleCase(words []string) bool {
	for i, w := range words {
		if i > 0 && headingSmallWords[strings.ToLower(w)] {
			continue
		}
		first := []rune(w)[0]
		if unicode.IsLetter(first) && !unicode.IsUpper(first) {
			return false
		}
	}
	return true
}

func sectionTokens(s types.Section) []string {
	var tokens []string
	tokens = append(tokens, Tokenize(s.Heading)...)
	for _, b := range s.Bullets {
		tokens = append(tokens, Tokenize(b)...)
	}
	return tokens
}
