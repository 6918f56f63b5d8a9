package validation

import (
	"regexp"
	"strings"
)

// strongVerbs are action verbs a resume bullet should open with
var strongVerbs = map[string]bool{
	"achieved": true, "architected": true, "automated": true, "built": true,
	"created": true, "cut": true, "delivered": true, "designed": true,
	"developed": true, "drove": true, "engineered": true, "grew": true,
	"implemented": true, "improved": true, "increased": true, "launched": true,
	"led": true, "migrated": true, "optimized": true, "owned": true,
	"reduced": true, "scaled": true, "shipped": true, "transformed": true,
}

var quantified = regexp.MustCompile(`\d|%|\$`)

// BulletStyle summarises how well the bullets of a generated resume read
type BulletStyle struct {
	Bullets    int
	StrongVerb int
	Quantified int
	// Weak lists bullets that neither open with an action verb nor carry a metric
	Weak []string
}

// QuantifiedRatio is the share of bullets carrying a number, 1 when there are no bullets
func (s BulletStyle) QuantifiedRatio() float64 {
	if s.Bullets == 0 {
		return 1
	}
	return float64(s.Quantified) / float64(s.Bullets)
}

// CheckBulletStyle scores every "-", "*" or "•" bullet line in a markdown document.
// The result is advisory and never rejects a document.
func CheckBulletStyle(text string) BulletStyle {
	var s BulletStyle
	for _, line := range strings.Split(text, "\n") {
		bullet, ok := bulletText(line)
		if !ok {
			continue
		}
		s.Bullets++
		verb := startsWithStrongVerb(bullet)
		metric := quantified.MatchString(bullet)
		if verb {
			s.StrongVerb++
		}
		if metric {
			s.Quantified++
		}
		if !verb && !metric {
			s.Weak = append(s.Weak, bullet)
		}
	}
	return s
}

func bulletText(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	for _, marker := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(trimmed, marker) {
			text := strings.TrimSpace(strings.TrimPrefix(trimmed, marker))
			return text, text != ""
		}
	}
	return "", false
}

func startsWithStrongVerb(text string) bool {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return false
	}
	first := strings.Trim(words[0], ".,!?;:*_")
	if strongVerbs[first] {
		return true
	}
	// past tense verbs usually read as actions
	return strings.HasSuffix(first, "ed") && len(first) > 3
}
