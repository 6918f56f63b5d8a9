// Package ingestion turns raw resume and job posting text into cleaned, segmented sections.
package ingestion

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	innerSpaceRe  = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	blankRunRe    = regexp.MustCompile(`\n{3,}`)
	bulletPrefixR = regexp.MustCompile(`^(?:[-*•·▪‣◦]|\d{1,2}[.)])\s+`)
)

// CleanText normalizes line endings and whitespace while preserving line structure.
// Blank-line runs collapse to a single blank line so paragraph boundaries survive.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ToValidUTF8(content, "")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = blankRunRe.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine trims a line and collapses interior whitespace. Markdown headings lose their indentation.
func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}
	return innerSpaceRe.ReplaceAllString(trimmed, " ")
}

// isBulletLine checks if a line starts with a list marker
func isBulletLine(line string) bool {
	return bulletPrefixR.MatchString(strings.TrimSpace(line))
}

// stripBullet removes a leading list marker
func stripBullet(line string) string {
	return strings.TrimSpace(bulletPrefixR.ReplaceAllString(strings.TrimSpace(line), ""))
}

// HasBulletLines reports whether any line of text uses a list marker
func HasBulletLines(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		if isBulletLine(line) {
			return true
		}
	}
	return false
}

// ReadFile reads a plain-text file and returns its cleaned contents.
func ReadFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return CleanText(string(content)), nil
}
