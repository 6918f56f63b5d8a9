package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"markdown fence", "```markdown\n# Jane Doe\n- Built things\n```", "# Jane Doe\n- Built things"},
		{"bare fence", "```\nDear Hiring Manager,\n```", "Dear Hiring Manager,"},
		{"no fence", "  Dear Hiring Manager,\n\nThanks.  ", "Dear Hiring Manager,\n\nThanks."},
		{"first line is content", "```Summary line with spaces\nmore\n```", "Summary line with spaces\nmore"},
		{"unterminated fence", "```text\nbody", "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripCodeFence(tt.input))
		})
	}
}
