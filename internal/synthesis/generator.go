package synthesis

import (
	"context"
	"fmt"
	"strings"

	"github.com/krishnachadda/ResumeTailor/internal/llm"
	"github.com/krishnachadda/ResumeTailor/internal/prompts"
	"github.com/krishnachadda/ResumeTailor/internal/types"
	"github.com/krishnachadda/ResumeTailor/internal/validation"
)

const promptFile = "synthesis.json"

//go:generate mockgen -source=./generator.go -destination=./mocks/generator.mock.go -package=synthmocks Generator

// Generator writes one document from a brief
type Generator interface {
	Generate(ctx context.Context, brief Brief) (string, error)
}

// GeneratorFunc adapts a function to Generator
type GeneratorFunc func(ctx context.Context, brief Brief) (string, error)

// Generate calls f
func (f GeneratorFunc) Generate(ctx context.Context, brief Brief) (string, error) {
	return f(ctx, brief)
}

// LLMGenerator writes documents with an llm.Client using the embedded prompts
type LLMGenerator struct {
	client llm.Client
}

// NewLLMGenerator creates a generator backed by client
func NewLLMGenerator(client llm.Client) *LLMGenerator {
	return &LLMGenerator{client: client}
}

// Generate renders the prompt for the brief and returns the model's text without code fences
func (g *LLMGenerator) Generate(ctx context.Context, brief Brief) (string, error) {
	prompt, err := RenderPrompt(brief)
	if err != nil {
		return "", err
	}
	text, err := g.client.GenerateContent(ctx, prompt, TierFor(brief))
	if err != nil {
		return "", err
	}
	return llm.StripCodeFence(text), nil
}

// TierFor picks the model tier: senior resumes get the advanced model, cover letters the standard one
func TierFor(brief Brief) llm.ModelTier {
	if brief.Kind == KindResume && (brief.Level == types.LevelSenior || brief.Level == types.LevelExecutive) {
		return llm.TierAdvanced
	}
	return llm.TierStandard
}

// RenderPrompt fills the prompt template for the brief's document kind
func RenderPrompt(brief Brief) (string, error) {
	key := "resume"
	if brief.Kind == KindCoverLetter {
		key = "cover-letter"
	}
	tmpl, err := prompts.Get(promptFile, key)
	if err != nil {
		return "", fmt.Errorf("failed to load %s prompt: %w", key, err)
	}
	values := map[string]string{
		"Template":       string(brief.Template),
		"Layout":         string(brief.Layout),
		"Tone":           brief.Tone,
		"Industry":       orDefault(brief.Industry, string(types.IndustryGeneral)),
		"Level":          string(brief.Level),
		"LengthBand":     brief.Length.String(),
		"Sections":       bulletList(brief.Sections),
		"Foreground":     bulletList(brief.Foreground),
		"Reframe":        bulletList(brief.Reframe),
		"Keywords":       strings.Join(brief.Keywords, ", "),
		"Budget":         fmt.Sprintf("%d", brief.Budget),
		"Resume":         validation.QuoteExternalContent(brief.Resume, "resume"),
		"JobDescription": validation.QuoteExternalContent(brief.JobDescription, "job posting"),
	}
	if missing := unfilled(tmpl, values); len(missing) > 0 {
		return "", fmt.Errorf("%s prompt has no value for %s", key, strings.Join(missing, ", "))
	}
	return prompts.Format(tmpl, values), nil
}

// unfilled lists the placeholders in tmpl that values does not supply
func unfilled(tmpl string, values map[string]string) []string {
	var missing []string
	for _, name := range prompts.Placeholders(tmpl) {
		if _, ok := values[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

func bulletList(items []string) string {
	if len(items) == 0 {
		return "- (none)"
	}
	return "- " + strings.Join(items, "\n- ")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
