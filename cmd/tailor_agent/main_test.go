package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishnachadda/ResumeTailor/internal/llm"
	"github.com/krishnachadda/ResumeTailor/internal/pipeline"
	"github.com/krishnachadda/ResumeTailor/internal/types"
)

const (
	sampleResume = "Jane Doe\n\nSummary\nBackend engineer with 6 years of experience.\n\nSkills\n- Python\n- AWS\n- Docker\n\nExperience\n- Built data pipelines in Python on AWS\n"
	sampleJob    = "Senior Backend Engineer\n\nRequirements\n- Python\n- Java\n- 5+ years of experience\n\nNice to have:\n- SQL\n"
)

// writeInputs stores the sample resume and job in a temp dir
func writeInputs(t *testing.T) (dir, resume, job string) {
	t.Helper()
	dir = t.TempDir()
	resume = filepath.Join(dir, "resume.txt")
	job = filepath.Join(dir, "job.txt")
	require.NoError(t, os.WriteFile(resume, []byte(sampleResume), 0644))
	require.NoError(t, os.WriteFile(job, []byte(sampleJob), 0644))
	return dir, resume, job
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func clearProviderEnv(t *testing.T) {
	for _, key := range []string{"LLM_PROVIDER", "GEMINI_API_KEY", "OPENAI_API_KEY", "ZHIPU_API_KEY", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}
}

func TestTemplatesCommand(t *testing.T) {
	out, err := execute(t, "templates", "--json")
	require.NoError(t, err)

	var list []struct {
		ID types.TemplateID `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Len(t, list, 4)

	out, err = execute(t, "templates")
	require.NoError(t, err)
	assert.Contains(t, out, "Tech Innovator")
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	clearProviderEnv(t)
	_, resume, job := writeInputs(t)

	out, err := execute(t, "analyze", "--resume", resume, "--job", job, "--json")
	require.NoError(t, err)

	var parsed struct {
		Analysis types.AnalysisResult `json:"analysis"`
		Signals  types.MatchSignals   `json:"signals"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, 40, parsed.Analysis.MatchScore)
	assert.Equal(t, []string{"Java", "Python"}, parsed.Signals.Required)
}

func TestAnalyzeCommand_Printed(t *testing.T) {
	clearProviderEnv(t)
	_, resume, job := writeInputs(t)

	out, err := execute(t, "analyze", "-r", resume, "-j", job)
	require.NoError(t, err)
	assert.Contains(t, out, " 40 / 100")
}

func TestAnalyzeCommand_WritesOutput(t *testing.T) {
	clearProviderEnv(t)
	dir, resume, job := writeInputs(t)
	outDir := filepath.Join(dir, "out")

	_, err := execute(t, "analyze", "--resume", resume, "--job", job, "--out", outDir, "--json")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, analysisFile))
	require.NoError(t, err)
	var analysis types.AnalysisResult
	require.NoError(t, json.Unmarshal(data, &analysis))
	assert.Equal(t, 40, analysis.MatchScore)
}

func TestAnalyzeCommand_ConfigFile(t *testing.T) {
	clearProviderEnv(t)
	dir, resume, job := writeInputs(t)
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("resume: "+resume+"\njob: "+job+"\ntemplate: tech\n"), 0644))

	out, err := execute(t, "analyze", "--config", cfgPath, "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"matchScore": 40`)
}

func TestAnalyzeCommand_MissingInputs(t *testing.T) {
	clearProviderEnv(t)
	_, resume, job := writeInputs(t)

	_, err := execute(t, "analyze", "--job", job)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--resume must be provided")

	_, err = execute(t, "analyze", "--resume", resume)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "either --job or --job-url must be provided")

	_, err = execute(t, "analyze", "--resume", resume, "--job", job, "--job-url", "https://example.com/job")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")

	_, err = execute(t, "analyze", "--resume", resume, "--job", job, "--template", "fancy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown template")
}

func TestTailorCommand_MissingAPIKey(t *testing.T) {
	clearProviderEnv(t)
	_, resume, job := writeInputs(t)

	_, err := execute(t, "tailor", "--resume", resume, "--job", job)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY environment variable or --api-key flag is required")

	_, err = execute(t, "tailor", "--resume", resume, "--job", job, "--provider", "openai")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestTailorCommand_UnknownProvider(t *testing.T) {
	clearProviderEnv(t)
	_, resume, job := writeInputs(t)

	_, err := execute(t, "tailor", "--resume", resume, "--job", job, "--provider", "acme", "--api-key", "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown LLM provider")
}

func TestWorkerCommand_RequiresURL(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("RABBITMQ_URL", "")

	_, err := execute(t, "worker", "--api-key", "k", "--log-format", "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RABBITMQ_URL")
}

func TestWriteResult(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	result := &types.TailoringResult{
		Resume:      "Summary\nEngineer",
		CoverLetter: "Dear Hiring Manager,",
		Analysis:    types.AnalysisResult{MatchScore: 80},
	}
	require.NoError(t, writeResult(dir, result))

	data, err := os.ReadFile(filepath.Join(dir, resumeFile))
	require.NoError(t, err)
	assert.Equal(t, "Summary\nEngineer\n", string(data))

	data, err = os.ReadFile(filepath.Join(dir, analysisFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"matchScore": 80`)
	assert.FileExists(t, filepath.Join(dir, coverLetterFile))
}

func TestDescribeError(t *testing.T) {
	assert.Equal(t, "boom", describeError(errors.New("boom")))
	assert.Contains(t, describeError(&pipeline.ValidationError{Field: "resume", Message: "must not be empty"}), "(validation)")

	transient := &llm.ProviderError{Provider: llm.ProviderGemini, Kind: llm.KindTransient}
	assert.Contains(t, describeError(transient), "retrying later may succeed")
}
