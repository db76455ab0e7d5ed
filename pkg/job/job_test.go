package job_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	_ "github.com/viant/afs/mem"
	"gopkg.in/yaml.v3"

	"github.com/DeepSourceCorp/globstar/pkg/analysisrange"
	"github.com/DeepSourceCorp/globstar/pkg/ctx"
	"github.com/DeepSourceCorp/globstar/pkg/lint"
	"github.com/DeepSourceCorp/globstar/pkg/linter"

	"github.com/DeepSourceCorp/globstar/pkg/job"
)

func stringsReader(s string) *strings.Reader { return strings.NewReader(s) }
func bytesReader(b []byte) *bytes.Reader     { return bytes.NewReader(b) }

var longLineLint = lint.Lint{Name: "long-line", Code: "GO-W0001"}

func flagFuncDecl(root *sitter.Node, c *ctx.Context, src []byte) []lint.Occurrence {
	query, err := sitter.NewQuery([]byte(`(function_declaration name: (identifier) @n)`), golang.GetLanguage())
	if err != nil {
		return nil
	}
	cursor := sitter.NewQueryCursor()
	cursor.Exec(query, root)
	defer cursor.Close()

	var out []lint.Occurrence
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		for _, capt := range match.Captures {
			if capt.Node.Content(src) == "bad" {
				out = append(out, longLineLint.Raise(analysisrange.FromNode(capt.Node), "avoid naming functions bad"))
			}
		}
	}
	return out
}

func setupMemFS(t *testing.T, env job.EnvConfig, files map[string]string, cfg job.AnalyzerConfig) afs.Service {
	t.Helper()
	fs := afs.New()
	ctxB := context.Background()

	for path, content := range files {
		require.NoError(t, fs.Upload(ctxB, path, 0o644, stringsReader(content)))
	}
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, fs.Upload(ctxB, env.AnalysisConfigPath, 0o644, bytesReader(data)))
	return fs
}

func TestRunAnalysisWritesStrippedPathAndOneBasedPosition(t *testing.T) {
	env := job.EnvConfig{
		CodePath:           "mem://code",
		AnalysisConfigPath: "mem://toolbox/analysis_config.json",
		AnalysisResultPath: "mem://toolbox/analysis_results.json",
	}
	cfg := job.AnalyzerConfig{Files: []string{"mem://code/a/b.go"}}

	src := "package p\n\nfunc bad() {}\n"
	fs := setupMemFS(t, env, map[string]string{"mem://code/a/b.go": src}, cfg)

	l := linter.New(golang.GetLanguage()).Validator(flagFuncDecl).Extension("go")
	runner := job.NewRunner(l)
	runner.FS = fs

	require.NoError(t, runner.RunAnalysis(context.Background(), env))

	resultData, err := fs.DownloadWithURL(context.Background(), env.AnalysisResultPath)
	require.NoError(t, err)

	var result job.AnalysisResult
	require.NoError(t, json.Unmarshal(resultData, &result))

	require.Len(t, result.Issues, 1)
	issue := result.Issues[0]
	assert.Equal(t, "a/b.go", issue.Location.Path)
	assert.Equal(t, 3, issue.Location.Position.Begin.Line)
	assert.Equal(t, 6, issue.Location.Position.Begin.Column)
	assert.False(t, result.IsPassed)
}

func TestRunAnalysisLeavesIsPassedAtZeroValueWhenNoIssues(t *testing.T) {
	env := job.EnvConfig{
		CodePath:           "mem://code2",
		AnalysisConfigPath: "mem://toolbox2/analysis_config.json",
		AnalysisResultPath: "mem://toolbox2/analysis_results.json",
	}
	cfg := job.AnalyzerConfig{Files: []string{"mem://code2/ok.go"}}
	fs := setupMemFS(t, env, map[string]string{"mem://code2/ok.go": "package p\n\nfunc ok() {}\n"}, cfg)

	l := linter.New(golang.GetLanguage()).Validator(flagFuncDecl).Extension("go")
	runner := job.NewRunner(l)
	runner.FS = fs

	require.NoError(t, runner.RunAnalysis(context.Background(), env))

	resultData, err := fs.DownloadWithURL(context.Background(), env.AnalysisResultPath)
	require.NoError(t, err)
	var result job.AnalysisResult
	require.NoError(t, json.Unmarshal(resultData, &result))

	// IsPassed is the runner's responsibility to leave untouched; it is
	// set by the outer orchestrator, never computed from the issue count.
	assert.Empty(t, result.Issues)
	assert.False(t, result.IsPassed)
}

func TestRunAnalysisRecordsPerFileFailureWithoutAborting(t *testing.T) {
	env := job.EnvConfig{
		CodePath:           "mem://code3",
		AnalysisConfigPath: "mem://toolbox3/analysis_config.json",
		AnalysisResultPath: "mem://toolbox3/analysis_results.json",
	}
	cfg := job.AnalyzerConfig{Files: []string{"mem://code3/missing.go"}}
	fs := setupMemFS(t, env, nil, cfg)

	l := linter.New(golang.GetLanguage()).Validator(flagFuncDecl).Extension("go")
	runner := job.NewRunner(l)
	runner.FS = fs

	require.NoError(t, runner.RunAnalysis(context.Background(), env))

	resultData, err := fs.DownloadWithURL(context.Background(), env.AnalysisResultPath)
	require.NoError(t, err)
	var result job.AnalysisResult
	require.NoError(t, json.Unmarshal(resultData, &result))

	require.Len(t, result.Errors, 1)
	assert.False(t, result.IsPassed)
}

func TestLoadEnvConfigAppliesDefaults(t *testing.T) {
	env := job.LoadEnvConfig()
	assert.Equal(t, "/code", env.CodePath)
	assert.Equal(t, "/toolbox/analysis_config.json", env.AnalysisConfigPath)
	assert.Equal(t, "/toolbox/analysis_results.json", env.AnalysisResultPath)
}

// analyzerMetaFixture is the golden value for TestAnalyzerMetaYAMLFixtureMatchesStruct,
// written as YAML because that's how analyzer authors hand-edit meta fixtures; the
// wire protocol itself stays JSON (spec.md §6).
const analyzerMetaFixture = `
name: variable-shadowing
enabled: true
meta:
  severity: warning
`

func TestAnalyzerMetaYAMLFixtureMatchesStruct(t *testing.T) {
	var meta job.AnalyzerMeta
	require.NoError(t, yaml.Unmarshal([]byte(analyzerMetaFixture), &meta))

	assert.Equal(t, job.AnalyzerMeta{
		Name:    "variable-shadowing",
		Enabled: true,
		Meta:    map[string]string{"severity": "warning"},
	}, meta)
}

func TestAnalysisResultRoundTripsThroughYAML(t *testing.T) {
	want := job.AnalysisResult{
		Issues: []lint.Issue{{
			Code:    "GO-W0001",
			Message: "avoid naming functions bad",
			Location: lint.Location{
				Path: "a/b.go",
				Position: lint.Span{
					Begin: lint.Position{Line: 3, Column: 6},
					End:   lint.Position{Line: 3, Column: 9},
				},
			},
		}},
		// Empty, not nil: yaml.v3 writes a nil slice as [] and reads it
		// back as an empty slice.
		Metrics:  []job.Metric{},
		IsPassed: false,
		Errors:   []job.RunError{},
	}

	data, err := yaml.Marshal(want)
	require.NoError(t, err)

	var got job.AnalysisResult
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, want, got)
}
