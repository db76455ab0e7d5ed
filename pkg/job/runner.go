// Package job wires the analysis engine into the container job-runner
// protocol: read a job-configuration document, analyze every configured
// file, and write the assembled result document. Ported from the
// marvin/globstar runner crates, here reading and writing through
// afs.Service rather than raw filesystem calls.
package job

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/afs"

	"github.com/DeepSourceCorp/globstar/pkg/analysisrange"
	"github.com/DeepSourceCorp/globstar/pkg/globstarerr"
	"github.com/DeepSourceCorp/globstar/pkg/lint"
	"github.com/DeepSourceCorp/globstar/pkg/linter"
)

// Runner drives one Linter over every file named by a job configuration.
type Runner struct {
	Linter *linter.Linter
	FS     afs.Service
}

// NewRunner builds a Runner around l, reusing its afs.Service default
// (the local/remote-transparent viant/afs client).
func NewRunner(l *linter.Linter) *Runner {
	return &Runner{Linter: l, FS: afs.New()}
}

// RunAnalysis loads the job configuration from env, analyzes every
// configured file, and stores the assembled AnalysisResult. A failure
// loading the config or storing the result aborts the run and is
// returned; a failure analyzing a single file is logged and appended to
// the result's Errors, not discarded.
func (r *Runner) RunAnalysis(ctx context.Context, env EnvConfig) error {
	if err := r.Linter.IgnoreErr(); err != nil {
		return err
	}

	cfg, err := LoadAnalyzerConfig(ctx, r.FS, env)
	if err != nil {
		return err
	}

	var issues []lint.Issue
	var runErrors []RunError

	for _, path := range cfg.Files {
		fileIssues, err := r.analyzeFile(ctx, env, path)
		if err != nil {
			logger.Printf("warn: %s: %s", path, err)
			runErrors = append(runErrors, RunError{HMessage: fmt.Sprintf("%s: %s", path, err), Level: 1})
			continue
		}
		issues = append(issues, fileIssues...)
	}

	// IsPassed is not computed here: it is the bool zero value (false)
	// left for the outer orchestrator to set.
	result := AnalysisResult{
		Issues: issues,
		Errors: runErrors,
	}
	return StoreAnalysisResult(ctx, r.FS, env, result)
}

func (r *Runner) analyzeFile(ctx context.Context, env EnvConfig, path string) ([]lint.Issue, error) {
	if ext := r.Linter.Ext(); ext != "" && strings.TrimPrefix(filepath.Ext(path), ".") != ext {
		return nil, nil
	}
	if r.Linter.IgnoresPath(path) {
		return nil, nil
	}

	content, err := r.FS.DownloadWithURL(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", globstarerr.ErrRead, err)
	}

	if sum, err := contentHash(content); err == nil {
		logger.Printf("analyzing %s (content %016x)", path, sum)
	}

	occurrences, err := r.Linter.Analyze(string(content))
	if err != nil {
		return nil, err
	}

	strippedPath, err := stripCodePath(env.CodePath, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", globstarerr.ErrPath, err)
	}

	issues := make([]lint.Issue, 0, len(occurrences))
	for _, occ := range occurrences {
		issues = append(issues, lint.Issue{
			Code:    occ.Lint.Code,
			Message: occ.Message,
			Location: lint.Location{
				Path: strippedPath,
				Position: lint.Span{
					Begin: toPosition(occ.At.StartPoint),
					End:   toPosition(occ.At.EndPoint),
				},
			},
		})
	}
	return issues, nil
}

// stripCodePath removes codePath as a prefix from path, returning a
// slash-separated, relative result. An unrelated path (no shared prefix)
// is an error.
func stripCodePath(codePath, path string) (string, error) {
	rel, err := filepath.Rel(codePath, path)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("path %q is not under code path %q", path, codePath)
	}
	return filepath.ToSlash(rel), nil
}

// toPosition converts a 0-based tree-sitter Point into the wire format's
// 1-based Position.
func toPosition(p analysisrange.Point) lint.Position {
	return lint.Position{Line: int(p.Row) + 1, Column: int(p.Column) + 1}
}
