package job

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/viant/afs"

	"github.com/DeepSourceCorp/globstar/pkg/globstarerr"
	"github.com/DeepSourceCorp/globstar/pkg/lint"
)

// resultFileMode is the mode used when uploading the analysis result
// document; results are plain, world-readable JSON files.
const resultFileMode = os.FileMode(0o644)

// EnvConfig is the process-wide, immutable configuration read once from
// environment variables at startup.
type EnvConfig struct {
	CodePath           string
	AnalysisConfigPath string
	AnalysisResultPath string
	AutofixConfigPath  string
	AutofixResultPath  string
}

// LoadEnvConfig reads EnvConfig from the environment, applying the
// defaults named in spec §6 for any unset variable.
func LoadEnvConfig() EnvConfig {
	return EnvConfig{
		CodePath:           lookupOrDefault("CODE_PATH", "/code"),
		AnalysisConfigPath: lookupOrDefault("ANALYSIS_CONFIG_PATH", "/toolbox/analysis_config.json"),
		AnalysisResultPath: lookupOrDefault("ANALYSIS_RESULT_PATH", "/toolbox/analysis_results.json"),
		AutofixConfigPath:  lookupOrDefault("AUTOFIX_CONFIG_PATH", "/toolbox/autofix_config.json"),
		AutofixResultPath:  lookupOrDefault("AUTOFIX_RESULT_PATH", "/toolbox/autofix_results.json"),
	}
}

func lookupOrDefault(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

// AnalyzerConfig is the job-configuration document read from
// EnvConfig.AnalysisConfigPath.
type AnalyzerConfig struct {
	Files           []string     `json:"files"`
	ExcludePatterns []string     `json:"exclude_patterns"`
	ExcludeFiles    []string     `json:"exclude_files"`
	TestPatterns    []string     `json:"test_patterns"`
	TestFiles       []string     `json:"test_files"`
	AnalyzerMeta    AnalyzerMeta `json:"analyzer_meta"`
}

// AnalyzerMeta carries the configured analyzer's identity and free-form
// metadata; currently informational.
type AnalyzerMeta struct {
	Name    string            `json:"name"`
	Enabled bool              `json:"enabled"`
	Meta    map[string]string `json:"meta"`
}

// LoadAnalyzerConfig reads and decodes the job configuration document from
// env.AnalysisConfigPath through fs, wrapping any failure in ErrLoad.
func LoadAnalyzerConfig(ctx context.Context, fs afs.Service, env EnvConfig) (AnalyzerConfig, error) {
	var cfg AnalyzerConfig
	data, err := fs.DownloadWithURL(ctx, env.AnalysisConfigPath)
	if err != nil {
		return cfg, fmt.Errorf("%w: %s", globstarerr.ErrLoad, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s", globstarerr.ErrLoad, err)
	}
	return cfg, nil
}

// AnalysisResult is the job-result document written to
// EnvConfig.AnalysisResultPath.
type AnalysisResult struct {
	Issues   []lint.Issue `json:"issues"`
	Metrics  []Metric     `json:"metrics,omitempty"`
	IsPassed bool         `json:"is_passed"`
	Errors   []RunError   `json:"errors"`
}

// Metric is a named measurement grouped into key/value namespaces.
type Metric struct {
	Code       string      `json:"metric_code"`
	Namespaces []Namespace `json:"namespaces"`
}

// Namespace is one key/value pair within a Metric.
type Namespace struct {
	Key   string `json:"key"`
	Value uint64 `json:"value"`
}

// RunError records an observable per-file failure: the human-readable
// message and a severity level, surfaced in AnalysisResult.Errors instead
// of being silently discarded.
type RunError struct {
	HMessage string `json:"hmessage"`
	Level    uint64 `json:"level"`
}

// StoreAnalysisResult serializes result as JSON and writes it to
// env.AnalysisResultPath through fs, wrapping any failure in ErrStore.
func StoreAnalysisResult(ctx context.Context, fs afs.Service, env EnvConfig, result AnalysisResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("%w: %s", globstarerr.ErrStore, err)
	}
	if err := fs.Upload(ctx, env.AnalysisResultPath, resultFileMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: %s", globstarerr.ErrStore, err)
	}
	return nil
}
