// Package lint holds the analysis engine's data model: the Lint/Occurrence
// pair produced while walking a syntax tree, and the Issue/Location wire
// format the job runner serializes into the analysis result file.
package lint

import (
	"fmt"

	"github.com/DeepSourceCorp/globstar/pkg/analysisrange"
)

// Lint identifies a rule by name and code. It carries no mutable state;
// Raise is the only way to produce an Occurrence from it.
type Lint struct {
	Name string
	Code string
}

// Raise reports that this Lint fired at range at, with message.
func (l Lint) Raise(at analysisrange.Range, message string) Occurrence {
	return Occurrence{Lint: l, At: at, Message: message}
}

// Occurrence is a single finding from a validator run, still in
// in-memory/byte-range form (not yet converted to 1-based line/column
// Issue coordinates — that conversion happens in pkg/job at serialization
// time, once the analyzed file's path is known).
type Occurrence struct {
	Lint    Lint
	At      analysisrange.Range
	Message string
}

func (o Occurrence) String() string {
	return fmt.Sprintf("%s, %s, %s: %d..%d", o.Lint.Name, o.Lint.Code, o.Message, o.At.StartByte, o.At.EndByte)
}

// Issue is the job-result wire format for a single finding: path-relative,
// 1-based line/column coordinates, serialized as part of AnalysisResult.
type Issue struct {
	Code     string   `json:"issue_code"`
	Message  string   `json:"issue_text"`
	Location Location `json:"location"`
}

// Location pairs a repo-relative path with the issue's 1-based
// line/column span.
type Location struct {
	Path     string `json:"path"`
	Position Span   `json:"position"`
}

// Span is a half-open [Begin, End) position pair, both 1-based.
type Span struct {
	Begin Position `json:"begin"`
	End   Position `json:"end"`
}

// Position is a 1-based (line, column) pair, the wire format's coordinate
// system — distinct from analysisrange.Point, which is 0-based.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}
