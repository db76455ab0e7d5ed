// Package fixture implements the annotated-fixture test harness: caret
// (^^^^) comment annotations in a de-indented source fixture describe
// the occurrences a validator is expected to produce.
package fixture

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeepSourceCorp/globstar/pkg/lint"
)

// TrimIndent removes a leading newline (so fixtures can be written as
// indented triple-quoted-style string literals) and strips the minimum
// common leading indentation (spaces and tabs each count as one byte) from
// every non-blank line.
func TrimIndent(src string) string {
	if strings.HasPrefix(src, "\n") {
		src = src[1:]
	}
	lines := splitInclusive(src, '\n')

	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lead := len(line) - len(strings.TrimLeftFunc(line, isSpaceOrTab))
		if indent == -1 || lead < indent {
			indent = lead
		}
	}
	if indent == -1 {
		indent = 0
	}

	var b strings.Builder
	for _, line := range lines {
		if len(line) <= indent {
			b.WriteString(strings.TrimLeft(line, " "))
		} else {
			b.WriteString(line[indent:])
		}
	}
	return b.String()
}

func isSpaceOrTab(r rune) bool {
	return r == ' ' || r == '\t'
}

// Annotation is one caret-delimited annotation extracted from a fixture.
type Annotation struct {
	// Range is the byte range in the prior line the carets delimit.
	Range [2]int
	// Content is the source text under the carets.
	Content string
	// Comment is the trimmed message text following the carets.
	Comment string
}

// ExtractAnnotations scans src for lines containing commentStr with a run
// of carets somewhere after its first occurrence, and builds one
// Annotation per such line, anchored to the byte range in the immediately
// preceding line that the carets point at.
func ExtractAnnotations(src, commentStr string) []Annotation {
	lines := splitInclusive(src, '\n')

	var out []Annotation
	var prevLineStart *int
	lineStart := 0

	for _, line := range lines {
		if idx := strings.Index(line, commentStr); idx >= 0 {
			annotationOffset := idx + len(commentStr)
			rest := line[annotationOffset:]
			if r, ok := extractRangeAnnotation(rest); ok && prevLineStart != nil {
				comment := strings.TrimSpace(rest[r[1]:])
				start := r[0] + *prevLineStart + annotationOffset
				end := r[1] + *prevLineStart + annotationOffset
				out = append(out, Annotation{
					Range:   [2]int{start, end},
					Content: src[start:end],
					Comment: comment,
				})
			}
		}
		ls := lineStart
		prevLineStart = &ls
		lineStart += len(line)
	}
	return out
}

// extractRangeAnnotation finds the first run of '^' in line and returns
// its [start, end) byte range relative to line.
func extractRangeAnnotation(line string) ([2]int, bool) {
	idx := strings.IndexByte(line, '^')
	if idx < 0 {
		return [2]int{}, false
	}
	end := idx
	for end < len(line) && line[end] == '^' {
		end++
	}
	return [2]int{idx, end}, true
}

// splitInclusive splits s on sep, keeping sep attached to every piece
// except a possible final piece with no trailing separator.
func splitInclusive(s string, sep byte) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			out = append(out, s[start:i+1])
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

// AssertOccurrences de-indents src, extracts its annotations, and checks
// that occurrences (already produced by analyzing the de-indented src)
// match them one for one, in order: same count, same message, same
// content under the carets, same byte range.
func AssertOccurrences(t testing.TB, src string, occurrences []lint.Occurrence, commentStr string) {
	t.Helper()
	trimmed := TrimIndent(src)
	annotations := ExtractAnnotations(trimmed, commentStr)

	require.Equal(t, len(annotations), len(occurrences),
		"annotations (%d) vs occurrences (%d)", len(annotations), len(occurrences))

	for i, ann := range annotations {
		occ := occurrences[i]
		assert.Equal(t, ann.Comment, occ.Message, "annotation %d message", i)

		actual := trimmed[occ.At.StartByte:occ.At.EndByte]
		assert.Equal(t, ann.Content, actual, "annotation %d content", i)
		assert.Equal(t, ann.Range, [2]int{int(occ.At.StartByte), int(occ.At.EndByte)}, "annotation %d range", i)
	}
}
