// Package inject implements language injection: reparsing captured
// sub-ranges of an outer syntax tree under a secondary grammar, producing
// inner syntax trees addressable by their original outer-source range.
package inject

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/DeepSourceCorp/globstar/pkg/analysisrange"
	"github.com/DeepSourceCorp/globstar/pkg/globstarerr"
)

// contentCapture is the reserved capture name an injection query must
// define; the captured range is what gets reparsed under Language.
const contentCapture = "injection.content"

// Injection pairs a query (compiled against the outer language) with the
// inner language its injection.content captures should be parsed as.
type Injection struct {
	query    *sitter.Query
	language *sitter.Language
}

// NewInjection compiles queryText against outerLanguage and validates it
// defines an injection.content capture. The inner language used to parse
// captured sub-ranges is innerLanguage, configured on the Injection value
// itself — any #set! injection.language predicate in queryText is
// informational only and does not drive parsing.
func NewInjection(queryText string, outerLanguage, innerLanguage *sitter.Language) (*Injection, error) {
	query, err := sitter.NewQuery([]byte(queryText), outerLanguage)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", globstarerr.ErrQuery, err)
	}
	if !hasCapture(query, contentCapture) {
		return nil, fmt.Errorf("%w: missing capture %q", globstarerr.ErrInjection, contentCapture)
	}
	return &Injection{query: query, language: innerLanguage}, nil
}

func hasCapture(query *sitter.Query, name string) bool {
	for i := uint32(0); i < query.CaptureCount(); i++ {
		if query.CaptureNameForId(i) == name {
			return true
		}
	}
	return false
}

// InjectedTree is a syntax tree parsed from a sub-range of outer source,
// addressable only via OriginalRange (in outer-source coordinates).
type InjectedTree struct {
	Tree          *sitter.Tree
	OriginalRange analysisrange.Range
}

// Resolve runs every injection's query against root, reparses each
// injection.content capture under its inner language, and returns the
// resulting InjectedTrees. Parse failures are skipped silently.
func Resolve(injections []*Injection, root *sitter.Node, src []byte) []*InjectedTree {
	var out []*InjectedTree
	for _, inj := range injections {
		contentIdx := captureIndex(inj.query, contentCapture)
		if contentIdx < 0 {
			continue
		}

		cursor := sitter.NewQueryCursor()
		cursor.Exec(inj.query, root)

		for {
			match, ok := cursor.NextMatch()
			if !ok {
				break
			}
			for _, capture := range match.Captures {
				if int(capture.Index) != contentIdx {
					continue
				}
				originalRange := analysisrange.FromNode(capture.Node)

				parser := sitter.NewParser()
				parser.SetLanguage(inj.language)
				tree, err := parser.ParseCtx(context.Background(), nil, src[originalRange.StartByte:originalRange.EndByte])
				if err != nil || tree == nil {
					continue
				}
				out = append(out, &InjectedTree{Tree: tree, OriginalRange: originalRange})
			}
		}
		cursor.Close()
	}
	return out
}

func captureIndex(query *sitter.Query, name string) int {
	for i := uint32(0); i < query.CaptureCount(); i++ {
		if query.CaptureNameForId(i) == name {
			return int(i)
		}
	}
	return -1
}
