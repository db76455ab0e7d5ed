package scope

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/DeepSourceCorp/globstar/pkg/analysisrange"
)

// Reserved capture names a scope query may use; any other capture name is
// ignored by the resolver (it may still be consumed by validators running
// their own queries).
const (
	CaptureScope      = "local.scope"
	CaptureDefinition = "local.definition"
	CaptureDefValue   = "local.definition-value"
	CaptureReference  = "local.reference"
)

// Build runs query over root and constructs the scope tree it describes.
//
// Captures are dispatched by capture index as they arrive from the query
// engine (source order within a match, match order across matches): a
// local.scope capture inserts a new scope; a local.definition capture
// inserts a definition; a local.reference capture resolves a reference
// against the definitions visible from its containing scope. This relies
// on scopes being captured before anything nested within them, which holds
// naturally because tree-sitter returns captures in source order and a
// containing local.scope node precedes any node nested within it.
func Build(query *sitter.Query, root *sitter.Node, src []byte) *LocalScope {
	var (
		scopeIdx    = uint32(0xffffffff)
		defIdx      = uint32(0xffffffff)
		defValueIdx = uint32(0xffffffff)
		refIdx      = uint32(0xffffffff)
	)
	for i := uint32(0); i < query.CaptureCount(); i++ {
		switch query.CaptureNameForId(i) {
		case CaptureScope:
			scopeIdx = i
		case CaptureDefinition:
			defIdx = i
		case CaptureDefValue:
			defValueIdx = i
		case CaptureReference:
			refIdx = i
		}
	}

	rootScope := NewLocalScope(analysisrange.FromNode(root))

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(query, root)

	// lastDef tracks the most recently inserted definition, so a
	// local.definition-value capture following it in the same match can
	// attach a value range (per spec.md §4.2, "reserved" semantics).
	var lastDef *LocalDef

	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		for _, capture := range match.Captures {
			r := analysisrange.FromNode(capture.Node)
			name := capture.Node.Content(src)

			switch capture.Index {
			case scopeIdx:
				InsertScope(rootScope, r)
			case defIdx:
				InsertDef(rootScope, name, r, nil)
				lastDef = findDef(rootScope, r)
			case defValueIdx:
				if lastDef != nil {
					vr := r
					lastDef.ValueRange = &vr
				}
			case refIdx:
				InsertRef(rootScope, name, r)
			}
		}
	}

	return rootScope
}

// findDef looks up the definition most recently inserted at defRange, used
// to wire up local.definition-value captures to the definition they
// augment. Defs are unique by (scope, range) in well-formed queries.
func findDef(root *LocalScope, defRange analysisrange.Range) *LocalDef {
	s := ScopeByRange(root, defRange)
	if s == nil {
		return nil
	}
	for i := len(s.LocalDefs) - 1; i >= 0; i-- {
		if s.LocalDefs[i].DefRange == defRange {
			return s.LocalDefs[i]
		}
	}
	return nil
}
