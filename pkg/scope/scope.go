// Package scope implements the nested lexical-scope tree that the scope
// resolver builds from captured query matches: LocalScope nodes holding
// ordered definitions and child scopes, LocalDef definitions accumulating
// references, and the insertion primitives that keep the tree well formed.
package scope

import (
	"github.com/DeepSourceCorp/globstar/pkg/analysisrange"
)

// LocalScope is a node in the scope tree.
type LocalScope struct {
	// Range is the source extent this scope covers.
	Range analysisrange.Range
	// LocalDefs are the definitions introduced directly within this scope
	// (not its children), in the order they were captured.
	LocalDefs []*LocalDef
	// ChildScopes are the scopes directly nested within this one, in the
	// order they were inserted.
	ChildScopes []*LocalScope
	// ParentScope is the enclosing scope, nil only at the root.
	ParentScope *LocalScope
}

// NewLocalScope creates an empty scope spanning r.
func NewLocalScope(r analysisrange.Range) *LocalScope {
	return &LocalScope{Range: r}
}

// LocalDef is a named definition captured by the scope query.
type LocalDef struct {
	// Name is the text slice of source this definition binds.
	Name string
	// DefRange is the byte range of the definition's name node.
	DefRange analysisrange.Range
	// ValueRange is the byte range of the definition's value, if the scope
	// query attached one via local.definition-value.
	ValueRange *analysisrange.Range
	// IsMutable marks definitions that may be reassigned; the generic
	// resolver never sets it, so it is false on every definition Build
	// produces.
	IsMutable bool
	// Scope is the scope that owns this definition.
	Scope *LocalScope
	// References are the use-sites that resolved to this definition, in
	// the order they were bound.
	References []*Reference
}

// Reference is a use-site captured by the scope query, bound to the
// definition it resolves to.
type Reference struct {
	Range       analysisrange.Range
	OriginalDef *LocalDef
}

// ScopeStack iterates from a starting scope up to the root, inclusive.
// It is finite and non-restartable.
type ScopeStack struct {
	next *LocalScope
}

// Stack returns a ScopeStack starting at s.
func Stack(s *LocalScope) *ScopeStack {
	return &ScopeStack{next: s}
}

// Next returns the next scope in the walk (s, then s.ParentScope, ... to
// the root) and true, or (nil, false) once the root has been yielded.
func (st *ScopeStack) Next() (*LocalScope, bool) {
	if st.next == nil {
		return nil, false
	}
	cur := st.next
	st.next = cur.ParentScope
	return cur, true
}

// All drains the stack into a slice, root-most last. Convenience for
// callers that don't need the iterator form.
func (st *ScopeStack) All() []*LocalScope {
	var out []*LocalScope
	for {
		s, ok := st.Next()
		if !ok {
			break
		}
		out = append(out, s)
	}
	return out
}
