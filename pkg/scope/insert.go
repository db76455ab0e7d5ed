package scope

import "github.com/DeepSourceCorp/globstar/pkg/analysisrange"

// InsertScope installs a new scope spanning r at the deepest scope under
// target that can fully contain it. Scopes are tried in child order; the
// first child whose range contains r wins the recursive descent, and the
// new scope is only installed directly under target if no child accepted
// it. Returns false if target itself does not contain r.
func InsertScope(target *LocalScope, r analysisrange.Range) bool {
	if !analysisrange.Contains(target.Range, r) {
		return false
	}
	for _, child := range target.ChildScopes {
		if InsertScope(child, r) {
			return true
		}
	}
	s := NewLocalScope(r)
	s.ParentScope = target
	target.ChildScopes = append(target.ChildScopes, s)
	return true
}

// ScopeByRange returns the deepest scope under target that fully contains
// r, or nil if target itself does not contain r.
func ScopeByRange(target *LocalScope, r analysisrange.Range) *LocalScope {
	if !analysisrange.Contains(target.Range, r) {
		return nil
	}
	for _, child := range target.ChildScopes {
		if s := ScopeByRange(child, r); s != nil {
			return s
		}
	}
	return target
}

// InsertDef installs a new definition named name at defRange, in the
// deepest scope under target that contains defRange. valueRange, if
// non-nil, is attached to the definition. Returns false if target itself
// does not contain defRange.
func InsertDef(target *LocalScope, name string, defRange analysisrange.Range, valueRange *analysisrange.Range) bool {
	if !analysisrange.Contains(target.Range, defRange) {
		return false
	}
	for _, child := range target.ChildScopes {
		if InsertDef(child, name, defRange, valueRange) {
			return true
		}
	}
	def := &LocalDef{
		Name:       name,
		DefRange:   defRange,
		ValueRange: valueRange,
		Scope:      target,
	}
	target.LocalDefs = append(target.LocalDefs, def)
	return true
}

// InsertRef resolves a use-site named name at range to the nearest
// enclosing definition of the same name: it finds the deepest scope
// containing range, then walks the scope stack outward, searching each
// scope's LocalDefs for a name-equal entry and binding to the first
// match (lexical, innermost-wins resolution). Unresolved references are
// dropped silently; InsertRef returns false in that case.
func InsertRef(root *LocalScope, name string, r analysisrange.Range) bool {
	local := ScopeByRange(root, r)
	if local == nil {
		return false
	}
	stack := Stack(local)
	for {
		s, ok := stack.Next()
		if !ok {
			break
		}
		for _, def := range s.LocalDefs {
			if def.Name == name {
				ref := &Reference{Range: r, OriginalDef: def}
				def.References = append(def.References, ref)
				return true
			}
		}
	}
	return false
}
