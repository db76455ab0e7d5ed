// Package ctx provides the per-file Context façade validators receive
// alongside the syntax tree: resolved scopes and injected trees, built
// once per file and borrowed read-only for the lifetime of the analysis.
package ctx

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/DeepSourceCorp/globstar/pkg/analysisrange"
	"github.com/DeepSourceCorp/globstar/pkg/inject"
	"github.com/DeepSourceCorp/globstar/pkg/scope"
)

// Context is immutable after construction and shared by every validator
// run against the same file; it is dropped at end of file.
type Context struct {
	rootScope     *scope.LocalScope
	injectedTrees []*inject.InjectedTree
}

// New builds a Context from an already-resolved scope tree (nil if no
// scope query was configured for this Linter) and the injected trees
// resolved for this file (nil or empty if none were configured).
func New(root *scope.LocalScope, injected []*inject.InjectedTree) *Context {
	return &Context{rootScope: root, injectedTrees: injected}
}

// RootScope returns the outermost scope, or nil if no scope query was
// configured.
func (c *Context) RootScope() *scope.LocalScope {
	return c.rootScope
}

// ScopeByRange returns the innermost scope fully containing r, or nil.
func (c *Context) ScopeByRange(r analysisrange.Range) *scope.LocalScope {
	if c.rootScope == nil {
		return nil
	}
	return scope.ScopeByRange(c.rootScope, r)
}

// ScopeOf is ScopeByRange for a syntax node.
func (c *Context) ScopeOf(n *sitter.Node) *scope.LocalScope {
	return c.ScopeByRange(analysisrange.FromNode(n))
}

// ScopeStackByRange returns the chain of scopes from the innermost scope
// containing r up to the root, innermost first.
func (c *Context) ScopeStackByRange(r analysisrange.Range) *scope.ScopeStack {
	return scope.Stack(c.ScopeByRange(r))
}

// ScopeStackOf is ScopeStackByRange for a syntax node.
func (c *Context) ScopeStackOf(n *sitter.Node) *scope.ScopeStack {
	return scope.Stack(c.ScopeOf(n))
}

// InjectedTreeByRange returns the first injected tree whose OriginalRange
// contains r (OriginalRange ⊇ r), or nil if none was resolved at that
// range. A node deep inside an injected sub-tree still resolves to the
// injection it was parsed under, not just nodes at the injection's root.
func (c *Context) InjectedTreeByRange(r analysisrange.Range) *inject.InjectedTree {
	for _, t := range c.injectedTrees {
		if analysisrange.Contains(t.OriginalRange, r) {
			return t
		}
	}
	return nil
}

// InjectedTreeOf is InjectedTreeByRange for a syntax node.
func (c *Context) InjectedTreeOf(n *sitter.Node) *inject.InjectedTree {
	return c.InjectedTreeByRange(analysisrange.FromNode(n))
}
