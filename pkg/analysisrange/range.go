// Package analysisrange holds the byte-range type, its containment check,
// and node-to-range conversion used throughout the analysis engine. It
// defines no ordering comparison between ranges.
package analysisrange

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Point is a 0-based (row, column) position, matching tree-sitter's
// internal coordinate system. Conversion to the 1-based wire format
// happens once, at serialization (see pkg/job).
type Point struct {
	Row    uint32
	Column uint32
}

// Range is a half-open byte interval [StartByte, EndByte) paired with its
// two-dimensional start/end points. Ranges are produced by the parser and
// never synthesized by hand.
type Range struct {
	StartByte  uint32
	EndByte    uint32
	StartPoint Point
	EndPoint   Point
}

// FromNode builds a Range from a tree-sitter node's extent.
func FromNode(n *sitter.Node) Range {
	sp := n.StartPoint()
	ep := n.EndPoint()
	return Range{
		StartByte:  n.StartByte(),
		EndByte:    n.EndByte(),
		StartPoint: Point{Row: sp.Row, Column: sp.Column},
		EndPoint:   Point{Row: ep.Row, Column: ep.Column},
	}
}

// Contains reports whether a ⊇ b: a.StartByte ≤ b.StartByte ∧ b.EndByte ≤ a.EndByte.
func Contains(a, b Range) bool {
	return a.StartByte <= b.StartByte && b.EndByte <= a.EndByte
}

// Len returns the byte length of the range.
func (r Range) Len() uint32 {
	return r.EndByte - r.StartByte
}
