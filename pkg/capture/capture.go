// Package capture provides generic helpers over query-match iteration,
// replacing the trait-based MapCapture/IsMatch extension methods the
// original implementation grafted onto its query-cursor type.
package capture

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// MapCapture runs query over cursor's matches, applies f to every capture
// named captureName, and returns the mapped results in match order.
func MapCapture[B any](cursor *sitter.QueryCursor, query *sitter.Query, captureName string, f func(*sitter.QueryCapture) B) []B {
	idx := captureIndex(query, captureName)
	if idx < 0 {
		return nil
	}
	var out []B
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		for i := range match.Captures {
			c := &match.Captures[i]
			if int(c.Index) == idx {
				out = append(out, f(c))
			}
		}
	}
	return out
}

// FilterMapCapture is MapCapture, dropping results where f's second return
// is false.
func FilterMapCapture[B any](cursor *sitter.QueryCursor, query *sitter.Query, captureName string, f func(*sitter.QueryCapture) (B, bool)) []B {
	idx := captureIndex(query, captureName)
	if idx < 0 {
		return nil
	}
	var out []B
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		for i := range match.Captures {
			c := &match.Captures[i]
			if int(c.Index) != idx {
				continue
			}
			if v, keep := f(c); keep {
				out = append(out, v)
			}
		}
	}
	return out
}

// IsMatch reports whether query matches anywhere within node, short
// circuiting on the first match.
func IsMatch(cursor *sitter.QueryCursor, query *sitter.Query, node *sitter.Node, src []byte) bool {
	cursor.Exec(query, node)
	_, ok := cursor.NextMatch()
	return ok
}

func captureIndex(query *sitter.Query, name string) int {
	for i := uint32(0); i < query.CaptureCount(); i++ {
		if query.CaptureNameForId(i) == name {
			return int(i)
		}
	}
	return -1
}
