package inject_test

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeepSourceCorp/globstar/pkg/inject"
)

const rawStringInjectionQuery = `(raw_string_literal) @injection.content`

func TestNewInjectionRequiresContentCapture(t *testing.T) {
	_, err := inject.NewInjection(`(raw_string_literal) @nope`, golang.GetLanguage(), bash.GetLanguage())
	require.Error(t, err)
}

func TestNewInjectionRejectsBadQuery(t *testing.T) {
	_, err := inject.NewInjection(`(this is not a query`, golang.GetLanguage(), bash.GetLanguage())
	require.Error(t, err)
}

func TestResolveReparsesCapturedRange(t *testing.T) {
	src := []byte("package main\n\nfunc run() string {\n\treturn `ls -la`\n}\n")

	parser := sitter.NewParser()
	parser.SetLanguage(golang.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	require.NoError(t, err)

	injection, err := inject.NewInjection(rawStringInjectionQuery, golang.GetLanguage(), bash.GetLanguage())
	require.NoError(t, err)

	trees := inject.Resolve([]*inject.Injection{injection}, tree.RootNode(), src)
	require.Len(t, trees, 1)

	got := trees[0]
	wantLen := got.OriginalRange.EndByte - got.OriginalRange.StartByte
	assert.Equal(t, wantLen, got.Tree.RootNode().EndByte()-got.Tree.RootNode().StartByte())
}

func TestResolveYieldsNoTreesWhenContentNeverMatches(t *testing.T) {
	// An injection whose content capture never matches yields no trees,
	// without erroring.
	src := []byte("package main\n")
	parser := sitter.NewParser()
	parser.SetLanguage(golang.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	require.NoError(t, err)

	injection, err := inject.NewInjection(rawStringInjectionQuery, golang.GetLanguage(), bash.GetLanguage())
	require.NoError(t, err)

	trees := inject.Resolve([]*inject.Injection{injection}, tree.RootNode(), src)
	assert.Empty(t, trees)
}
