// Package linter wires together a grammar, an optional scope query, zero
// or more injections, and a set of validators into a single analysis
// pass over one file's source.
package linter

import (
	"context"
	"fmt"
	"regexp"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/DeepSourceCorp/globstar/pkg/ctx"
	"github.com/DeepSourceCorp/globstar/pkg/globstarerr"
	"github.com/DeepSourceCorp/globstar/pkg/inject"
	"github.com/DeepSourceCorp/globstar/pkg/lint"
	"github.com/DeepSourceCorp/globstar/pkg/scope"
)

// ValidatorFn inspects a parsed file and reports findings. root is the
// outer syntax tree's root node; c carries the resolved scopes and
// injected trees for this file; src is the full file content.
type ValidatorFn func(root *sitter.Node, c *ctx.Context, src []byte) []lint.Occurrence

// Linter configures a single analysis pass: one grammar, one optional
// scope query, any number of injections, a set of ignore patterns, and
// the validators run against every file that survives them.
type Linter struct {
	validators []ValidatorFn
	language   *sitter.Language
	commentStr string
	scopeQuery string
	injections []*inject.Injection
	ignores    []*regexp.Regexp
	ignoreErr  error
	extension  string
}

// New starts a Linter configuration for language. Every chained setter
// returns the same *Linter, so calls compose as
// linter.New(lang).Validator(v).Scopes(q).Extension("rb").
func New(language *sitter.Language) *Linter {
	return &Linter{language: language}
}

// Validator appends v to the validators run during Analyze.
func (l *Linter) Validator(v ValidatorFn) *Linter {
	l.validators = append(l.validators, v)
	return l
}

// Validators appends every vs to the validators run during Analyze.
func (l *Linter) Validators(vs ...ValidatorFn) *Linter {
	l.validators = append(l.validators, vs...)
	return l
}

// CommentStr records a line-comment prefix for files analyzed by this
// Linter (e.g. "#" for Ruby, "//" for Go). The value is only stored: no
// default is applied, Analyze does not use it, and pkg/fixture takes its
// comment prefix as an explicit argument rather than reading it from here.
func (l *Linter) CommentStr(s string) *Linter {
	l.commentStr = s
	return l
}

// Scopes configures the tree-sitter query used to resolve local scopes,
// definitions, and references for every file analyzed by this Linter.
func (l *Linter) Scopes(queryText string) *Linter {
	l.scopeQuery = queryText
	return l
}

// Injection adds inj to the injections resolved for every file analyzed
// by this Linter.
func (l *Linter) Injection(inj *inject.Injection) *Linter {
	l.injections = append(l.injections, inj)
	return l
}

// Ignore compiles pattern as a regular expression and adds it to the set
// of ignore patterns matched against a file's path by the job runner
// (spec's "a file whose path matches any is skipped"). An invalid
// pattern is stored and surfaced as an ErrIgnore by IgnoreErr, which the
// job runner treats as fatal for the whole run.
func (l *Linter) Ignore(pattern string) *Linter {
	re, err := regexp.Compile(pattern)
	if err != nil {
		l.ignoreErr = fmt.Errorf("%w: %s", globstarerr.ErrIgnore, err)
		return l
	}
	l.ignores = append(l.ignores, re)
	return l
}

// Ignores calls Ignore for every pattern in patterns.
func (l *Linter) Ignores(patterns ...string) *Linter {
	for _, p := range patterns {
		l.Ignore(p)
	}
	return l
}

// Extension sets the file extension (without leading dot) this Linter is
// registered under in internal/langsupport, and which the job runner
// filters configured files by.
func (l *Linter) Extension(ext string) *Linter {
	l.extension = ext
	return l
}

// IgnoreErr returns the error from the first invalid Ignore pattern
// registered, or nil. Checked by the job runner before starting a run.
func (l *Linter) IgnoreErr() error {
	return l.ignoreErr
}

// IgnoresPath reports whether path matches any configured ignore
// pattern.
func (l *Linter) IgnoresPath(path string) bool {
	for _, re := range l.ignores {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// Ext returns the configured file extension, without a leading dot.
func (l *Linter) Ext() string {
	return l.extension
}

// Analyze parses src, resolves scopes and injections, and runs every
// configured validator over the result, concatenating their findings. A
// scope-query compile error is returned as an error rather than panicking.
// Injection queries are already compiled by inject.NewInjection, so
// Analyze never reports an injection-query error.
func (l *Linter) Analyze(src string) ([]lint.Occurrence, error) {
	source := []byte(src)

	parser := sitter.NewParser()
	parser.SetLanguage(l.language)
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", globstarerr.ErrQuery, err)
	}
	root := tree.RootNode()

	var rootScope *scope.LocalScope
	if l.scopeQuery != "" {
		query, err := sitter.NewQuery([]byte(l.scopeQuery), l.language)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", globstarerr.ErrQuery, err)
		}
		rootScope = scope.Build(query, root, source)
	}

	injected := inject.Resolve(l.injections, root, source)
	fileCtx := ctx.New(rootScope, injected)

	var occurrences []lint.Occurrence
	for _, v := range l.validators {
		occurrences = append(occurrences, v(root, fileCtx, source)...)
	}
	return occurrences, nil
}
