// Command globstar-analyze is the job-runner entrypoint: it wires the
// bundled Go validators into a Linter, then drives pkg/job.Runner over
// the job configuration named by the environment (spec.md §6).
package main

import (
	"context"
	"log"

	"github.com/DeepSourceCorp/globstar/examples/go/variableshadowing"
	"github.com/DeepSourceCorp/globstar/internal/langsupport"
	"github.com/DeepSourceCorp/globstar/pkg/job"
	"github.com/DeepSourceCorp/globstar/pkg/linter"
)

func main() {
	goGrammar := langsupport.MustLookup("go")

	l := linter.New(goGrammar.Language).
		Extension(goGrammar.Extension).
		CommentStr("//").
		Scopes(variableshadowing.ScopeQuery).
		Validator(variableshadowing.Check)

	runner := job.NewRunner(l)
	env := job.LoadEnvConfig()

	if err := runner.RunAnalysis(context.Background(), env); err != nil {
		log.Fatalf("globstar-analyze: %s", err)
	}
}
