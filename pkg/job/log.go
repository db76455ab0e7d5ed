package job

import (
	"log"
	"os"
)

// logger is the package-level logger the runner uses to surface per-file
// failures that would otherwise be silently discarded (spec's "suppressed
// failures" open question, resolved by making them observable).
var logger = log.New(os.Stderr, "[globstar] ", log.LstdFlags)
