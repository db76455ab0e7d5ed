// Package globstarerr defines the error taxonomy shared across the
// analysis engine and job runner: one sentinel per error kind named in
// spec.md §7, each wrapping an inner cause via fmt.Errorf("%w: ...", ...)
// so callers can branch on kind with errors.Is.
package globstarerr

import "errors"

var (
	// ErrLoad is raised when the job configuration is missing, unreadable,
	// or fails to deserialize. Fatal for the run.
	ErrLoad = errors.New("load error")

	// ErrStore is raised when the result file cannot be written or
	// serialized. Fatal for the run.
	ErrStore = errors.New("store error")

	// ErrQuery is raised when a scope or injection query fails to compile
	// under its grammar. For injection queries this is detected at
	// construction; for scope queries, at first per-file use. Scoped to
	// the offending file; does not abort the run.
	ErrQuery = errors.New("query error")

	// ErrInjection is raised when an injection query compiles but lacks
	// an injection.content capture. Detected at construction.
	ErrInjection = errors.New("injection error")

	// ErrIgnore is raised when the configured ignore pattern set fails to
	// compile as a regex set. Fatal for the run.
	ErrIgnore = errors.New("ignore regex error")

	// ErrPath is raised when a file path cannot be stripped of the
	// configured CODE_PATH prefix. Scoped to the offending file.
	ErrPath = errors.New("path error")

	// ErrRead is raised on a per-file I/O failure while reading source.
	// Scoped to the offending file.
	ErrRead = errors.New("read error")
)
