// Package langsupport is the grammar registry: it pairs a *sitter.Language
// with the file extension and module version it ships under, the same way
// the teacher's analyzer.WithLanguageName option pairs a language with a
// string tag for normalization across services.
package langsupport

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/yaml"
	"golang.org/x/mod/semver"
)

// Grammar pairs a tree-sitter language with the registry metadata the
// rest of the engine keys off: the file extension a Linter is registered
// under, and the module version the grammar shipped with, so `globstar
// version` can report what each bundled grammar traces back to.
type Grammar struct {
	Extension string
	Language  *sitter.Language
	Version   string
}

var registry = map[string]Grammar{
	"go": {
		Extension: "go",
		Language:  golang.GetLanguage(),
		Version:   "v0.0.0-20240827094217-dd81d9e9be82",
	},
	"sh": {
		Extension: "sh",
		Language:  bash.GetLanguage(),
		Version:   "v0.0.0-20240827094217-dd81d9e9be82",
	},
	"rb": {
		Extension: "rb",
		Language:  ruby.GetLanguage(),
		Version:   "v0.0.0-20240827094217-dd81d9e9be82",
	},
	"yaml": {
		Extension: "yaml",
		Language:  yaml.GetLanguage(),
		Version:   "v0.0.0-20240827094217-dd81d9e9be82",
	},
}

func init() {
	// "yml" is an alias for the same grammar entry as "yaml".
	registry["yml"] = registry["yaml"]
}

// Lookup returns the Grammar registered for ext (without a leading dot),
// and whether one was found.
func Lookup(ext string) (Grammar, bool) {
	g, ok := registry[ext]
	return g, ok
}

// MustLookup is Lookup, panicking on an unregistered extension. Intended
// for use at program wiring time (cmd/globstar-analyze), never on a
// request path.
func MustLookup(ext string) Grammar {
	g, ok := Lookup(ext)
	if !ok {
		panic("langsupport: no grammar registered for extension " + ext)
	}
	return g
}

// Versions reports the registered extension -> grammar-version pairs, one
// entry per registered extension (aliases included), for `globstar
// version` style diagnostics. The result is a map, so it carries no order.
// A version string that semver.IsValid rejects is reported as "v0.0.0".
func Versions() map[string]string {
	out := make(map[string]string, len(registry))
	for ext, g := range registry {
		v := g.Version
		if !semver.IsValid(v) {
			v = "v0.0.0"
		}
		out[ext] = v
	}
	return out
}
