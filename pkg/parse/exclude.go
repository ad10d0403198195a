package parse

import (
	"regexp"

	"github.com/matzehuels/chaosmeter/pkg/errors"
)

// Exclusion decides whether a component name is left out of the analysis.
// A nil *Exclusion excludes nothing.
type Exclusion struct {
	pattern string
	re      *regexp.Regexp
}

// CompileExclusion compiles pattern into an Exclusion anchored at the start
// of each name. An empty pattern returns nil, meaning no exclusion.
func CompileExclusion(pattern string) (*Exclusion, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPattern, err, "invalid exclusion pattern %q", pattern)
	}
	return &Exclusion{pattern: pattern, re: re}, nil
}

// Match reports whether id is excluded.
func (x *Exclusion) Match(id string) bool {
	if x == nil {
		return false
	}
	return x.re.MatchString(id)
}

// Pattern returns the source pattern, or "" for a nil Exclusion.
func (x *Exclusion) Pattern() string {
	if x == nil {
		return ""
	}
	return x.pattern
}
