package search

import (
	"strings"

	errs "imgcollect/pkg/errors"
)

// Source selects which providers a collection run uses
type Source int

const (
	SourceAll Source = iota + 1
	SourceBing
	SourceGoogle
)

var sourceNames = map[Source]string{
	SourceAll:    "all",
	SourceBing:   "bing",
	SourceGoogle: "google",
}

func (s Source) String() string {
	if name, ok := sourceNames[s]; ok {
		return name
	}
	return "invalid"
}

// SourceNames lists the accepted selector values in display order
func SourceNames() []string {
	return []string{"all", "bing", "google"}
}

// ParseSource validates a selector string. Matching is case-insensitive;
// anything other than all, bing or google is an invalid-argument error.
func ParseSource(s string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all":
		return SourceAll, nil
	case "bing":
		return SourceBing, nil
	case "google":
		return SourceGoogle, nil
	default:
		return 0, errs.InvalidArgument("source must be one of %s, got %q",
			strings.Join(SourceNames(), ", "), s)
	}
}

// Registry holds the provider instance behind each single-provider source
type Registry struct {
	Bing   Provider
	Google Provider
}

// DefaultRegistry returns providers pointed at the public search endpoints
func DefaultRegistry() Registry {
	return Registry{
		Bing:   NewBing(""),
		Google: NewGoogle(""),
	}
}

// Resolve returns the providers for s in run order. SourceAll yields Bing
// then Google. An invalid Source yields nil.
func (r Registry) Resolve(s Source) []Provider {
	switch s {
	case SourceAll:
		return []Provider{r.Bing, r.Google}
	case SourceBing:
		return []Provider{r.Bing}
	case SourceGoogle:
		return []Provider{r.Google}
	default:
		return nil
	}
}
