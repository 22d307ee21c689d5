package keywords

import (
	"net/http"

	kw "github.com/goliatone/go-draftforms/pkg/keywords"
)

// GuardFunc can veto a request before any vocabulary is served.
type GuardFunc func(r *http.Request) error

// Options configures the keywords component.
type Options struct {
	RoutePath string
	Guard     GuardFunc

	// Vocabularies maps vocabulary names to their keyword trees.
	Vocabularies map[string][]kw.Node
}

// OptionFn mutates Options.
type OptionFn func(*Options)

// DefaultOptions returns the component defaults.
func DefaultOptions() Options {
	return Options{
		RoutePath: "/api/keywords",
	}
}

// NewOptions applies overrides on top of the defaults.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/keywords"
	}
	if opts.Vocabularies != nil {
		clone := make(map[string][]kw.Node, len(opts.Vocabularies))
		for name, nodes := range opts.Vocabularies {
			clone[name] = append([]kw.Node(nil), nodes...)
		}
		opts.Vocabularies = clone
	}
	return opts
}

// WithRoutePath overrides the mount path.
func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

// WithGuard installs a request guard.
func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithVocabulary registers one vocabulary tree.
func WithVocabulary(name string, nodes []kw.Node) OptionFn {
	return func(o *Options) {
		if o == nil || name == "" {
			return
		}
		if o.Vocabularies == nil {
			o.Vocabularies = make(map[string][]kw.Node)
		}
		o.Vocabularies[name] = append([]kw.Node(nil), nodes...)
	}
}
