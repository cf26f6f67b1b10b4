package config

import (
	"context"

	"github.com/raphi011/cfgpair/internal/cfgfile"
)

// resolverKey is the context key for Resolver
type resolverKey struct{}

// Source names the tier that answered a lookup.
type Source string

const (
	SourceOverride Source = "override"
	SourceLocal    Source = "local"
	SourceGlobal   Source = "global"
	SourceDefault  Source = "default"
)

// Resolver answers lookups against a Pair using the chain
// override -> local -> global -> default.
// It holds no mutable state, so concurrent lookups need no locking.
type Resolver struct {
	pair *Pair
}

// NewResolver creates a Resolver over pair.
func NewResolver(pair *Pair) *Resolver {
	return &Resolver{pair: pair}
}

// Pair returns the documents the resolver reads from.
func (r *Resolver) Pair() *Pair {
	return r.pair
}

// GetOption resolves section.key. A set override is returned verbatim, even
// when it is nil, 0 or false. Otherwise the local value wins over the global
// one, and def is returned verbatim when neither document has the key.
// A missing key is never an error.
func (r *Resolver) GetOption(section, key string, override Override, def any) any {
	if v, ok := override.Value(); ok {
		return v
	}
	if r.pair.Local != nil {
		if v, ok := r.pair.Local.Get(section, key); ok {
			return v
		}
	}
	if v, ok := r.pair.Global.Get(section, key); ok {
		return v
	}
	return def
}

// Tier is one step of the resolution chain as seen by Explain.
type Tier struct {
	Source Source `json:"source"`
	Path   string `json:"path,omitempty"`
	// Available is false for the local tier when no local file was loaded.
	Available bool `json:"available"`
	Found     bool `json:"found"`
	Value     any  `json:"value"`
}

// Trace is the result of Explain.
type Trace struct {
	Section string `json:"section"`
	Key     string `json:"key"`
	Value   any    `json:"value"`
	Source  Source `json:"source"`
	Tiers   []Tier `json:"tiers"`
}

// Explain resolves like GetOption and also reports what every tier held.
func (r *Resolver) Explain(section, key string, override Override, def any) Trace {
	ov, set := override.Value()
	tiers := []Tier{
		{Source: SourceOverride, Available: true, Found: set, Value: ov},
		fileTier(SourceLocal, r.pair.LocalPath, r.pair.Local, section, key),
		fileTier(SourceGlobal, r.pair.GlobalPath, r.pair.Global, section, key),
		{Source: SourceDefault, Available: true, Found: true, Value: def},
	}

	tr := Trace{Section: section, Key: key, Tiers: tiers}
	for _, t := range tiers {
		if t.Found {
			tr.Value = t.Value
			tr.Source = t.Source
			break
		}
	}
	return tr
}

func fileTier(src Source, path string, doc *cfgfile.Document, section, key string) Tier {
	t := Tier{Source: src, Path: path}
	if doc == nil {
		return t
	}
	t.Available = true
	if v, ok := doc.Get(section, key); ok {
		t.Found = true
		t.Value = v
	}
	return t
}

// WithResolver returns a new context with the Resolver stored in it.
func WithResolver(ctx context.Context, r *Resolver) context.Context {
	return context.WithValue(ctx, resolverKey{}, r)
}

// ResolverFromContext returns the Resolver from context.
// Returns nil if no resolver is stored.
func ResolverFromContext(ctx context.Context) *Resolver {
	if r, ok := ctx.Value(resolverKey{}).(*Resolver); ok {
		return r
	}
	return nil
}
