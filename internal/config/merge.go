package config

import "slices"

// Entry is one key of the effective configuration.
type Entry struct {
	Section string `json:"section"`
	Key     string `json:"key"`
	Value   string `json:"value"`
	Source  Source `json:"source"`
	// Shadowed is set when a local value hides a global one.
	Shadowed bool `json:"shadowed,omitempty"`
}

// Effective lists every key found in either document with the value a lookup
// without override would return. Global sections and keys come first in file
// order, followed by anything that only exists locally.
func (r *Resolver) Effective() []Entry {
	g, l := r.pair.Global, r.pair.Local

	var sections []string
	sections = append(sections, g.Sections()...)
	if l != nil {
		for _, s := range l.Sections() {
			if !g.HasSection(s) {
				sections = append(sections, s)
			}
		}
	}

	var entries []Entry
	for _, section := range sections {
		keys := g.Keys(section)
		if l != nil {
			for _, k := range l.Keys(section) {
				if !slices.Contains(keys, k) {
					keys = append(keys, k)
				}
			}
		}

		for _, key := range keys {
			e := Entry{Section: section, Key: key}
			gv, inGlobal := g.Get(section, key)
			if l != nil {
				if lv, ok := l.Get(section, key); ok {
					e.Value = lv
					e.Source = SourceLocal
					e.Shadowed = inGlobal
					entries = append(entries, e)
					continue
				}
			}
			e.Value = gv
			e.Source = SourceGlobal
			entries = append(entries, e)
		}
	}
	return entries
}

// Sections groups entries as section -> key -> value.
func Sections(entries []Entry) map[string]map[string]string {
	out := make(map[string]map[string]string)
	for _, e := range entries {
		if out[e.Section] == nil {
			out[e.Section] = make(map[string]string)
		}
		out[e.Section][e.Key] = e.Value
	}
	return out
}
