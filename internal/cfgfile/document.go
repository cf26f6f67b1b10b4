package cfgfile

import (
	"slices"
	"strings"
)

// Document is a parsed config file: sections of flat key/value maps.
// It is read-only once returned by Load or Parse.
type Document struct {
	path     string
	order    []string
	sections map[string]*section
}

type section struct {
	name   string
	keys   []string
	values map[string]string
	lines  map[string]int // line each key was defined on
}

func newDocument(path string) *Document {
	return &Document{
		path:     path,
		sections: make(map[string]*section),
	}
}

// Path returns the file the document was read from.
func (d *Document) Path() string {
	return d.path
}

// Sections returns section names in file order.
func (d *Document) Sections() []string {
	return slices.Clone(d.order)
}

// HasSection reports whether the section exists.
func (d *Document) HasSection(name string) bool {
	_, ok := d.sections[name]
	return ok
}

// Keys returns the keys of a section in file order, or nil if the section
// does not exist.
func (d *Document) Keys(sectionName string) []string {
	s, ok := d.sections[sectionName]
	if !ok {
		return nil
	}
	return slices.Clone(s.keys)
}

// Get returns the value of section.key. Keys are matched case-insensitively.
func (d *Document) Get(sectionName, key string) (string, bool) {
	s, ok := d.sections[sectionName]
	if !ok {
		return "", false
	}
	v, ok := s.values[normalizeKey(key)]
	return v, ok
}

// HasKey reports whether section.key exists.
func (d *Document) HasKey(sectionName, key string) bool {
	_, ok := d.Get(sectionName, key)
	return ok
}

// Map returns a copy of the document as section -> key -> value.
func (d *Document) Map() map[string]map[string]string {
	out := make(map[string]map[string]string, len(d.sections))
	for name, s := range d.sections {
		values := make(map[string]string, len(s.values))
		for k, v := range s.values {
			values[k] = v
		}
		out[name] = values
	}
	return out
}

func (d *Document) addSection(name string) *section {
	s := &section{
		name:   name,
		values: make(map[string]string),
		lines:  make(map[string]int),
	}
	d.sections[name] = s
	d.order = append(d.order, name)
	return s
}

func (s *section) set(key, value string, line int) {
	if _, exists := s.values[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
	s.lines[key] = line
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
