package cfgfile

import (
	"fmt"
	"slices"
	"strings"
)

// maxInterpolationDepth bounds how deeply references may nest.
const maxInterpolationDepth = 10

type ref struct {
	section string
	key     string
}

func (r ref) String() string {
	return r.section + ":" + r.key
}

type interpolator struct {
	doc    *Document
	done   map[ref]string
	active []ref
}

// interpolate expands every ${...} reference in doc. Raw values stay in place
// until all keys are resolved so each lookup sees the original text.
func interpolate(doc *Document) error {
	in := &interpolator{
		doc:  doc,
		done: make(map[ref]string),
	}

	for _, name := range doc.order {
		for _, key := range doc.sections[name].keys {
			if _, err := in.resolve(ref{section: name, key: key}, 0); err != nil {
				return err
			}
		}
	}

	for r, v := range in.done {
		doc.sections[r.section].values[r.key] = v
	}
	return nil
}

func (in *interpolator) resolve(r ref, depth int) (string, error) {
	if v, ok := in.done[r]; ok {
		return v, nil
	}
	if idx := slices.Index(in.active, r); idx >= 0 {
		chain := make([]string, 0, len(in.active)-idx+1)
		for _, a := range in.active[idx:] {
			chain = append(chain, a.String())
		}
		chain = append(chain, r.String())
		return "", in.errorf(in.active[len(in.active)-1], ErrInterpolationCycle,
			"reference cycle %s", strings.Join(chain, " -> "))
	}
	if depth > maxInterpolationDepth {
		return "", in.errorf(r, nil, "references nested deeper than %d levels at %s", maxInterpolationDepth, r)
	}

	in.active = append(in.active, r)
	defer func() { in.active = in.active[:len(in.active)-1] }()

	raw := in.doc.sections[r.section].values[r.key]
	var b strings.Builder
	for i := 0; i < len(raw); {
		c := raw[i]
		if c != '$' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(raw) {
			return "", in.errorf(r, nil, "%s: \"$\" must be followed by \"$\" or \"{\"", r)
		}
		switch raw[i+1] {
		case '$':
			b.WriteByte('$')
			i += 2
		case '{':
			end := strings.IndexByte(raw[i+2:], '}')
			if end < 0 {
				return "", in.errorf(r, nil, "%s: unterminated reference in %q", r, raw)
			}
			target, err := in.target(r, raw[i+2:i+2+end])
			if err != nil {
				return "", err
			}
			v, err := in.resolve(target, depth+1)
			if err != nil {
				return "", err
			}
			b.WriteString(v)
			i += end + 3
		default:
			return "", in.errorf(r, nil, "%s: \"$\" must be followed by \"$\" or \"{\"", r)
		}
	}

	v := b.String()
	in.done[r] = v
	return v, nil
}

// target resolves the text inside ${...} to an existing option.
func (in *interpolator) target(from ref, spec string) (ref, error) {
	parts := strings.Split(spec, ":")
	var t ref
	switch len(parts) {
	case 1:
		t = ref{section: from.section, key: normalizeKey(parts[0])}
	case 2:
		t = ref{section: strings.TrimSpace(parts[0]), key: normalizeKey(parts[1])}
	default:
		return ref{}, in.errorf(from, nil, "%s: more than one \":\" in reference ${%s}", from, spec)
	}

	s, ok := in.doc.sections[t.section]
	if !ok {
		return ref{}, in.errorf(from, nil, "%s references missing section %q", from, t.section)
	}
	if _, ok := s.values[t.key]; !ok {
		return ref{}, in.errorf(from, nil, "%s references missing option %s", from, t)
	}
	return t, nil
}

func (in *interpolator) errorf(at ref, kind error, format string, args ...any) error {
	line := 0
	if s, ok := in.doc.sections[at.section]; ok {
		line = s.lines[at.key]
	}
	return &ParseError{
		Path: in.doc.path,
		Line: line,
		Msg:  fmt.Sprintf(format, args...),
		Err:  kind,
	}
}
