package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Boolean words accepted by Bool, matched case-insensitively.
var (
	TrueWords  = []string{"1", "yes", "true", "on"}
	FalseWords = []string{"0", "no", "false", "off"}
)

// String resolves section.key without an override and returns it as a
// string. def is returned when neither document has the key.
func (r *Resolver) String(section, key, def string) string {
	v := r.GetOption(section, key, Unset, def)
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Int resolves section.key and parses it as a base-10 integer.
// def is returned as is when neither document has the key.
func (r *Resolver) Int(section, key string, def int) (int, error) {
	tr := r.Explain(section, key, Unset, def)
	if tr.Source == SourceDefault {
		return def, nil
	}
	s := fmt.Sprint(tr.Value)
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, coerceError(tr, fmt.Errorf("invalid integer %q", s))
	}
	return n, nil
}

// Bool resolves section.key and parses it using TrueWords and FalseWords.
// def is returned as is when neither document has the key.
func (r *Resolver) Bool(section, key string, def bool) (bool, error) {
	tr := r.Explain(section, key, Unset, def)
	if tr.Source == SourceDefault {
		return def, nil
	}
	b, err := ParseBool(fmt.Sprint(tr.Value))
	if err != nil {
		return false, coerceError(tr, err)
	}
	return b, nil
}

// ParseBool parses a boolean word.
func ParseBool(s string) (bool, error) {
	w := strings.ToLower(strings.TrimSpace(s))
	switch {
	case slices.Contains(TrueWords, w):
		return true, nil
	case slices.Contains(FalseWords, w):
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q: must be %s", s, formatOptions(append(slices.Clone(TrueWords), FalseWords...)))
}

// coerceError names the key and the file tier the bad value came from.
func coerceError(tr Trace, err error) error {
	for _, t := range tr.Tiers {
		if t.Source == tr.Source && t.Path != "" {
			return fmt.Errorf("%s.%s (%s config %s): %w", tr.Section, tr.Key, tr.Source, t.Path, err)
		}
	}
	return fmt.Errorf("%s.%s (%s): %w", tr.Section, tr.Key, tr.Source, err)
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
