package config

import (
	"errors"
	"fmt"

	"github.com/raphi011/cfgpair/internal/cfgfile"
)

// ErrNoLocal is returned by the comparison helpers when there is no local
// file to compare against.
var ErrNoLocal = errors.New("no local override file")

// Labels used by CompareFiles.
const (
	LabelLocal   = "local"
	LabelTracked = "tracked"
)

// Unique is a section or "section.key" present in one document only.
type Unique struct {
	Origin string `json:"origin"`
	Name   string `json:"name"`
}

// DiffResult lists what one document has that another lacks.
type DiffResult struct {
	UniqueSections []Unique `json:"unique_sections"`
	UniqueKeys     []Unique `json:"unique_keys"`
}

// Empty reports whether nothing was found.
func (d DiffResult) Empty() bool {
	return len(d.UniqueSections) == 0 && len(d.UniqueKeys) == 0
}

// Diff reports sections and keys of a that b lacks, labelled with labelA.
// A section missing from b is reported once and its keys are not listed.
// Results follow the file order of a. Diff(b, a, ...) gives the other
// direction.
func Diff(a, b *cfgfile.Document, labelA string) DiffResult {
	res := DiffResult{
		UniqueSections: []Unique{},
		UniqueKeys:     []Unique{},
	}
	for _, section := range a.Sections() {
		if !b.HasSection(section) {
			res.UniqueSections = append(res.UniqueSections, Unique{Origin: labelA, Name: section})
			continue
		}
		for _, key := range a.Keys(section) {
			if !b.HasKey(section, key) {
				res.UniqueKeys = append(res.UniqueKeys, Unique{Origin: labelA, Name: section + "." + key})
			}
		}
	}
	return res
}

// Comparison is a two-way Diff between a local file and its tracked file.
type Comparison struct {
	LocalPath   string     `json:"local_path"`
	TrackedPath string     `json:"tracked_path"`
	LocalOnly   DiffResult `json:"local_only"`
	TrackedOnly DiffResult `json:"tracked_only"`
}

// InSync reports whether both files define the same sections and keys.
func (c Comparison) InSync() bool {
	return c.LocalOnly.Empty() && c.TrackedOnly.Empty()
}

// CompareFiles loads the tracked file at primary and its local sibling and
// compares their structure. Returns an error matching ErrNoLocal when the
// local sibling does not exist.
func CompareFiles(primary string) (Comparison, error) {
	if LocalSiblingPath(primary, false) == primary {
		return Comparison{}, fmt.Errorf("%s: %w", LocalPathFor(primary), ErrNoLocal)
	}

	local, err := LoadPreferLocal(primary, false)
	if err != nil {
		return Comparison{}, fmt.Errorf("load local config: %w", err)
	}
	tracked, err := LoadPreferLocal(primary, true)
	if err != nil {
		return Comparison{}, fmt.Errorf("load tracked config: %w", err)
	}

	return compare(local, tracked), nil
}

// ComparePair compares the documents of an already built pair.
func ComparePair(p *Pair) (Comparison, error) {
	if p.Local == nil {
		return Comparison{}, fmt.Errorf("%s: %w", p.LocalPath, ErrNoLocal)
	}
	return compare(p.Local, p.Global), nil
}

func compare(local, tracked *cfgfile.Document) Comparison {
	return Comparison{
		LocalPath:   local.Path(),
		TrackedPath: tracked.Path(),
		LocalOnly:   Diff(local, tracked, LabelLocal),
		TrackedOnly: Diff(tracked, local, LabelTracked),
	}
}
