package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/raphi011/cfgpair/internal/cfgfile"
	"github.com/raphi011/cfgpair/internal/log"
)

// LocalSuffix is inserted before the extension of the tracked file name to
// form the local override file name.
const LocalSuffix = "_local"

// Pair is a tracked (global) document plus its optional local override.
// It is immutable after BuildPair and safe to share between goroutines.
type Pair struct {
	Global     *cfgfile.Document
	Local      *cfgfile.Document // nil when no local file exists
	GlobalPath string
	LocalPath  string // the path that was tried for Local
}

// HasLocal reports whether a local override file was loaded.
func (p *Pair) HasLocal() bool {
	return p.Local != nil
}

// PairOption configures BuildPair.
type PairOption func(*pairOptions)

type pairOptions struct {
	localPath string
	logger    *log.Logger
}

// WithLocalPath uses path for the local document instead of the derived
// sibling.
func WithLocalPath(path string) PairOption {
	return func(o *pairOptions) {
		o.localPath = path
	}
}

// WithLogger sets the logger that receives the missing-local warning.
func WithLogger(l *log.Logger) PairOption {
	return func(o *pairOptions) {
		o.logger = l
	}
}

// BuildPair loads the tracked document at primary and its local sibling.
//
// Any failure loading primary is fatal. A missing local file only logs a
// warning and yields a Pair with Local == nil; a malformed or unreadable local
// file is fatal.
func BuildPair(primary string, opts ...PairOption) (*Pair, error) {
	o := pairOptions{logger: log.New(io.Discard, false, false)}
	for _, opt := range opts {
		opt(&o)
	}

	localPath := o.localPath
	if localPath == "" {
		localPath = LocalPathFor(primary)
	}

	global, err := cfgfile.Load(primary)
	if err != nil {
		return nil, fmt.Errorf("load global config: %w", err)
	}

	pair := &Pair{
		Global:     global,
		GlobalPath: primary,
		LocalPath:  localPath,
	}

	res := cfgfile.Classify(localPath)
	switch res.Outcome {
	case cfgfile.Loaded:
		pair.Local = res.Doc
	case cfgfile.Absent:
		o.logger.Warn("no local override found", "path", localPath)
	default:
		return nil, fmt.Errorf("load local config: %w", res.Err)
	}

	o.logger.Debug("loaded config pair", "global", primary, "local", localPath, "has_local", pair.HasLocal())
	return pair, nil
}

// LocalPathFor derives the local override path for a tracked file:
// "conf/app.cfg" becomes "conf/app_local.cfg" and "app" becomes "app_local".
func LocalPathFor(primary string) string {
	dir, file := filepath.Split(primary)
	ext := filepath.Ext(file)
	return dir + strings.TrimSuffix(file, ext) + LocalSuffix + ext
}

// LocalSiblingPath returns the local override path when it is a regular file
// on disk or forceLocal is set, otherwise primary unchanged. It does not load
// anything.
func LocalSiblingPath(primary string, forceLocal bool) string {
	local := LocalPathFor(primary)
	if forceLocal {
		return local
	}
	if info, err := os.Stat(local); err == nil && info.Mode().IsRegular() {
		return local
	}
	return primary
}

// LoadPreferLocal loads a single document: the local sibling when it exists,
// otherwise the tracked file. trackedOnly always loads the tracked file.
//
// Deprecated: lookups should go through BuildPair and a Resolver, which keep
// both documents and fall back key by key.
func LoadPreferLocal(primary string, trackedOnly bool) (*cfgfile.Document, error) {
	path := primary
	if !trackedOnly {
		path = LocalSiblingPath(primary, false)
	}
	return cfgfile.Load(path)
}
