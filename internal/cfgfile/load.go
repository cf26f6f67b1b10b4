package cfgfile

import (
	"errors"
	"fmt"
	"os"
)

// Load reads and parses the config file at path. Every call reads the file
// from disk.
//
// Returns an error matching ErrNotFound if the file does not exist and one
// matching ErrParse if it exists but is malformed.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(path, data)
}

// Outcome classifies the result of Classify.
type Outcome int

const (
	// Loaded means the file was read and parsed.
	Loaded Outcome = iota
	// Absent means the file does not exist.
	Absent
	// Malformed means the file exists but failed to parse.
	Malformed
	// Unreadable means the file exists but could not be read.
	Unreadable
)

func (o Outcome) String() string {
	switch o {
	case Loaded:
		return "loaded"
	case Absent:
		return "absent"
	case Malformed:
		return "malformed"
	case Unreadable:
		return "unreadable"
	default:
		return "unknown"
	}
}

// Result is the outcome of Classify. Doc is set only when Outcome is Loaded;
// Err is set for every other outcome.
type Result struct {
	Doc     *Document
	Outcome Outcome
	Err     error
}

// Classify loads path and classifies the result, letting callers that treat a
// missing file as normal switch on the outcome instead of error kinds.
func Classify(path string) Result {
	doc, err := Load(path)
	switch {
	case err == nil:
		return Result{Doc: doc, Outcome: Loaded}
	case errors.Is(err, ErrNotFound):
		return Result{Outcome: Absent, Err: err}
	case errors.Is(err, ErrParse):
		return Result{Outcome: Malformed, Err: err}
	default:
		return Result{Outcome: Unreadable, Err: err}
	}
}
