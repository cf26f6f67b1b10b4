package logsetup

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
)

// keepAll is the age limit used when no backup count is configured.
const keepAll = 100 * 365 * 24 * time.Hour

// schedule describes how often a log file is rotated and how rotated files
// are named.
type schedule struct {
	interval time.Duration
	layout   string // strftime suffix appended to the link name
}

// parseFreq parses a rotation frequency: S, M, H, D or MIDNIGHT.
//
// D and MIDNIGHT both start a new file at local midnight.
func parseFreq(freq string) (schedule, error) {
	switch strings.ToUpper(strings.TrimSpace(freq)) {
	case "S":
		return schedule{interval: time.Second, layout: "%Y-%m-%d_%H-%M-%S"}, nil
	case "M":
		return schedule{interval: time.Minute, layout: "%Y-%m-%d_%H-%M"}, nil
	case "H":
		return schedule{interval: time.Hour, layout: "%Y-%m-%d_%H"}, nil
	case "D", "MIDNIGHT":
		return schedule{interval: 24 * time.Hour, layout: "%Y-%m-%d"}, nil
	}
	return schedule{}, fmt.Errorf("unknown log_freq %q: must be S, M, H, D or MIDNIGHT", freq)
}

var strftimeVerb = regexp.MustCompile(`%[A-Za-z]`)

// glob matches every file name the schedule produces for path.
func (s schedule) glob(path string) string {
	return path + "." + strftimeVerb.ReplaceAllString(s.layout, "*")
}

// RotatingFile is an io.WriteCloser that writes to one file per period,
// named <path>.<period>, and keeps path as a symlink to the current one.
type RotatingFile struct {
	mu     sync.Mutex
	path   string
	sched  schedule
	logs   *rotatelogs.RotateLogs
	closed bool
}

// OpenRotating opens the current period's file behind path and rotates it
// according to freq. backups <= 0 keeps every rotated file.
func OpenRotating(path, freq string, backups int) (*RotatingFile, error) {
	return openRotating(path, freq, backups, rotatelogs.Local)
}

func openRotating(path, freq string, backups int, clock rotatelogs.Clock) (*RotatingFile, error) {
	sched, err := parseFreq(freq)
	if err != nil {
		return nil, err
	}

	opts := []rotatelogs.Option{
		rotatelogs.WithLinkName(path),
		rotatelogs.WithRotationTime(sched.interval),
		rotatelogs.WithClock(clock),
	}
	if backups > 0 {
		// The count includes the file being written.
		opts = append(opts, rotatelogs.WithMaxAge(-1), rotatelogs.WithRotationCount(uint(backups+1)))
	} else {
		opts = append(opts, rotatelogs.WithMaxAge(keepAll))
	}

	logs, err := rotatelogs.New(path+"."+sched.layout, opts...)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	// Create the file and link up front so an idle logger still leaves one.
	if _, err := logs.Write(nil); err != nil {
		logs.Close()
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &RotatingFile{path: path, sched: sched, logs: logs}, nil
}

// Path returns the link to the active log file.
func (rf *RotatingFile) Path() string {
	return rf.path
}

// Write implements io.Writer.
func (rf *RotatingFile) Write(p []byte) (int, error) {
	rf.mu.Lock()
	defer rf.mu.Unlock()

	if rf.closed {
		return 0, os.ErrClosed
	}
	return rf.logs.Write(p)
}

// Close implements io.Closer.
func (rf *RotatingFile) Close() error {
	rf.mu.Lock()
	defer rf.mu.Unlock()

	if rf.closed {
		return nil
	}
	rf.closed = true
	return rf.logs.Close()
}

// backupFiles lists rotated files other than the active one, oldest first.
func (rf *RotatingFile) backupFiles() ([]string, error) {
	matches, err := filepath.Glob(rf.sched.glob(rf.path))
	if err != nil {
		return nil, fmt.Errorf("list log directory: %w", err)
	}

	current := rf.logs.CurrentFileName()
	var files []string
	for _, m := range matches {
		if m == current || strings.HasSuffix(m, "_lock") || strings.HasSuffix(m, "_symlink") {
			continue
		}
		files = append(files, m)
	}
	// Layouts sort lexically in time order.
	slices.Sort(files)
	return files, nil
}
