package startup

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Entry is one deferred script: the directory to run it in followed by the
// command line.
type Entry struct {
	Dir  string
	Args []string
}

// Queue appends deferred scripts to an install-scripts file. Each line is a
// JSON array whose first element is the working directory.
type Queue struct {
	Path string
}

// Append adds a script to the end of the queue, creating the file and its
// directory when needed.
func (q *Queue) Append(dir string, args []string) error {
	if len(args) == 0 {
		return errors.New("empty command")
	}
	if err := os.MkdirAll(filepath.Dir(q.Path), 0755); err != nil {
		return fmt.Errorf("creating startup directory: %w", err)
	}

	line, err := json.Marshal(append([]string{dir}, args...))
	if err != nil {
		return fmt.Errorf("encoding script: %w", err)
	}

	f, err := os.OpenFile(q.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", q.Path, err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("writing %s: %w", q.Path, err)
	}
	return nil
}

// Entries returns the queued scripts in order. A missing file is an empty
// queue.
func (q *Queue) Entries() ([]Entry, error) {
	f, err := os.Open(q.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", q.Path, err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var fields []string
		if err := json.Unmarshal([]byte(line), &fields); err != nil || len(fields) < 2 {
			return nil, fmt.Errorf("%s:%d: malformed entry", q.Path, n)
		}
		entries = append(entries, Entry{Dir: fields[0], Args: fields[1:]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", q.Path, err)
	}
	return entries, nil
}

// Clear removes each path that exists and returns the ones it removed.
// Missing paths are not an error.
func Clear(paths ...string) ([]string, error) {
	var removed []string
	for _, p := range paths {
		err := os.Remove(p)
		switch {
		case err == nil:
			removed = append(removed, p)
		case os.IsNotExist(err):
		default:
			return removed, fmt.Errorf("removing %s: %w", p, err)
		}
	}
	return removed, nil
}
