package changelog

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Separator lines of six or more dashes split changelog entries; the
// prefix alone is enough to recognize one.
const separatorPrefix = "------"

// Record reads the line-oriented changelog file shipped next to the
// binary. The file is re-read on every call so a deploy can update it
// without a restart.
type Record struct {
	path string
}

func NewRecord(path string) *Record {
	return &Record{path: strings.TrimSpace(path)}
}

// Version returns the first line of the changelog.
func (r *Record) Version() (string, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return "", fmt.Errorf("open changelog: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", fmt.Errorf("read changelog: %w", err)
		}
		return "", nil
	}
	return strings.TrimSpace(sc.Text()), nil
}

// Current returns every line up to (not including) the first separator,
// i.e. the newest entry.
func (r *Record) Current() (string, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return "", fmt.Errorf("open changelog: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, separatorPrefix) {
			break
		}
		lines = append(lines, strings.TrimSpace(line))
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("read changelog: %w", err)
	}
	return strings.Join(lines, "\n"), nil
}
