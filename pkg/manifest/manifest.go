package manifest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/mt-inside/flow-check/pkg/state"
)

var (
	ErrOpen = errors.New("error opening file")
	ErrRead = errors.New("error reading file")
)

/* Format, one flow per line
* # comment
* FLOW0001=google.com:80
* FLOW0002=203.0.113.5:514
*
* Whitespace around a line is ignored. Anything that isn't exactly `a=b` is dropped without a word.
 */

// Path is where the manifest for a given host lives: base dir, exactly one separator, host.
// Manifests are a unix thing, so the separator is always '/'.
func Path(baseDir, host string) string {
	if strings.HasSuffix(baseDir, "/") {
		return baseDir + host
	}
	return baseDir + "/" + host
}

// Lines longer than bufio's 64KiB default are legal (eg long comments); this just stops a runaway file eating all memory.
const maxLineLen = 64 * 1024 * 1024

// Reader yields FlowRecords lazily, one line at a time. It can't be rewound.
type Reader struct {
	file    io.Closer
	scanner *bufio.Scanner
	lineNo  int
	record  state.FlowRecord
	err     error
}

func Open(path string) (*Reader, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpen, path, err)
	}

	r := NewReader(fd)
	r.file = fd
	return r, nil
}

func NewReader(rd io.Reader) *Reader {
	scanner := bufio.NewScanner(rd)
	scanner.Split(bufio.ScanLines)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLen)
	return &Reader{scanner: scanner}
}

// Scan advances to the next well-formed flow. It returns false at EOF or on a read error; check Err().
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}

	for r.scanner.Scan() {
		r.lineNo++
		raw := r.scanner.Text()

		if !utf8.ValidString(raw) {
			r.err = fmt.Errorf("%w: line %d: invalid utf-8", ErrRead, r.lineNo)
			return false
		}

		if rec, ok := ParseLine(raw); ok {
			r.record = rec
			return true
		}
	}

	if err := r.scanner.Err(); err != nil {
		r.err = fmt.Errorf("%w: line %d: %w", ErrRead, r.lineNo+1, err)
	}
	return false
}

func (r *Reader) Record() state.FlowRecord {
	return r.record
}

func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	return r.file.Close()
}

// ParseLine applies the per-line rules. ok is false for blanks, comments, and anything that doesn't split into exactly two parts.
func ParseLine(raw string) (rec state.FlowRecord, ok bool) {
	line := strings.TrimSpace(raw)

	if line == "" || strings.HasPrefix(line, "#") {
		return state.FlowRecord{}, false
	}

	parts := strings.Split(line, "=")
	if len(parts) != 2 {
		return state.FlowRecord{}, false
	}

	return state.FlowRecord{ID: parts[0], EndpointSpec: parts[1]}, true
}
