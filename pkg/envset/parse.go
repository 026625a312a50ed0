package envset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// ReadError is returned by [ReadFile] when a source cannot be read.
// The accompanying set is always empty and safe to use.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// NotFound reports whether the source does not exist.
func (e *ReadError) NotFound() bool {
	return errors.Is(e.Err, fs.ErrNotExist)
}

// Parse reads dotenv lines from r. Lines end at "\n", "\r\n" or a lone "\r"
// and have no length limit. Lines without '=' are skipped and a repeated key
// keeps its last value.
func Parse(r io.Reader) (Set, error) {
	set := make(Set)
	reader := bufio.NewReader(r)
	for {
		chunk, err := reader.ReadString('\n')
		for _, line := range strings.Split(chunk, "\r") {
			key, value, ok := parseLine(line)
			if !ok {
				continue
			}
			set[key] = value
		}
		if errors.Is(err, io.EOF) {
			return set, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func parseLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), true
}

// ReadFile parses the file at path. If the file cannot be opened or read it
// returns an empty set and a *ReadError; callers decide whether that is fatal.
func ReadFile(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return Set{}, &ReadError{Path: path, Err: err}
	}
	defer func() {
		_ = f.Close()
	}()

	set, err := Parse(f)
	if err != nil {
		return Set{}, &ReadError{Path: path, Err: err}
	}
	return set, nil
}
