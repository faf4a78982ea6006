package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrListFileNotFound is returned when the URL list file does not exist
var ErrListFileNotFound = errors.New("list file not found")

// ReadURLList reads one URL per line from path, ignoring blank lines and
// lines starting with '#'.
func ReadURLList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrListFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to open list file: %w", err)
	}
	defer f.Close()

	return ParseURLList(f)
}

// ParseURLList parses the list format from r
func ParseURLList(r io.Reader) ([]string, error) {
	var urls []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read list file: %w", err)
	}
	return urls, nil
}
