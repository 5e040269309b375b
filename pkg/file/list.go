package file

import (
	"bufio"
	"io"
	"strings"
)

// ReadList reads one path per line from r. Line endings and surrounding
// whitespace are trimmed and blank lines are skipped.
func ReadList(r io.Reader) ([]string, error) {
	var paths []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return paths, nil
}
