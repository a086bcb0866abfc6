package content

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/verte-zerg/typecrab/internal/model"
)

// LoadLines reads non-empty trimmed lines from the provided file path.
func LoadLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrContent, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only content.
			_ = cerr
		}
	}()
	return readLines(file, path)
}

func loadFSLines(fsys fs.FS, name string) ([]string, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrContent, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			_ = cerr
		}
	}()
	return readLines(file, name)
}

func readLines(r io.Reader, name string) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", model.ErrContent, name, err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", model.ErrContent, name)
	}
	return lines, nil
}

// splitWords flattens lines into whitespace separated words.
func splitWords(lines []string, keep FilterFunc) []string {
	var words []string
	for _, line := range lines {
		for _, w := range strings.Fields(line) {
			if keep(w) {
				words = append(words, w)
			}
		}
	}
	return words
}
