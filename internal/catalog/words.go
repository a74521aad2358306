// Package catalog loads the static word and board catalogs the game draws from.
package catalog

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed words.txt
var embeddedWords string

var ErrNoWords = errors.New("word catalog is empty")

// LoadWords reads the word catalog from path, or the embedded default list when path is empty.
// Words are lower-cased and de-duplicated; blank lines and # comments are skipped.
func LoadWords(path string) ([]string, error) {
	if path == "" {
		return parseWords(strings.NewReader(embeddedWords))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word catalog: %w", err)
	}
	defer f.Close()
	return parseWords(f)
}

func parseWords(r io.Reader) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.ToLower(strings.TrimSpace(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read word catalog: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrNoWords
	}
	return out, nil
}
