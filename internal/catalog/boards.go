package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var boardExts = map[string]struct{}{
	".svg":  {},
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".webp": {},
}

// ListBoards returns the sorted file names of the board assets in dir.
// A missing directory is not an error: the allocator falls back to its default board.
func ListBoards(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read boards dir: %w", err)
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := boardExts[strings.ToLower(filepath.Ext(e.Name()))]; ok {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

// IsBoard reports whether name is a plain file name listed in boards.
// Used to refuse path traversal when serving assets.
func IsBoard(boards []string, name string) bool {
	if name != filepath.Base(name) {
		return false
	}
	i := sort.SearchStrings(boards, name)
	return i < len(boards) && boards[i] == name
}
