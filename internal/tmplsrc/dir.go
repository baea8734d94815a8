package tmplsrc

import (
	"fmt"
	"os"
)

// Dir is a template directory holding multi/ and single/ subdirectories.
type Dir string

func (d Dir) Entries() ([]Entry, error) {
	info, err := os.Stat(string(d))
	if err != nil {
		return nil, fmt.Errorf("failed to open template directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("failed to open template directory: %s is not a directory", d)
	}
	return scan(os.DirFS(string(d)))
}
