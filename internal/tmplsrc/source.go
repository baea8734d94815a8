// Package tmplsrc supplies named template bodies grouped for per-table
// ("multi") or whole-catalog ("single") rendering.
package tmplsrc

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Group selects how a template is instantiated.
type Group int

const (
	// Multi templates render once per table.
	Multi Group = iota
	// Single templates render once over the whole table list.
	Single
)

func (g Group) String() string {
	switch g {
	case Multi:
		return "multi"
	case Single:
		return "single"
	default:
		return fmt.Sprintf("Group(%d)", int(g))
	}
}

// TableNamePlaceholder in a multi template's name is replaced by the
// snake-case table name to form the output file name.
const TableNamePlaceholder = "${table_name}"

// Entry is one template: its group, its base name (no extension) and its body.
type Entry struct {
	Group Group
	Name  string
	Body  string
}

// Source yields template entries, all multi entries first, then all single ones.
type Source interface {
	Entries() ([]Entry, error)
}

// Static is a fixed set of entries.
type Static []Entry

func (s Static) Entries() ([]Entry, error) {
	entries := make([]Entry, len(s))
	copy(entries, s)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Group < entries[j].Group
	})
	return entries, nil
}

// scan reads the multi/ and single/ directories of fsys. A missing group
// directory contributes no entries; subdirectories and dot-files are skipped.
func scan(fsys fs.FS) ([]Entry, error) {
	var entries []Entry
	for _, g := range []Group{Multi, Single} {
		dirEntries, err := fs.ReadDir(fsys, g.String())
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to list %s templates: %w", g, err)
		}
		for _, de := range dirEntries {
			name := de.Name()
			if de.IsDir() || strings.HasPrefix(name, ".") {
				continue
			}
			body, err := fs.ReadFile(fsys, path.Join(g.String(), name))
			if err != nil {
				return nil, fmt.Errorf("failed to read template %s/%s: %w", g, name, err)
			}
			entries = append(entries, Entry{
				Group: g,
				Name:  strings.TrimSuffix(name, path.Ext(name)),
				Body:  string(body),
			})
		}
	}
	return entries, nil
}
