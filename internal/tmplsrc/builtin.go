package tmplsrc

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed builtin
var builtinFS embed.FS

// Builtin returns the default template pair of a target: one multi template
// rendered to ${table_name} and one single template.
func Builtin(target string) (Static, error) {
	sub, err := fs.Sub(builtinFS, "builtin/"+strings.ToLower(target))
	if err != nil {
		return nil, fmt.Errorf("failed to load built-in templates: %w", err)
	}
	entries, err := scan(sub)
	if err != nil {
		return nil, fmt.Errorf("failed to load built-in templates: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no built-in templates for target %q", target)
	}
	for i := range entries {
		if entries[i].Group == Multi {
			entries[i].Name = TableNamePlaceholder
		}
	}
	return Static(entries), nil
}
