package engine

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"

	"table-gen/internal/schema"
	"table-gen/internal/tmplsrc"
)

// Generator renders template entries against the table model and writes one
// file per render.
type Generator struct {
	OutDir string
	Ext    string // output extension, e.g. ".go"
	Funcs  template.FuncMap
	// Format runs goimports over .go output.
	Format bool
	// Workers > 1 renders files concurrently; output order and content are unchanged.
	Workers int
	// OnProgress is called after each written file. With Workers > 1 it is
	// called from several goroutines.
	OnProgress func()
}

// Result lists the written files in render order: multi templates by table,
// then single templates.
type Result struct {
	Files []string
}

type task struct {
	name  string // group/name, for errors
	tmpl  *template.Template
	table string
	data  any
	path  string
}

// Generate renders every entry of src. Multi entries render once per table,
// single entries exactly once over the whole list, even when it is empty.
// The first error aborts the run; files already written stay on disk.
func (g *Generator) Generate(ctx context.Context, tables []*schema.Table, src tmplsrc.Source) (*Result, error) {
	entries, err := src.Entries()
	if err != nil {
		return nil, err
	}
	if tables == nil {
		tables = []*schema.Table{}
	}

	tasks, err := g.plan(entries, tables)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(g.OutDir, 0o755); err != nil {
		return nil, &FileWriteError{Path: g.OutDir, Op: "mkdir", Cause: err}
	}

	if g.Workers <= 1 {
		for _, t := range tasks {
			if err := g.run(ctx, t); err != nil {
				return nil, err
			}
		}
	} else {
		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(g.Workers)
		for _, t := range tasks {
			eg.Go(func() error {
				return g.run(egCtx, t)
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	}

	res := &Result{Files: make([]string, len(tasks))}
	for i, t := range tasks {
		res.Files[i] = t.path
	}
	return res, nil
}

// plan parses every entry and lays out the render tasks in baseline order.
func (g *Generator) plan(entries []tmplsrc.Entry, tables []*schema.Table) ([]task, error) {
	var tasks []task
	owners := make(map[string]string)
	add := func(t task) error {
		if prev, ok := owners[t.path]; ok {
			return fmt.Errorf("%w: %s is produced by both %s and %s", ErrOutputConflict, t.path, prev, describe(t))
		}
		owners[t.path] = describe(t)
		tasks = append(tasks, t)
		return nil
	}

	for _, e := range entries {
		name := e.Group.String() + "/" + e.Name
		tmpl, err := template.New(e.Name).Option("missingkey=error").Funcs(g.Funcs).Parse(e.Body)
		if err != nil {
			return nil, &TemplateParseError{Template: name, Cause: err}
		}

		switch e.Group {
		case tmplsrc.Multi:
			for _, tbl := range tables {
				base := strings.ReplaceAll(e.Name, tmplsrc.TableNamePlaceholder, tbl.SnakeName)
				if err := add(task{name: name, tmpl: tmpl, table: tbl.Name, data: tbl, path: g.outPath(base)}); err != nil {
					return nil, err
				}
			}
		case tmplsrc.Single:
			if err := add(task{name: name, tmpl: tmpl, data: tables, path: g.outPath(e.Name)}); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("template %s: unknown group %s", e.Name, e.Group)
		}
	}
	return tasks, nil
}

func (g *Generator) run(ctx context.Context, t task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, t.data); err != nil {
		return &TemplateRenderError{Template: t.name, Table: t.table, Cause: err}
	}
	out := buf.Bytes()
	if g.Format && filepath.Ext(t.path) == ".go" {
		formatted, err := imports.Process(t.path, out, nil)
		if err != nil {
			return &TemplateRenderError{Template: t.name, Table: t.table, Cause: fmt.Errorf("failed to format output: %w", err)}
		}
		out = formatted
	}

	if err := writeFile(t.path, out); err != nil {
		return err
	}
	if g.OnProgress != nil {
		g.OnProgress()
	}
	return nil
}

func (g *Generator) outPath(base string) string {
	ext := g.Ext
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return filepath.Join(g.OutDir, base+ext)
}

func describe(t task) string {
	if t.table == "" {
		return t.name
	}
	return t.name + " (" + t.table + ")"
}
