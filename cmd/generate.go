package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"

	"table-gen/internal/dialect"
	"table-gen/internal/engine"
	"table-gen/internal/helper"
	"table-gen/internal/schema"
	"table-gen/internal/tmplsrc"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate source files from the database schema",
	RunE:  runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := loadGenerateConfig()

	target, err := helper.LookupTarget(cfg.Target)
	if err != nil {
		return err
	}
	var custom schema.CustomTypes
	if cfg.CustomTypes != "" {
		if custom, err = schema.LoadCustomTypes(cfg.CustomTypes); err != nil {
			return err
		}
	}

	var src tmplsrc.Source
	if cfg.InputDir != "" {
		src = tmplsrc.Dir(cfg.InputDir)
	} else {
		if src, err = tmplsrc.Builtin(target.Name); err != nil {
			return err
		}
	}
	if cfg.Watch && cfg.InputDir == "" {
		return fmt.Errorf("--watch requires --input_dir")
	}

	ext := cfg.Ext
	if ext == "" {
		ext = target.Ext
	}

	d := dialect.GetDialect(DriverName)
	log.Printf("Using Dialect: %s\n", d.Name())

	gen := &engine.Generator{
		OutDir:  cfg.OutputDir,
		Ext:     ext,
		Funcs:   helper.New(target).FuncMap(),
		Format:  cfg.Format,
		Workers: cfg.Workers,
	}
	opts := schema.Options{Serialization: cfg.Serialization, Default: cfg.Default}

	run := func(ctx context.Context) error {
		// 1. Analyze
		log.Println("Analyzing schema...")
		allTables, err := schema.Analyze(ctx, DB, d, SchemaName, opts, custom)
		if err != nil {
			return err
		}
		tables, err := filterTables(allTables, cfg.Tables)
		if err != nil {
			return err
		}

		log.Printf("Starting generation for %d tables into %s...", len(tables), cfg.OutputDir)
		start := time.Now()

		// 2. Setup Progress Bar
		gen.OnProgress = nil
		if cfg.Progress {
			total, err := countFiles(src, len(tables))
			if err != nil {
				return err
			}
			uiprogress.Start()
			bar := uiprogress.AddBar(total).AppendCompleted().PrependElapsed()
			bar.PrependFunc(func(b *uiprogress.Bar) string {
				return "Rendering: "
			})
			gen.OnProgress = func() {
				bar.Incr()
			}
		}

		// 3. Render
		res, err := gen.Generate(ctx, tables, src)
		if cfg.Progress {
			uiprogress.Stop()
		}
		if err != nil {
			return err
		}

		// 4. Final Report
		fmt.Println("\n📊 Summary Report:")
		for i, f := range res.Files {
			fmt.Printf("[✓] [%02d/%02d] %s\n", i+1, len(res.Files), f)
		}
		fmt.Println("--------------------------------------------------")
		fmt.Printf("Total Files: %d\n", len(res.Files))
		log.Printf("Generate Done! Time Elapsed: %s", time.Since(start))
		return nil
	}

	if err := run(cmd.Context()); err != nil {
		return err
	}
	if cfg.Watch {
		return engine.Watch(cmd.Context(), cfg.InputDir, run)
	}
	return nil
}

// filterTables keeps the requested tables (case-insensitive) in catalog order.
// An empty request keeps everything.
func filterTables(all []*schema.Table, names []string) ([]*schema.Table, error) {
	if len(names) == 0 {
		return all, nil
	}
	reqTables := make(map[string]bool)
	for _, t := range names {
		reqTables[strings.ToLower(t)] = true
	}

	var out []*schema.Table
	for _, t := range all {
		if reqTables[strings.ToLower(t.Name)] {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no matching tables found for inputs: %v", names)
	}
	return out, nil
}

// countFiles is the number of files a run will write.
func countFiles(src tmplsrc.Source, tables int) (int, error) {
	entries, err := src.Entries()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if e.Group == tmplsrc.Multi {
			n += tables
		} else {
			n++
		}
	}
	return n, nil
}

func init() {
	RootCmd.AddCommand(generateCmd)
	addGenerateFlags(generateCmd.Flags())
}
