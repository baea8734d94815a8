package engine_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"table-gen/internal/engine"
	"table-gen/internal/helper"
	"table-gen/internal/schema"
	"table-gen/internal/tmplsrc"
)

func userAccount(t *testing.T, opts schema.Options) []*schema.Table {
	t.Helper()
	tables, err := schema.Build(&schema.Snapshot{
		Tables: []schema.RawTable{{Name: "UserAccount"}},
		Columns: map[string][]schema.RawColumn{
			"UserAccount": {
				{Name: "user_id", OrdinalPosition: 1, NativeType: "INT64", PrimaryKey: true},
				{Name: "display_name", OrdinalPosition: 2, NativeType: "STRING(MAX)", Nullable: true},
				{Name: "created_at", OrdinalPosition: 3, NativeType: "TIMESTAMP"},
			},
		},
	}, opts)
	require.NoError(t, err)
	return tables
}

func manyTables(t *testing.T, n int) []*schema.Table {
	t.Helper()
	snap := &schema.Snapshot{Columns: map[string][]schema.RawColumn{}}
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("Table%02d", i)
		snap.Tables = append(snap.Tables, schema.RawTable{Name: name})
		snap.Columns[name] = []schema.RawColumn{{Name: "id", OrdinalPosition: 1, NativeType: "INT64", PrimaryKey: true}}
	}
	tables, err := schema.Build(snap, schema.Options{})
	require.NoError(t, err)
	return tables
}

func newGenerator(t *testing.T, target *helper.Target) *engine.Generator {
	return &engine.Generator{
		OutDir: filepath.Join(t.TempDir(), "gen"),
		Ext:    target.Ext,
		Funcs:  helper.New(target).FuncMap(),
	}
}

const createdAtType = `{{ with .Column "created_at" }}{{ type .NativeType }}{{ end }}`

func TestGenerate_UserAccount(t *testing.T) {
	src := tmplsrc.Static{{Group: tmplsrc.Multi, Name: tmplsrc.TableNamePlaceholder, Body: createdAtType}}

	for target, want := range map[*helper.Target]string{
		helper.Go:   "time.Time",
		helper.Rust: "chrono::DateTime<chrono::Utc>",
	} {
		g := newGenerator(t, target)
		res, err := g.Generate(context.Background(), userAccount(t, schema.Options{}), src)
		require.NoError(t, err)

		path := filepath.Join(g.OutDir, "user_account"+target.Ext)
		assert.Equal(t, []string{path}, res.Files)
		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, want, string(got))
	}
}

func TestGenerate_FileCounts(t *testing.T) {
	src := tmplsrc.Static{
		{Group: tmplsrc.Multi, Name: "${table_name}", Body: "{{ .Name }}"},
		{Group: tmplsrc.Multi, Name: "${table_name}_repo", Body: "{{ .SnakeName }}"},
		{Group: tmplsrc.Single, Name: "mod", Body: "{{ len . }}"},
		{Group: tmplsrc.Single, Name: "tables", Body: "{{ range . }}{{ .Name }}\n{{ end }}"},
	}

	for _, n := range []int{0, 1, 3} {
		t.Run(fmt.Sprintf("%d tables", n), func(t *testing.T) {
			g := newGenerator(t, helper.Rust)
			res, err := g.Generate(context.Background(), manyTables(t, n), src)
			require.NoError(t, err)
			assert.Len(t, res.Files, n*2+2)

			written, err := os.ReadDir(g.OutDir)
			require.NoError(t, err)
			assert.Len(t, written, n*2+2)

			mod, err := os.ReadFile(filepath.Join(g.OutDir, "mod.rs"))
			require.NoError(t, err)
			assert.Equal(t, fmt.Sprint(n), string(mod))
		})
	}
}

func TestGenerate_NilTablesStillRendersSingle(t *testing.T) {
	g := newGenerator(t, helper.Go)
	res, err := g.Generate(context.Background(), nil, tmplsrc.Static{
		{Group: tmplsrc.Single, Name: "tables", Body: "n={{ len . }}"},
	})
	require.NoError(t, err)
	require.Len(t, res.Files, 1)
	got, err := os.ReadFile(res.Files[0])
	require.NoError(t, err)
	assert.Equal(t, "n=0", string(got))
}

func TestGenerate_Idempotent(t *testing.T) {
	src, err := tmplsrc.Builtin("go")
	require.NoError(t, err)
	g := newGenerator(t, helper.Go)
	tables := userAccount(t, schema.Options{Serialization: true, Default: true})

	res, err := g.Generate(context.Background(), tables, src)
	require.NoError(t, err)
	first := readAll(t, res.Files)

	res, err = g.Generate(context.Background(), tables, src)
	require.NoError(t, err)
	assert.Equal(t, first, readAll(t, res.Files))
}

func TestGenerate_BuiltinGo(t *testing.T) {
	src, err := tmplsrc.Builtin("go")
	require.NoError(t, err)
	g := newGenerator(t, helper.Go)
	g.Format = true

	res, err := g.Generate(context.Background(), userAccount(t, schema.Options{Serialization: true, Default: true}), src)
	require.NoError(t, err)
	require.Len(t, res.Files, 2)
	assert.Equal(t, filepath.Join(g.OutDir, "user_account.go"), res.Files[0])
	assert.Equal(t, filepath.Join(g.OutDir, "tables.go"), res.Files[1])

	model := readAll(t, res.Files[:1])[0]
	assert.Contains(t, model, "type UserAccount struct {")
	assert.Contains(t, model, "CreatedAt   time.Time")
	assert.Contains(t, model, "DisplayName *string")
	assert.Contains(t, model, `json:"display_name,omitempty"`)
	assert.Contains(t, model, "func UserAccountKey1(userID int64) spanner.Key {")
	assert.Contains(t, model, "CreatedAt:   time.Now(),")
	assert.NotContains(t, model, `"math/big"`)

	tablesFile := readAll(t, res.Files[1:])[0]
	assert.Contains(t, tablesFile, `"UserAccount",`)
}

func TestGenerate_BuiltinRust(t *testing.T) {
	src, err := tmplsrc.Builtin("rust")
	require.NoError(t, err)
	tables, err := schema.Build(&schema.Snapshot{
		Tables: []schema.RawTable{{Name: "TenantRecord"}},
		Columns: map[string][]schema.RawColumn{
			"TenantRecord": {
				{Name: "tenant_id", OrdinalPosition: 1, NativeType: "INT64", PrimaryKey: true},
				{Name: "record_id", OrdinalPosition: 2, NativeType: "STRING(36)", PrimaryKey: true},
				{Name: "payload", OrdinalPosition: 3, NativeType: "BYTES(MAX)", Nullable: true},
			},
		},
	}, schema.Options{Serialization: true, Default: true})
	require.NoError(t, err)

	g := newGenerator(t, helper.Rust)
	res, err := g.Generate(context.Background(), tables, src)
	require.NoError(t, err)
	require.Len(t, res.Files, 2)
	assert.Equal(t, filepath.Join(g.OutDir, "mod.rs"), res.Files[1])

	files := readAll(t, res.Files)
	model, mod := files[0], files[1]
	assert.Contains(t, model, "serde::Serialize")
	assert.Contains(t, model, "pub payload: Option<Vec<u8>>,")
	assert.Contains(t, model, "pub fn key1(tenant_id: i64) -> Vec<String>")
	assert.Contains(t, model, "pub fn key2(tenant_id: i64, record_id: &str) -> Vec<String>")
	assert.Contains(t, model, "impl Default for TenantRecord")
	assert.Contains(t, mod, "pub mod tenant_record;")
}

func TestGenerate_Errors(t *testing.T) {
	tables := userAccount(t, schema.Options{})

	t.Run("parse", func(t *testing.T) {
		g := newGenerator(t, helper.Go)
		_, err := g.Generate(context.Background(), tables, tmplsrc.Static{
			{Group: tmplsrc.Multi, Name: "${table_name}", Body: "{{ .Name"},
		})
		require.Error(t, err)
		assert.True(t, engine.IsTemplateParseError(err))
		assert.ErrorIs(t, err, engine.ErrTemplateParse)
		_, statErr := os.Stat(g.OutDir)
		assert.True(t, os.IsNotExist(statErr), "nothing is written before all templates parse")
	})

	t.Run("render", func(t *testing.T) {
		g := newGenerator(t, helper.Go)
		_, err := g.Generate(context.Background(), tables, tmplsrc.Static{
			{Group: tmplsrc.Multi, Name: "${table_name}", Body: "{{ .Missing }}"},
		})
		require.Error(t, err)
		var renderErr *engine.TemplateRenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, "UserAccount", renderErr.Table)
		assert.Equal(t, "multi/${table_name}", renderErr.Template)
		assert.ErrorIs(t, err, engine.ErrTemplateRender)
	})

	t.Run("unknown func", func(t *testing.T) {
		g := newGenerator(t, helper.Go)
		_, err := g.Generate(context.Background(), tables, tmplsrc.Static{
			{Group: tmplsrc.Single, Name: "x", Body: "{{ no_such_helper . }}"},
		})
		assert.True(t, engine.IsTemplateParseError(err))
	})

	t.Run("mkdir", func(t *testing.T) {
		g := newGenerator(t, helper.Go)
		require.NoError(t, os.WriteFile(g.OutDir, nil, 0o644))
		_, err := g.Generate(context.Background(), tables, tmplsrc.Static{
			{Group: tmplsrc.Single, Name: "x", Body: "x"},
		})
		var writeErr *engine.FileWriteError
		require.ErrorAs(t, err, &writeErr)
		assert.Equal(t, "mkdir", writeErr.Op)
	})

	t.Run("create", func(t *testing.T) {
		g := newGenerator(t, helper.Go)
		require.NoError(t, os.MkdirAll(filepath.Join(g.OutDir, "x.go"), 0o755))
		_, err := g.Generate(context.Background(), tables, tmplsrc.Static{
			{Group: tmplsrc.Single, Name: "x", Body: "x"},
		})
		var writeErr *engine.FileWriteError
		require.ErrorAs(t, err, &writeErr)
		assert.Equal(t, "create", writeErr.Op)
		assert.True(t, engine.IsFileWriteError(err))
		assert.ErrorIs(t, err, engine.ErrFileWrite)
	})

	t.Run("conflict", func(t *testing.T) {
		g := newGenerator(t, helper.Go)
		_, err := g.Generate(context.Background(), manyTables(t, 2), tmplsrc.Static{
			{Group: tmplsrc.Multi, Name: "model", Body: "x"},
		})
		assert.ErrorIs(t, err, engine.ErrOutputConflict)
	})

	t.Run("aborts on first failure", func(t *testing.T) {
		g := newGenerator(t, helper.Go)
		_, err := g.Generate(context.Background(), manyTables(t, 3), tmplsrc.Static{
			{Group: tmplsrc.Multi, Name: "${table_name}", Body: `{{ if eq .Name "Table01" }}{{ .Missing }}{{ end }}ok`},
			{Group: tmplsrc.Single, Name: "mod", Body: "x"},
		})
		require.Error(t, err)
		_, statErr := os.Stat(filepath.Join(g.OutDir, "table00.go"))
		assert.NoError(t, statErr, "files written before the failure stay on disk")
		_, statErr = os.Stat(filepath.Join(g.OutDir, "table02.go"))
		assert.True(t, os.IsNotExist(statErr))
		_, statErr = os.Stat(filepath.Join(g.OutDir, "mod.go"))
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestGenerate_Workers(t *testing.T) {
	src := tmplsrc.Static{
		{Group: tmplsrc.Multi, Name: "${table_name}", Body: "{{ .Name }}"},
		{Group: tmplsrc.Single, Name: "mod", Body: "{{ len . }}"},
	}
	tables := manyTables(t, 20)

	seq := newGenerator(t, helper.Go)
	want, err := seq.Generate(context.Background(), tables, src)
	require.NoError(t, err)

	var progress atomic.Int64
	par := newGenerator(t, helper.Go)
	par.Workers = 4
	par.OnProgress = func() { progress.Add(1) }
	got, err := par.Generate(context.Background(), tables, src)
	require.NoError(t, err)

	assert.Equal(t, int64(21), progress.Load())
	require.Len(t, got.Files, len(want.Files))
	for i := range want.Files {
		assert.Equal(t, filepath.Base(want.Files[i]), filepath.Base(got.Files[i]))
	}
	assert.Equal(t, readAll(t, want.Files), readAll(t, got.Files))
}

func TestGenerate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := newGenerator(t, helper.Go)
	_, err := g.Generate(ctx, manyTables(t, 2), tmplsrc.Static{
		{Group: tmplsrc.Multi, Name: "${table_name}", Body: "x"},
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func readAll(t *testing.T, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		b, err := os.ReadFile(p)
		require.NoError(t, err)
		out[i] = string(b)
	}
	return out
}

func settingTables(t *testing.T) []*schema.Table {
	t.Helper()
	tables, err := schema.Build(&schema.Snapshot{
		Tables: []schema.RawTable{{Name: "Setting"}, {Name: "Type"}},
		Columns: map[string][]schema.RawColumn{
			"Setting": {
				{Name: "Type", OrdinalPosition: 1, NativeType: "STRING(64)", PrimaryKey: true},
				{Name: "Value", OrdinalPosition: 2, NativeType: "STRING(MAX)", Nullable: true},
			},
			"Type": {{Name: "id", OrdinalPosition: 1, NativeType: "INT64", PrimaryKey: true}},
		},
	}, schema.Options{Default: true})
	require.NoError(t, err)
	return tables
}

func TestGenerate_BuiltinGoKeywordKey(t *testing.T) {
	src, err := tmplsrc.Builtin("go")
	require.NoError(t, err)
	g := newGenerator(t, helper.Go)
	g.Format = true

	res, err := g.Generate(context.Background(), settingTables(t)[:1], src)
	require.NoError(t, err)

	model := readAll(t, res.Files[:1])[0]
	assert.Contains(t, model, "func SettingKey1(type_ string) spanner.Key {")
	assert.Contains(t, model, "spanner.Key{type_}")
}

func TestGenerate_BuiltinRustKeywordNames(t *testing.T) {
	src, err := tmplsrc.Builtin("rust")
	require.NoError(t, err)
	g := newGenerator(t, helper.Rust)

	res, err := g.Generate(context.Background(), settingTables(t), src)
	require.NoError(t, err)
	require.Len(t, res.Files, 3)

	files := readAll(t, res.Files)
	assert.Contains(t, files[0], "pub type_: String,")
	assert.Contains(t, files[0], "pub fn key1(type_: &str) -> Vec<String>")
	assert.Contains(t, files[0], "type_: Default::default(),")
	assert.Contains(t, files[2], "pub mod r#type;")
}
