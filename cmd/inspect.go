package cmd

import (
	"io"
	"log"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"table-gen/internal/dialect"
	"table-gen/internal/helper"
	"table-gen/internal/schema"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the table model read from the database as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		d := dialect.GetDialect(DriverName)
		log.Printf("Using Dialect: %s\n", d.Name())

		log.Println("Analyzing schema...")
		opts := schema.Options{Serialization: cfg.Serialization, Default: cfg.Default}
		allTables, err := schema.Analyze(cmd.Context(), DB, d, SchemaName, opts, custom)
		if err != nil {
			return err
		}
		tables, err := filterTables(allTables, cfg.Tables)
		if err != nil {
			return err
		}
		return writeInspect(cmd.OutOrStdout(), tables, helper.New(target))
	},
}

type inspectTable struct {
	Name       string          `yaml:"name"`
	Parent     string          `yaml:"parent,omitempty"`
	File       string          `yaml:"file"`
	PrimaryKey []string        `yaml:"primary_key,flow"`
	Columns    []inspectColumn `yaml:"columns"`
	Indexes    []inspectIndex  `yaml:"indexes,omitempty"`
}

type inspectColumn struct {
	Name            string `yaml:"name"`
	NativeType      string `yaml:"native_type"`
	Type            string `yaml:"type"`
	Nullable        bool   `yaml:"nullable,omitempty"`
	Generated       bool   `yaml:"generated,omitempty"`
	CommitTimestamp bool   `yaml:"commit_timestamp,omitempty"`
}

type inspectIndex struct {
	Name    string   `yaml:"name"`
	Unique  bool     `yaml:"unique,omitempty"`
	Columns []string `yaml:"columns,flow"`
	Storing []string `yaml:"storing,flow,omitempty"`
}

// writeInspect renders the model the way templates see it: catalog names,
// converted names and mapped types.
func writeInspect(w io.Writer, tables []*schema.Table, reg *helper.Registry) error {
	out := make([]inspectTable, 0, len(tables))
	for _, t := range tables {
		it := inspectTable{
			Name:       t.Name,
			Parent:     t.ParentTableName,
			File:       t.SnakeName + reg.Target().Ext,
			PrimaryKey: []string{},
		}
		for _, pk := range t.PrimaryKeys {
			it.PrimaryKey = append(it.PrimaryKey, pk.Column.Name)
		}
		for _, c := range t.Columns {
			it.Columns = append(it.Columns, inspectColumn{
				Name:            c.Name,
				NativeType:      c.NativeType,
				Type:            reg.FieldType(c),
				Nullable:        c.Nullable,
				Generated:       c.Generated,
				CommitTimestamp: c.AllowCommitTimestamp,
			})
		}
		for _, idx := range t.Indexes {
			ii := inspectIndex{Name: idx.Name, Unique: idx.Unique, Columns: []string{}, Storing: idx.Storing}
			for _, c := range idx.Columns {
				ii.Columns = append(ii.Columns, c.Name)
			}
			it.Indexes = append(it.Indexes, ii)
		}
		out = append(out, it)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return err
	}
	return enc.Close()
}

func init() {
	RootCmd.AddCommand(inspectCmd)
	addGenerateFlags(inspectCmd.Flags())
}
