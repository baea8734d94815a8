package cmd

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type DBConfig struct {
	Name   string `mapstructure:"name"`
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Active bool   `mapstructure:"active"`
}

// GetActiveDBConfig returns the currently active database configuration.
func GetActiveDBConfig() (*DBConfig, error) {
	var configs []DBConfig

	if err := viper.UnmarshalKey("databases", &configs); err != nil {
		return nil, fmt.Errorf("failed to parse databases config: %w", err)
	}

	var activeConfig *DBConfig
	count := 0

	for i := range configs {
		if configs[i].Active {
			activeConfig = &configs[i]
			count++
		}
	}

	if count == 0 {
		return nil, fmt.Errorf("no active database found in config (set active: true)")
	}
	if count > 1 {
		return nil, fmt.Errorf("multiple active databases found (only one can be active)")
	}

	return activeConfig, nil
}

// GenerateConfig is the resolved generate section (Flag > Env > Config > Default).
type GenerateConfig struct {
	InputDir      string
	OutputDir     string
	Serialization bool
	Default       bool
	Target        string
	Ext           string
	Format        bool
	Workers       int
	CustomTypes   string
	Tables        []string
	Watch         bool
	Progress      bool
}

// generateKeys maps viper keys to flag names.
var generateKeys = map[string]string{
	"generate.input_dir":    "input_dir",
	"generate.output_dir":   "output_dir",
	"generate.json":         "json",
	"generate.default":      "default",
	"generate.target":       "target",
	"generate.ext":          "ext",
	"generate.format":       "format",
	"generate.workers":      "workers",
	"generate.custom_types": "custom-types",
	"generate.tables":       "tables",
	"generate.watch":        "watch",
	"generate.progress":     "progress",
}

func init() {
	viper.SetDefault("generate.output_dir", "./gen")
	viper.SetDefault("generate.target", "go")
	viper.SetDefault("generate.format", true)
	viper.SetDefault("generate.workers", 1)
}

func addGenerateFlags(fs *pflag.FlagSet) {
	fs.StringP("input_dir", "i", "", "template directory with multi/ and single/ (built-in templates when empty)")
	fs.StringP("output_dir", "o", "./gen", "output directory")
	fs.BoolP("json", "j", false, "enable serialization support in generated code")
	fs.BoolP("default", "d", false, "enable default values in generated code")
	fs.String("target", "go", "target language of the built-in templates and helpers (go, rust)")
	fs.String("ext", "", "output file extension (target default when empty)")
	fs.Bool("format", true, "run goimports over generated .go files")
	fs.Int("workers", 1, "number of files rendered concurrently")
	fs.String("custom-types", "", "YAML file overriding column types")
	fs.StringSliceP("tables", "t", []string{}, "Specific tables to generate (comma-separated)")
	fs.Bool("watch", false, "regenerate when the template directory changes")
	fs.Bool("progress", false, "show a progress bar")
}

// bindCommandFlags binds the generate flags of the running command. Binding
// happens per execution because root and generate both define them.
func bindCommandFlags(fs *pflag.FlagSet) {
	for key, name := range generateKeys {
		if f := fs.Lookup(name); f != nil {
			viper.BindPFlag(key, f)
		}
	}
}

func loadGenerateConfig() GenerateConfig {
	return GenerateConfig{
		InputDir:      viper.GetString("generate.input_dir"),
		OutputDir:     viper.GetString("generate.output_dir"),
		Serialization: viper.GetBool("generate.json"),
		Default:       viper.GetBool("generate.default"),
		Target:        viper.GetString("generate.target"),
		Ext:           viper.GetString("generate.ext"),
		Format:        viper.GetBool("generate.format"),
		Workers:       viper.GetInt("generate.workers"),
		CustomTypes:   viper.GetString("generate.custom_types"),
		Tables:        viper.GetStringSlice("generate.tables"),
		Watch:         viper.GetBool("generate.watch"),
		Progress:      viper.GetBool("generate.progress"),
	}
}
