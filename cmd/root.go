package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"table-gen/internal/dialect"
	"table-gen/internal/schema"
)

var (
	dsn        string
	DB         *sql.DB
	SchemaName string // resolved catalog schema, passed to the Analyzer
	cfgFile    string
	DriverName string // spanner, postgres, pgx, mysql, sqlserver, oracle or sqlite
)

var RootCmd = &cobra.Command{
	Use:   "table-gen",
	Short: "A schema driven code generator",
	Long: `
  _____ _   ___ _    ___     ___ ___ _  _
 |_   _/_\ | _ ) |  | __|   / __| __| \| |
   | |/ _ \| _ \ |__| _|   | (_ | _|| .' |
   |_/_/ \_\___/____|___|   \___|___|_|\_|

TABLE GEN - Database Schema to Source Code Generator
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		bindCommandFlags(cmd.Flags())

		// Flag > Env > Config (database.dsn, then the active databases entry)
		connStr := viper.GetString("database.dsn")
		DriverName = viper.GetString("database.driver")
		if connStr == "" {
			if active, err := GetActiveDBConfig(); err == nil {
				connStr = active.DSN
				if DriverName == "" {
					DriverName = active.Driver
				}
			}
		}
		if connStr == "" {
			return fmt.Errorf("database dsn is required (--dsn, TABLE_GEN_DATABASE_DSN, SPANNER_DSN or config)")
		}
		if DriverName == "" {
			DriverName = detectDriver(connStr)
		}

		var err error
		DB, err = sql.Open(DriverName, connStr)
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}

		SchemaName = viper.GetString("database.schema")
		if SchemaName == "" {
			SchemaName, err = currentSchema(cmd.Context(), DB, DriverName)
			if err != nil {
				return err
			}
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if DB == nil {
			return nil
		}
		return DB.Close()
	},
}

// detectDriver guesses the database/sql driver from the shape of a DSN.
func detectDriver(connStr string) string {
	switch {
	case strings.HasPrefix(connStr, "projects/"):
		return "spanner"
	case strings.Contains(connStr, "postgres") || strings.Contains(connStr, "sslmode"):
		return "postgres"
	case strings.HasPrefix(connStr, "sqlserver://"):
		return "sqlserver"
	case strings.HasPrefix(connStr, "oracle://"):
		return "oracle"
	case strings.HasPrefix(connStr, "file:") || strings.HasSuffix(connStr, ".db") || connStr == ":memory:":
		return "sqlite"
	default:
		return "mysql"
	}
}

// currentSchema resolves the schema to read when none is configured.
// Drivers that ask the server are pinged first so an unreachable server
// reports a schema.ConnectivityError.
func currentSchema(ctx context.Context, db *sql.DB, driver string) (string, error) {
	d := dialect.GetDialect(driver)
	var name string
	switch driver {
	case "mysql", "oracle":
		if err := schema.NewReader(db, d, "").Ping(ctx); err != nil {
			return "", err
		}
	}
	switch driver {
	case "mysql":
		if err := db.QueryRowContext(ctx, "SELECT DATABASE()").Scan(&name); err != nil {
			return "", fmt.Errorf("failed to get database name: %w", err)
		}
		if name == "" {
			return "", fmt.Errorf("no database selected in DSN")
		}
	case "oracle":
		if err := db.QueryRowContext(ctx, "SELECT USER FROM DUAL").Scan(&name); err != nil {
			return "", fmt.Errorf("failed to get current user: %w", err)
		}
	}
	return d.GetSchemaName(name), nil
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := RootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	RootCmd.CompletionOptions.DisableDefaultCmd = true

	// Define flags
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./table-gen.yaml)")
	RootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "Database Source Name (DSN)")
	RootCmd.PersistentFlags().String("driver", "", "database/sql driver name (detected from the DSN when empty)")
	RootCmd.PersistentFlags().String("schema", "", "catalog schema to read (dialect default when empty)")

	// Bind flags to viper
	viper.BindPFlag("database.dsn", RootCmd.PersistentFlags().Lookup("dsn"))
	viper.BindPFlag("database.driver", RootCmd.PersistentFlags().Lookup("driver"))
	viper.BindPFlag("database.schema", RootCmd.PersistentFlags().Lookup("schema"))
	viper.BindEnv("database.dsn", "TABLE_GEN_DATABASE_DSN", "TABLE_GEN_DSN", "SPANNER_DSN")

	// The root command generates too.
	addGenerateFlags(RootCmd.Flags())
	RootCmd.RunE = runGenerate
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			exePath := filepath.Dir(ex)
			viper.AddConfigPath(exePath)
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("table-gen")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("TABLE_GEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
