package dialect

// GetDialect returns the appropriate Dialect implementation based on driver name.
func GetDialect(driver string) Dialect {
	switch driver {
	case "postgres", "pgx":
		return &PostgresDialect{driver: driver}
	case "sqlserver", "mssql":
		return &MSSQLDialect{driver: driver}
	case "oracle":
		return &OracleDialect{}
	case "mysql":
		return &MysqlDialect{}
	case "sqlite", "sqlite3":
		return &SQLiteDialect{driver: driver}
	default: // spanner
		return &SpannerDialect{}
	}
}

// Ensure interface implementation
var _ Dialect = (*SpannerDialect)(nil)
var _ Dialect = (*MysqlDialect)(nil)
var _ Dialect = (*PostgresDialect)(nil)
var _ Dialect = (*MSSQLDialect)(nil)
var _ Dialect = (*OracleDialect)(nil)
var _ Dialect = (*SQLiteDialect)(nil)
