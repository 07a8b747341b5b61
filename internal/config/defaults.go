package config

const (
	// DefaultSettingsFile is the settings file read when no --config is given
	DefaultSettingsFile = "appsettings.json"
	// DefaultDialect is the database dialect used when none is configured
	DefaultDialect = "sqlserver"
	// DefaultSchema is the schema that owns test procedures
	DefaultSchema = "Tests"
	// DefaultLogLevel is the log level used when none is configured
	DefaultLogLevel = "Information"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "test-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = ".dbtr"
)

// Settings keys, in the nested form used by the settings file
const (
	KeyConnectionString = "ConnectionStrings:Database"
	KeyDialect          = "Database:Dialect"
	KeySchema           = "Tests:Schema"
	KeyLogLevel         = "Logging:LogLevel:Default"
)

// SupportedDialects are the values accepted for Database:Dialect
var SupportedDialects = []string{"sqlserver", "postgres", "mysql"}
