package constants

const (
	AppName            = "attendo"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/attendo/attendo.db"
	Version            = "v0.1.0"

	// Environment variables
	EnvConfig       = "ATTENDO_CONFIG"
	EnvDebug        = "ATTENDO_DEBUG"
	EnvLogDir       = "ATTENDO_LOG_DIR"
	EnvDBConnection = "ATTENDO_DB_CONNECTION"

	// Log rotation
	LogFileName      = "attendo.log"
	LogMaxSizeMB     = 10
	LogMaxBackups    = 3
	LogMaxAgeDays    = 28
	DefaultLogSubdir = "logs"
)
