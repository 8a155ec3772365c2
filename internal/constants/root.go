package constants

const (
	AppName            = "habitual"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/habitual/habitual.db"
	Version            = "v0.2.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat is the month format used by the calendar views (YYYY-MM)
	MonthFormat = "2006-01"

	// DefaultUserID identifies the local profile. Authentication is an
	// external concern; the CLI always runs as a single local profile.
	DefaultUserID = "local"

	// DefaultTimezone resolves to the system timezone.
	DefaultTimezone = "Local"

	// ConnectionEnvVar overrides the storage location when set.
	ConnectionEnvVar = "HABITUAL_DB_CONNECTION"
)
