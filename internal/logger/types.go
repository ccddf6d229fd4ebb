package logger

// Config holds logger configuration settings.
type Config struct {
	// Level is the minimum log level to emit (debug, info, warn, error, fatal).
	Level string `mapstructure:"level"`
	// Development enables human-friendly console output with colors.
	Development bool `mapstructure:"development"`
	// Encoding selects the output format ("console" or "json").
	Encoding string `mapstructure:"encoding"`
}
