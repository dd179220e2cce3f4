package settings

import "sync"

type Arguments struct {
	// LogFile is the path to the log file (empty means stdout only).
	LogFile string

	// Strongly verbose logging
	Verbose bool

	// Debug enables debug-level logging in the services
	Debug bool

	// PrintToScreen mirrors log output to stdout when a log file is set
	PrintToScreen bool

	// Version of the binary
	Version string
}

var (
	instance *Arguments
	once     sync.Once
)

// GetSettings returns the global settings instance.
func GetSettings() *Arguments {
	once.Do(func() {
		instance = &Arguments{}
	})
	return instance
}
