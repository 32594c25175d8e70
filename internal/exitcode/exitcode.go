// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, out of range, not found).
	UserError = 1

	// ConfigError indicates an invalid config file or setting.
	ConfigError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3
)
