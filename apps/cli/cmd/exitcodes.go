package cmd

// Exit codes for the request CLI
const (
	// ExitSuccess indicates the request completed and all checks passed
	ExitSuccess = 0

	// ExitCheckFailure indicates a content check failed
	ExitCheckFailure = 1

	// ExitTransportError indicates a network/connection error
	ExitTransportError = 2

	// ExitConfigError indicates a configuration or input file error
	ExitConfigError = 3

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
