package errors

// Common error codes
const (
	// System errors
	ErrInternal        ErrorCode = "internal_error"
	ErrInvalidArgument ErrorCode = "invalid_argument"
	ErrUnavailable     ErrorCode = "source_unavailable"
	ErrAlreadyRunning  ErrorCode = "already_running"

	// Configuration errors
	ErrInvalidConfig   ErrorCode = "invalid_configuration"
	ErrMissingConfig   ErrorCode = "missing_configuration"
	ErrBindFlags       ErrorCode = "bind_flags_failed"
	ErrReadConfig      ErrorCode = "read_config_failed"
	ErrInvalidInterval ErrorCode = "invalid_interval"
	ErrUnknownItem     ErrorCode = "unknown_item"

	// Logging errors
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"

	// Initialization errors
	ErrInitFailed     ErrorCode = "initialization_failed"
	ErrShutdownFailed ErrorCode = "shutdown_failed"

	// Polling errors
	ErrPollFailed  ErrorCode = "poll_failed"
	ErrParseFailed ErrorCode = "parse_failed"

	// Scheduler errors
	ErrDuplicateTask ErrorCode = "duplicate_task"

	// History errors
	ErrInitHistory  ErrorCode = "init_history_failed"
	ErrStoreHistory ErrorCode = "store_history_failed"
	ErrCloseHistory ErrorCode = "close_history_failed"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInternal:        "Internal error occurred",
	ErrInvalidArgument: "Invalid argument provided",
	ErrUnavailable:     "Data source unavailable",
	ErrAlreadyRunning:  "Another instance is already running",
	ErrInvalidConfig:   "Invalid configuration",
	ErrMissingConfig:   "Missing configuration",
	ErrBindFlags:       "Failed to bind flags",
	ErrReadConfig:      "Failed to read configuration",
	ErrInvalidInterval: "Invalid refresh interval",
	ErrUnknownItem:     "Unknown item in configuration",
	ErrInvalidLogLevel: "Invalid log level",
	ErrInitFailed:      "Initialization failed",
	ErrShutdownFailed:  "Shutdown failed",
	ErrPollFailed:      "Failed to poll data source",
	ErrParseFailed:     "Failed to parse source data",
	ErrDuplicateTask:   "Task already registered",
	ErrInitHistory:     "Failed to initialize sample history",
	ErrStoreHistory:    "Failed to store sample",
	ErrCloseHistory:    "Failed to close sample history",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
