// Package logging provides structured logging for openband built on Go's
// standard slog package.
//
// All log entries carry a subsystem identifier for categorization alongside the
// level, timestamp, message, and optional error.
//
// ## Initialization
//
//	import "github.com/search5/openband/pkg/logging"
//
//	logging.Init(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Auth", "authorization flow starting")
//	logging.Debug("Band", "GET %s", endpoint)
//	logging.Error("Secrets", err, "failed to persist token")
//
// # Subsystem Organization
//
// Logs are organized by subsystem to enable filtering:
//
//   - **Auth**: authorization-code flow and token exchange
//   - **Band**: REST calls against the BAND Open API
//   - **Secrets**: credential persistence
//   - **Config**: configuration loading
//
// # Security
//
// Access tokens and authorization codes are never logged; callers log only
// endpoint URLs and result codes.
package logging
