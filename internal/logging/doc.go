// Package logging provides structured logging for the SDK and the tadata
// CLI using slog.
//
// The package supports text and JSON output, a TTY-optimized colorized
// handler, configurable levels including a trace level below debug, and
// helpers for testing. Attribute values that look like credentials are
// masked before they are written, so debug logging a request never leaks an
// API key.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("deploying", "name", "orders-api")
//
// # Loggers in contexts
//
// The CLI attaches its configured logger to the command context with
// [NewContext]; downstream code retrieves it with [FromContext], which
// falls back to a discard logger so library code stays silent unless a
// logger was provided.
//
// # Testing
//
// For tests, use [ForTest] to route log output through the testing
// framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
package logging
