// Package log builds the application's slog loggers.
//
// Every logger returned by this package wraps its output handler in a
// SecureHandler. The handler masks values that must not reach log files:
//   - credentials typed into the signup form (password, confirmation)
//   - HTTP credentials (Authorization, Cookie, bearer and basic tokens)
//   - email addresses, whether logged under an email key or embedded in
//     any string attribute
//
// Masking also applies in verbose mode.
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("profile saved", "email", "jane@example.com") // email=j***@example.com
package log
