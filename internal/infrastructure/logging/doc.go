// Package logging provides structured logging using uber/zap.
//
// Two modes are available:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Reactors get a child logger through Logger.Reactor so every action and
// mutation line carries the reactor name and instance id.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	log := logger.Reactor("signin", id)
//	log.Debug("action", zap.String("type", "SignIn"))
package logging
