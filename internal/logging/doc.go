// Package logging assembles the structured slog loggers used across the
// dataset builder.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context helpers so build code automatically tags
// log lines with the current run identifier. A no-op logger is provided
// for tests and wiring code that cannot fail.
package logging
