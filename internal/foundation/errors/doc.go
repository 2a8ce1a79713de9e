// Package errors provides the classified error primitives used across layoutrender.
//
// Key features:
//   - ErrorCategory: broad classification (config, validation, render, layout, filesystem, internal)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - ClassifiedError: structured error with category, severity, and context
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLIErrorAdapter: exit codes and user-facing formatting
//
// Example usage:
//
//	err := errors.RenderError("render layout default.md").
//		WithCause(convErr).
//		WithContext("path", "_layouts/default.md").
//		Build()
package errors
