// Package logging provides a minimal logging interface and adapters for
// StandupMesh.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that the engine, scheduler and collaborators use for
// observability. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//   - StandupLogger with meeting-scoped context and collaborator helpers
//
// The design intentionally keeps the interface minimal to avoid vendor
// lock-in while supporting structured logging where available.
package logging
