// Package registry houses concrete implementations of core.MeetingRegistry.
// The interface itself (and the Meeting struct) live in the core package to
// centralize domain contracts. Keeping only implementations here prevents
// higher level packages (engine, façade) from depending on concrete storage.
//
// Add durable backends (Postgres, Redis, Firestore, etc.) in sub‑packages
// without changing any calling code – only the wiring layer needs to decide
// which implementation to instantiate.
package registry
