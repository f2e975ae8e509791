// Package tasktrack houses concrete implementations of core.TaskTracker.
//
// The in-memory tracker infers work-item status transitions from free-text
// keyword matches on standup answers. That inference is an illustrative
// default policy of this collaborator, not an orchestration guarantee; wire a
// real issue-tracker backend for production use.
package tasktrack
