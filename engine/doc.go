// Package engine implements the meeting lifecycle orchestrator: it schedules
// meetings, drives participants through the three-question standup flow,
// detects full completion and finalizes the meeting (summary, escalation,
// task sync).
//
// Concurrency model: all operations that read-then-write the same meeting or
// its session execute under a per-meeting exclusive lock; operations on
// different meeting ids are fully independent. Collaborator calls
// (conversation generation, notification, task sync) happen outside the lock
// so they never block unrelated participants. The completion detector's
// compare-and-trigger-once step is the exception: it is atomic with respect
// to concurrent submissions via the session's monotone finalized flag.
//
// Collaborator failures never abort orchestration: they are logged with the
// meeting id and step name, and the engine substitutes the deterministic
// Static generator's output so downstream steps still run.
package engine
