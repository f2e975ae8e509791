// Package scheduler implements core.Scheduler over an injectable clock. Two
// trigger strategies share a single interface: a one-shot delay for one-time
// meetings and a weekday-recurring cadence (Monday–Friday at the scheduled
// minute/hour in the meeting's timezone) for daily meetings.
//
// Firing never blocks the scheduler: the system clock runs timer callbacks in
// their own goroutine. Cancellation is safe against a callback already in
// flight; the fired callback is expected to re-validate meeting status and
// no-op when the meeting is no longer scheduled.
package scheduler
