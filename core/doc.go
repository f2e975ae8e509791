// Package core provides the foundational domain types and interfaces used by
// StandupMesh. It defines the core abstractions for:
//
//   - Meetings (scheduled check-in events with a status state machine)
//   - MeetingSessions (live execution state of an in-progress meeting)
//   - StandupSubSessions (one participant's three-question flow)
//   - Pluggable registry, scheduler and clock contracts
//   - Collaborator contracts (conversation generation, notification
//     delivery, task tracking) consumed through narrow interfaces
//
// The package intentionally keeps implementation concerns (storage, timer
// wiring, engine orchestration, concrete collaborators) out of scope,
// exposing small interfaces to enable custom backends and extensions.
package core
