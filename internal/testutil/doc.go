// Package testutil provides shared test helpers: a deterministic fake clock
// for trigger firing/cancellation races and recording collaborator doubles
// for asserting notification, analysis and task-sync dispatches.
package testutil
