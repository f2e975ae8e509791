package core

import "time"

// Timer is a cancellable pending callback, satisfied by *time.Timer via a
// thin wrapper.
type Timer interface {
	// Stop prevents the callback from firing, reporting whether it was
	// still pending.
	Stop() bool
}

// Clock abstracts wall-clock time and timer creation so trigger firing and
// cancellation races can be tested deterministically.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// TriggerHandle associates a meeting id with an active timer or recurring
// job. It exists only while the meeting is scheduled: it is destroyed on
// cancellation or, for one-time triggers, on firing; recurring handles
// persist across firings until cancelled.
type TriggerHandle interface {
	MeetingID() string
}

// Scheduler arms triggers that fire the provided callback at the meeting's
// computed wall-clock instant, once or on a weekday cadence in the meeting's
// timezone. Firing invokes the callback asynchronously; the scheduler never
// blocks on its completion. The callback must re-validate meeting status
// because a cancellation may race an in-flight firing.
type Scheduler interface {
	Schedule(m *Meeting, fire func(meetingID string)) (TriggerHandle, error)
	Cancel(h TriggerHandle)
}
