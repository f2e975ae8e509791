package scheduler

import (
	"time"

	"github.com/hupe1980/standupmesh/core"
)

// systemClock implements core.Clock over the stdlib time package.
type systemClock struct{}

// SystemClock returns the wall-clock implementation of core.Clock.
func SystemClock() core.Clock { return systemClock{} }

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, fn func()) core.Timer {
	return systemTimer{t: time.AfterFunc(d, fn)}
}

type systemTimer struct{ t *time.Timer }

func (t systemTimer) Stop() bool { return t.t.Stop() }
