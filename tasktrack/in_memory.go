package tasktrack

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/standupmesh/core"
	"github.com/hupe1980/standupmesh/logging"
)

// Work-item statuses used by the heuristic sync.
const (
	StatusOpen    = "Open"
	StatusDone    = "Done"
	StatusBlocked = "Blocked"
)

// WorkItem is one tracked unit of work assigned to a participant.
type WorkItem struct {
	ID          string    `json:"id"`
	Participant string    `json:"participant"`
	Title       string    `json:"title"`
	Status      string    `json:"status"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Options configures the in-memory tracker.
type Options struct {
	// Logger receives sync decisions. Defaults to NoOp.
	Logger logging.Logger
	// Now supplies update timestamps. Defaults to time.Now.
	Now func() time.Time
}

// InMemoryTracker is a volatile TaskTracker storing work items in a process
// local map keyed by participant. Safe for concurrent access.
type InMemoryTracker struct {
	logger logging.Logger
	now    func() time.Time

	mu    sync.RWMutex
	items map[string][]*WorkItem
}

// NewInMemoryTracker constructs an empty in-memory tracker.
func NewInMemoryTracker(optFns ...func(o *Options)) *InMemoryTracker {
	opts := Options{Logger: logging.NoOpLogger{}, Now: time.Now}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &InMemoryTracker{logger: opts.Logger, now: opts.Now, items: make(map[string][]*WorkItem)}
}

// Add seeds a work item for a participant and returns it with an assigned id.
func (t *InMemoryTracker) Add(participant, title string) *WorkItem {
	item := &WorkItem{
		ID:          core.NewID(),
		Participant: participant,
		Title:       title,
		Status:      StatusOpen,
		UpdatedAt:   t.now(),
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items[participant] = append(t.items[participant], item)
	return item
}

// Items returns copies of the participant's work items.
func (t *InMemoryTracker) Items(participant string) []WorkItem {
	t.mu.RLock()
	defer t.mu.RUnlock()
	res := make([]WorkItem, 0, len(t.items[participant]))
	for _, item := range t.items[participant] {
		res = append(res, *item)
	}
	return res
}

// doneKeywords mark a progress answer as having completed the mentioned item.
var doneKeywords = []string{"done", "finished", "shipped", "completed", "merged", "closed"}

// SyncFromMeeting implements core.TaskTracker. For every participant with a
// full response, items mentioned in the progress answer alongside a
// completion keyword move to Done; items mentioned in a reported blocker move
// to Blocked; unmatched blockers are filed as new Blocked items.
func (t *InMemoryTracker) SyncFromMeeting(_ context.Context, data core.MeetingData, summary core.Summary) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, slot := range data.Responses {
		if len(slot) == 0 {
			continue
		}
		participant := data.Participants[i]
		progress := strings.ToLower(slot[0].Text)
		if !containsAny(progress, doneKeywords) {
			continue
		}
		for _, item := range t.items[participant] {
			if item.Status == StatusOpen && strings.Contains(progress, strings.ToLower(item.Title)) {
				item.Status = StatusDone
				item.UpdatedAt = t.now()
				t.logger.Debug("work item inferred done item_id=%s participant=%s", item.ID, participant)
			}
		}
	}

	for _, blocker := range summary.Blockers {
		text := strings.ToLower(blocker.Text)
		matched := false
		for _, item := range t.items[blocker.Participant] {
			if item.Status != StatusDone && strings.Contains(text, strings.ToLower(item.Title)) {
				item.Status = StatusBlocked
				item.UpdatedAt = t.now()
				matched = true
				t.logger.Debug("work item inferred blocked item_id=%s participant=%s", item.ID, blocker.Participant)
			}
		}
		if !matched {
			item := &WorkItem{
				ID:          core.NewID(),
				Participant: blocker.Participant,
				Title:       blocker.Text,
				Status:      StatusBlocked,
				UpdatedAt:   t.now(),
			}
			t.items[blocker.Participant] = append(t.items[blocker.Participant], item)
			t.logger.Debug("blocker filed as work item item_id=%s participant=%s", item.ID, blocker.Participant)
		}
	}

	return nil
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
