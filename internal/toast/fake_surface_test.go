package toast

import (
	"sort"
	"time"
)

// fakeSurface is an in-memory Surface with a manual clock.
type fakeSurface struct {
	now    time.Time
	nextID CancelToken
	timers map[CancelToken]*fakeTimer

	attached    []*Notification
	attachCount map[string]int
	detachCount map[string]int
	transitions []string
	attachErr   error
}

type fakeTimer struct {
	at  time.Time
	seq CancelToken
	fn  func()
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		now:         time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		timers:      make(map[CancelToken]*fakeTimer),
		attachCount: make(map[string]int),
		detachCount: make(map[string]int),
	}
}

func (f *fakeSurface) Now() time.Time { return f.now }

func (f *fakeSurface) Attach(n *Notification) error {
	if f.attachErr != nil {
		return f.attachErr
	}
	f.attached = append(f.attached, n)
	f.attachCount[n.ID]++
	return nil
}

func (f *fakeSurface) Detach(n *Notification) {
	for i, a := range f.attached {
		if a == n {
			f.attached = append(f.attached[:i], f.attached[i+1:]...)
			f.detachCount[n.ID]++
			return
		}
	}
}

func (f *fakeSurface) ScheduleAfter(d time.Duration, fn func()) CancelToken {
	f.nextID++
	f.timers[f.nextID] = &fakeTimer{at: f.now.Add(d), seq: f.nextID, fn: fn}
	return f.nextID
}

func (f *fakeSurface) Cancel(token CancelToken) {
	delete(f.timers, token)
}

func (f *fakeSurface) Transition(n *Notification, phase Phase) {
	f.transitions = append(f.transitions, n.Message+":"+phase.String())
}

// Advance moves the clock forward, running due timers in time order.
func (f *fakeSurface) Advance(d time.Duration) {
	target := f.now.Add(d)
	for {
		due := f.due(target)
		if due == nil {
			break
		}
		delete(f.timers, due.seq)
		f.now = due.at
		due.fn()
	}
	f.now = target
}

func (f *fakeSurface) due(target time.Time) *fakeTimer {
	var timers []*fakeTimer
	for _, t := range f.timers {
		if !t.at.After(target) {
			timers = append(timers, t)
		}
	}
	if len(timers) == 0 {
		return nil
	}
	sort.Slice(timers, func(i, j int) bool {
		if timers[i].at.Equal(timers[j].at) {
			return timers[i].seq < timers[j].seq
		}
		return timers[i].at.Before(timers[j].at)
	})
	return timers[0]
}

func (f *fakeSurface) Pending() int {
	return len(f.timers)
}
