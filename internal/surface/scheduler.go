package surface

import (
	"time"

	"github.com/jmylchreest/folio/internal/loop"
	"github.com/jmylchreest/folio/internal/toast"
)

// loopScheduler adapts a loop.Loop to the scheduling half of toast.Surface.
type loopScheduler struct {
	loop *loop.Loop
}

func (s loopScheduler) ScheduleAfter(d time.Duration, fn func()) toast.CancelToken {
	return toast.CancelToken(s.loop.ScheduleAfter(d, fn))
}

func (s loopScheduler) Cancel(token toast.CancelToken) {
	s.loop.Cancel(loop.Token(token))
}
