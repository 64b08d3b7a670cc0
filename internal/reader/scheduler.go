package reader

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ziadkadry99/docreader/internal/highlight"
)

// timerMsg carries a highlight callback onto the program's event loop.
type timerMsg struct {
	run func()
}

// Scheduler runs highlight timers on the bubbletea event loop: the
// underlying clock only posts a message and Update runs the callback.
type Scheduler struct {
	clock highlight.Scheduler

	mu   sync.Mutex
	send func(tea.Msg)
}

// NewScheduler wraps clock. A nil clock uses real timers.
func NewScheduler(clock highlight.Scheduler) *Scheduler {
	if clock == nil {
		clock = highlight.SystemScheduler{}
	}
	return &Scheduler{clock: clock}
}

// Attach sets the function that delivers messages to the program.
func (s *Scheduler) Attach(send func(tea.Msg)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.send = send
}

// AfterFunc implements highlight.Scheduler.
func (s *Scheduler) AfterFunc(d time.Duration, f func()) highlight.Timer {
	return s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		send := s.send
		s.mu.Unlock()
		if send != nil {
			send(timerMsg{run: f})
		}
	})
}
