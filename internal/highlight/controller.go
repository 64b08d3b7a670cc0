package highlight

import (
	"log/slog"
	"sync"
	"time"

	"golang.org/x/net/html"
)

// Default phase durations.
const (
	DefaultSettle  = 100 * time.Millisecond
	DefaultDisplay = 5 * time.Second
	DefaultFade    = 500 * time.Millisecond
)

// Timing holds the three phase durations of a highlight pass.
type Timing struct {
	Settle  time.Duration
	Display time.Duration
	Fade    time.Duration
}

// DefaultTiming returns the standard settle, display, and fade durations.
func DefaultTiming() Timing {
	return Timing{Settle: DefaultSettle, Display: DefaultDisplay, Fade: DefaultFade}
}

// Timer is a cancellable scheduled callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemScheduler schedules callbacks with time.AfterFunc.
type SystemScheduler struct{}

// AfterFunc implements Scheduler.
func (SystemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// pass is one highlight request and the timers it owns.
type pass struct {
	id     string
	root   *html.Node
	term   string
	timers []Timer
}

func (p *pass) stop() {
	for _, t := range p.timers {
		t.Stop()
	}
	p.timers = nil
}

// Controller owns at most one active highlight. Each request tears down
// the previous one before installing itself, and each cleanup only touches
// the elements its own pass created.
type Controller struct {
	mu       sync.Mutex
	sched    Scheduler
	timing   Timing
	newID    func() string
	onScroll func(mark *html.Node)
	logger   *slog.Logger

	pending *pass
	active  *pass
}

// Option configures a Controller.
type Option func(*Controller)

// WithTiming overrides the phase durations.
func WithTiming(t Timing) Option {
	return func(c *Controller) { c.timing = t }
}

// WithScroll registers a callback run with the new highlight element once
// it is in the tree. The callback must not call back into the Controller.
func WithScroll(fn func(mark *html.Node)) Option {
	return func(c *Controller) { c.onScroll = fn }
}

// WithLogger sets the logger used for pass lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// NewController creates a Controller driven by sched.
func NewController(sched Scheduler, opts ...Option) *Controller {
	c := &Controller{
		sched:  sched,
		timing: DefaultTiming(),
		newID:  NewPassID,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Navigate schedules a highlight of term in the freshly mounted page root.
// An empty term cancels any pending or active highlight.
func (c *Controller) Navigate(root *html.Node, term string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != nil {
		c.pending.stop()
		c.pending = nil
	}
	if term == "" || root == nil {
		c.teardownLocked()
		return
	}

	p := &pass{id: c.newID(), root: root, term: term}
	c.pending = p
	p.timers = append(p.timers, c.sched.AfterFunc(c.timing.Settle, func() { c.apply(p) }))
}

// Dismiss removes the active highlight immediately and cancels any pending one.
func (c *Controller) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != nil {
		c.pending.stop()
		c.pending = nil
	}
	c.teardownLocked()
}

// Active reports the pass ID of the highlight currently displayed.
func (c *Controller) Active() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return "", false
	}
	return c.active.id, true
}

func (c *Controller) apply(p *pass) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != p {
		return
	}
	c.pending = nil
	p.timers = nil

	c.teardownLocked()
	Clear(p.root)

	mark, ok := Apply(p.root, p.term, p.id)
	if !ok {
		c.logger.Debug("highlight: no match", "term", p.term)
		return
	}
	c.active = p
	c.logger.Debug("highlight: applied", "term", p.term, "pass", p.id)
	if c.onScroll != nil {
		c.onScroll(mark)
	}
	p.timers = append(p.timers, c.sched.AfterFunc(c.timing.Display, func() { c.fade(p) }))
}

func (c *Controller) fade(p *pass) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != p {
		return
	}
	SetFading(p.root, p.id)
	p.timers = append(p.timers, c.sched.AfterFunc(c.timing.Fade, func() { c.remove(p) }))
}

func (c *Controller) remove(p *pass) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ClearPass(p.root, p.id)
	if c.active == p {
		c.active = nil
		p.timers = nil
	}
}

func (c *Controller) teardownLocked() {
	if c.active == nil {
		return
	}
	c.active.stop()
	ClearPass(c.active.root, c.active.id)
	c.active = nil
}
