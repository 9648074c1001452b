package sessions

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wippyai/ucsbuf/errors"
)

// Default Tracker tuning. A warning fires when one slot sees
// DefaultWarnThreshold connections inside DefaultWarnWindow, and is then
// suppressed for DefaultQuietWindow.
const (
	DefaultWarnWindow    = 5 * time.Second
	DefaultWarnThreshold = 25
	DefaultQuietWindow   = 10 * time.Minute
)

// Clock supplies the current time. Production code uses the wall clock;
// tests substitute a manual one.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Config tunes a Tracker. Zero fields take the package defaults.
type Config struct {
	// WarnWindow is the sliding window over which reconnections on one
	// slot are counted.
	WarnWindow time.Duration

	// WarnThreshold is the number of connections on one slot within
	// WarnWindow that triggers a churn warning.
	WarnThreshold int

	// QuietWindow suppresses further warnings for this long after one
	// fires.
	QuietWindow time.Duration

	// Clock overrides the time source.
	Clock Clock
}

// Tracker assigns slot IDs to connections and watches for reconnect churn:
// a client in a tight connect/drop loop keeps receiving the same slot ID, so
// a burst of connections on one slot is the signature of a broken peer.
//
// Tracker is safe for concurrent use.
type Tracker struct {
	mu            sync.Mutex
	slots         slots
	series        map[Slot][]time.Time
	lastWarning   time.Time
	clock         Clock
	warnWindow    time.Duration
	warnThreshold int
	quietWindow   time.Duration
}

// New returns a Tracker for the given Config. Negative durations or a
// negative threshold are rejected.
func New(cfg Config) (*Tracker, error) {
	if cfg.WarnWindow < 0 {
		return nil, errors.InvalidInput(errors.PhaseTrack, "warn window must not be negative")
	}
	if cfg.WarnThreshold < 0 {
		return nil, errors.InvalidInput(errors.PhaseTrack, "warn threshold must not be negative")
	}
	if cfg.QuietWindow < 0 {
		return nil, errors.InvalidInput(errors.PhaseTrack, "quiet window must not be negative")
	}
	return newTracker(cfg), nil
}

func newTracker(cfg Config) *Tracker {
	if cfg.WarnWindow == 0 {
		cfg.WarnWindow = DefaultWarnWindow
	}
	if cfg.WarnThreshold == 0 {
		cfg.WarnThreshold = DefaultWarnThreshold
	}
	if cfg.QuietWindow == 0 {
		cfg.QuietWindow = DefaultQuietWindow
	}
	if cfg.Clock == nil {
		cfg.Clock = systemClock{}
	}
	return &Tracker{
		series:        make(map[Slot][]time.Time),
		clock:         cfg.Clock,
		warnWindow:    cfg.WarnWindow,
		warnThreshold: cfg.WarnThreshold,
		quietWindow:   cfg.QuietWindow,
	}
}

// Established records a new connection and returns its slot ID. The boolean
// reports whether this connection tripped the churn warning; when it does,
// the event is also logged at Warn level.
func (t *Tracker) Established() (Slot, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.slots.take()
	now := t.clock.Now()
	t.series[id] = append(t.series[id], now)

	maxRecent := t.pruneAndCount(now)

	warned := false
	if maxRecent >= t.warnThreshold {
		if t.lastWarning.IsZero() || now.Sub(t.lastWarning) > t.quietWindow {
			warned = true
			t.lastWarning = now
			sessionChurnWarningsSet.Inc()
			Logger().Warn("reconnect churn detected",
				zap.Uint32("slot", uint32(id)),
				zap.Int("recent_connections", maxRecent),
				zap.Duration("window", t.warnWindow))
		}
	}

	sessionEventsSet.WithLabelValues("established").Inc()
	sessionActiveSet.Inc()
	return id, warned
}

// Closed records that the connection holding slot went away and frees the
// slot for reuse.
func (t *Tracker) Closed(slot Slot) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.slots.restore(slot)
	sessionEventsSet.WithLabelValues("closed").Inc()
	sessionActiveSet.Dec()
}

// Active returns the number of currently live slots.
func (t *Tracker) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.slots.live()
}

// pruneAndCount drops connection timestamps older than the warn window,
// removes slots whose series emptied out and returns the largest series
// length seen. Callers must hold t.mu.
func (t *Tracker) pruneAndCount(now time.Time) int {
	cutoff := now.Add(-t.warnWindow)
	maxCount := 0
	for id, serie := range t.series {
		i := 0
		for i < len(serie) && serie[i].Before(cutoff) {
			i++
		}
		serie = serie[i:]
		if len(serie) == 0 {
			delete(t.series, id)
			continue
		}
		t.series[id] = serie
		if len(serie) > maxCount {
			maxCount = len(serie)
		}
	}
	return maxCount
}

var (
	defaultTracker     *Tracker
	defaultTrackerOnce sync.Once
)

// Default returns the shared process-wide Tracker, created on first use
// with the package defaults.
func Default() *Tracker {
	defaultTrackerOnce.Do(func() {
		defaultTracker = newTracker(Config{})
	})
	return defaultTracker
}

// Established records a connection on the shared Tracker.
func Established() (Slot, bool) {
	return Default().Established()
}

// Closed records a disconnect on the shared Tracker.
func Closed(slot Slot) {
	Default().Closed(slot)
}
