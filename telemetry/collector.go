package telemetry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// feedSize is the number of recent events kept for display.
const feedSize = 8

// Collector receives game events, writes them to the event log and CSV output,
// and keeps per-type counters, per-animal tallies, bookmarks and a short feed of
// recent events. A nil Collector discards everything.
type Collector struct {
	log     *slog.Logger
	out     *OutputManager
	session string
	counts  [len(eventTypeNames)]int

	lifetime  *LifetimeTracker
	detector  *BookmarkDetector
	bookmarks []Bookmark
	feed      []Event
}

// NewCollector creates a collector. log and out may be nil.
func NewCollector(log *slog.Logger, out *OutputManager, session string) *Collector {
	return &Collector{
		log:      log,
		out:      out,
		session:  session,
		lifetime: NewLifetimeTracker(),
		detector: NewBookmarkDetector(stalemateRounds + 1),
	}
}

// Session returns the id stamped into every event.
func (c *Collector) Session() string {
	if c == nil {
		return ""
	}
	return c.session
}

// Record stamps the session id on ev and emits it.
// CSV failures are logged and otherwise ignored; they never reach the game.
func (c *Collector) Record(ev Event) {
	if c == nil {
		return
	}
	ev.Session = c.session
	if int(ev.Type) < len(c.counts) {
		c.counts[ev.Type]++
	}
	c.lifetime.Observe(ev)
	if ev.Type != EventRoundBegin && ev.Type != EventRoundEnd {
		c.feed = append(c.feed, ev)
		if len(c.feed) > feedSize {
			c.feed = c.feed[len(c.feed)-feedSize:]
		}
	}
	if c.log != nil {
		c.log.LogAttrs(context.Background(), slog.LevelInfo, ev.Type.String(), ev.LogValue().Group()...)
	}
	if err := c.out.WriteEvent(ev); err != nil {
		slog.Warn("event output failed", "error", err)
	}
}

// RecordRound writes an end-of-round summary and checks it for bookmarks.
func (c *Collector) RecordRound(stats RoundStats) {
	if c == nil {
		return
	}
	stats.Session = c.session
	if err := c.out.WriteRound(stats); err != nil {
		slog.Warn("round output failed", "error", err)
	}
	for _, b := range c.detector.Check(stats) {
		c.bookmarks = append(c.bookmarks, b)
		if c.log != nil {
			c.log.LogAttrs(context.Background(), slog.LevelInfo, "BOOKMARK", b.LogValue().Group()...)
		}
	}
}

// Lifetime returns the tallies of the named entity.
func (c *Collector) Lifetime(name string) (LifetimeStats, bool) {
	if c == nil {
		return LifetimeStats{}, false
	}
	return c.lifetime.Get(name)
}

// Bookmarks returns the notable moments found so far.
func (c *Collector) Bookmarks() []Bookmark {
	if c == nil {
		return nil
	}
	return c.bookmarks
}

// Recent returns the latest events, oldest first.
func (c *Collector) Recent() []Event {
	if c == nil {
		return nil
	}
	return c.feed
}

// Count returns how many events of type t were recorded.
func (c *Collector) Count(t EventType) int {
	if c == nil || int(t) >= len(c.counts) {
		return 0
	}
	return c.counts[t]
}

// OpenEventLog opens (appending) the game log file and returns a text logger on it.
func OpenEventLog(path string) (*slog.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening game log: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, nil)), f, nil
}
