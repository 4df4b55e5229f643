package telemetry

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/foodchain/components"
)

func TestOutputManager_NilIsDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v", om, err)
	}
	if err := om.WriteEvent(Event{}); err != nil {
		t.Errorf("nil WriteEvent: %v", err)
	}
	if err := om.WriteRound(RoundStats{}); err != nil {
		t.Errorf("nil WriteRound: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("nil Dir = %q", om.Dir())
	}
}

func TestOutputManager_HeaderWrittenOnce(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 3; i++ {
		if err := om.WriteRound(RoundStats{Round: i, PredatorScore: i * 3}); err != nil {
			t.Fatalf("WriteRound: %v", err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "rounds.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("rounds.csv has %d lines, want 4:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "session,era,round") {
		t.Errorf("header = %q", lines[0])
	}
	if strings.Count(string(data), "apex_score") != 1 {
		t.Error("header repeated")
	}

	if _, err := os.Stat(filepath.Join(dir, "events.csv")); !os.IsNotExist(err) {
		t.Error("events.csv created without any event")
	}
}

func TestCollector_RecordsEverywhere(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	c := NewCollector(slog.New(slog.NewTextHandler(&buf, nil)), om, "s-1")

	c.Record(NewMoveEvent(2, ControllerPlayer, "Wolf", components.RolePredator,
		components.Cell{X: 1, Y: 1}, components.Cell{X: 1, Y: 2}))
	c.Record(NewScoreEvent(2, "Wolf", components.RolePredator, 3, 3, ReasonEatPrey))
	om.Close()

	if c.Count(EventMove) != 1 || c.Count(EventScore) != 1 || c.Count(EventRespawn) != 0 {
		t.Errorf("counts: move=%d score=%d respawn=%d", c.Count(EventMove), c.Count(EventScore), c.Count(EventRespawn))
	}

	log := buf.String()
	for _, want := range []string{"msg=MOVE", "actor=Wolf", "by=PLAYER", "from=(1,1)", "to=(1,2)", "msg=SCORE", "reason=PREDATOR_EATS_PREY"} {
		if !strings.Contains(log, want) {
			t.Errorf("log missing %q:\n%s", want, log)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "events.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "s-1") || !strings.Contains(string(data), "MOVE") {
		t.Errorf("events.csv missing session or type:\n%s", data)
	}
}

func TestCollector_NilSafe(t *testing.T) {
	var c *Collector
	c.Record(Event{Type: EventMove})
	c.RecordRound(RoundStats{})
	if c.Count(EventMove) != 0 || c.Session() != "" {
		t.Error("nil collector should report nothing")
	}
}

func TestOpenEventLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game_log.txt")
	log, closer, err := OpenEventLog(path)
	if err != nil {
		t.Fatal(err)
	}
	log.Info("GAME_START", "era", "Past")
	closer.Close()

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "GAME_START") {
		t.Errorf("log file = %q", data)
	}
}

func TestCollector_FeedAndBookmarks(t *testing.T) {
	var buf bytes.Buffer
	c := NewCollector(slog.New(slog.NewTextHandler(&buf, nil)), nil, "s1")

	for i := 0; i < feedSize+3; i++ {
		c.Record(NewMoveEvent(i, ControllerAI, "Rex", components.RoleApex, components.Cell{}, components.Cell{X: i}))
		c.Record(Event{Type: EventRoundEnd, Round: i})
	}
	feed := c.Recent()
	if len(feed) != feedSize {
		t.Fatalf("feed holds %d events, want %d", len(feed), feedSize)
	}
	if feed[0].Round != 3 || feed[len(feed)-1].Round != feedSize+2 {
		t.Errorf("feed spans rounds %d..%d", feed[0].Round, feed[len(feed)-1].Round)
	}
	if rex, ok := c.Lifetime("Rex"); !ok || rex.Moves != feedSize+2 {
		t.Errorf("Rex tallies = %+v", rex)
	}

	c.RecordRound(RoundStats{Round: 0, ApexScore: 1})
	c.RecordRound(RoundStats{Round: 1, PredatorScore: 7})
	if bms := c.Bookmarks(); len(bms) != 2 {
		t.Errorf("bookmarks = %+v, want lead change and runaway", bms)
	}
	if !strings.Contains(buf.String(), "BOOKMARK") {
		t.Error("bookmarks missing from the event log")
	}
}
