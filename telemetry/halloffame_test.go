package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func hallEntry(i, score int) HallEntry {
	return HallEntry{
		Player:  "Wolf",
		Score:   score,
		Era:     "Past",
		Session: fmt.Sprintf("s%d", i),
		Date:    time.Date(2026, 1, 1, 0, i, 0, 0, time.UTC),
	}
}

func TestHallOfFame_Consider(t *testing.T) {
	hof := NewHallOfFame("", 3)

	for i, score := range []int{5, 9, 1} {
		if !hof.Consider(hallEntry(i, score)) {
			t.Errorf("entry %d rejected while the hall had room", i)
		}
	}
	if hof.Consider(hallEntry(3, 1)) {
		t.Error("score equal to the lowest should not displace it")
	}
	if !hof.Consider(hallEntry(4, 7)) {
		t.Error("score 7 should enter the hall")
	}

	var got []int
	for _, e := range hof.Top(10) {
		got = append(got, e.Score)
	}
	if fmt.Sprint(got) != "[9 7 5]" {
		t.Errorf("scores = %v, want [9 7 5]", got)
	}
	if best, ok := hof.Best(); !ok || best.Session != "s1" {
		t.Errorf("best = %+v", best)
	}
}

func TestHallOfFame_TiesKeepOlderFirst(t *testing.T) {
	hof := NewHallOfFame("", 5)
	hof.Consider(hallEntry(0, 4))
	hof.Consider(hallEntry(1, 4))

	if top := hof.Top(2); top[0].Session != "s0" || top[1].Session != "s1" {
		t.Errorf("tie order = %s, %s", top[0].Session, top[1].Session)
	}
}

func TestHallOfFame_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hall.yaml")

	hof, err := LoadHallOfFame(path, 5)
	if err != nil {
		t.Fatalf("LoadHallOfFame missing file: %v", err)
	}
	if len(hof.Entries) != 0 {
		t.Fatal("expected empty hall")
	}

	hof.Consider(hallEntry(0, 3))
	hof.Consider(hallEntry(1, 8))
	if err := hof.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadHallOfFame(path, 1)
	if err != nil {
		t.Fatalf("LoadHallOfFame: %v", err)
	}
	if len(loaded.Entries) != 1 || loaded.Entries[0].Score != 8 {
		t.Errorf("loaded = %+v, want single entry with score 8", loaded.Entries)
	}
	if !loaded.Entries[0].Date.Equal(hallEntry(1, 8).Date) {
		t.Errorf("date = %v", loaded.Entries[0].Date)
	}
}

func TestHallOfFame_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hall.yaml")
	if err := os.WriteFile(path, []byte("entries: {oops"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadHallOfFame(path, 5); err == nil {
		t.Error("expected parse error")
	}
}
