package telemetry

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// HallEntry is one remembered game, ranked by the player's score.
type HallEntry struct {
	Player  string    `yaml:"player"`
	Score   int       `yaml:"score"`
	Era     string    `yaml:"era"`
	Grid    int       `yaml:"grid"`
	Rounds  int       `yaml:"rounds"`
	Outcome string    `yaml:"outcome"`
	Session string    `yaml:"session"`
	Date    time.Time `yaml:"date"`
}

// HallOfFame keeps the best player scores across games, persisted as YAML.
type HallOfFame struct {
	path    string
	maxSize int
	Entries []HallEntry `yaml:"entries"`
}

// NewHallOfFame creates an empty hall with the given capacity.
func NewHallOfFame(path string, maxSize int) *HallOfFame {
	if maxSize < 1 {
		maxSize = 10
	}
	return &HallOfFame{path: path, maxSize: maxSize}
}

// LoadHallOfFame reads the hall at path. A missing file yields an empty hall.
func LoadHallOfFame(path string, maxSize int) (*HallOfFame, error) {
	hof := NewHallOfFame(path, maxSize)
	if path == "" {
		return hof, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return hof, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read hall of fame: %w", err)
	}
	if err := yaml.Unmarshal(data, hof); err != nil {
		return nil, fmt.Errorf("parse hall of fame: %w", err)
	}
	hof.sortAndTrim()
	return hof, nil
}

// Consider inserts entry if it ranks within the hall's capacity.
// Returns true if the entry was added.
func (hof *HallOfFame) Consider(entry HallEntry) bool {
	if len(hof.Entries) >= hof.maxSize && entry.Score <= hof.Entries[len(hof.Entries)-1].Score {
		return false
	}
	hof.Entries = append(hof.Entries, entry)
	hof.sortAndTrim()
	for _, e := range hof.Entries {
		if e.Session == entry.Session && e.Date.Equal(entry.Date) {
			return true
		}
	}
	return false
}

// sortAndTrim orders by score, best first. Older entries win ties.
func (hof *HallOfFame) sortAndTrim() {
	sort.SliceStable(hof.Entries, func(i, j int) bool {
		return hof.Entries[i].Score > hof.Entries[j].Score
	})
	if len(hof.Entries) > hof.maxSize {
		hof.Entries = hof.Entries[:hof.maxSize]
	}
}

// Top returns up to n best entries.
func (hof *HallOfFame) Top(n int) []HallEntry {
	return hof.Entries[:min(n, len(hof.Entries))]
}

// Best returns the highest entry, if any.
func (hof *HallOfFame) Best() (HallEntry, bool) {
	if len(hof.Entries) == 0 {
		return HallEntry{}, false
	}
	return hof.Entries[0], true
}

// Save writes the hall to its file. A hall without a path is not persisted.
func (hof *HallOfFame) Save() error {
	if hof.path == "" {
		return nil
	}
	data, err := yaml.Marshal(hof)
	if err != nil {
		return fmt.Errorf("marshal hall of fame: %w", err)
	}
	if err := writeFileAtomic(hof.path, data); err != nil {
		return fmt.Errorf("write hall of fame: %w", err)
	}
	return nil
}
