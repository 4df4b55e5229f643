package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/foodchain/components"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkLeadChange BookmarkType = "lead_change"
	BookmarkComeback   BookmarkType = "comeback"
	BookmarkRunaway    BookmarkType = "runaway"
	BookmarkStalemate  BookmarkType = "stalemate"
)

// Detector thresholds.
const (
	runawayMargin   = 6 // points ahead of second place
	stalemateRounds = 5 // consecutive rounds without a score change
)

// Bookmark marks a notable moment of a game.
type Bookmark struct {
	Type        BookmarkType
	Round       int
	Description string
}

// LogValue implements slog.LogValuer for structured logging.
func (b Bookmark) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("type", string(b.Type)),
		slog.Int("round", b.Round),
		slog.String("description", b.Description),
	)
}

// BookmarkDetector watches end-of-round scores for notable moments.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []RoundStats
	historySize int
	historyIdx  int
	historyFull bool

	leader          string // "" = nobody leads alone
	playerWasLast   bool
	runawayReported bool
	quietRounds     int
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 2 {
		historySize = 2
	}
	return &BookmarkDetector{
		history:     make([]RoundStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest round and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats RoundStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkLeadChange(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkComeback(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkRunaway(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkStalemate(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats RoundStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// previous returns the last recorded round, if any.
func (bd *BookmarkDetector) previous() (RoundStats, bool) {
	if !bd.historyFull && bd.historyIdx == 0 {
		return RoundStats{}, false
	}
	idx := (bd.historyIdx - 1 + bd.historySize) % bd.historySize
	return bd.history[idx], true
}

// soleLeader returns the role name with the strictly highest score, or "".
func soleLeader(s RoundStats) (string, int) {
	scores := []struct {
		role  string
		score int
	}{
		{components.RoleApex.String(), s.ApexScore},
		{components.RolePredator.String(), s.PredatorScore},
		{components.RolePrey.String(), s.PreyScore},
	}
	best, second := scores[0], -1<<31
	tied := false
	for _, sc := range scores[1:] {
		switch {
		case sc.score > best.score:
			second = best.score
			best, tied = sc, false
		case sc.score == best.score:
			tied = true
			second = sc.score
		default:
			second = max(second, sc.score)
		}
	}
	if tied {
		return "", 0
	}
	return best.role, best.score - second
}

func (bd *BookmarkDetector) checkLeadChange(stats RoundStats) *Bookmark {
	leader, _ := soleLeader(stats)
	if leader == "" {
		// A tie keeps the last sole leader.
		return nil
	}
	prev := bd.leader
	bd.leader = leader

	if prev == "" || leader == prev {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkLeadChange,
		Round:       stats.Round,
		Description: fmt.Sprintf("%s takes the lead from %s", leader, prev),
	}
}

func (bd *BookmarkDetector) checkComeback(stats RoundStats) *Bookmark {
	last := stats.PredatorScore < stats.ApexScore && stats.PredatorScore < stats.PreyScore
	defer func() {
		if last {
			bd.playerWasLast = true
		}
	}()

	if !bd.playerWasLast {
		return nil
	}
	if leader, _ := soleLeader(stats); leader != components.RolePredator.String() {
		return nil
	}
	bd.playerWasLast = false
	return &Bookmark{
		Type:        BookmarkComeback,
		Round:       stats.Round,
		Description: fmt.Sprintf("Predator climbs from last place to first with %d points", stats.PredatorScore),
	}
}

func (bd *BookmarkDetector) checkRunaway(stats RoundStats) *Bookmark {
	leader, margin := soleLeader(stats)
	if bd.runawayReported || leader == "" || margin < runawayMargin {
		return nil
	}
	bd.runawayReported = true
	return &Bookmark{
		Type:        BookmarkRunaway,
		Round:       stats.Round,
		Description: fmt.Sprintf("%s leads by %d points", leader, margin),
	}
}

func (bd *BookmarkDetector) checkStalemate(stats RoundStats) *Bookmark {
	prev, ok := bd.previous()
	if !ok {
		return nil
	}
	if prev.ApexScore != stats.ApexScore || prev.PredatorScore != stats.PredatorScore || prev.PreyScore != stats.PreyScore {
		bd.quietRounds = 0
		return nil
	}

	bd.quietRounds++
	if bd.quietRounds != stalemateRounds { // trigger once per quiet spell
		return nil
	}
	return &Bookmark{
		Type:        BookmarkStalemate,
		Round:       stats.Round,
		Description: fmt.Sprintf("No score change for %d rounds", stalemateRounds),
	}
}
