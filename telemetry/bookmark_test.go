package telemetry

import "testing"

func scores(round, apex, predator, prey int) RoundStats {
	return RoundStats{Round: round, ApexScore: apex, PredatorScore: predator, PreyScore: prey}
}

func hasBookmark(bms []Bookmark, typ BookmarkType) bool {
	for _, bm := range bms {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_LeadChange(t *testing.T) {
	bd := NewBookmarkDetector(10)

	if bms := bd.Check(scores(0, 1, 0, 0)); hasBookmark(bms, BookmarkLeadChange) {
		t.Error("first leader is not a lead change")
	}
	if bms := bd.Check(scores(1, 1, 1, 0)); len(bms) != 0 {
		t.Errorf("tie at the top triggered %v", bms)
	}
	if bms := bd.Check(scores(2, 1, 4, 0)); !hasBookmark(bms, BookmarkLeadChange) {
		t.Error("expected lead_change after the tie resolves to a new leader")
	}
	if bms := bd.Check(scores(3, 1, 5, 0)); hasBookmark(bms, BookmarkLeadChange) {
		t.Error("same leader should not trigger again")
	}
}

func TestBookmarkDetector_TieKeepsLeader(t *testing.T) {
	tests := []struct {
		name   string
		rounds []RoundStats
		want   string // description of the last round's lead change, "" = none
	}{
		{
			name:   "tie resolves to the same leader",
			rounds: []RoundStats{scores(0, 2, 0, 0), scores(1, 2, 2, 0), scores(2, 3, 2, 0)},
		},
		{
			name:   "tie resolves to a new leader",
			rounds: []RoundStats{scores(0, 2, 0, 0), scores(1, 2, 2, 0), scores(2, 2, 2, 2), scores(3, 2, 2, 5)},
			want:   "Prey takes the lead from Apex",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bd := NewBookmarkDetector(10)
			var last []Bookmark
			for _, r := range tt.rounds {
				last = bd.Check(r)
			}
			got := ""
			for _, bm := range last {
				if bm.Type == BookmarkLeadChange {
					got = bm.Description
				}
			}
			if got != tt.want {
				t.Errorf("lead change = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBookmarkDetector_Comeback(t *testing.T) {
	bd := NewBookmarkDetector(10)

	bd.Check(scores(0, 1, -1, 3))
	bd.Check(scores(1, 1, 2, 3))
	bms := bd.Check(scores(2, 1, 5, 3))
	if !hasBookmark(bms, BookmarkComeback) {
		t.Errorf("expected comeback, got %v", bms)
	}
	if bms := bd.Check(scores(3, 1, 8, 3)); hasBookmark(bms, BookmarkComeback) {
		t.Error("comeback reported twice")
	}
}

func TestBookmarkDetector_Runaway(t *testing.T) {
	bd := NewBookmarkDetector(10)

	bd.Check(scores(0, 0, 3, 0))
	if bms := bd.Check(scores(1, 0, 6, 0)); !hasBookmark(bms, BookmarkRunaway) {
		t.Error("expected runaway at a 6 point margin")
	}
	if bms := bd.Check(scores(2, 0, 9, 0)); hasBookmark(bms, BookmarkRunaway) {
		t.Error("runaway reported twice")
	}
}

func TestBookmarkDetector_Stalemate(t *testing.T) {
	bd := NewBookmarkDetector(3)

	var count int
	for r := 0; r < 12; r++ {
		if hasBookmark(bd.Check(scores(r, 0, 0, 0)), BookmarkStalemate) {
			count++
			if r != stalemateRounds {
				t.Errorf("stalemate at round %d, want %d", r, stalemateRounds)
			}
		}
	}
	if count != 1 {
		t.Errorf("stalemate reported %d times, want 1", count)
	}

	// A score change resets the spell.
	bd.Check(scores(12, 1, 0, 0))
	for r := 13; r < 13+stalemateRounds; r++ {
		bms := bd.Check(scores(r, 1, 0, 0))
		if hasBookmark(bms, BookmarkStalemate) != (r == 12+stalemateRounds) {
			t.Errorf("round %d: unexpected stalemate state %v", r, bms)
		}
	}
}
