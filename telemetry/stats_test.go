package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/foodchain/components"
)

func TestSummarize(t *testing.T) {
	results := []GameResult{
		{ApexScore: 2, PredatorScore: 6, PreyScore: 3, WinnerRole: "Predator"},
		{ApexScore: 4, PredatorScore: 0, PreyScore: 9, WinnerRole: "Prey"},
		{ApexScore: 3, PredatorScore: 3, PreyScore: 3, Draw: true},
		{ApexScore: 7, PredatorScore: -1, PreyScore: 0, WinnerRole: "Apex"},
	}

	s := Summarize(results)
	if s.Games != 4 {
		t.Errorf("Games = %d, want 4", s.Games)
	}
	if math.Abs(s.DrawRate-0.25) > 1e-9 {
		t.Errorf("DrawRate = %v, want 0.25", s.DrawRate)
	}
	if len(s.Roles) != 3 {
		t.Fatalf("roles = %d, want 3", len(s.Roles))
	}

	tests := []struct {
		role    components.Role
		mean    float64
		winRate float64
	}{
		{components.RoleApex, 4, 0.25},
		{components.RolePredator, 2, 0.25},
		{components.RolePrey, 3.75, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			r := s.Roles[tt.role]
			if r.Role != tt.role {
				t.Fatalf("Roles[%d] = %v", tt.role, r.Role)
			}
			if math.Abs(r.Mean-tt.mean) > 1e-9 {
				t.Errorf("Mean = %v, want %v", r.Mean, tt.mean)
			}
			if math.Abs(r.WinRate-tt.winRate) > 1e-9 {
				t.Errorf("WinRate = %v, want %v", r.WinRate, tt.winRate)
			}
			if r.StdDev <= 0 {
				t.Errorf("StdDev = %v, want > 0", r.StdDev)
			}
		})
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.Games != 0 || len(s.Roles) != 0 {
		t.Errorf("Summarize(nil) = %+v", s)
	}
}

func TestSummarize_SingleGameHasZeroSpread(t *testing.T) {
	s := Summarize([]GameResult{{ApexScore: 1, PredatorScore: 2, PreyScore: 3, WinnerRole: "Prey"}})
	for _, r := range s.Roles {
		if r.StdDev != 0 {
			t.Errorf("%v StdDev = %v, want 0", r.Role, r.StdDev)
		}
		if r.Median != float64(r.Mean) {
			t.Errorf("%v Median = %v, want %v", r.Role, r.Median, r.Mean)
		}
	}
}
