package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/pthm-cable/foodchain/components"
	"github.com/pthm-cable/foodchain/config"
	"github.com/pthm-cable/foodchain/telemetry"
)

func TestRunnerRunEra(t *testing.T) {
	names, err := config.LoadFoodChains("")
	if err != nil {
		t.Fatal(err)
	}
	seeds := []int64{1, 2, 3, 4}

	for _, autopilot := range []bool{true, false} {
		hall := telemetry.NewHallOfFame(filepath.Join(t.TempDir(), "hof.yaml"), 3)
		r := NewRunner(names, 10, 10, autopilot, 2, hall)

		first := r.RunEra(components.EraPresent, seeds)
		again := r.RunEra(components.EraPresent, seeds)

		for i, run := range first {
			if run.err != nil {
				t.Fatalf("autopilot=%v seed %d: %v", autopilot, seeds[i], run.err)
			}
			if run.result.Rounds != 10 || run.result.Seed != seeds[i] {
				t.Errorf("seed %d: result %+v", seeds[i], run.result)
			}
			if run.perf.Rounds != 10 {
				t.Errorf("seed %d: perf rounds = %d, want 10", seeds[i], run.perf.Rounds)
			}
			a, b := run.result, again[i].result
			if a.ApexScore != b.ApexScore || a.PredatorScore != b.PredatorScore || a.PreyScore != b.PreyScore {
				t.Errorf("seed %d not reproducible: %+v vs %+v", seeds[i], a, b)
			}
		}

		if got := len(hall.Top(10)); got != 3 {
			t.Errorf("hall holds %d entries, want 3", got)
		}
		if meanRoundMicros(first) < 0 {
			t.Error("negative mean round time")
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{0, "0m00s"},
		{75, "1m15s"},
		{3725, "1h02m05s"},
	}
	for _, tt := range tests {
		if got := formatDuration(time.Duration(tt.secs) * time.Second); got != tt.want {
			t.Errorf("formatDuration(%ds) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}
