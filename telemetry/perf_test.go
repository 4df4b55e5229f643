package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartRound()
		pc.StartPhase(PhasePlayer)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseApexAI)
		time.Sleep(200 * time.Microsecond)
		pc.EndRound()
	}

	stats := pc.Stats()

	if stats.Rounds != 5 {
		t.Errorf("expected 5 rounds, got %d", stats.Rounds)
	}
	if stats.AvgRoundDuration <= 0 {
		t.Error("expected positive average round duration")
	}
	if _, ok := stats.PhaseAvg[PhasePlayer]; !ok {
		t.Error("expected player phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseApexAI]; !ok {
		t.Error("expected apex_ai phase to be tracked")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartRound()
		pc.StartPhase(PhasePlayer)
		pc.EndRound()
	}

	if got := pc.Stats().Rounds; got != 5 {
		t.Errorf("expected window of 5 rounds, got %d", got)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartRound()
		pc.StartPhase("fast")
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase("slow")
		time.Sleep(500 * time.Microsecond)
		pc.EndRound()
	}

	stats := pc.Stats()
	if stats.PhasePct["slow"] <= stats.PhasePct["fast"] {
		t.Errorf("expected slow phase (%v%%) > fast phase (%v%%)", stats.PhasePct["slow"], stats.PhasePct["fast"])
	}
}

func TestPerfCollector_EmptyAndNil(t *testing.T) {
	var nilPC *PerfCollector
	nilPC.StartRound()
	nilPC.StartPhase(PhasePlayer)
	nilPC.EndRound()
	nilPC.RecordFrame()

	for _, stats := range []PerfStats{NewPerfCollector(10).Stats(), nilPC.Stats()} {
		if stats.AvgRoundDuration != 0 {
			t.Error("expected zero avg round duration for empty collector")
		}
		if stats.PhaseAvg == nil || stats.PhasePct == nil {
			t.Error("expected non-nil phase maps")
		}
	}
}

func TestPerfCollector_EndWithoutStart(t *testing.T) {
	pc := NewPerfCollector(10)
	pc.StartPhase(PhasePreyAI)
	pc.EndRound()

	if pc.Stats().Rounds != 0 {
		t.Error("a round that never started should not be sampled")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("expected FPS in (0, 70] with 16ms frames, got %v", stats.FPS)
	}
}
