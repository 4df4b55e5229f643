package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one round of play.
const (
	PhasePlayer   = "player"
	PhaseApexAI   = "apex_ai"
	PhaseEndRound = "end_round"
	PhasePreyAI   = "prey_ai"
)

// PerfSample holds timing data for a single round.
type PerfSample struct {
	RoundDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector tracks round resolution timings over a rolling window.
// A nil collector ignores every call.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	roundStart    time.Time
	phaseStart    time.Time
	lastPhase     string

	// Frame timing (for graphics mode)
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize rounds.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartRound begins timing a round.
func (p *PerfCollector) StartRound() {
	if p == nil {
		return
	}
	p.roundStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	if p == nil {
		return
	}
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndRound finishes timing the current round and records the sample.
func (p *PerfCollector) EndRound() {
	if p == nil || p.roundStart.IsZero() {
		return
	}
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
		p.lastPhase = ""
	}

	p.samples[p.writeIndex] = PerfSample{
		RoundDuration: now.Sub(p.roundStart),
		Phases:        p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
	p.roundStart = time.Time{}
}

// RecordFrame records frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	if p == nil {
		return
	}
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	Rounds int

	AvgRoundDuration time.Duration
	MinRoundDuration time.Duration
	MaxRoundDuration time.Duration

	// Phase breakdown (average durations and share of the round)
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	// Frame timing (graphics mode)
	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
	}
	if p == nil {
		return stats
	}

	stats.FrameDuration = p.frameDuration
	if p.frameDuration > 0 {
		stats.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.sampleCount == 0 {
		return stats
	}

	var total time.Duration
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.RoundDuration
		if i == 0 || s.RoundDuration < stats.MinRoundDuration {
			stats.MinRoundDuration = s.RoundDuration
		}
		stats.MaxRoundDuration = max(stats.MaxRoundDuration, s.RoundDuration)
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	stats.Rounds = p.sampleCount
	stats.AvgRoundDuration = total / time.Duration(p.sampleCount)
	for phase, sum := range phaseSum {
		avg := sum / time.Duration(p.sampleCount)
		stats.PhaseAvg[phase] = avg
		if stats.AvgRoundDuration > 0 {
			stats.PhasePct[phase] = float64(avg) / float64(stats.AvgRoundDuration) * 100
		}
	}
	return stats
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("rounds", s.Rounds),
		slog.Int64("avg_round_us", s.AvgRoundDuration.Microseconds()),
		slog.Int64("min_round_us", s.MinRoundDuration.Microseconds()),
		slog.Int64("max_round_us", s.MaxRoundDuration.Microseconds()),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range []string{PhasePlayer, PhaseApexAI, PhaseEndRound, PhasePreyAI} {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	Label       string  `csv:"label"`
	Rounds      int     `csv:"rounds"`
	AvgRoundUS  int64   `csv:"avg_round_us"`
	MinRoundUS  int64   `csv:"min_round_us"`
	MaxRoundUS  int64   `csv:"max_round_us"`
	PlayerPct   float64 `csv:"player_pct"`
	ApexAIPct   float64 `csv:"apex_ai_pct"`
	EndRoundPct float64 `csv:"end_round_pct"`
	PreyAIPct   float64 `csv:"prey_ai_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(label string) PerfStatsCSV {
	return PerfStatsCSV{
		Label:       label,
		Rounds:      s.Rounds,
		AvgRoundUS:  s.AvgRoundDuration.Microseconds(),
		MinRoundUS:  s.MinRoundDuration.Microseconds(),
		MaxRoundUS:  s.MaxRoundDuration.Microseconds(),
		PlayerPct:   s.PhasePct[PhasePlayer],
		ApexAIPct:   s.PhasePct[PhaseApexAI],
		EndRoundPct: s.PhasePct[PhaseEndRound],
		PreyAIPct:   s.PhasePct[PhasePreyAI],
	}
}
