// Package audio plays the short jingles that announce the end of a game.
package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/foodchain/config"
)

// SoundManager owns the speaker and mixes outcome jingles into it.
// All methods are safe to call when audio is disabled or unavailable.
type SoundManager struct {
	mu          sync.Mutex
	cfg         config.AudioConfig
	note        time.Duration
	rate        beep.SampleRate
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates a manager. Nothing is played until Initialize succeeds.
func NewSoundManager(cfg config.AudioConfig, note time.Duration) *SoundManager {
	return &SoundManager{
		cfg:   cfg,
		note:  note,
		rate:  beep.SampleRate(cfg.SampleRate),
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker. A disabled manager stays silent and returns nil.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}
	if sm.rate <= 0 {
		return fmt.Errorf("invalid sample rate %d", sm.cfg.SampleRate)
	}
	if err := speaker.Init(sm.rate, sm.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Ready reports whether sounds will actually be heard.
func (sm *SoundManager) Ready() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// OnWin plays the rising jingle.
func (sm *SoundManager) OnWin() {
	sm.play(sm.cfg.WinTones)
}

// OnLose plays the falling jingle.
func (sm *SoundManager) OnLose() {
	sm.play(sm.cfg.LoseTones)
}

func (sm *SoundManager) play(freqs []float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || len(freqs) == 0 {
		return
	}
	speaker.Lock()
	sm.mixer.Add(Jingle(freqs, sm.note, sm.cfg.Volume, sm.rate))
	speaker.Unlock()
}

// Cleanup silences everything. The speaker itself stays open.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Open creates and initializes a manager, logging and returning a silent
// manager if the audio device cannot be opened.
func Open(cfg config.AudioConfig, note time.Duration, log *slog.Logger) *SoundManager {
	sm := NewSoundManager(cfg, note)
	if err := sm.Initialize(); err != nil {
		log.Warn("audio unavailable, continuing without sound", "error", err)
	}
	return sm
}
