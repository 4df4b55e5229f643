package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/pthm-cable/foodchain/config"
)

func TestToneLengthAndRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	s := NewTone(440, 10*time.Millisecond, rate)

	total := 0
	buf := make([][2]float64, 128)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if math.Abs(buf[i][0]) > 1 || buf[i][0] != buf[i][1] {
				t.Fatalf("sample %d = %v", total+i, buf[i])
			}
		}
		total += n
		if !ok {
			break
		}
	}
	if want := rate.N(10 * time.Millisecond); total != want {
		t.Errorf("streamed %d samples, want %d", total, want)
	}
}

func TestJingleLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	freqs := []float64{440, 550, 660}
	s := Jingle(freqs, 50*time.Millisecond, 0.5, rate)

	total := 0
	buf := make([][2]float64, 256)
	peak := 0.0
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok {
			break
		}
	}
	if want := len(freqs) * rate.N(50*time.Millisecond); total != want {
		t.Errorf("jingle has %d samples, want %d", total, want)
	}
	if peak == 0 || peak > 0.5+1e-9 {
		t.Errorf("peak = %v, want in (0, 0.5]", peak)
	}
}

func TestSilentVolume(t *testing.T) {
	s := Jingle([]float64{440}, 20*time.Millisecond, 0, beep.SampleRate(8000))
	buf := make([][2]float64, 64)
	n, _ := s.Stream(buf)
	for i := 0; i < n; i++ {
		if buf[i][0] != 0 {
			t.Fatalf("sample %d = %v, want silence", i, buf[i][0])
		}
	}
}

func TestDisabledManagerIsSilent(t *testing.T) {
	cfg := config.AudioConfig{Enabled: false, SampleRate: 44100, WinTones: []float64{440}}
	sm := NewSoundManager(cfg, 100*time.Millisecond)

	if err := sm.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if sm.Ready() {
		t.Error("disabled manager reports ready")
	}
	// No speaker was opened; these must not block or panic.
	sm.OnWin()
	sm.OnLose()
	sm.Cleanup()
}

func TestInvalidSampleRate(t *testing.T) {
	sm := NewSoundManager(config.AudioConfig{Enabled: true}, time.Millisecond)
	if err := sm.Initialize(); err == nil {
		t.Error("expected error for zero sample rate")
	}
}
