// Package audio plays short tone cues when a cosmic event is switched
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"

	"github.com/lixenwraith/orrery/engine"
)

const (
	sampleRate            = beep.SampleRate(48000)
	speakerBufferDuration = 100 * time.Millisecond
	defaultMasterVolume   = 0.6
	maxQueuedCues         = 4
)

// SoundManager owns the speaker and mixes event cues
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	played      int
}

// NewSoundManager creates an uninitialized manager, all calls are no-ops until Initialize succeeds
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: defaultMasterVolume,
	}
}

// Initialize opens the speaker
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(speakerBufferDuration)); err != nil {
		return errors.Wrap(err, "speaker init")
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences the mixer
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	// beep keeps the speaker open; clearing the mixer is enough to stop output
	sm.initialized = false
}

// SetVolume sets the master gain in [0, 1]
func (sm *SoundManager) SetVolume(v float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.volume = max(0, min(1, v))
}

// PlayEvent queues the cue for ev
func (sm *SoundManager) PlayEvent(ev engine.CosmicEvent) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	cue := EventCue(ev, sampleRate, sm.volume)
	if cue == nil {
		return
	}

	speaker.Lock()
	if sm.mixer.Len() >= maxQueuedCues {
		sm.mixer.Clear()
	}
	sm.mixer.Add(cue)
	speaker.Unlock()
	sm.played++
}

// OnEventChange is an engine.EventListener: switching on plays the event's cue, switching off the release cue
func (sm *SoundManager) OnEventChange(_, next engine.CosmicEvent) {
	sm.PlayEvent(next)
}

// Played reports how many cues reached the mixer
func (sm *SoundManager) Played() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played
}
