// Package audio synthesizes the sonar feedback cues and plays them through beep's speaker
package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/sonar-maze/config"
	"github.com/lixenwraith/sonar-maze/parameter"
)

// SoundManager mixes cues onto the speaker. Safe for concurrent use; the speaker
// pulls from the mixer on its own goroutine.
type SoundManager struct {
	mu          sync.Mutex
	cfg         config.Audio
	rate        beep.SampleRate
	mixer       *beep.Mixer
	master      *beep.Ctrl
	initialized bool
	muted       bool
	log         logrus.FieldLogger

	// Played counts cues handed to the mixer, per cue
	played map[Cue]int
}

func NewSoundManager(cfg config.Audio, log logrus.FieldLogger) *SoundManager {
	if log == nil {
		log = logrus.StandardLogger()
	}
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = parameter.AudioSampleRate
	}
	mixer := &beep.Mixer{}
	return &SoundManager{
		cfg:    cfg,
		rate:   beep.SampleRate(rate),
		mixer:  mixer,
		master: &beep.Ctrl{Streamer: mixer},
		log:    log.WithField("component", "audio"),
		played: make(map[Cue]int),
	}
}

// Initialize opens the speaker; a disabled config leaves the manager silent
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}

	if err := speaker.Init(sm.rate, sm.rate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(sm.master)
	sm.initialized = true
	sm.log.WithField("sampleRate", int(sm.rate)).Info("speaker initialized")
	return nil
}

// Cleanup silences and detaches every playing cue
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.master.Paused = true
	sm.mixer.Clear()
	speaker.Unlock()

	speaker.Clear()
	sm.initialized = false
}

// SetMuted pauses or resumes all output without dropping queued cues
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.muted = muted
	if sm.initialized {
		speaker.Lock()
		sm.master.Paused = muted
		speaker.Unlock()
	}
}

func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// Play queues one cue at the configured volume; no-op before Initialize or while muted
func (sm *SoundManager) Play(c Cue, p Params) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}

	s := NewCue(c, p, sm.rate)
	if s == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(newVolume(s, sm.cfg.Volume))
	speaker.Unlock()
	sm.played[c]++
}

// PlayAll queues every cue in order with shared params
func (sm *SoundManager) PlayAll(cues []Cue, p Params) {
	for _, c := range cues {
		sm.Play(c, p)
	}
}

// Played returns how many times c reached the mixer
func (sm *SoundManager) Played(c Cue) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played[c]
}
