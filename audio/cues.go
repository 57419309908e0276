package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/sonar-maze/engine"
	"github.com/lixenwraith/sonar-maze/parameter"
	"github.com/lixenwraith/sonar-maze/vmath"
)

// Cue names one feedback sound
type Cue int

const (
	CueLocatorTick Cue = iota
	CueExitPing
	CueDetectorSweep
	CueDangerAlarm
	CueWin
	CueLoss
)

func (c Cue) String() string {
	switch c {
	case CueLocatorTick:
		return "locator-tick"
	case CueExitPing:
		return "exit-ping"
	case CueDetectorSweep:
		return "detector-sweep"
	case CueDangerAlarm:
		return "danger-alarm"
	case CueWin:
		return "win"
	case CueLoss:
		return "loss"
	default:
		return "unknown"
	}
}

// Params shape a cue at play time
type Params struct {
	// Distance is the hit distance as a fraction of sensor range, near is higher pitched
	Distance float64
	// Pan is the stereo position, -1 left to 1 right
	Pan float64
}

// CuesFor maps session events to the cues they trigger, outcome cues first
func CuesFor(ev engine.Events) []Cue {
	var cues []Cue
	if ev.Has(engine.EventWon) {
		cues = append(cues, CueWin)
	}
	if ev.Has(engine.EventLost) {
		cues = append(cues, CueLoss)
	}
	if ev.Has(engine.EventExitPinged) {
		cues = append(cues, CueExitPing)
	} else if ev.Has(engine.EventLocatorHit) {
		cues = append(cues, CueLocatorTick)
	}
	if ev.Has(engine.EventDetectorFired) {
		cues = append(cues, CueDetectorSweep)
	}
	if ev.Has(engine.EventDangerRevealed) {
		cues = append(cues, CueDangerAlarm)
	}
	return cues
}

// CueDuration returns the length of a cue
func CueDuration(c Cue) time.Duration {
	switch c {
	case CueLocatorTick, CueExitPing:
		return parameter.LocatorTickDuration
	case CueDetectorSweep:
		return parameter.DetectorSweepDuration
	case CueDangerAlarm:
		return parameter.DangerAlarmDuration
	case CueWin:
		return parameter.WinNote1Duration + parameter.WinNote2Duration
	case CueLoss:
		return parameter.LossDuration
	default:
		return 0
	}
}

// NewCue builds the streamer for a cue at unit volume, nil for unknown cues
func NewCue(c Cue, p Params, rate beep.SampleRate) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueLocatorTick:
		s = locatorTick(p.Distance, rate)
	case CueExitPing:
		s = exitPing(rate)
	case CueDetectorSweep:
		s = detectorSweep(rate)
	case CueDangerAlarm:
		s = dangerAlarm(rate)
	case CueWin:
		s = winChime(rate)
	case CueLoss:
		s = lossBuzz(rate)
	default:
		return nil
	}
	if p.Pan != 0 {
		s = newPan(s, p.Pan)
	}
	return s
}

// locatorTick is a short blip, pitched from near to far by distance
func locatorTick(distance float64, rate beep.SampleRate) beep.Streamer {
	freq := vmath.Lerp(parameter.LocatorTickFreqNear, parameter.LocatorTickFreqFar, vmath.Clamp(distance, 0, 1))
	osc := NewOscillator(freq, parameter.LocatorTickDuration, WaveSine, rate)
	shaped := NewEnvelope(osc, parameter.LocatorTickDuration, parameter.LocatorTickAttack, parameter.LocatorTickRelease, rate)
	return newVolume(shaped, 0.4)
}

// exitPing layers a pure tone over the tick so the exit stands out
func exitPing(rate beep.SampleRate) beep.Streamer {
	n := rate.N(parameter.LocatorTickDuration)
	tone, err := generators.SineTone(rate, parameter.ExitPingFreq)
	if err != nil {
		tone = NewOscillator(parameter.ExitPingFreq, parameter.LocatorTickDuration, WaveSine, rate)
	}
	shaped := NewEnvelope(beep.Take(n, tone), parameter.LocatorTickDuration, parameter.LocatorTickAttack, parameter.LocatorTickRelease, rate)
	return beep.Mix(newVolume(shaped, 0.6), locatorTick(0, rate))
}

// detectorSweep is a rising chirp
func detectorSweep(rate beep.SampleRate) beep.Streamer {
	chirp := NewChirp(300, 1200, parameter.DetectorSweepDuration, WaveSine, rate)
	shaped := NewEnvelope(chirp, parameter.DetectorSweepDuration, parameter.DetectorSweepAttack, parameter.DetectorSweepRelease, rate)
	return newVolume(shaped, 0.35)
}

// dangerAlarm is a low square pulse
func dangerAlarm(rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(parameter.DangerAlarmFreq, parameter.DangerAlarmDuration, WaveSquare, rate)
	shaped := NewEnvelope(osc, parameter.DangerAlarmDuration, 5*time.Millisecond, 60*time.Millisecond, rate)
	return newVolume(shaped, 0.3)
}

// winChime is a two-note rise (B5, E6)
func winChime(rate beep.SampleRate) beep.Streamer {
	n1 := NewOscillator(987.77, parameter.WinNote1Duration, WaveSquare, rate)
	n1Shaped := NewEnvelope(n1, parameter.WinNote1Duration, 5*time.Millisecond, 40*time.Millisecond, rate)

	n2 := NewOscillator(1318.51, parameter.WinNote2Duration, WaveSquare, rate)
	n2Shaped := NewEnvelope(n2, parameter.WinNote2Duration, 5*time.Millisecond, 200*time.Millisecond, rate)

	return newVolume(beep.Seq(n1Shaped, n2Shaped), 0.3)
}

// lossBuzz is a harsh falling saw with a noise bed
func lossBuzz(rate beep.SampleRate) beep.Streamer {
	saw := NewChirp(parameter.LossFreq*2, parameter.LossFreq, parameter.LossDuration, WaveSaw, rate)
	sawShaped := NewEnvelope(saw, parameter.LossDuration, 10*time.Millisecond, 400*time.Millisecond, rate)

	noise := NewOscillator(0, parameter.LossDuration, WaveNoise, rate)
	noiseShaped := NewEnvelope(noise, parameter.LossDuration, 10*time.Millisecond, 300*time.Millisecond, rate)

	return beep.Mix(newVolume(sawShaped, 0.5), newVolume(noiseShaped, 0.15))
}
