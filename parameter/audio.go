package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate     = 44100
	AudioBufferDuration = 100 * time.Millisecond
	AudioMasterVolume   = 0.5
)

// Locator Tick
const (
	LocatorTickDuration = 30 * time.Millisecond
	LocatorTickAttack   = 2 * time.Millisecond
	LocatorTickRelease  = 20 * time.Millisecond

	// LocatorTickFreqNear and LocatorTickFreqFar map hit distance to pitch
	LocatorTickFreqNear = 1760.0
	LocatorTickFreqFar  = 440.0

	// ExitPingFreq marks a locator hit on the exit cell
	ExitPingFreq = 1318.51
)

// Detector Sweep
const (
	DetectorSweepDuration = 250 * time.Millisecond
	DetectorSweepAttack   = 20 * time.Millisecond
	DetectorSweepRelease  = 150 * time.Millisecond
)

// Danger Alarm
const (
	DangerAlarmDuration = 180 * time.Millisecond
	DangerAlarmFreq     = 140.0
)

// Outcome Cues
const (
	WinNote1Duration = 120 * time.Millisecond
	WinNote2Duration = 300 * time.Millisecond
	LossDuration     = 600 * time.Millisecond
	LossFreq         = 90.0
)
