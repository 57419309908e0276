package main

import (
	"time"

	"github.com/lixenwraith/sonar-maze/physics"
)

// Terminals report key presses and auto-repeats but never releases, so a key counts as
// held until holdWindow passes without another repeat
const holdWindow = 150 * time.Millisecond

// heldKeys tracks per-axis movement and the locator trigger from repeating key events
type heldKeys struct {
	dx, dy          int
	xUntil, yUntil  time.Time
	locateUntil     time.Time
	mouseLocate     bool
	detectRequested bool
}

func (h *heldKeys) pressX(dir int, now time.Time) {
	h.dx = dir
	h.xUntil = now.Add(holdWindow)
}

func (h *heldKeys) pressY(dir int, now time.Time) {
	h.dy = dir
	h.yUntil = now.Add(holdWindow)
}

func (h *heldKeys) pressLocate(now time.Time) {
	h.locateUntil = now.Add(holdWindow)
}

// intent returns the movement still held at now
func (h *heldKeys) intent(now time.Time) physics.Intent {
	var in physics.Intent
	if now.Before(h.xUntil) {
		in.DX = h.dx
	}
	if now.Before(h.yUntil) {
		in.DY = h.dy
	}
	return in
}

func (h *heldKeys) locating(now time.Time) bool {
	return h.mouseLocate || now.Before(h.locateUntil)
}

// takeDetect reports and clears a pending detector trigger
func (h *heldKeys) takeDetect() bool {
	d := h.detectRequested
	h.detectRequested = false
	return d
}

func (h *heldKeys) reset() {
	*h = heldKeys{}
}
