package main

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Action is what a running tween drives
type Action struct {
	onChange func(float32)
	onFinish []func()
}

func (a *Action) addOnFinish(f func()) {
	a.onFinish = append(a.onFinish, f)
}

// Tweens advances every running tween once per frame and drops the finished ones
type Tweens struct {
	running map[*gween.Tween]*Action
}

func NewTweens() *Tweens {
	return &Tweens{running: make(map[*gween.Tween]*Action)}
}

// Start runs a tween from begin to end over d, calling onChange with each value
func (ts *Tweens) Start(begin, end float32, d time.Duration, fn ease.TweenFunc, onChange func(float32)) *Action {
	a := &Action{onChange: onChange}
	ts.running[gween.New(begin, end, float32(d.Seconds()), fn)] = a
	if onChange != nil {
		onChange(begin)
	}
	return a
}

func (ts *Tweens) Update(dt time.Duration) {
	step := float32(dt.Seconds())
	for t, a := range ts.running {
		curr, finished := t.Update(step)
		if a.onChange != nil {
			a.onChange(curr)
		}
		if finished {
			for _, onFinish := range a.onFinish {
				onFinish()
			}
			delete(ts.running, t)
		}
	}
}

func (ts *Tweens) Len() int {
	return len(ts.running)
}

func (ts *Tweens) Clear() {
	clear(ts.running)
}
