// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

// lifecycleState is the attach state of a core.
type lifecycleState uint8

const (
	stateDetached lifecycleState = iota
	stateAttached
)

func (s lifecycleState) String() string {
	if s == stateAttached {
		return "Attached"
	}
	return "Detached"
}

// lifecycle is the Detached/Attached state machine of a core. Properties
// register a replay action with it; entering Attached runs every replay in
// registration order against the freshly built resources.
type lifecycle struct {
	state   lifecycleState
	replays []func() error
}

func (l *lifecycle) attached() bool {
	return l.state == stateAttached
}

// track registers replay to run on every attach.
func (l *lifecycle) track(replay func() error) {
	l.replays = append(l.replays, replay)
}

// enterAttached switches to Attached and replays every property. If a
// replay fails the machine stays Detached and the error is returned; the
// caller releases whatever the earlier replays built.
func (l *lifecycle) enterAttached() error {
	l.state = stateAttached
	for _, replay := range l.replays {
		if err := replay(); err != nil {
			l.state = stateDetached
			return err
		}
	}
	return nil
}

func (l *lifecycle) enterDetached() {
	l.state = stateDetached
}

// property is a value whose change rebuilds a GPU resource.
type property[T any] struct {
	value T
	equal func(a, b T) bool

	// rebuild runs when the value changes while attached.
	rebuild func(T)

	// attach runs on every Detached to Attached transition.
	attach func(T) error
}

// newProperty creates a property and registers its attach action with lc.
func newProperty[T any](lc *lifecycle, initial T, equal func(a, b T) bool, rebuild func(T), attach func(T) error) *property[T] {
	p := &property[T]{value: initial, equal: equal, rebuild: rebuild, attach: attach}
	lc.track(func() error { return p.attach(p.value) })
	return p
}

// set stores v if it differs from the current value, calls invalidate and,
// when lc is attached, rebuilds immediately. It reports whether the value
// changed.
func (p *property[T]) set(lc *lifecycle, v T, invalidate func()) bool {
	if p.equal(p.value, v) {
		return false
	}
	p.value = v
	invalidate()
	if lc.attached() {
		p.rebuild(v)
	}
	return true
}

func equalComparable[T comparable](a, b T) bool {
	return a == b
}
