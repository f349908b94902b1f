// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package ui

import (
	"fmt"
	"sync"
)

// Level is a severity of an Event.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// Event is a diagnostic message recorded by Recorder.
type Event struct {
	Channel Channel
	Level   Level
	Message string
}

// Recorder is a Sink that keeps events in memory.
// It optionally forwards events to another Sink.
type Recorder struct {
	// Next receives every event after it is recorded, if set.
	Next Sink

	mu     sync.Mutex
	events []Event
}

func (r *Recorder) record(ch Channel, level Level, msg string) {
	r.mu.Lock()
	r.events = append(r.events, Event{Channel: ch, Level: level, Message: msg})
	r.mu.Unlock()
}

// Infof records an info event.
func (r *Recorder) Infof(ch Channel, format string, args ...any) {
	r.record(ch, LevelInfo, fmt.Sprintf(format, args...))
	if r.Next != nil {
		r.Next.Infof(ch, format, args...)
	}
}

// Warningf records a warning event.
func (r *Recorder) Warningf(ch Channel, format string, args ...any) {
	r.record(ch, LevelWarning, fmt.Sprintf(format, args...))
	if r.Next != nil {
		r.Next.Warningf(ch, format, args...)
	}
}

// Errorf records an error event.
func (r *Recorder) Errorf(ch Channel, format string, args ...any) {
	r.record(ch, LevelError, fmt.Sprintf(format, args...))
	if r.Next != nil {
		r.Next.Errorf(ch, format, args...)
	}
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Filter returns recorded events on the channel at or above level.
func (r *Recorder) Filter(ch Channel, level Level) []Event {
	var ret []Event
	for _, e := range r.Events() {
		if e.Channel == ch && e.Level >= level {
			ret = append(ret, e)
		}
	}
	return ret
}
