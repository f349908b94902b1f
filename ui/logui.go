// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package ui

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// LogUI is a log-based Sink.
type LogUI struct {
	logger *log.Logger
}

// NewLogUI returns a LogUI writing to logger.
// If logger is nil, the default logger is used.
func NewLogUI(logger *log.Logger) *LogUI {
	if logger == nil {
		logger = log.Default()
	}
	return &LogUI{logger: logger}
}

// Infof reports at info level, stripping ansi escape sequence.
func (l *LogUI) Infof(ch Channel, format string, args ...any) {
	l.logger.Helper()
	l.logger.Info(StripANSIEscapeCodes(fmt.Sprintf(format, args...)), "channel", string(ch))
}

// Warningf reports at warn level, stripping ansi escape sequence.
func (l *LogUI) Warningf(ch Channel, format string, args ...any) {
	l.logger.Helper()
	l.logger.Warn(StripANSIEscapeCodes(fmt.Sprintf(format, args...)), "channel", string(ch))
}

// Errorf reports at error level, stripping ansi escape sequence.
func (l *LogUI) Errorf(ch Channel, format string, args ...any) {
	l.logger.Helper()
	l.logger.Error(StripANSIEscapeCodes(fmt.Sprintf(format, args...)), "channel", string(ch))
}
