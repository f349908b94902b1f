// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package ui provides user interface functionalities.
//
// It defines Sink, the diagnostic port used by project import to report
// progress and absorbed errors, and its implementations.
package ui

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Channel tags diagnostic messages with the component that emitted them.
type Channel string

const (
	// ChannelCompDB is used for compile-command database processing.
	ChannelCompDB Channel = "compdb"
	// ChannelRSP is used for response file expansion.
	ChannelRSP Channel = "rsp"
	// ChannelLDScript is used for linker script resolution.
	ChannelLDScript Channel = "ldscript"
)

// Sink receives channel-tagged diagnostic messages.
// Implementations must be safe for concurrent use, and must not block
// the caller for long or fail it.
type Sink interface {
	// Infof reports progress.
	Infof(ch Channel, format string, args ...any)
	// Warningf reports an absorbed problem.
	Warningf(ch Channel, format string, args ...any)
	// Errorf reports an absorbed error.
	Errorf(ch Channel, format string, args ...any)
}

// Discard is a Sink that drops all messages.
var Discard Sink = discard{}

type discard struct{}

func (discard) Infof(Channel, string, ...any)    {}
func (discard) Warningf(Channel, string, ...any) {}
func (discard) Errorf(Channel, string, ...any)   {}

// IsTerminal reports whether stdout is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// https://en.wikipedia.org/wiki/ANSI_escape_code#SGR_(Select_Graphic_Rendition)_parameters
type SGRCode int

const (
	Bold SGRCode = iota
	Reset
)

var sgrEscSeq = map[SGRCode]string{
	Bold:  "\033[1m",
	Reset: "\033[0m",
}

func (s SGRCode) String() string {
	return sgrEscSeq[s]
}

// SGR formats s in SGR (select graphic rendition).
func SGR(n SGRCode, s string) string {
	return fmt.Sprintf("%s%s%s", n, s, Reset)
}

// StripANSIEscapeCodes strips ANSI escape codes.
func StripANSIEscapeCodes(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\033' {
			sb.WriteByte(s[i])
			continue
		}
		// Only strip CSIs.
		if i+1 >= len(s) {
			break
		}
		if s[i+1] != '[' {
			continue
		}
		i += 2
		// Skip everything up to and including the next [a-zA-Z].
		for i < len(s) && !((s[i] >= 'a' && s[i] <= 'z') || s[i] >= 'A' && s[i] <= 'Z') {
			i++
		}
	}
	return sb.String()
}
