// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package shutil provides utilities for shell-like command lines.
package shutil

import "strings"

// Split splits a command line into tokens.
//
// Unquoted whitespace (space, tab, CR, LF) separates tokens.
// A single or double quote starts a quoted span which is closed by
// the same quote character; whitespace in the span doesn't separate tokens.
// Outside quotes, backslash escapes the next character.
// Inside quotes, backslash escapes only the current quote character
// or another backslash, and is kept literally otherwise.
// An unterminated quote runs to the end of cmdline.
// Split never returns empty tokens.
func Split(cmdline string) []string {
	var args []string
	var sb strings.Builder
	sb.Grow(len(cmdline))
	var quote rune
	escaped := false
	for _, ch := range cmdline {
		if escaped {
			escaped = false
			if quote != 0 && ch != quote && ch != '\\' {
				sb.WriteByte('\\')
			}
			sb.WriteRune(ch)
			continue
		}
		if quote != 0 {
			switch ch {
			case quote:
				quote = 0
			case '\\':
				escaped = true
			default:
				sb.WriteRune(ch)
			}
			continue
		}
		switch ch {
		case '\\':
			escaped = true
		case '"', '\'':
			quote = ch
		case ' ', '\t', '\r', '\n':
			if sb.Len() > 0 {
				args = append(args, sb.String())
				sb.Reset()
			}
		default:
			sb.WriteRune(ch)
		}
	}
	if escaped {
		// dangling backslash at the end.
		sb.WriteByte('\\')
	}
	if sb.Len() > 0 {
		args = append(args, sb.String())
	}
	return args
}
