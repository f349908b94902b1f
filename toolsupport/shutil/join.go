// Copyright 2023 The Chromium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package shutil

import "strings"

// Join joins command line args to a single string.
// Args containing whitespace, quotes or backslashes are double-quoted
// so that Split(Join(args)) returns args for non-empty args.
func Join(args []string) string {
	var sb strings.Builder
	for i, arg := range args {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if arg != "" && !strings.ContainsAny(arg, " \t\r\n\"'\\") {
			sb.WriteString(arg)
			continue
		}
		sb.WriteByte('"')
		for _, ch := range arg {
			if ch == '"' || ch == '\\' {
				sb.WriteByte('\\')
			}
			sb.WriteRune(ch)
		}
		sb.WriteByte('"')
	}
	return sb.String()
}
