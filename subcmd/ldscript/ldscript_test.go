// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package ldscript

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestRun(t *testing.T) {
	root := t.TempDir()
	for _, fname := range []string{"CMakeLists.txt", "app_RAM.ld", "app_ROM.ld", "build/compile_commands.json"} {
		fullpath := filepath.Join(root, fname)
		err := os.MkdirAll(filepath.Dir(fullpath), 0755)
		if err != nil {
			t.Fatal(err)
		}
		err = os.WriteFile(fullpath, nil, 0644)
		if err != nil {
			t.Fatal(err)
		}
	}
	dbPath := filepath.Join(root, "build", "compile_commands.json")

	c := &run{keyword: "rom"}
	var buf bytes.Buffer
	err := c.run(context.Background(), &buf, []string{dbPath})
	if err != nil || buf.String() != "app_ROM.ld\n" {
		t.Errorf("run(-keyword rom)=%q, %v; want %q, nil", buf.String(), err, "app_ROM.ld\n")
	}

	c = &run{keyword: "FLASH"}
	buf.Reset()
	err = c.run(context.Background(), &buf, []string{dbPath})
	if err == nil {
		t.Errorf("run(-keyword FLASH)=%q, nil; want ambiguous error", buf.String())
	}
}
