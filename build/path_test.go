// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package build

import (
	"path/filepath"
	"testing"
)

func TestPath_Normalize(t *testing.T) {
	root := t.TempDir()
	buildDir := filepath.Join(root, "build")
	absPath := filepath.Join(t.TempDir(), "include")
	path := NewPath(root)
	if err := path.Check(); err != nil {
		t.Fatalf("path.Check()=%v; want nil", err)
	}
	for _, tc := range []struct {
		in   string
		dir  string
		want string
	}{
		{
			in:   "foo",
			dir:  buildDir,
			want: "build/foo",
		},
		{
			in:   "../Core/Inc",
			dir:  buildDir,
			want: "Core/Inc",
		},
		{
			in:   "../Core/./Src/../Inc",
			dir:  buildDir,
			want: "Core/Inc",
		},
		{
			in:   filepath.Join(root, "Drivers", "CMSIS"),
			dir:  buildDir,
			want: "Drivers/CMSIS",
		},
		{
			in:   "..",
			dir:  buildDir,
			want: ".",
		},
		{
			in:   absPath,
			dir:  buildDir,
			want: filepath.ToSlash(absPath),
		},
		{
			in:   "../../outside",
			dir:  buildDir,
			want: filepath.ToSlash(filepath.Join(filepath.Dir(root), "outside")),
		},
		{
			in:   "inc",
			dir:  "build",
			want: "build/inc",
		},
		{
			in:   "",
			dir:  buildDir,
			want: "",
		},
	} {
		got := path.Normalize(tc.in, tc.dir)
		if got != tc.want {
			t.Errorf("path.Normalize(%q, %q)=%q; want %q", tc.in, tc.dir, got, tc.want)
		}
	}
}

func TestPath_Normalize_Idempotent(t *testing.T) {
	root := t.TempDir()
	path := NewPath(root)
	for _, in := range []string{
		"Core/Inc",
		filepath.Join(root, "Core", "Src", "main.c"),
		"/opt/gcc-arm/arm-none-eabi/include",
	} {
		once := path.Normalize(in, root)
		twice := path.Normalize(once, root)
		if once != twice {
			t.Errorf("path.Normalize(%q)=%q; applied twice=%q", in, once, twice)
		}
	}
}

func TestPath_Check(t *testing.T) {
	path := NewPath("relative/root")
	if err := path.Check(); err == nil {
		t.Errorf("path.Check()=nil for relative root; want error")
	}
}
