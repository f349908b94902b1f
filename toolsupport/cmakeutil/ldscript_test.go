// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package cmakeutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.chromium.org/infra/build/fwimport/build"
	"go.chromium.org/infra/build/fwimport/ui"
)

func setupFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for fname, content := range files {
		fullpath := filepath.Join(dir, fname)
		err := os.MkdirAll(filepath.Dir(fullpath), 0755)
		if err != nil {
			t.Fatal(err)
		}
		err = os.WriteFile(fullpath, []byte(content), 0644)
		if err != nil {
			t.Fatal(err)
		}
	}
}

func newLayout(t *testing.T, files map[string]string) (Layout, *ui.Recorder) {
	t.Helper()
	root := t.TempDir()
	setupFiles(t, root, files)
	rec := &ui.Recorder{}
	return Layout{
		Root:     build.NewPath(root),
		BuildDir: filepath.Join(root, "build"),
		Sink:     rec,
	}, rec
}

func TestFromLinkTranscripts(t *testing.T) {
	for _, tc := range []struct {
		name  string
		files map[string]string
		want  string
	}{
		{
			name: "separate",
			files: map[string]string{
				"build/CMakeFiles/app.elf.dir/link.txt": "arm-none-eabi-gcc -mcpu=cortex-m4 -T ../STM32F407VGTx_FLASH.ld CMakeFiles/app.elf.dir/main.c.obj -o app.elf",
				"STM32F407VGTx_FLASH.ld":                "MEMORY {}",
			},
			want: "STM32F407VGTx_FLASH.ld",
		},
		{
			name: "joined-wl",
			files: map[string]string{
				"build/CMakeFiles/app.elf.dir/link.txt": "arm-none-eabi-gcc -Wl,--gc-sections,-T,../ld/app.ld -o app.elf",
				"ld/app.ld":                             "MEMORY {}",
			},
			want: "ld/app.ld",
		},
		{
			name: "lexical-order",
			files: map[string]string{
				"build/CMakeFiles/b.elf.dir/link.txt": "gcc -T../b.ld",
				"build/CMakeFiles/a.elf.dir/link.txt": "gcc -T../a.ld",
				"a.ld":                                "",
				"b.ld":                                "",
			},
			want: "a.ld",
		},
		{
			name: "missing-script",
			files: map[string]string{
				"build/CMakeFiles/app.elf.dir/link.txt": "gcc -T../gone.ld -o app.elf",
			},
			want: "",
		},
		{
			name: "no-transcript",
			files: map[string]string{
				"build/CMakeFiles/app.elf.dir/flags.make": "C_FLAGS = -O2",
				"build/CMakeFiles/cmake.check_cache":      "",
			},
			want: "",
		},
		{
			name:  "no-build-dir",
			files: map[string]string{},
			want:  "",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			l, _ := newLayout(t, tc.files)
			got, err := FromLinkTranscripts(l)
			if err != nil || got != tc.want {
				t.Errorf("FromLinkTranscripts()=%q, %v; want %q, nil", got, err, tc.want)
			}
		})
	}
}

func TestFromRootScripts(t *testing.T) {
	for _, tc := range []struct {
		name    string
		files   []string
		want    string
		wantErr error
	}{
		{
			name:  "single",
			files: []string{"STM32F103C8Tx.ld", "main.c"},
			want:  "STM32F103C8Tx.ld",
		},
		{
			name:  "prefer-flash",
			files: []string{"STM32F407_RAM.ld", "STM32F407_flash.ld", "bootloader.lds"},
			want:  "STM32F407_flash.ld",
		},
		{
			name:  "prefer-flash-enumeration-order",
			files: []string{"z_FLASH.lds", "a_RAM.ld", "b_SRAM.ld"},
			want:  "z_FLASH.lds",
		},
		{
			name:    "ambiguous",
			files:   []string{"a.ld", "b.ld"},
			wantErr: ErrAmbiguous,
		},
		{
			name:  "none",
			files: []string{"main.c", "CMakeLists.txt"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			files := make(map[string]string)
			for _, f := range tc.files {
				files[f] = ""
			}
			l, _ := newLayout(t, files)
			got, err := FromRootScripts(l)
			if got != tc.want || !errors.Is(err, tc.wantErr) {
				t.Errorf("FromRootScripts()=%q, %v; want %q, %v", got, err, tc.want, tc.wantErr)
			}
		})
	}
}

func TestFromRootScripts_Symlink(t *testing.T) {
	l, _ := newLayout(t, map[string]string{
		"ld/real.ld": "MEMORY {}",
	})
	root := l.Root.Root
	if err := os.Symlink(filepath.Join("ld", "real.ld"), filepath.Join(root, "app.ld")); err != nil {
		t.Skipf("symlink: %v", err)
	}
	// dangling and directory links are not scripts.
	if err := os.Symlink("missing.ld", filepath.Join(root, "gone.ld")); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink("ld", filepath.Join(root, "dir.ld")); err != nil {
		t.Fatal(err)
	}
	got, err := FromRootScripts(l)
	if got != "app.ld" || err != nil {
		t.Errorf("FromRootScripts()=%q, %v; want %q, nil", got, err, "app.ld")
	}
}

func TestFromRootScripts_AmbiguousReportsError(t *testing.T) {
	l, rec := newLayout(t, map[string]string{
		"a.ld": "",
		"b.ld": "",
	})
	_, err := FromRootScripts(l)
	if !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("FromRootScripts()=_, %v; want %v", err, ErrAmbiguous)
	}
	if n := len(rec.Filter(ui.ChannelLDScript, ui.LevelError)); n != 1 {
		t.Errorf("ldscript errors=%d; want 1", n)
	}
}

func TestSelectScript_Keyword(t *testing.T) {
	got, err := selectScript([]string{"app_rom.ld", "app_ram.ld"}, "rom", ui.Discard)
	if err != nil || got != "app_rom.ld" {
		t.Errorf(`selectScript(_, "rom")=%q, %v; want "app_rom.ld", nil`, got, err)
	}
}

func TestFromBuildDescriptor(t *testing.T) {
	for _, tc := range []struct {
		name  string
		files map[string]string
		want  string
	}{
		{
			name: "source-dir",
			files: map[string]string{
				"CMakeLists.txt":         "add_link_options(-T${CMAKE_SOURCE_DIR}/STM32F407VGTx_FLASH.ld)\n",
				"STM32F407VGTx_FLASH.ld": "",
			},
			want: "STM32F407VGTx_FLASH.ld",
		},
		{
			name: "literal",
			files: map[string]string{
				"CMakeLists.txt": `target_link_options(app PRIVATE -T "gd32vf103.lds" -nostartfiles)`,
				"gd32vf103.lds":  "",
			},
			want: "gd32vf103.lds",
		},
		{
			name: "variable",
			files: map[string]string{
				"CMakeLists.txt": "set(LINKER_SCRIPT ${PROJECT_SOURCE_DIR}/ld/app_FLASH.ld)\n" +
					"set(CMAKE_EXE_LINKER_FLAGS \"${CMAKE_EXE_LINKER_FLAGS} -Wl,-T${LINKER_SCRIPT}\")\n",
				"ld/app_FLASH.ld": "",
			},
			want: "ld/app_FLASH.ld",
		},
		{
			name: "missing-script",
			files: map[string]string{
				"CMakeLists.txt": "add_link_options(-T${CMAKE_SOURCE_DIR}/gone.ld)\n",
			},
			want: "",
		},
		{
			name: "no-descriptor",
			files: map[string]string{
				"app.ld": "",
			},
			want: "",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			l, _ := newLayout(t, tc.files)
			got, err := FromBuildDescriptor(l)
			if err != nil || got != tc.want {
				t.Errorf("FromBuildDescriptor()=%q, %v; want %q, nil", got, err, tc.want)
			}
		})
	}
}

func TestResolveLinkerScript(t *testing.T) {
	for _, tc := range []struct {
		name  string
		files map[string]string
		want  string
	}{
		{
			name: "transcript-first",
			files: map[string]string{
				"build/CMakeFiles/app.elf.dir/link.txt": "gcc -T ../ld/real.ld",
				"ld/real.ld":                            "",
				"root_FLASH.ld":                         "",
			},
			want: "ld/real.ld",
		},
		{
			name: "root-scripts",
			files: map[string]string{
				"CMakeLists.txt": "add_link_options(-T${CMAKE_SOURCE_DIR}/ld/other.ld)",
				"ld/other.ld":    "",
				"root.ld":        "",
			},
			want: "root.ld",
		},
		{
			name: "ambiguous-stops",
			files: map[string]string{
				"CMakeLists.txt": "add_link_options(-T${CMAKE_SOURCE_DIR}/ld/other.ld)",
				"ld/other.ld":    "",
				"a.ld":           "",
				"b.ld":           "",
			},
			want: "",
		},
		{
			name: "descriptor",
			files: map[string]string{
				"CMakeLists.txt": "add_link_options(-T${CMAKE_SOURCE_DIR}/ld/other.ld)",
				"ld/other.ld":    "",
			},
			want: "ld/other.ld",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			l, rec := newLayout(t, tc.files)
			got := ResolveLinkerScript(l)
			if got != tc.want {
				t.Errorf("ResolveLinkerScript()=%q; want %q", got, tc.want)
			}
			if len(rec.Filter(ui.ChannelLDScript, ui.LevelInfo)) == 0 {
				t.Errorf("ResolveLinkerScript() reported no outcome")
			}
		})
	}
}

func TestFirstOf(t *testing.T) {
	var calls []string
	strategy := func(name, script string, err error) Strategy {
		return func(Layout) (string, error) {
			calls = append(calls, name)
			return script, err
		}
	}
	errStop := errors.New("stop")
	for _, tc := range []struct {
		name       string
		strategies []Strategy
		want       string
		wantErr    error
		wantCalls  []string
	}{
		{
			name:       "first-success",
			strategies: []Strategy{strategy("a", "", nil), strategy("b", "b.ld", nil), strategy("c", "c.ld", nil)},
			want:       "b.ld",
			wantCalls:  []string{"a", "b"},
		},
		{
			name:       "stop-on-error",
			strategies: []Strategy{strategy("a", "", errStop), strategy("b", "b.ld", nil)},
			wantErr:    errStop,
			wantCalls:  []string{"a"},
		},
		{
			name:       "none",
			strategies: []Strategy{strategy("a", "", nil), strategy("b", "", nil)},
			wantCalls:  []string{"a", "b"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			calls = nil
			got, err := FirstOf(tc.strategies...)(Layout{})
			if got != tc.want || !errors.Is(err, tc.wantErr) {
				t.Errorf("FirstOf()=%q, %v; want %q, %v", got, err, tc.want, tc.wantErr)
			}
			if diff := cmp.Diff(tc.wantCalls, calls); diff != "" {
				t.Errorf("FirstOf() calls diff -want +got:\n%s", diff)
			}
		})
	}
}

func TestHasBuildDescriptor(t *testing.T) {
	dir := t.TempDir()
	if HasBuildDescriptor(dir) {
		t.Errorf("HasBuildDescriptor(%q)=true; want false", dir)
	}
	setupFiles(t, dir, map[string]string{DescriptorName: "project(app C)"})
	if !HasBuildDescriptor(dir) {
		t.Errorf("HasBuildDescriptor(%q)=false; want true", dir)
	}
}
