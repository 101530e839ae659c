package embedded

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestDefaultDataFiles(t *testing.T) {
	Reset()

	for _, path := range []string{"data/presets.yaml", "data/viewer.yaml"} {
		if !Exists(path) {
			t.Errorf("Exists(%q) = false, want true", path)
		}
	}

	data, err := ReadFile("./data/presets.yaml")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "presets:") {
		t.Error("presets.yaml missing top-level presets key")
	}
}

func TestUnknownPrefix(t *testing.T) {
	Reset()

	tests := []string{"assets/test.png", "presets.yaml", "/data/presets.yaml"}
	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			_, err := ReadFile(path)
			if err == nil {
				t.Fatalf("ReadFile(%q) expected error", path)
			}
			if !strings.Contains(err.Error(), "unknown resource path prefix") {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestInitOverridesData(t *testing.T) {
	defer Reset()

	Init(fstest.MapFS{
		"data/presets.yaml": {Data: []byte("presets: []\n")},
		"data/extra.yaml":   {Data: []byte("x: 1\n")},
	})

	if !IsInitialized() {
		t.Error("IsInitialized() = false after Init")
	}
	if !Exists("data/extra.yaml") {
		t.Error("override file not visible")
	}
	if Exists("data/viewer.yaml") {
		t.Error("default file still visible after override")
	}

	matches, err := Glob("data/*.yaml")
	if err != nil {
		t.Fatalf("Glob() error = %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Glob() = %v, want 2 files", matches)
	}

	info, err := Stat("data/extra.yaml")
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Size() != 5 {
		t.Errorf("Size() = %d, want 5", info.Size())
	}
}

func TestReadDirDefault(t *testing.T) {
	Reset()

	entries, err := ReadDir("data")
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) < 2 {
		t.Errorf("ReadDir() returned %d entries, want at least 2", len(entries))
	}
}
