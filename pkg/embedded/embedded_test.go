package embedded

import (
	"errors"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/presets/default.yaml": {Data: []byte("particleCount: 150\n")},
		"data/presets/gentle.yaml":  {Data: []byte("particleCount: 50\n")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(testFS())

	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}
}

// TestReadFileNotInitialized 测试未初始化时调用 ReadFile
func TestReadFileNotInitialized(t *testing.T) {
	Reset()

	_, err := ReadFile("data/presets/default.yaml")
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile before Init: got %v, want ErrNotInitialized", err)
	}
	if Exists("data/presets/default.yaml") {
		t.Error("Exists before Init: got true, want false")
	}
}

func TestReadFile(t *testing.T) {
	Init(testFS())
	t.Cleanup(Reset)

	data, err := ReadFile("./data/presets/default.yaml")
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(data) != "particleCount: 150\n" {
		t.Errorf("ReadFile() = %q", data)
	}

	if _, err := ReadFile("assets/presets/default.yaml"); err == nil {
		t.Error("ReadFile with unknown prefix: expected error")
	}
}

func TestExistsAndGlob(t *testing.T) {
	Init(testFS())
	t.Cleanup(Reset)

	if !Exists("data/presets/gentle.yaml") {
		t.Error("Exists(gentle.yaml): got false, want true")
	}
	if Exists("data/presets/missing.yaml") {
		t.Error("Exists(missing.yaml): got true, want false")
	}

	matches, err := Glob("data/presets/*.yaml")
	if err != nil {
		t.Fatalf("Glob() error: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Glob() = %v, want 2 matches", matches)
	}
}
