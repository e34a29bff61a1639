package monitoring

import (
	"fmt"
	"testing"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	called := false
	SetLogger(func(format string, v ...interface{}) {
		called = true
	})
	Logf("loaded %d rows", 10)
	if !called {
		t.Error("custom logger was not called")
	}

	// A nil logger must become a no-op rather than panicking.
	called = false
	SetLogger(nil)
	Logf("loaded %d rows", 10)
	if called {
		t.Error("no-op logger should not have triggered callback")
	}
}

func TestLogf_Default(t *testing.T) {
	if Logf == nil {
		t.Error("Logf should not be nil by default")
	}

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Logf panicked: %v", r)
		}
	}()

	Logf("test message: %s", "value")
}

func TestSetVerbose(t *testing.T) {
	originalLogf, originalDebugf := Logf, Debugf
	defer func() {
		Logf = originalLogf
		Debugf = originalDebugf
	}()

	var lines []string
	SetLogger(func(format string, v ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, v...))
	})

	SetVerbose(false)
	Debugf("hidden %d", 1)
	if len(lines) != 0 {
		t.Fatalf("expected no output with verbose off, got %q", lines)
	}

	SetVerbose(true)
	Debugf("group %s has %d points", "Marker 1", 3)
	if len(lines) != 1 {
		t.Fatalf("expected one line with verbose on, got %d", len(lines))
	}
	if want := "debug: group Marker 1 has 3 points"; lines[0] != want {
		t.Errorf("line = %q, want %q", lines[0], want)
	}
}
