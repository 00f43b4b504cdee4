package debug

import (
	"bytes"
	"strings"
	"testing"
)

// capture enables debug output into a buffer for the duration of the test.
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetNoColor(true)
	SetDebug(true)
	t.Cleanup(func() {
		SetDebug(false)
		SetOutput(nil)
	})
	return &buf
}

func TestSetDebug(t *testing.T) {
	// Initially disabled
	SetDebug(false)
	if IsEnabled() {
		t.Error("Debug should be disabled initially")
	}

	// Enable
	SetDebug(true)
	if !IsEnabled() {
		t.Error("Debug should be enabled")
	}

	// Disable again
	SetDebug(false)
	if IsEnabled() {
		t.Error("Debug should be disabled again")
	}
}

func TestDebugOutput(t *testing.T) {
	buf := capture(t)

	Debug("test message %s", "arg")

	output := buf.String()
	if !strings.Contains(output, "DEBU") {
		t.Errorf("Output should contain debug level, got: %s", output)
	}
	if !strings.Contains(output, "test message arg") {
		t.Errorf("Output should contain message, got: %s", output)
	}
	// Should contain timestamp
	if !strings.Contains(output, ":") {
		t.Errorf("Output should contain timestamp, got: %s", output)
	}
	if strings.Contains(output, "\x1b[") {
		t.Errorf("Output should not contain color codes, got: %q", output)
	}
}

func TestDebugDisabled(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })

	SetDebug(false)
	Debug("this should not appear")
	Debugw("nor this", "key", "value")
	DebugSection("nor this section")

	if buf.Len() != 0 {
		t.Errorf("Debug output should be empty when disabled, got: %s", buf.String())
	}
}

func TestDebugw(t *testing.T) {
	buf := capture(t)

	Debugw("dispatch", "action", "ADD_TEMPLATE_SUMMARY", "templates", 3)

	output := buf.String()
	if !strings.Contains(output, "dispatch") {
		t.Errorf("Output should contain message, got: %s", output)
	}
	if !strings.Contains(output, "action=ADD_TEMPLATE_SUMMARY") {
		t.Errorf("Output should contain action key, got: %s", output)
	}
	if !strings.Contains(output, "templates=3") {
		t.Errorf("Output should contain templates key, got: %s", output)
	}
}

func TestDebugSection(t *testing.T) {
	buf := capture(t)

	DebugSection("Test Section")

	if !strings.Contains(buf.String(), "=== Test Section ===") {
		t.Errorf("Output should contain section header, got: %s", buf.String())
	}
}

func TestDebugValue(t *testing.T) {
	buf := capture(t)

	DebugValue("key", "value")

	if !strings.Contains(buf.String(), "key = value") {
		t.Errorf("Output should contain key=value, got: %s", buf.String())
	}
}

func TestDebugJSON(t *testing.T) {
	buf := capture(t)

	testData := map[string]interface{}{
		"foo": "bar",
		"num": 42,
	}
	DebugJSON("testData", testData)

	output := buf.String()
	if !strings.Contains(output, "testData:") {
		t.Errorf("Output should contain key, got: %s", output)
	}
	if !strings.Contains(output, "\"foo\"") {
		t.Errorf("Output should contain JSON data, got: %s", output)
	}
}
