package logging

import (
	"bytes"
	"log"
	"os"
	"testing"
)

func TestDebugDisabled(t *testing.T) {
	DebugEnabled = false
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	Debug("this should not appear")

	if buf.Len() > 0 {
		t.Errorf("Debug output when disabled: %s", buf.String())
	}
}

func TestDebugEnabled(t *testing.T) {
	DebugEnabled = true
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	Debug("slide %d", 3)

	if !bytes.Contains(buf.Bytes(), []byte("DEBUG: slide 3")) {
		t.Errorf("Expected debug output, got: %s", buf.String())
	}
	DebugEnabled = false
}

func TestFromEnv(t *testing.T) {
	DebugEnabled = false
	t.Setenv("DEBUG", "1")
	FromEnv()
	if !DebugEnabled {
		t.Error("DEBUG=1 should enable debug output")
	}
	DebugEnabled = false
}
