// Package logging provides debug logging and log redirection for slidedeck.
package logging

import (
	"io"
	"log"
	"os"
)

// DebugEnabled controls whether Debug() produces output.
// Set via -debug flag, DEBUG=1, or log.debug in config.
var DebugEnabled bool

// Debug logs a message only when DebugEnabled is true.
func Debug(format string, args ...any) {
	if DebugEnabled {
		log.Printf("DEBUG: "+format, args...)
	}
}

// FromEnv turns on debug output when DEBUG=1.
func FromEnv() {
	if os.Getenv("DEBUG") == "1" {
		DebugEnabled = true
	}
}

// Silence discards standard log output. Used while a full-screen UI owns
// the terminal and no log file was configured.
func Silence() {
	log.SetOutput(io.Discard)
}
