package presentation

import (
	"time"

	"slidedeck/internal/autoplay"
	"slidedeck/internal/nav"
)

// Settings is the user-adjustable surface of a session.
type Settings struct {
	Preview         bool
	Wrap            bool
	Layout          nav.Layout
	Interval        time.Duration
	Reverse         bool
	AtomicLandscape bool
}

func DefaultSettings() Settings {
	return Settings{
		Layout:          nav.Single,
		Interval:        autoplay.DefaultInterval,
		AtomicLandscape: true,
	}
}

func (s Settings) direction() autoplay.Direction {
	if s.Reverse {
		return autoplay.Reverse
	}
	return autoplay.Forward
}

// Status is the snapshot handed to the control panel after every change.
type Status struct {
	SessionID string
	Index     int
	Count     int
	Slide     string
	Settings  Settings
	Autoplay  bool
	Prompting bool
}
