// SPDX-License-Identifier: MIT

// Package logging builds the process-wide zerolog logger.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Profiles.
const (
	ProfileRuntime = "runtime"
	ProfileTest    = "test"
)

const app = "labyrinth"

// Configure builds the console logger for profile on w and installs it as
// the global zerolog logger. A parseable override wins over the profile
// level.
func Configure(w io.Writer, profile, override string) zerolog.Logger {
	l := New(w, LevelFor(profile, override))
	log.Logger = l

	return l
}

// New returns a console logger on w, used directly by tests.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}

	return zerolog.New(output).Level(level).With().Timestamp().Str("app", app).Logger()
}

// LevelFor resolves a profile's level, letting override win when it
// parses.
func LevelFor(profile, override string) zerolog.Level {
	level := zerolog.InfoLevel
	if profile == ProfileTest {
		level = zerolog.WarnLevel
	}
	if override = strings.TrimSpace(override); override != "" {
		if l, err := zerolog.ParseLevel(strings.ToLower(override)); err == nil && l != zerolog.NoLevel {
			level = l
		}
	}

	return level
}
