package logging

import (
	"fmt"
	"strings"
	"sync"
)

// LevelT is the level of a recorded Entry
type LevelT string

// Levels of recorded entries
const (
	LevelDebug LevelT = "debug"
	LevelInfo  LevelT = "info"
	LevelWarn  LevelT = "warn"
	LevelError LevelT = "error"
)

// Entry is one line logged to a Recorder
type Entry struct {
	// Level the line was logged at
	Level LevelT

	// Message is the formatted line
	Message string
}

// Recorder is a Logger which keeps every line in memory. Used by tests to
// check what was logged.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func (r *Recorder) record(level LevelT, format string, data ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, Entry{
		Level:   level,
		Message: fmt.Sprintf(format, data...),
	})
}

// Debugf implements Logger
func (r *Recorder) Debugf(format string, data ...interface{}) {
	r.record(LevelDebug, format, data...)
}

// Infof implements Logger
func (r *Recorder) Infof(format string, data ...interface{}) {
	r.record(LevelInfo, format, data...)
}

// Warnf implements Logger
func (r *Recorder) Warnf(format string, data ...interface{}) {
	r.record(LevelWarn, format, data...)
}

// Errorf implements Logger
func (r *Recorder) Errorf(format string, data ...interface{}) {
	r.record(LevelError, format, data...)
}

// Entries returns a copy of the recorded entries
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Entry{}, r.entries...)
}

// AtLevel returns the messages recorded at level
func (r *Recorder) AtLevel(level LevelT) []string {
	messages := []string{}

	for _, entry := range r.Entries() {
		if entry.Level == level {
			messages = append(messages, entry.Message)
		}
	}

	return messages
}

// Contains returns true if a message logged at level contains substr
func (r *Recorder) Contains(level LevelT, substr string) bool {
	for _, message := range r.AtLevel(level) {
		if strings.Contains(message, substr) {
			return true
		}
	}

	return false
}
