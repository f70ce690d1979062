package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecorderLevels(t *testing.T) {
	r := &Recorder{}

	r.Debugf("debug %d", 1)
	r.Warnf("warn %s", "two")
	r.Errorf("error")

	assert.Equal(t, []string{"warn two"}, r.AtLevel(LevelWarn))
	assert.True(t, r.Contains(LevelDebug, "debug 1"))
	assert.False(t, r.Contains(LevelInfo, "debug"))
	assert.Len(t, r.Entries(), 3)
}

func TestChildOfNonGologLogger(t *testing.T) {
	r := &Recorder{}

	assert.Equal(t, Logger(r), Child(r, "child"))
}
