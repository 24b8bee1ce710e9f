package logging

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_RecordsEntries(t *testing.T) {
	log := NewMockLogger()

	log.Info("starting up", F("port", 8080))
	log.Warn("slow response")

	entries := log.Entries()
	require.Len(t, entries, 2)

	assert.Equal(t, "INFO", entries[0].Level)
	assert.Equal(t, "starting up", entries[0].Message)
	require.Len(t, entries[0].Fields, 1)
	assert.Equal(t, "port", entries[0].Fields[0].Key)

	assert.True(t, log.HasMessage("slow response"))
	assert.False(t, log.HasMessage("never logged"))
}

func TestMockLogger_DerivedLoggersShareSink(t *testing.T) {
	log := NewMockLogger()
	cause := errors.New("boom")

	log.WithError(cause).WithField("request_id", "r1").Error("request failed")

	entries := log.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "ERROR", entries[0].Level)
	assert.Equal(t, cause, entries[0].Error)
	require.Len(t, entries[0].Fields, 1)
	assert.Equal(t, "request_id", entries[0].Fields[0].Key)
}

func TestMockLogger_WithFieldsAccumulate(t *testing.T) {
	log := NewMockLogger()

	log.WithField("a", 1).WithField("b", 2).Debug("nested")

	entries := log.Entries()
	require.Len(t, entries, 1)
	assert.Len(t, entries[0].Fields, 2)
}

func TestNewLogrusAdapter_LevelFallback(t *testing.T) {
	// Unknown level must not panic; it falls back to info.
	log := NewLogrusAdapter("chatty", "text")
	require.NotNil(t, log)
	log.Info("still works")
}

func TestFromLogrus(t *testing.T) {
	backing := logrus.New()
	backing.SetLevel(logrus.DebugLevel)

	log := FromLogrus(backing)
	require.NotNil(t, log)
	log.WithField("k", "v").Debug("wired")

	assert.NotNil(t, FromLogrus(nil), "nil backing logger gets a default")
}
