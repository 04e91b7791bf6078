package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewQuiet(t *testing.T) {
	var buf bytes.Buffer
	log := New(false, &buf)
	log.Info("hidden")
	assert.Empty(t, buf.String())
}

func TestNewVerbose(t *testing.T) {
	var buf bytes.Buffer
	log := New(true, &buf)
	log.Debug("fetched host template")
	assert.Contains(t, buf.String(), "fetched host template")
	assert.Contains(t, buf.String(), "DEBUG")
}
