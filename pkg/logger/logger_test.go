package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONByDefault(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("debug", "", &buf)

	log.WithField("report_id", 7).Info("dispatched")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "dispatched", entry["msg"])
	assert.Equal(t, float64(7), entry["report_id"])
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestNew_TextAndBadLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("loud", "TEXT", &buf)

	log.Info("hello")

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.Contains(t, buf.String(), `msg=hello`)
}
