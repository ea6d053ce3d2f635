package utils

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLoggerSingleton(t *testing.T) {
	assert.Same(t, GetLogger(), GetLogger())
}

func TestLoggerTagsServiceField(t *testing.T) {
	logger := GetLogger()

	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stdout)

	logger.WithField("inquiry_id", 1).Info("estimate persisted")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, ServiceName, entry["service"])
	assert.Equal(t, "estimate persisted", entry["msg"])
	assert.Equal(t, float64(1), entry["inquiry_id"])
}
