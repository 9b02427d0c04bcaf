package core

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductionLoggerLevelGate(t *testing.T) {
	var buf bytes.Buffer
	l := NewProductionLogger("test", "WARN", "text")
	l.SetOutput(&buf)

	l.Debug("hidden", nil)
	l.Info("hidden too", nil)
	l.Warn("shown", nil)
	l.Error("also shown", nil)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] [test] shown")
	assert.Contains(t, out, "[ERROR] [test] also shown")
}

func TestProductionLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewProductionLogger("api", "INFO", "json")
	l.SetOutput(&buf)

	l.Info("request complete", map[string]interface{}{
		"operation": "list_products",
		"count":     3,
	})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "api", entry["component"])
	assert.Equal(t, "request complete", entry["message"])
	assert.Equal(t, "list_products", entry["operation"])
	assert.Equal(t, float64(3), entry["count"])
}

func TestProductionLoggerTextFieldOrdering(t *testing.T) {
	var buf bytes.Buffer
	l := NewProductionLogger("client", "DEBUG", "text")
	l.SetOutput(&buf)

	l.Warn("read degraded", map[string]interface{}{
		"operation": "list_orders",
		"error":     "connection refused",
	})

	assert.Contains(t, buf.String(), `operation=list_orders error="connection refused"`)
}

func TestUnknownLevelDoesNotFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewProductionLogger("test", "LOUD", "text")
	l.SetOutput(&buf)

	l.Debug("debug line", nil)
	assert.Contains(t, buf.String(), "debug line")
}
