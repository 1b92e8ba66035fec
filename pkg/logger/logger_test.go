// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger_Level(t *testing.T) {
	var console bytes.Buffer
	l := newLogger(nil, &console, false)
	l.Debug("hidden")
	l.Info("shown", zap.Int("objects", 2))
	require.NoError(t, l.Sync())

	assert.NotContains(t, console.String(), "hidden")
	assert.Contains(t, console.String(), "shown")
	assert.Contains(t, console.String(), `{"objects": 2}`)

	console.Reset()
	l = newLogger(nil, &console, true)
	l.Debug("decoded element")
	assert.Contains(t, console.String(), "decoded element")
}

func TestNewLogger_File(t *testing.T) {
	fp, err := os.Create(filepath.Join(t.TempDir(), "pcepctl.log"))
	require.NoError(t, err)
	defer fp.Close()

	var console bytes.Buffer
	l := newLogger(fp, &console, false)
	l.Info("decoded object", zap.String("class", "ERO (RFC5440)"))
	require.NoError(t, l.Sync())

	b, err := os.ReadFile(fp.Name())
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(b), &entry))
	assert.Equal(t, "decoded object", entry["msg"])
	assert.Equal(t, "ERO (RFC5440)", entry["class"])
	assert.Equal(t, "info", entry["level"])
	assert.Contains(t, console.String(), "decoded object")
}
