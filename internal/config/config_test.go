// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nttcom/pcepobj/internal/pkg/gobgp"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pcepctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestReadConfigFile(t *testing.T) {
	path := writeConfig(t, `global:
  log:
    path: /var/log/pcepctl/
    name: pcepctl.log
    debug: true
  codec:
    strictPadding: true
    eroLengthMode: padded
  gobgp:
    address: 192.0.2.10
`)
	c, err := ReadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, Config{Global: Global{
		Log:   Log{Path: "/var/log/pcepctl/", Name: "pcepctl.log", Debug: true},
		Codec: Codec{StrictPadding: true, EroLengthMode: "padded"},
		Gobgp: Gobgp{Address: "192.0.2.10"},
	}}, c)
	assert.Equal(t, "/var/log/pcepctl/pcepctl.log", c.LogFile())

	opts, err := c.CodecOpts()
	require.NoError(t, err)
	assert.Len(t, opts, 2)
	assert.Equal(t, gobgp.GobgpOptions{GobgpAddr: "192.0.2.10", GobgpPort: "50051"}, c.GobgpOptions())
}

func TestReadConfigFile_Errors(t *testing.T) {
	_, err := ReadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = ReadConfigFile(writeConfig(t, "global: [\n"))
	assert.Error(t, err)
}

func TestConfig_Defaults(t *testing.T) {
	var c Config
	assert.Empty(t, c.LogFile())
	assert.Equal(t, gobgp.GobgpOptions{GobgpAddr: "127.0.0.1", GobgpPort: "50051"}, c.GobgpOptions())

	opts, err := c.CodecOpts()
	require.NoError(t, err)
	assert.Len(t, opts, 1)

	c.Global.Codec.EroLengthMode = "aligned"
	_, err = c.CodecOpts()
	assert.Error(t, err)
}
