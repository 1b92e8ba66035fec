// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/nttcom/pcepobj/pkg/packet/pcep"
)

const (
	eroHex = "0710000c01080a0000012000"
	teHex  = "6510000c0100000000000005"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []byte
		err      bool
	}{
		{"plain", "07100004", []byte{0x07, 0x10, 0x00, 0x04}, false},
		{"prefix and separators", "0x07:10 00\n04", []byte{0x07, 0x10, 0x00, 0x04}, false},
		{"odd length", "071", nil, true},
		{"not hex", "zz", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := parseHex(tt.input)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestEncodeDocument(t *testing.T) {
	t.Run("exact bytes", func(t *testing.T) {
		doc := `objects:
  - ero:
      subobjects:
        - type: ipv4
          prefix: 10.0.0.1/32
  - te:
      objectType: node
      teID: 5
`
		b, err := encodeDocument([]byte(doc))
		require.NoError(t, err)
		assert.Equal(t, eroHex+teHex, hex.EncodeToString(b))
	})

	t.Run("every subobject and sub-TLV kind", func(t *testing.T) {
		doc := `objects:
  - ero:
      pFlag: true
      subobjects:
        - {type: ipv4, prefix: 192.0.2.1/32}
        - {type: ipv6, prefix: "2001:db8::/64", loose: true}
        - {type: as, asn: 65001}
        - {type: path-key, pathKey: 7, pceID: 198.51.100.1}
        - {type: sr, sid: "16001"}
        - {type: sr, nai: 192.0.2.9}
        - {type: srv6, sid: "fd00::1", behavior: 1}
  - te:
      objectType: link
      protocolID: 3
      rFlag: true
      tlvs:
        - type: routing-universe
          identifier: 0
        - type: local-node
          subTLVs:
            - {type: as, value: "65000"}
            - {type: igp-router-id, value: 192.0.2.1}
        - type: remote-node
          subTLVs:
            - {type: igp-router-id, value: 0000.0000.0002}
        - type: link-descriptors
          subTLVs:
            - {type: link-id, value: "1:2"}
            - {type: ipv4-interface, value: 10.0.0.1}
            - {type: ipv4-neighbor, value: 10.0.0.2}
        - type: link-attributes
          subTLVs:
            - {type: te-metric, value: "100"}
            - {type: igp-metric, value: "10/2"}
            - {type: max-bandwidth, value: "1e9"}
            - {type: ipv4-remote-router-id, value: 192.0.2.2}
`
		b, err := encodeDocument([]byte(doc))
		require.NoError(t, err)

		objs, err := pcep.DecodeObjects(b, pcep.WithStrictPadding())
		require.NoError(t, err)
		require.Len(t, objs, 2)

		ero := objs[0].(*pcep.EroObject)
		assert.True(t, ero.PFlag())
		require.Len(t, ero.Subobjects(), 7)
		assert.True(t, ero.Subobjects()[1].Loose())
		assert.Equal(t, pcep.SubobjectPathKeyIPv4, ero.Subobjects()[3].Type())
		assert.Len(t, ero.ToSegmentList(), 2)

		te := objs[1].(*pcep.TEObject)
		assert.Equal(t, pcep.ObjectTypeTELink, te.Type())
		assert.Equal(t, pcep.ProtocolOSPFv2, te.ProtocolID())
		assert.True(t, te.RFlag())
		require.Len(t, te.TLVs(), 5)

		elems, err := te.TedElems()
		require.NoError(t, err)
		require.Len(t, elems, 1)
	})

	tests := []struct {
		name string
		doc  string
	}{
		{"empty object", "objects:\n  - {}\n"},
		{"ero and te together", "objects:\n  - {ero: {}, te: {}}\n"},
		{"unknown subobject", "objects:\n  - ero: {subobjects: [{type: label}]}\n"},
		{"prefix family mismatch", "objects:\n  - ero: {subobjects: [{type: ipv6, prefix: 10.0.0.0/8}]}\n"},
		{"sr hop without sid or nai", "objects:\n  - ero: {subobjects: [{type: sr}]}\n"},
		{"label out of range", "objects:\n  - ero: {subobjects: [{type: sr, sid: \"1048576\"}]}\n"},
		{"unknown TE object type", "objects:\n  - te: {objectType: prefix}\n"},
		{"unknown TLV", "objects:\n  - te: {tlvs: [{type: srlg}]}\n"},
		{"unknown sub-TLV", "objects:\n  - te: {tlvs: [{type: local-node, subTLVs: [{type: color, value: \"1\"}]}]}\n"},
		{"sub-TLV in the wrong TLV", "objects:\n  - te: {tlvs: [{type: local-node, subTLVs: [{type: node-name, value: r1}]}]}\n"},
		{"bad link-id", "objects:\n  - te: {tlvs: [{type: link-descriptors, subTLVs: [{type: link-id, value: \"1\"}]}]}\n"},
		{"not yaml", "objects: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := encodeDocument([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestDecodeCmd(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		out, err := execute(t, "decode", "-o", "json", eroHex, teHex)
		require.NoError(t, err)

		var objs []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &objs))
		require.Len(t, objs, 2)
		assert.Equal(t, pcep.ObjectClassERO.String(), objs[0]["object"])
		subobjects := objs[0]["subobjects"].([]any)
		require.Len(t, subobjects, 1)
		assert.Equal(t, "10.0.0.1", subobjects[0].(map[string]any)["address"])
		assert.Equal(t, float64(5), objs[1]["teID"])
	})

	t.Run("yaml from a hex file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "objects.hex")
		require.NoError(t, os.WriteFile(path, []byte(eroHex+"\n"), 0600))
		out, err := execute(t, "decode", "--file", path, "--hex", "-o", "yaml")
		require.NoError(t, err)

		var objs []map[string]any
		require.NoError(t, yaml.Unmarshal([]byte(out), &objs))
		require.Len(t, objs, 1)
		assert.Equal(t, false, objs[0]["pFlag"])
	})

	t.Run("cbor", func(t *testing.T) {
		out, err := execute(t, "decode", "-o", "cbor", teHex)
		require.NoError(t, err)
		b, err := hex.DecodeString(strings.TrimSpace(out))
		require.NoError(t, err)

		var objs []map[string]any
		require.NoError(t, cbor.Unmarshal(b, &objs))
		require.Len(t, objs, 1)
		assert.Equal(t, "node", objs[0]["objectType"])
	})

	t.Run("text", func(t *testing.T) {
		out, err := execute(t, "decode", eroHex)
		require.NoError(t, err)
		assert.Contains(t, out, "address: 10.0.0.1")
		assert.Contains(t, out, "prefixLength: 32")
	})

	t.Run("decode error", func(t *testing.T) {
		_, err := execute(t, "decode", "0710000c63080a0000012000")
		assert.ErrorIs(t, err, pcep.ErrUnsupportedElementType)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := execute(t, "decode", "-o", "xml", eroHex)
		assert.Error(t, err)
	})

	t.Run("no input", func(t *testing.T) {
		_, err := execute(t, "decode")
		assert.Error(t, err)
	})
}

func TestEncodeCmd(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "objects.yaml")
	require.NoError(t, os.WriteFile(doc, []byte("objects:\n  - ero:\n      subobjects:\n        - {type: ipv4, prefix: 10.0.0.1/32}\n"), 0600))

	out, err := execute(t, "encode", "--file", doc)
	require.NoError(t, err)
	assert.Equal(t, eroHex+"\n", out)

	bin := filepath.Join(dir, "objects.bin")
	_, err = execute(t, "encode", "--file", doc, "--out", bin)
	require.NoError(t, err)
	b, err := os.ReadFile(bin)
	require.NoError(t, err)
	assert.Equal(t, eroHex, hex.EncodeToString(b))

	_, err = execute(t, "encode")
	assert.Error(t, err)
}

func TestTedCmd(t *testing.T) {
	doc := []byte(`objects:
  - te:
      tlvs:
        - type: local-node
          subTLVs:
            - {type: as, value: "65000"}
            - {type: igp-router-id, value: 0000.0000.0001}
        - type: node-attributes
          subTLVs:
            - {type: node-name, value: r1}
            - {type: isis-area, value: "490001"}
  - te:
      objectType: link
      tlvs:
        - type: local-node
          subTLVs:
            - {type: as, value: "65000"}
            - {type: igp-router-id, value: 0000.0000.0001}
        - type: remote-node
          subTLVs:
            - {type: as, value: "65000"}
            - {type: igp-router-id, value: 0000.0000.0002}
        - type: link-attributes
          subTLVs:
            - {type: igp-metric, value: "10"}
`)
	b, err := encodeDocument(doc)
	require.NoError(t, err)

	out, err := execute(t, "ted", hex.EncodeToString(b))
	require.NoError(t, err)
	assert.Contains(t, out, "Hostname: r1")
	assert.Contains(t, out, "ISIS Area ID: 490001")
	assert.Contains(t, out, "RemoteNode: 0000.0000.0002")
	assert.Contains(t, out, "IGP: 10")

	out, err = execute(t, "ted", "-o", "json", hex.EncodeToString(b))
	require.NoError(t, err)
	var v map[string][]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Len(t, v["ted"], 2)

	t.Run("withdrawal", func(t *testing.T) {
		withdraw, err := encodeDocument([]byte(`objects:
  - te:
      rFlag: true
      tlvs:
        - type: local-node
          subTLVs:
            - {type: as, value: "65000"}
            - {type: igp-router-id, value: 0000.0000.0002}
`))
		require.NoError(t, err)
		ted, err := buildTed(append(b, withdraw...))
		require.NoError(t, err)
		require.Len(t, ted.Nodes[65000], 1)
		assert.Empty(t, ted.Nodes[65000]["0000.0000.0001"].Links)
	})
}

func TestPathCmd(t *testing.T) {
	b, err := encodeDocument([]byte(`objects:
  - te:
      objectType: link
      tlvs:
        - type: local-node
          subTLVs:
            - {type: as, value: "65000"}
            - {type: igp-router-id, value: 192.0.2.1}
        - type: remote-node
          subTLVs:
            - {type: as, value: "65000"}
            - {type: igp-router-id, value: 192.0.2.2}
        - type: link-descriptors
          subTLVs:
            - {type: ipv4-interface, value: 10.0.0.1}
            - {type: ipv4-neighbor, value: 10.0.0.2}
        - type: link-attributes
          subTLVs:
            - {type: igp-metric, value: "10"}
`))
	require.NoError(t, err)
	input := hex.EncodeToString(b)

	out, err := execute(t, "path", "--src", "192.0.2.1", "--dst", "192.0.2.2", "--asn", "65000", input)
	require.NoError(t, err)
	assert.Equal(t, "0710000c01080a0000022000\n", out)

	out, err = execute(t, "path", "--src", "192.0.2.1", "--dst", "192.0.2.2", "--asn", "65000", "-o", "json", input)
	require.NoError(t, err)
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	require.Len(t, v["subobjects"], 1)

	_, err = execute(t, "path", "--src", "192.0.2.1", "--dst", "192.0.2.2", "--asn", "65000", "--metric", "te", input)
	assert.ErrorContains(t, err, "metric TE not defined")

	_, err = execute(t, "path", "--src", "192.0.2.1", "--dst", "192.0.2.2", "--metric", "delay", input)
	assert.ErrorContains(t, err, "unknown metric")
}

func TestImportCmd_Unreachable(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	_, port, err := net.SplitHostPort(lis.Addr().String())
	require.NoError(t, err)
	require.NoError(t, lis.Close())

	_, err = execute(t, "import", "--gobgp-addr", "127.0.0.1", "--gobgp-port", port)
	assert.Error(t, err)
}

func TestWriteTEObjects(t *testing.T) {
	raw, err := hex.DecodeString(teHex)
	require.NoError(t, err)
	te, err := pcep.ParseTEObject(raw)
	require.NoError(t, err)
	objs := []*pcep.TEObject{te, te}

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	outputFmt = formatText
	require.NoError(t, writeTEObjects(cmd, objs, ""))
	assert.Equal(t, teHex+teHex+"\n", out.String())

	path := filepath.Join(t.TempDir(), "te.bin")
	require.NoError(t, writeTEObjects(cmd, objs, path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, teHex+teHex, hex.EncodeToString(b))

	out.Reset()
	outputFmt = formatJSON
	t.Cleanup(func() { outputFmt = formatText })
	require.NoError(t, writeTEObjects(cmd, objs, ""))
	var v []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &v))
	assert.Len(t, v, 2)
}

func TestTypesCmd(t *testing.T) {
	out, err := execute(t, "types", "-o", "json")
	require.NoError(t, err)

	var v struct {
		EroSubobjects []struct {
			Code uint8  `json:"code"`
			Name string `json:"name"`
		} `json:"eroSubobjects"`
		TeTLVs []struct {
			Code    uint16 `json:"code"`
			SubTLVs []any  `json:"subTLVs"`
		} `json:"teTLVs"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	require.Len(t, v.EroSubobjects, len(pcep.SubobjectTypes()))
	assert.Equal(t, uint8(pcep.SubobjectIPv4Prefix), v.EroSubobjects[0].Code)
	require.Len(t, v.TeTLVs, len(pcep.TLVTypes()))
	assert.Empty(t, v.TeTLVs[0].SubTLVs, "ROUTING-UNIVERSE has no sub-TLVs")
}
