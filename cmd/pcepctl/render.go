// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
	formatCBOR = "cbor"
)

func validFormat(f string) bool {
	return slices.Contains([]string{formatText, formatJSON, formatYAML, formatCBOR}, f)
}

// cborEncMode emits Core Deterministic Encoding (RFC 8949 4.2), so equal
// views always produce identical bytes.
var cborEncMode cbor.EncMode

func init() {
	var err error
	if cborEncMode, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic("pcepctl: CBOR encoder initialization failed: " + err.Error())
	}
}

// view renders a log marshaler into plain maps and slices.
func view(m zapcore.ObjectMarshaler) (map[string]any, error) {
	enc := zapcore.NewMapObjectEncoder()
	if err := m.MarshalLogObject(enc); err != nil {
		return nil, err
	}
	return enc.Fields, nil
}

func views[T zapcore.ObjectMarshaler](ms []T) ([]any, error) {
	out := make([]any, 0, len(ms))
	for _, m := range ms {
		v, err := view(m)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func render(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case formatCBOR:
		b, err := cborEncMode.Marshal(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, hex.EncodeToString(b))
		return err
	default:
		writeText(w, v, 0)
		return nil
	}
}

// writeText prints nested maps as indented "key: value" lines with sorted keys.
func writeText(w io.Writer, v any, depth int) {
	indent := strings.Repeat("  ", depth)
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			switch child := t[k].(type) {
			case map[string]any, []any:
				fmt.Fprintf(w, "%s%s:\n", indent, k)
				writeText(w, child, depth+1)
			default:
				fmt.Fprintf(w, "%s%s: %v\n", indent, k, child)
			}
		}
	case []any:
		for i, elem := range t {
			fmt.Fprintf(w, "%s- [%d]\n", indent, i)
			writeText(w, elem, depth+1)
		}
	default:
		fmt.Fprintf(w, "%s%v\n", indent, t)
	}
}
