// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package pcep

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// subTLVBytes frames value as a sub-TLV of type t, without padding.
func subTLVBytes(t SubTLVType, value ...uint8) []uint8 {
	return AppendByteSlices(Uint16ToByteSlice(t), Uint16ToByteSlice(uint16(len(value))), value)
}

func TestDecodeElements_Padding(t *testing.T) {
	padded := AppendByteSlices(
		subTLVBytes(SubTLVNodeName, 'a', 'b', 'c', 'd', 'e'), []uint8{0x00, 0x00, 0x00},
		subTLVBytes(SubTLVNodeFlagBits, NodeFlagOverload), []uint8{0x00, 0x00, 0x00},
	)
	unpaddedTail := subTLVBytes(SubTLVNodeName, 'a', 'b', 'c', 'd', 'e')

	tests := []struct {
		name     string
		input    []uint8
		opt      []Opt
		expected []SubTLV
		err      error
	}{
		{
			name:     "padding is skipped",
			input:    padded,
			expected: []SubTLV{&NodeName{Name: "abcde"}, &NodeFlagBits{Flags: NodeFlagOverload}},
		},
		{
			name:     "strict mode accepts complete padding",
			input:    padded,
			opt:      []Opt{WithStrictPadding()},
			expected: []SubTLV{&NodeName{Name: "abcde"}, &NodeFlagBits{Flags: NodeFlagOverload}},
		},
		{
			name:     "short padding at the end is tolerated",
			input:    unpaddedTail,
			expected: []SubTLV{&NodeName{Name: "abcde"}},
		},
		{
			name:  "short padding at the end is an error in strict mode",
			input: unpaddedTail,
			opt:   []Opt{WithStrictPadding()},
			err:   ErrTruncatedElement,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := decodeElements(NewCursor(tt.input), nodeAttributeRegistry, newOptParams(tt.opt))
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestDecodeElements_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    []uint8
		registry *registry[SubTLV]
		err      error
		code     int
		offset   int
	}{
		{
			name:     "fewer bytes than a header",
			input:    AppendByteSlices(subTLVBytes(SubTLVNodeFlagBits, 0x00), []uint8{0x00, 0x00, 0x00}, []uint8{0x04, 0x02}),
			registry: nodeAttributeRegistry,
			err:      ErrTrailingBytes,
			code:     -1,
			offset:   8,
		},
		{
			name:     "code not allowed in this TLV",
			input:    subTLVBytes(SubTLVAutonomousSystem, 0x00, 0x00, 0xfd, 0xe8),
			registry: nodeAttributeRegistry,
			err:      ErrUnsupportedElementType,
			code:     int(SubTLVAutonomousSystem),
		},
		{
			name:     "length past the end",
			input:    AppendByteSlices(Uint16ToByteSlice(SubTLVAutonomousSystem), []uint8{0x00, 0x08, 0x00, 0x00, 0xfd, 0xe8}),
			registry: nodeDescriptorRegistry,
			err:      ErrTruncatedElement,
			code:     int(SubTLVAutonomousSystem),
		},
		{
			name:     "payload not consumed",
			input:    subTLVBytes(SubTLVAutonomousSystem, 0x00, 0x00, 0xfd, 0xe8, 0x00, 0x00, 0x00, 0x00),
			registry: nodeDescriptorRegistry,
			err:      ErrTrailingBytes,
			code:     int(SubTLVAutonomousSystem),
		},
		{
			name:     "value a variant cannot parse",
			input:    subTLVBytes(SubTLVNodeName, 0xff, 0xfe, 0xfd, 0xfc),
			registry: nodeAttributeRegistry,
			err:      ErrTruncatedElement,
			code:     int(SubTLVNodeName),
		},
		{
			name:     "invalid IGP Router-ID length",
			input:    subTLVBytes(SubTLVIGPRouterID, 0x01, 0x02, 0x03, 0x04, 0x05),
			registry: nodeDescriptorRegistry,
			err:      ErrTruncatedElement,
			code:     int(SubTLVIGPRouterID),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := decodeElements(NewCursor(tt.input), tt.registry, newOptParams(nil))
			assert.Nil(t, actual)
			assert.ErrorIs(t, err, tt.err)
			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.code, de.Code)
			assert.Equal(t, tt.offset, de.Offset)
		})
	}
}

func TestDecodeElements_SubobjectShorterThanHeader(t *testing.T) {
	_, err := decodeElements(NewCursor([]uint8{0x01, 0x01, 0x00, 0x00}), eroSubobjectRegistry, newOptParams(nil))
	assert.ErrorIs(t, err, ErrTruncatedElement)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, int(SubobjectIPv4Prefix), de.Code)
}

func TestEncodeElement(t *testing.T) {
	t.Run("padding is written but not counted", func(t *testing.T) {
		var c Cursor
		require.NoError(t, encodeElement(&c, tlvFraming, SubTLV(&NodeName{Name: "r1"}), newOptParams(nil)))
		assert.Equal(t, AppendByteSlices(subTLVBytes(SubTLVNodeName, 'r', '1'), []uint8{0x00, 0x00}), c.Bytes())
	})

	t.Run("length overflow", func(t *testing.T) {
		var c Cursor
		err := encodeElement(&c, tlvFraming, SubTLV(&NodeName{Name: strings.Repeat("x", 0x10000)}), newOptParams(nil))
		assert.ErrorIs(t, err, ErrLengthOverflow)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("wire length matches the encoding", func(t *testing.T) {
		elems := []SubTLV{&NodeName{Name: "abcde"}, NewIGPMetric(10, 3), &Uint32SubTLV{SubTLVType: SubTLVTEDefaultMetric, Value: 1}}
		var c Cursor
		require.NoError(t, encodeElements(&c, tlvFraming, elems, newOptParams(nil)))
		assert.Equal(t, elementsWireLen(tlvFraming, elems), c.Len())
		assert.Equal(t, 12+8+8, c.Len())
	})
}

func TestDecodeElements_DebugLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	input := AppendByteSlices(subTLVBytes(SubTLVNodeFlagBits, 0x00), []uint8{0x00, 0x00, 0x00})

	_, err := decodeElements(NewCursor(input), nodeAttributeRegistry, newOptParams([]Opt{WithLogger(zap.New(core))}))
	require.NoError(t, err)

	entries := logs.FilterMessage("decoded element").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "TLV", fields["family"])
	assert.Equal(t, uint16(SubTLVNodeFlagBits), fields["type"])
	assert.Equal(t, int64(1), fields["length"])
}

func TestEncodeElements_DebugLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	tlvs := []TETLV{NewTENodeAttributes(&NodeName{Name: "r1"}, &NodeFlagBits{Flags: NodeFlagRouter})}

	var c Cursor
	require.NoError(t, encodeElements(&c, tlvFraming, tlvs, newOptParams([]Opt{WithLogger(zap.New(core))})))

	var types []uint16
	for _, e := range logs.FilterMessage("encoded element").All() {
		types = append(types, e.ContextMap()["type"].(uint16))
	}
	// Nested sub-TLVs are traced before their enclosing TLV.
	assert.Equal(t, []uint16{uint16(SubTLVNodeName), uint16(SubTLVNodeFlagBits), uint16(TLVTENodeAttributes)}, types)
}

func TestEncodeElements_NilElement(t *testing.T) {
	tlvs := []TETLV{NewTENodeAttributes(&NodeName{Name: "r1"}, (*NodeFlagBits)(nil))}
	var c Cursor
	assert.NotPanics(t, func() {
		err := encodeElements(&c, tlvFraming, tlvs, newOptParams(nil))
		assert.ErrorContains(t, err, "nil TLV at index 1")
	})
}
