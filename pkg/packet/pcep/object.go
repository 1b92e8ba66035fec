// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package pcep

import (
	"encoding/binary"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ObjectClass uint8

const ( // PCEP Object-Class (1 byte)
	ObjectClassOpen        ObjectClass = 0x01 // RFC5440
	ObjectClassRP          ObjectClass = 0x02 // RFC5440
	ObjectClassNoPath      ObjectClass = 0x03 // RFC5440
	ObjectClassEndPoints   ObjectClass = 0x04 // RFC5440
	ObjectClassBandwidth   ObjectClass = 0x05 // RFC5440
	ObjectClassMetric      ObjectClass = 0x06 // RFC5440
	ObjectClassERO         ObjectClass = 0x07 // RFC5440
	ObjectClassRRO         ObjectClass = 0x08 // RFC5440
	ObjectClassLSPA        ObjectClass = 0x09 // RFC5440
	ObjectClassIRO         ObjectClass = 0x0a // RFC5440
	ObjectClassLSP         ObjectClass = 0x20 // RFC8231
	ObjectClassSRP         ObjectClass = 0x21 // RFC8231
	ObjectClassAssociation ObjectClass = 0x28 // RFC8697
	ObjectClassTE          ObjectClass = 0x65 // draft-dhodylee-pce-pcep-ls
)

var objectClassDescriptions = map[ObjectClass]struct {
	Description string
	Reference   string
}{
	ObjectClassOpen:        {"OPEN", "RFC5440"},
	ObjectClassRP:          {"RP", "RFC5440"},
	ObjectClassNoPath:      {"NO-PATH", "RFC5440"},
	ObjectClassEndPoints:   {"END-POINTS", "RFC5440"},
	ObjectClassBandwidth:   {"BANDWIDTH", "RFC5440"},
	ObjectClassMetric:      {"METRIC", "RFC5440"},
	ObjectClassERO:         {"ERO", "RFC5440"},
	ObjectClassRRO:         {"RRO", "RFC5440"},
	ObjectClassLSPA:        {"LSPA", "RFC5440"},
	ObjectClassIRO:         {"IRO", "RFC5440"},
	ObjectClassLSP:         {"LSP", "RFC8231"},
	ObjectClassSRP:         {"SRP", "RFC8231"},
	ObjectClassAssociation: {"ASSOCIATION", "RFC8697"},
	ObjectClassTE:          {"TE", "draft-dhodylee-pce-pcep-ls"},
}

func (c ObjectClass) String() string {
	if desc, ok := objectClassDescriptions[c]; ok {
		return fmt.Sprintf("%s (%s)", desc.Description, desc.Reference)
	}
	return fmt.Sprintf("Unknown Object-Class (0x%02x)", uint8(c))
}

// ObjectType is the 4-bit Object-Type, interpreted per class.
type ObjectType uint8

const (
	ObjectTypeERORoute ObjectType = 0x01 // RFC5440
	ObjectTypeTENode   ObjectType = 0x01 // draft-dhodylee-pce-pcep-ls
	ObjectTypeTELink   ObjectType = 0x02 // draft-dhodylee-pce-pcep-ls
)

const CommonObjectHeaderLength = 4

// Object-Type and flag bits of the second header byte
const (
	objectTypeShift = 4
	objectTypeMask  = 0xf0
	objectPFlag     = 0x02
	objectIFlag     = 0x01
)

type CommonObjectHeader struct { // RFC5440 7.2
	ObjectClass  ObjectClass
	ObjectType   ObjectType
	PFlag        bool // 0: optional, 1: MUST
	IFlag        bool // 0: processed, 1: ignored
	ObjectLength uint16
}

// DecodeFromBytes parses the 4 header bytes. The two reserved bits are ignored.
func (h *CommonObjectHeader) DecodeFromBytes(objectHeader []uint8) error {
	if len(objectHeader) < CommonObjectHeaderLength {
		return newDecodeError(ErrMalformedHeader, "object header", 0, "only %d bytes", len(objectHeader))
	}
	h.ObjectClass = ObjectClass(objectHeader[0])
	h.ObjectType = ObjectType(objectHeader[1] & objectTypeMask >> objectTypeShift)
	h.PFlag = IsBitSet(objectHeader[1], objectPFlag)
	h.IFlag = IsBitSet(objectHeader[1], objectIFlag)
	h.ObjectLength = binary.BigEndian.Uint16(objectHeader[2:4])
	if h.ObjectLength < CommonObjectHeaderLength {
		return newDecodeError(ErrMalformedHeader, "object header", 0, "object length %d is shorter than the header", h.ObjectLength)
	}
	return nil
}

func (h *CommonObjectHeader) Serialize() []uint8 {
	buf := make([]uint8, 0, CommonObjectHeaderLength)
	buf = append(buf, uint8(h.ObjectClass), h.typeFlags())
	return append(buf, Uint16ToByteSlice(h.ObjectLength)...)
}

func (h *CommonObjectHeader) typeFlags() uint8 {
	otFlags := uint8(h.ObjectType) << objectTypeShift & objectTypeMask
	otFlags = SetBit(otFlags, objectPFlag, h.PFlag)
	return SetBit(otFlags, objectIFlag, h.IFlag)
}

func (h *CommonObjectHeader) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddUint8("objectClass", uint8(h.ObjectClass))
	enc.AddUint8("objectType", uint8(h.ObjectType))
	enc.AddBool("pFlag", h.PFlag)
	enc.AddBool("iFlag", h.IFlag)
	enc.AddUint16("objectLength", h.ObjectLength)
	return nil
}

func NewCommonObjectHeader(objectClass ObjectClass, objectType ObjectType, objectLength uint16) *CommonObjectHeader {
	return &CommonObjectHeader{
		ObjectClass:  objectClass,
		ObjectType:   objectType,
		PFlag:        false,
		IFlag:        false,
		ObjectLength: objectLength,
	}
}

// DecodeCommonObjectHeader reads a header from c and returns it together with
// a cursor bounded to exactly ObjectLength-4 body bytes.
func DecodeCommonObjectHeader(c *Cursor) (CommonObjectHeader, *Cursor, error) {
	var h CommonObjectHeader
	start := c.Offset()
	if c.Remaining() < CommonObjectHeaderLength {
		return h, nil, newDecodeError(ErrMalformedHeader, "object header", start, "only %d bytes left", c.Remaining())
	}
	raw, _ := c.ReadBytes(CommonObjectHeaderLength)
	if err := h.DecodeFromBytes(raw); err != nil {
		err.(*DecodeError).Offset = start
		return h, nil, err
	}
	bodyLen := int(h.ObjectLength) - CommonObjectHeaderLength
	if bodyLen > c.Remaining() {
		return h, nil, newDecodeError(ErrTruncatedElement, "object "+h.ObjectClass.String(), start,
			"object length %d but only %d body bytes left", h.ObjectLength, c.Remaining())
	}
	body, _ := c.Sub(bodyLen)
	return h, body, nil
}

// Encode writes the header with a zero length placeholder and returns the
// offset of the length field for PatchObjectLength.
func (h *CommonObjectHeader) Encode(c *Cursor) int {
	c.WriteUint8(uint8(h.ObjectClass))
	c.WriteUint8(h.typeFlags())
	lengthOffset := c.Len()
	c.WriteUint16(0)
	return lengthOffset
}

// PatchObjectLength overwrites the placeholder written by Encode.
func PatchObjectLength(c *Cursor, lengthOffset int, length int) error {
	if length < CommonObjectHeaderLength || length > 0xffff {
		return fmt.Errorf("%w: object length %d", ErrLengthOverflow, length)
	}
	return c.PatchUint16(lengthOffset, uint16(length))
}

// Object is a decoded or built PCEP object.
type Object interface {
	zapcore.ObjectMarshaler
	Class() ObjectClass
	Type() ObjectType
	// Write appends the encoded object to c and returns the number of bytes written.
	Write(c *Cursor, opt ...Opt) (int, error)
	// Len returns the number of bytes Write produces.
	Len() int
}

// DecodeObject peeks the object class and dispatches to the matching codec.
func DecodeObject(c *Cursor, opt ...Opt) (Object, error) {
	b, err := c.Peek(1)
	if err != nil {
		return nil, newDecodeError(ErrMalformedHeader, "object header", c.Offset(), "no bytes left")
	}
	switch ObjectClass(b[0]) {
	case ObjectClassERO:
		return DecodeEroObject(c, opt...)
	case ObjectClassTE:
		return DecodeTEObject(c, opt...)
	default:
		return nil, newDecodeError(ErrUnexpectedObjectClass, "object", c.Offset(), "object class %s", ObjectClass(b[0]))
	}
}

// DecodeObjects decodes back-to-back objects until data is exhausted.
// Zero padding trailing an object whose length is not 4-byte aligned is skipped.
func DecodeObjects(data []byte, opt ...Opt) ([]Object, error) {
	p := newOptParams(opt)
	c := NewCursor(data)
	var objs []Object
	for c.Remaining() > 0 {
		start := c.Offset()
		obj, err := DecodeObject(c, opt...)
		if err != nil {
			return nil, err
		}
		p.logger.Debug("decoded object", zap.Stringer("class", obj.Class()), zap.Int("offset", start))
		objs = append(objs, obj)
		skipObjectPadding(c, c.Offset()-start)
	}
	return objs, nil
}

// skipObjectPadding consumes up to the object padding of an object of length n.
// Class 0 is reserved, so a zero byte never starts the next object.
func skipObjectPadding(c *Cursor, n int) {
	for range PaddingLength(n) {
		b, err := c.Peek(1)
		if err != nil || b[0] != 0 {
			return
		}
		_ = c.Skip(1)
	}
}

// finishObject patches the object length after the body was written and applies
// object-level padding. The length field covers the padding only in EroLengthPadded mode.
func finishObject(c *Cursor, start, lengthOffset int, mode EroLengthMode) (int, error) {
	total := c.Len() - start
	if err := PatchObjectLength(c, lengthOffset, total); err != nil {
		return 0, err
	}
	pad := PaddingLength(total)
	if pad == 0 {
		return total, nil
	}
	c.WriteZeros(pad)
	if mode == EroLengthPadded {
		if err := PatchObjectLength(c, lengthOffset, total+pad); err != nil {
			return 0, err
		}
	}
	return total + pad, nil
}

func marshalElements[T zapcore.ObjectMarshaler](elems []T) zapcore.ArrayMarshalerFunc {
	return func(enc zapcore.ArrayEncoder) error {
		for _, e := range elems {
			if err := enc.AppendObject(e); err != nil {
				return err
			}
		}
		return nil
	}
}
