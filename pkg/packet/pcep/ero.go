// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package pcep

import (
	"slices"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nttcom/pcepobj/internal/pkg/table"
)

// ERO Object (RFC5440 7.9)
type EroObject struct {
	pFlag      bool
	iFlag      bool
	subobjects []EroSubobject
}

func (o *EroObject) Class() ObjectClass { return ObjectClassERO }
func (o *EroObject) Type() ObjectType   { return ObjectTypeERORoute }
func (o *EroObject) PFlag() bool        { return o.pFlag }
func (o *EroObject) IFlag() bool        { return o.iFlag }

// Subobjects returns the hops in wire order.
func (o *EroObject) Subobjects() []EroSubobject {
	return slices.Clone(o.subobjects)
}

// Len returns the encoded size of the object.
func (o *EroObject) Len() int {
	n := CommonObjectHeaderLength + elementsWireLen(subobjectFraming, o.subobjects)
	return n + PaddingLength(n)
}

// DecodeEroObject reads one ERO object from c.
func DecodeEroObject(c *Cursor, opt ...Opt) (*EroObject, error) {
	p := newOptParams(opt)
	start := c.Offset()
	h, body, err := DecodeCommonObjectHeader(c)
	if err != nil {
		return nil, err
	}
	if h.ObjectClass != ObjectClassERO || h.ObjectType != ObjectTypeERORoute {
		return nil, newDecodeError(ErrUnexpectedObjectClass, "ERO object", start,
			"got class %s type %d", h.ObjectClass, h.ObjectType)
	}

	subobjects, err := decodeElements(body, eroSubobjectRegistry, p)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("decoded ERO object", zap.Int("subobjects", len(subobjects)), zap.Uint16("length", h.ObjectLength))
	return &EroObject{
		pFlag:      h.PFlag,
		iFlag:      h.IFlag,
		subobjects: subobjects,
	}, nil
}

// ParseEroObject decodes data holding exactly one ERO object, optionally
// followed by its zero padding.
func ParseEroObject(data []byte, opt ...Opt) (*EroObject, error) {
	c := NewCursor(data)
	o, err := DecodeEroObject(c, opt...)
	if err != nil {
		return nil, err
	}
	if err := expectEnd(c); err != nil {
		return nil, err
	}
	return o, nil
}

func expectEnd(c *Cursor) error {
	skipObjectPadding(c, c.Offset())
	if c.Remaining() > 0 {
		return newDecodeError(ErrTrailingBytes, "object", c.Offset(), "%d bytes after the object", c.Remaining())
	}
	return nil
}

// Write appends the encoded object to c. The header length is patched once the
// sub-objects are written; see EroLengthMode for unaligned bodies.
// On error nothing is left appended to c.
func (o *EroObject) Write(c *Cursor, opt ...Opt) (int, error) {
	p := newOptParams(opt)
	start := c.Len()
	h := NewCommonObjectHeader(ObjectClassERO, ObjectTypeERORoute, 0)
	h.PFlag, h.IFlag = o.pFlag, o.iFlag
	lengthOffset := h.Encode(c)

	if err := encodeElements(c, subobjectFraming, o.subobjects, p); err != nil {
		c.Truncate(start)
		return 0, err
	}
	n, err := finishObject(c, start, lengthOffset, p.eroLengthMode)
	if err != nil {
		c.Truncate(start)
		return 0, err
	}
	return n, nil
}

func (o *EroObject) Serialize(opt ...Opt) ([]uint8, error) {
	var c Cursor
	if _, err := o.Write(&c, opt...); err != nil {
		return nil, err
	}
	return c.Bytes(), nil
}

// ToSegmentList returns the segments of the SR and SRv6 hops, in order.
func (o *EroObject) ToSegmentList() []table.Segment {
	var segs []table.Segment
	for _, so := range o.subobjects {
		sso, ok := so.(interface{ ToSegment() table.Segment })
		if !ok {
			continue
		}
		if seg := sso.ToSegment(); seg != nil {
			segs = append(segs, seg)
		}
	}
	return segs
}

func (o *EroObject) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("object", o.Class().String())
	enc.AddBool("pFlag", o.pFlag)
	enc.AddBool("iFlag", o.iFlag)
	return enc.AddArray("subobjects", marshalElements(o.subobjects))
}

// NewEroObject builds an ERO of SR / SRv6 hops from a segment list.
func NewEroObject(segmentList []table.Segment) (*EroObject, error) {
	b := NewEroObjectBuilder()
	for _, seg := range segmentList {
		so, err := NewEroSubobject(seg)
		if err != nil {
			return nil, err
		}
		b.AddSubobject(so)
	}
	return b.Build()
}
