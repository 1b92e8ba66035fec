// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package pcep

import (
	"fmt"
	"slices"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ProtocolID is the source protocol of the TE information (draft-dhodylee-pce-pcep-ls 9.2).
type ProtocolID uint8

const (
	ProtocolISISLevel1 ProtocolID = 0x01
	ProtocolISISLevel2 ProtocolID = 0x02
	ProtocolOSPFv2     ProtocolID = 0x03
	ProtocolDirect     ProtocolID = 0x04
	ProtocolStatic     ProtocolID = 0x05
	ProtocolOSPFv3     ProtocolID = 0x06
)

var protocolIDNames = map[ProtocolID]string{
	ProtocolISISLevel1: "IS-IS Level 1",
	ProtocolISISLevel2: "IS-IS Level 2",
	ProtocolOSPFv2:     "OSPFv2",
	ProtocolDirect:     "Direct",
	ProtocolStatic:     "Static configuration",
	ProtocolOSPFv3:     "OSPFv3",
}

func (p ProtocolID) String() string {
	if name, ok := protocolIDNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Unknown Protocol-ID (%d)", uint8(p))
}

const (
	teObjectFixedLength = 8 // Protocol-ID, Reserved, Flags, TE-ID
	teObjectSFlag       = 0x01
	teObjectRFlag       = 0x02
)

// TE Object (draft-dhodylee-pce-pcep-ls 9.2)
type TEObject struct {
	pFlag      bool
	iFlag      bool
	objectType ObjectType
	protocolID ProtocolID
	sFlag      bool // LSDB sync
	rFlag      bool // remove
	teID       uint32
	tlvs       []TETLV
}

func (o *TEObject) Class() ObjectClass     { return ObjectClassTE }
func (o *TEObject) Type() ObjectType       { return o.objectType }
func (o *TEObject) PFlag() bool            { return o.pFlag }
func (o *TEObject) IFlag() bool            { return o.iFlag }
func (o *TEObject) ProtocolID() ProtocolID { return o.protocolID }
func (o *TEObject) SFlag() bool            { return o.sFlag }
func (o *TEObject) RFlag() bool            { return o.rFlag }
func (o *TEObject) TEID() uint32           { return o.teID }

// TLVs returns the TLVs in wire order.
func (o *TEObject) TLVs() []TETLV {
	return slices.Clone(o.tlvs)
}

func (o *TEObject) Len() int {
	return CommonObjectHeaderLength + teObjectFixedLength + elementsWireLen(tlvFraming, o.tlvs)
}

// DecodeTEObject reads one TE object (node or link) from c.
func DecodeTEObject(c *Cursor, opt ...Opt) (*TEObject, error) {
	p := newOptParams(opt)
	start := c.Offset()
	h, body, err := DecodeCommonObjectHeader(c)
	if err != nil {
		return nil, err
	}
	if h.ObjectClass != ObjectClassTE || (h.ObjectType != ObjectTypeTENode && h.ObjectType != ObjectTypeTELink) {
		return nil, newDecodeError(ErrUnexpectedObjectClass, "TE object", start,
			"got class %s type %d", h.ObjectClass, h.ObjectType)
	}
	if body.Remaining() < teObjectFixedLength {
		return nil, newDecodeError(ErrTruncatedElement, "TE object", start,
			"body of %d bytes is shorter than %d", body.Remaining(), teObjectFixedLength)
	}

	o := &TEObject{
		pFlag:      h.PFlag,
		iFlag:      h.IFlag,
		objectType: h.ObjectType,
	}
	protocolID, _ := body.ReadUint8()
	o.protocolID = ProtocolID(protocolID)
	_ = body.Skip(2) // Reserved
	flags, _ := body.ReadUint8()
	o.sFlag = IsBitSet(flags, teObjectSFlag)
	o.rFlag = IsBitSet(flags, teObjectRFlag)
	o.teID, _ = body.ReadUint32()

	if o.tlvs, err = decodeElements(body, teTLVRegistry, p); err != nil {
		return nil, err
	}
	p.logger.Debug("decoded TE object", zap.Uint32("teID", o.teID), zap.Int("tlvs", len(o.tlvs)))
	return o, nil
}

// ParseTEObject decodes data holding exactly one TE object.
func ParseTEObject(data []byte, opt ...Opt) (*TEObject, error) {
	c := NewCursor(data)
	o, err := DecodeTEObject(c, opt...)
	if err != nil {
		return nil, err
	}
	if err := expectEnd(c); err != nil {
		return nil, err
	}
	return o, nil
}

// Write appends the encoded object to c. The header length is exact; the TE
// object has no object-level padding. On error nothing is left appended to c.
func (o *TEObject) Write(c *Cursor, opt ...Opt) (int, error) {
	p := newOptParams(opt)
	start := c.Len()
	h := NewCommonObjectHeader(ObjectClassTE, o.objectType, 0)
	h.PFlag, h.IFlag = o.pFlag, o.iFlag
	lengthOffset := h.Encode(c)

	c.WriteUint8(uint8(o.protocolID))
	c.WriteZeros(2)
	var flags uint8
	flags = SetBit(flags, teObjectSFlag, o.sFlag)
	flags = SetBit(flags, teObjectRFlag, o.rFlag)
	c.WriteUint8(flags)
	c.WriteUint32(o.teID)

	if err := encodeElements(c, tlvFraming, o.tlvs, p); err != nil {
		c.Truncate(start)
		return 0, err
	}
	n := c.Len() - start
	if err := PatchObjectLength(c, lengthOffset, n); err != nil {
		c.Truncate(start)
		return 0, err
	}
	return n, nil
}

func (o *TEObject) Serialize(opt ...Opt) ([]uint8, error) {
	var c Cursor
	if _, err := o.Write(&c, opt...); err != nil {
		return nil, err
	}
	return c.Bytes(), nil
}

func (o *TEObject) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("object", o.Class().String())
	if o.objectType == ObjectTypeTELink {
		enc.AddString("objectType", "link")
	} else {
		enc.AddString("objectType", "node")
	}
	enc.AddBool("pFlag", o.pFlag)
	enc.AddBool("iFlag", o.iFlag)
	enc.AddString("protocolID", o.protocolID.String())
	enc.AddBool("sFlag", o.sFlag)
	enc.AddBool("rFlag", o.rFlag)
	enc.AddUint32("teID", o.teID)
	return enc.AddArray("tlvs", marshalElements(o.tlvs))
}
