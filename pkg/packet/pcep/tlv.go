// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package pcep

import (
	"fmt"
	"slices"

	"go.uber.org/zap/zapcore"
)

type TLVType uint16

// TE object TLV types
const (
	TLVRoutingUniverse         TLVType = 0x000e // draft-dhodylee-pce-pcep-ls
	TLVLocalTENodeDescriptors  TLVType = 0xff02 // draft-dhodylee-pce-pcep-ls
	TLVRemoteTENodeDescriptors TLVType = 0xff03 // draft-dhodylee-pce-pcep-ls
	TLVTELinkDescriptors       TLVType = 0xff04 // draft-dhodylee-pce-pcep-ls
	TLVTENodeAttributes        TLVType = 0xff05 // draft-dhodylee-pce-pcep-ls
	TLVTELinkAttributes        TLVType = 0xff06 // draft-dhodylee-pce-pcep-ls
)

var tlvDescriptions = map[TLVType]struct {
	Description string
	Reference   string
}{
	TLVRoutingUniverse:         {"ROUTING-UNIVERSE", "draft-dhodylee-pce-pcep-ls"},
	TLVLocalTENodeDescriptors:  {"LOCAL-TE-NODE-DESCRIPTORS", "draft-dhodylee-pce-pcep-ls"},
	TLVRemoteTENodeDescriptors: {"REMOTE-TE-NODE-DESCRIPTORS", "draft-dhodylee-pce-pcep-ls"},
	TLVTELinkDescriptors:       {"TE-LINK-DESCRIPTORS", "draft-dhodylee-pce-pcep-ls"},
	TLVTENodeAttributes:        {"TE-NODE-ATTRIBUTES", "draft-dhodylee-pce-pcep-ls"},
	TLVTELinkAttributes:        {"TE-LINK-ATTRIBUTES", "draft-dhodylee-pce-pcep-ls"},
}

func (t TLVType) String() string {
	if desc, ok := tlvDescriptions[t]; ok {
		return fmt.Sprintf("%s (%s)", desc.Description, desc.Reference)
	}
	return fmt.Sprintf("Unknown TLV (0x%04x)", uint16(t))
}

// TLV header length (type + length)
const TLVHeaderLength = 4

// TLV value lengths, excluding the 4-byte TLV header (type + length)
const (
	TLVRoutingUniverseValueLength uint16 = 8
)

// TETLV is a TLV carried in the TE object. The set of variants is closed.
type TETLV interface {
	element
	Type() TLVType
	// Len returns the total length of Type, Length, Value and padding.
	Len() int
}

var teTLVRegistry = &registry[TETLV]{
	framing: tlvFraming,
	ctors: map[uint16]func(h elementHeader) TETLV{
		uint16(TLVRoutingUniverse):         func(elementHeader) TETLV { return &RoutingUniverse{} },
		uint16(TLVLocalTENodeDescriptors):  func(elementHeader) TETLV { return &LocalTENodeDescriptors{} },
		uint16(TLVRemoteTENodeDescriptors): func(elementHeader) TETLV { return &RemoteTENodeDescriptors{} },
		uint16(TLVTELinkDescriptors):       func(elementHeader) TETLV { return &TELinkDescriptors{} },
		uint16(TLVTENodeAttributes):        func(elementHeader) TETLV { return &TENodeAttributes{} },
		uint16(TLVTELinkAttributes):        func(elementHeader) TETLV { return &TELinkAttributes{} },
	},
}

// TLVTypes lists the TLV types the TE object decoder understands.
func TLVTypes() []TLVType {
	codes := teTLVRegistry.codes()
	types := make([]TLVType, 0, len(codes))
	for _, code := range codes {
		types = append(types, TLVType(code))
	}
	return types
}

// RoutingUniverse identifies the topology a TE object belongs to.
// 0: L3 packet topology, 1: L1 optical topology.
type RoutingUniverse struct {
	Identifier uint64
}

func (tlv *RoutingUniverse) Type() TLVType       { return TLVRoutingUniverse }
func (tlv *RoutingUniverse) Len() int            { return tlvFraming.wireLen(tlv) }
func (tlv *RoutingUniverse) elementCode() uint16 { return uint16(TLVRoutingUniverse) }
func (tlv *RoutingUniverse) payloadLen() int     { return int(TLVRoutingUniverseValueLength) }

func (tlv *RoutingUniverse) decodePayload(c *Cursor, _ *optParams) error {
	var err error
	tlv.Identifier, err = c.ReadUint64()
	return err
}

func (tlv *RoutingUniverse) encodePayload(c *Cursor, _ *optParams) error {
	c.WriteUint64(tlv.Identifier)
	return nil
}

func (tlv *RoutingUniverse) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("type", tlv.Type().String())
	enc.AddUint64("identifier", tlv.Identifier)
	return nil
}

// subTLVList is the value of a TE TLV made of sub-TLVs from one registry.
type subTLVList struct {
	SubTLVs []SubTLV
}

func (l *subTLVList) payloadLen() int {
	return elementsWireLen(tlvFraming, l.SubTLVs)
}

func (l *subTLVList) hasNilSubTLV() bool {
	return slices.ContainsFunc(l.SubTLVs, func(s SubTLV) bool { return isNilElement(s) })
}

func (l *subTLVList) decodeFrom(c *Cursor, r *registry[SubTLV], p *optParams) error {
	subTLVs, err := decodeElements(c, r, p)
	if err != nil {
		return err
	}
	l.SubTLVs = subTLVs
	return nil
}

func (l *subTLVList) encodeTo(c *Cursor, r *registry[SubTLV], p *optParams) error {
	for _, s := range l.SubTLVs {
		if isNilElement(s) {
			continue
		}
		if _, ok := r.ctors[s.elementCode()]; !ok {
			return fmt.Errorf("%w: sub-TLV %s is not allowed here", ErrUnsupportedElementType, s.Type())
		}
	}
	return encodeElements(c, tlvFraming, l.SubTLVs, p)
}

func (l *subTLVList) marshal(enc zapcore.ObjectEncoder, t TLVType) error {
	enc.AddString("type", t.String())
	return enc.AddArray("subTLVs", marshalElements(l.SubTLVs))
}

// LocalTENodeDescriptors identifies the node a TE object describes, or the local end of a link.
type LocalTENodeDescriptors struct{ subTLVList }

func NewLocalTENodeDescriptors(subTLVs ...SubTLV) *LocalTENodeDescriptors {
	return &LocalTENodeDescriptors{subTLVList{SubTLVs: subTLVs}}
}

func (tlv *LocalTENodeDescriptors) Type() TLVType       { return TLVLocalTENodeDescriptors }
func (tlv *LocalTENodeDescriptors) Len() int            { return tlvFraming.wireLen(tlv) }
func (tlv *LocalTENodeDescriptors) elementCode() uint16 { return uint16(TLVLocalTENodeDescriptors) }

func (tlv *LocalTENodeDescriptors) decodePayload(c *Cursor, p *optParams) error {
	return tlv.decodeFrom(c, nodeDescriptorRegistry, p)
}

func (tlv *LocalTENodeDescriptors) encodePayload(c *Cursor, p *optParams) error {
	return tlv.encodeTo(c, nodeDescriptorRegistry, p)
}

func (tlv *LocalTENodeDescriptors) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	return tlv.marshal(enc, tlv.Type())
}

// RemoteTENodeDescriptors identifies the remote end of a link.
type RemoteTENodeDescriptors struct{ subTLVList }

func NewRemoteTENodeDescriptors(subTLVs ...SubTLV) *RemoteTENodeDescriptors {
	return &RemoteTENodeDescriptors{subTLVList{SubTLVs: subTLVs}}
}

func (tlv *RemoteTENodeDescriptors) Type() TLVType       { return TLVRemoteTENodeDescriptors }
func (tlv *RemoteTENodeDescriptors) Len() int            { return tlvFraming.wireLen(tlv) }
func (tlv *RemoteTENodeDescriptors) elementCode() uint16 { return uint16(TLVRemoteTENodeDescriptors) }

func (tlv *RemoteTENodeDescriptors) decodePayload(c *Cursor, p *optParams) error {
	return tlv.decodeFrom(c, nodeDescriptorRegistry, p)
}

func (tlv *RemoteTENodeDescriptors) encodePayload(c *Cursor, p *optParams) error {
	return tlv.encodeTo(c, nodeDescriptorRegistry, p)
}

func (tlv *RemoteTENodeDescriptors) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	return tlv.marshal(enc, tlv.Type())
}

type TELinkDescriptors struct{ subTLVList }

func NewTELinkDescriptors(subTLVs ...SubTLV) *TELinkDescriptors {
	return &TELinkDescriptors{subTLVList{SubTLVs: subTLVs}}
}

func (tlv *TELinkDescriptors) Type() TLVType       { return TLVTELinkDescriptors }
func (tlv *TELinkDescriptors) Len() int            { return tlvFraming.wireLen(tlv) }
func (tlv *TELinkDescriptors) elementCode() uint16 { return uint16(TLVTELinkDescriptors) }

func (tlv *TELinkDescriptors) decodePayload(c *Cursor, p *optParams) error {
	return tlv.decodeFrom(c, linkDescriptorRegistry, p)
}

func (tlv *TELinkDescriptors) encodePayload(c *Cursor, p *optParams) error {
	return tlv.encodeTo(c, linkDescriptorRegistry, p)
}

func (tlv *TELinkDescriptors) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	return tlv.marshal(enc, tlv.Type())
}

type TENodeAttributes struct{ subTLVList }

func NewTENodeAttributes(subTLVs ...SubTLV) *TENodeAttributes {
	return &TENodeAttributes{subTLVList{SubTLVs: subTLVs}}
}

func (tlv *TENodeAttributes) Type() TLVType       { return TLVTENodeAttributes }
func (tlv *TENodeAttributes) Len() int            { return tlvFraming.wireLen(tlv) }
func (tlv *TENodeAttributes) elementCode() uint16 { return uint16(TLVTENodeAttributes) }

func (tlv *TENodeAttributes) decodePayload(c *Cursor, p *optParams) error {
	return tlv.decodeFrom(c, nodeAttributeRegistry, p)
}

func (tlv *TENodeAttributes) encodePayload(c *Cursor, p *optParams) error {
	return tlv.encodeTo(c, nodeAttributeRegistry, p)
}

func (tlv *TENodeAttributes) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	return tlv.marshal(enc, tlv.Type())
}

type TELinkAttributes struct{ subTLVList }

func NewTELinkAttributes(subTLVs ...SubTLV) *TELinkAttributes {
	return &TELinkAttributes{subTLVList{SubTLVs: subTLVs}}
}

func (tlv *TELinkAttributes) Type() TLVType       { return TLVTELinkAttributes }
func (tlv *TELinkAttributes) Len() int            { return tlvFraming.wireLen(tlv) }
func (tlv *TELinkAttributes) elementCode() uint16 { return uint16(TLVTELinkAttributes) }

func (tlv *TELinkAttributes) decodePayload(c *Cursor, p *optParams) error {
	return tlv.decodeFrom(c, linkAttributeRegistry, p)
}

func (tlv *TELinkAttributes) encodePayload(c *Cursor, p *optParams) error {
	return tlv.encodeTo(c, linkAttributeRegistry, p)
}

func (tlv *TELinkAttributes) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	return tlv.marshal(enc, tlv.Type())
}
