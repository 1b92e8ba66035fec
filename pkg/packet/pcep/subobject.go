// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package pcep

import (
	"errors"
	"fmt"
	"net/netip"

	"go.uber.org/zap/zapcore"

	"github.com/nttcom/pcepobj/internal/pkg/table"
)

type SubobjectType uint8

const ( // ERO Subobject types (1 byte, L-bit excluded)
	SubobjectIPv4Prefix  SubobjectType = 0x01 // RFC3209
	SubobjectIPv6Prefix  SubobjectType = 0x02 // RFC3209
	SubobjectASNumber    SubobjectType = 0x20 // RFC3209
	SubobjectSRIANA      SubobjectType = 0x24 // RFC8664
	SubobjectSRv6        SubobjectType = 0x28 // RFC9603
	SubobjectPathKeyIPv4 SubobjectType = 0x40 // RFC5520
	SubobjectPathKeyIPv6 SubobjectType = 0x41 // RFC5520
	SubobjectSR          SubobjectType = 0x60 // draft-ietf-pce-segment-routing (pre-allocation)
)

var subobjectDescriptions = map[SubobjectType]struct {
	Description string
	Reference   string
}{
	SubobjectIPv4Prefix:  {"IPv4 prefix", "RFC3209"},
	SubobjectIPv6Prefix:  {"IPv6 prefix", "RFC3209"},
	SubobjectASNumber:    {"Autonomous system number", "RFC3209"},
	SubobjectSRIANA:      {"SR-ERO", "RFC8664"},
	SubobjectSRv6:        {"SRv6-ERO", "RFC9603"},
	SubobjectPathKeyIPv4: {"PATH-KEY (32-bit PCE-ID)", "RFC5520"},
	SubobjectPathKeyIPv6: {"PATH-KEY (128-bit PCE-ID)", "RFC5520"},
	SubobjectSR:          {"SR-ERO", "draft-ietf-pce-segment-routing"},
}

func (t SubobjectType) String() string {
	if desc, ok := subobjectDescriptions[t]; ok {
		return fmt.Sprintf("%s (%s)", desc.Description, desc.Reference)
	}
	return fmt.Sprintf("Unknown Subobject (0x%02x)", uint8(t))
}

// EroSubobject is one hop of an ERO. The set of variants is closed.
type EroSubobject interface {
	element
	Type() SubobjectType
	Loose() bool
	// Len returns the bytes the sub-object occupies, including header and padding.
	Len() int
}

var eroSubobjectRegistry = &registry[EroSubobject]{
	framing: subobjectFraming,
	ctors: map[uint16]func(h elementHeader) EroSubobject{
		uint16(SubobjectIPv4Prefix): func(h elementHeader) EroSubobject {
			return &IPPrefixSubobject{LFlag: h.Loose, Address: netip.IPv4Unspecified()}
		},
		uint16(SubobjectIPv6Prefix): func(h elementHeader) EroSubobject {
			return &IPPrefixSubobject{LFlag: h.Loose, Address: netip.IPv6Unspecified()}
		},
		uint16(SubobjectASNumber): func(h elementHeader) EroSubobject {
			return &ASNumberSubobject{LFlag: h.Loose}
		},
		uint16(SubobjectPathKeyIPv4): func(h elementHeader) EroSubobject {
			return &PathKeySubobject{LFlag: h.Loose, PCEID: netip.IPv4Unspecified()}
		},
		uint16(SubobjectPathKeyIPv6): func(h elementHeader) EroSubobject {
			return &PathKeySubobject{LFlag: h.Loose, PCEID: netip.IPv6Unspecified()}
		},
		uint16(SubobjectSR): func(h elementHeader) EroSubobject {
			return &SREroSubobject{LFlag: h.Loose, SubobjectType: SubobjectSR}
		},
		uint16(SubobjectSRIANA): func(h elementHeader) EroSubobject {
			return &SREroSubobject{LFlag: h.Loose, SubobjectType: SubobjectSRIANA}
		},
		uint16(SubobjectSRv6): func(h elementHeader) EroSubobject {
			return &SRv6EroSubobject{LFlag: h.Loose}
		},
	},
}

// SubobjectTypes lists the sub-object types the ERO decoder understands.
func SubobjectTypes() []SubobjectType {
	codes := eroSubobjectRegistry.codes()
	types := make([]SubobjectType, 0, len(codes))
	for _, code := range codes {
		types = append(types, SubobjectType(code))
	}
	return types
}

// IPv4 / IPv6 prefix subobject (RFC3209 4.3.3.1, 4.3.3.2)
type IPPrefixSubobject struct {
	LFlag        bool
	Address      netip.Addr
	PrefixLength uint8
	Flags        uint8 // reserved in an ERO, kept as received
}

func NewIPPrefixSubobject(prefix netip.Prefix, loose bool) *IPPrefixSubobject {
	return &IPPrefixSubobject{
		LFlag:        loose,
		Address:      prefix.Addr(),
		PrefixLength: uint8(prefix.Bits()),
	}
}

func (o *IPPrefixSubobject) Type() SubobjectType {
	if o.Address.Is6() {
		return SubobjectIPv6Prefix
	}
	return SubobjectIPv4Prefix
}

func (o *IPPrefixSubobject) Loose() bool         { return o.LFlag }
func (o *IPPrefixSubobject) Len() int            { return subobjectFraming.wireLen(o) }
func (o *IPPrefixSubobject) elementCode() uint16 { return uint16(o.Type()) }
func (o *IPPrefixSubobject) payloadLen() int     { return addrBytes(o.Address) + 2 }

func (o *IPPrefixSubobject) decodePayload(c *Cursor, _ *optParams) error {
	var err error
	if o.Address, err = readAddr(c, addrBytes(o.Address)); err != nil {
		return err
	}
	if o.PrefixLength, err = c.ReadUint8(); err != nil {
		return err
	}
	o.Flags, err = c.ReadUint8()
	return err
}

func (o *IPPrefixSubobject) encodePayload(c *Cursor, _ *optParams) error {
	if err := writeAddr(c, o.Address, addrBytes(o.Address)*8); err != nil {
		return err
	}
	c.WriteUint8(o.PrefixLength)
	c.WriteUint8(o.Flags)
	return nil
}

// Prefix returns the hop as a prefix; it is invalid if PrefixLength exceeds the address size.
func (o *IPPrefixSubobject) Prefix() netip.Prefix {
	return netip.PrefixFrom(o.Address, int(o.PrefixLength))
}

func (o *IPPrefixSubobject) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("type", o.Type().String())
	enc.AddBool("loose", o.LFlag)
	enc.AddString("address", o.Address.String())
	enc.AddUint8("prefixLength", o.PrefixLength)
	enc.AddUint8("flags", o.Flags)
	return nil
}

// Autonomous system number subobject (RFC3209 4.3.3.4)
type ASNumberSubobject struct {
	LFlag    bool
	ASNumber uint16
}

func (o *ASNumberSubobject) Type() SubobjectType { return SubobjectASNumber }
func (o *ASNumberSubobject) Loose() bool         { return o.LFlag }
func (o *ASNumberSubobject) Len() int            { return subobjectFraming.wireLen(o) }
func (o *ASNumberSubobject) elementCode() uint16 { return uint16(SubobjectASNumber) }
func (o *ASNumberSubobject) payloadLen() int     { return 2 }

func (o *ASNumberSubobject) decodePayload(c *Cursor, _ *optParams) error {
	var err error
	o.ASNumber, err = c.ReadUint16()
	return err
}

func (o *ASNumberSubobject) encodePayload(c *Cursor, _ *optParams) error {
	c.WriteUint16(o.ASNumber)
	return nil
}

func (o *ASNumberSubobject) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("type", o.Type().String())
	enc.AddBool("loose", o.LFlag)
	enc.AddUint16("asNumber", o.ASNumber)
	return nil
}

// PATH-KEY subobject (RFC5520 3.1)
type PathKeySubobject struct {
	LFlag   bool
	PathKey uint16
	PCEID   netip.Addr
}

func (o *PathKeySubobject) Type() SubobjectType {
	if o.PCEID.Is6() {
		return SubobjectPathKeyIPv6
	}
	return SubobjectPathKeyIPv4
}

func (o *PathKeySubobject) Loose() bool         { return o.LFlag }
func (o *PathKeySubobject) Len() int            { return subobjectFraming.wireLen(o) }
func (o *PathKeySubobject) elementCode() uint16 { return uint16(o.Type()) }
func (o *PathKeySubobject) payloadLen() int     { return 2 + addrBytes(o.PCEID) }

func (o *PathKeySubobject) decodePayload(c *Cursor, _ *optParams) error {
	var err error
	if o.PathKey, err = c.ReadUint16(); err != nil {
		return err
	}
	o.PCEID, err = readAddr(c, addrBytes(o.PCEID))
	return err
}

func (o *PathKeySubobject) encodePayload(c *Cursor, _ *optParams) error {
	c.WriteUint16(o.PathKey)
	return writeAddr(c, o.PCEID, addrBytes(o.PCEID)*8)
}

func (o *PathKeySubobject) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("type", o.Type().String())
	enc.AddBool("loose", o.LFlag)
	enc.AddUint16("pathKey", o.PathKey)
	enc.AddString("pceID", o.PCEID.String())
	return nil
}

type NaiType uint8

const (
	NT_ABSENT                   NaiType = 0x00 // RFC 8664 4.3.1
	NT_IPV4_NODE                NaiType = 0x01 // RFC 8664 4.3.1
	NT_IPV6_NODE                NaiType = 0x02 // RFC 8664 4.3.1
	NT_IPV4_ADJACENCY           NaiType = 0x03 // RFC 8664 4.3.1
	NT_IPV6_ADJACENCY_GLOBAL    NaiType = 0x04 // RFC 8664 4.3.1
	NT_UNNUMBERED_ADJACENCY     NaiType = 0x05 // RFC 8664 4.3.1
	NT_IPV6_ADJACENCY_LINKLOCAL NaiType = 0x06 // RFC 8664 4.3.1
)

var errUnsupportedNaiType = errors.New("unsupported NAI type")

// SR-ERO flags (RFC8664 4.3.1), low bits of the 12-bit flag field
const (
	srEroFFlag uint8 = 0x08 // NAI absent
	srEroSFlag uint8 = 0x04 // SID absent
	srEroCFlag uint8 = 0x02 // TC, S and TTL fields of the SID are set by the PCE
	srEroMFlag uint8 = 0x01 // SID is an MPLS label stack entry

	srEroNamedFlags = uint16(srEroFFlag | srEroSFlag | srEroCFlag | srEroMFlag)
)

// 12-bit flags field following the 4-bit NT.
const eroFlagsMask uint16 = 0x0fff

func readEroFlags(b []byte) uint16 {
	return (uint16(b[0])<<8 | uint16(b[1])) & eroFlagsMask
}

func writeEroFlags(c *Cursor, nt NaiType, flags uint16) {
	c.WriteUint16(uint16(nt)<<12 | flags&eroFlagsMask)
}

// UnnumberedAdjacency is the NAI of NT_UNNUMBERED_ADJACENCY.
type UnnumberedAdjacency struct {
	LocalNodeID       uint32
	LocalInterfaceID  uint32
	RemoteNodeID      uint32
	RemoteInterfaceID uint32
}

// SR-ERO Subobject (RFC8664 4.3.1)
type SREroSubobject struct {
	LFlag         bool
	SubobjectType SubobjectType // SubobjectSR or SubobjectSRIANA; zero encodes as SubobjectSR
	NaiType       NaiType
	FFlag         bool
	SFlag         bool
	CFlag         bool
	MFlag         bool
	OtherFlags    uint16     // unassigned bits of the flags field, kept as received
	SID           uint32     // raw SID field; label in the top 20 bits when MFlag is set
	Nai           netip.Addr // node address, or local address of an adjacency
	RemoteNai     netip.Addr // remote address of an adjacency
	Unnumbered    UnnumberedAdjacency
}

func NewSREroSubobject(seg table.SegmentSRMPLS) *SREroSubobject {
	return &SREroSubobject{
		LFlag:         false,
		SubobjectType: SubobjectSR,
		NaiType:       NT_ABSENT,
		FFlag:         true, // Nai is absent
		SFlag:         false,
		CFlag:         false,
		MFlag:         true,
		SID:           seg.Sid << 12,
	}
}

func (o *SREroSubobject) Type() SubobjectType {
	if o.SubobjectType == 0 {
		return SubobjectSR
	}
	return o.SubobjectType
}

func (o *SREroSubobject) Loose() bool         { return o.LFlag }
func (o *SREroSubobject) Len() int            { return subobjectFraming.wireLen(o) }
func (o *SREroSubobject) elementCode() uint16 { return uint16(o.Type()) }

func (o *SREroSubobject) naiLen() (int, error) {
	switch o.NaiType {
	case NT_ABSENT:
		return 0, nil
	case NT_IPV4_NODE:
		return 4, nil
	case NT_IPV6_NODE:
		return 16, nil
	case NT_IPV4_ADJACENCY:
		return 8, nil
	case NT_IPV6_ADJACENCY_GLOBAL:
		return 32, nil
	case NT_UNNUMBERED_ADJACENCY:
		return 16, nil
	default:
		return 0, fmt.Errorf("%w: %w %d", ErrUnsupportedElementType, errUnsupportedNaiType, o.NaiType)
	}
}

func (o *SREroSubobject) payloadLen() int {
	// NT and Flags (2byte) + SID (4byte, absent when S is set) + NAI
	n, _ := o.naiLen()
	if !o.SFlag {
		n += 4
	}
	return 2 + n
}

func (o *SREroSubobject) decodePayload(c *Cursor, _ *optParams) error {
	b, err := c.ReadBytes(2)
	if err != nil {
		return err
	}
	o.NaiType = NaiType(b[0] >> 4)
	o.FFlag = IsBitSet(b[1], srEroFFlag)
	o.SFlag = IsBitSet(b[1], srEroSFlag)
	o.CFlag = IsBitSet(b[1], srEroCFlag)
	o.MFlag = IsBitSet(b[1], srEroMFlag)
	o.OtherFlags = readEroFlags(b) &^ srEroNamedFlags
	if _, err := o.naiLen(); err != nil {
		return err
	}
	if !o.SFlag {
		if o.SID, err = c.ReadUint32(); err != nil {
			return err
		}
	}

	switch o.NaiType {
	case NT_IPV4_NODE:
		o.Nai, err = readAddr(c, 4)
	case NT_IPV6_NODE:
		o.Nai, err = readAddr(c, 16)
	case NT_IPV4_ADJACENCY:
		if o.Nai, err = readAddr(c, 4); err == nil {
			o.RemoteNai, err = readAddr(c, 4)
		}
	case NT_IPV6_ADJACENCY_GLOBAL:
		if o.Nai, err = readAddr(c, 16); err == nil {
			o.RemoteNai, err = readAddr(c, 16)
		}
	case NT_UNNUMBERED_ADJACENCY:
		u := &o.Unnumbered
		for _, field := range []*uint32{&u.LocalNodeID, &u.LocalInterfaceID, &u.RemoteNodeID, &u.RemoteInterfaceID} {
			if *field, err = c.ReadUint32(); err != nil {
				break
			}
		}
	}
	return err
}

func (o *SREroSubobject) encodePayload(c *Cursor, _ *optParams) error {
	if _, err := o.naiLen(); err != nil {
		return err
	}
	var flags uint8
	flags = SetBit(flags, srEroFFlag, o.FFlag)
	flags = SetBit(flags, srEroSFlag, o.SFlag)
	flags = SetBit(flags, srEroCFlag, o.CFlag)
	flags = SetBit(flags, srEroMFlag, o.MFlag)
	writeEroFlags(c, o.NaiType, o.OtherFlags&^srEroNamedFlags|uint16(flags))
	if !o.SFlag {
		c.WriteUint32(o.SID)
	}

	switch o.NaiType {
	case NT_IPV4_NODE:
		return writeAddr(c, o.Nai, 32)
	case NT_IPV6_NODE:
		return writeAddr(c, o.Nai, 128)
	case NT_IPV4_ADJACENCY:
		if err := writeAddr(c, o.Nai, 32); err != nil {
			return err
		}
		return writeAddr(c, o.RemoteNai, 32)
	case NT_IPV6_ADJACENCY_GLOBAL:
		if err := writeAddr(c, o.Nai, 128); err != nil {
			return err
		}
		return writeAddr(c, o.RemoteNai, 128)
	case NT_UNNUMBERED_ADJACENCY:
		u := o.Unnumbered
		for _, v := range []uint32{u.LocalNodeID, u.LocalInterfaceID, u.RemoteNodeID, u.RemoteInterfaceID} {
			c.WriteUint32(v)
		}
	}
	return nil
}

// ToSegment returns the SR-MPLS segment of the hop, or nil when the SID is absent.
func (o *SREroSubobject) ToSegment() table.Segment {
	if o.SFlag {
		return nil
	}
	if o.MFlag {
		return table.NewSegmentSRMPLS(o.SID >> 12)
	}
	return table.NewSegmentSRMPLS(o.SID)
}

func (o *SREroSubobject) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("type", o.Type().String())
	enc.AddBool("loose", o.LFlag)
	enc.AddUint8("naiType", uint8(o.NaiType))
	enc.AddBool("fFlag", o.FFlag)
	enc.AddBool("sFlag", o.SFlag)
	enc.AddBool("cFlag", o.CFlag)
	enc.AddBool("mFlag", o.MFlag)
	if o.OtherFlags != 0 {
		enc.AddUint16("otherFlags", o.OtherFlags)
	}
	if !o.SFlag {
		enc.AddUint32("sid", o.SID)
	}
	switch o.NaiType {
	case NT_IPV4_NODE, NT_IPV6_NODE:
		enc.AddString("nai", o.Nai.String())
	case NT_IPV4_ADJACENCY, NT_IPV6_ADJACENCY_GLOBAL:
		enc.AddString("localNai", o.Nai.String())
		enc.AddString("remoteNai", o.RemoteNai.String())
	case NT_UNNUMBERED_ADJACENCY:
		enc.AddUint32("localNodeID", o.Unnumbered.LocalNodeID)
		enc.AddUint32("localInterfaceID", o.Unnumbered.LocalInterfaceID)
		enc.AddUint32("remoteNodeID", o.Unnumbered.RemoteNodeID)
		enc.AddUint32("remoteInterfaceID", o.Unnumbered.RemoteInterfaceID)
	}
	return nil
}

// SRv6-ERO flags (RFC9603 4.3.1)
const (
	srv6EroVFlag uint8 = 0x08 // SID verification
	srv6EroTFlag uint8 = 0x04 // SID structure present
	srv6EroFFlag uint8 = 0x02 // NAI absent
	srv6EroSFlag uint8 = 0x01 // SID absent

	srv6EroNamedFlags = uint16(srv6EroVFlag | srv6EroTFlag | srv6EroFFlag | srv6EroSFlag)
)

// SRv6SIDStructure is the optional SID Structure trailing an SRv6-ERO (RFC9603 4.3.1.1).
type SRv6SIDStructure struct {
	LocalBlockLength uint8
	LocalNodeLength  uint8
	FunctionLength   uint8
	ArgumentLength   uint8
	Reserved         [3]byte
	Flags            uint8
}

// SRv6-ERO Subobject (RFC9603 4.3.1)
type SRv6EroSubobject struct {
	LFlag             bool
	NaiType           NaiType
	VFlag             bool
	TFlag             bool
	FFlag             bool
	SFlag             bool
	OtherFlags        uint16 // unassigned bits of the flags field, kept as received
	Reserved          uint16
	Behavior          uint16
	SID               netip.Addr // absent when SFlag is set
	Nai               netip.Addr // node address, or local address of an adjacency
	RemoteNai         netip.Addr
	LocalInterfaceID  uint32           // NT_IPV6_ADJACENCY_LINKLOCAL only
	RemoteInterfaceID uint32           // NT_IPV6_ADJACENCY_LINKLOCAL only
	Structure         SRv6SIDStructure // present when TFlag is set
}

func NewSRv6EroSubobject(seg table.SegmentSRv6) *SRv6EroSubobject {
	return &SRv6EroSubobject{
		LFlag:    false,
		NaiType:  NT_ABSENT,
		VFlag:    false,
		TFlag:    false,
		FFlag:    true,
		SFlag:    false,
		Behavior: uint16(1),
		SID:      seg.Sid,
	}
}

func (o *SRv6EroSubobject) Type() SubobjectType { return SubobjectSRv6 }
func (o *SRv6EroSubobject) Loose() bool         { return o.LFlag }
func (o *SRv6EroSubobject) Len() int            { return subobjectFraming.wireLen(o) }
func (o *SRv6EroSubobject) elementCode() uint16 { return uint16(SubobjectSRv6) }

func (o *SRv6EroSubobject) naiLen() (int, error) {
	switch o.NaiType {
	case NT_ABSENT:
		return 0, nil
	case NT_IPV6_NODE:
		return 16, nil
	case NT_IPV6_ADJACENCY_GLOBAL:
		return 32, nil
	case NT_IPV6_ADJACENCY_LINKLOCAL:
		return 40, nil
	default:
		return 0, fmt.Errorf("%w: %w %d", ErrUnsupportedElementType, errUnsupportedNaiType, o.NaiType)
	}
}

func (o *SRv6EroSubobject) payloadLen() int {
	// NT and Flags (2byte) + Reserved (2byte) + Behavior (2byte) + SID (16byte) + NAI + SID Structure (8byte)
	n, _ := o.naiLen()
	n += 6
	if !o.SFlag {
		n += 16
	}
	if o.TFlag {
		n += 8
	}
	return n
}

func (o *SRv6EroSubobject) decodePayload(c *Cursor, _ *optParams) error {
	b, err := c.ReadBytes(4)
	if err != nil {
		return err
	}
	o.NaiType = NaiType(b[0] >> 4)
	o.VFlag = IsBitSet(b[1], srv6EroVFlag)
	o.TFlag = IsBitSet(b[1], srv6EroTFlag)
	o.FFlag = IsBitSet(b[1], srv6EroFFlag)
	o.SFlag = IsBitSet(b[1], srv6EroSFlag)
	o.OtherFlags = readEroFlags(b) &^ srv6EroNamedFlags
	o.Reserved = uint16(b[2])<<8 | uint16(b[3])
	if _, err := o.naiLen(); err != nil {
		return err
	}
	if o.Behavior, err = c.ReadUint16(); err != nil {
		return err
	}
	if !o.SFlag {
		if o.SID, err = readAddr(c, 16); err != nil {
			return err
		}
	}

	switch o.NaiType {
	case NT_IPV6_NODE:
		o.Nai, err = readAddr(c, 16)
	case NT_IPV6_ADJACENCY_GLOBAL:
		if o.Nai, err = readAddr(c, 16); err == nil {
			o.RemoteNai, err = readAddr(c, 16)
		}
	case NT_IPV6_ADJACENCY_LINKLOCAL:
		if o.Nai, err = readAddr(c, 16); err != nil {
			return err
		}
		if o.LocalInterfaceID, err = c.ReadUint32(); err != nil {
			return err
		}
		if o.RemoteNai, err = readAddr(c, 16); err != nil {
			return err
		}
		o.RemoteInterfaceID, err = c.ReadUint32()
	}
	if err != nil || !o.TFlag {
		return err
	}

	s, err := c.ReadBytes(8)
	if err != nil {
		return err
	}
	o.Structure = SRv6SIDStructure{
		LocalBlockLength: s[0],
		LocalNodeLength:  s[1],
		FunctionLength:   s[2],
		ArgumentLength:   s[3],
		Reserved:         [3]byte{s[4], s[5], s[6]},
		Flags:            s[7],
	}
	return nil
}

func (o *SRv6EroSubobject) encodePayload(c *Cursor, _ *optParams) error {
	if _, err := o.naiLen(); err != nil {
		return err
	}
	var flags uint8
	flags = SetBit(flags, srv6EroVFlag, o.VFlag)
	flags = SetBit(flags, srv6EroTFlag, o.TFlag)
	flags = SetBit(flags, srv6EroFFlag, o.FFlag)
	flags = SetBit(flags, srv6EroSFlag, o.SFlag)
	writeEroFlags(c, o.NaiType, o.OtherFlags&^srv6EroNamedFlags|uint16(flags))
	c.WriteUint16(o.Reserved)
	c.WriteUint16(o.Behavior)
	if !o.SFlag {
		if err := writeAddr(c, o.SID, 128); err != nil {
			return err
		}
	}

	var err error
	switch o.NaiType {
	case NT_IPV6_NODE:
		err = writeAddr(c, o.Nai, 128)
	case NT_IPV6_ADJACENCY_GLOBAL:
		if err = writeAddr(c, o.Nai, 128); err == nil {
			err = writeAddr(c, o.RemoteNai, 128)
		}
	case NT_IPV6_ADJACENCY_LINKLOCAL:
		if err = writeAddr(c, o.Nai, 128); err != nil {
			return err
		}
		c.WriteUint32(o.LocalInterfaceID)
		if err = writeAddr(c, o.RemoteNai, 128); err != nil {
			return err
		}
		c.WriteUint32(o.RemoteInterfaceID)
	}
	if err != nil || !o.TFlag {
		return err
	}

	s := o.Structure
	c.WriteBytes([]byte{s.LocalBlockLength, s.LocalNodeLength, s.FunctionLength, s.ArgumentLength, s.Reserved[0], s.Reserved[1], s.Reserved[2], s.Flags})
	return nil
}

// ToSegment returns the SRv6 segment of the hop, or nil when the SID is absent.
func (o *SRv6EroSubobject) ToSegment() table.Segment {
	if o.SFlag {
		return nil
	}
	return table.NewSegmentSRv6(o.SID)
}

func (o *SRv6EroSubobject) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("type", o.Type().String())
	enc.AddBool("loose", o.LFlag)
	enc.AddUint8("naiType", uint8(o.NaiType))
	enc.AddBool("vFlag", o.VFlag)
	enc.AddBool("tFlag", o.TFlag)
	enc.AddBool("fFlag", o.FFlag)
	enc.AddBool("sFlag", o.SFlag)
	if o.OtherFlags != 0 {
		enc.AddUint16("otherFlags", o.OtherFlags)
	}
	enc.AddUint16("behavior", o.Behavior)
	if !o.SFlag {
		enc.AddString("sid", o.SID.String())
	}
	if o.NaiType != NT_ABSENT {
		enc.AddString("nai", o.Nai.String())
	}
	if o.NaiType == NT_IPV6_ADJACENCY_GLOBAL || o.NaiType == NT_IPV6_ADJACENCY_LINKLOCAL {
		enc.AddString("remoteNai", o.RemoteNai.String())
	}
	return nil
}

// NewEroSubobject converts a segment into an SR-ERO or SRv6-ERO hop.
func NewEroSubobject(seg table.Segment) (EroSubobject, error) {
	switch v := seg.(type) {
	case table.SegmentSRMPLS:
		return NewSREroSubobject(v), nil
	case table.SegmentSRv6:
		return NewSRv6EroSubobject(v), nil
	default:
		return nil, fmt.Errorf("invalid Segment type %T", seg)
	}
}
