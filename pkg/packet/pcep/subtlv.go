// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package pcep

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math"
	"net/netip"
	"strings"
	"unicode/utf8"

	"github.com/osrg/gobgp/v3/pkg/packet/bgp"
	"go.uber.org/zap/zapcore"
)

// SubTLVType is a sub-TLV code inside the TE node/link descriptor and attribute
// TLVs. The code space is the BGP-LS one (RFC7752 3.2).
type SubTLVType uint16

const (
	SubTLVLinkIdentifiers        SubTLVType = SubTLVType(bgp.LS_TLV_LINK_ID)                  // RFC5307 1.1
	SubTLVIPv4InterfaceAddress   SubTLVType = SubTLVType(bgp.LS_TLV_IPV4_INTERFACE_ADDR)      // RFC5305 3.2
	SubTLVIPv4NeighborAddress    SubTLVType = SubTLVType(bgp.LS_TLV_IPV4_NEIGHBOR_ADDR)       // RFC5305 3.3
	SubTLVIPv6InterfaceAddress   SubTLVType = SubTLVType(bgp.LS_TLV_IPV6_INTERFACE_ADDR)      // RFC6119 4.2
	SubTLVIPv6NeighborAddress    SubTLVType = SubTLVType(bgp.LS_TLV_IPV6_NEIGHBOR_ADDR)       // RFC6119 4.3
	SubTLVAutonomousSystem       SubTLVType = SubTLVType(bgp.LS_TLV_AS)                       // RFC7752 3.2.1.4
	SubTLVBGPLSIdentifier        SubTLVType = SubTLVType(bgp.LS_TLV_BGP_LS_ID)                // RFC7752 3.2.1.4
	SubTLVOSPFAreaID             SubTLVType = SubTLVType(bgp.LS_TLV_OSPF_AREA)                // RFC7752 3.2.1.4
	SubTLVIGPRouterID            SubTLVType = SubTLVType(bgp.LS_TLV_IGP_ROUTER_ID)            // RFC7752 3.2.1.4
	SubTLVNodeFlagBits           SubTLVType = SubTLVType(bgp.LS_TLV_NODE_FLAG_BITS)           // RFC7752 3.3.1.1
	SubTLVNodeName               SubTLVType = SubTLVType(bgp.LS_TLV_NODE_NAME)                // RFC7752 3.3.1.3
	SubTLVISISAreaIdentifier     SubTLVType = SubTLVType(bgp.LS_TLV_ISIS_AREA)                // RFC7752 3.3.1.2
	SubTLVIPv4LocalRouterID      SubTLVType = SubTLVType(bgp.LS_TLV_IPV4_LOCAL_ROUTER_ID)     // RFC5305 4.3
	SubTLVIPv6LocalRouterID      SubTLVType = SubTLVType(bgp.LS_TLV_IPV6_LOCAL_ROUTER_ID)     // RFC6119 4.1
	SubTLVIPv4RemoteRouterID     SubTLVType = SubTLVType(bgp.LS_TLV_IPV4_REMOTE_ROUTER_ID)    // RFC5305 4.3
	SubTLVIPv6RemoteRouterID     SubTLVType = SubTLVType(bgp.LS_TLV_IPV6_REMOTE_ROUTER_ID)    // RFC6119 4.1
	SubTLVAdministrativeGroup    SubTLVType = SubTLVType(bgp.LS_TLV_ADMIN_GROUP)              // RFC5305 3.1
	SubTLVMaxLinkBandwidth       SubTLVType = SubTLVType(bgp.LS_TLV_MAX_LINK_BANDWIDTH)       // RFC5305 3.4
	SubTLVMaxReservableBandwidth SubTLVType = SubTLVType(bgp.LS_TLV_MAX_RESERVABLE_BANDWIDTH) // RFC5305 3.5
	SubTLVTEDefaultMetric        SubTLVType = SubTLVType(bgp.LS_TLV_TE_DEFAULT_METRIC)        // RFC7752 3.3.2.3
	SubTLVIGPMetric              SubTLVType = SubTLVType(bgp.LS_TLV_IGP_METRIC)               // RFC7752 3.3.2.4
)

var subTLVDescriptions = map[SubTLVType]string{
	SubTLVLinkIdentifiers:        "Link Local/Remote Identifiers",
	SubTLVIPv4InterfaceAddress:   "IPv4 interface address",
	SubTLVIPv4NeighborAddress:    "IPv4 neighbor address",
	SubTLVIPv6InterfaceAddress:   "IPv6 interface address",
	SubTLVIPv6NeighborAddress:    "IPv6 neighbor address",
	SubTLVAutonomousSystem:       "Autonomous System",
	SubTLVBGPLSIdentifier:        "BGP-LS Identifier",
	SubTLVOSPFAreaID:             "OSPF Area-ID",
	SubTLVIGPRouterID:            "IGP Router-ID",
	SubTLVNodeFlagBits:           "Node Flag Bits",
	SubTLVNodeName:               "Node Name",
	SubTLVISISAreaIdentifier:     "IS-IS Area Identifier",
	SubTLVIPv4LocalRouterID:      "IPv4 Router-ID of Local Node",
	SubTLVIPv6LocalRouterID:      "IPv6 Router-ID of Local Node",
	SubTLVIPv4RemoteRouterID:     "IPv4 Router-ID of Remote Node",
	SubTLVIPv6RemoteRouterID:     "IPv6 Router-ID of Remote Node",
	SubTLVAdministrativeGroup:    "Administrative group (color)",
	SubTLVMaxLinkBandwidth:       "Maximum link bandwidth",
	SubTLVMaxReservableBandwidth: "Max. reservable link bandwidth",
	SubTLVTEDefaultMetric:        "TE Default Metric",
	SubTLVIGPMetric:              "IGP Metric",
}

func (t SubTLVType) String() string {
	if desc, ok := subTLVDescriptions[t]; ok {
		return fmt.Sprintf("%s (%d)", desc, uint16(t))
	}
	return fmt.Sprintf("Unknown sub-TLV (%d)", uint16(t))
}

// SubTLV is a sub-TLV of a TE descriptor or attribute TLV.
type SubTLV interface {
	element
	Type() SubTLVType
	Len() int
}

func newUint32SubTLV(h elementHeader) SubTLV {
	return &Uint32SubTLV{SubTLVType: SubTLVType(h.Code)}
}

func newAddressSubTLV(h elementHeader) SubTLV {
	return &AddressSubTLV{SubTLVType: SubTLVType(h.Code)}
}

func newBandwidthSubTLV(h elementHeader) SubTLV {
	return &BandwidthSubTLV{SubTLVType: SubTLVType(h.Code)}
}

var nodeDescriptorRegistry = &registry[SubTLV]{
	framing: tlvFraming,
	ctors: map[uint16]func(h elementHeader) SubTLV{
		uint16(SubTLVAutonomousSystem): newUint32SubTLV,
		uint16(SubTLVBGPLSIdentifier):  newUint32SubTLV,
		uint16(SubTLVOSPFAreaID):       newUint32SubTLV,
		uint16(SubTLVIGPRouterID):      func(elementHeader) SubTLV { return &IGPRouterID{} },
	},
}

var linkDescriptorRegistry = &registry[SubTLV]{
	framing: tlvFraming,
	ctors: map[uint16]func(h elementHeader) SubTLV{
		uint16(SubTLVLinkIdentifiers):      func(elementHeader) SubTLV { return &LinkIdentifiers{} },
		uint16(SubTLVIPv4InterfaceAddress): newAddressSubTLV,
		uint16(SubTLVIPv4NeighborAddress):  newAddressSubTLV,
		uint16(SubTLVIPv6InterfaceAddress): newAddressSubTLV,
		uint16(SubTLVIPv6NeighborAddress):  newAddressSubTLV,
	},
}

var nodeAttributeRegistry = &registry[SubTLV]{
	framing: tlvFraming,
	ctors: map[uint16]func(h elementHeader) SubTLV{
		uint16(SubTLVNodeFlagBits):       func(elementHeader) SubTLV { return &NodeFlagBits{} },
		uint16(SubTLVNodeName):           func(elementHeader) SubTLV { return &NodeName{} },
		uint16(SubTLVISISAreaIdentifier): func(elementHeader) SubTLV { return &ISISAreaIdentifier{} },
		uint16(SubTLVIPv4LocalRouterID):  newAddressSubTLV,
		uint16(SubTLVIPv6LocalRouterID):  newAddressSubTLV,
	},
}

var linkAttributeRegistry = &registry[SubTLV]{
	framing: tlvFraming,
	ctors: map[uint16]func(h elementHeader) SubTLV{
		uint16(SubTLVIPv4LocalRouterID):      newAddressSubTLV,
		uint16(SubTLVIPv6LocalRouterID):      newAddressSubTLV,
		uint16(SubTLVIPv4RemoteRouterID):     newAddressSubTLV,
		uint16(SubTLVIPv6RemoteRouterID):     newAddressSubTLV,
		uint16(SubTLVAdministrativeGroup):    newUint32SubTLV,
		uint16(SubTLVMaxLinkBandwidth):       newBandwidthSubTLV,
		uint16(SubTLVMaxReservableBandwidth): newBandwidthSubTLV,
		uint16(SubTLVTEDefaultMetric):        newUint32SubTLV,
		uint16(SubTLVIGPMetric):              func(elementHeader) SubTLV { return &IGPMetric{} },
	},
}

var subTLVRegistries = map[TLVType]*registry[SubTLV]{
	TLVLocalTENodeDescriptors:  nodeDescriptorRegistry,
	TLVRemoteTENodeDescriptors: nodeDescriptorRegistry,
	TLVTELinkDescriptors:       linkDescriptorRegistry,
	TLVTENodeAttributes:        nodeAttributeRegistry,
	TLVTELinkAttributes:        linkAttributeRegistry,
}

// SubTLVTypes lists the sub-TLV types allowed inside the TLV of type t.
func SubTLVTypes(t TLVType) []SubTLVType {
	r, ok := subTLVRegistries[t]
	if !ok {
		return nil
	}
	codes := r.codes()
	types := make([]SubTLVType, 0, len(codes))
	for _, code := range codes {
		types = append(types, SubTLVType(code))
	}
	return types
}

// Uint32SubTLV carries a single 32-bit value: AS number, BGP-LS identifier,
// OSPF area, administrative group or TE default metric.
type Uint32SubTLV struct {
	SubTLVType SubTLVType
	Value      uint32
}

func (tlv *Uint32SubTLV) Type() SubTLVType    { return tlv.SubTLVType }
func (tlv *Uint32SubTLV) Len() int            { return tlvFraming.wireLen(tlv) }
func (tlv *Uint32SubTLV) elementCode() uint16 { return uint16(tlv.SubTLVType) }
func (tlv *Uint32SubTLV) payloadLen() int     { return 4 }

func (tlv *Uint32SubTLV) decodePayload(c *Cursor, _ *optParams) error {
	var err error
	tlv.Value, err = c.ReadUint32()
	return err
}

func (tlv *Uint32SubTLV) encodePayload(c *Cursor, _ *optParams) error {
	c.WriteUint32(tlv.Value)
	return nil
}

func (tlv *Uint32SubTLV) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("type", tlv.SubTLVType.String())
	enc.AddUint32("value", tlv.Value)
	return nil
}

// IGPRouterID is 4 bytes (OSPFv2/v3 router-id), 6 bytes (IS-IS system-id),
// 7 bytes (IS-IS pseudonode) or 8 bytes (OSPF pseudonode).
type IGPRouterID struct {
	RouterID []byte
}

func (tlv *IGPRouterID) Type() SubTLVType    { return SubTLVIGPRouterID }
func (tlv *IGPRouterID) Len() int            { return tlvFraming.wireLen(tlv) }
func (tlv *IGPRouterID) elementCode() uint16 { return uint16(SubTLVIGPRouterID) }
func (tlv *IGPRouterID) payloadLen() int     { return len(tlv.RouterID) }

func validIGPRouterIDLength(n int) bool {
	return n == 4 || n == 6 || n == 7 || n == 8
}

func (tlv *IGPRouterID) decodePayload(c *Cursor, _ *optParams) error {
	if !validIGPRouterIDLength(c.Remaining()) {
		return fmt.Errorf("invalid IGP Router-ID length %d", c.Remaining())
	}
	b, _ := c.ReadBytes(c.Remaining())
	tlv.RouterID = bytes.Clone(b)
	return nil
}

func (tlv *IGPRouterID) encodePayload(c *Cursor, _ *optParams) error {
	if !validIGPRouterIDLength(len(tlv.RouterID)) {
		return fmt.Errorf("invalid IGP Router-ID length %d", len(tlv.RouterID))
	}
	c.WriteBytes(tlv.RouterID)
	return nil
}

// String renders an OSPF router-id as an IPv4 address and an IS-IS system-id as xxxx.xxxx.xxxx.
func (tlv *IGPRouterID) String() string {
	switch len(tlv.RouterID) {
	case 4:
		return netip.AddrFrom4([4]byte(tlv.RouterID)).String()
	case 6, 7:
		id := tlv.RouterID
		s := fmt.Sprintf("%02x%02x.%02x%02x.%02x%02x", id[0], id[1], id[2], id[3], id[4], id[5])
		if len(id) == 7 {
			s += fmt.Sprintf(".%02x", id[6])
		}
		return s
	default:
		return hex.EncodeToString(tlv.RouterID)
	}
}

// ParseIGPRouterID is the inverse of String for OSPF router-ids and IS-IS
// system-ids (with or without the pseudonode octet).
func ParseIGPRouterID(s string) (*IGPRouterID, error) {
	if addr, err := netip.ParseAddr(s); err == nil && addr.Is4() {
		b := addr.As4()
		return &IGPRouterID{RouterID: b[:]}, nil
	}
	id, err := hex.DecodeString(strings.ReplaceAll(s, ".", ""))
	if err != nil || (len(id) != 6 && len(id) != 7) {
		return nil, fmt.Errorf("invalid IGP Router-ID %q", s)
	}
	return &IGPRouterID{RouterID: id}, nil
}

func (tlv *IGPRouterID) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("type", tlv.Type().String())
	enc.AddString("routerID", tlv.String())
	return nil
}

// LinkIdentifiers carries the local and remote link identifiers of an unnumbered link.
type LinkIdentifiers struct {
	LocalID  uint32
	RemoteID uint32
}

func (tlv *LinkIdentifiers) Type() SubTLVType    { return SubTLVLinkIdentifiers }
func (tlv *LinkIdentifiers) Len() int            { return tlvFraming.wireLen(tlv) }
func (tlv *LinkIdentifiers) elementCode() uint16 { return uint16(SubTLVLinkIdentifiers) }
func (tlv *LinkIdentifiers) payloadLen() int     { return 8 }

func (tlv *LinkIdentifiers) decodePayload(c *Cursor, _ *optParams) error {
	var err error
	if tlv.LocalID, err = c.ReadUint32(); err != nil {
		return err
	}
	tlv.RemoteID, err = c.ReadUint32()
	return err
}

func (tlv *LinkIdentifiers) encodePayload(c *Cursor, _ *optParams) error {
	c.WriteUint32(tlv.LocalID)
	c.WriteUint32(tlv.RemoteID)
	return nil
}

func (tlv *LinkIdentifiers) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("type", tlv.Type().String())
	enc.AddUint32("localID", tlv.LocalID)
	enc.AddUint32("remoteID", tlv.RemoteID)
	return nil
}

// ipv6AddressSubTLVs are the address sub-TLVs holding an IPv6 address; the others hold IPv4.
var ipv6AddressSubTLVs = map[SubTLVType]bool{
	SubTLVIPv6InterfaceAddress: true,
	SubTLVIPv6NeighborAddress:  true,
	SubTLVIPv6LocalRouterID:    true,
	SubTLVIPv6RemoteRouterID:   true,
}

// AddressSubTLV carries an interface, neighbor or router-id address.
type AddressSubTLV struct {
	SubTLVType SubTLVType
	Address    netip.Addr
}

func (tlv *AddressSubTLV) Type() SubTLVType    { return tlv.SubTLVType }
func (tlv *AddressSubTLV) Len() int            { return tlvFraming.wireLen(tlv) }
func (tlv *AddressSubTLV) elementCode() uint16 { return uint16(tlv.SubTLVType) }

func (tlv *AddressSubTLV) payloadLen() int {
	if ipv6AddressSubTLVs[tlv.SubTLVType] {
		return 16
	}
	return 4
}

func (tlv *AddressSubTLV) decodePayload(c *Cursor, _ *optParams) error {
	var err error
	tlv.Address, err = readAddr(c, tlv.payloadLen())
	return err
}

func (tlv *AddressSubTLV) encodePayload(c *Cursor, _ *optParams) error {
	return writeAddr(c, tlv.Address, tlv.payloadLen()*8)
}

func (tlv *AddressSubTLV) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("type", tlv.SubTLVType.String())
	enc.AddString("address", tlv.Address.String())
	return nil
}

// Node Flag Bits (RFC7752 3.3.1.1)
const (
	NodeFlagOverload uint8 = 0x80
	NodeFlagAttached uint8 = 0x40
	NodeFlagExternal uint8 = 0x20
	NodeFlagABR      uint8 = 0x10
	NodeFlagRouter   uint8 = 0x08
	NodeFlagV6       uint8 = 0x04
)

type NodeFlagBits struct {
	Flags uint8
}

func (tlv *NodeFlagBits) Type() SubTLVType    { return SubTLVNodeFlagBits }
func (tlv *NodeFlagBits) Len() int            { return tlvFraming.wireLen(tlv) }
func (tlv *NodeFlagBits) elementCode() uint16 { return uint16(SubTLVNodeFlagBits) }
func (tlv *NodeFlagBits) payloadLen() int     { return 1 }

func (tlv *NodeFlagBits) decodePayload(c *Cursor, _ *optParams) error {
	var err error
	tlv.Flags, err = c.ReadUint8()
	return err
}

func (tlv *NodeFlagBits) encodePayload(c *Cursor, _ *optParams) error {
	c.WriteUint8(tlv.Flags)
	return nil
}

func (tlv *NodeFlagBits) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("type", tlv.Type().String())
	enc.AddBool("overload", IsBitSet(tlv.Flags, NodeFlagOverload))
	enc.AddBool("attached", IsBitSet(tlv.Flags, NodeFlagAttached))
	enc.AddBool("external", IsBitSet(tlv.Flags, NodeFlagExternal))
	enc.AddBool("abr", IsBitSet(tlv.Flags, NodeFlagABR))
	enc.AddBool("router", IsBitSet(tlv.Flags, NodeFlagRouter))
	enc.AddBool("v6", IsBitSet(tlv.Flags, NodeFlagV6))
	return nil
}

type NodeName struct {
	Name string
}

func (tlv *NodeName) Type() SubTLVType    { return SubTLVNodeName }
func (tlv *NodeName) Len() int            { return tlvFraming.wireLen(tlv) }
func (tlv *NodeName) elementCode() uint16 { return uint16(SubTLVNodeName) }
func (tlv *NodeName) payloadLen() int     { return len(tlv.Name) }

func (tlv *NodeName) decodePayload(c *Cursor, _ *optParams) error {
	b, _ := c.ReadBytes(c.Remaining())
	if !utf8.Valid(b) {
		return fmt.Errorf("node name is not valid UTF-8")
	}
	tlv.Name = string(b)
	return nil
}

func (tlv *NodeName) encodePayload(c *Cursor, _ *optParams) error {
	c.WriteBytes([]byte(tlv.Name))
	return nil
}

func (tlv *NodeName) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("type", tlv.Type().String())
	enc.AddString("nodeName", tlv.Name)
	return nil
}

// ISISAreaIdentifier holds a 1 to 13 byte IS-IS area address.
type ISISAreaIdentifier struct {
	AreaID []byte
}

func (tlv *ISISAreaIdentifier) Type() SubTLVType    { return SubTLVISISAreaIdentifier }
func (tlv *ISISAreaIdentifier) Len() int            { return tlvFraming.wireLen(tlv) }
func (tlv *ISISAreaIdentifier) elementCode() uint16 { return uint16(SubTLVISISAreaIdentifier) }
func (tlv *ISISAreaIdentifier) payloadLen() int     { return len(tlv.AreaID) }

func (tlv *ISISAreaIdentifier) decodePayload(c *Cursor, _ *optParams) error {
	if n := c.Remaining(); n < 1 || n > 13 {
		return fmt.Errorf("invalid IS-IS area identifier length %d", n)
	}
	b, _ := c.ReadBytes(c.Remaining())
	tlv.AreaID = bytes.Clone(b)
	return nil
}

func (tlv *ISISAreaIdentifier) encodePayload(c *Cursor, _ *optParams) error {
	if n := len(tlv.AreaID); n < 1 || n > 13 {
		return fmt.Errorf("invalid IS-IS area identifier length %d", n)
	}
	c.WriteBytes(tlv.AreaID)
	return nil
}

func (tlv *ISISAreaIdentifier) String() string {
	return hex.EncodeToString(tlv.AreaID)
}

func (tlv *ISISAreaIdentifier) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("type", tlv.Type().String())
	enc.AddString("areaID", tlv.String())
	return nil
}

// BandwidthSubTLV carries a bandwidth in bytes per second as an IEEE float32.
type BandwidthSubTLV struct {
	SubTLVType SubTLVType
	Bandwidth  float32
}

func (tlv *BandwidthSubTLV) Type() SubTLVType    { return tlv.SubTLVType }
func (tlv *BandwidthSubTLV) Len() int            { return tlvFraming.wireLen(tlv) }
func (tlv *BandwidthSubTLV) elementCode() uint16 { return uint16(tlv.SubTLVType) }
func (tlv *BandwidthSubTLV) payloadLen() int     { return 4 }

func (tlv *BandwidthSubTLV) decodePayload(c *Cursor, _ *optParams) error {
	bits, err := c.ReadUint32()
	if err != nil {
		return err
	}
	tlv.Bandwidth = math.Float32frombits(bits)
	return nil
}

func (tlv *BandwidthSubTLV) encodePayload(c *Cursor, _ *optParams) error {
	c.WriteUint32(math.Float32bits(tlv.Bandwidth))
	return nil
}

func (tlv *BandwidthSubTLV) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("type", tlv.SubTLVType.String())
	enc.AddFloat32("bandwidth", tlv.Bandwidth)
	return nil
}

// IGPMetric is 1 byte (IS-IS narrow), 2 bytes (OSPF) or 3 bytes (IS-IS wide).
// Width keeps the on-wire size.
type IGPMetric struct {
	Metric uint32
	Width  uint8
}

func NewIGPMetric(metric uint32, width uint8) *IGPMetric {
	return &IGPMetric{Metric: metric, Width: width}
}

func (tlv *IGPMetric) Type() SubTLVType    { return SubTLVIGPMetric }
func (tlv *IGPMetric) Len() int            { return tlvFraming.wireLen(tlv) }
func (tlv *IGPMetric) elementCode() uint16 { return uint16(SubTLVIGPMetric) }
func (tlv *IGPMetric) payloadLen() int     { return int(tlv.Width) }

func (tlv *IGPMetric) decodePayload(c *Cursor, _ *optParams) error {
	n := c.Remaining()
	if n < 1 || n > 3 {
		return fmt.Errorf("invalid IGP metric length %d", n)
	}
	b, _ := c.ReadBytes(n)
	tlv.Width = uint8(n)
	tlv.Metric = 0
	for _, v := range b {
		tlv.Metric = tlv.Metric<<8 | uint32(v)
	}
	return nil
}

func (tlv *IGPMetric) encodePayload(c *Cursor, _ *optParams) error {
	if tlv.Width < 1 || tlv.Width > 3 {
		return fmt.Errorf("invalid IGP metric width %d", tlv.Width)
	}
	if tlv.Metric >= 1<<(8*uint32(tlv.Width)) {
		return fmt.Errorf("IGP metric %d does not fit in %d bytes", tlv.Metric, tlv.Width)
	}
	for i := int(tlv.Width) - 1; i >= 0; i-- {
		c.WriteUint8(uint8(tlv.Metric >> (8 * i)))
	}
	return nil
}

func (tlv *IGPMetric) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("type", tlv.Type().String())
	enc.AddUint32("metric", tlv.Metric)
	enc.AddUint8("width", tlv.Width)
	return nil
}
