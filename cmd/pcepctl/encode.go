// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/nttcom/pcepobj/pkg/packet/pcep"
)

func newEncodeCmd() *cobra.Command {
	encodeCmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode objects described in a YAML document",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := cmd.Flags().GetString("file")
			if err != nil {
				return err
			}
			if file == "" {
				return errors.New("--file is required")
			}
			out, err := cmd.Flags().GetString("out")
			if err != nil {
				return err
			}

			f, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			data, err := encodeDocument(f)
			if err != nil {
				return err
			}
			if out != "" {
				return os.WriteFile(out, data, 0644)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(data))
			return err
		},
	}

	encodeCmd.Flags().String("file", "", "YAML document describing the objects")
	encodeCmd.Flags().String("out", "", "write raw bytes to this file instead of hex to stdout")
	return encodeCmd
}

type document struct {
	Objects []objectDoc `yaml:"objects"`
}

type objectDoc struct {
	ERO *eroDoc `yaml:"ero"`
	TE  *teDoc  `yaml:"te"`
}

type eroDoc struct {
	PFlag      *bool          `yaml:"pFlag"`
	IFlag      *bool          `yaml:"iFlag"`
	Subobjects []subobjectDoc `yaml:"subobjects"`
}

type subobjectDoc struct {
	Type     string `yaml:"type"` // ipv4, ipv6, as, path-key, sr, srv6
	Loose    bool   `yaml:"loose"`
	Prefix   string `yaml:"prefix"`
	ASN      uint16 `yaml:"asn"`
	PathKey  uint16 `yaml:"pathKey"`
	PCEID    string `yaml:"pceID"`
	SID      string `yaml:"sid"`
	Nai      string `yaml:"nai"`
	Behavior uint16 `yaml:"behavior"`
}

type teDoc struct {
	ObjectType string   `yaml:"objectType"` // node or link
	PFlag      *bool    `yaml:"pFlag"`
	IFlag      *bool    `yaml:"iFlag"`
	ProtocolID *uint8   `yaml:"protocolID"`
	SFlag      *bool    `yaml:"sFlag"`
	RFlag      *bool    `yaml:"rFlag"`
	TEID       *uint32  `yaml:"teID"`
	TLVs       []tlvDoc `yaml:"tlvs"`
}

type tlvDoc struct {
	Type       string      `yaml:"type"`
	Identifier uint64      `yaml:"identifier"`
	SubTLVs    []subTLVDoc `yaml:"subTLVs"`
}

type subTLVDoc struct {
	Type  string `yaml:"type"`
	Value string `yaml:"value"`
}

// encodeDocument builds every object of a YAML document and concatenates their encodings.
func encodeDocument(b []byte) ([]byte, error) {
	var doc document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}

	var c pcep.Cursor
	for i, od := range doc.Objects {
		obj, err := od.build()
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		n, err := obj.Write(&c, codecOpts...)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		cliLogger.Debug("encoded object", zap.Int("index", i), zap.Stringer("class", obj.Class()), zap.Int("length", n))
	}
	return c.Bytes(), nil
}

func (od objectDoc) build() (pcep.Object, error) {
	switch {
	case od.ERO != nil && od.TE != nil:
		return nil, errors.New("object sets both ero and te")
	case od.ERO != nil:
		return od.ERO.build()
	case od.TE != nil:
		return od.TE.build()
	default:
		return nil, errors.New("object sets neither ero nor te")
	}
}

func (d *eroDoc) build() (*pcep.EroObject, error) {
	b := pcep.NewEroObjectBuilder()
	if d.PFlag != nil {
		b.SetPFlag(*d.PFlag)
	}
	if d.IFlag != nil {
		b.SetIFlag(*d.IFlag)
	}
	for i, sd := range d.Subobjects {
		so, err := sd.build()
		if err != nil {
			return nil, fmt.Errorf("subobject %d: %w", i, err)
		}
		b.AddSubobject(so)
	}
	return b.Build()
}

func (sd subobjectDoc) build() (pcep.EroSubobject, error) {
	switch sd.Type {
	case "ipv4", "ipv6":
		prefix, err := netip.ParsePrefix(sd.Prefix)
		if err != nil {
			return nil, err
		}
		if prefix.Addr().Is4() != (sd.Type == "ipv4") {
			return nil, fmt.Errorf("prefix %s is not %s", prefix, sd.Type)
		}
		return pcep.NewIPPrefixSubobject(prefix, sd.Loose), nil
	case "as":
		return &pcep.ASNumberSubobject{LFlag: sd.Loose, ASNumber: sd.ASN}, nil
	case "path-key":
		pceID, err := netip.ParseAddr(sd.PCEID)
		if err != nil {
			return nil, err
		}
		return &pcep.PathKeySubobject{LFlag: sd.Loose, PathKey: sd.PathKey, PCEID: pceID}, nil
	case "sr":
		return sd.buildSR()
	case "srv6":
		return sd.buildSRv6()
	default:
		return nil, fmt.Errorf("unknown subobject type %q", sd.Type)
	}
}

func (sd subobjectDoc) buildSR() (*pcep.SREroSubobject, error) {
	so := &pcep.SREroSubobject{LFlag: sd.Loose, SubobjectType: pcep.SubobjectSR}
	if sd.SID == "" {
		so.SFlag = true
	} else {
		label, err := strconv.ParseUint(sd.SID, 10, 32)
		if err != nil || label >= 1<<20 {
			return nil, fmt.Errorf("invalid MPLS label %q", sd.SID)
		}
		so.MFlag = true
		so.SID = uint32(label) << 12
	}
	if sd.Nai == "" {
		so.FFlag = true
		so.NaiType = pcep.NT_ABSENT
	} else {
		nai, err := netip.ParseAddr(sd.Nai)
		if err != nil {
			return nil, err
		}
		so.Nai = nai
		so.NaiType = pcep.NT_IPV4_NODE
		if nai.Is6() {
			so.NaiType = pcep.NT_IPV6_NODE
		}
	}
	if so.SFlag && so.FFlag {
		return nil, errors.New("SR subobject needs a sid or a nai")
	}
	return so, nil
}

func (sd subobjectDoc) buildSRv6() (*pcep.SRv6EroSubobject, error) {
	so := &pcep.SRv6EroSubobject{LFlag: sd.Loose, Behavior: sd.Behavior}
	if sd.SID == "" {
		so.SFlag = true
	} else {
		sid, err := netip.ParseAddr(sd.SID)
		if err != nil || !sid.Is6() {
			return nil, fmt.Errorf("invalid SRv6 SID %q", sd.SID)
		}
		so.SID = sid
	}
	if sd.Nai == "" {
		so.FFlag = true
		so.NaiType = pcep.NT_ABSENT
	} else {
		nai, err := netip.ParseAddr(sd.Nai)
		if err != nil || !nai.Is6() {
			return nil, fmt.Errorf("invalid SRv6 NAI %q", sd.Nai)
		}
		so.Nai = nai
		so.NaiType = pcep.NT_IPV6_NODE
	}
	if so.SFlag && so.FFlag {
		return nil, errors.New("SRv6 subobject needs a sid or a nai")
	}
	return so, nil
}

func (d *teDoc) build() (*pcep.TEObject, error) {
	b := pcep.NewTEObjectBuilder()
	switch d.ObjectType {
	case "", "node":
		b.SetObjectType(pcep.ObjectTypeTENode)
	case "link":
		b.SetObjectType(pcep.ObjectTypeTELink)
	default:
		return nil, fmt.Errorf("unknown TE object type %q", d.ObjectType)
	}
	if d.PFlag != nil {
		b.SetPFlag(*d.PFlag)
	}
	if d.IFlag != nil {
		b.SetIFlag(*d.IFlag)
	}
	if d.ProtocolID != nil {
		b.SetProtocolID(pcep.ProtocolID(*d.ProtocolID))
	}
	if d.SFlag != nil {
		b.SetSFlag(*d.SFlag)
	}
	if d.RFlag != nil {
		b.SetRFlag(*d.RFlag)
	}
	if d.TEID != nil {
		b.SetTEID(*d.TEID)
	}
	for i, td := range d.TLVs {
		tlv, err := td.build()
		if err != nil {
			return nil, fmt.Errorf("tlv %d: %w", i, err)
		}
		b.AddTLV(tlv)
	}
	return b.Build()
}

func (td tlvDoc) build() (pcep.TETLV, error) {
	if td.Type == "routing-universe" {
		return &pcep.RoutingUniverse{Identifier: td.Identifier}, nil
	}
	subTLVs := make([]pcep.SubTLV, 0, len(td.SubTLVs))
	for i, sd := range td.SubTLVs {
		s, err := sd.build()
		if err != nil {
			return nil, fmt.Errorf("sub-TLV %d: %w", i, err)
		}
		subTLVs = append(subTLVs, s)
	}
	switch td.Type {
	case "local-node":
		return pcep.NewLocalTENodeDescriptors(subTLVs...), nil
	case "remote-node":
		return pcep.NewRemoteTENodeDescriptors(subTLVs...), nil
	case "link-descriptors":
		return pcep.NewTELinkDescriptors(subTLVs...), nil
	case "node-attributes":
		return pcep.NewTENodeAttributes(subTLVs...), nil
	case "link-attributes":
		return pcep.NewTELinkAttributes(subTLVs...), nil
	default:
		return nil, fmt.Errorf("unknown TLV type %q", td.Type)
	}
}

var uint32SubTLVs = map[string]pcep.SubTLVType{
	"as":          pcep.SubTLVAutonomousSystem,
	"bgp-ls-id":   pcep.SubTLVBGPLSIdentifier,
	"ospf-area":   pcep.SubTLVOSPFAreaID,
	"admin-group": pcep.SubTLVAdministrativeGroup,
	"te-metric":   pcep.SubTLVTEDefaultMetric,
}

var addressSubTLVs = map[string]pcep.SubTLVType{
	"ipv4-interface":        pcep.SubTLVIPv4InterfaceAddress,
	"ipv4-neighbor":         pcep.SubTLVIPv4NeighborAddress,
	"ipv6-interface":        pcep.SubTLVIPv6InterfaceAddress,
	"ipv6-neighbor":         pcep.SubTLVIPv6NeighborAddress,
	"ipv4-router-id":        pcep.SubTLVIPv4LocalRouterID,
	"ipv6-router-id":        pcep.SubTLVIPv6LocalRouterID,
	"ipv4-remote-router-id": pcep.SubTLVIPv4RemoteRouterID,
	"ipv6-remote-router-id": pcep.SubTLVIPv6RemoteRouterID,
}

var bandwidthSubTLVs = map[string]pcep.SubTLVType{
	"max-bandwidth":            pcep.SubTLVMaxLinkBandwidth,
	"max-reservable-bandwidth": pcep.SubTLVMaxReservableBandwidth,
}

func (sd subTLVDoc) build() (pcep.SubTLV, error) {
	if t, ok := uint32SubTLVs[sd.Type]; ok {
		v, err := strconv.ParseUint(sd.Value, 0, 32)
		if err != nil {
			return nil, err
		}
		return &pcep.Uint32SubTLV{SubTLVType: t, Value: uint32(v)}, nil
	}
	if t, ok := addressSubTLVs[sd.Type]; ok {
		addr, err := netip.ParseAddr(sd.Value)
		if err != nil {
			return nil, err
		}
		return &pcep.AddressSubTLV{SubTLVType: t, Address: addr}, nil
	}
	if t, ok := bandwidthSubTLVs[sd.Type]; ok {
		v, err := strconv.ParseFloat(sd.Value, 32)
		if err != nil {
			return nil, err
		}
		return &pcep.BandwidthSubTLV{SubTLVType: t, Bandwidth: float32(v)}, nil
	}

	switch sd.Type {
	case "igp-router-id":
		return pcep.ParseIGPRouterID(sd.Value)
	case "link-id":
		local, remote, ok := strings.Cut(sd.Value, ":")
		if !ok {
			return nil, fmt.Errorf("link-id %q is not local:remote", sd.Value)
		}
		l, err := strconv.ParseUint(local, 0, 32)
		if err != nil {
			return nil, err
		}
		r, err := strconv.ParseUint(remote, 0, 32)
		if err != nil {
			return nil, err
		}
		return &pcep.LinkIdentifiers{LocalID: uint32(l), RemoteID: uint32(r)}, nil
	case "node-flags":
		v, err := strconv.ParseUint(sd.Value, 0, 8)
		if err != nil {
			return nil, err
		}
		return &pcep.NodeFlagBits{Flags: uint8(v)}, nil
	case "node-name":
		return &pcep.NodeName{Name: sd.Value}, nil
	case "isis-area":
		area, err := hex.DecodeString(sd.Value)
		if err != nil {
			return nil, err
		}
		return &pcep.ISISAreaIdentifier{AreaID: area}, nil
	case "igp-metric":
		value, width, found := strings.Cut(sd.Value, "/")
		m, err := strconv.ParseUint(value, 0, 32)
		if err != nil {
			return nil, err
		}
		w := uint64(3)
		if found {
			if w, err = strconv.ParseUint(width, 10, 8); err != nil {
				return nil, err
			}
		}
		return pcep.NewIGPMetric(uint32(m), uint8(w)), nil
	default:
		return nil, fmt.Errorf("unknown sub-TLV type %q", sd.Type)
	}
}
