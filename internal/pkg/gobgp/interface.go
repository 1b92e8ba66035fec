// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package gobgp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/netip"

	api "github.com/osrg/gobgp/v3/api"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/anypb"

	"github.com/nttcom/pcepobj/pkg/packet/pcep"
)

type GobgpOptions struct {
	GobgpAddr string
	GobgpPort string
}

// GetTEObjects reads the BGP-LS RIB of a GoBGP daemon and converts the node
// and link NLRIs into TE objects. Prefix and SRv6 SID NLRIs have no TE object
// representation and are skipped.
func GetTEObjects(ctx context.Context, opts GobgpOptions, logger *zap.Logger) ([]*pcep.TEObject, error) {
	gobgpAddress := opts.GobgpAddr + ":" + opts.GobgpPort

	// Get connection
	cc, err := grpc.NewClient(
		gobgpAddress,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC client: %v", err)
	}
	defer func() {
		if err := cc.Close(); err != nil {
			logger.Warn("failed to close gRPC client connection", zap.Error(err))
		}
	}()

	// Create gRPC client
	client := api.NewGobgpApiClient(cc)

	req := &api.ListPathRequest{
		TableType: api.TableType_GLOBAL,
		Family: &api.Family{
			Afi:  api.Family_AFI_LS,
			Safi: api.Family_SAFI_LS,
		},
		Name:     "",
		SortType: api.ListPathRequest_PREFIX,
	}

	stream, err := client.ListPath(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve paths: %v", err)
	}

	var objs []*pcep.TEObject
	for {
		r, err := stream.Recv()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("error receiving stream data: %v", err)
		}
		converted, err := ConvertToTEObjects(r.Destination)
		if err != nil {
			return nil, fmt.Errorf("failed to convert path to TE object: %v", err)
		}
		logger.Debug("received BGP-LS destination", zap.String("prefix", r.Destination.GetPrefix()), zap.Int("teObjects", len(converted)))

		objs = append(objs, converted...)
	}
	return objs, nil
}

// ConvertToTEObjects converts one BGP-LS destination. A withdrawn path yields
// an object with the R flag set.
func ConvertToTEObjects(dst *api.Destination) ([]*pcep.TEObject, error) {
	if len(dst.GetPaths()) != 1 {
		return nil, errors.New("invalid path length: expected 1 path")
	}

	path := dst.GetPaths()[0]
	nlri, err := path.GetNlri().UnmarshalNew()
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal NLRI: %v", err)
	}

	lsAddrPrefix, ok := nlri.(*api.LsAddrPrefix)
	if !ok {
		return nil, errors.New("invalid NLRI type")
	}
	linkStateNlri, err := lsAddrPrefix.GetNlri().UnmarshalNew()
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal LS Address Prefix: %v", err)
	}

	b := pcep.NewTEObjectBuilder().
		SetProtocolID(pcep.ProtocolID(lsAddrPrefix.GetProtocolId())).
		SetRFlag(path.GetIsWithdraw()).
		AddTLV(&pcep.RoutingUniverse{Identifier: lsAddrPrefix.GetIdentifier()})

	switch linkStateNlri := linkStateNlri.(type) {
	case *api.LsNodeNLRI:
		if err := buildTENode(b, linkStateNlri, path.GetPattrs()); err != nil {
			return nil, fmt.Errorf("failed to process LS Node NLRI: %v", err)
		}
	case *api.LsLinkNLRI:
		if err := buildTELink(b, linkStateNlri, path.GetPattrs(), lsAddrPrefix.GetProtocolId()); err != nil {
			return nil, fmt.Errorf("failed to process LS Link NLRI: %v", err)
		}
	case *api.LsPrefixV4NLRI, *api.LsPrefixV6NLRI, *api.LsSrv6SIDNLRI:
		return nil, nil
	default:
		return nil, errors.New("invalid LS Link State NLRI type")
	}

	obj, err := b.Build()
	if err != nil {
		return nil, err
	}
	return []*pcep.TEObject{obj}, nil
}

func nodeDescriptorSubTLVs(desc *api.LsNodeDescriptor) ([]pcep.SubTLV, error) {
	var subTLVs []pcep.SubTLV
	if asn := desc.GetAsn(); asn != 0 {
		subTLVs = append(subTLVs, &pcep.Uint32SubTLV{SubTLVType: pcep.SubTLVAutonomousSystem, Value: asn})
	}
	if id := desc.GetBgpLsId(); id != 0 {
		subTLVs = append(subTLVs, &pcep.Uint32SubTLV{SubTLVType: pcep.SubTLVBGPLSIdentifier, Value: id})
	}
	if area := desc.GetOspfAreaId(); area != 0 {
		subTLVs = append(subTLVs, &pcep.Uint32SubTLV{SubTLVType: pcep.SubTLVOSPFAreaID, Value: area})
	}
	routerID, err := pcep.ParseIGPRouterID(desc.GetIgpRouterId())
	if err != nil {
		return nil, err
	}
	return append(subTLVs, routerID), nil
}

// appendAddress adds an address sub-TLV when s is set.
func appendAddress(subTLVs []pcep.SubTLV, t pcep.SubTLVType, s string) ([]pcep.SubTLV, error) {
	if s == "" {
		return subTLVs, nil
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v", t, err)
	}
	return append(subTLVs, &pcep.AddressSubTLV{SubTLVType: t, Address: addr}), nil
}

// lsAttribute returns the BGP-LS attribute of a path, or nil.
func lsAttribute(pathAttrs []*anypb.Any) (*api.LsAttribute, error) {
	for _, pathAttr := range pathAttrs {
		typedPathAttr, err := pathAttr.UnmarshalNew()
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal path attribute: %v", err)
		}
		if bgplsAttr, ok := typedPathAttr.(*api.LsAttribute); ok {
			return bgplsAttr, nil
		}
	}
	return nil, nil
}

func buildTENode(b *pcep.TEObjectBuilder, typedLinkStateNlri *api.LsNodeNLRI, pathAttrs []*anypb.Any) error {
	local, err := nodeDescriptorSubTLVs(typedLinkStateNlri.GetLocalNode())
	if err != nil {
		return err
	}
	b.SetObjectType(pcep.ObjectTypeTENode).AddTLV(pcep.NewLocalTENodeDescriptors(local...))

	bgplsAttr, err := lsAttribute(pathAttrs)
	if err != nil || bgplsAttr == nil {
		return err
	}
	node := bgplsAttr.GetNode()

	var attrs []pcep.SubTLV
	if flags := nodeFlags(node.GetFlags()); flags != 0 {
		attrs = append(attrs, &pcep.NodeFlagBits{Flags: flags})
	}
	if name := node.GetName(); name != "" {
		attrs = append(attrs, &pcep.NodeName{Name: name})
	}
	if area := node.GetIsisArea(); len(area) > 0 {
		attrs = append(attrs, &pcep.ISISAreaIdentifier{AreaID: area})
	}
	if attrs, err = appendAddress(attrs, pcep.SubTLVIPv4LocalRouterID, node.GetLocalRouterId()); err != nil {
		return err
	}
	if attrs, err = appendAddress(attrs, pcep.SubTLVIPv6LocalRouterID, node.GetLocalRouterIdV6()); err != nil {
		return err
	}
	if len(attrs) > 0 {
		b.AddTLV(pcep.NewTENodeAttributes(attrs...))
	}
	return nil
}

func nodeFlags(f *api.LsNodeFlags) uint8 {
	var flags uint8
	flags = pcep.SetBit(flags, pcep.NodeFlagOverload, f.GetOverload())
	flags = pcep.SetBit(flags, pcep.NodeFlagAttached, f.GetAttached())
	flags = pcep.SetBit(flags, pcep.NodeFlagExternal, f.GetExternal())
	flags = pcep.SetBit(flags, pcep.NodeFlagABR, f.GetAbr())
	flags = pcep.SetBit(flags, pcep.NodeFlagRouter, f.GetRouter())
	return flags
}

// igpMetricWidth is the on-wire size of the IGP metric for the source protocol (RFC7752 3.3.2.4).
func igpMetricWidth(protocolID api.LsProtocolID) uint8 {
	switch pcep.ProtocolID(protocolID) {
	case pcep.ProtocolOSPFv2, pcep.ProtocolOSPFv3:
		return 2
	default:
		return 3
	}
}

func buildTELink(b *pcep.TEObjectBuilder, typedLinkStateNlri *api.LsLinkNLRI, pathAttrs []*anypb.Any, protocolID api.LsProtocolID) error {
	local, err := nodeDescriptorSubTLVs(typedLinkStateNlri.GetLocalNode())
	if err != nil {
		return fmt.Errorf("local node: %v", err)
	}
	remote, err := nodeDescriptorSubTLVs(typedLinkStateNlri.GetRemoteNode())
	if err != nil {
		return fmt.Errorf("remote node: %v", err)
	}
	b.SetObjectType(pcep.ObjectTypeTELink).
		AddTLV(pcep.NewLocalTENodeDescriptors(local...)).
		AddTLV(pcep.NewRemoteTENodeDescriptors(remote...))

	linkDesc := typedLinkStateNlri.GetLinkDescriptor()
	var descs []pcep.SubTLV
	if linkDesc.GetLinkLocalId() != 0 || linkDesc.GetLinkRemoteId() != 0 {
		descs = append(descs, &pcep.LinkIdentifiers{LocalID: linkDesc.GetLinkLocalId(), RemoteID: linkDesc.GetLinkRemoteId()})
	}
	for _, a := range []struct {
		t pcep.SubTLVType
		s string
	}{
		{pcep.SubTLVIPv4InterfaceAddress, linkDesc.GetInterfaceAddrIpv4()},
		{pcep.SubTLVIPv4NeighborAddress, linkDesc.GetNeighborAddrIpv4()},
		{pcep.SubTLVIPv6InterfaceAddress, linkDesc.GetInterfaceAddrIpv6()},
		{pcep.SubTLVIPv6NeighborAddress, linkDesc.GetNeighborAddrIpv6()},
	} {
		if descs, err = appendAddress(descs, a.t, a.s); err != nil {
			return err
		}
	}
	if len(descs) > 0 {
		b.AddTLV(pcep.NewTELinkDescriptors(descs...))
	}

	bgplsAttr, err := lsAttribute(pathAttrs)
	if err != nil || bgplsAttr == nil {
		return err
	}
	link := bgplsAttr.GetLink()

	var attrs []pcep.SubTLV
	for _, a := range []struct {
		t pcep.SubTLVType
		s string
	}{
		{pcep.SubTLVIPv4LocalRouterID, link.GetLocalRouterId()},
		{pcep.SubTLVIPv6LocalRouterID, link.GetLocalRouterIdV6()},
		{pcep.SubTLVIPv4RemoteRouterID, link.GetRemoteRouterId()},
		{pcep.SubTLVIPv6RemoteRouterID, link.GetRemoteRouterIdV6()},
	} {
		if attrs, err = appendAddress(attrs, a.t, a.s); err != nil {
			return err
		}
	}
	if group := link.GetAdminGroup(); group != 0 {
		attrs = append(attrs, &pcep.Uint32SubTLV{SubTLVType: pcep.SubTLVAdministrativeGroup, Value: group})
	}
	if bw := link.GetBandwidth(); bw != 0 {
		attrs = append(attrs, &pcep.BandwidthSubTLV{SubTLVType: pcep.SubTLVMaxLinkBandwidth, Bandwidth: bw})
	}
	if bw := link.GetReservableBandwidth(); bw != 0 {
		attrs = append(attrs, &pcep.BandwidthSubTLV{SubTLVType: pcep.SubTLVMaxReservableBandwidth, Bandwidth: bw})
	}
	if teMetric := link.GetDefaultTeMetric(); teMetric != 0 {
		attrs = append(attrs, &pcep.Uint32SubTLV{SubTLVType: pcep.SubTLVTEDefaultMetric, Value: teMetric})
	}
	attrs = append(attrs, pcep.NewIGPMetric(link.GetIgpMetric(), igpMetricWidth(protocolID)))
	b.AddTLV(pcep.NewTELinkAttributes(attrs...))
	return nil
}
