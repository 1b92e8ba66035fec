// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package pcep

import (
	"errors"
	"fmt"

	"github.com/nttcom/pcepobj/internal/pkg/table"
)

// TedElems converts the object into TED elements: an LsNode for a node object
// and an LsLink for a link object. Whether they are added or withdrawn is up to
// the caller, see RFlag.
func (o *TEObject) TedElems() ([]table.TedElem, error) {
	var (
		local, remote *table.LsNode
		linkDescs     *TELinkDescriptors
		nodeAttrs     *TENodeAttributes
		linkAttrs     *TELinkAttributes
		err           error
	)
	for _, tlv := range o.tlvs {
		switch v := tlv.(type) {
		case *LocalTENodeDescriptors:
			if local, err = lsNodeFromDescriptors(v.SubTLVs); err != nil {
				return nil, fmt.Errorf("local node: %w", err)
			}
		case *RemoteTENodeDescriptors:
			if remote, err = lsNodeFromDescriptors(v.SubTLVs); err != nil {
				return nil, fmt.Errorf("remote node: %w", err)
			}
		case *TELinkDescriptors:
			linkDescs = v
		case *TENodeAttributes:
			nodeAttrs = v
		case *TELinkAttributes:
			linkAttrs = v
		}
	}
	if local == nil {
		return nil, errors.New("TE object has no local node descriptors")
	}

	if o.objectType == ObjectTypeTENode {
		if nodeAttrs != nil {
			applyNodeAttributes(local, nodeAttrs.SubTLVs)
		}
		return []table.TedElem{local}, nil
	}

	if remote == nil {
		return nil, errors.New("TE link object has no remote node descriptors")
	}
	link := table.NewLsLink(local, remote)
	if linkDescs != nil {
		applyLinkDescriptors(link, linkDescs.SubTLVs)
	}
	if linkAttrs != nil {
		applyLinkAttributes(link, linkAttrs.SubTLVs)
	}
	return []table.TedElem{link}, nil
}

func lsNodeFromDescriptors(subTLVs []SubTLV) (*table.LsNode, error) {
	var (
		asn      uint32
		routerID string
	)
	for _, s := range subTLVs {
		switch v := s.(type) {
		case *Uint32SubTLV:
			if v.SubTLVType == SubTLVAutonomousSystem {
				asn = v.Value
			}
		case *IGPRouterID:
			routerID = v.String()
		}
	}
	if routerID == "" {
		return nil, errors.New("missing IGP Router-ID")
	}
	return table.NewLsNode(asn, routerID), nil
}

func applyNodeAttributes(node *table.LsNode, subTLVs []SubTLV) {
	for _, s := range subTLVs {
		switch v := s.(type) {
		case *NodeName:
			node.Hostname = v.Name
		case *ISISAreaIdentifier:
			node.IsisAreaId = v.String()
		}
	}
}

func applyLinkDescriptors(link *table.LsLink, subTLVs []SubTLV) {
	for _, s := range subTLVs {
		v, ok := s.(*AddressSubTLV)
		if !ok {
			continue
		}
		switch v.SubTLVType {
		case SubTLVIPv4InterfaceAddress, SubTLVIPv6InterfaceAddress:
			link.LocalIP = v.Address
		case SubTLVIPv4NeighborAddress, SubTLVIPv6NeighborAddress:
			link.RemoteIP = v.Address
		}
	}
}

func applyLinkAttributes(link *table.LsLink, subTLVs []SubTLV) {
	for _, s := range subTLVs {
		switch v := s.(type) {
		case *IGPMetric:
			link.Metrics = append(link.Metrics, table.NewMetric(table.IGP_METRIC, v.Metric))
		case *Uint32SubTLV:
			if v.SubTLVType == SubTLVTEDefaultMetric {
				link.Metrics = append(link.Metrics, table.NewMetric(table.TE_METRIC, v.Value))
			}
		}
	}
}
