// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package cspf

import (
	"errors"
	"fmt"
	"net/netip"

	"github.com/nttcom/pcepobj/internal/pkg/table"
	"github.com/nttcom/pcepobj/pkg/packet/pcep"
)

type node struct {
	id         string
	calculated bool
	cost       uint64 // sum of 32-bit link metrics, cannot wrap
	prevNode   string
	prevLink   *table.LsLink
}

func newNode(id string, cost uint64) *node {
	return &node{
		id:   id,
		cost: cost,
	}
}

// Cspf returns the links of the shortest path from srcRouterID to dstRouterID
// inside AS as, using the given metric. The path is empty when src equals dst.
func Cspf(srcRouterID string, dstRouterID string, as uint32, metric table.MetricType, ted *table.LsTed) ([]*table.LsLink, error) {
	network, ok := ted.Nodes[as]
	if !ok {
		return nil, fmt.Errorf("AS %d not found in TED", as)
	}
	if _, ok := network[srcRouterID]; !ok {
		return nil, fmt.Errorf("source node %s not found in AS %d", srcRouterID, as)
	}
	if _, ok := network[dstRouterID]; !ok {
		return nil, fmt.Errorf("destination node %s not found in AS %d", dstRouterID, as)
	}
	// TODO: prune links by bandwidth and administrative group constraints
	return spf(srcRouterID, dstRouterID, metric, network)
}

func spf(srcRouterID string, dstRouterID string, metric table.MetricType, network map[string]*table.LsNode) ([]*table.LsLink, error) {
	calculatingNodes := map[string]*node{}
	calculatingNodes[srcRouterID] = newNode(srcRouterID, 0)

	for {
		// Selection of nodes for calculation
		calcNodeID, err := nextNode(calculatingNodes)
		if err != nil {
			return nil, fmt.Errorf("%s unreachable from %s: %w", dstRouterID, srcRouterID, err)
		}

		if calcNodeID == dstRouterID {
			// End of calculation of shortest path
			break
		}

		calcNode, ok := network[calcNodeID]
		if !ok {
			// Remote end of a link that was never advertised as a node
			continue
		}
		for _, link := range calcNode.Links {
			linkMetric, err := link.Metric(metric)
			if err != nil {
				return nil, fmt.Errorf("link %s -> %s: %w", calcNodeID, link.RemoteNode.RouterId, err)
			}

			cost := calculatingNodes[calcNodeID].cost + uint64(linkMetric)
			remote, exist := calculatingNodes[link.RemoteNode.RouterId]
			if !exist {
				remote = newNode(link.RemoteNode.RouterId, cost)
				calculatingNodes[remote.id] = remote
			} else if remote.calculated || cost >= remote.cost {
				continue
			}
			remote.cost = cost
			remote.prevNode = calcNodeID
			remote.prevLink = link
		}
	}

	// Walk back from the destination
	path := []*table.LsLink{}
	for pathNode := calculatingNodes[dstRouterID]; pathNode.id != srcRouterID; pathNode = calculatingNodes[pathNode.prevNode] {
		path = append([]*table.LsLink{pathNode.prevLink}, path...)
	}
	return path, nil
}

// nextNode marks and returns the uncalculated node with the lowest cost.
// Ties are broken on the router ID so the result does not depend on map order.
func nextNode(calculatingNodes map[string]*node) (nextNodeID string, err error) {
	for nodeID, node := range calculatingNodes {
		if node.calculated {
			continue
		}
		if nextNodeID == "" {
			nextNodeID = nodeID
			continue
		}
		next := calculatingNodes[nextNodeID]
		if node.cost < next.cost || (node.cost == next.cost && nodeID < nextNodeID) {
			nextNodeID = nodeID
		}
	}
	if nextNodeID == "" {
		return nextNodeID, errors.New("next node not found")
	}
	calculatingNodes[nextNodeID].calculated = true
	return
}

// Ero turns a path into an ERO of strict hops, one per link, each addressed
// by the neighbor interface address of the link.
func Ero(path []*table.LsLink) (*pcep.EroObject, error) {
	b := pcep.NewEroObjectBuilder()
	for _, link := range path {
		if !link.RemoteIP.IsValid() {
			return nil, fmt.Errorf("link %s -> %s has no neighbor address", link.LocalNode.RouterId, link.RemoteNode.RouterId)
		}
		addr := link.RemoteIP
		b.AddSubobject(pcep.NewIPPrefixSubobject(netip.PrefixFrom(addr, addr.BitLen()), false))
	}
	return b.Build()
}
