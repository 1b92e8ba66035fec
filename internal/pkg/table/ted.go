// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package table

import (
	"fmt"
	"io"
	"net/netip"
	"slices"
)

type LsTed struct {
	Id    int
	Nodes map[uint32]map[string]*LsNode // { ASN1: {"NodeID1": node1, "NodeID2": node2}, ASN2: {"NodeID3": node3, "NodeID4": node4}}
}

func NewLsTed(id int) *LsTed {
	return &LsTed{
		Id:    id,
		Nodes: make(map[uint32]map[string]*LsNode),
	}
}

func (ted *LsTed) Update(tedElems []TedElem) {
	for _, tedElem := range tedElems {
		tedElem.UpdateTed(ted)
	}
}

// Remove withdraws elements, as reported by TE objects with the R flag set.
func (ted *LsTed) Remove(tedElems []TedElem) {
	for _, tedElem := range tedElems {
		tedElem.RemoveFromTed(ted)
	}
}

// node returns the stored node for asn/routerID, creating it when absent.
func (ted *LsTed) node(asn uint32, routerID string) *LsNode {
	if _, ok := ted.Nodes[asn]; !ok {
		ted.Nodes[asn] = make(map[string]*LsNode)
	}
	n, ok := ted.Nodes[asn][routerID]
	if !ok {
		n = NewLsNode(asn, routerID)
		ted.Nodes[asn][routerID] = n
	}
	return n
}

func (ted *LsTed) Print(w io.Writer) {
	asns := make([]uint32, 0, len(ted.Nodes))
	for asn := range ted.Nodes {
		asns = append(asns, asn)
	}
	slices.Sort(asns)

	nodeCnt := 1
	for _, asn := range asns {
		nodes := ted.Nodes[asn]
		ids := make([]string, 0, len(nodes))
		for id := range nodes {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		for _, nodeId := range ids {
			node := nodes[nodeId]
			fmt.Fprintf(w, "Node: %d\n", nodeCnt)
			fmt.Fprintf(w, "  %s\n", nodeId)
			fmt.Fprintf(w, "  ASN: %d\n", node.Asn)
			fmt.Fprintf(w, "  Hostname: %s\n", node.Hostname)
			fmt.Fprintf(w, "  ISIS Area ID: %s\n", node.IsisAreaId)
			fmt.Fprintf(w, "  Links:\n")
			for _, link := range node.Links {
				fmt.Fprintf(w, "    Local: %s Remote: %s\n", link.LocalIP.String(), link.RemoteIP.String())
				fmt.Fprintf(w, "      RemoteNode: %s\n", link.RemoteNode.RouterId)
				fmt.Fprintf(w, "      Metrics:\n")
				for _, metric := range link.Metrics {
					fmt.Fprintf(w, "        %s: %d\n", metric.Type.String(), metric.Value)
				}
			}
			nodeCnt++
			fmt.Fprintf(w, "\n")
		}
	}
}

type TedElem interface {
	UpdateTed(ted *LsTed)
	RemoveFromTed(ted *LsTed)
}

type LsNode struct {
	Asn        uint32 // primary key, in Local TE Node Descriptors
	RouterId   string // primary key, in Local TE Node Descriptors
	IsisAreaId string // in TE Node Attributes
	Hostname   string // in TE Node Attributes
	Links      []*LsLink
}

func NewLsNode(asn uint32, nodeId string) *LsNode {
	return &LsNode{
		Asn:      asn,
		RouterId: nodeId,
	}
}

func (n *LsNode) UpdateTed(ted *LsTed) {
	node := ted.node(n.Asn, n.RouterId)
	if n.Hostname != "" {
		node.Hostname = n.Hostname
	}
	if n.IsisAreaId != "" {
		node.IsisAreaId = n.IsisAreaId
	}
}

// RemoveFromTed drops the node and every link pointing at it.
func (n *LsNode) RemoveFromTed(ted *LsTed) {
	nodes, ok := ted.Nodes[n.Asn]
	if !ok {
		return
	}
	removed, ok := nodes[n.RouterId]
	if !ok {
		return
	}
	delete(nodes, n.RouterId)
	if len(nodes) == 0 {
		delete(ted.Nodes, n.Asn)
	}
	for _, as := range ted.Nodes {
		for _, node := range as {
			node.Links = slices.DeleteFunc(node.Links, func(l *LsLink) bool {
				return l.RemoteNode == removed
			})
		}
	}
}

func (n *LsNode) AddLink(link *LsLink) {
	for i, l := range n.Links {
		if l.sameAs(link) {
			n.Links[i] = link
			return
		}
	}
	n.Links = append(n.Links, link)
}

type LsLink struct {
	LocalNode  *LsNode    // Primary key, in Local TE Node Descriptors
	RemoteNode *LsNode    // Primary key, in Remote TE Node Descriptors
	LocalIP    netip.Addr // In TE Link Descriptors
	RemoteIP   netip.Addr // In TE Link Descriptors
	Metrics    []*Metric  // In TE Link Attributes
}

func NewLsLink(localNode *LsNode, remoteNode *LsNode) *LsLink {
	return &LsLink{
		LocalNode:  localNode,
		RemoteNode: remoteNode,
	}
}

func (l *LsLink) sameAs(other *LsLink) bool {
	return l.RemoteNode.Asn == other.RemoteNode.Asn &&
		l.RemoteNode.RouterId == other.RemoteNode.RouterId &&
		l.LocalIP == other.LocalIP && l.RemoteIP == other.RemoteIP
}

func (l *LsLink) Metric(metricType MetricType) (uint32, error) {
	for _, metric := range l.Metrics {
		if metric.Type == metricType {
			return metric.Value, nil
		}
	}

	return 0, fmt.Errorf("metric %s not defined", metricType)
}

func (l *LsLink) UpdateTed(ted *LsTed) {
	l.LocalNode = ted.node(l.LocalNode.Asn, l.LocalNode.RouterId)
	l.RemoteNode = ted.node(l.RemoteNode.Asn, l.RemoteNode.RouterId)
	l.LocalNode.AddLink(l)
}

func (l *LsLink) RemoveFromTed(ted *LsTed) {
	local, ok := ted.Nodes[l.LocalNode.Asn][l.LocalNode.RouterId]
	if !ok {
		return
	}
	local.Links = slices.DeleteFunc(local.Links, l.sameAs)
}

type Metric struct {
	Type  MetricType
	Value uint32
}

func NewMetric(metricType MetricType, value uint32) *Metric {
	return &Metric{
		Type:  metricType,
		Value: value,
	}
}

type MetricType int

const (
	IGP_METRIC MetricType = iota
	TE_METRIC
	DELAY_METRIC
	HOPCOUNT_METRIC
)

func (m MetricType) String() string {
	switch m {
	case IGP_METRIC:
		return "IGP"
	case TE_METRIC:
		return "TE"
	case DELAY_METRIC:
		return "DELAY"
	case HOPCOUNT_METRIC:
		return "HOPCOUNT"
	default:
		return "Unknown"
	}
}
