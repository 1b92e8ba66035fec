// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package pcep

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nttcom/pcepobj/internal/pkg/table"
)

func nodeDescriptors(asn uint32, routerID []byte) []SubTLV {
	return []SubTLV{
		&Uint32SubTLV{SubTLVType: SubTLVAutonomousSystem, Value: asn},
		&IGPRouterID{RouterID: routerID},
	}
}

func TestTEObject_TedElems(t *testing.T) {
	r1 := []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x01}
	r2 := []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x02}

	node, err := NewTEObjectBuilder().
		AddTLV(NewLocalTENodeDescriptors(nodeDescriptors(65000, r1)...)).
		AddTLV(NewTENodeAttributes(
			&NodeName{Name: "r1"},
			&ISISAreaIdentifier{AreaID: []byte{0x49, 0x00, 0x01}},
		)).
		Build()
	require.NoError(t, err)

	link, err := NewTEObjectBuilder().
		SetObjectType(ObjectTypeTELink).
		AddTLV(NewLocalTENodeDescriptors(nodeDescriptors(65000, r1)...)).
		AddTLV(NewRemoteTENodeDescriptors(nodeDescriptors(65000, r2)...)).
		AddTLV(NewTELinkDescriptors(
			&AddressSubTLV{SubTLVType: SubTLVIPv4InterfaceAddress, Address: netip.MustParseAddr("10.0.0.1")},
			&AddressSubTLV{SubTLVType: SubTLVIPv4NeighborAddress, Address: netip.MustParseAddr("10.0.0.2")},
		)).
		AddTLV(NewTELinkAttributes(
			NewIGPMetric(10, 3),
			&Uint32SubTLV{SubTLVType: SubTLVTEDefaultMetric, Value: 100},
		)).
		Build()
	require.NoError(t, err)

	t.Run("node", func(t *testing.T) {
		elems, err := node.TedElems()
		require.NoError(t, err)
		require.Len(t, elems, 1)
		n, ok := elems[0].(*table.LsNode)
		require.True(t, ok)
		assert.Equal(t, uint32(65000), n.Asn)
		assert.Equal(t, "0000.0000.0001", n.RouterId)
		assert.Equal(t, "r1", n.Hostname)
		assert.Equal(t, "490001", n.IsisAreaId)
	})

	t.Run("link", func(t *testing.T) {
		elems, err := link.TedElems()
		require.NoError(t, err)
		require.Len(t, elems, 1)
		l, ok := elems[0].(*table.LsLink)
		require.True(t, ok)
		assert.Equal(t, "0000.0000.0001", l.LocalNode.RouterId)
		assert.Equal(t, "0000.0000.0002", l.RemoteNode.RouterId)
		assert.Equal(t, netip.MustParseAddr("10.0.0.1"), l.LocalIP)
		assert.Equal(t, netip.MustParseAddr("10.0.0.2"), l.RemoteIP)

		igp, err := l.Metric(table.IGP_METRIC)
		require.NoError(t, err)
		assert.Equal(t, uint32(10), igp)
		te, err := l.Metric(table.TE_METRIC)
		require.NoError(t, err)
		assert.Equal(t, uint32(100), te)
	})

	t.Run("decoded objects feed the TED", func(t *testing.T) {
		var c Cursor
		for _, o := range []*TEObject{node, link} {
			_, err := o.Write(&c)
			require.NoError(t, err)
		}
		objs, err := DecodeObjects(c.Bytes())
		require.NoError(t, err)

		ted := table.NewLsTed(1)
		for _, obj := range objs {
			elems, err := obj.(*TEObject).TedElems()
			require.NoError(t, err)
			ted.Update(elems)
		}
		require.Len(t, ted.Nodes[65000], 2)
		r1Node := ted.Nodes[65000]["0000.0000.0001"]
		assert.Equal(t, "r1", r1Node.Hostname)
		require.Len(t, r1Node.Links, 1)
		assert.Same(t, ted.Nodes[65000]["0000.0000.0002"], r1Node.Links[0].RemoteNode)
	})

	t.Run("missing descriptors", func(t *testing.T) {
		o, err := NewTEObjectBuilder().Build()
		require.NoError(t, err)
		_, err = o.TedElems()
		assert.Error(t, err)

		o, err = NewTEObjectBuilder().
			SetObjectType(ObjectTypeTELink).
			AddTLV(NewLocalTENodeDescriptors(nodeDescriptors(65000, r1)...)).
			Build()
		require.NoError(t, err)
		_, err = o.TedElems()
		assert.Error(t, err)

		o, err = NewTEObjectBuilder().
			AddTLV(NewLocalTENodeDescriptors(&Uint32SubTLV{SubTLVType: SubTLVAutonomousSystem, Value: 1})).
			Build()
		require.NoError(t, err)
		_, err = o.TedElems()
		assert.ErrorContains(t, err, "IGP Router-ID")
	})
}
