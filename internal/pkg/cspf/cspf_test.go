// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package cspf

import (
	"math"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nttcom/pcepobj/internal/pkg/table"
	"github.com/nttcom/pcepobj/pkg/packet/pcep"
)

const testAS = 65000

func addLink(ted *table.LsTed, local, remote, localIP, remoteIP string, igp, te uint32) {
	l := table.NewLsLink(table.NewLsNode(testAS, local), table.NewLsNode(testAS, remote))
	l.LocalIP = netip.MustParseAddr(localIP)
	l.RemoteIP = netip.MustParseAddr(remoteIP)
	l.Metrics = []*table.Metric{
		table.NewMetric(table.IGP_METRIC, igp),
		table.NewMetric(table.TE_METRIC, te),
	}
	ted.Update([]table.TedElem{l})
}

// A - B - D is shorter by IGP metric, A - C - D by TE metric.
func testTed() *table.LsTed {
	ted := table.NewLsTed(1)
	addLink(ted, "A", "B", "10.0.1.1", "10.0.1.2", 10, 10)
	addLink(ted, "B", "A", "10.0.1.2", "10.0.1.1", 10, 10)
	addLink(ted, "B", "D", "10.0.2.1", "10.0.2.2", 10, 10)
	addLink(ted, "A", "C", "10.0.3.1", "10.0.3.2", 15, 1)
	addLink(ted, "C", "D", "10.0.4.1", "10.0.4.2", 15, 1)
	ted.Update([]table.TedElem{table.NewLsNode(testAS, "E")})
	return ted
}

func hops(path []*table.LsLink) []string {
	ids := []string{}
	for _, l := range path {
		ids = append(ids, l.RemoteNode.RouterId)
	}
	return ids
}

func TestCspf(t *testing.T) {
	tests := []struct {
		name     string
		src, dst string
		metric   table.MetricType
		expected []string
	}{
		{"IGP metric", "A", "D", table.IGP_METRIC, []string{"B", "D"}},
		{"TE metric", "A", "D", table.TE_METRIC, []string{"C", "D"}},
		{"single hop", "B", "A", table.IGP_METRIC, []string{"A"}},
		{"same node", "A", "A", table.IGP_METRIC, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := Cspf(tt.src, tt.dst, testAS, tt.metric, testTed())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, hops(path))
		})
	}
}

func TestCspf_LargeMetrics(t *testing.T) {
	ted := table.NewLsTed(1)
	addLink(ted, "A", "B", "10.0.1.1", "10.0.1.2", 1, 5)
	addLink(ted, "B", "D", "10.0.2.1", "10.0.2.2", 1, math.MaxUint32)
	addLink(ted, "A", "C", "10.0.3.1", "10.0.3.2", 2, 10)
	addLink(ted, "C", "D", "10.0.4.1", "10.0.4.2", 2, 10)

	path, err := Cspf("A", "D", testAS, table.TE_METRIC, ted)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "D"}, hops(path))

	path, err = Cspf("A", "D", testAS, table.IGP_METRIC, ted)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "D"}, hops(path))
}

func TestCspf_Errors(t *testing.T) {
	tests := []struct {
		name     string
		src, dst string
		as       uint32
		metric   table.MetricType
		contains string
	}{
		{"unknown AS", "A", "D", 1, table.IGP_METRIC, "AS 1 not found"},
		{"unknown source", "X", "D", testAS, table.IGP_METRIC, "source node X"},
		{"unknown destination", "A", "X", testAS, table.IGP_METRIC, "destination node X"},
		{"unreachable", "A", "E", testAS, table.IGP_METRIC, "next node not found"},
		{"metric not advertised", "A", "D", testAS, table.DELAY_METRIC, "metric DELAY not defined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Cspf(tt.src, tt.dst, tt.as, tt.metric, testTed())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestEro(t *testing.T) {
	path, err := Cspf("A", "D", testAS, table.IGP_METRIC, testTed())
	require.NoError(t, err)

	ero, err := Ero(path)
	require.NoError(t, err)
	assert.Equal(t, []pcep.EroSubobject{
		pcep.NewIPPrefixSubobject(netip.MustParsePrefix("10.0.1.2/32"), false),
		pcep.NewIPPrefixSubobject(netip.MustParsePrefix("10.0.2.2/32"), false),
	}, ero.Subobjects())

	b, err := ero.Serialize()
	require.NoError(t, err)
	assert.Equal(t, []uint8{
		0x07, 0x10, 0x00, 0x14,
		0x01, 0x08, 0x0a, 0x00, 0x01, 0x02, 0x20, 0x00,
		0x01, 0x08, 0x0a, 0x00, 0x02, 0x02, 0x20, 0x00,
	}, b)

	t.Run("IPv6 hop", func(t *testing.T) {
		l := table.NewLsLink(table.NewLsNode(testAS, "A"), table.NewLsNode(testAS, "B"))
		l.RemoteIP = netip.MustParseAddr("2001:db8::2")
		ero, err := Ero([]*table.LsLink{l})
		require.NoError(t, err)
		require.Len(t, ero.Subobjects(), 1)
		assert.Equal(t, pcep.SubobjectIPv6Prefix, ero.Subobjects()[0].Type())
	})

	t.Run("unnumbered link", func(t *testing.T) {
		l := table.NewLsLink(table.NewLsNode(testAS, "A"), table.NewLsNode(testAS, "B"))
		_, err := Ero([]*table.LsLink{l})
		assert.ErrorContains(t, err, "no neighbor address")
	})

	t.Run("empty path", func(t *testing.T) {
		ero, err := Ero(nil)
		require.NoError(t, err)
		assert.Empty(t, ero.Subobjects())
	})
}
