// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package table

import (
	"errors"
	"net/netip"
	"strconv"
)

// Segment is one SID of a segment list carried in SR-ERO or SRv6-ERO hops.
type Segment interface {
	SidString() string
}

// NewSegment parses an IPv6 address as an SRv6 SID and a decimal number as an MPLS label.
func NewSegment(sid string) (Segment, error) {
	if addr, err := netip.ParseAddr(sid); err == nil && addr.Is6() {
		return NewSegmentSRv6(addr), nil
	}
	if i, err := strconv.ParseUint(sid, 10, 32); err == nil && i < 1<<20 {
		return NewSegmentSRMPLS(uint32(i)), nil
	}
	return nil, errors.New("invalid SID")
}

type SegmentSRv6 struct {
	Sid netip.Addr
}

func (seg SegmentSRv6) SidString() string {
	return seg.Sid.String()
}

func NewSegmentSRv6(sid netip.Addr) SegmentSRv6 {
	return SegmentSRv6{
		Sid: sid,
	}
}

type SegmentSRMPLS struct {
	Sid uint32 // 20-bit label
}

func (seg SegmentSRMPLS) SidString() string {
	return strconv.Itoa(int(seg.Sid))
}

func NewSegmentSRMPLS(sid uint32) SegmentSRMPLS {
	return SegmentSRMPLS{
		Sid: sid,
	}
}
