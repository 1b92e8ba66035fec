// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package pcep

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// optional records whether a builder field was set, and whether it was set twice.
type optional[T any] struct {
	value T
	set   bool
	twice bool
}

func (f *optional[T]) assign(v T) {
	if f.set {
		f.twice = true
	}
	f.value, f.set = v, true
}

func (f optional[T]) or(def T) T {
	if f.set {
		return f.value
	}
	return def
}

// doubleAssigned builds ErrDoubleAssignment from the names of fields set more than once.
func doubleAssigned(fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrDoubleAssignment, strings.Join(fields, ", "))
}

type EroObjectBuilder struct {
	pFlag      optional[bool]
	iFlag      optional[bool]
	subobjects optional[[]EroSubobject]
	added      []EroSubobject
}

func NewEroObjectBuilder() *EroObjectBuilder {
	return &EroObjectBuilder{}
}

func (b *EroObjectBuilder) SetPFlag(v bool) *EroObjectBuilder {
	b.pFlag.assign(v)
	return b
}

func (b *EroObjectBuilder) SetIFlag(v bool) *EroObjectBuilder {
	b.iFlag.assign(v)
	return b
}

// SetSubobjects sets the hop list. It may be called once; AddSubobject appends after it.
func (b *EroObjectBuilder) SetSubobjects(subobjects []EroSubobject) *EroObjectBuilder {
	b.subobjects.assign(slices.Clone(subobjects))
	return b
}

func (b *EroObjectBuilder) AddSubobject(so EroSubobject) *EroObjectBuilder {
	b.added = append(b.added, so)
	return b
}

// Build returns the object. Unset flags default to false and an unset hop list to empty.
func (b *EroObjectBuilder) Build() (*EroObject, error) {
	var twice []string
	if b.pFlag.twice {
		twice = append(twice, "pFlag")
	}
	if b.iFlag.twice {
		twice = append(twice, "iFlag")
	}
	if b.subobjects.twice {
		twice = append(twice, "subobjects")
	}
	if err := doubleAssigned(twice...); err != nil {
		return nil, err
	}

	subobjects := append(b.subobjects.or(nil), b.added...)
	if slices.ContainsFunc(subobjects, func(so EroSubobject) bool { return isNilElement(so) }) {
		return nil, errors.New("nil ERO subobject")
	}
	return &EroObject{
		pFlag:      b.pFlag.or(false),
		iFlag:      b.iFlag.or(false),
		subobjects: slices.Clone(subobjects),
	}, nil
}

type TEObjectBuilder struct {
	pFlag      optional[bool]
	iFlag      optional[bool]
	objectType optional[ObjectType]
	protocolID optional[ProtocolID]
	sFlag      optional[bool]
	rFlag      optional[bool]
	teID       optional[uint32]
	tlvs       optional[[]TETLV]
	added      []TETLV
}

func NewTEObjectBuilder() *TEObjectBuilder {
	return &TEObjectBuilder{}
}

func (b *TEObjectBuilder) SetPFlag(v bool) *TEObjectBuilder {
	b.pFlag.assign(v)
	return b
}

func (b *TEObjectBuilder) SetIFlag(v bool) *TEObjectBuilder {
	b.iFlag.assign(v)
	return b
}

// SetObjectType selects a node (ObjectTypeTENode) or link (ObjectTypeTELink) object.
func (b *TEObjectBuilder) SetObjectType(t ObjectType) *TEObjectBuilder {
	b.objectType.assign(t)
	return b
}

func (b *TEObjectBuilder) SetProtocolID(id ProtocolID) *TEObjectBuilder {
	b.protocolID.assign(id)
	return b
}

func (b *TEObjectBuilder) SetSFlag(v bool) *TEObjectBuilder {
	b.sFlag.assign(v)
	return b
}

func (b *TEObjectBuilder) SetRFlag(v bool) *TEObjectBuilder {
	b.rFlag.assign(v)
	return b
}

func (b *TEObjectBuilder) SetTEID(id uint32) *TEObjectBuilder {
	b.teID.assign(id)
	return b
}

func (b *TEObjectBuilder) SetTLVs(tlvs []TETLV) *TEObjectBuilder {
	b.tlvs.assign(slices.Clone(tlvs))
	return b
}

func (b *TEObjectBuilder) AddTLV(tlv TETLV) *TEObjectBuilder {
	b.added = append(b.added, tlv)
	return b
}

// Build returns the object. Defaults: node object, Protocol-ID IS-IS level 1,
// flags cleared, TE-ID 0, no TLVs.
func (b *TEObjectBuilder) Build() (*TEObject, error) {
	fields := []struct {
		name  string
		twice bool
	}{
		{"pFlag", b.pFlag.twice},
		{"iFlag", b.iFlag.twice},
		{"objectType", b.objectType.twice},
		{"protocolID", b.protocolID.twice},
		{"sFlag", b.sFlag.twice},
		{"rFlag", b.rFlag.twice},
		{"teID", b.teID.twice},
		{"tlvs", b.tlvs.twice},
	}
	var twice []string
	for _, f := range fields {
		if f.twice {
			twice = append(twice, f.name)
		}
	}
	if err := doubleAssigned(twice...); err != nil {
		return nil, err
	}

	objectType := b.objectType.or(ObjectTypeTENode)
	if objectType != ObjectTypeTENode && objectType != ObjectTypeTELink {
		return nil, fmt.Errorf("invalid TE object type %d", objectType)
	}
	tlvs := append(b.tlvs.or(nil), b.added...)
	if slices.ContainsFunc(tlvs, isNilTLV) {
		return nil, errors.New("nil TE TLV")
	}
	return &TEObject{
		pFlag:      b.pFlag.or(false),
		iFlag:      b.iFlag.or(false),
		objectType: objectType,
		protocolID: b.protocolID.or(ProtocolISISLevel1),
		sFlag:      b.sFlag.or(false),
		rFlag:      b.rFlag.or(false),
		teID:       b.teID.or(0),
		tlvs:       slices.Clone(tlvs),
	}, nil
}

func isNilTLV(tlv TETLV) bool {
	if isNilElement(tlv) {
		return true
	}
	l, ok := tlv.(interface{ hasNilSubTLV() bool })
	return ok && l.hasNilSubTLV()
}
