// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package pcep

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// element is a typed, length-prefixed value: an ERO sub-object, a TLV or a sub-TLV.
type element interface {
	zapcore.ObjectMarshaler
	elementCode() uint16
	// payloadLen is the number of value bytes, excluding header and padding.
	payloadLen() int
	decodePayload(c *Cursor, p *optParams) error
	encodePayload(c *Cursor, p *optParams) error
}

// looseHop is implemented by elements carrying the ERO L-bit.
type looseHop interface {
	Loose() bool
}

// elementHeader is the decoded framing of one element.
type elementHeader struct {
	Code   uint16
	Loose  bool
	Length int // value of the length field
	Value  int // payload bytes following the header
}

// framing describes how an element family lays out its type and length fields.
type framing struct {
	name                 string
	headerLen            int
	lengthIncludesHeader bool
	maxLength            int
}

var (
	// RFC3209 4.3.3: 1-byte L/type, 1-byte length covering the whole sub-object.
	subobjectFraming = framing{name: "ERO subobject", headerLen: 2, lengthIncludesHeader: true, maxLength: 0xff}
	// RFC5440 7.1: 2-byte type, 2-byte length covering the value only.
	tlvFraming = framing{name: "TLV", headerLen: TLVHeaderLength, lengthIncludesHeader: false, maxLength: 0xffff}
)

const subobjectLBit = 0x80

func (f framing) readHeader(c *Cursor) (elementHeader, error) {
	var h elementHeader
	start := c.Offset()
	if f.headerLen == 2 {
		b, _ := c.ReadBytes(2)
		h.Code = uint16(b[0] &^ subobjectLBit)
		h.Loose = IsBitSet(b[0], subobjectLBit)
		h.Length = int(b[1])
	} else {
		code, _ := c.ReadUint16()
		length, _ := c.ReadUint16()
		h.Code, h.Length = code, int(length)
	}
	h.Value = h.Length
	if f.lengthIncludesHeader {
		if h.Length < f.headerLen {
			return h, newDecodeError(ErrTruncatedElement, f.name, start,
				"length %d is shorter than the %d-byte header", h.Length, f.headerLen).withCode(h.Code)
		}
		h.Value -= f.headerLen
	}
	return h, nil
}

func (f framing) writeHeader(c *Cursor, e element, length int) {
	if f.headerLen == 2 {
		b0 := uint8(e.elementCode())
		if lh, ok := e.(looseHop); ok {
			b0 = SetBit(b0, subobjectLBit, lh.Loose())
		}
		c.WriteUint8(b0)
		c.WriteUint8(uint8(length))
		return
	}
	c.WriteUint16(e.elementCode())
	c.WriteUint16(uint16(length))
}

// lengthField returns the value written into the length field of e.
func (f framing) lengthField(e element) int {
	if f.lengthIncludesHeader {
		return f.headerLen + e.payloadLen()
	}
	return e.payloadLen()
}

// wireLen returns the bytes e occupies including header and padding.
func (f framing) wireLen(e element) int {
	n := f.headerLen + e.payloadLen()
	return n + PaddingLength(f.lengthField(e))
}

// registry maps element codes to variant constructors. Registries are filled
// at package init and only read afterwards.
type registry[T element] struct {
	framing framing
	ctors   map[uint16]func(h elementHeader) T
}

func (r *registry[T]) codes() []uint16 {
	return slices.Sorted(maps.Keys(r.ctors))
}

// decodeElements reads elements until c is exhausted. Every iteration consumes at
// least one header, so the loop is bounded by c.Remaining().
func decodeElements[T element](c *Cursor, r *registry[T], p *optParams) ([]T, error) {
	f := r.framing
	var elems []T
	for c.Remaining() > 0 {
		start := c.Offset()
		if c.Remaining() < f.headerLen {
			return nil, newDecodeError(ErrTrailingBytes, f.name, start,
				"%d bytes left, a header needs %d", c.Remaining(), f.headerLen)
		}
		h, err := f.readHeader(c)
		if err != nil {
			return nil, err
		}
		newElem, ok := r.ctors[h.Code]
		if !ok {
			return nil, newDecodeError(ErrUnsupportedElementType, f.name, start, "no decoder registered").withCode(h.Code)
		}
		if h.Value > c.Remaining() {
			return nil, newDecodeError(ErrTruncatedElement, f.name, start,
				"length %d but only %d bytes left", h.Length, c.Remaining()).withCode(h.Code)
		}
		body, _ := c.Sub(h.Value)
		e := newElem(h)
		if err := e.decodePayload(body, p); err != nil {
			var de *DecodeError
			if errors.As(err, &de) {
				return nil, err
			}
			return nil, newDecodeError(sentinelOf(err), f.name, start, "%v", err).withCode(h.Code)
		}
		if body.Remaining() > 0 {
			return nil, newDecodeError(ErrTrailingBytes, f.name, start,
				"%d payload bytes not consumed", body.Remaining()).withCode(h.Code)
		}
		if err := skipPadding(c, PaddingLength(h.Length), p.strictPadding); err != nil {
			return nil, newDecodeError(ErrTruncatedElement, f.name, start, "%v", err).withCode(h.Code)
		}
		p.logger.Debug("decoded element",
			zap.String("family", f.name), zap.Uint16("type", h.Code), zap.Int("length", h.Length), zap.Int("offset", start))
		elems = append(elems, e)
	}
	return elems, nil
}

// sentinelOf returns the taxonomy error err wraps, defaulting to ErrTruncatedElement
// for payloads a variant could not make sense of.
func sentinelOf(err error) error {
	for _, sentinel := range []error{ErrUnsupportedElementType, ErrTrailingBytes, ErrMalformedHeader, ErrUnexpectedObjectClass} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return ErrTruncatedElement
}

// skipPadding consumes pad bytes. A short run is truncated silently unless strict.
func skipPadding(c *Cursor, pad int, strict bool) error {
	if pad <= c.Remaining() {
		return c.Skip(pad)
	}
	if strict {
		return fmt.Errorf("padding of %d bytes but only %d left", pad, c.Remaining())
	}
	return c.Skip(c.Remaining())
}

// encodeElement writes type, length, payload and zero padding.
func encodeElement[T element](c *Cursor, f framing, e T, p *optParams) error {
	length := f.lengthField(e)
	if length > f.maxLength {
		return fmt.Errorf("%w: %s type %d length %d exceeds %d", ErrLengthOverflow, f.name, e.elementCode(), length, f.maxLength)
	}
	start := c.Len()
	f.writeHeader(c, e, length)
	if err := e.encodePayload(c, p); err != nil {
		return fmt.Errorf("failed to encode %s type %d: %w", f.name, e.elementCode(), err)
	}
	if written := c.Len() - start - f.headerLen; written != e.payloadLen() {
		return fmt.Errorf("%s type %d wrote %d payload bytes, declared %d", f.name, e.elementCode(), written, e.payloadLen())
	}
	c.WriteZeros(PaddingLength(length))
	p.logger.Debug("encoded element", zap.String("family", f.name), zap.Uint16("type", e.elementCode()), zap.Int("length", length))
	return nil
}

// isNilElement reports an untyped nil or a nil pointer held in the interface.
func isNilElement(e element) bool {
	if e == nil {
		return true
	}
	v := reflect.ValueOf(e)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func encodeElements[T element](c *Cursor, f framing, elems []T, p *optParams) error {
	for i, e := range elems {
		if isNilElement(e) {
			return fmt.Errorf("nil %s at index %d", f.name, i)
		}
		if err := encodeElement(c, f, e, p); err != nil {
			return err
		}
	}
	return nil
}

func elementsWireLen[T element](f framing, elems []T) int {
	n := 0
	for _, e := range elems {
		if isNilElement(e) {
			continue
		}
		n += f.wireLen(e)
	}
	return n
}
