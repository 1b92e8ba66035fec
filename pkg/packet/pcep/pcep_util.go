// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package pcep

import (
	"encoding/binary"
	"fmt"
	"net"
	"net/netip"

	"golang.org/x/exp/constraints"
)

// AppendByteSlices concatenates multiple byte slices into a single slice.
func AppendByteSlices(slices ...[]byte) []byte {
	totalLen := 0
	for _, s := range slices {
		totalLen += len(s)
	}

	result := make([]byte, totalLen)
	offset := 0
	for _, s := range slices {
		copy(result[offset:], s)
		offset += len(s)
	}

	return result
}

// Uint16ToByteSlice converts a uint16 or any uint16-based code type to a big-endian byte slice.
func Uint16ToByteSlice[T ~uint16](v T) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, uint16(v))
	return b
}

// Bitwise is a type constraint for unsigned integer types (uint8, uint16, uint32).
type Bitwise interface {
	~uint8 | ~uint16 | ~uint32
}

// IsBitSet checks if a specific bit is set in the value, with bit 0 as the least significant bit (LSB).
func IsBitSet[T Bitwise](value, mask T) bool {
	return value&mask != 0
}

// SetBit sets a specific bit in the value of any unsigned integer type.
func SetBit[T Bitwise](value, bit T, condition bool) T {
	if condition {
		return value | bit
	}
	return value
}

// Alignment of every PCEP object, sub-object and TLV on the wire.
const Alignment = 4

// PaddingLength returns the number of zero bytes following an element whose
// length field is l: (4 - l%4) % 4.
func PaddingLength[T constraints.Integer](l T) T {
	return (Alignment - l%Alignment) % Alignment
}

func readAddr(c *Cursor, n int) (netip.Addr, error) {
	b, err := c.ReadBytes(n)
	if err != nil {
		return netip.Addr{}, err
	}
	addr, _ := netip.AddrFromSlice(b)
	return addr, nil
}

// writeAddr writes addr, which must be an address of exactly bitLen bits.
func writeAddr(c *Cursor, addr netip.Addr, bitLen int) error {
	if !addr.IsValid() || addr.BitLen() != bitLen {
		return fmt.Errorf("address %s is not a %d-bit address", addr, bitLen)
	}
	c.WriteBytes(addr.AsSlice())
	return nil
}

// addrBytes returns the on-wire size of addr, treating an invalid address as IPv4.
func addrBytes(addr netip.Addr) int {
	if addr.Is6() {
		return net.IPv6len
	}
	return net.IPv4len
}
