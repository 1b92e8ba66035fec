// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package pcep

import (
	"fmt"

	"go.uber.org/zap"
)

// EroLengthMode selects what the ERO header length field reports when the
// object body is not 4-byte aligned and object-level padding is appended.
type EroLengthMode uint8

const (
	// EroLengthUnpadded keeps the unpadded length in the header while still
	// writing the padding bytes. Existing peers emit ERO objects this way.
	EroLengthUnpadded EroLengthMode = iota
	// EroLengthPadded re-patches the header to cover the padding.
	EroLengthPadded
)

var eroLengthModeNames = map[EroLengthMode]string{
	EroLengthUnpadded: "unpadded",
	EroLengthPadded:   "padded",
}

func (m EroLengthMode) String() string {
	if name, ok := eroLengthModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Unknown EroLengthMode (%d)", uint8(m))
}

// ParseEroLengthMode maps "unpadded" / "padded" to a mode. The empty string
// selects the default.
func ParseEroLengthMode(s string) (EroLengthMode, error) {
	if s == "" {
		return EroLengthUnpadded, nil
	}
	for m, name := range eroLengthModeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown ERO length mode %q", s)
}

type optParams struct {
	strictPadding bool
	eroLengthMode EroLengthMode
	logger        *zap.Logger
}

type Opt func(*optParams)

func newOptParams(opt []Opt) *optParams {
	p := &optParams{
		strictPadding: false,
		eroLengthMode: EroLengthUnpadded,
		logger:        zap.NewNop(),
	}
	for _, o := range opt {
		o(p)
	}
	return p
}

// WithStrictPadding makes a padding run cut short by the end of the enclosing
// object an ErrTruncatedElement instead of being skipped silently.
func WithStrictPadding() Opt {
	return func(op *optParams) {
		op.strictPadding = true
	}
}

func WithEroLengthMode(m EroLengthMode) Opt {
	return func(op *optParams) {
		op.eroLengthMode = m
	}
}

// WithLogger routes per-element debug tracing to l.
func WithLogger(l *zap.Logger) Opt {
	return func(op *optParams) {
		if l != nil {
			op.logger = l
		}
	}
}
