// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package pcep

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedHeader reports a common object header shorter than 4 bytes
	// or declaring a length smaller than the header itself.
	ErrMalformedHeader = errors.New("malformed object header")
	// ErrUnexpectedObjectClass reports a class/type pair the decoder was not asked for.
	ErrUnexpectedObjectClass = errors.New("unexpected object class")
	// ErrUnsupportedElementType reports a sub-object or TLV code with no registered variant.
	ErrUnsupportedElementType = errors.New("unsupported element type")
	// ErrTrailingBytes reports bytes left over that cannot form another element.
	ErrTrailingBytes = errors.New("trailing bytes")
	// ErrTruncatedElement reports a declared length running past the available bytes.
	ErrTruncatedElement = errors.New("truncated element")
	// ErrLengthOverflow reports an encoded length that does not fit its length field.
	ErrLengthOverflow = errors.New("length overflow")
	// ErrDoubleAssignment reports a builder field set more than once.
	ErrDoubleAssignment = errors.New("field assigned more than once")
)

// noCode marks a DecodeError that is not tied to an element type code.
const noCode = -1

// DecodeError carries the position and element code of a codec failure.
// Err is always one of the sentinel errors above, so callers match with errors.Is.
type DecodeError struct {
	Err    error
	Object string // what was being decoded, e.g. "ERO subobject"
	Code   int    // element type code, or -1
	Offset int    // absolute byte offset in the input
	Detail string
}

func (e *DecodeError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Err.Error())
	if e.Object != "" {
		fmt.Fprintf(&sb, " in %s", e.Object)
	}
	if e.Code != noCode {
		fmt.Fprintf(&sb, " (type %d)", e.Code)
	}
	fmt.Fprintf(&sb, " at offset %d", e.Offset)
	if e.Detail != "" {
		sb.WriteString(": " + e.Detail)
	}
	return sb.String()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func newDecodeError(err error, object string, offset int, format string, args ...any) *DecodeError {
	return &DecodeError{
		Err:    err,
		Object: object,
		Code:   noCode,
		Offset: offset,
		Detail: fmt.Sprintf(format, args...),
	}
}

func (e *DecodeError) withCode(code uint16) *DecodeError {
	e.Code = int(code)
	return e
}
