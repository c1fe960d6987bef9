// SPDX-License-Identifier: MPL-2.0

package snmp

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueKind identifies the wire type of a Value
//
// Every value returned by the device is tagged with one of these kinds so
// that callers can pattern-match instead of relying on runtime type
// inspection. The Bytes kind carries exact octets; it is never decoded
// through a text codec unless the caller explicitly asks for text.
type ValueKind int

const (
	// KindNull represents an absent or NULL value
	KindNull ValueKind = iota

	// KindInteger represents a signed INTEGER value
	KindInteger

	// KindText represents a value already decoded as text (e.g. a
	// DisplayString that arrived as a decoded string, not raw octets)
	KindText

	// KindBytes represents an OCTET STRING carried as exact raw octets
	//
	// Byte values frequently hold binary structures (equalizer
	// coefficient tables, MAC addresses) whose correctness depends on
	// octet-exact preservation.
	KindBytes

	// KindCounter32 represents a Counter32 value
	KindCounter32

	// KindGauge32 represents a Gauge32 or Unsigned32 value
	KindGauge32

	// KindTimeTicks represents a TimeTicks value
	KindTimeTicks

	// KindCounter64 represents a Counter64 value
	KindCounter64

	// KindOID represents an OBJECT IDENTIFIER value
	KindOID

	// KindIPAddress represents an IpAddress value
	KindIPAddress
)

// String returns the string representation of a ValueKind
func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInteger:
		return "integer"
	case KindText:
		return "text"
	case KindBytes:
		return "bytes"
	case KindCounter32:
		return "counter32"
	case KindGauge32:
		return "gauge32"
	case KindTimeTicks:
		return "timeticks"
	case KindCounter64:
		return "counter64"
	case KindOID:
		return "oid"
	case KindIPAddress:
		return "ipaddress"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

// Value is the tagged union of protocol-native scalar kinds
//
// A Value is immutable after construction. Use the typed constructors
// (NewInteger, NewBytes, ...) to build one and the typed accessors
// (Int, Bytes, String) to read it back.
type Value struct {
	kind ValueKind
	i    int64
	u    uint64
	b    []byte
	s    string
}

// NewNull creates a NULL value
func NewNull() Value {
	return Value{kind: KindNull}
}

// NewInteger creates a signed integer value
func NewInteger(v int64) Value {
	return Value{kind: KindInteger, i: v}
}

// NewText creates a decoded-text value
//
// Use NewBytes for anything that may carry binary payloads. A text value
// has no raw-octet identity: Bytes() reports no octets for it.
func NewText(v string) Value {
	return Value{kind: KindText, s: v}
}

// NewBytes creates a raw-octet value
//
// The input slice is copied so the Value stays immutable.
func NewBytes(v []byte) Value {
	b := make([]byte, len(v))
	copy(b, v)
	return Value{kind: KindBytes, b: b}
}

// NewCounter32 creates a Counter32 value
func NewCounter32(v uint32) Value {
	return Value{kind: KindCounter32, u: uint64(v)}
}

// NewGauge32 creates a Gauge32 value
func NewGauge32(v uint32) Value {
	return Value{kind: KindGauge32, u: uint64(v)}
}

// NewTimeTicks creates a TimeTicks value
func NewTimeTicks(v uint32) Value {
	return Value{kind: KindTimeTicks, u: uint64(v)}
}

// NewCounter64 creates a Counter64 value
func NewCounter64(v uint64) Value {
	return Value{kind: KindCounter64, u: v}
}

// NewOIDValue creates an OBJECT IDENTIFIER value
func NewOIDValue(oid string) Value {
	return Value{kind: KindOID, s: strings.TrimPrefix(oid, ".")}
}

// NewIPAddress creates an IpAddress value
func NewIPAddress(addr string) Value {
	return Value{kind: KindIPAddress, s: addr}
}

// NewTypedValue constructs a Value of an explicit target kind from a Go value
//
// This is the construction path for Set operations: the target wire type
// must be supplied by the caller and an incompatible value fails here,
// before any network I/O happens.
//
// Accepted inputs per kind:
//   - KindInteger: int, int8..int64, uint, uint8..uint32
//   - KindBytes: []byte or string (string bytes are taken verbatim)
//   - KindText, KindOID, KindIPAddress: string
//   - KindCounter32, KindGauge32, KindTimeTicks: unsigned/non-negative integers up to 32 bits
//   - KindCounter64: unsigned/non-negative integers
func NewTypedValue(value any, kind ValueKind) (Value, error) {
	switch kind {
	case KindInteger:
		i, ok := toInt64(value)
		if !ok {
			return Value{}, fmt.Errorf("value %T is not assignable to kind %s", value, kind)
		}
		return NewInteger(i), nil
	case KindBytes:
		switch v := value.(type) {
		case []byte:
			return NewBytes(v), nil
		case string:
			return NewBytes([]byte(v)), nil
		}
		return Value{}, fmt.Errorf("value %T is not assignable to kind %s", value, kind)
	case KindText:
		if s, ok := value.(string); ok {
			return NewText(s), nil
		}
		return Value{}, fmt.Errorf("value %T is not assignable to kind %s", value, kind)
	case KindOID:
		if s, ok := value.(string); ok {
			return NewOIDValue(s), nil
		}
		return Value{}, fmt.Errorf("value %T is not assignable to kind %s", value, kind)
	case KindIPAddress:
		if s, ok := value.(string); ok {
			return NewIPAddress(s), nil
		}
		return Value{}, fmt.Errorf("value %T is not assignable to kind %s", value, kind)
	case KindCounter32, KindGauge32, KindTimeTicks:
		u, ok := toUint64(value)
		if !ok || u > math.MaxUint32 {
			return Value{}, fmt.Errorf("value %v is not assignable to kind %s", value, kind)
		}
		return Value{kind: kind, u: u}, nil
	case KindCounter64:
		u, ok := toUint64(value)
		if !ok {
			return Value{}, fmt.Errorf("value %v is not assignable to kind %s", value, kind)
		}
		return NewCounter64(u), nil
	default:
		return Value{}, fmt.Errorf("unsupported value kind: %s", kind)
	}
}

// Kind returns the tagged kind of the value
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsNull reports whether the value is NULL
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// String returns the value's native text rendering
//
// Integer kinds render as decimal text. Byte values are rendered by a
// direct byte-to-string conversion, which preserves every octet; no text
// codec is involved. Callers that need the octets themselves must use
// Bytes, never String.
func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindCounter32, KindGauge32, KindTimeTicks, KindCounter64:
		return strconv.FormatUint(v.u, 10)
	case KindBytes:
		return string(v.b)
	case KindText, KindOID, KindIPAddress:
		return v.s
	default:
		return ""
	}
}

// Int returns the value as a signed integer
//
// Works for KindInteger and for the unsigned scalar kinds when the value
// fits in an int64. Returns false for every other kind.
func (v Value) Int() (int64, bool) {
	switch v.kind {
	case KindInteger:
		return v.i, true
	case KindCounter32, KindGauge32, KindTimeTicks, KindCounter64:
		if v.u > math.MaxInt64 {
			return 0, false
		}
		return int64(v.u), true
	default:
		return 0, false
	}
}

// Uint returns the value as an unsigned integer
func (v Value) Uint() (uint64, bool) {
	switch v.kind {
	case KindCounter32, KindGauge32, KindTimeTicks, KindCounter64:
		return v.u, true
	case KindInteger:
		if v.i < 0 {
			return 0, false
		}
		return uint64(v.i), true
	default:
		return 0, false
	}
}

// Bytes returns the exact underlying octets of a byte value
//
// Only KindBytes has a raw-octet identity. Any other kind, including
// decoded text, reports false: converting text back into bytes would run
// it through a codec and silently corrupt binary payloads, which is
// exactly what this accessor exists to prevent.
func (v Value) Bytes() ([]byte, bool) {
	if v.kind != KindBytes {
		return nil, false
	}
	b := make([]byte, len(v.b))
	copy(b, v.b)
	return b, true
}

// Hex returns the octets of a byte value as space-separated uppercase hex
//
// Returns an empty string for non-byte kinds.
//
// Example:
//
//	v := snmp.NewBytes([]byte{0xff, 0xfc, 0xff, 0xfe})
//	fmt.Println(v.Hex()) // "FF FC FF FE"
func (v Value) Hex() string {
	if v.kind != KindBytes || len(v.b) == 0 {
		return ""
	}
	var builder strings.Builder
	builder.Grow(len(v.b) * 3)
	for i, b := range v.b {
		if i > 0 {
			builder.WriteByte(' ')
		}
		fmt.Fprintf(&builder, "%02X", b)
	}
	return builder.String()
}

func toInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	}
	return 0, false
}

func toUint64(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint:
		return uint64(v), true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint64:
		return v, true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int32:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	}
	return 0, false
}
