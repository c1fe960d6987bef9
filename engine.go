// SPDX-License-Identifier: MPL-2.0

package snmp

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gosnmp/gosnmp"
)

// Binding is an (identifier, raw value) pair as returned by the device
type Binding struct {
	// OID is the canonical numeric path of the attribute, without a
	// leading dot
	OID string

	// Value is the tagged raw value
	Value Value
}

// OutcomeKind tags the result of one round-trip
type OutcomeKind int

const (
	// OutcomeSuccess carries zero or more bindings
	OutcomeSuccess OutcomeKind = iota

	// OutcomeTransportFailure means the engine could not complete the
	// round-trip at all (socket error, timeout after retries)
	OutcomeTransportFailure

	// OutcomeProtocolError means the device answered with an error status
	OutcomeProtocolError
)

// Outcome is the tagged result of a single round-trip
//
// An Outcome is never silently coerced into a success: callers must
// branch on Kind (or the Is* helpers) before touching Bindings.
type Outcome struct {
	// Kind tags which variant this outcome is
	Kind OutcomeKind

	// Bindings holds the returned (identifier, value) pairs on success
	Bindings []Binding

	// Cause is the underlying transport failure detail
	Cause error

	// Status is the protocol error-status text (see errors.go constants)
	Status string

	// Index is the 1-based index of the offending variable binding
	Index int
}

// Success builds a success outcome carrying the given bindings
func Success(bindings ...Binding) Outcome {
	return Outcome{Kind: OutcomeSuccess, Bindings: bindings}
}

// TransportFailure builds a transport-failure outcome
func TransportFailure(cause error) Outcome {
	return Outcome{Kind: OutcomeTransportFailure, Cause: cause}
}

// ProtocolFailure builds a protocol-error outcome
func ProtocolFailure(status string, index int) Outcome {
	return Outcome{Kind: OutcomeProtocolError, Status: status, Index: index}
}

// IsSuccess reports whether the outcome is a success
func (o Outcome) IsSuccess() bool { return o.Kind == OutcomeSuccess }

// IsTransportFailure reports whether the round-trip failed at the transport level
func (o Outcome) IsTransportFailure() bool { return o.Kind == OutcomeTransportFailure }

// IsProtocolError reports whether the device answered with an error status
func (o Outcome) IsProtocolError() bool { return o.Kind == OutcomeProtocolError }

// IsSizeLimit reports whether the outcome is the size-limit protocol error
func (o Outcome) IsSizeLimit() bool {
	return o.Kind == OutcomeProtocolError && IsSizeLimitStatus(o.Status)
}

// IsBenign reports whether the outcome is a benign "attribute not
// present" protocol error
func (o Outcome) IsBenign() bool {
	return o.Kind == OutcomeProtocolError && IsBenignStatus(o.Status)
}

// errorModel converts a non-success outcome into an ErrorModel for result structs
func (o Outcome) errorModel() ErrorModel {
	switch o.Kind {
	case OutcomeTransportFailure:
		return ErrorModel{Message: o.Cause.Error()}
	case OutcomeProtocolError:
		return ErrorModel{Status: o.Status, Message: o.Status, Index: o.Index}
	default:
		return ErrorModel{}
	}
}

// RequestEngine is the boundary to the low-level PDU codec and transport
//
// Implementations perform one logical round-trip per call (SendBulk may
// page and return several outcomes) within the given per-round-trip
// timeout and retry budget. Identifiers are already resolved canonical
// numeric paths.
//
// The library ships a production implementation backed by gosnmp; tests
// and alternative transports inject their own via WithEngine.
type RequestEngine interface {
	// SendOne performs a single get round-trip
	SendOne(ctx context.Context, oid string, timeout time.Duration, retries int) Outcome

	// SendNext performs a single advance-cursor round-trip
	SendNext(ctx context.Context, oid string, timeout time.Duration, retries int) Outcome

	// SendBulk performs a bulk round-trip requesting up to maxRepetitions
	// bindings past the nonRepeaters prefix. Implementations may page:
	// the result is one outcome per page, in order.
	SendBulk(ctx context.Context, oid string, nonRepeaters, maxRepetitions int, timeout time.Duration, retries int) []Outcome

	// SendSet performs a single set round-trip writing the typed value
	SendSet(ctx context.Context, oid string, value Value, timeout time.Duration, retries int) Outcome
}

// connector is the optional lifecycle interface an engine may implement.
// The client dials lazily through it on the first operation and tears it
// down in Close.
type connector interface {
	Connect(ctx context.Context) error
	Close() error
}

// wireEngine is the production RequestEngine backed by gosnmp
//
// One wireEngine owns one UDP session. Calls are serialized by a mutex:
// the session assumes one in-flight round-trip at a time and the
// per-request timeout/retry budget is applied by mutating the underlying
// session before each call.
type wireEngine struct {
	mu             sync.Mutex
	conn           *gosnmp.GoSNMP
	writeCommunity string
	logger         Logger
}

// newWireEngine builds the production engine from client configuration.
// No socket is opened here; Connect happens lazily on first use.
func newWireEngine(c *Client) *wireEngine {
	conn := &gosnmp.GoSNMP{
		Target:    c.Target,
		Port:      uint16(c.Port),
		Community: c.community,
		Version:   protocolVersion(c.Version),
		Timeout:   c.Timeout,
		Retries:   c.Retries,
		MaxOids:   gosnmp.MaxOids,
	}
	return &wireEngine{
		conn:           conn,
		writeCommunity: c.writeCommunity,
		logger:         c.logger,
	}
}

// protocolVersion maps the client version constant onto the transport's
func protocolVersion(v Version) gosnmp.SnmpVersion {
	if v == VersionV1 {
		return gosnmp.Version1
	}
	return gosnmp.Version2c
}

// Connect opens the UDP session
func (e *wireEngine) Connect(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.conn.Context = ctx
	return e.conn.Connect()
}

// Close tears the session down
func (e *wireEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.conn.Conn == nil {
		return nil
	}
	return e.conn.Conn.Close()
}

// prepare applies per-request context, timeout and retry budget.
// Caller must hold e.mu.
func (e *wireEngine) prepare(ctx context.Context, timeout time.Duration, retries int) {
	e.conn.Context = ctx
	if timeout > 0 {
		e.conn.Timeout = timeout
	}
	if retries >= 0 {
		e.conn.Retries = retries
	}
}

// SendOne performs a single get round-trip
func (e *wireEngine) SendOne(ctx context.Context, oid string, timeout time.Duration, retries int) Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prepare(ctx, timeout, retries)
	pkt, err := e.conn.Get([]string{wireOID(oid)})
	return e.outcome(pkt, err)
}

// SendNext performs a single advance-cursor round-trip
func (e *wireEngine) SendNext(ctx context.Context, oid string, timeout time.Duration, retries int) Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prepare(ctx, timeout, retries)
	pkt, err := e.conn.GetNext([]string{wireOID(oid)})
	return e.outcome(pkt, err)
}

// SendBulk performs one bulk round-trip. gosnmp does not page internally,
// so the result is always a single outcome.
func (e *wireEngine) SendBulk(ctx context.Context, oid string, nonRepeaters, maxRepetitions int, timeout time.Duration, retries int) []Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prepare(ctx, timeout, retries)
	pkt, err := e.conn.GetBulk([]string{wireOID(oid)}, uint8(nonRepeaters), uint32(maxRepetitions))
	return []Outcome{e.outcome(pkt, err)}
}

// SendSet performs a single set round-trip using the write community
func (e *wireEngine) SendSet(ctx context.Context, oid string, value Value, timeout time.Duration, retries int) Outcome {
	pdu, err := pduFromValue(oid, value)
	if err != nil {
		return TransportFailure(err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.prepare(ctx, timeout, retries)

	// Writes use the write community; restore the read community after.
	readCommunity := e.conn.Community
	if e.writeCommunity != "" {
		e.conn.Community = e.writeCommunity
	}
	pkt, sendErr := e.conn.Set([]gosnmp.SnmpPDU{pdu})
	e.conn.Community = readCommunity

	return e.outcome(pkt, sendErr)
}

// outcome converts a gosnmp response into the tagged Outcome
//
// v2c exception values are normalized here: EndOfMibView bindings are
// dropped (an empty success ends a walk cleanly) and
// NoSuchObject/NoSuchInstance surface as benign protocol errors.
func (e *wireEngine) outcome(pkt *gosnmp.SnmpPacket, err error) Outcome {
	if err != nil {
		return TransportFailure(err)
	}
	if pkt == nil {
		return TransportFailure(fmt.Errorf("empty response packet"))
	}
	if pkt.Error != gosnmp.NoError {
		return ProtocolFailure(statusText(pkt.Error), int(pkt.ErrorIndex))
	}

	bindings := make([]Binding, 0, len(pkt.Variables))
	for i, pdu := range pkt.Variables {
		switch pdu.Type {
		case gosnmp.EndOfMibView:
			continue
		case gosnmp.NoSuchObject:
			return ProtocolFailure(StatusNoSuchObject, i+1)
		case gosnmp.NoSuchInstance:
			return ProtocolFailure(StatusNoSuchInstance, i+1)
		}
		bindings = append(bindings, Binding{
			OID:   strings.TrimPrefix(pdu.Name, "."),
			Value: valueFromPDU(pdu),
		})
	}
	return Success(bindings...)
}

// wireOID renders an identifier in the transport's leading-dot form
func wireOID(oid string) string {
	if strings.HasPrefix(oid, ".") {
		return oid
	}
	return "." + oid
}

// valueFromPDU converts a decoded variable binding into the tagged Value
//
// OCTET STRING payloads arrive from the codec as raw byte slices and are
// kept that way; this is where the raw-octet preservation invariant is
// anchored.
func valueFromPDU(pdu gosnmp.SnmpPDU) Value {
	switch pdu.Type {
	case gosnmp.Integer:
		if i, ok := toInt64(pdu.Value); ok {
			return NewInteger(i)
		}
	case gosnmp.OctetString:
		if b, ok := pdu.Value.([]byte); ok {
			return NewBytes(b)
		}
		if s, ok := pdu.Value.(string); ok {
			return NewBytes([]byte(s))
		}
	case gosnmp.Counter32:
		if u, ok := toUint64(pdu.Value); ok {
			return NewCounter32(uint32(u))
		}
	case gosnmp.Gauge32, gosnmp.Uinteger32:
		if u, ok := toUint64(pdu.Value); ok {
			return NewGauge32(uint32(u))
		}
	case gosnmp.TimeTicks:
		if u, ok := toUint64(pdu.Value); ok {
			return NewTimeTicks(uint32(u))
		}
	case gosnmp.Counter64:
		if u, ok := toUint64(pdu.Value); ok {
			return NewCounter64(u)
		}
	case gosnmp.ObjectIdentifier:
		if s, ok := pdu.Value.(string); ok {
			return NewOIDValue(s)
		}
	case gosnmp.IPAddress:
		if s, ok := pdu.Value.(string); ok {
			return NewIPAddress(s)
		}
	}
	return NewNull()
}

// pduFromValue converts a typed Value into a variable binding for a write
func pduFromValue(oid string, v Value) (gosnmp.SnmpPDU, error) {
	pdu := gosnmp.SnmpPDU{Name: wireOID(oid)}
	switch v.Kind() {
	case KindInteger:
		i, _ := v.Int()
		pdu.Type = gosnmp.Integer
		pdu.Value = int(i)
	case KindBytes:
		b, _ := v.Bytes()
		pdu.Type = gosnmp.OctetString
		pdu.Value = b
	case KindText:
		pdu.Type = gosnmp.OctetString
		pdu.Value = []byte(v.String())
	case KindCounter32:
		u, _ := v.Uint()
		pdu.Type = gosnmp.Counter32
		pdu.Value = uint32(u)
	case KindGauge32:
		u, _ := v.Uint()
		pdu.Type = gosnmp.Gauge32
		pdu.Value = uint32(u)
	case KindTimeTicks:
		u, _ := v.Uint()
		pdu.Type = gosnmp.TimeTicks
		pdu.Value = uint32(u)
	case KindCounter64:
		u, _ := v.Uint()
		pdu.Type = gosnmp.Counter64
		pdu.Value = u
	case KindOID:
		pdu.Type = gosnmp.ObjectIdentifier
		pdu.Value = wireOID(v.String())
	case KindIPAddress:
		pdu.Type = gosnmp.IPAddress
		pdu.Value = v.String()
	default:
		return gosnmp.SnmpPDU{}, fmt.Errorf("unsupported value kind for set: %s", v.Kind())
	}
	return pdu, nil
}

// statusText renders a PDU error-status as its protocol name
func statusText(status gosnmp.SNMPError) string {
	switch status {
	case gosnmp.NoError:
		return "noError"
	case gosnmp.TooBig:
		return StatusTooBig
	case gosnmp.NoSuchName:
		return StatusNoSuchName
	case gosnmp.BadValue:
		return "badValue"
	case gosnmp.ReadOnly:
		return "readOnly"
	case gosnmp.GenErr:
		return StatusGenErr
	case gosnmp.NoAccess:
		return "noAccess"
	case gosnmp.WrongType:
		return "wrongType"
	case gosnmp.WrongLength:
		return "wrongLength"
	case gosnmp.WrongEncoding:
		return "wrongEncoding"
	case gosnmp.WrongValue:
		return "wrongValue"
	case gosnmp.NoCreation:
		return "noCreation"
	case gosnmp.InconsistentValue:
		return "inconsistentValue"
	case gosnmp.ResourceUnavailable:
		return "resourceUnavailable"
	case gosnmp.CommitFailed:
		return "commitFailed"
	case gosnmp.UndoFailed:
		return "undoFailed"
	case gosnmp.AuthorizationError:
		return "authorizationError"
	case gosnmp.NotWritable:
		return "notWritable"
	case gosnmp.InconsistentName:
		return "inconsistentName"
	default:
		return fmt.Sprintf("status(%d)", status)
	}
}
