// SPDX-License-Identifier: MPL-2.0

package snmp

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"
)

// scriptEngine is a scriptable RequestEngine for tests. Unset hooks fail
// the round-trip so a test only scripts the operations it exercises.
type scriptEngine struct {
	mu       sync.Mutex
	oneFn    func(oid string) Outcome
	nextFn   func(oid string) Outcome
	bulkFn   func(oid string, nonRepeaters, maxRepetitions int) []Outcome
	setFn    func(oid string, v Value) Outcome
	oneOIDs  []string
	nextOIDs []string
	bulkReps []int
	setOIDs  []string
}

func (e *scriptEngine) SendOne(_ context.Context, oid string, _ time.Duration, _ int) Outcome {
	e.mu.Lock()
	e.oneOIDs = append(e.oneOIDs, oid)
	e.mu.Unlock()
	if e.oneFn == nil {
		return TransportFailure(errors.New("unscripted get"))
	}
	return e.oneFn(oid)
}

func (e *scriptEngine) SendNext(_ context.Context, oid string, _ time.Duration, _ int) Outcome {
	e.mu.Lock()
	e.nextOIDs = append(e.nextOIDs, oid)
	e.mu.Unlock()
	if e.nextFn == nil {
		return TransportFailure(errors.New("unscripted next"))
	}
	return e.nextFn(oid)
}

func (e *scriptEngine) SendBulk(_ context.Context, oid string, nonRepeaters, maxRepetitions int, _ time.Duration, _ int) []Outcome {
	e.mu.Lock()
	e.bulkReps = append(e.bulkReps, maxRepetitions)
	e.mu.Unlock()
	if e.bulkFn == nil {
		return []Outcome{TransportFailure(errors.New("unscripted bulk"))}
	}
	return e.bulkFn(oid, nonRepeaters, maxRepetitions)
}

func (e *scriptEngine) SendSet(_ context.Context, oid string, v Value, _ time.Duration, _ int) Outcome {
	e.mu.Lock()
	e.setOIDs = append(e.setOIDs, oid)
	e.mu.Unlock()
	if e.setFn == nil {
		return TransportFailure(errors.New("unscripted set"))
	}
	return e.setFn(oid, v)
}

// newTestClient builds a client wired to the given engine with fast
// backoff so retry paths do not slow the suite down.
func newTestClient(t *testing.T, engine RequestEngine, opts ...func(*Client)) *Client {
	t.Helper()
	all := append([]func(*Client){
		WithEngine(engine),
		BackoffMinDelay(1 * time.Millisecond),
		BackoffMaxDelay(5 * time.Millisecond),
		BackoffDelayFactor(1.0),
	}, opts...)
	client, err := NewClient("192.0.2.10", all...)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

// tableRows builds n sequential rows under root for walk scripting
func tableRows(root string, n int) []Binding {
	rows := make([]Binding, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, Binding{
			OID:   fmt.Sprintf("%s.%d", root, i),
			Value: NewInteger(int64(i * 10)),
		})
	}
	return rows
}

// nextWalker scripts SendNext over a fixed row list: each cursor returns
// the first row after it, and past the last row a binding from the
// sibling subtree is returned.
func nextWalker(rows []Binding, after Binding) func(string) Outcome {
	return func(cursor string) Outcome {
		for _, row := range rows {
			if oidLess(cursor, row.OID) {
				return Success(row)
			}
		}
		return Success(after)
	}
}

// oidLess is a simplistic component-wise ordering sufficient for the
// generated test rows
func oidLess(a, b string) bool {
	if a == b {
		return false
	}
	aArcs := strings.Split(strings.TrimPrefix(a, "."), ".")
	bArcs := strings.Split(strings.TrimPrefix(b, "."), ".")
	for i := 0; i < len(aArcs) && i < len(bArcs); i++ {
		if aArcs[i] != bArcs[i] {
			var x, y int
			fmt.Sscanf(aArcs[i], "%d", &x)
			fmt.Sscanf(bArcs[i], "%d", &y)
			return x < y
		}
	}
	return len(aArcs) < len(bArcs)
}

// TestGetScalarSuffix tests that bare symbolic names address instance zero
func TestGetScalarSuffix(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantOID string
	}{
		{
			name:    "bare symbolic name gets instance zero",
			input:   "sysDescr",
			wantOID: "1.3.6.1.2.1.1.1.0",
		},
		{
			name:    "symbolic name with index is untouched",
			input:   "docsIfSigQSignalNoise.3",
			wantOID: "1.3.6.1.2.1.10.127.1.1.4.1.5.3",
		},
		{
			name:    "numeric path is untouched",
			input:   "1.3.6.1.2.1.1.1",
			wantOID: "1.3.6.1.2.1.1.1",
		},
		{
			name:    "numeric path with leading dot is normalized",
			input:   ".1.3.6.1.2.1.1.5.0",
			wantOID: "1.3.6.1.2.1.1.5.0",
		},
		{
			name:    "unknown symbolic name degrades to verbatim",
			input:   "vendorSecretKnob",
			wantOID: "vendorSecretKnob.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &scriptEngine{
				oneFn: func(oid string) Outcome {
					return Success(Binding{OID: oid, Value: NewInteger(1)})
				},
			}
			client := newTestClient(t, engine)

			res, err := client.Get(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if !res.OK {
				t.Error("expected OK result")
			}
			if len(engine.oneOIDs) != 1 || engine.oneOIDs[0] != tt.wantOID {
				t.Errorf("engine received %v, want [%s]", engine.oneOIDs, tt.wantOID)
			}
		})
	}
}

// TestGetProtocolErrorIsEmptyResult tests that "attribute not present"
// yields an empty result with a nil error
func TestGetProtocolErrorIsEmptyResult(t *testing.T) {
	statuses := []string{StatusNoSuchName, StatusNoSuchObject, StatusNoSuchInstance, StatusGenErr}

	for _, status := range statuses {
		t.Run(status, func(t *testing.T) {
			engine := &scriptEngine{
				oneFn: func(string) Outcome {
					return ProtocolFailure(status, 1)
				},
			}
			client := newTestClient(t, engine)

			res, err := client.Get(context.Background(), "sysDescr")
			if err != nil {
				t.Fatalf("protocol error must not surface as an error, got: %v", err)
			}
			if !res.OK {
				t.Error("expected OK result for protocol error")
			}
			if !res.Empty() {
				t.Errorf("expected empty result, got %d bindings", len(res.Bindings))
			}
			if len(res.Errors) != 1 || res.Errors[0].Status != status {
				t.Errorf("expected recorded status %q, got %+v", status, res.Errors)
			}
		})
	}
}

// TestGetTransportFailure tests that transport failures surface as errors
func TestGetTransportFailure(t *testing.T) {
	engine := &scriptEngine{
		oneFn: func(string) Outcome {
			return TransportFailure(errors.New("connection refused"))
		},
	}
	client := newTestClient(t, engine)

	res, err := client.Get(context.Background(), "sysDescr")
	if err == nil {
		t.Fatal("expected error for transport failure")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("error should carry the cause, got: %v", err)
	}
	if res.OK {
		t.Error("result must not be OK on transport failure")
	}
}

// TestGetInvalidIdentifier tests input validation before any round-trip
func TestGetInvalidIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace", "1.3.6 .1"},
		{"null byte", "1.3.6\x00.1"},
		{"too long", strings.Repeat("1.", MaxOIDLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &scriptEngine{}
			client := newTestClient(t, engine)

			_, err := client.Get(context.Background(), tt.input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if len(engine.oneOIDs) != 0 {
				t.Error("invalid input must not reach the engine")
			}
		})
	}
}

// TestWalkCollectsSubtree tests the basic advance-until-boundary loop
func TestWalkCollectsSubtree(t *testing.T) {
	root := "1.3.6.1.2.1.2.2.1.2"
	rows := tableRows(root, 4)
	after := Binding{OID: "1.3.6.1.2.1.2.2.1.3.1", Value: NewInteger(6)}

	engine := &scriptEngine{nextFn: nextWalker(rows, after)}
	client := newTestClient(t, engine)

	res, err := client.Walk(context.Background(), "ifDescr")
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if !res.OK {
		t.Error("expected OK result")
	}
	if !reflect.DeepEqual(res.Bindings, rows) {
		t.Errorf("got %+v, want %+v", res.Bindings, rows)
	}
	// One round-trip per row plus the boundary probe.
	if len(engine.nextOIDs) != len(rows)+1 {
		t.Errorf("got %d round-trips, want %d", len(engine.nextOIDs), len(rows)+1)
	}
}

// TestWalkBoundaryIsComponentWise tests that a sibling with a longer
// first arc does not leak into the result
func TestWalkBoundaryIsComponentWise(t *testing.T) {
	root := "1.3.6.1.2"
	inRow := Binding{OID: "1.3.6.1.2.1", Value: NewInteger(1)}
	// "1.3.6.1.22" shares a string prefix with the root but is a sibling.
	sibling := Binding{OID: "1.3.6.1.22.1", Value: NewInteger(2)}

	calls := 0
	engine := &scriptEngine{
		nextFn: func(string) Outcome {
			calls++
			if calls == 1 {
				return Success(inRow)
			}
			return Success(sibling)
		},
	}
	client := newTestClient(t, engine)

	res, err := client.Walk(context.Background(), root)
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if len(res.Bindings) != 1 || res.Bindings[0].OID != inRow.OID {
		t.Errorf("sibling subtree leaked into result: %+v", res.Bindings)
	}
}

// TestWalkEmptySubtree tests that a subtree with no rows is a normal
// empty result
func TestWalkEmptySubtree(t *testing.T) {
	engine := &scriptEngine{
		nextFn: func(string) Outcome {
			return Success(Binding{OID: "1.3.6.1.2.1.99.1", Value: NewInteger(0)})
		},
	}
	client := newTestClient(t, engine)

	res, err := client.Walk(context.Background(), "1.3.6.1.2.1.2.2.1.2")
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if !res.OK || !res.Empty() {
		t.Errorf("expected OK empty result, got OK=%v bindings=%d", res.OK, len(res.Bindings))
	}
}

// TestWalkKeepsRowsOnProtocolError tests that rows collected before a
// device error are not discarded
func TestWalkKeepsRowsOnProtocolError(t *testing.T) {
	root := "1.3.6.1.2.1.2.2.1.2"
	rows := tableRows(root, 2)

	calls := 0
	engine := &scriptEngine{
		nextFn: func(string) Outcome {
			calls++
			if calls <= len(rows) {
				return Success(rows[calls-1])
			}
			return ProtocolFailure(StatusGenErr, 1)
		},
	}
	client := newTestClient(t, engine)

	res, err := client.Walk(context.Background(), root)
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if !res.OK {
		t.Error("expected OK result")
	}
	if len(res.Bindings) != len(rows) {
		t.Errorf("got %d bindings, want %d", len(res.Bindings), len(rows))
	}
	if len(res.Errors) != 1 || res.Errors[0].Status != StatusGenErr {
		t.Errorf("expected recorded genErr, got %+v", res.Errors)
	}
}

// TestWalkRetriesTransportFailure tests that one bad hop is retried and
// the walk continues
func TestWalkRetriesTransportFailure(t *testing.T) {
	root := "1.3.6.1.2.1.2.2.1.2"
	rows := tableRows(root, 2)
	after := Binding{OID: "1.3.6.1.2.1.2.2.1.3.1", Value: NewInteger(0)}

	failed := false
	inner := nextWalker(rows, after)
	engine := &scriptEngine{
		nextFn: func(cursor string) Outcome {
			// Fail the second step once, then recover.
			if cursor == rows[0].OID && !failed {
				failed = true
				return TransportFailure(errors.New("timeout"))
			}
			return inner(cursor)
		},
	}
	client := newTestClient(t, engine)

	res, err := client.Walk(context.Background(), root)
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if len(res.Bindings) != len(rows) {
		t.Errorf("got %d bindings after retry, want %d", len(res.Bindings), len(rows))
	}
	if len(res.Errors) != 1 {
		t.Errorf("the failed hop should be recorded, got %+v", res.Errors)
	}
}

// TestWalkEndsAfterRetryBudget tests that a persistently failing step
// ends the walk with the accumulated rows instead of looping forever
func TestWalkEndsAfterRetryBudget(t *testing.T) {
	engine := &scriptEngine{
		nextFn: func(string) Outcome {
			return TransportFailure(errors.New("host unreachable"))
		},
	}
	client := newTestClient(t, engine, MaxRetries(1))

	res, err := client.Walk(context.Background(), "1.3.6.1.2.1.2.2.1.2")
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if !res.OK {
		t.Error("expected OK result with accumulated rows")
	}
	// Initial attempt plus one retry.
	if len(engine.nextOIDs) != 2 {
		t.Errorf("got %d attempts, want 2", len(engine.nextOIDs))
	}
	if len(res.Errors) != 2 {
		t.Errorf("expected both failures recorded, got %+v", res.Errors)
	}
}

// TestWalkStuckCursor tests that a broken agent repeating the same
// binding cannot produce an infinite walk
func TestWalkStuckCursor(t *testing.T) {
	row := Binding{OID: "1.3.6.1.2.1.2.2.1.2.1", Value: NewInteger(1)}
	engine := &scriptEngine{
		nextFn: func(string) Outcome {
			return Success(row)
		},
	}
	client := newTestClient(t, engine)

	res, err := client.Walk(context.Background(), "1.3.6.1.2.1.2.2.1.2")
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if len(res.Bindings) != 1 {
		t.Errorf("got %d bindings, want 1", len(res.Bindings))
	}
}

// TestAttemptLadder tests the descending repetition sequence
func TestAttemptLadder(t *testing.T) {
	tests := []struct {
		max  int
		want []int
	}{
		{25, []int{25, 10, 5, 1}},
		{10, []int{10, 5, 1}},
		{7, []int{7, 5, 1}},
		{5, []int{5, 1}},
		{3, []int{3, 1}},
		{1, []int{1}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("max_%d", tt.max), func(t *testing.T) {
			got := attemptLadder(tt.max)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("attemptLadder(%d) = %v, want %v", tt.max, got, tt.want)
			}
		})
	}
}

// TestBulkWalkFirstAttemptSucceeds tests the happy path: one repetition
// count, pages accumulated until the boundary
func TestBulkWalkFirstAttemptSucceeds(t *testing.T) {
	root := "1.3.6.1.2.1.10.127.1.1.4.1.5"
	rows := tableRows(root, 6)
	after := Binding{OID: "1.3.6.1.2.1.10.127.1.1.4.1.6.1", Value: NewInteger(0)}

	calls := 0
	engine := &scriptEngine{
		bulkFn: func(_ string, _, _ int) []Outcome {
			calls++
			switch calls {
			case 1:
				return []Outcome{Success(rows[:3]...)}
			case 2:
				return []Outcome{Success(append(append([]Binding{}, rows[3:]...), after)...)}
			default:
				return []Outcome{Success()}
			}
		},
	}
	client := newTestClient(t, engine)

	res, err := client.BulkWalk(context.Background(), "docsIfSigQSignalNoise")
	if err != nil {
		t.Fatalf("BulkWalk failed: %v", err)
	}
	if !reflect.DeepEqual(res.Bindings, rows) {
		t.Errorf("got %+v, want %+v", res.Bindings, rows)
	}
	if len(engine.bulkReps) != 2 {
		t.Errorf("got %d bulk round-trips, want 2", len(engine.bulkReps))
	}
	if engine.bulkReps[0] != DefaultMaxRepetitions {
		t.Errorf("first attempt used %d repetitions, want %d", engine.bulkReps[0], DefaultMaxRepetitions)
	}
}

// TestBulkWalkShrinksOnTooBig tests the adaptive descent: tooBig answers
// push the walk down the attempt ladder until the device cooperates
func TestBulkWalkShrinksOnTooBig(t *testing.T) {
	root := "1.3.6.1.2.1.10.127.1.1.4.1.5"
	rows := tableRows(root, 2)
	after := Binding{OID: "1.3.6.1.2.1.10.127.1.1.4.1.6.1", Value: NewInteger(0)}

	engine := &scriptEngine{}
	engine.bulkFn = func(_ string, _, maxRepetitions int) []Outcome {
		if maxRepetitions > 5 {
			return []Outcome{ProtocolFailure(StatusTooBig, 0)}
		}
		return []Outcome{Success(append(append([]Binding{}, rows...), after)...)}
	}
	client := newTestClient(t, engine)

	res, err := client.BulkWalk(context.Background(), root)
	if err != nil {
		t.Fatalf("BulkWalk failed: %v", err)
	}
	if !reflect.DeepEqual(res.Bindings, rows) {
		t.Errorf("got %+v, want %+v", res.Bindings, rows)
	}
	wantReps := []int{25, 10, 5}
	if !reflect.DeepEqual(engine.bulkReps, wantReps) {
		t.Errorf("attempt sequence %v, want %v", engine.bulkReps, wantReps)
	}
}

// TestBulkWalkFallsBackToSequential tests that an uncooperative device
// still gets walked one row at a time
func TestBulkWalkFallsBackToSequential(t *testing.T) {
	root := "1.3.6.1.2.1.10.127.1.1.4.1.5"
	rows := tableRows(root, 3)
	after := Binding{OID: "1.3.6.1.2.1.10.127.1.1.4.1.6.1", Value: NewInteger(0)}

	engine := &scriptEngine{
		bulkFn: func(_ string, _, _ int) []Outcome {
			return []Outcome{ProtocolFailure(StatusTooBig, 0)}
		},
		nextFn: nextWalker(rows, after),
	}
	client := newTestClient(t, engine)

	res, err := client.BulkWalk(context.Background(), root)
	if err != nil {
		t.Fatalf("BulkWalk failed: %v", err)
	}
	if !reflect.DeepEqual(res.Bindings, rows) {
		t.Errorf("got %+v, want %+v", res.Bindings, rows)
	}
	wantReps := []int{25, 10, 5, 1}
	if !reflect.DeepEqual(engine.bulkReps, wantReps) {
		t.Errorf("attempt sequence %v, want %v", engine.bulkReps, wantReps)
	}
	if len(engine.nextOIDs) == 0 {
		t.Error("sequential fallback never ran")
	}
	// Every abandoned attempt stays on the record.
	if len(res.Errors) != 4 {
		t.Errorf("expected 4 recorded tooBig errors, got %+v", res.Errors)
	}
}

// TestBulkWalkRequestModifier tests that MaxRepetitions seeds the ladder
func TestBulkWalkRequestModifier(t *testing.T) {
	root := "1.3.6.1.2.1.2.2.1.2"
	rows := tableRows(root, 2)
	after := Binding{OID: "1.3.6.1.2.1.2.2.1.3.1", Value: NewInteger(0)}

	engine := &scriptEngine{
		bulkFn: func(_ string, _, maxRepetitions int) []Outcome {
			if maxRepetitions > 5 {
				return []Outcome{ProtocolFailure(StatusTooBig, 0)}
			}
			return []Outcome{Success(append(append([]Binding{}, rows...), after)...)}
		},
	}
	client := newTestClient(t, engine)

	res, err := client.BulkWalk(context.Background(), root,
		MaxRepetitions(7))
	if err != nil {
		t.Fatalf("BulkWalk failed: %v", err)
	}
	if !reflect.DeepEqual(res.Bindings, rows) {
		t.Errorf("got %+v, want %+v", res.Bindings, rows)
	}
	wantReps := []int{7, 5}
	if !reflect.DeepEqual(engine.bulkReps, wantReps) {
		t.Errorf("attempt sequence %v, want %v", engine.bulkReps, wantReps)
	}
}

// TestBulkWalkEmptyAttemptsFallBack tests that a device answering every
// bulk request with an empty page still gets walked sequentially
func TestBulkWalkEmptyAttemptsFallBack(t *testing.T) {
	root := "1.3.6.1.2.1.10.127.1.1.4.1.5"
	rows := tableRows(root, 2)
	after := Binding{OID: "1.3.6.1.2.1.10.127.1.1.4.1.6.1", Value: NewInteger(0)}

	engine := &scriptEngine{
		bulkFn: func(_ string, _, _ int) []Outcome {
			return []Outcome{Success()}
		},
		nextFn: nextWalker(rows, after),
	}
	client := newTestClient(t, engine)

	res, err := client.BulkWalk(context.Background(), root)
	if err != nil {
		t.Fatalf("BulkWalk failed: %v", err)
	}
	wantReps := []int{25, 10, 5, 1}
	if !reflect.DeepEqual(engine.bulkReps, wantReps) {
		t.Errorf("attempt sequence %v, want %v", engine.bulkReps, wantReps)
	}
	if len(engine.nextOIDs) == 0 {
		t.Fatal("sequential fallback never ran")
	}
	if !reflect.DeepEqual(res.Bindings, rows) {
		t.Errorf("got %+v, want the sequential walk's %+v", res.Bindings, rows)
	}
	if !res.OK {
		t.Error("expected OK result from the fallback walk")
	}
}

// TestBulkWalkRejectsBadParameters tests bulk parameter validation
func TestBulkWalkRejectsBadParameters(t *testing.T) {
	engine := &scriptEngine{}
	client := newTestClient(t, engine)

	if _, err := client.BulkWalk(context.Background(), "ifDescr",
		func(r *Req) { r.MaxRepetitions = 0 }); err == nil {
		t.Error("expected error for zero repetitions")
	}
	if _, err := client.BulkWalk(context.Background(), "ifDescr",
		func(r *Req) { r.NonRepeaters = -1 }); err == nil {
		t.Error("expected error for negative non-repeaters")
	}
	if _, err := client.BulkWalk(context.Background(), "ifDescr",
		func(r *Req) { r.NonRepeaters = 256 }); err == nil {
		t.Error("expected error for non-repeaters beyond the wire range")
	}
	if len(engine.bulkReps) != 0 {
		t.Error("invalid parameters must not reach the engine")
	}
}

// TestSetEchoesDeviceResponse tests the happy-path write
func TestSetEchoesDeviceResponse(t *testing.T) {
	var gotValue Value
	engine := &scriptEngine{
		setFn: func(oid string, v Value) Outcome {
			gotValue = v
			return Success(Binding{OID: oid, Value: v})
		},
	}
	client := newTestClient(t, engine)

	res, err := client.Set(context.Background(), "sysContact.0", "noc@example.com", KindText)
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if !res.OK {
		t.Error("expected acknowledged write")
	}
	if gotValue.Kind() != KindText || gotValue.String() != "noc@example.com" {
		t.Errorf("engine received %v %q", gotValue.Kind(), gotValue.String())
	}
	if len(res.Bindings) != 1 || res.Bindings[0].Value.String() != "noc@example.com" {
		t.Errorf("echo missing from result: %+v", res.Bindings)
	}
	if len(engine.setOIDs) != 1 || engine.setOIDs[0] != "1.3.6.1.2.1.1.4.0" {
		t.Errorf("engine received %v", engine.setOIDs)
	}
}

// TestSetBytesPreservesOctets tests that binary write payloads reach the
// engine octet for octet
func TestSetBytesPreservesOctets(t *testing.T) {
	payload := []byte{0xff, 0x00, 0xfe, 0x01}

	var gotValue Value
	engine := &scriptEngine{
		setFn: func(oid string, v Value) Outcome {
			gotValue = v
			return Success(Binding{OID: oid, Value: v})
		},
	}
	client := newTestClient(t, engine)

	_, err := client.Set(context.Background(), "docsPnmCmOfdmChEstCoefData.196", payload, KindBytes)
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, ok := gotValue.Bytes()
	if !ok || !reflect.DeepEqual(got, payload) {
		t.Errorf("engine received % X, want % X", got, payload)
	}
}

// TestSetTypeMismatchFailsBeforeIO tests pre-flight construction failure
func TestSetTypeMismatchFailsBeforeIO(t *testing.T) {
	engine := &scriptEngine{}
	client := newTestClient(t, engine)

	_, err := client.Set(context.Background(), "sysContact.0", 3.14, KindInteger)
	if err == nil {
		t.Fatal("expected construction error for incompatible value")
	}
	if len(engine.setOIDs) != 0 {
		t.Error("failed construction must not reach the engine")
	}
}

// TestSetWireFailureIsReportedNotReturned tests that failures past the
// construction point surface through the result, never as an error
func TestSetWireFailureIsReportedNotReturned(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
	}{
		{"protocol error", ProtocolFailure("notWritable", 1)},
		{"transport failure", TransportFailure(errors.New("timeout"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &scriptEngine{
				setFn: func(string, Value) Outcome { return tt.outcome },
			}
			client := newTestClient(t, engine)

			res, err := client.Set(context.Background(), "sysContact.0", "x", KindText)
			if err != nil {
				t.Fatalf("wire failure must not surface as an error, got: %v", err)
			}
			if res.OK {
				t.Error("result must not be OK")
			}
			if len(res.Errors) != 1 {
				t.Errorf("expected one recorded error, got %+v", res.Errors)
			}
		})
	}
}

// TestOperationsHonorCancelledContext tests the pre-flight context check
func TestOperationsHonorCancelledContext(t *testing.T) {
	engine := &scriptEngine{}
	client := newTestClient(t, engine)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Get(ctx, "sysDescr"); !errors.Is(err, context.Canceled) {
		t.Errorf("Get: got %v, want context.Canceled", err)
	}
	if _, err := client.Walk(ctx, "ifDescr"); !errors.Is(err, context.Canceled) {
		t.Errorf("Walk: got %v, want context.Canceled", err)
	}
	if _, err := client.BulkWalk(ctx, "ifDescr"); !errors.Is(err, context.Canceled) {
		t.Errorf("BulkWalk: got %v, want context.Canceled", err)
	}
	if _, err := client.Set(ctx, "sysContact.0", "x", KindText); !errors.Is(err, context.Canceled) {
		t.Errorf("Set: got %v, want context.Canceled", err)
	}
	if len(engine.oneOIDs)+len(engine.nextOIDs)+len(engine.bulkReps)+len(engine.setOIDs) != 0 {
		t.Error("cancelled context must not reach the engine")
	}
}
