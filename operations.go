// SPDX-License-Identifier: MPL-2.0

package snmp

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
)

// resolveGetTarget resolves a fetch identifier, appending the canonical
// instance-zero suffix when the caller addressed a scalar by bare name.
// Numeric input always passes through untouched.
func resolveGetTarget(input string) string {
	if IsNumericOID(input) {
		return strings.TrimPrefix(input, ".")
	}
	m := symbolicOIDPattern.FindStringSubmatch(input)
	if m == nil {
		return input
	}
	name, suffix := m[1], m[2]
	base := name
	if resolved, ok := LookupMIBName(name); ok {
		base = resolved
	}
	if suffix == "" {
		return base + ".0"
	}
	return base + suffix
}

// Get performs a single-value fetch
//
// The identifier is resolved (symbolic names without an instance suffix
// address a scalar and get ".0" appended), one round-trip is issued, and
// the outcome is classified:
//
//   - Success: GetRes carries the returned bindings.
//   - Protocol error: logged and an EMPTY result is returned with a nil
//     error. "Attribute absent" is a first-class, expected outcome when
//     probing optional device capabilities; callers that need to
//     distinguish inspect GetRes.Errors.
//   - Transport failure: the error propagates to the caller.
//
// Example:
//
//	res, err := client.Get(ctx, "docsIfSigQSignalNoise.3")
//	if err != nil {
//	    log.Fatal(err) // engine unreachable
//	}
//	if res.Empty() {
//	    // attribute not present on this device
//	}
func (c *Client) Get(ctx context.Context, oid string, mods ...func(*Req)) (GetRes, error) {
	if err := validateIdentifier(oid); err != nil {
		return GetRes{
			OK:     false,
			Errors: []ErrorModel{{Message: err.Error()}},
		}, fmt.Errorf("get: %w", err)
	}

	req := c.newReq()
	for _, mod := range mods {
		mod(req)
	}

	if err := checkContextCancellation(ctx); err != nil {
		return GetRes{
			OK:     false,
			Errors: []ErrorModel{{Message: err.Error()}},
		}, err
	}

	if err := c.ensureConnected(ctx); err != nil {
		return GetRes{
			OK:     false,
			Errors: []ErrorModel{{Message: err.Error()}},
		}, fmt.Errorf("get: connection failed: %w", err)
	}

	target := resolveGetTarget(oid)
	c.logger.Debug("snmp get request",
		"target", c.Target,
		"oid", target)

	out := c.engine.SendOne(ctx, target, req.Timeout, req.Retries)
	switch out.Kind {
	case OutcomeTransportFailure:
		c.logger.Error("snmp get failed",
			"target", c.Target,
			"oid", target,
			"error", out.Cause.Error())
		return GetRes{
			OK:     false,
			Errors: []ErrorModel{out.errorModel()},
		}, fmt.Errorf("get: request failed: %w", out.Cause)
	case OutcomeProtocolError:
		c.logProtocolError("get", out, req.SuppressBenign)
		return GetRes{
			Timestamp: time.Now().UnixNano(),
			OK:        true,
			Errors:    []ErrorModel{out.errorModel()},
		}, nil
	}

	c.logger.Debug("snmp get response",
		"target", c.Target,
		"oid", target,
		"bindings", len(out.Bindings))

	return GetRes{
		Bindings:  out.Bindings,
		Timestamp: time.Now().UnixNano(),
		OK:        true,
	}, nil
}

// walkSession is the mutable state of one walk, threaded explicitly
// through the step loop so that sessions are trivially testable and
// re-entrant. It is created per call and discarded on return; sharing one
// mid-walk across goroutines is not supported.
type walkSession struct {
	// root is the subtree being walked
	root string

	// cursor is the identifier the next advance step starts from
	cursor string

	// results accumulates in-subtree bindings in transport order
	results []Binding

	// failures counts consecutive transport failures at the current cursor
	failures int

	// errors records non-fatal failures observed along the way
	errors []ErrorModel
}

// Walk performs a sequential subtree walk
//
// Starting at root, the cursor advances one step per round-trip. Each
// returned binding is appended and becomes the new cursor until a binding
// falls outside the requested subtree or a round-trip comes back empty.
// The protocol has no end-of-table response, so subtree containment is
// the only termination signal; the boundary check is an exact
// component-wise prefix comparison.
//
// A transport failure at one step is logged and the step retried after a
// backoff delay until the session retry budget is spent, then the walk
// ends with whatever accumulated; the caller never sees an error from one
// bad hop. An empty result means "no rows", not a failure.
//
// Example:
//
//	res, err := client.Walk(ctx, "docsIfDownChannelFrequency")
//	for _, b := range res.Bindings {
//	    fmt.Println(b.OID, b.Value.String())
//	}
func (c *Client) Walk(ctx context.Context, root string, mods ...func(*Req)) (WalkRes, error) {
	if err := validateIdentifier(root); err != nil {
		return WalkRes{
			OK:     false,
			Errors: []ErrorModel{{Message: err.Error()}},
		}, fmt.Errorf("walk: %w", err)
	}

	req := c.newReq()
	for _, mod := range mods {
		mod(req)
	}

	if err := checkContextCancellation(ctx); err != nil {
		return WalkRes{
			OK:     false,
			Errors: []ErrorModel{{Message: err.Error()}},
		}, err
	}

	if err := c.ensureConnected(ctx); err != nil {
		return WalkRes{
			OK:     false,
			Errors: []ErrorModel{{Message: err.Error()}},
		}, fmt.Errorf("walk: connection failed: %w", err)
	}

	rootOID := Resolve(root)
	s := walkSession{root: rootOID, cursor: rootOID}
	return c.runWalk(ctx, &s, req), nil
}

// runWalk drives the START/STEP/DONE machine of a sequential walk
func (c *Client) runWalk(ctx context.Context, s *walkSession, req *Req) WalkRes {
	c.logger.Debug("snmp walk start",
		"target", c.Target,
		"root", s.root)

steps:
	for {
		if err := checkContextCancellation(ctx); err != nil {
			s.errors = append(s.errors, ErrorModel{Message: err.Error()})
			break steps
		}

		out := c.engine.SendNext(ctx, s.cursor, req.Timeout, req.Retries)
		switch out.Kind {
		case OutcomeTransportFailure:
			s.failures++
			s.errors = append(s.errors, out.errorModel())
			if s.failures > req.Retries {
				c.logger.Warn("walk ending after repeated transport failures",
					"target", c.Target,
					"cursor", s.cursor,
					"failures", s.failures,
					"error", out.Cause.Error())
				break steps
			}
			backoff := c.Backoff(s.failures - 1)
			c.logger.Warn("transport failure during walk, retrying step",
				"target", c.Target,
				"cursor", s.cursor,
				"attempt", s.failures,
				"backoff", backoff,
				"error", out.Cause.Error())
			select {
			case <-time.After(backoff):
				continue
			case <-ctx.Done():
				s.errors = append(s.errors, ErrorModel{Message: ctx.Err().Error()})
				break steps
			}

		case OutcomeProtocolError:
			c.logProtocolError("walk", out, req.SuppressBenign)
			s.errors = append(s.errors, out.errorModel())
			break steps

		case OutcomeSuccess:
			s.failures = 0
			if len(out.Bindings) == 0 {
				break steps
			}
			for _, b := range out.Bindings {
				if !HasOIDPrefix(b.OID, s.root) {
					// First out-of-subtree binding is the boundary; it is
					// not included.
					break steps
				}
				if b.OID == s.cursor {
					c.logger.Warn("walk cursor did not advance, ending walk",
						"target", c.Target,
						"cursor", s.cursor)
					break steps
				}
				s.results = append(s.results, b)
				s.cursor = b.OID
			}
		}
	}

	c.logger.Debug("snmp walk complete",
		"target", c.Target,
		"root", s.root,
		"rows", len(s.results))

	return WalkRes{
		Bindings:  s.results,
		Timestamp: time.Now().UnixNano(),
		OK:        true,
		Errors:    s.errors,
	}
}

// attemptLadder builds the descending, de-duplicated bulk attempt
// sequence from the caller's requested maximum
//
// Candidates are [max, 10, 5, 1]; values above the maximum, duplicates
// and non-positive values are dropped. The result bounds a bulk walk to
// at most four attempts regardless of the initial value.
func attemptLadder(maxRepetitions int) []int {
	candidates := make([]int, 0, len(bulkAttemptLadder)+1)
	candidates = append(candidates, maxRepetitions)
	candidates = append(candidates, bulkAttemptLadder...)

	seen := make(map[int]bool, len(candidates))
	ladder := make([]int, 0, len(candidates))
	for _, v := range candidates {
		if v <= 0 || v > maxRepetitions || seen[v] {
			continue
		}
		seen[v] = true
		ladder = append(ladder, v)
	}
	return ladder
}

// bulkRoundResult is the outcome of one attempt value's bulk round
type bulkRoundResult struct {
	// results holds in-subtree bindings accumulated during the round
	results []Binding

	// errors records failures observed during the round
	errors []ErrorModel

	// retrySmaller marks the round as abandoned: the next smaller
	// repetition count should be tried and results discarded
	retrySmaller bool
}

// BulkWalk performs a bulk subtree walk with adaptive pagination
//
// Each round-trip requests up to MaxRepetitions bindings past the
// NonRepeaters prefix. When the device reports a size-limit failure the
// same cursor is retried with the next value of a descending attempt
// sequence built from [max, 10, 5, 1]; the first attempt that produces
// rows wins. When every attempt is abandoned or comes back empty the
// walk falls back to the sequential Walk on the same root, so callers
// always get the best answer the device can deliver.
//
// Benign protocol errors ("attribute not present") are logged at debug
// severity by default; pass snmp.SuppressBenign(false) to surface them at
// error severity.
//
// Example:
//
//	res, err := client.BulkWalk(ctx, "docsIfSigQSignalNoise",
//	    snmp.MaxRepetitions(25))
//	if res.Empty() {
//	    // subtree has no rows on this device
//	}
func (c *Client) BulkWalk(ctx context.Context, root string, mods ...func(*Req)) (WalkRes, error) {
	if err := validateIdentifier(root); err != nil {
		return WalkRes{
			OK:     false,
			Errors: []ErrorModel{{Message: err.Error()}},
		}, fmt.Errorf("bulk walk: %w", err)
	}

	req := c.newReq()
	for _, mod := range mods {
		mod(req)
	}
	if req.MaxRepetitions < 1 {
		return WalkRes{
			OK:     false,
			Errors: []ErrorModel{{Message: "max repetitions must be positive"}},
		}, fmt.Errorf("bulk walk: max repetitions must be positive, got %d", req.MaxRepetitions)
	}
	if req.NonRepeaters < 0 || req.NonRepeaters > math.MaxUint8 {
		return WalkRes{
			OK:     false,
			Errors: []ErrorModel{{Message: "non repeaters must be between 0 and 255"}},
		}, fmt.Errorf("bulk walk: non repeaters must be between 0 and 255, got %d", req.NonRepeaters)
	}

	if err := checkContextCancellation(ctx); err != nil {
		return WalkRes{
			OK:     false,
			Errors: []ErrorModel{{Message: err.Error()}},
		}, err
	}

	if err := c.ensureConnected(ctx); err != nil {
		return WalkRes{
			OK:     false,
			Errors: []ErrorModel{{Message: err.Error()}},
		}, fmt.Errorf("bulk walk: connection failed: %w", err)
	}

	rootOID := Resolve(root)
	ladder := attemptLadder(req.MaxRepetitions)

	c.logger.Debug("snmp bulk walk start",
		"target", c.Target,
		"root", rootOID,
		"attempts", fmt.Sprint(ladder))

	var errs []ErrorModel
	for _, repetitions := range ladder {
		round := c.bulkRound(ctx, rootOID, repetitions, req)
		errs = append(errs, round.errors...)
		if round.retrySmaller || len(round.results) == 0 {
			continue
		}
		c.logger.Debug("snmp bulk walk complete",
			"target", c.Target,
			"root", rootOID,
			"repetitions", repetitions,
			"rows", len(round.results))
		return WalkRes{
			Bindings:  round.results,
			Timestamp: time.Now().UnixNano(),
			OK:        true,
			Errors:    errs,
		}, nil
	}

	c.logger.Debug("bulk walk attempts produced no rows, falling back to sequential walk",
		"target", c.Target,
		"root", rootOID)

	s := walkSession{root: rootOID, cursor: rootOID}
	res := c.runWalk(ctx, &s, req)
	res.Errors = append(errs, res.Errors...)
	return res, nil
}

// bulkRound runs one attempt value's bulk round: repeated bulk
// round-trips at a fixed repetition count, accumulating in-subtree
// bindings until the boundary is crossed, the device reports an error, or
// a round-trip comes back empty.
func (c *Client) bulkRound(ctx context.Context, root string, repetitions int, req *Req) bulkRoundResult {
	var round bulkRoundResult
	cursor := root

pages:
	for {
		if err := checkContextCancellation(ctx); err != nil {
			round.errors = append(round.errors, ErrorModel{Message: err.Error()})
			break pages
		}

		outcomes := c.engine.SendBulk(ctx, cursor, req.NonRepeaters, repetitions, req.Timeout, req.Retries)
		if len(outcomes) == 0 {
			break pages
		}

		prev := cursor
		for _, out := range outcomes {
			switch out.Kind {
			case OutcomeTransportFailure:
				// A hard transport failure aborts this attempt outright;
				// the next smaller repetition count is tried instead.
				c.logger.Warn("transport failure during bulk round, abandoning attempt",
					"target", c.Target,
					"cursor", cursor,
					"repetitions", repetitions,
					"error", out.Cause.Error())
				round.errors = append(round.errors, out.errorModel())
				round.results = nil
				round.retrySmaller = true
				break pages

			case OutcomeProtocolError:
				if out.IsSizeLimit() {
					c.logger.Debug("response exceeded size limit, retrying with smaller repetition count",
						"target", c.Target,
						"cursor", cursor,
						"repetitions", repetitions)
					round.errors = append(round.errors, out.errorModel())
					round.results = nil
					round.retrySmaller = true
					break pages
				}
				c.logProtocolError("bulk_walk", out, req.SuppressBenign)
				round.errors = append(round.errors, out.errorModel())
				break pages

			case OutcomeSuccess:
				if len(out.Bindings) == 0 {
					break pages
				}
				for _, b := range out.Bindings {
					if !HasOIDPrefix(b.OID, root) {
						// Boundary crossed: the round is complete with
						// whatever was collected.
						break pages
					}
					round.results = append(round.results, b)
					cursor = b.OID
				}
			}
		}

		if cursor == prev {
			// The agent did not advance the cursor; stop rather than
			// re-request the same page forever.
			break pages
		}
	}

	return round
}

// Set performs a single-value write with an explicit target wire type
//
// There is no default type: the caller supplies the kind and an
// incompatible value fails before any network I/O with a non-nil error.
// Once the request is on the wire, protocol and transport failures are
// logged and reported through SetRes (OK false, Errors populated) with a
// nil error, so that callers can implement their own confirm/verify/retry
// policy. On success SetRes carries the bindings echoed by the device;
// callers typically read back and compare the echoed value against the
// intended one as an application-level acknowledgment.
//
// Example:
//
//	res, err := client.Set(ctx, "docsPnmCmOfdmChEstCoefData.196",
//	    []byte{0x01, 0x00}, snmp.KindBytes)
//	if err != nil {
//	    log.Fatal(err) // value incompatible with the requested type
//	}
//	if res.OK && snmp.ExtractText(res.Bindings)[0] == "\x01\x00" {
//	    // device acknowledged the write
//	}
func (c *Client) Set(ctx context.Context, oid string, value any, kind ValueKind, mods ...func(*Req)) (SetRes, error) {
	if err := validateIdentifier(oid); err != nil {
		return SetRes{
			OK:     false,
			Errors: []ErrorModel{{Message: err.Error()}},
		}, fmt.Errorf("set: %w", err)
	}

	v, err := NewTypedValue(value, kind)
	if err != nil {
		return SetRes{
			OK:     false,
			Errors: []ErrorModel{{Message: err.Error()}},
		}, fmt.Errorf("set: %w", err)
	}

	req := c.newReq()
	for _, mod := range mods {
		mod(req)
	}

	if err := checkContextCancellation(ctx); err != nil {
		return SetRes{
			OK:     false,
			Errors: []ErrorModel{{Message: err.Error()}},
		}, err
	}

	if err := c.ensureConnected(ctx); err != nil {
		c.logger.Error("snmp set connection failed",
			"target", c.Target,
			"error", err.Error())
		return SetRes{
			OK:     false,
			Errors: []ErrorModel{{Message: err.Error()}},
		}, nil
	}

	target := Resolve(oid)
	c.logger.Debug("snmp set request",
		"target", c.Target,
		"oid", target,
		"kind", kind)

	out := c.engine.SendSet(ctx, target, v, req.Timeout, req.Retries)
	switch out.Kind {
	case OutcomeProtocolError:
		c.logProtocolError("set", out, req.SuppressBenign)
		return SetRes{
			Timestamp: time.Now().UnixNano(),
			OK:        false,
			Errors:    []ErrorModel{out.errorModel()},
		}, nil
	case OutcomeTransportFailure:
		c.logger.Error("snmp set failed",
			"target", c.Target,
			"oid", target,
			"error", out.Cause.Error())
		return SetRes{
			Timestamp: time.Now().UnixNano(),
			OK:        false,
			Errors:    []ErrorModel{out.errorModel()},
		}, nil
	}

	c.logger.Debug("snmp set response",
		"target", c.Target,
		"oid", target,
		"bindings", len(out.Bindings))

	return SetRes{
		Bindings:  out.Bindings,
		Timestamp: time.Now().UnixNano(),
		OK:        true,
	}, nil
}

// logProtocolError logs a protocol error at the severity the suppression
// flag selects for benign conditions
func (c *Client) logProtocolError(op string, out Outcome, suppress bool) {
	if out.IsBenign() && suppress {
		c.logger.Debug("benign protocol error",
			"operation", op,
			"target", c.Target,
			"status", out.Status,
			"index", out.Index)
		return
	}
	c.logger.Error("protocol error",
		"operation", op,
		"target", c.Target,
		"status", out.Status,
		"index", out.Index)
}
