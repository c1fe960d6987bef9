// SPDX-License-Identifier: MPL-2.0

package snmp

import "time"

// Req carries per-request parameters for a single operation
//
// Operations initialize a Req from the client's defaults and then apply
// the caller's functional modifiers, so explicit arguments always
// override instance defaults.
//
// Example:
//
//	res, err := client.BulkWalk(ctx, "docsIfSigQSignalNoise",
//	    snmp.Timeout(2*time.Second),
//	    snmp.MaxRepetitions(10))
type Req struct {
	// Timeout bounds one round-trip for this operation
	Timeout time.Duration

	// Retries is the per-round-trip retry budget for this operation
	Retries int

	// NonRepeaters is the non-repeated prefix length for bulk requests
	NonRepeaters int

	// MaxRepetitions is the requested repetition count for bulk requests
	MaxRepetitions int

	// SuppressBenign downgrades "attribute not present" protocol errors
	// to debug severity
	SuppressBenign bool
}

// newReq builds a Req seeded from the client's instance defaults
func (c *Client) newReq() *Req {
	return &Req{
		Timeout:        c.Timeout,
		Retries:        c.Retries,
		NonRepeaters:   DefaultNonRepeaters,
		MaxRepetitions: c.MaxRepetitions,
		SuppressBenign: c.suppressBenign,
	}
}
