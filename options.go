// SPDX-License-Identifier: MPL-2.0

package snmp

import "time"

// Client configuration options using the functional options pattern

// Community sets the read community string
//
// The community is the session credential; it is stored unexported and is
// never written to logs.
func Community(community string) func(*Client) {
	return func(c *Client) {
		c.community = community
	}
}

// WriteCommunity sets the community string used for Set operations
//
// When unset, Set operations use the read community.
func WriteCommunity(community string) func(*Client) {
	return func(c *Client) {
		c.writeCommunity = community
	}
}

// Port sets the agent port (default: 161)
func Port(port int) func(*Client) {
	return func(c *Client) {
		c.Port = port
	}
}

// ProtocolVersion sets the protocol version (default: v2c)
//
// v3 is a configuration stub: selecting it fails client validation.
func ProtocolVersion(version Version) func(*Client) {
	return func(c *Client) {
		c.Version = version
	}
}

// OperationTimeout sets the per-round-trip timeout (default: 5s)
//
// The timeout bounds one round-trip, not a whole walk: a walk over a
// large table suspends once per round-trip with this budget each time.
func OperationTimeout(duration time.Duration) func(*Client) {
	return func(c *Client) {
		c.Timeout = duration
	}
}

// MaxRetries sets the per-round-trip retry budget (default: 2)
func MaxRetries(retries int) func(*Client) {
	return func(c *Client) {
		c.Retries = retries
	}
}

// BulkMaxRepetitions sets the default repetition count for bulk walks
// (default: 25)
func BulkMaxRepetitions(repetitions int) func(*Client) {
	return func(c *Client) {
		c.MaxRepetitions = repetitions
	}
}

// SuppressBenignErrors controls whether "attribute not present" protocol
// errors are logged at debug instead of error severity (default: true)
//
// Probing optional device capabilities makes these errors an expected,
// frequent outcome; at error severity they would flood the logs.
func SuppressBenignErrors(suppress bool) func(*Client) {
	return func(c *Client) {
		c.suppressBenign = suppress
	}
}

// BackoffMinDelay sets the minimum walk-step retry delay (default: 500ms)
func BackoffMinDelay(duration time.Duration) func(*Client) {
	return func(c *Client) {
		c.BackoffMinDelay = duration
	}
}

// BackoffMaxDelay sets the maximum walk-step retry delay (default: 10s)
func BackoffMaxDelay(duration time.Duration) func(*Client) {
	return func(c *Client) {
		c.BackoffMaxDelay = duration
	}
}

// BackoffDelayFactor sets the backoff multiplication factor (default: 2.0)
func BackoffDelayFactor(factor float64) func(*Client) {
	return func(c *Client) {
		c.BackoffDelayFactor = factor
	}
}

// WithLogger configures a custom logger for the client
//
// By default the client uses NoOpLogger, which discards all messages.
//
// Example:
//
//	logger := snmp.NewDefaultLogger(snmp.LogLevelInfo)
//	client, _ := snmp.NewClient("10.0.0.1",
//	    snmp.Community("public"),
//	    snmp.WithLogger(logger))
func WithLogger(logger Logger) func(*Client) {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithEngine replaces the production request engine
//
// The engine is the boundary to the PDU codec and transport. Supplying a
// custom implementation is how tests script device behavior and how
// alternative transports plug in.
func WithEngine(engine RequestEngine) func(*Client) {
	return func(c *Client) {
		if engine != nil {
			c.engine = engine
		}
	}
}

// Request modifiers for individual operations

// Timeout returns a request modifier that overrides the per-round-trip
// timeout for one operation
//
// Example:
//
//	res, err := client.Get(ctx, "sysDescr", snmp.Timeout(1*time.Second))
func Timeout(duration time.Duration) func(*Req) {
	return func(req *Req) {
		if duration > 0 {
			req.Timeout = duration
		}
	}
}

// Retries returns a request modifier that overrides the per-round-trip
// retry budget for one operation
func Retries(retries int) func(*Req) {
	return func(req *Req) {
		if retries >= 0 {
			req.Retries = retries
		}
	}
}

// NonRepeaters returns a request modifier setting the non-repeated prefix
// length for a bulk walk (default: 0)
func NonRepeaters(n int) func(*Req) {
	return func(req *Req) {
		if n >= 0 {
			req.NonRepeaters = n
		}
	}
}

// MaxRepetitions returns a request modifier setting the requested
// repetition count for a bulk walk (default: client's BulkMaxRepetitions)
//
// When the device reports a size-limit failure, the walk retries the same
// cursor with progressively smaller counts; this value is the starting
// point of that descending sequence.
func MaxRepetitions(repetitions int) func(*Req) {
	return func(req *Req) {
		if repetitions > 0 {
			req.MaxRepetitions = repetitions
		}
	}
}

// SuppressBenign returns a request modifier controlling benign-error log
// severity for one operation
func SuppressBenign(suppress bool) func(*Req) {
	return func(req *Req) {
		req.SuppressBenign = suppress
	}
}
