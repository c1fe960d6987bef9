// SPDX-License-Identifier: MPL-2.0

package snmp

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"
)

// Version selects the protocol version for a session
type Version int

const (
	// VersionV2c is community-based v2 (the default)
	VersionV2c Version = iota

	// VersionV1 is the original community-based version
	VersionV1

	// VersionV3 is the user-security-model version. It is a configuration
	// stub only: requesting it fails validation.
	VersionV3
)

// String returns the string representation of a Version
func (v Version) String() string {
	switch v {
	case VersionV2c:
		return "2c"
	case VersionV1:
		return "1"
	case VersionV3:
		return "3"
	default:
		return fmt.Sprintf("unknown(%d)", v)
	}
}

// Default client configuration values
const (
	DefaultPort               = 161
	DefaultCommunity          = "public"
	DefaultTimeout            = 5 * time.Second
	DefaultRetries            = 2
	DefaultNonRepeaters       = 0
	DefaultMaxRepetitions     = 25
	DefaultBackoffMinDelay    = 500 * time.Millisecond
	DefaultBackoffMaxDelay    = 10 * time.Second
	DefaultBackoffDelayFactor = 2
)

// bulkAttemptLadder holds the repetition counts tried after the caller's
// requested maximum when the device reports a size-limit failure. Together
// with the caller's maximum this bounds a bulk walk to at most four
// attempts regardless of the initial value.
var bulkAttemptLadder = []int{10, 5, 1}

// Client represents one session against a remote device
//
// A session owns its resolved credentials, timeout and retry budget, and
// the transport handle behind the Request Engine boundary. Connection
// establishment is lazy: the first operation dials. A single session
// assumes one in-flight round-trip at a time; independent sessions can be
// driven concurrently without coordination.
type Client struct {
	// engine performs the actual round-trips (production: gosnmp)
	engine RequestEngine

	// connected tracks whether the lazy dial has happened
	connected bool

	// mu synchronizes access to mutable state
	mu sync.RWMutex

	// Connection parameters
	Target  string
	Port    int
	Version Version

	// community / writeCommunity are the read and write credentials.
	// Unexported: community strings are secrets and never logged.
	community      string
	writeCommunity string

	// Timeout bounds one round-trip, not a whole walk; a multi-page walk
	// suspends once per round-trip with this budget each time.
	Timeout time.Duration

	// Retries is the per-round-trip retry budget handed to the engine.
	// It also bounds how often the sequential walker re-tries a cursor
	// after a transport failure before ending the walk.
	Retries int

	// MaxRepetitions is the default bulk repetition count (see BulkWalk)
	MaxRepetitions int

	// Backoff configuration for walk step retries
	BackoffMinDelay    time.Duration
	BackoffMaxDelay    time.Duration
	BackoffDelayFactor float64

	// suppressBenign downgrades "attribute not present" protocol errors
	// to debug severity (default true)
	suppressBenign bool

	// Logging configuration
	logger Logger
}

// NewClient creates a new client for the given target host
//
// The client validates its configuration and builds the transport
// session, but does NOT dial immediately: the connection is established
// on the first operation.
//
// Example:
//
//	client, err := snmp.NewClient(
//	    "10.1.2.3",
//	    snmp.Community("public"),
//	    snmp.WriteCommunity("private"),
//	    snmp.OperationTimeout(2*time.Second),
//	    snmp.MaxRetries(1),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	res, err := client.Get(ctx, "sysDescr")
//
// Returns a configured Client or an error if configuration validation fails.
func NewClient(target string, opts ...func(*Client)) (*Client, error) {
	client := &Client{
		Target:             target,
		Port:               DefaultPort,
		Version:            VersionV2c,
		community:          DefaultCommunity,
		Timeout:            DefaultTimeout,
		Retries:            DefaultRetries,
		MaxRepetitions:     DefaultMaxRepetitions,
		BackoffMinDelay:    DefaultBackoffMinDelay,
		BackoffMaxDelay:    DefaultBackoffMaxDelay,
		BackoffDelayFactor: DefaultBackoffDelayFactor,
		suppressBenign:     true,
		logger:             &NoOpLogger{},
	}

	for _, opt := range opts {
		opt(client)
	}

	if err := client.validateConfig(); err != nil {
		return nil, err
	}

	if client.engine == nil {
		client.engine = newWireEngine(client)
	}

	client.logger.Info("snmp client created",
		"target", client.Target,
		"port", client.Port,
		"version", client.Version,
		"connection", "lazy")

	return client, nil
}

// Close closes the session and releases the transport
//
// Safe to call multiple times; operations after Close re-dial lazily if
// the engine supports it.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.connected = false
	if conn, ok := c.engine.(connector); ok {
		if err := conn.Close(); err != nil {
			return err
		}
	}

	c.logger.Info("snmp session closed", "target", c.Target)
	return nil
}

// HasCredentials returns true if a read community is configured
//
// This only indicates whether a credential exists without exposing it.
func (c *Client) HasCredentials() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.community != ""
}

// Backoff calculates the delay before retry attempt using exponential
// backoff with jitter
//
// The formula is: delay = min(minDelay * (factor ^ attempt), maxDelay)
// plus a random jitter in [0, delay * 0.1]. Jitter comes from crypto/rand
// with a timestamp fallback, so that many pollers hitting the same
// device do not retry in lockstep.
//
// Parameters:
//   - attempt: the retry attempt number (0-indexed)
//
// Returns the duration to wait before retrying.
func (c *Client) Backoff(attempt int) time.Duration {
	delay := float64(c.BackoffMinDelay) * math.Pow(c.BackoffDelayFactor, float64(attempt))
	if math.IsInf(delay, 1) || delay > float64(c.BackoffMaxDelay) {
		delay = float64(c.BackoffMaxDelay)
	}

	jitterMax := int64(delay * 0.1)
	if jitterMax > 0 {
		var jitterBytes [8]byte
		var jitterVal int64
		if _, err := rand.Read(jitterBytes[:]); err == nil {
			jitterVal = int64(binary.BigEndian.Uint64(jitterBytes[:]) & 0x7FFFFFFFFFFFFFFF)
		} else {
			jitterVal = time.Now().UnixNano()
			if jitterVal < 0 {
				jitterVal = -jitterVal
			}
		}
		delay += float64(jitterVal % jitterMax)
	}

	return time.Duration(delay)
}

// validateConfig validates client configuration before first use
//
// Validates:
//   - Target is not empty
//   - Port range (1-65535)
//   - Positive timeout, non-negative retries
//   - Backoff parameters (max > min, factor >= 1.0)
//   - Version is v1 or v2c (v3 is a stub and rejected)
//
// Returns an error if validation fails.
func (c *Client) validateConfig() error {
	if strings.TrimSpace(c.Target) == "" {
		return fmt.Errorf("target address cannot be empty")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be 1-65535)", c.Port)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("operation timeout must be positive, got: %v", c.Timeout)
	}
	if c.Retries < 0 {
		return fmt.Errorf("max retries must be non-negative, got: %d", c.Retries)
	}
	if c.MaxRepetitions < 1 {
		return fmt.Errorf("bulk max repetitions must be positive, got: %d", c.MaxRepetitions)
	}

	if c.BackoffMinDelay <= 0 {
		return fmt.Errorf("backoff min delay must be positive, got: %v", c.BackoffMinDelay)
	}
	if c.BackoffMaxDelay <= c.BackoffMinDelay {
		return fmt.Errorf("backoff max delay (%v) must be greater than min delay (%v)",
			c.BackoffMaxDelay, c.BackoffMinDelay)
	}
	if c.BackoffDelayFactor < 1.0 {
		return fmt.Errorf("backoff delay factor must be >= 1.0, got: %f", c.BackoffDelayFactor)
	}

	switch c.Version {
	case VersionV1, VersionV2c:
	case VersionV3:
		return fmt.Errorf("snmp v3 is not supported; configure v1 or v2c")
	default:
		return fmt.Errorf("invalid snmp version: %d", c.Version)
	}

	if !c.HasCredentials() {
		c.logger.Warn("no community configured",
			"target", c.Target,
			"message", "device may reject requests")
	}

	return nil
}

// ensureConnected establishes the transport lazily on first use
//
// Engines that do not manage a connection (test stubs) are used as-is.
func (c *Client) ensureConnected(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.engine == nil {
		return fmt.Errorf("client has no request engine")
	}
	if c.connected {
		return nil
	}

	if conn, ok := c.engine.(connector); ok {
		c.logger.Debug("establishing snmp session",
			"target", c.Target,
			"port", c.Port)
		if err := conn.Connect(ctx); err != nil {
			return fmt.Errorf("failed to establish session: %w", err)
		}
		c.logger.Info("snmp session established",
			"target", c.Target,
			"port", c.Port)
	}

	c.connected = true
	return nil
}

// checkContextCancellation checks if context is canceled or deadline exceeded
//
// Non-blocking; used before round-trips to avoid wasted work.
func checkContextCancellation(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
