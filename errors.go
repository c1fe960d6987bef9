// SPDX-License-Identifier: MPL-2.0

package snmp

import (
	"errors"
	"fmt"
)

// Identifier validation errors
var (
	errEmptyOID      = errors.New("oid cannot be empty")
	errOIDTooLong    = fmt.Errorf("oid exceeds maximum length of %d characters", MaxOIDLength)
	errOIDNullByte   = errors.New("oid contains a null byte")
	errOIDWhitespace = errors.New("oid contains whitespace")
)

// Protocol status texts as reported in Outcome.Status
//
// These mirror the PDU error-status names of the protocol. The walkers
// key their retry and fallback decisions off these values.
const (
	// StatusTooBig is the size-limit failure: the agent could not fit the
	// response into one message. The Adaptive Bulk Walker reacts by
	// retrying the same cursor with a smaller repetition count.
	StatusTooBig = "tooBig"

	// StatusNoSuchName indicates the requested attribute does not exist
	StatusNoSuchName = "noSuchName"

	// StatusNoSuchObject is the v2c exception for a missing object
	StatusNoSuchObject = "noSuchObject"

	// StatusNoSuchInstance is the v2c exception for a missing instance
	StatusNoSuchInstance = "noSuchInstance"

	// StatusEndOfMibView is the v2c exception marking the end of the
	// agent's view; it never surfaces as an error, the engine drops it
	StatusEndOfMibView = "endOfMibView"

	// StatusGenErr is the catch-all device failure
	StatusGenErr = "genErr"
)

// benignStatuses are the protocol errors that mean "attribute not
// present", an expected and frequent outcome when probing optional
// device capabilities. They are never more than "no data at this step".
//
// No other device-specific codes are suppressed: genErr and friends stay
// at error severity because they usually indicate a real problem.
var benignStatuses = map[string]bool{
	StatusNoSuchName:     true,
	StatusNoSuchObject:   true,
	StatusNoSuchInstance: true,
}

// IsBenignStatus reports whether a protocol status text means the
// attribute is simply absent
func IsBenignStatus(status string) bool {
	return benignStatuses[status]
}

// IsSizeLimitStatus reports whether a protocol status text is the
// size-limit failure that triggers adaptive repetition shrinking
func IsSizeLimitStatus(status string) bool {
	return status == StatusTooBig
}

// ErrorModel represents a single protocol or transport failure observed
// during an operation
type ErrorModel struct {
	// Status is the protocol error-status text, empty for transport failures
	Status string

	// Message is the human-readable failure description
	Message string

	// Index is the 1-based index of the offending variable binding,
	// 0 when the failure is not tied to a specific binding
	Index int
}

// SnmpError represents a structured operation failure with context
type SnmpError struct {
	// Operation name that failed (get, walk, bulk_walk, set)
	Operation string

	// Status is the protocol error-status text, empty for transport failures
	Status string

	// Message is the human-readable failure description
	Message string

	// Retries is the number of retry attempts made
	Retries int
}

// Error implements the error interface
func (e *SnmpError) Error() string {
	if e.Retries > 0 {
		return fmt.Sprintf("snmp: %s failed: %s (retries: %d)", e.Operation, e.Message, e.Retries)
	}
	return fmt.Sprintf("snmp: %s failed: %s", e.Operation, e.Message)
}
