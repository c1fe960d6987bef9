// SPDX-License-Identifier: MPL-2.0

package snmp

import (
	"regexp"
	"strconv"
	"strings"
)

// MaxOIDLength is the maximum accepted length for an identifier string
const MaxOIDLength = 512

// numericOIDPattern matches a fully numeric dotted path, with an optional
// leading dot. Digits and separators only; anything else is treated as
// symbolic input.
var numericOIDPattern = regexp.MustCompile(`^\.?[0-9]+(\.[0-9]+)*$`)

// symbolicOIDPattern splits symbolic input into a name token and an
// optional dotted numeric instance suffix, e.g.
// "docsIfSigQSignalNoise.3" -> ("docsIfSigQSignalNoise", ".3").
var symbolicOIDPattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_-]*)((?:\.[0-9]+)*)$`)

// IsNumericOID reports whether the input is an already-numeric dotted path
func IsNumericOID(input string) bool {
	return numericOIDPattern.MatchString(input)
}

// Resolve maps an attribute name to its canonical numeric path
//
// Already-numeric input passes through unchanged apart from a normalized
// leading dot. Symbolic input is split into a name token and an optional
// dotted numeric instance suffix; the name token is looked up in the
// compiled MIB table. An unknown name degrades leniently to the verbatim
// token rather than failing: the device may still resolve it remotely.
//
// Resolve is idempotent: applying it to an already-canonical path returns
// the identical path. No network I/O occurs here.
//
// Example:
//
//	snmp.Resolve("docsIfSigQSignalNoise.3") // "1.3.6.1.2.1.10.127.1.1.4.1.5.3"
//	snmp.Resolve(".1.3.6.1.2.1.1.1.0")      // "1.3.6.1.2.1.1.1.0"
func Resolve(input string) string {
	if IsNumericOID(input) {
		return strings.TrimPrefix(input, ".")
	}

	m := symbolicOIDPattern.FindStringSubmatch(input)
	if m == nil {
		// Not a recognizable name either; hand it back verbatim and let
		// the device reject it.
		return input
	}

	name, suffix := m[1], m[2]
	if base, ok := LookupMIBName(name); ok {
		return base + suffix
	}
	return name + suffix
}

// HasOIDPrefix reports whether oid is a structural descendant of root
//
// The comparison is component-wise on the dot-separated path, never a
// substring match: "1.3.6.1.22" is NOT under "1.3.6.1.2". An identifier
// is considered contained in itself.
//
// This check is the only termination signal available to the walkers: the
// protocol has no end-of-table response, so overshoot past the subtree is
// detected here.
func HasOIDPrefix(oid, root string) bool {
	oid = strings.TrimPrefix(oid, ".")
	root = strings.TrimPrefix(root, ".")
	if root == "" || oid == "" {
		return false
	}

	oidArcs := strings.Split(oid, ".")
	rootArcs := strings.Split(root, ".")
	if len(oidArcs) < len(rootArcs) {
		return false
	}
	for i, arc := range rootArcs {
		if oidArcs[i] != arc {
			return false
		}
	}
	return true
}

// TrailingIndex parses the last dot-separated component of an identifier
// as an integer
//
// Returns false on malformed input (empty path, non-numeric tail) rather
// than an error, so that a single malformed row cannot abort a batch.
func TrailingIndex(oid string) (int, bool) {
	oid = strings.TrimPrefix(oid, ".")
	if oid == "" {
		return 0, false
	}
	tail := oid
	if idx := strings.LastIndexByte(oid, '.'); idx >= 0 {
		tail = oid[idx+1:]
	}
	n, err := strconv.Atoi(tail)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// TrailingIndices returns up to the last k index components of an
// identifier as integers
//
// Shorter identifiers return all available components. Non-numeric
// components end the scan; only the numeric tail is returned.
func TrailingIndices(oid string, k int) []int {
	oid = strings.TrimPrefix(oid, ".")
	if oid == "" || k <= 0 {
		return nil
	}

	arcs := strings.Split(oid, ".")
	start := len(arcs) - k
	if start < 0 {
		start = 0
	}

	out := make([]int, 0, len(arcs)-start)
	for _, arc := range arcs[start:] {
		n, err := strconv.Atoi(arc)
		if err != nil || n < 0 {
			// Restart collection past the non-numeric component.
			out = out[:0]
			continue
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// validateIdentifier validates caller-supplied identifier input
//
// Checks:
//   - input is not empty
//   - input length does not exceed MaxOIDLength
//   - input does not contain null bytes or whitespace
//
// Returns an error with a descriptive message if the input is invalid.
func validateIdentifier(oid string) error {
	if oid == "" {
		return errEmptyOID
	}
	if len(oid) > MaxOIDLength {
		return errOIDTooLong
	}
	for i := 0; i < len(oid); i++ {
		c := oid[i]
		if c == 0 {
			return errOIDNullByte
		}
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			return errOIDWhitespace
		}
	}
	return nil
}
