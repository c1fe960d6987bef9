// SPDX-License-Identifier: MPL-2.0

package snmp

import "sync"

var (
	extractMu     sync.RWMutex
	extractLogger Logger = &NoOpLogger{}
)

// SetExtractLogger installs the logger used by the package-level
// extraction helpers. The helpers operate on already-fetched results and
// carry no client reference, so their diagnostics are routed here.
// Passing nil restores the silent default.
func SetExtractLogger(l Logger) {
	extractMu.Lock()
	defer extractMu.Unlock()
	if l == nil {
		extractLogger = &NoOpLogger{}
		return
	}
	extractLogger = l
}

func getExtractLogger() Logger {
	extractMu.RLock()
	defer extractMu.RUnlock()
	return extractLogger
}

// ExtractIndex returns the trailing numeric index of each binding's
// identifier, in binding order. Bindings whose identifier has no numeric
// final component are skipped with a warning.
func ExtractIndex(bindings []Binding) []int {
	indices := make([]int, 0, len(bindings))
	for _, b := range bindings {
		idx, ok := TrailingIndex(b.OID)
		if !ok {
			getExtractLogger().Warn("binding identifier has no trailing index, skipping",
				"oid", b.OID)
			continue
		}
		indices = append(indices, idx)
	}
	return indices
}

// ExtractIndices returns the trailing k numeric components of each
// binding's identifier as a composite index, in binding order. Bindings
// with fewer than k trailing numeric components are skipped with a
// warning.
func ExtractIndices(bindings []Binding, k int) [][]int {
	composites := make([][]int, 0, len(bindings))
	for _, b := range bindings {
		idx := TrailingIndices(b.OID, k)
		if idx == nil {
			getExtractLogger().Warn("binding identifier has too few trailing components, skipping",
				"oid", b.OID,
				"want", k)
			continue
		}
		composites = append(composites, idx)
	}
	return composites
}

// ExtractText returns each binding's value rendered as text, in binding
// order. Every value kind renders; byte-valued bindings render their
// octets verbatim.
func ExtractText(bindings []Binding) []string {
	texts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		texts = append(texts, b.Value.String())
	}
	return texts
}

// ExtractBytes returns the raw octets of each binding's value, in
// binding order. Bindings of any non-byte kind yield an empty slice at
// their position with a warning, so parallel rows stay aligned and
// callers can detect and skip them; octets are never round-tripped
// through a text rendering.
func ExtractBytes(bindings []Binding) [][]byte {
	payloads := make([][]byte, 0, len(bindings))
	for _, b := range bindings {
		raw, ok := b.Value.Bytes()
		if !ok {
			getExtractLogger().Warn("binding value is not byte-valued, yielding empty octets",
				"oid", b.OID,
				"kind", b.Value.Kind())
			payloads = append(payloads, []byte{})
			continue
		}
		payloads = append(payloads, raw)
	}
	return payloads
}

// Pair is a trailing index with the text rendering of its value
type Pair struct {
	Index int
	Text  string
}

// ExtractPairs returns the (index, text) pair of each binding with a
// numeric trailing index, in binding order. Bindings without one are
// skipped with a warning.
func ExtractPairs(bindings []Binding) []Pair {
	pairs := make([]Pair, 0, len(bindings))
	for _, b := range bindings {
		idx, ok := TrailingIndex(b.OID)
		if !ok {
			getExtractLogger().Warn("binding identifier has no trailing index, skipping",
				"oid", b.OID)
			continue
		}
		pairs = append(pairs, Pair{Index: idx, Text: b.Value.String()})
	}
	return pairs
}

// TypedPair is a trailing index with a kind-checked value
type TypedPair struct {
	Index int
	Value Value
}

// ExtractTypedPairs returns the (index, value) pair of each binding with
// a numeric trailing index. Bindings whose value is not of the expected
// kind keep their raw value and are logged with a warning rather than
// dropped, so parallel rows from one table stay aligned.
func ExtractTypedPairs(bindings []Binding, kind ValueKind) []TypedPair {
	pairs := make([]TypedPair, 0, len(bindings))
	for _, b := range bindings {
		idx, ok := TrailingIndex(b.OID)
		if !ok {
			getExtractLogger().Warn("binding identifier has no trailing index, skipping",
				"oid", b.OID)
			continue
		}
		if b.Value.Kind() != kind {
			getExtractLogger().Warn("binding value kind mismatch, keeping raw value",
				"oid", b.OID,
				"want", kind,
				"got", b.Value.Kind())
		}
		pairs = append(pairs, TypedPair{Index: idx, Value: b.Value})
	}
	return pairs
}
