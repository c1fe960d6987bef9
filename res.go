// SPDX-License-Identifier: MPL-2.0

package snmp

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// bindingJSON is the wire-independent JSON shape of one binding
type bindingJSON struct {
	OID   string `json:"oid"`
	Kind  string `json:"kind"`
	Value any    `json:"value"`
}

// bindingValueJSON renders a binding value for JSON output. Numeric kinds
// render as JSON numbers; byte-valued bindings render as their hex dump
// so that raw octets survive the text encoding.
func bindingValueJSON(v Value) any {
	switch v.Kind() {
	case KindNull:
		return nil
	case KindInteger:
		i, _ := v.Int()
		return i
	case KindCounter32, KindGauge32, KindTimeTicks, KindCounter64:
		u, _ := v.Uint()
		return u
	case KindBytes:
		return v.Hex()
	default:
		return v.String()
	}
}

func marshalBindings(bindings []Binding) []bindingJSON {
	out := make([]bindingJSON, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, bindingJSON{
			OID:   b.OID,
			Kind:  b.Value.Kind().String(),
			Value: bindingValueJSON(b.Value),
		})
	}
	return out
}

// GetRes represents a single-value fetch response
type GetRes struct {
	// Bindings contains the returned variable bindings
	Bindings []Binding

	// Timestamp is the response timestamp (nanoseconds since Unix epoch)
	Timestamp int64

	// OK indicates if the operation succeeded
	OK bool

	// Errors contains any error information
	Errors []ErrorModel
}

// Empty reports whether the response carries no bindings. A fetch that
// succeeded but found the attribute absent is OK and Empty at once.
func (r GetRes) Empty() bool {
	return len(r.Bindings) == 0
}

// GetValue retrieves a value from the response using a gjson path.
// The path follows gjson syntax for querying JSON structures.
//
// Example paths:
//   - "bindings.0.oid" - Get the first binding's identifier
//   - "bindings.0.value" - Get the first binding's value
//   - "bindings.#" - Get the binding count
//
// Returns gjson.Result which can be converted to specific types:
//   - result.String() for string values
//   - result.Int() for integer values
//
// Example:
//
//	res, err := client.Get(ctx, "sysUpTime")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	uptime := res.GetValue("bindings.0.value").Int()
func (r GetRes) GetValue(path string) gjson.Result {
	jsonStr := r.JSON()
	if jsonStr == "" {
		return gjson.Result{}
	}
	return gjson.Get(jsonStr, path)
}

// JSON returns the response as a formatted JSON string.
// This is useful for debugging, logging, or custom parsing.
// Byte-valued bindings render as hex dumps. Returns an empty string if
// marshaling fails.
func (r GetRes) JSON() string {
	wrapper := struct {
		Bindings  []bindingJSON `json:"bindings"`
		Timestamp int64         `json:"timestamp"`
		OK        bool          `json:"ok"`
	}{
		Bindings:  marshalBindings(r.Bindings),
		Timestamp: r.Timestamp,
		OK:        r.OK,
	}

	data, err := json.Marshal(wrapper)
	if err != nil {
		return ""
	}
	return string(data)
}

// WalkRes represents a subtree walk response
type WalkRes struct {
	// Bindings contains the in-subtree bindings in traversal order
	Bindings []Binding

	// Timestamp is the response timestamp (nanoseconds since Unix epoch)
	Timestamp int64

	// OK indicates if the operation succeeded
	OK bool

	// Errors contains any error information
	Errors []ErrorModel
}

// Empty reports whether the walk found no rows. An empty subtree is a
// normal outcome, not a failure.
func (r WalkRes) Empty() bool {
	return len(r.Bindings) == 0
}

// GetValue retrieves a value from the response using a gjson path.
// The path follows gjson syntax for querying JSON structures.
//
// Example:
//
//	res, err := client.Walk(ctx, "ifDescr")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	first := res.GetValue("bindings.0.value").String()
//	count := res.GetValue("bindings.#").Int()
func (r WalkRes) GetValue(path string) gjson.Result {
	jsonStr := r.JSON()
	if jsonStr == "" {
		return gjson.Result{}
	}
	return gjson.Get(jsonStr, path)
}

// JSON returns the response as a formatted JSON string.
// Byte-valued bindings render as hex dumps. Returns an empty string if
// marshaling fails.
func (r WalkRes) JSON() string {
	wrapper := struct {
		Bindings  []bindingJSON `json:"bindings"`
		Timestamp int64         `json:"timestamp"`
		OK        bool          `json:"ok"`
	}{
		Bindings:  marshalBindings(r.Bindings),
		Timestamp: r.Timestamp,
		OK:        r.OK,
	}

	data, err := json.Marshal(wrapper)
	if err != nil {
		return ""
	}
	return string(data)
}

// SetRes represents a single-value write response
type SetRes struct {
	// Bindings contains the bindings echoed by the device
	Bindings []Binding

	// Timestamp is the response timestamp (nanoseconds since Unix epoch)
	Timestamp int64

	// OK indicates if the write was acknowledged
	OK bool

	// Errors contains any error information
	Errors []ErrorModel
}

// GetValue retrieves a value from the response using a gjson path.
// The path follows gjson syntax for querying JSON structures.
//
// Example:
//
//	res, err := client.Set(ctx, "sysContact.0", "noc@example.com", snmp.KindText)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	echoed := res.GetValue("bindings.0.value").String()
func (r SetRes) GetValue(path string) gjson.Result {
	jsonStr := r.JSON()
	if jsonStr == "" {
		return gjson.Result{}
	}
	return gjson.Get(jsonStr, path)
}

// JSON returns the response as a formatted JSON string.
// Byte-valued bindings render as hex dumps. Returns an empty string if
// marshaling fails.
func (r SetRes) JSON() string {
	wrapper := struct {
		Bindings  []bindingJSON `json:"bindings"`
		Timestamp int64         `json:"timestamp"`
		OK        bool          `json:"ok"`
	}{
		Bindings:  marshalBindings(r.Bindings),
		Timestamp: r.Timestamp,
		OK:        r.OK,
	}

	data, err := json.Marshal(wrapper)
	if err != nil {
		return ""
	}
	return string(data)
}
