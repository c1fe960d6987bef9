// SPDX-License-Identifier: MPL-2.0

package snmp

import (
	"fmt"

	"github.com/tidwall/sjson"
)

// Body provides a fluent interface for building JSON documents using
// sjson for path-based manipulation. It is the companion of the result
// types' JSON output: poll results are queried with gjson and export
// documents are assembled with Body.
//
// The builder tracks the first error internally so calls can be chained;
// check it through String() or Err().
//
// Example:
//
//	res, _ := client.Walk(ctx, "docsIfSigQSignalNoise")
//
//	body := snmp.Body{}.
//	    Set("device.target", "10.0.0.15").
//	    Set("measurement.name", "signal_noise").
//	    SetRaw("measurement.rows", res.JSON())
//
//	doc, err := body.String()
//	if err != nil {
//	    log.Fatal(err)
//	}
type Body struct {
	// str contains the JSON string being built
	str string
	// err tracks the first error encountered during building
	err error
}

// Set sets a value at the specified JSON path and returns a new Body
//
// The path uses dot notation for nested fields (e.g., "device.target").
// The value can be any type sjson supports (string, number, bool, etc.).
//
// Once an error occurs, all subsequent operations are no-ops that
// preserve the error.
//
// Returns the Body for method chaining.
func (b Body) Set(path string, value any) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.Set(b.str, path, value)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("Set(%q): %w", path, err)}
	}
	return Body{str: result, err: nil}
}

// SetRaw embeds a pre-rendered JSON fragment at the specified path and
// returns a new Body. This is how a result's JSON() output is nested
// into a larger export document without re-encoding.
//
// Example:
//
//	body := snmp.Body{}.
//	    Set("device.target", "10.0.0.15").
//	    SetRaw("poll", res.JSON())
//
// Returns the Body for method chaining.
func (b Body) SetRaw(path string, rawJSON string) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.SetRaw(b.str, path, rawJSON)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("SetRaw(%q): %w", path, err)}
	}
	return Body{str: result, err: nil}
}

// Delete removes a value at the specified JSON path and returns a new Body
//
// Example:
//
//	body := snmp.Body{}.
//	    Set("device.target", "10.0.0.15").
//	    Set("device.note", "temp").
//	    Delete("device.note")
//
// Returns the Body for method chaining.
func (b Body) Delete(path string) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.Delete(b.str, path)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("Delete(%q): %w", path, err)}
	}
	return Body{str: result, err: nil}
}

// String returns the JSON string representation and any error
// encountered during building
func (b Body) String() (string, error) {
	return b.str, b.err
}

// Err returns any error that occurred during the building process
func (b Body) Err() error {
	return b.err
}

// Res returns the JSON string for further processing with gjson
//
// If an error occurred during building, this returns an empty string;
// use Err() or String() to check for errors.
func (b Body) Res() string {
	if b.err != nil {
		return ""
	}
	return b.str
}

// Bytes returns the JSON byte slice representation and any error
// encountered during building
func (b Body) Bytes() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	return []byte(b.str), nil
}
