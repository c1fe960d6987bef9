// SPDX-License-Identifier: MPL-2.0

package snmp

import (
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

// TestBodySet tests fluent JSON building
func TestBodySet(t *testing.T) {
	body := Body{}.
		Set("device.target", "10.0.0.15").
		Set("device.port", 161).
		Set("measurement.name", "signal_noise").
		Set("measurement.enabled", true)

	out, err := body.String()
	if err != nil {
		t.Fatalf("String() error: %v", err)
	}

	if got := gjson.Get(out, "device.target").String(); got != "10.0.0.15" {
		t.Errorf("device.target = %q", got)
	}
	if got := gjson.Get(out, "device.port").Int(); got != 161 {
		t.Errorf("device.port = %d", got)
	}
	if !gjson.Get(out, "measurement.enabled").Bool() {
		t.Error("measurement.enabled = false")
	}
}

// TestBodySetRaw tests embedding a result's JSON without re-encoding
func TestBodySetRaw(t *testing.T) {
	res := WalkRes{
		Bindings: []Binding{
			{OID: "1.3.6.1.2.1.10.127.1.1.4.1.5.3", Value: NewInteger(412)},
		},
		OK: true,
	}

	body := Body{}.
		Set("device.target", "10.0.0.15").
		SetRaw("poll", res.JSON())

	out, err := body.String()
	if err != nil {
		t.Fatalf("String() error: %v", err)
	}

	if got := gjson.Get(out, "poll.bindings.0.value").Int(); got != 412 {
		t.Errorf("poll.bindings.0.value = %d", got)
	}
	if !gjson.Get(out, "poll.ok").Bool() {
		t.Error("poll.ok = false")
	}
}

// TestBodyDelete tests field removal
func TestBodyDelete(t *testing.T) {
	body := Body{}.
		Set("device.target", "10.0.0.15").
		Set("device.note", "temporary").
		Delete("device.note")

	out, err := body.String()
	if err != nil {
		t.Fatalf("String() error: %v", err)
	}
	if gjson.Get(out, "device.note").Exists() {
		t.Error("deleted field still present")
	}
	if !gjson.Get(out, "device.target").Exists() {
		t.Error("unrelated field removed")
	}
}

// TestBodyErrorShortCircuits tests that the first error freezes the chain
func TestBodyErrorShortCircuits(t *testing.T) {
	// An empty sjson path triggers the error state.
	body := Body{}.
		Set("device.target", "10.0.0.15").
		Set("", "boom").
		Set("device.port", 161)

	if body.Err() == nil {
		t.Fatal("expected error from empty path")
	}
	if !strings.Contains(body.Err().Error(), "Set") {
		t.Errorf("error should name the failing operation: %v", body.Err())
	}

	// Subsequent operations are no-ops preserving the error.
	out, err := body.String()
	if err == nil {
		t.Error("String() must report the stored error")
	}
	if gjson.Get(out, "device.port").Exists() {
		t.Error("operation after error must not apply")
	}

	if body.Res() != "" {
		t.Error("Res() must return empty on error")
	}
	if _, err := body.Bytes(); err == nil {
		t.Error("Bytes() must report the stored error")
	}
}

// TestBodyBytes tests the byte slice accessor
func TestBodyBytes(t *testing.T) {
	body := Body{}.Set("name", "eth0")
	b, err := body.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error: %v", err)
	}
	if got := gjson.GetBytes(b, "name").String(); got != "eth0" {
		t.Errorf("name = %q", got)
	}
}

// TestBodyRes tests the gjson-ready accessor
func TestBodyRes(t *testing.T) {
	body := Body{}.Set("measurement.rows", 24)
	out := body.Res()
	if got := gjson.Get(out, "measurement.rows").Int(); got != 24 {
		t.Errorf("measurement.rows = %d", got)
	}
}
