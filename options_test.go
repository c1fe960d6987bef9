// SPDX-License-Identifier: MPL-2.0

package snmp

import (
	"context"
	"testing"
)

// TestWithLoggerNilIsIgnored tests the nil guard on the logger option
func TestWithLoggerNilIsIgnored(t *testing.T) {
	client, err := NewClient("192.0.2.10",
		WithEngine(&scriptEngine{}),
		WithLogger(nil),
	)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if client.logger == nil {
		t.Error("nil logger option must keep the default")
	}
}

// TestWithEngineNilIsIgnored tests the nil guard on the engine option
func TestWithEngineNilIsIgnored(t *testing.T) {
	stub := &scriptEngine{}
	client, err := NewClient("192.0.2.10",
		WithEngine(stub),
		WithEngine(nil),
	)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if client.engine != RequestEngine(stub) {
		t.Error("nil engine option must keep the previous engine")
	}
}

// TestBenignErrorLogSeverity tests that suppression routes absent
// attributes to debug while hard errors stay at error severity
func TestBenignErrorLogSeverity(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		suppress   bool
		wantErrors int
	}{
		{"benign suppressed", StatusNoSuchObject, true, 0},
		{"benign surfaced", StatusNoSuchObject, false, 1},
		{"hard error always surfaces", StatusGenErr, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &recordingLogger{}
			engine := &scriptEngine{
				oneFn: func(string) Outcome {
					return ProtocolFailure(tt.status, 1)
				},
			}
			client := newTestClient(t, engine, WithLogger(logger))

			_, err := client.Get(context.Background(), "sysDescr",
				SuppressBenign(tt.suppress))
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}

			logger.mu.Lock()
			got := len(logger.errors)
			logger.mu.Unlock()
			if got != tt.wantErrors {
				t.Errorf("error-severity log count = %d, want %d", got, tt.wantErrors)
			}
		})
	}
}

// TestSuppressionClientDefaultFlowsToRequests tests that the client-wide
// setting is the per-request default
func TestSuppressionClientDefaultFlowsToRequests(t *testing.T) {
	logger := &recordingLogger{}
	engine := &scriptEngine{
		oneFn: func(string) Outcome {
			return ProtocolFailure(StatusNoSuchInstance, 1)
		},
	}
	client := newTestClient(t, engine,
		WithLogger(logger),
		SuppressBenignErrors(false),
	)

	if _, err := client.Get(context.Background(), "sysDescr"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	logger.mu.Lock()
	got := len(logger.errors)
	logger.mu.Unlock()
	if got != 1 {
		t.Errorf("expected benign error surfaced at error severity, got %d logs", got)
	}
}
