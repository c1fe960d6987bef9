// SPDX-License-Identifier: MPL-2.0

// Package snmp provides a simple, fluent API for polling network devices
// over SNMP v1 and v2c.
//
// The library provides a high-level client interface that handles
// connection management, symbolic name resolution, subtree traversal
// with adaptive bulk pagination, error handling with exponential
// backoff, and thread-safe operations.
//
// # Quick Start
//
// Create a client and perform basic operations:
//
//	client, err := snmp.NewClient(
//	    "10.0.0.15",
//	    snmp.Community("public"),
//	    snmp.OperationTimeout(5*time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Fetch a single value; a bare symbolic name addresses a scalar
//	ctx := context.Background()
//	res, err := client.Get(ctx, "sysDescr")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.GetValue("bindings.0.value").String())
//
// # Subtree Traversal
//
// Walk visits one row per round-trip; BulkWalk pages through the subtree
// and automatically lowers its page size when the device reports a
// size-limit failure, falling back to a sequential walk as the last
// resort:
//
//	res, err := client.BulkWalk(ctx, "docsIfDownChannelFrequency")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, p := range snmp.ExtractPairs(res.Bindings) {
//	    fmt.Printf("channel %d: %s Hz\n", p.Index, p.Text)
//	}
//
// # Absent Attributes
//
// Devices routinely lack optional attributes. A fetch that reaches the
// device but finds nothing returns an empty, OK result with a nil error;
// only transport failures surface as errors:
//
//	res, err := client.Get(ctx, "docsPnmCmDsOfdmRxMerMean.194")
//	if err != nil {
//	    log.Fatal(err) // device unreachable
//	}
//	if res.Empty() {
//	    // attribute not implemented on this device
//	}
//
// # Error Handling
//
// Transport errors during walks are retried with exponential backoff:
//
//	client, err := snmp.NewClient(
//	    "10.0.0.15",
//	    snmp.MaxRetries(5),
//	    snmp.BackoffMinDelay(1*time.Second),
//	    snmp.BackoffMaxDelay(30*time.Second),
//	)
//
// # Thread Safety
//
// All operations are safe for concurrent use; round-trips to one device
// are serialized on the underlying transport.
//
// # Supported Operations
//
//   - Get: fetch a single value
//   - Walk: sequential subtree traversal
//   - BulkWalk: bulk subtree traversal with adaptive pagination
//   - Set: single-value write with an explicit target type
//
// # References
//
//   - SNMP v2c Protocol Operations: https://datatracker.ietf.org/doc/html/rfc1905
//   - gosnmp: https://github.com/gosnmp/gosnmp
//   - gjson: https://github.com/tidwall/gjson
//   - sjson: https://github.com/tidwall/sjson
package snmp
