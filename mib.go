// SPDX-License-Identifier: MPL-2.0

package snmp

// mibTable is the static compiled lookup table mapping symbolic attribute
// names to their canonical numeric paths.
//
// The table covers the SNMPv2/IF-MIB system attributes plus the DOCSIS
// RF and PNM attributes this library is typically pointed at. It is
// read-only and safely shared across all sessions; adding a name means
// recompiling. Resolution never performs I/O.
var mibTable = map[string]string{
	// SNMPv2-MIB
	"sysDescr":    "1.3.6.1.2.1.1.1",
	"sysObjectID": "1.3.6.1.2.1.1.2",
	"sysUpTime":   "1.3.6.1.2.1.1.3",
	"sysContact":  "1.3.6.1.2.1.1.4",
	"sysName":     "1.3.6.1.2.1.1.5",
	"sysLocation": "1.3.6.1.2.1.1.6",

	// IF-MIB
	"ifIndex":       "1.3.6.1.2.1.2.2.1.1",
	"ifDescr":       "1.3.6.1.2.1.2.2.1.2",
	"ifType":        "1.3.6.1.2.1.2.2.1.3",
	"ifSpeed":       "1.3.6.1.2.1.2.2.1.5",
	"ifPhysAddress": "1.3.6.1.2.1.2.2.1.6",
	"ifAdminStatus": "1.3.6.1.2.1.2.2.1.7",
	"ifOperStatus":  "1.3.6.1.2.1.2.2.1.8",

	// DOCS-IF-MIB downstream channel table
	"docsIfDownChannelId":        "1.3.6.1.2.1.10.127.1.1.1.1.1",
	"docsIfDownChannelFrequency": "1.3.6.1.2.1.10.127.1.1.1.1.2",
	"docsIfDownChannelWidth":     "1.3.6.1.2.1.10.127.1.1.1.1.3",
	"docsIfDownChannelPower":     "1.3.6.1.2.1.10.127.1.1.1.1.6",

	// DOCS-IF-MIB upstream channel table
	"docsIfUpChannelId":        "1.3.6.1.2.1.10.127.1.1.2.1.1",
	"docsIfUpChannelFrequency": "1.3.6.1.2.1.10.127.1.1.2.1.2",
	"docsIfUpChannelWidth":     "1.3.6.1.2.1.10.127.1.1.2.1.3",

	// DOCS-IF-MIB signal quality table
	"docsIfSigQUnerroreds":       "1.3.6.1.2.1.10.127.1.1.4.1.2",
	"docsIfSigQCorrecteds":       "1.3.6.1.2.1.10.127.1.1.4.1.3",
	"docsIfSigQUncorrectables":   "1.3.6.1.2.1.10.127.1.1.4.1.4",
	"docsIfSigQSignalNoise":      "1.3.6.1.2.1.10.127.1.1.4.1.5",
	"docsIfSigQMicroreflections": "1.3.6.1.2.1.10.127.1.1.4.1.6",

	// DOCS-IF-MIB cable modem status
	"docsIfCmStatusValue":            "1.3.6.1.2.1.10.127.1.2.2.1.1",
	"docsIfCmStatusTxPower":          "1.3.6.1.2.1.10.127.1.2.2.1.3",
	"docsIfCmStatusEqualizationData": "1.3.6.1.2.1.10.127.1.2.2.1.17",

	// DOCS-IF3-MIB
	"docsIf3CmStatusUsTxPower":       "1.3.6.1.4.1.4491.2.1.20.1.2.1.1",
	"docsIf3CmStatusUsRangingStatus": "1.3.6.1.4.1.4491.2.1.20.1.2.1.9",

	// DOCS-IF31-MIB OFDM downstream channels
	"docsIf31CmDsOfdmChanChannelId": "1.3.6.1.4.1.4491.2.1.28.1.10.1.1",
	"docsIf31CmDsOfdmChanPlcFreq":   "1.3.6.1.4.1.4491.2.1.28.1.10.1.2",

	// DOCS-PNM-MIB
	"docsPnmCmDsOfdmRxMerMean":   "1.3.6.1.4.1.4491.2.1.27.1.2.5.1.4",
	"docsPnmCmDsOfdmRxMerStdDev": "1.3.6.1.4.1.4491.2.1.27.1.2.5.1.5",
	"docsPnmCmOfdmChEstCoefData": "1.3.6.1.4.1.4491.2.1.27.1.2.2.1.6",
}

// LookupMIBName returns the canonical numeric path for a symbolic
// attribute name
//
// Returns false when the name is not in the compiled table; Resolve then
// degrades to using the name verbatim.
func LookupMIBName(name string) (string, bool) {
	oid, ok := mibTable[name]
	return oid, ok
}

// MIBNames returns the symbolic names known to the compiled table
//
// The result is a fresh slice; mutating it does not affect resolution.
func MIBNames() []string {
	names := make([]string, 0, len(mibTable))
	for name := range mibTable {
		names = append(names, name)
	}
	return names
}
