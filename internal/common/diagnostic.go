package common

import "strings"

// EmptyRunReport describes a run that succeeded but printed nothing
type EmptyRunReport struct {
	Wallet     string
	Checksum   string
	Module     string
	Direction  string
	StartBlock string
	StopBlock  string
}

// String renders the report as the plain-text placeholder written to the result file
func (r EmptyRunReport) String() string {
	lines := []string{
		"No output produced by Substreams for the given parameters.",
		"Wallet: " + r.Wallet,
	}
	if r.Checksum != "" {
		lines = append(lines, "Checksum: "+r.Checksum)
	}
	lines = append(lines,
		"Module: "+r.Module,
		"Direction: "+r.Direction,
		"Start block: "+r.StartBlock,
		"Stop block: "+r.StopBlock,
	)
	return strings.Join(lines, "\n")
}
