package r2estimator_api

import "errors"

var (
	// A record does not carry the dosage FORMAT field
	ErrMissingField = errors.New("required FORMAT field not present")

	// The dosage values cannot be split evenly over the samples
	ErrPloidy = errors.New("dosage values do not match the number of samples")

	// The requested output format cannot be written by this tool
	ErrUnsupportedFormat = errors.New("unsupported output format")

	// Compressed output was requested on a terminal
	ErrTerminalOutput = errors.New("refusing to write compressed output to a terminal")

	// The input ended before the #CHROM line
	ErrNoColumnHeader = errors.New("no #CHROM header line found")
)
