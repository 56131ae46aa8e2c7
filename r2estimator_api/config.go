package r2estimator_api

import (
	"fmt"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/carbocation/pfx"
	cli "github.com/urfave/cli/v2"
	"gopkg.in/yaml.v2"
)

// The output formats that can be written
var OutputFormats = []string{"vcf", "vcf.gz", "vcf.zst"}

// Binary formats that are recognised but can't be written
var unsupportedFormats = []string{"sav", "bcf"}

// Return the default options
func DefaultOptions() *Options {
	return &Options{
		Input:           "-",
		DosageField:     "HDS",
		R2Denominator:   1,
		FilterThreshold: 0,
	}
}

// Read the configuration file (if given) and the command line flags into the options and validate them
// Flags that were set explicitly take precedence over the config file
func ReadConfig(Cctx *cli.Context) (*Options, error) {
	options := DefaultOptions()

	if path := Cctx.String("config"); path != "" {
		if err := options.LoadFile(path); err != nil {
			return nil, err
		}
	}

	options.Input = Cctx.Args().First()
	if Cctx.IsSet("output") {
		options.Output = Cctx.String("output")
	}
	if Cctx.IsSet("output-format") {
		options.OutputFormat = Cctx.String("output-format")
	}
	if Cctx.IsSet("filter-threshold") {
		options.FilterThreshold = Cctx.Float64("filter-threshold")
	}
	if Cctx.IsSet("groups") {
		options.Groups = Cctx.String("groups")
	}
	if Cctx.IsSet("dosage-field") {
		options.DosageField = Cctx.String("dosage-field")
	}
	if Cctx.IsSet("r2-denominator") {
		options.R2Denominator = Cctx.Float64("r2-denominator")
	}
	if Cctx.IsSet("verbose") {
		options.Verbose = Cctx.Bool("verbose")
	}

	if err := options.Validate(); err != nil {
		return nil, err
	}
	return options, nil
}

// Read a YAML config file on top of the current options
func (options *Options) LoadFile(path string) error {
	configFile, err := os.ReadFile(path)
	if err != nil {
		return pfx.Err(fmt.Errorf("failed to open the config file: %w", err))
	}

	if err := yaml.UnmarshalStrict(configFile, options); err != nil {
		return pfx.Err(fmt.Errorf("failed to parse the config file: %w", err))
	}
	return nil
}

// Validate the options, clamping the filter threshold to [0,1] (NaN becomes 1)
func (options *Options) Validate() error {
	if math.IsNaN(options.FilterThreshold) {
		options.FilterThreshold = 1
	}
	options.FilterThreshold = max(0, min(1, options.FilterThreshold))

	if options.DosageField == "" {
		return fmt.Errorf("the dosage field can't be empty")
	}
	if options.R2Denominator != 1 && options.R2Denominator != 2 {
		return fmt.Errorf("invalid R2 denominator %v, must be 1 or 2", options.R2Denominator)
	}
	if options.OutputFormat != "" {
		if err := ValidateOutputFormat(options.OutputFormat); err != nil {
			return err
		}
	}
	return nil
}

// Check if a format is one of OutputFormats
func ValidateOutputFormat(format string) error {
	if slices.Contains(OutputFormats, format) {
		return nil
	}
	if slices.Contains(unsupportedFormats, format) {
		return fmt.Errorf("%w '%s', must be one of: %s", ErrUnsupportedFormat, format, strings.Join(OutputFormats, ", "))
	}
	return fmt.Errorf("invalid output format '%s', must be one of: %s", format, strings.Join(OutputFormats, ", "))
}

// Determine the output format, deriving it from the output path when none was given
func (options *Options) ResolvedOutputFormat() string {
	if options.OutputFormat != "" {
		return options.OutputFormat
	}
	switch {
	case strings.HasSuffix(options.Output, ".gz"):
		return "vcf.gz"
	case strings.HasSuffix(options.Output, ".zst"):
		return "vcf.zst"
	}
	return "vcf"
}
