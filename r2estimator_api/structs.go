package r2estimator_api

// The struct representing the header of a VCF file
type Header struct {
	// All meta-information lines (the ones starting with ##) in input order
	Lines []HeaderLine

	// List of all samples in the VCF file, in column order
	Samples []string
}

// A struct representing one meta-information line of the header
type HeaderLine struct {
	// The category of the line, e.g. "INFO", "FORMAT", "contig" or "fileformat"
	Category string

	// Everything after the first '=' sign
	// Structured lines keep their angle brackets
	Value string
}

// A struct representing a header line in the VCF file with its ID, Number, Type and Description
type HeaderLineIdNumberTypeDescription struct {
	// The ID of the header line
	Id string

	// The number of values in the header line
	// Can be any integer, "A", "G", "R" or "."
	Number string

	// The type of the header line
	// Can be "Integer", "Float", "Flag", "String" or "Character"
	Type string

	// The description of the header line, without the surrounding quotes
	Description string
}

// A struct representing a variant record of a VCF file
type Variant struct {
	// The chromosome of the variant
	Chromosome string

	// The 1-based position of the variant
	Pos int64

	// The ID of the variant
	Id string

	// The reference allele of the variant
	Ref string

	// The alternate allele(s) of the variant
	Alt string

	// The Phred-scaled quality score of the variant
	Qual string

	// The filter status of the variant
	Filter string

	// The INFO fields of the variant in the order they appear
	Info []InfoField

	// The keys of the FORMAT column
	FormatKeys []string

	// The FORMAT values of every sample, indexed as [sample][format key]
	SampleValues [][]string
}

// A struct representing one INFO field of a variant
type InfoField struct {
	// The ID of the field
	Key string

	// The comma separated values of the field
	// A Flag field has no values
	Values []string
}

// A struct representing a group of samples
type Group struct {
	// The name of the group, used as suffix for the AF_ and R2_ INFO fields
	Name string

	// The 0-based positions of the samples of this group in the sample columns
	// Always strictly increasing
	Samples []int
}

// A struct representing one line of a group membership file
type MembershipEntry struct {
	// The sample ID
	Sample string

	// The group the sample belongs to, empty when the line has no delimiter
	Group string
}

// The statistics computed for one set of haplotype dosages
type StatResult struct {
	// The mean dosage, NaN when computed over no values
	AlleleFrequency float32

	// The R-squared estimate, 0 when the allele frequency is degenerate
	RSquared float32
}

//
// Config structs
//

// The struct representing the run configuration
// Fields can be set in a YAML config file and are overridden by command line flags
type Options struct {
	// The path of the input file, "-" for stdin
	Input string `yaml:"-"`

	// The path of the output file, empty or "-" for stdout
	Output string `yaml:"output"`

	// The output format, one of OutputFormats
	// Empty means the format is derived from the output path
	OutputFormat string `yaml:"output_format"`

	// Records with a global R2 below this value are dropped
	FilterThreshold float64 `yaml:"filter_threshold"`

	// Path to a group membership file, empty for no groups
	Groups string `yaml:"groups"`

	// The FORMAT field holding the haplotype dosages
	DosageField string `yaml:"dosage_field"`

	// The multiplier of af*(1-af) in the R2 denominator, 1 or 2
	R2Denominator float64 `yaml:"r2_denominator"`

	// Enable debug logging
	Verbose bool `yaml:"verbose"`
}
