package r2estimator_api

import (
	"errors"
	"fmt"
	"io"
)

// A source of variant records, Read returns io.EOF at the end
type VariantSource interface {
	Read() (*Variant, error)
}

// A destination for variant records
type VariantSink interface {
	Write(variant *Variant) error
}

// Pipeline holds everything built once from the input header and the options
type Pipeline struct {
	// The header of the output file
	Header *Header

	Transformer *Transformer
}

// Counters of a finished stream
type Counts struct {
	Read    int
	Emitted int
	Dropped int
}

// Open the input, annotate all records and write them to the output
func Execute(options *Options) (err error) {
	reader, err := OpenReader(options.Input)
	if err != nil {
		return fmt.Errorf("failed to open input file (%s): %w", options.Input, err)
	}
	defer func() {
		if closeErr := reader.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close input file (%s): %w", options.Input, closeErr)
		}
	}()

	pipeline, err := NewPipeline(reader.Header, options)
	if err != nil {
		return err
	}

	writer, err := OpenWriter(options.Output, options.ResolvedOutputFormat(), pipeline.Header)
	if err != nil {
		return fmt.Errorf("failed to open output file (%s): %w", outputName(options.Output), err)
	}

	counts, streamErr := pipeline.Run(reader, writer)
	closeErr := writer.Close()
	Log.Debugf("Read %d records, wrote %d, dropped %d", counts.Read, counts.Emitted, counts.Dropped)

	if streamErr != nil {
		return streamErr
	}
	if closeErr != nil {
		return fmt.Errorf("failed to finish output file (%s): %w", outputName(options.Output), closeErr)
	}
	return nil
}

// Build the groups, output header and transformer for an input header
func NewPipeline(header *Header, options *Options) (*Pipeline, error) {
	groups := []Group{}
	if options.Groups != "" {
		entries, err := ReadMembership(options.Groups)
		if err != nil {
			return nil, err
		}
		groups = BuildGroups(entries, header.Samples)
	}
	for _, group := range groups {
		Log.Debugf("Group '%s' has %d samples", group.Name, len(group.Samples))
	}

	rewrite := RewriteHeader(header.Lines, GroupNames(groups))
	if rewrite.MAFDeclared {
		Log.Debug("INFO/MAF is declared in the input, MAF will be written")
	}

	return &Pipeline{
		Header: &Header{
			Lines:   rewrite.Lines,
			Samples: header.Samples,
		},
		Transformer: &Transformer{
			DosageField: options.DosageField,
			SampleCount: len(header.Samples),
			Groups:      groups,
			EmitMAF:     rewrite.MAFDeclared,
			Threshold:   options.FilterThreshold,
			Estimator:   Estimator{Denominator: options.R2Denominator},
		},
	}, nil
}

// Pull all records from the source, annotate them and push the ones that pass the threshold to the sink
// The first error stops the stream
func (pipeline *Pipeline) Run(source VariantSource, sink VariantSink) (Counts, error) {
	counts := Counts{}
	for {
		variant, err := source.Read()
		if errors.Is(err, io.EOF) {
			return counts, nil
		}
		if err != nil {
			return counts, fmt.Errorf("failed to read record %d: %w", counts.Read+1, err)
		}
		counts.Read++

		outcome, err := pipeline.Transformer.Process(variant)
		if err != nil {
			return counts, fmt.Errorf("%s:%d: %w", variant.Chromosome, variant.Pos, err)
		}
		if outcome == Drop {
			counts.Dropped++
			continue
		}

		if err := sink.Write(variant); err != nil {
			return counts, fmt.Errorf("failed to write record %s:%d: %w", variant.Chromosome, variant.Pos, err)
		}
		counts.Emitted++
	}
}

func outputName(path string) string {
	if path == "" || path == "-" {
		return "stdout"
	}
	return path
}
