package r2estimator_api

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/biogo/hts/bgzf"
	"github.com/carbocation/pfx"
	"github.com/klauspost/compress/zstd"
	"github.com/mattn/go-isatty"
)

// A streaming VCF writer
type Writer struct {
	output      *bufio.Writer
	closers     []func() error
	sampleCount int
}

// Open the output file in the given format and write the header, an empty path or "-" writes to stdout
func OpenWriter(path string, format string, header *Header) (*Writer, error) {
	if err := ValidateOutputFormat(format); err != nil {
		return nil, err
	}

	var file io.Writer = os.Stdout
	closers := []func() error{}
	if path != "" && path != "-" {
		outputFile, err := os.Create(path)
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("failed to create the output file: %w", err))
		}
		file = outputFile
		closers = append(closers, outputFile.Close)
	} else if format != "vcf" && isatty.IsTerminal(os.Stdout.Fd()) {
		return nil, ErrTerminalOutput
	}

	switch format {
	case "vcf.gz":
		bgWriter := bgzf.NewWriter(file, 1)
		closers = append([]func() error{bgWriter.Close}, closers...)
		file = bgWriter
	case "vcf.zst":
		zstdWriter, err := zstd.NewWriter(file)
		if err != nil {
			closeAll(closers)
			return nil, pfx.Err(err)
		}
		closers = append([]func() error{zstdWriter.Close}, closers...)
		file = zstdWriter
	}

	writer, err := NewWriter(file, header)
	if err != nil {
		closeAll(closers)
		return nil, err
	}
	writer.closers = closers
	return writer, nil
}

// Create a writer on an uncompressed stream and write the header to it
func NewWriter(output io.Writer, header *Header) (*Writer, error) {
	writer := &Writer{
		output:      bufio.NewWriterSize(output, 1<<20),
		sampleCount: len(header.Samples),
	}
	if err := writer.writeHeader(header); err != nil {
		return nil, err
	}
	return writer, nil
}

func (writer *Writer) writeHeader(header *Header) error {
	// VCF version
	if len(header.Lines) == 0 || header.Lines[0].Category != "fileformat" {
		if err := writer.writeLine("##fileformat=VCFv4.2"); err != nil {
			return err
		}
	}

	for _, line := range header.Lines {
		if err := writer.writeLine(fmt.Sprintf("##%s=%s", line.Category, line.Value)); err != nil {
			return err
		}
	}

	// Write the column headers
	columnHeaders := []string{"#CHROM", "POS", "ID", "REF", "ALT", "QUAL", "FILTER", "INFO"}
	if len(header.Samples) > 0 {
		columnHeaders = append(columnHeaders, "FORMAT")
		columnHeaders = append(columnHeaders, header.Samples...)
	}
	return writer.writeLine(strings.Join(columnHeaders, "\t"))
}

// Write a variant record
func (writer *Writer) Write(variant *Variant) error {
	if len(variant.SampleValues) != writer.sampleCount {
		return fmt.Errorf("variant %s:%d has %d samples, the header has %d", variant.Chromosome, variant.Pos, len(variant.SampleValues), writer.sampleCount)
	}
	return writer.writeLine(variant.String())
}

// Flush all buffered output and close the compressor and file
func (writer *Writer) Close() error {
	if err := writer.output.Flush(); err != nil {
		closeAll(writer.closers)
		return pfx.Err(err)
	}
	if err := closeAll(writer.closers); err != nil {
		return pfx.Err(err)
	}
	return nil
}

// Write a line to the output
func (writer *Writer) writeLine(line string) error {
	if _, err := writer.output.WriteString(line); err != nil {
		return pfx.Err(err)
	}
	if err := writer.output.WriteByte('\n'); err != nil {
		return pfx.Err(err)
	}
	return nil
}
