package r2estimator_api

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/biogo/hts/bgzf"
	"github.com/carbocation/pfx"
	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
)

// A streaming VCF reader
type Reader struct {
	// The header of the input file, available after opening
	Header *Header

	input      *bufio.Reader
	closers    []func() error
	lineNumber int
}

// Open a VCF file for reading, "-" reads from stdin
// Plain, BGZF, gzip and zstd compressed input is detected from the first bytes
func OpenReader(path string) (*Reader, error) {
	var input io.Reader = os.Stdin
	closers := []func() error{}
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, pfx.Err(err)
		}
		input = file
		closers = append(closers, file.Close)
	}

	decompressed, closeDecompressor, err := decompress(input)
	if err != nil {
		closeAll(closers)
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}
	if closeDecompressor != nil {
		closers = append([]func() error{closeDecompressor}, closers...)
	}

	reader, err := NewReader(decompressed)
	if err != nil {
		closeAll(closers)
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	reader.closers = closers
	return reader, nil
}

// Create a reader on an uncompressed VCF stream and parse its header
func NewReader(input io.Reader) (*Reader, error) {
	reader := &Reader{
		Header: &Header{Lines: []HeaderLine{}, Samples: []string{}},
		input:  bufio.NewReaderSize(input, 1<<20),
	}

	for {
		line, err := reader.readLine()
		if err == io.EOF {
			return nil, ErrNoColumnHeader
		}
		if err != nil {
			return nil, err
		}
		if !strings.HasPrefix(line, "#") {
			return nil, ErrNoColumnHeader
		}
		if err := reader.Header.parse(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", reader.lineNumber, err)
		}
		if strings.HasPrefix(line, "#CHROM") {
			return reader, nil
		}
	}
}

// Read the next variant, returns io.EOF at the end of the stream
func (reader *Reader) Read() (*Variant, error) {
	for {
		line, err := reader.readLine()
		if err != nil {
			return nil, err
		}
		if line == "" {
			continue
		}

		variant, err := parseVariant(line, len(reader.Header.Samples))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", reader.lineNumber, err)
		}
		return variant, nil
	}
}

// Close the underlying decompressor and file
func (reader *Reader) Close() error {
	return closeAll(reader.closers)
}

// readLine reads a line without its line ending, a last line without newline is returned without error
func (reader *Reader) readLine() (string, error) {
	line, err := reader.input.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		if err != io.EOF {
			err = pfx.Err(err)
		}
		return "", err
	}
	reader.lineNumber++
	return strings.TrimRight(line, "\r\n"), nil
}

// Wrap the input in the decompressor matching its magic bytes
func decompress(input io.Reader) (io.Reader, func() error, error) {
	buffered := bufio.NewReader(input)
	magic, err := buffered.Peek(14)
	if err != nil && err != io.EOF {
		return nil, nil, err
	}

	switch {
	case isBgzf(magic):
		bgReader, err := bgzf.NewReader(buffered, 1)
		if err != nil {
			return nil, nil, err
		}
		return bgReader, bgReader.Close, nil
	case isGzip(magic):
		gzReader, err := pgzip.NewReader(buffered)
		if err != nil {
			return nil, nil, err
		}
		return gzReader, gzReader.Close, nil
	case isZstd(magic):
		zstdReader, err := zstd.NewReader(buffered)
		if err != nil {
			return nil, nil, err
		}
		return zstdReader, func() error { zstdReader.Close(); return nil }, nil
	}
	return buffered, nil, nil
}

func isGzip(magic []byte) bool {
	return len(magic) >= 2 && magic[0] == 0x1f && magic[1] == 0x8b
}

// BGZF is gzip with the FEXTRA flag and a "BC" extra subfield
func isBgzf(magic []byte) bool {
	return isGzip(magic) && len(magic) >= 14 && magic[3]&0x04 != 0 && magic[12] == 'B' && magic[13] == 'C'
}

func isZstd(magic []byte) bool {
	return len(magic) >= 4 && magic[0] == 0x28 && magic[1] == 0xb5 && magic[2] == 0x2f && magic[3] == 0xfd
}

// Call all closers in order and join their errors
func closeAll(closers []func() error) error {
	var errs []error
	for _, closer := range closers {
		if err := closer(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
