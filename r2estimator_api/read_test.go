package r2estimator_api

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReaderHeader(t *testing.T) {
	reader, err := NewReader(strings.NewReader(testVcf))
	require.NoError(t, err)

	assert.Equal(t, []string{"S1", "S2"}, reader.Header.Samples)
	assert.Equal(t, []HeaderLine{
		{Category: "fileformat", Value: "VCFv4.2"},
		{Category: "INFO", Value: `<ID=AF,Number=A,Type=Float,Description="Old AF">`},
		{Category: "FORMAT", Value: `<ID=HDS,Number=2,Type=Float,Description="Haplotype dosages">`},
	}, reader.Header.Lines)
}

func TestNewReaderErrors(t *testing.T) {
	_, err := NewReader(strings.NewReader("##fileformat=VCFv4.2\n"))
	assert.ErrorIs(t, err, ErrNoColumnHeader)

	_, err = NewReader(strings.NewReader("##fileformat=VCFv4.2\n1\t100\t.\tA\tG\t.\t.\t.\n"))
	assert.ErrorIs(t, err, ErrNoColumnHeader)

	_, err = NewReader(strings.NewReader("##fileformat=VCFv4.2\n#comment\n#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n"))
	assert.Error(t, err)
}

func TestReadSkipsEmptyLinesAndCarriageReturns(t *testing.T) {
	input := strings.ReplaceAll(testVcf, "\n", "\r\n") + "\r\n" + "1\t200\trs2\tC\tT\t.\tPASS\t.\tHDS\t1,1\t1,1"
	reader, err := NewReader(strings.NewReader(input))
	require.NoError(t, err)

	first, err := reader.Read()
	require.NoError(t, err)
	assert.Equal(t, "rs1", first.Id)

	second, err := reader.Read()
	require.NoError(t, err)
	assert.Equal(t, "rs2", second.Id)
	assert.Equal(t, []string{"1", "1"}, second.SampleValues[1])

	_, err = reader.Read()
	assert.Equal(t, io.EOF, err)
}

func TestDecompressSniffing(t *testing.T) {
	assert.True(t, isGzip([]byte{0x1f, 0x8b, 8, 0}))
	assert.False(t, isBgzf([]byte{0x1f, 0x8b, 8, 0}))
	assert.True(t, isZstd([]byte{0x28, 0xb5, 0x2f, 0xfd}))
	assert.False(t, isZstd([]byte("##fi")))
	assert.False(t, isGzip(nil))
}

func TestOpenReaderZstd(t *testing.T) {
	var buffer bytes.Buffer
	encoder, err := zstd.NewWriter(&buffer)
	require.NoError(t, err)
	_, err = encoder.Write([]byte(testVcf))
	require.NoError(t, err)
	require.NoError(t, encoder.Close())

	path := filepath.Join(t.TempDir(), "in.vcf.zst")
	require.NoError(t, os.WriteFile(path, buffer.Bytes(), 0o644))

	variants := readRecords(t, path)
	require.Len(t, variants, 1)
	assert.Equal(t, "rs1", variants[0].Id)
}

func TestOpenReaderEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.vcf")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	_, err := OpenReader(path)
	assert.ErrorIs(t, err, ErrNoColumnHeader)
}
