package r2estimator_api

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWriterHeader(t *testing.T) {
	var output bytes.Buffer
	writer, err := NewWriter(&output, &Header{
		Lines: []HeaderLine{{Category: "source", Value: "minimac4"}},
	})
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	assert.Equal(t, "##fileformat=VCFv4.2\n##source=minimac4\n#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n", output.String())
}

func TestWriterSampleMismatch(t *testing.T) {
	var output bytes.Buffer
	writer, err := NewWriter(&output, &Header{Samples: []string{"S1"}})
	require.NoError(t, err)

	variant, err := parseVariant("1\t100\t.\tA\tG\t.\t.\t.", 0)
	require.NoError(t, err)
	assert.Error(t, writer.Write(variant))
}

func TestOpenWriterUnsupportedFormat(t *testing.T) {
	_, err := OpenWriter(t.TempDir()+"/out.bcf", "bcf", &Header{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
