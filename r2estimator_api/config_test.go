package r2estimator_api

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cli "github.com/urfave/cli/v2"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, "dosage_field: DS\nfilter_threshold: 0.3\nr2_denominator: 2\ngroups: groups.txt\noutput_format: vcf.gz\n")

	options := DefaultOptions()
	require.NoError(t, options.LoadFile(path))
	assert.Equal(t, &Options{
		Input:           "-",
		OutputFormat:    "vcf.gz",
		FilterThreshold: 0.3,
		Groups:          "groups.txt",
		DosageField:     "DS",
		R2Denominator:   2,
	}, options)

	assert.Error(t, DefaultOptions().LoadFile(writeConfig(t, "unknown_key: 1\n")))
	assert.Error(t, DefaultOptions().LoadFile(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Options)
		threshold float64
		wantErr   error
		invalid   bool
	}{
		{name: "defaults", modify: func(o *Options) {}},
		{name: "threshold above one", modify: func(o *Options) { o.FilterThreshold = 1.5 }, threshold: 1},
		{name: "negative threshold", modify: func(o *Options) { o.FilterThreshold = -0.5 }, threshold: 0},
		{name: "threshold in range", modify: func(o *Options) { o.FilterThreshold = 0.8 }, threshold: 0.8},
		{name: "NaN threshold", modify: func(o *Options) { o.FilterThreshold = math.NaN() }, threshold: 1},
		{name: "legacy denominator", modify: func(o *Options) { o.R2Denominator = 2 }},
		{name: "bad denominator", modify: func(o *Options) { o.R2Denominator = 3 }, invalid: true},
		{name: "empty dosage field", modify: func(o *Options) { o.DosageField = "" }, invalid: true},
		{name: "sav output", modify: func(o *Options) { o.OutputFormat = "sav" }, wantErr: ErrUnsupportedFormat, invalid: true},
		{name: "unknown output", modify: func(o *Options) { o.OutputFormat = "cram" }, invalid: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			options := DefaultOptions()
			test.modify(options)
			err := options.Validate()
			if !test.invalid {
				require.NoError(t, err)
				assert.Equal(t, test.threshold, options.FilterThreshold)
				return
			}
			assert.Error(t, err)
			if test.wantErr != nil {
				assert.ErrorIs(t, err, test.wantErr)
			}
		})
	}
}

func TestResolvedOutputFormat(t *testing.T) {
	tests := []struct {
		output string
		format string
		want   string
	}{
		{"", "", "vcf"},
		{"out.vcf", "", "vcf"},
		{"out.vcf.gz", "", "vcf.gz"},
		{"out.vcf.zst", "", "vcf.zst"},
		{"out.vcf.gz", "vcf", "vcf"},
	}
	for _, test := range tests {
		options := &Options{Output: test.output, OutputFormat: test.format}
		assert.Equal(t, test.want, options.ResolvedOutputFormat(), test.output)
	}
}

func TestReadConfig(t *testing.T) {
	configPath := writeConfig(t, "filter_threshold: 0.3\ndosage_field: DS\n")

	var options *Options
	app := &cli.App{
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}},
			&cli.Float64Flag{Name: "filter-threshold", Aliases: []string{"t"}},
			&cli.StringFlag{Name: "dosage-field", Value: "HDS"},
		},
		Action: func(Cctx *cli.Context) error {
			var err error
			options, err = ReadConfig(Cctx)
			return err
		},
	}

	require.NoError(t, app.Run([]string{"r2estimator", "-c", configPath, "-t", "2", "-o", "out.vcf.gz", "in.vcf"}))
	assert.Equal(t, "in.vcf", options.Input)
	assert.Equal(t, "out.vcf.gz", options.Output)
	assert.Equal(t, 1.0, options.FilterThreshold)
	// not set on the command line, so the config value is kept
	assert.Equal(t, "DS", options.DosageField)
	assert.Equal(t, 1.0, options.R2Denominator)
}
