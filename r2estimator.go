package main

import (
	"os"

	"github.com/nvnieuwk/r2estimator/r2estimator_api"
	cli "github.com/urfave/cli/v2"
)

func main() {
	r2estimator_api.ConfigureLogging(false)
	if err := newApp().Run(os.Args); err != nil {
		r2estimator_api.Log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:            "r2estimator",
		Usage:           "Compute allele frequencies and imputation R2 estimates from haplotype dosages",
		UsageText:       "r2estimator [options] <in.{vcf,vcf.gz,vcf.zst}>",
		HideHelpCommand: true,
		Version:         "0.1.0dev",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "Path to the output file, defaults to stdout",
				Category: "Optional",
			},
			&cli.StringFlag{
				Name:     "output-format",
				Aliases:  []string{"O"},
				Usage:    "Output file format (vcf, vcf.gz or vcf.zst). By default the format is derived from the output path. sav and bcf can't be written by this tool",
				Category: "Optional",
				Action: func(c *cli.Context, input string) error {
					if err := r2estimator_api.ValidateOutputFormat(input); err != nil {
						return cli.Exit(err.Error(), 1)
					}
					return nil
				},
			},
			&cli.Float64Flag{
				Name:     "filter-threshold",
				Aliases:  []string{"t"},
				Usage:    "Drop variants with an R2 below this value, clamped to [0,1]",
				Value:    0,
				Category: "Optional",
			},
			&cli.StringFlag{
				Name:     "groups",
				Aliases:  []string{"g"},
				Usage:    "File with one '<sample> <group>' pair per line, AF and R2 are also computed per group",
				Category: "Optional",
			},
			&cli.StringFlag{
				Name:     "dosage-field",
				Aliases:  []string{"f"},
				Usage:    "The FORMAT field containing the haplotype dosages",
				Value:    "HDS",
				Category: "Optional",
			},
			&cli.Float64Flag{
				Name:     "r2-denominator",
				Usage:    "Multiplier of af*(1-af) in the R2 denominator (1 or 2)",
				Value:    1,
				Category: "Optional",
			},
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "Configuration file (YAML) with defaults for the options above",
				Category: "Optional",
			},
			&cli.BoolFlag{
				Name:     "verbose",
				Aliases:  []string{"V"},
				Usage:    "Print debug information to stderr",
				Category: "Optional",
			},
		},
		Action: func(Cctx *cli.Context) error {
			if Cctx.NArg() != 1 {
				message := "Too few arguments"
				if Cctx.NArg() > 1 {
					message = "Too many arguments"
				}
				Cctx.App.Writer = os.Stderr
				cli.ShowAppHelp(Cctx)
				return cli.Exit(message, 1)
			}

			options, err := r2estimator_api.ReadConfig(Cctx)
			if err != nil {
				Cctx.App.Writer = os.Stderr
				cli.ShowAppHelp(Cctx)
				return cli.Exit(err.Error(), 1)
			}
			r2estimator_api.ConfigureLogging(options.Verbose)
			return r2estimator_api.Execute(options)
		},
	}
}
