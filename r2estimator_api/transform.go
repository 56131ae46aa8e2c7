package r2estimator_api

import "fmt"

// What happens to a record after it has been processed
type Outcome int

const (
	// The record was annotated and should be written
	Emit Outcome = iota
	// The global R2 is below the threshold, the record is left untouched and not written
	Drop
)

func (outcome Outcome) String() string {
	switch outcome {
	case Emit:
		return "emit"
	case Drop:
		return "drop"
	}
	return fmt.Sprintf("Outcome(%d)", int(outcome))
}

// The capabilities of a record needed to annotate it
type Record interface {
	FormatFloats(key string) ([]float32, error)
	SetInfoFloat(key string, value float32)
}

// Transformer computes the statistics of one record and writes them to its INFO fields
type Transformer struct {
	// The FORMAT field holding the haplotype dosages
	DosageField string

	// The number of samples in every record
	SampleCount int

	// The groups to compute separate statistics for, empty groups are skipped
	Groups []Group

	// Also write INFO/MAF
	EmitMAF bool

	// Records with a global R2 below this value are dropped
	Threshold float64

	Estimator Estimator
}

// Process a record. A missing dosage field or an uneven ploidy is returned as an error,
// the stream can't continue after either.
func (transformer *Transformer) Process(record Record) (Outcome, error) {
	dosages, err := record.FormatFloats(transformer.DosageField)
	if err != nil {
		return Drop, err
	}

	if transformer.SampleCount == 0 || len(dosages) == 0 || len(dosages)%transformer.SampleCount != 0 {
		return Drop, fmt.Errorf("%w: %d values for %d samples", ErrPloidy, len(dosages), transformer.SampleCount)
	}
	ploidy := len(dosages) / transformer.SampleCount

	global := transformer.Estimator.Estimate(dosages)
	if float64(global.RSquared) < transformer.Threshold {
		return Drop, nil
	}

	record.SetInfoFloat("AF", global.AlleleFrequency)
	record.SetInfoFloat("R2", global.RSquared)
	if transformer.EmitMAF {
		record.SetInfoFloat("MAF", minorAlleleFrequency(global.AlleleFrequency))
	}

	for _, group := range transformer.Groups {
		if len(group.Samples) == 0 {
			continue
		}
		result := transformer.Estimator.EstimateSamples(dosages, group.Samples, ploidy)
		afId, r2Id := groupFieldIds(group.Name)
		record.SetInfoFloat(afId, result.AlleleFrequency)
		record.SetInfoFloat(r2Id, result.RSquared)
	}

	return Emit, nil
}

func minorAlleleFrequency(af float32) float32 {
	if af > 0.5 {
		return 1 - af
	}
	return af
}
