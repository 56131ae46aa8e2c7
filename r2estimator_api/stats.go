package r2estimator_api

import (
	"gonum.org/v1/gonum/stat"
)

// Estimator computes allele frequencies and R2 estimates from haplotype dosages
type Estimator struct {
	// Multiplier of af*(1-af) in the R2 denominator, 0 is treated as 1
	// 1 gives the ratio of the dosage variance to the binomial variance, 2 is the legacy definition
	Denominator float64
}

// Estimate the allele frequency and R2 over all values
// Accumulation happens in float64, the results are rounded to float32
func (estimator Estimator) Estimate(values []float32) StatResult {
	dosages := make([]float64, len(values))
	for index, value := range values {
		dosages[index] = float64(value)
	}
	return estimator.estimate(dosages)
}

// Estimate the allele frequency and R2 over the haplotypes of a subset of samples
// Sample i owns the values [i*ploidy, (i+1)*ploidy)
func (estimator Estimator) EstimateSamples(values []float32, samples []int, ploidy int) StatResult {
	dosages := make([]float64, 0, len(samples)*ploidy)
	for _, sample := range samples {
		for _, value := range values[sample*ploidy : (sample+1)*ploidy] {
			dosages = append(dosages, float64(value))
		}
	}
	return estimator.estimate(dosages)
}

func (estimator Estimator) estimate(dosages []float64) StatResult {
	denominator := estimator.Denominator
	if denominator == 0 {
		denominator = 1
	}
	af := stat.Mean(dosages, nil)

	// Population variance, sum of squared deviations over n
	r2 := 0.0
	if af > 0 && af < 1 {
		r2 = stat.Moment(2, dosages, nil) / (denominator * af * (1 - af))
	}

	return StatResult{
		AlleleFrequency: float32(af),
		RSquared:        float32(r2),
	}
}
