package r2estimator_api

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Parse a record line into a Variant
func parseVariant(line string, sampleCount int) (*Variant, error) {
	data := strings.Split(line, "\t")
	if len(data) < 8 {
		return nil, fmt.Errorf("expected at least 8 columns, found %d", len(data))
	}

	pos, err := strconv.ParseInt(data[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid position '%s': %w", data[1], err)
	}

	variant := &Variant{
		Chromosome: data[0],
		Pos:        pos,
		Id:         data[2],
		Ref:        data[3],
		Alt:        data[4],
		Qual:       data[5],
		Filter:     data[6],
		Info:       parseInfo(data[7]),
	}

	if len(data) == 8 {
		if sampleCount > 0 {
			return nil, fmt.Errorf("expected %d sample columns, found none", sampleCount)
		}
		return variant, nil
	}

	samples := data[9:]
	if len(samples) != sampleCount {
		return nil, fmt.Errorf("expected %d sample columns, found %d", sampleCount, len(samples))
	}
	variant.FormatKeys = strings.Split(data[8], ":")
	variant.SampleValues = make([][]string, len(samples))
	for index, sample := range samples {
		variant.SampleValues[index] = strings.Split(sample, ":")
	}
	return variant, nil
}

// Parse the INFO column, "." means no fields
func parseInfo(column string) []InfoField {
	if column == "." || column == "" {
		return []InfoField{}
	}
	fields := []InfoField{}
	for _, i := range strings.Split(column, ";") {
		split := strings.SplitN(i, "=", 2)
		field := InfoField{Key: split[0]}
		if len(split) > 1 {
			field.Values = strings.Split(split[1], ",")
		}
		fields = append(fields, field)
	}
	return fields
}

// Decode a per-sample float FORMAT field into one flat slice
// Every sample must have the same amount of values, missing values ('.') are decoded as NaN.
// A sample that is missing as a whole is padded to the ploidy of the other samples.
func (variant *Variant) FormatFloats(key string) ([]float32, error) {
	index := slices.Index(variant.FormatKeys, key)
	if index < 0 {
		return nil, fmt.Errorf("%w: FORMAT/%s", ErrMissingField, key)
	}

	raw := make([][]string, len(variant.SampleValues))
	perSample := 0
	for sample, fields := range variant.SampleValues {
		raw[sample] = []string{"."}
		if index < len(fields) {
			raw[sample] = strings.Split(fields[index], ",")
		}
		if !isMissingSample(raw[sample]) && perSample == 0 {
			perSample = len(raw[sample])
		}
	}
	if perSample == 0 {
		perSample = 1
	}

	values := make([]float32, 0, perSample*len(raw))
	for sample, split := range raw {
		if isMissingSample(split) {
			for h := 0; h < perSample; h++ {
				values = append(values, float32(math.NaN()))
			}
			continue
		}
		if len(split) != perSample {
			return nil, fmt.Errorf("%w: sample %d has %d values in FORMAT/%s, expected %d", ErrPloidy, sample, len(split), key, perSample)
		}
		for _, v := range split {
			value, err := parseFloat(v)
			if err != nil {
				return nil, fmt.Errorf("FORMAT/%s of sample %d: %w", key, sample, err)
			}
			values = append(values, value)
		}
	}
	return values, nil
}

func isMissingSample(split []string) bool {
	return len(split) == 1 && split[0] == "."
}

// Get the values of an INFO field
func (variant *Variant) GetInfo(key string) ([]string, bool) {
	for _, field := range variant.Info {
		if field.Key == key {
			return field.Values, true
		}
	}
	return nil, false
}

// Set an INFO field, replacing the existing field with the same key
func (variant *Variant) SetInfo(key string, values ...string) {
	for index := range variant.Info {
		if variant.Info[index].Key == key {
			variant.Info[index].Values = values
			return
		}
	}
	variant.Info = append(variant.Info, InfoField{Key: key, Values: values})
}

// Set a single float INFO field
func (variant *Variant) SetInfoFloat(key string, value float32) {
	variant.SetInfo(key, formatFloat(value))
}

func parseFloat(value string) (float32, error) {
	if value == "." {
		return float32(math.NaN()), nil
	}
	parsed, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return 0, err
	}
	return float32(parsed), nil
}

// Shortest representation of a float32, NaN is written as missing
func formatFloat(value float32) string {
	if math.IsNaN(float64(value)) {
		return "."
	}
	return strconv.FormatFloat(float64(value), 'g', -1, 32)
}

// Convert a variant to a VCF record line
func (variant *Variant) String() string {
	infoSlice := make([]string, 0, len(variant.Info))
	for _, field := range variant.Info {
		if field.Values == nil {
			infoSlice = append(infoSlice, field.Key)
			continue
		}
		infoSlice = append(infoSlice, fmt.Sprintf("%s=%s", field.Key, strings.Join(field.Values, ",")))
	}
	info := strings.Join(infoSlice, ";")
	if info == "" {
		info = "."
	}

	var line strings.Builder
	fmt.Fprintf(
		&line,
		"%v\t%v\t%v\t%v\t%v\t%v\t%v\t%v",
		variant.Chromosome,
		variant.Pos,
		variant.Id,
		variant.Ref,
		variant.Alt,
		variant.Qual,
		variant.Filter,
		info,
	)
	if variant.FormatKeys == nil {
		return line.String()
	}

	line.WriteString("\t")
	line.WriteString(strings.Join(variant.FormatKeys, ":"))
	for _, sample := range variant.SampleValues {
		line.WriteString("\t")
		line.WriteString(strings.Join(sample, ":"))
	}
	return line.String()
}
