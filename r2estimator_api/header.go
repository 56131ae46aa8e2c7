package r2estimator_api

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	headerLineRegex = regexp.MustCompile(`^##(?P<category>[^=]*)=(?P<value>.*)$`)
	structuredRegex = regexp.MustCompile(`^<(?P<content>.*)>$`)
)

// The result of rewriting a header for the output file
type HeaderRewrite struct {
	// The new meta-information lines
	Lines []HeaderLine

	// Whether the input already declared an INFO/MAF field
	MAFDeclared bool
}

// Parse the header line and add it to the Header struct
func (header *Header) parse(line string) error {
	if strings.HasPrefix(line, "#CHROM") {
		columns := strings.Split(line, "\t")
		if len(columns) > 9 {
			header.Samples = columns[9:]
		} else {
			header.Samples = []string{}
		}
		return nil
	}

	matches := headerLineRegex.FindStringSubmatch(line)
	if len(matches) == 0 {
		return fmt.Errorf("malformed header line '%s'", line)
	}
	header.Lines = append(header.Lines, HeaderLine{Category: matches[1], Value: matches[2]})
	return nil
}

// Parse the structured content of a header line, the second return value is false for unstructured lines
func (line HeaderLine) Declaration() (HeaderLineIdNumberTypeDescription, bool) {
	matches := structuredRegex.FindStringSubmatch(line.Value)
	if len(matches) == 0 {
		return HeaderLineIdNumberTypeDescription{}, false
	}
	contentMap := convertLineToMap(matches[1])
	return HeaderLineIdNumberTypeDescription{
		Id:          contentMap["id"],
		Number:      contentMap["number"],
		Type:        contentMap["type"],
		Description: strings.Trim(contentMap["description"], `"'`),
	}, true
}

// The ID of a structured header line, empty for unstructured lines
func (line HeaderLine) Id() string {
	declaration, ok := line.Declaration()
	if !ok {
		return ""
	}
	return declaration.Id
}

// Render a declaration as a header line of the given category
func (declaration HeaderLineIdNumberTypeDescription) HeaderLine(category string) HeaderLine {
	declarationType := cases.Title(language.English, cases.Compact).String(strings.ToLower(declaration.Type))
	return HeaderLine{
		Category: category,
		Value: fmt.Sprintf(
			"<ID=%s,Number=%s,Type=%s,Description=\"%s\">",
			declaration.Id,
			declaration.Number,
			declarationType,
			declaration.Description,
		),
	}
}

// convertLineToMap converts the header line contents to a map suitable to transform to a struct
func convertLineToMap(line string) map[string]string {
	data := map[string]string{}
	var word strings.Builder
	key := ""
	quote := rune(0)
	for _, letter := range line {
		if letter == '=' && quote == 0 && key == "" {
			key = strings.ToLower(word.String())
			word.Reset()
			continue
		} else if letter == ',' && quote == 0 {
			data[key] = word.String()
			key = ""
			word.Reset()
			continue
		}

		word.WriteRune(letter)

		if letter == quote {
			quote = 0
		} else if quote == 0 && (letter == '"' || letter == '\'') {
			quote = letter
		}
	}
	data[key] = word.String()

	return data
}

// The INFO field IDs written for a group
func groupFieldIds(group string) (string, string) {
	return "AF_" + group, "R2_" + group
}

// Rewrite the header lines for the output file
// Existing INFO declarations of AF, R2 and the AF/R2 fields of the given groups are dropped,
// new declarations are appended for the global statistics followed by each group in order
func RewriteHeader(lines []HeaderLine, groups []string) HeaderRewrite {
	stale := map[string]bool{"AF": true, "R2": true}
	for _, group := range groups {
		afId, r2Id := groupFieldIds(group)
		stale[afId] = true
		stale[r2Id] = true
	}

	rewrite := HeaderRewrite{Lines: make([]HeaderLine, 0, len(lines)+2+2*len(groups))}
	for _, line := range lines {
		if line.Category == "INFO" {
			id := line.Id()
			if id == "MAF" {
				rewrite.MAFDeclared = true
			}
			if stale[id] {
				continue
			}
		}
		rewrite.Lines = append(rewrite.Lines, line)
	}

	rewrite.Lines = append(rewrite.Lines,
		floatDeclaration("AF", "Allele Frequency"),
		floatDeclaration("R2", "R-squared Estimate"),
	)
	for _, group := range groups {
		afId, r2Id := groupFieldIds(group)
		rewrite.Lines = append(rewrite.Lines,
			floatDeclaration(afId, "Allele Frequency ("+group+")"),
			floatDeclaration(r2Id, "R-squared Estimate ("+group+")"),
		)
	}
	return rewrite
}

func floatDeclaration(id string, description string) HeaderLine {
	return HeaderLineIdNumberTypeDescription{
		Id:          id,
		Number:      "1",
		Type:        "float",
		Description: description,
	}.HeaderLine("INFO")
}
