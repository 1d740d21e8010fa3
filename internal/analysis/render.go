package analysis

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// CSVHeader names the fields of a CSV summary record.
const CSVHeader = "label, Num episodes, mean, median, std, min, max"

const textRule = "-----------------------------------"

// WriteCSV writes s as one comma-separated record, preceded by CSVHeader
// when header is true. Absent or empty inputs only carry label and count.
func WriteCSV(w io.Writer, s Summary, header bool) error {
	var b strings.Builder
	if header {
		b.WriteString(CSVHeader)
		b.WriteString("\n")
	}
	vals := []string{s.Label, strconv.Itoa(s.Episodes)}
	if s.Episodes > 0 {
		vals = append(vals,
			formatFloat(s.Mean),
			formatFloat(s.Median),
			formatFloat(s.Std),
			formatInt(s.Min),
			formatInt(s.Max))
	}
	b.WriteString(strings.Join(vals, ","))
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteText writes s as a human-readable block.
func WriteText(w io.Writer, s Summary) error {
	var b strings.Builder
	b.WriteString(textRule + "\n")
	b.WriteString(s.Label + "\n")
	b.WriteString(fmt.Sprintf("Num episodes =  %d\n", s.Episodes))
	if s.Episodes > 0 {
		b.WriteString(fmt.Sprintf("mean= %s\n", formatFloat(s.Mean)))
		b.WriteString(fmt.Sprintf("median= %s\n", formatFloat(s.Median)))
		b.WriteString(fmt.Sprintf("std= %s\n", formatFloat(s.Std)))
		b.WriteString(fmt.Sprintf("min,max= %s %s\n", formatInt(s.Min), formatInt(s.Max)))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// formatFloat prints 12 significant digits and always marks the value as a
// float ("3.0", not "3").
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(v, 'g', 12, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// formatInt prints min/max, which are always whole step counts.
func formatInt(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return formatFloat(v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
