package ticket

// Candidate font sizes for the conditions block, largest first.
var conditionsFontSizes = []float64{6, 5.5, 5, 4.5, 4}

const conditionsLeadingFactor = 1.2

// columnMeasure reports the rendered heights of the two condition columns at
// the given font size.
type columnMeasure func(size float64) (h1, h2 float64)

// fitConditionsSize picks the largest candidate size at which both columns
// fit the available height. When none fits it settles for the smallest size
// and reports clipped=true; the document is still produced.
func fitConditionsSize(sizes []float64, available float64, measure columnMeasure) (size float64, clipped bool) {
	for _, s := range sizes {
		h1, h2 := measure(s)
		if h1 <= available && h2 <= available {
			return s, false
		}
	}
	return sizes[len(sizes)-1], true
}

// splitConditionColumns divides the source lines evenly by line count, the
// first half feeding the left column.
func splitConditionColumns(lines []string) (col1, col2 []string) {
	mid := len(lines) / 2
	return lines[:mid], lines[mid:]
}
