package loader

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var floatFieldPattern = regexp.MustCompile(`^\s*-?(\d+\.?|\.\d+|\d+\.\d+)([eE][-+]?\d+)?\s*$`)

// Integers above 2^53 lose precision as float64 and stay text.
const maxExactFloat = 1 << 53

// inferValue types a raw field: numbers become float64, true/false become
// bool, empty fields become nil and anything else stays a string.
func inferValue(field string) any {
	switch field {
	case "":
		return nil
	case "true", "TRUE", "True":
		return true
	case "false", "FALSE", "False":
		return false
	}

	if !floatFieldPattern.MatchString(field) {
		return field
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil || math.IsInf(parsed, 0) || math.Abs(parsed) > maxExactFloat {
		return field
	}
	return parsed
}
