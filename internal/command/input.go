package command

import (
	"math"
	"strconv"
	"strings"
)

// ParseLength reads an element length typed into the add dialog
func ParseLength(text string) (float64, error) {
	return parsePositive("Length", text)
}

// ParseWidth reads a sheet width typed into the add dialog
func ParseWidth(text string) (float64, error) {
	return parsePositive("Width", text)
}

func parsePositive(field, text string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, &InputError{Field: field, Input: text, Reason: msgInvalidNumber}
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, &InputError{Field: field, Input: text, Reason: msgNotFinite}
	}
	if v <= 0 {
		return 0, &InputError{Field: field, Input: text, Reason: msgNotPositive}
	}
	return v, nil
}
