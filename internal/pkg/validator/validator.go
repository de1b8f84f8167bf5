package validator

import (
	"regexp"
	"strconv"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Canonical 8-4-4-4-12 hex form, any version.
var uuidRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// UUID validation
func IsValidUUID(uuid string) bool {
	return uuidRegex.MatchString(strings.ToLower(uuid))
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

func IsValidMonth(month int) bool {
	return month >= 1 && month <= 12
}

func IsValidYear(year int) bool {
	return year >= 1 && year <= 9999
}

// ParsePeriod parses month and year path or query values. Both must be
// plain digits and in range.
func ParsePeriod(monthStr, yearStr string) (int, int, error) {
	var errs ValidationErrors

	month, ok := parseNumber(monthStr)
	if !ok || !IsValidMonth(month) {
		errs = append(errs, ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	year, ok := parseNumber(yearStr)
	if !ok || !IsValidYear(year) {
		errs = append(errs, ValidationError{Field: "year", Message: "must be a positive year"})
	}

	if len(errs) > 0 {
		return 0, 0, errs
	}
	return month, year, nil
}

// ParseOptionalInt parses an optional numeric query value. An empty string
// yields nil.
func ParseOptionalInt(field, value string) (*int, error) {
	if IsEmpty(value) {
		return nil, nil
	}
	n, ok := parseNumber(value)
	if !ok {
		return nil, ValidationErrors{{Field: field, Message: "must be a number"}}
	}
	return &n, nil
}

func parseNumber(s string) (int, bool) {
	if !IsNumeric(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
