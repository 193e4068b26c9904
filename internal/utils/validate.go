package utils

import (
	"net/url"
	"strconv"
	"strings"
)

type FieldType int

const (
	String FieldType = iota
	PositiveInt
)

// Field describes one expected input parameter.
type Field struct {
	Name     string
	Type     FieldType
	Required bool
	Max      int // PositiveInt upper bound, 0 means none
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateQuery checks query parameters against fields, in field order.
func ValidateQuery(v url.Values, fields []Field) []FieldError {
	var errs []FieldError
	for _, f := range fields {
		raw, present := v[f.Name]
		if !present || strings.TrimSpace(first(raw)) == "" {
			if f.Required {
				errs = append(errs, FieldError{f.Name, "is required"})
			}
			continue
		}
		if f.Type == PositiveInt {
			if msg := checkPositiveInt(first(raw), f.Max); msg != "" {
				errs = append(errs, FieldError{f.Name, msg})
			}
		}
	}
	return errs
}

// ValidateJSON checks a decoded JSON object against fields.
func ValidateJSON(body map[string]any, fields []Field) []FieldError {
	var errs []FieldError
	for _, f := range fields {
		val, present := body[f.Name]
		if !present || val == nil {
			if f.Required {
				errs = append(errs, FieldError{f.Name, "is required"})
			}
			continue
		}
		switch f.Type {
		case String:
			s, ok := val.(string)
			if !ok {
				errs = append(errs, FieldError{f.Name, "must be a string"})
				continue
			}
			if f.Required && strings.TrimSpace(s) == "" {
				errs = append(errs, FieldError{f.Name, "is required"})
			}
		case PositiveInt:
			n, ok := val.(float64)
			if !ok || n != float64(int(n)) || n < 1 || (f.Max > 0 && int(n) > f.Max) {
				errs = append(errs, FieldError{f.Name, positiveIntMessage(f.Max)})
			}
		}
	}
	return errs
}

func checkPositiveInt(s string, max int) string {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || (max > 0 && n > max) {
		return positiveIntMessage(max)
	}
	return ""
}

func positiveIntMessage(max int) string {
	if max > 0 {
		return "must be an integer between 1 and " + strconv.Itoa(max)
	}
	return "must be a positive integer"
}

func first(v []string) string {
	if len(v) == 0 {
		return ""
	}
	return v[0]
}
