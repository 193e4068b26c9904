package importer

import (
	"fmt"
	"strings"

	"userhub/internal/models"
)

// Columns is the expected sheet layout, in order.
var Columns = []string{"first_name", "last_name", "primary_phone", "primary_email"}

const (
	ReasonInvalidShape   = "invalid_shape"
	ReasonMissingField   = "missing_field"
	ReasonDuplicateEmail = "duplicate_email"
)

type RowError struct {
	Row    int    `json:"row"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}

// RowResult holds either a record or the errors that rejected the row.
type RowResult struct {
	Row    int
	Record *models.NewUser
	Errors []RowError
}

func (r RowResult) Valid() bool { return r.Record != nil }

// ValidationError aborts an import and lists every rejected row.
type ValidationError struct {
	Rows []RowError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%d invalid row(s) in upload", len(e.Rows))
}

// HasShapeErrors reports whether any row had data past the last column.
func (e *ValidationError) HasShapeErrors() bool {
	return e.hasReason(ReasonInvalidShape)
}

func (e *ValidationError) HasMissingFields() bool {
	return e.hasReason(ReasonMissingField)
}

func (e *ValidationError) hasReason(reason string) bool {
	for _, r := range e.Rows {
		if r.Reason == reason {
			return true
		}
	}
	return false
}

// ValidateRow maps the four cells of a row onto a pending user. Short rows
// are padded, so an empty trailing column is a missing field; any non-blank
// cell past the fourth column makes the row the wrong shape.
func ValidateRow(row Row) RowResult {
	cells := row.Cells
	if len(cells) > len(Columns) {
		if !blank(cells[len(Columns):]) {
			return RowResult{Row: row.Number, Errors: []RowError{{Row: row.Number, Reason: ReasonInvalidShape}}}
		}
		cells = cells[:len(Columns)]
	}

	vals := make([]string, len(Columns))
	var errs []RowError
	for i, col := range Columns {
		if i < len(cells) {
			vals[i] = strings.TrimSpace(cells[i])
		}
		if vals[i] == "" {
			errs = append(errs, RowError{Row: row.Number, Field: col, Reason: ReasonMissingField})
		}
	}
	if len(errs) > 0 {
		return RowResult{Row: row.Number, Errors: errs}
	}

	return RowResult{Row: row.Number, Record: &models.NewUser{
		FirstName: vals[0],
		LastName:  vals[1],
		Phone:     vals[2],
		Email:     vals[3],
	}}
}

// Validate checks every row and returns the records only when all rows
// pass; otherwise it returns a *ValidationError with every problem found.
func Validate(rows []Row) ([]models.NewUser, error) {
	records := make([]models.NewUser, 0, len(rows))
	var errs []RowError
	emails := make(map[string]int, len(rows))

	for _, row := range rows {
		res := ValidateRow(row)
		if !res.Valid() {
			errs = append(errs, res.Errors...)
			continue
		}
		key := strings.ToLower(res.Record.Email)
		if _, dup := emails[key]; dup {
			errs = append(errs, RowError{Row: row.Number, Field: "primary_email", Reason: ReasonDuplicateEmail})
			continue
		}
		emails[key] = row.Number
		records = append(records, *res.Record)
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Rows: errs}
	}
	return records, nil
}
