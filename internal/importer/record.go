package importer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Record is one raw row of an import batch. Values come either from a JSON
// body (string, json.Number, bool, nil) or from a CSV file (string).
type Record map[string]any

// asRecord converts one decoded batch element to a Record. JSON bodies can
// carry anything in the data list; scalars and arrays have no fields at all
// and fail validation wholesale.
func asRecord(row any) (Record, bool) {
	switch v := row.(type) {
	case Record:
		return v, true
	case map[string]any:
		return Record(v), true
	}

	return nil, false
}

// Validate checks that every required field of the kind is present. A field
// is missing when it is absent, null, or an empty string. The returned error
// text embeds the full raw row and is the exact message reported to the
// caller; it deliberately does not name the missing fields.
func Validate(rec Record, kind Kind) error {
	for _, field := range requiredFields[kind] {
		if fieldMissing(rec, field) {
			return invalidRow(rec)
		}
	}

	return nil
}

func invalidRow(row any) error {
	return fmt.Errorf("Invalid row: %s - required fields are missing", formatValue(row))
}

func fieldMissing(rec Record, field string) bool {
	v, ok := rec[field]
	if !ok || v == nil {
		return true
	}

	if s, isString := v.(string); isString && s == "" {
		return true
	}

	return false
}

// formatValue renders the raw row as compact JSON for error messages.
func formatValue(row any) string {
	b, err := json.Marshal(row)
	if err != nil {
		return fmt.Sprintf("%v", row)
	}

	return string(b)
}

// fieldString returns the field value as a string. Numbers keep their
// original textual form because JSON bodies are decoded with UseNumber.
func fieldString(rec Record, field string) string {
	switch v := rec[field].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func fieldDecimal(rec Record, field string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(fieldString(rec, field))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s: %w", field, err)
	}

	return d, nil
}

func fieldDate(rec Record, field string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, fieldString(rec, field))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", field, err)
	}

	return t, nil
}
