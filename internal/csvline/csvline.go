//-------------------------------------------------------------------------
//
// pgEdge Olist Loader
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package csvline splits Olist CSV lines into fields and normalizes field
// values for parameter binding.
//
// The dialect is deliberately small: fields are separated by commas, and a
// double quote toggles a quoted span in which commas are data. Quote
// characters are consumed and never escape one another. Splitting never
// fails; an unbalanced quote leaves the remainder of the line in one field.
package csvline

import "strings"

// Split breaks a single line into its fields.
func Split(line string) []string {
	fields := make([]string, 0, strings.Count(line, ",")+1)
	var (
		cur      strings.Builder
		inQuotes bool
	)
	cur.Grow(len(line))

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	fields = append(fields, cur.String())

	return fields
}

// IsNull reports whether a raw field value stands for SQL NULL: blank after
// trimming, or the word "null" in any case.
func IsNull(raw string) bool {
	v := strings.TrimSpace(raw)
	return v == "" || strings.EqualFold(v, "null")
}

// Normalize maps a raw field to a bind value: nil for NULL, otherwise the
// trimmed text. Type conversion is left to the database.
func Normalize(raw string) any {
	if IsNull(raw) {
		return nil
	}
	return strings.TrimSpace(raw)
}

// NormalizeRow normalizes the first n fields. The caller guarantees
// len(fields) >= n.
func NormalizeRow(fields []string, n int) []any {
	row := make([]any, n)
	for i := 0; i < n; i++ {
		row[i] = Normalize(fields[i])
	}
	return row
}
