//-------------------------------------------------------------------------
//
// pgEdge Olist Loader
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package store

import (
	"context"
	"fmt"
	"strings"
)

// RowsPerStatement returns how many rows of the given width fit in one
// multi-row INSERT for the dialect.
func RowsPerStatement(d Dialect, columns int) int {
	if columns < 1 {
		return 0
	}
	n := d.MaxParams() / columns
	if limit := d.MaxRowsPerInsert(); limit > 0 && n > limit {
		n = limit
	}
	return max(1, n)
}

// BuildInsert renders INSERT INTO table (cols) VALUES (...), ... for the
// given number of rows using the dialect's placeholders.
func BuildInsert(d Dialect, table string, columns []string, rows int) string {
	var b strings.Builder

	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	b.WriteString(" (")
	b.WriteString(strings.Join(columns, ", "))
	b.WriteString(") VALUES ")

	param := 1
	for r := 0; r < rows; r++ {
		if r > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for c := range columns {
			if c > 0 {
				b.WriteString(", ")
			}
			b.WriteString(d.Placeholder(param))
			param++
		}
		b.WriteByte(')')
	}

	return b.String()
}

// InsertRows writes rows into table through ex, splitting them into as few
// multi-row INSERT statements as the dialect's parameter limits allow.
// Every row must have len(columns) values. It returns the rows affected.
func InsertRows(ctx context.Context, ex Execer, d Dialect, table string, columns []string, rows [][]any) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("insert into %s: no columns", table)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	per := RowsPerStatement(d, len(columns))
	var (
		total    int64
		fullSQL  string
		args     = make([]any, 0, per*len(columns))
		fullSize = min(per, len(rows))
	)
	fullSQL = BuildInsert(d, table, columns, fullSize)

	for start := 0; start < len(rows); start += per {
		end := min(start+per, len(rows))
		chunk := rows[start:end]

		args = args[:0]
		for i, row := range chunk {
			if len(row) != len(columns) {
				return total, fmt.Errorf("insert into %s: row %d has %d values, want %d",
					table, start+i, len(row), len(columns))
			}
			args = append(args, row...)
		}

		sql := fullSQL
		if len(chunk) != fullSize {
			sql = BuildInsert(d, table, columns, len(chunk))
		}

		n, err := ex.Exec(ctx, sql, args...)
		if err != nil {
			return total, fmt.Errorf("insert into %s: %w", table, err)
		}
		total += n
	}

	return total, nil
}
