//-------------------------------------------------------------------------
//
// pgEdge Olist Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package csvline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{name: "plain", line: "a,b,c", want: []string{"a", "b", "c"}},
		{name: "quoted comma", line: `a,"b,c",d`, want: []string{"a", "b,c", "d"}},
		{name: "empty line", line: "", want: []string{""}},
		{name: "empty fields", line: ",,", want: []string{"", "", ""}},
		{name: "trailing comma", line: "a,b,", want: []string{"a", "b", ""}},
		{name: "quotes around whole field", line: `"x","y"`, want: []string{"x", "y"}},
		{name: "doubled quote toggles twice", line: `a,"say ""hi"", ok",b`, want: []string{"a", "say hi, ok", "b"}},
		{name: "unbalanced quote swallows rest", line: `a,"b,c,d`, want: []string{"a", "b,c,d"}},
		{name: "utf8 preserved", line: `SP,São Paulo,"Southeast"`, want: []string{"SP", "São Paulo", "Southeast"}},
		{name: "spaces kept", line: " a , b ", want: []string{" a ", " b "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.line))
		})
	}
}

func TestNormalize(t *testing.T) {
	nulls := []string{"", "null", "NULL", "Null", "  ", " null ", "\t"}
	for _, raw := range nulls {
		assert.Nil(t, Normalize(raw), "expected %q to normalize to NULL", raw)
		assert.True(t, IsNull(raw))
	}

	values := map[string]string{
		"0":          "0",
		"false":      "false",
		" 42 ":       "42",
		"nullable":   "nullable",
		"2017-10-02": "2017-10-02",
	}
	for raw, want := range values {
		assert.Equal(t, want, Normalize(raw), "raw %q", raw)
		assert.False(t, IsNull(raw))
	}
}

func TestNormalizeRow(t *testing.T) {
	fields := Split(`abc, ,NULL,12.5,extra`)
	row := NormalizeRow(fields, 4)

	assert.Len(t, row, 4)
	assert.Equal(t, "abc", row[0])
	assert.Nil(t, row[1])
	assert.Nil(t, row[2])
	assert.Equal(t, "12.5", row[3])
}
