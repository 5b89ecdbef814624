// AngelaMos | 2026
// spreadsheet_test.go

package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSVFallback(t *testing.T) {
	data := []byte("\xef\xbb\xbfPrimary_First_Name,primary_last_name,City,nickname\n" +
		"Amy,Lee,Reno,\n" +
		",,,\n" +
		"Bo,Kim,,bobo\n")

	sheet, err := ParseSpreadsheet(data)
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 2)

	assert.Equal(t, 2, sheet.Rows[0].Line)
	assert.Equal(t, "Reno", sheet.Rows[0].Values["city"])
	_, ok := sheet.Rows[0].Get("nickname")
	assert.False(t, ok)

	assert.Equal(t, 4, sheet.Rows[1].Line)
	assert.Equal(t, []string{"nickname"}, sheet.UnknownColumns())
}

func TestParseSpreadsheetFormatErrors(t *testing.T) {
	cases := map[string][]byte{
		"empty":          []byte("  \n"),
		"binary":         {0x89, 'P', 'N', 'G', 0x00, 0x01},
		"broken zip":     []byte("PK\x03\x04garbage"),
		"missing header": []byte("name,email\nAmy,amy@example.com\n"),
	}

	for name, data := range cases {
		_, err := ParseSpreadsheet(data)
		assert.ErrorIs(t, err, ErrFormat, name)
	}
}

func TestParseDate(t *testing.T) {
	cases := map[string]string{
		"29313":               "1980-04-02",
		"1980-04-02":          "1980-04-02",
		"4/2/1980":            "1980-04-02",
		"04/02/80":            "1980-04-02",
		"April 2, 1980":       "1980-04-02",
		"1980-04-02 13:45:00": "1980-04-02",
	}

	for in, want := range cases {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got.Format("2006-01-02"), in)
	}

	for _, bad := range []string{"someday", "-5", "13/45/2020"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseFlag(t *testing.T) {
	v, ok := ParseFlag("Yes")
	assert.True(t, v)
	assert.True(t, ok)

	v, ok = ParseFlag("0")
	assert.False(t, v)
	assert.True(t, ok)

	_, ok = ParseFlag("maybe")
	assert.False(t, ok)
}
