package roster

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV_Basic(t *testing.T) {
	input := "member#,first_name,last_name,email\n" +
		"100001,Alice,Jones,alice@example.com\n" +
		"100002,Bob,Lee,bob@example.com\n"

	rows, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "100001", rows[0].MemberNumber)
	assert.NoError(t, rows[0].Err)
	assert.Equal(t, "100002", rows[1].MemberNumber)
}

func TestParseCSV_ColumnAliases(t *testing.T) {
	for _, header := range []string{"member#", "member_number", "Member Number", "MAJOR_KEY"} {
		input := header + ",chapter\n100001,NG\n"
		rows, err := ParseCSV(strings.NewReader(input))
		require.NoError(t, err, header)
		require.Len(t, rows, 1)
		assert.Equal(t, "100001", rows[0].MemberNumber)
	}
}

func TestParseCSV_ByteOrderMark(t *testing.T) {
	input := "\uFEFFmember#\n100001\n"

	rows, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "100001", rows[0].MemberNumber)
}

func TestParseCSV_MissingMemberNumberColumn(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("name,email\nAlice,a@b.c\n"))
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestParseCSV_BlankNumberRowCarriesError(t *testing.T) {
	input := "member#,email\n,a@b.c\n100002,b@c.d\n"

	rows, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Error(t, rows[0].Err)
	assert.NoError(t, rows[1].Err)
}

func TestParseCSV_RaggedRows(t *testing.T) {
	input := "member#,first_name\n100001\n"

	rows, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "100001", rows[0].MemberNumber)
}

func TestNumbers(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader("member#,email\n100001,\n,\n100001,\n100002,\n"))
	require.NoError(t, err)

	numbers, rowErrs := Numbers(rows)
	assert.Len(t, numbers, 2)
	assert.True(t, numbers["100001"])
	assert.True(t, numbers["100002"])
	assert.Len(t, rowErrs, 1)
}
