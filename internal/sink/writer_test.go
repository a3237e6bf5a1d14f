package sink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testHeader = []string{"RecordID", "Name", "Date"}

func TestEnsureHeaderWritesOnceIntoEmptySink(t *testing.T) {
	m := &Memory{}

	wrote, err := EnsureHeader(m, testHeader)
	require.NoError(t, err)
	assert.True(t, wrote)
	require.Len(t, m.Rows, 1)
	assert.Equal(t, testHeader, m.Rows[0])

	wrote, err = EnsureHeader(m, testHeader)
	require.NoError(t, err)
	assert.False(t, wrote, "second call finds the header already present")
	assert.Len(t, m.Rows, 1)
}

func TestEnsureHeaderNeverOverwrites(t *testing.T) {
	m := &Memory{Rows: [][]string{{"SomethingElse", "Name", "Date"}}}

	wrote, err := EnsureHeader(m, testHeader)
	require.NoError(t, err)
	assert.False(t, wrote)
	assert.Equal(t, "SomethingElse", m.Rows[0][0], "mismatched header is left untouched")
}

func TestExistingKeysSkipsHeaderAndEmpties(t *testing.T) {
	m := &Memory{Rows: [][]string{
		testHeader,
		{"10", "Ana", "06/02/2025"},
		{"", "no key", "06/03/2025"},
		{"11", "Ben", "06/04/2025"},
	}}

	keys, err := ExistingKeys(m, 0)
	require.NoError(t, err)
	assert.Len(t, keys, 2)
	assert.Contains(t, keys, "10")
	assert.Contains(t, keys, "11")
	assert.NotContains(t, keys, "RecordID", "header cell is not a key")
}

func TestAppendNewFiltersAgainstExisting(t *testing.T) {
	m := &Memory{Rows: [][]string{
		testHeader,
		{"10", "Ana", "06/02/2025"},
		{"11", "Ben", "06/04/2025"},
	}}

	existing, err := ExistingKeys(m, 0)
	require.NoError(t, err)

	candidates := [][]string{
		{"10", "Ana", "06/02/2025"},
		{"11", "Ben", "06/04/2025"},
		{"12", "Cai", "06/05/2025"},
	}
	appended, err := AppendNew(m, candidates, 0, existing)
	require.NoError(t, err)
	assert.Equal(t, 1, appended)
	require.Len(t, m.Rows, 4)
	assert.Equal(t, "12", m.Rows[3][0])
}

func TestAppendNewNothingFreshWritesNothing(t *testing.T) {
	m := &Memory{Rows: [][]string{testHeader, {"10", "Ana", "06/02/2025"}}}
	existing := map[string]struct{}{"10": {}}

	appended, err := AppendNew(m, [][]string{{"10", "Ana", "06/02/2025"}}, 0, existing)
	require.NoError(t, err)
	assert.Equal(t, 0, appended)
	assert.Len(t, m.Rows, 2)
}

func TestAppendNewSkipsRowsNarrowerThanKeyColumn(t *testing.T) {
	m := &Memory{}

	appended, err := AppendNew(m, [][]string{{"only-cell"}}, 2, map[string]struct{}{})
	require.NoError(t, err)
	assert.Equal(t, 0, appended)
	assert.Empty(t, m.Rows)
}
