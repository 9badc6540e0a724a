package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTable = `# Offshore jurisdictions

| Название | Код | Name |
|----------|-----|------|
| Каймановы острова | KY | Cayman Islands |
| Панама | PA | Panama |
| Штат Вайоминг | US-WY | Wyoming |
| Остров Сарк | GG-SRK | Sark |

Some trailing prose that is not part of the table.
| broken row without code | | Nowhere |
`

func TestParseMarkdownTable(t *testing.T) {
	entries, err := ParseMarkdownTable(strings.NewReader(sampleTable))
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, "KY", entries[0].ISOCode)
	assert.Equal(t, "Каймановы острова", entries[0].CanonicalName)
	assert.Equal(t, "Cayman Islands", entries[0].EnglishName)

	assert.Equal(t, "US-WY", entries[2].ISOCode)
	assert.True(t, entries[2].Composite())
	assert.Equal(t, "US", entries[2].CountryCode())

	assert.Equal(t, "GG-SRK", entries[3].ISOCode, "three-letter region suffixes are accepted")
}

func TestParseMarkdownTableSkipsNonRows(t *testing.T) {
	input := `|---|---|---|
| Header | Код | Name |
plain text line
| Бермуды | bm | Bermuda |
`

	entries, err := ParseMarkdownTable(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "BM", entries[0].ISOCode, "codes are uppercased")
}

func TestParseMarkdownTableEmpty(t *testing.T) {
	entries, err := ParseMarkdownTable(strings.NewReader("no table here"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
