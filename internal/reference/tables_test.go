package reference_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_content/internal/domain"
	"hotel_content/internal/reference"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

const dotwCSV = `Hotel_ID,dotw_code,alias_code,hotel_name,city,country,country_code,star_rating
100,D-100,A-100,First,Dubai,United Arab Emirates,AE,5
200,D-200,100,Second,Paris,France,FR,3
`

func TestDOTW_MatchesEveryAliasColumn(t *testing.T) {
	dir := t.TempDir()
	tbl := reference.New(reference.Paths{DOTW: writeFile(t, dir, "dotw.csv", dotwCSV)})

	for _, code := range []string{"100", "D-100", "A-100"} {
		g, ok, err := tbl.DOTW(code)
		require.NoError(t, err)
		require.True(t, ok, code)
		assert.Equal(t, "Dubai", g.City)
		assert.Equal(t, "AE", g.CountryCode)
		assert.Equal(t, "5", g.StarRating)
	}

	g, ok, err := tbl.DOTW("D-200")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "France", g.Country)
}

func TestDOTW_MissAndMissingFile(t *testing.T) {
	dir := t.TempDir()
	tbl := reference.New(reference.Paths{DOTW: writeFile(t, dir, "dotw.csv", dotwCSV)})
	_, ok, err := tbl.DOTW("999")
	require.NoError(t, err)
	assert.False(t, ok)

	missing := reference.New(reference.Paths{DOTW: filepath.Join(dir, "nope.csv")})
	_, ok, err = missing.DOTW("100")
	require.NoError(t, err)
	assert.False(t, ok)

	disabled := reference.New(reference.Paths{})
	_, ok, err = disabled.DOTW("100")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInnstant_PipeDelimited(t *testing.T) {
	dir := t.TempDir()
	body := "innstant_id|aether_id|legacy_id|giata_id|expedia_id|hotelbeds_id|hotel_name|city|country|country_code|stars\n" +
		"1|2|3|4|5|6|Sea View|Lisbon|Portugal|PT|4\n"
	tbl := reference.New(reference.Paths{Innstant: writeFile(t, dir, "innstant.csv", body)})

	g, ok, err := tbl.Innstant("6")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, reference.Geo{HotelName: "Sea View", City: "Lisbon", Country: "Portugal", CountryCode: "PT", StarRating: "4"}, g)
}

func TestIRIXCity(t *testing.T) {
	dir := t.TempDir()
	body := `<Destinations>
  <Country id="7" code="GR"><Name>Greece</Name>
    <City id="701" code="ATH"><Name>Athens</Name></City>
  </Country>
</Destinations>`
	tbl := reference.New(reference.Paths{IRIX: writeFile(t, dir, "irix.xml", body)})

	for _, id := range []string{"701", "ATH"} {
		g, ok, err := tbl.IRIXCity(id)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Athens", g.City)
		assert.Equal(t, "Greece", g.Country)
		assert.Equal(t, "GR", g.CountryCode)
	}
}

func TestMalformedFileIsParseError(t *testing.T) {
	dir := t.TempDir()
	tbl := reference.New(reference.Paths{
		DOTW: writeFile(t, dir, "dotw.csv", "city,country\nx,y\n"),
		IRIX: writeFile(t, dir, "irix.xml", "<Destinations><Country>"),
	})

	_, _, err := tbl.DOTW("1")
	var pe *domain.ParseError
	require.True(t, errors.As(err, &pe), "got %v", err)

	_, _, err = tbl.IRIXCity("1")
	require.True(t, errors.As(err, &pe), "got %v", err)
}

func TestChangedFileIsReread(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "dotw.csv", dotwCSV)
	tbl := reference.New(reference.Paths{DOTW: p})

	_, ok, _ := tbl.DOTW("300")
	require.False(t, ok)

	writeFile(t, dir, "dotw.csv", dotwCSV+"300,D-300,,Third,Rome,Italy,IT,4\n")
	g, ok, err := tbl.DOTW("300")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Rome", g.City)
}
