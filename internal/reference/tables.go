// Package reference resolves supplier codes against static side files that
// fill in geography the primary payloads omit.
package reference

import (
	"encoding/csv"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_content/internal/domain"
)

// Geo is what a reference row contributes to a hotel record. Empty strings
// mean the row carried nothing for that column.
type Geo struct {
	HotelName   string
	City        string
	Country     string
	CountryCode string
	StarRating  string
}

// Paths locates the side files. An empty path disables that table.
type Paths struct {
	DOTW     string
	Innstant string
	IRIX     string
}

var (
	dotwAliases     = []string{"hotel_id", "dotw_code", "alias_code"}
	innstantAliases = []string{"innstant_id", "aether_id", "legacy_id", "giata_id", "expedia_id", "hotelbeds_id"}
)

// Tables answers lookups from the side files. Each file is parsed once per
// (path, mtime, size); a changed file is re-read on the next lookup.
type Tables struct {
	paths Paths

	mu    sync.Mutex
	cache map[string]entry
}

type entry struct {
	mod   time.Time
	size  int64
	index map[string]Geo
}

func New(p Paths) *Tables {
	return &Tables{paths: p, cache: make(map[string]entry)}
}

// DOTW resolves a DOTW hotel code against the hotel_id, dotw_code and
// alias_code columns.
func (t *Tables) DOTW(code string) (Geo, bool, error) {
	return t.lookup(t.paths.DOTW, code, func(r io.Reader) (map[string]Geo, error) {
		return parseCSV(r, ',', dotwAliases, "star_rating")
	})
}

// Innstant resolves an Innstant hotel id against its six alias columns.
func (t *Tables) Innstant(code string) (Geo, bool, error) {
	return t.lookup(t.paths.Innstant, code, func(r io.Reader) (map[string]Geo, error) {
		return parseCSV(r, '|', innstantAliases, "stars")
	})
}

// IRIXCity resolves an IRIX city id or code to its city and country.
func (t *Tables) IRIXCity(cityID string) (Geo, bool, error) {
	return t.lookup(t.paths.IRIX, cityID, parseGazetteer)
}

func (t *Tables) lookup(path, code string, parse func(io.Reader) (map[string]Geo, error)) (Geo, bool, error) {
	code = strings.TrimSpace(code)
	if path == "" || code == "" {
		return Geo{}, false, nil
	}
	idx, err := t.load(path, parse)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn().Str("path", path).Msg("reference file missing; skipping enrichment")
			return Geo{}, false, nil
		}
		return Geo{}, false, err
	}
	g, ok := idx[code]
	if !ok {
		log.Warn().Str("path", path).Str("code", code).Msg("no reference row for code")
	}
	return g, ok, nil
}

func (t *Tables) load(path string, parse func(io.Reader) (map[string]Geo, error)) (map[string]Geo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.cache[path]; ok && e.mod.Equal(st.ModTime()) && e.size == st.Size() {
		return e.index, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	idx, err := parse(f)
	if err != nil {
		return nil, &domain.ParseError{Source: path, Err: err}
	}
	t.cache[path] = entry{mod: st.ModTime(), size: st.Size(), index: idx}
	return idx, nil
}

// parseCSV indexes every alias column of every row. Rows earlier in the file
// win over later rows carrying the same alias.
func parseCSV(r io.Reader, comma rune, aliases []string, starCol string) (map[string]Geo, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.New("missing header row")
		}
		return nil, err
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		cols[h] = i
	}
	aliasIdx := make([]int, 0, len(aliases))
	for _, a := range aliases {
		if i, ok := cols[a]; ok {
			aliasIdx = append(aliasIdx, i)
		}
	}
	if len(aliasIdx) == 0 {
		return nil, fmt.Errorf("header has none of the key columns %v", aliases)
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	idx := make(map[string]Geo)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		g := Geo{
			HotelName:   field(row, "hotel_name"),
			City:        field(row, "city"),
			Country:     field(row, "country"),
			CountryCode: field(row, "country_code"),
			StarRating:  field(row, starCol),
		}
		for _, i := range aliasIdx {
			if i >= len(row) {
				continue
			}
			k := strings.TrimSpace(row[i])
			if k == "" {
				continue
			}
			if _, seen := idx[k]; !seen {
				idx[k] = g
			}
		}
	}
	return idx, nil
}

type gazetteer struct {
	Countries []struct {
		ID     string `xml:"id,attr"`
		Code   string `xml:"code,attr"`
		Name   string `xml:"Name"`
		Cities []struct {
			ID   string `xml:"id,attr"`
			Code string `xml:"code,attr"`
			Name string `xml:"Name"`
		} `xml:"City"`
	} `xml:"Country"`
}

func parseGazetteer(r io.Reader) (map[string]Geo, error) {
	var doc gazetteer
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	idx := make(map[string]Geo)
	for _, c := range doc.Countries {
		for _, city := range c.Cities {
			g := Geo{
				City:        strings.TrimSpace(city.Name),
				Country:     strings.TrimSpace(c.Name),
				CountryCode: strings.TrimSpace(c.Code),
			}
			for _, k := range []string{strings.TrimSpace(city.ID), strings.TrimSpace(city.Code)} {
				if k == "" {
					continue
				}
				if _, seen := idx[k]; !seen {
					idx[k] = g
				}
			}
		}
	}
	return idx, nil
}
