package normalize

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_content/internal/domain"
	"hotel_content/internal/reference"
)

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestEngine(refs References) *Engine {
	return New(refs, WithClock(func() time.Time { return fixedNow }))
}

// minimalPayloads carry nothing but each supplier's own hotel identifier.
var minimalPayloads = map[string]any{
	domain.SupplierHotelbeds: map[string]any{"hotel": map[string]any{"code": "H1"}},
	domain.SupplierPaximum:   map[string]any{"body": map[string]any{"hotel": map[string]any{"id": "H1"}}},
	domain.SupplierStuba:     map[string]any{"HotelDetailsResponse": map[string]any{"Hotel": map[string]any{"Id": "H1"}}},
	domain.SupplierDOTW:      map[string]any{"result": map[string]any{"hotels": map[string]any{"hotel": map[string]any{"@hotelid": "H1"}}}},
	domain.SupplierAmadeus: `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body><OTA_HotelDescriptiveInfoRS xmlns="http://www.opentravel.org/OTA/2003/05">
    <HotelDescriptiveContents><HotelDescriptiveContent HotelCode="H1"/></HotelDescriptiveContents>
  </OTA_HotelDescriptiveInfoRS></soap:Body></soap:Envelope>`,
	domain.SupplierRoomerang: map[string]any{"data": map[string]any{"hotel": map[string]any{"id": "H1"}}},
	domain.SupplierRakuten: map[string]any{"hotels": []any{map[string]any{"hotel": []any{
		map[string]any{"hotelBasicInfo": map[string]any{"hotelNo": "H1"}},
	}}}},
	domain.SupplierIllusions: map[string]any{"hotel": map[string]any{"hotelCode": "H1"}},
	domain.SupplierHotelston: map[string]any{"Envelope": map[string]any{"Body": map[string]any{
		"HotelDetailsResponse": map[string]any{"hotel": map[string]any{"@id": "H1"}},
	}}},
	domain.SupplierLetsfly: map[string]any{"status": true, "data": map[string]any{"hotel_code": "H1"}},
	domain.SupplierGoGlobal: map[string]any{"Envelope": map[string]any{"Body": map[string]any{
		"MakeRequestResponse": map[string]any{"MakeRequestResult": "<Root><Main><HotelId>H1</HotelId></Main></Root>"},
	}}},
	domain.SupplierGoGlobalMainSupplier: map[string]any{"Root": map[string]any{"Main": map[string]any{"HotelId": "H1"}}},
	domain.SupplierJuniper: map[string]any{"Envelope": map[string]any{"Body": map[string]any{
		"HotelContentResponse": map[string]any{"ContentRS": map[string]any{"Contents": map[string]any{
			"HotelContent": map[string]any{"@Code": "H1"},
		}}},
	}}},
	domain.SupplierInnstant:    map[string]any{"id": "H1"},
	domain.SupplierRestel:      map[string]any{"respuesta": map[string]any{"parametros": map[string]any{"hotel": map[string]any{"codigo_hotel": "H1"}}}},
	domain.SupplierRateHawk:    map[string]any{"status": "ok", "data": map[string]any{"id": "H1"}},
	domain.SupplierRateHawkNew: map[string]any{"id": "H1"},
	domain.SupplierAgoda:       map[string]any{"hotel_feed_full": map[string]any{"hotels": map[string]any{"hotel": []any{map[string]any{"hotel_id": "H1"}}}}},
	domain.SupplierTBO:         map[string]any{"HotelDetails": []any{map[string]any{"HotelCode": "H1"}}},
	domain.SupplierEAN:         map[string]any{"H1": map[string]any{"property_id": "H1"}},
	domain.SupplierGRNConnect:  map[string]any{"hotel": map[string]any{"code": "H1"}},
	domain.SupplierHyperGuest:  map[string]any{"id": "H1"},
	domain.SupplierRNR:         map[string]any{"hotel": map[string]any{"hotel_id": "H1"}},
	domain.SupplierIRIX:        map[string]any{"hotel": map[string]any{"id": "H1"}},
	domain.SupplierKiwi:        map[string]any{"data": map[string]any{"hotel": map[string]any{"id": "H1"}}},
	domain.SupplierOryx:        map[string]any{"hotelCode": "H1"},
}

var canonicalKeys = []string{
	"created", "timestamp", "hotel_id", "name", "name_local", "hotel_formerly_name",
	"destination_code", "country_code", "brand_text", "property_type", "star_rating",
	"chain", "brand", "logo", "primary_photo", "review_rating", "policies", "address",
	"contacts", "descriptions", "room_type", "spoken_languages", "amenities", "facilities",
	"hotel_photo", "point_of_interests", "nearest_airports", "train_stations",
	"connected_locations", "stadiums",
}

func encode(t *testing.T, h *domain.CanonicalHotel) map[string]any {
	t.Helper()
	b, err := json.Marshal(h)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func TestEveryKnownSupplierHasAFixture(t *testing.T) {
	for _, code := range domain.Suppliers {
		assert.Contains(t, minimalPayloads, code)
	}
}

func TestSchemaCompletenessAndIDFidelity(t *testing.T) {
	e := newTestEngine(nil)
	for code, raw := range minimalPayloads {
		t.Run(code, func(t *testing.T) {
			h, err := e.Normalize(code, raw)
			require.NoError(t, err)
			assert.Equal(t, "H1", h.HotelID)

			doc := encode(t, h)
			for _, k := range canonicalKeys {
				assert.Contains(t, doc, k)
			}
			for _, k := range []string{"phone_numbers", "fax", "email_address", "website"} {
				assert.Equal(t, []any{}, doc["contacts"].(map[string]any)[k], k)
			}
			assert.Equal(t, []any{}, doc["room_type"])
			addr := doc["address"].(map[string]any)
			for _, k := range []string{"latitude", "longitude", "address_line_1", "city", "google_map_site_link", "local_lang", "mapping"} {
				assert.Contains(t, addr, k)
			}
			policies := doc["policies"].(map[string]any)
			for _, k := range []string{"checkin", "checkout", "fees", "know_before_you_go", "pets", "remark", "child_and_extra_bed_policy", "nationality_restrictions"} {
				assert.Contains(t, policies, k)
			}
			assert.Equal(t, "2024-05-01T10:00:00.000000", h.Created)
			assert.Equal(t, fixedNow.Unix(), h.Timestamp)
		})
	}
}

func TestMissingHotelIDFails(t *testing.T) {
	e := newTestEngine(nil)
	for _, code := range domain.Suppliers {
		t.Run(code, func(t *testing.T) {
			h, err := e.Normalize(code, map[string]any{})
			require.Error(t, err)
			assert.Nil(t, h)
			assert.True(t, errors.Is(err, domain.ErrMissingHotelID), "got %v", err)
		})
	}

	_, err := e.Normalize(domain.SupplierHotelbeds, map[string]any{"hotel": map[string]any{"code": "  "}})
	assert.ErrorIs(t, err, domain.ErrMissingHotelID)
}

func TestUnknownSupplier(t *testing.T) {
	_, err := newTestEngine(nil).Normalize("not_a_real_supplier", map[string]any{})
	require.ErrorIs(t, err, domain.ErrUnknownSupplier)
	assert.True(t, domain.IsClientError(err))
}

func TestMalformedXMLIsParseError(t *testing.T) {
	_, err := newTestEngine(nil).Normalize(domain.SupplierAmadeus, "<Envelope><Body>")
	var pe *domain.ParseError
	require.True(t, errors.As(err, &pe), "got %v", err)
	assert.True(t, domain.IsClientError(err))
}

func TestCheckCompleteReportsMissingMapper(t *testing.T) {
	e := newTestEngine(nil)
	require.NoError(t, e.checkComplete())
	assert.Len(t, e.Supported(), len(domain.Suppliers))

	delete(e.mappers, domain.SupplierEAN)
	assert.Error(t, e.checkComplete())
}

func TestGoogleMapsLink(t *testing.T) {
	e := newTestEngine(nil)

	h, err := e.Normalize(domain.SupplierHotelbeds, map[string]any{"hotel": map[string]any{
		"code":    "1",
		"address": map[string]any{"content": "Calle Mayor 1"},
	}})
	require.NoError(t, err)
	require.NotNil(t, h.Address.GoogleMapSiteLink)
	assert.Equal(t, "http://maps.google.com/maps?q=Calle+Mayor+1", *h.Address.GoogleMapSiteLink)
	assert.Equal(t, h.Address.GoogleMapSiteLink, h.Address.LocalLang.GoogleMapSiteLink)
	assert.Equal(t, h.Address.AddressLine1, h.Address.LocalLang.AddressLine1)

	h, err = e.Normalize(domain.SupplierTBO, map[string]any{"HotelDetails": []any{map[string]any{
		"HotelCode": "2", "CityName": "New Delhi",
	}}})
	require.NoError(t, err)
	assert.Nil(t, h.Address.AddressLine1)
	require.NotNil(t, h.Address.GoogleMapSiteLink)
	assert.Equal(t, "http://maps.google.com/maps?q=New+Delhi", *h.Address.GoogleMapSiteLink)

	h, err = e.Normalize(domain.SupplierOryx, map[string]any{"hotelCode": "3"})
	require.NoError(t, err)
	assert.Nil(t, h.Address.GoogleMapSiteLink)
}

func TestHotelbedsHappyPath(t *testing.T) {
	raw := map[string]any{"hotel": map[string]any{
		"code":     float64(12345),
		"name":     map[string]any{"content": "Grand Plaza"},
		"category": map[string]any{"description": map[string]any{"content": "4 STARS"}},
		"rooms":    []any{map[string]any{"roomCode": "DBL", "maxPax": float64(2)}},
		"images": []any{
			map[string]any{"imageTypeCode": "HAB", "path": "00/012345/a.jpg", "order": float64(1)},
			map[string]any{"imageTypeCode": "GEN", "path": "00/012345/b.jpg", "order": float64(2)},
		},
		"phones": []any{
			map[string]any{"phoneNumber": "+34 1", "phoneType": "PHONEBOOKING"},
			map[string]any{"phoneNumber": "+34 2", "phoneType": "FAXNUMBER"},
		},
	}}
	h, err := newTestEngine(nil).Normalize(domain.SupplierHotelbeds, raw)
	require.NoError(t, err)

	assert.Equal(t, "12345", h.HotelID)
	assert.Equal(t, "Grand Plaza", *h.Name)
	assert.Equal(t, "4", *h.StarRating)
	require.Len(t, h.RoomType, 1)
	assert.Equal(t, "DBL", *h.RoomType[0].RoomID)
	assert.Equal(t, "2", *h.RoomType[0].MaxAllowed.Total)
	assert.Equal(t, "https://photos.hotelbeds.com/giata/bigger/00/012345/b.jpg", *h.PrimaryPhoto)
	assert.Len(t, h.HotelPhoto, 2)
	assert.Equal(t, []string{"+34 1"}, h.Contacts.PhoneNumbers)
	assert.Equal(t, []string{"+34 2"}, h.Contacts.Fax)
}

func dotwTables(t *testing.T) *reference.Tables {
	t.Helper()
	p := filepath.Join(t.TempDir(), "dotw.csv")
	body := "hotel_id,dotw_code,alias_code,hotel_name,city,country,country_code,star_rating\n" +
		"10,X10,,Known,Dubai,United Arab Emirates,AE,5\n"
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return reference.New(reference.Paths{DOTW: p})
}

func TestDOTWGeoEnrichmentMiss(t *testing.T) {
	raw := map[string]any{"result": map[string]any{"hotels": map[string]any{"hotel": map[string]any{
		"@hotelid":  "777",
		"hotelName": "Desert Inn",
		"address":   "Sheikh Zayed Road",
	}}}}
	h, err := newTestEngine(dotwTables(t)).Normalize(domain.SupplierDOTW, raw)
	require.NoError(t, err)

	assert.Equal(t, "777", h.HotelID)
	assert.Equal(t, "Desert Inn", *h.Name)
	assert.Nil(t, h.CountryCode)
	assert.Nil(t, h.Address.CountryCode)
	assert.Nil(t, h.Address.City)
	assert.Nil(t, h.StarRating)
	assert.NotNil(t, h.Address.GoogleMapSiteLink)
}

func TestDOTWGeoEnrichmentHitViaAlias(t *testing.T) {
	raw := map[string]any{"result": map[string]any{"hotels": map[string]any{"hotel": map[string]any{
		"@hotelid": "X10",
	}}}}
	h, err := newTestEngine(dotwTables(t)).Normalize(domain.SupplierDOTW, raw)
	require.NoError(t, err)
	assert.Equal(t, "AE", *h.CountryCode)
	assert.Equal(t, "Dubai", *h.Address.City)
	assert.Equal(t, "5", *h.StarRating)
}

func TestGoGlobalSOAPUnwrap(t *testing.T) {
	envelope := `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <MakeRequestResponse xmlns="http://www.goglobal.travel/">
      <MakeRequestResult>&lt;Root&gt;&lt;Main&gt;&lt;HotelId&gt;GG-1&lt;/HotelId&gt;&lt;HotelName&gt;Harbour View&lt;/HotelName&gt;&lt;Category&gt;3 Stars&lt;/Category&gt;&lt;HotelFacilities&gt;Bar&amp;lt;BR /&amp;gt;&amp;lt;b&amp;gt;Pool&amp;lt;/b&amp;gt;&amp;lt;BR /&amp;gt;&lt;/HotelFacilities&gt;&lt;/Main&gt;&lt;/Root&gt;</MakeRequestResult>
    </MakeRequestResponse>
  </soap:Body>
</soap:Envelope>`
	h, err := newTestEngine(nil).Normalize(domain.SupplierGoGlobal, envelope)
	require.NoError(t, err)
	assert.Equal(t, "GG-1", h.HotelID)
	assert.Equal(t, "Harbour View", *h.Name)
	assert.Equal(t, "3", *h.StarRating)
	require.Len(t, h.Facilities, 2)
	assert.Equal(t, "Pool", *h.Facilities[1].Title)
}

func TestGoGlobalMalformedInnerDocument(t *testing.T) {
	raw := map[string]any{"Envelope": map[string]any{"Body": map[string]any{
		"MakeRequestResponse": map[string]any{"MakeRequestResult": "<Root><Main>"},
	}}}
	_, err := newTestEngine(nil).Normalize(domain.SupplierGoGlobal, raw)
	var pe *domain.ParseError
	require.True(t, errors.As(err, &pe), "got %v", err)
}

func TestAmadeusPrimaryPhotoChain(t *testing.T) {
	doc := func(items string) string {
		return `<Envelope><Body><OTA_HotelDescriptiveInfoRS><HotelDescriptiveContents>
<HotelDescriptiveContent HotelCode="AM1" HotelName="Amadeus Inn">
<MultimediaDescriptions><MultimediaDescription><ImageItems>` + items + `</ImageItems></MultimediaDescription></MultimediaDescriptions>
</HotelDescriptiveContent></HotelDescriptiveContents></OTA_HotelDescriptiveInfoRS></Body></Envelope>`
	}
	e := newTestEngine(nil)
	cases := map[string]struct {
		items string
		want  string
	}{
		"category": {
			`<ImageItem Category="6"><ImageFormat DimensionCategory="J"><URL>j.jpg</URL></ImageFormat></ImageItem>
<ImageItem Category="1"><ImageFormat DimensionCategory="S"><URL>c1.jpg</URL></ImageFormat></ImageItem>`,
			"c1.jpg",
		},
		"dimension": {
			`<ImageItem Category="6"><ImageFormat DimensionCategory="S"><URL>s.jpg</URL></ImageFormat><ImageFormat DimensionCategory="J"><URL>j.jpg</URL></ImageFormat></ImageItem>`,
			"j.jpg",
		},
		"original": {
			`<ImageItem Category="6"><ImageFormat IsOriginalIndicator="false"><URL>a.jpg</URL></ImageFormat><ImageFormat IsOriginalIndicator="true"><URL>o.jpg</URL></ImageFormat></ImageItem>`,
			"o.jpg",
		},
		"first": {
			`<ImageItem Category="6"><ImageFormat><URL>first.jpg</URL></ImageFormat><ImageFormat><URL>second.jpg</URL></ImageFormat></ImageItem>`,
			"first.jpg",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			h, err := e.Normalize(domain.SupplierAmadeus, doc(tc.items))
			require.NoError(t, err)
			require.NotNil(t, h.PrimaryPhoto)
			assert.Equal(t, tc.want, *h.PrimaryPhoto)
		})
	}
}

func TestRateHawkImages(t *testing.T) {
	raw := map[string]any{"id": "rh", "images_ext": []any{
		map[string]any{"url": "https://cdn.worldota.net/t/{size}/content/1.jpg", "category_slug": "room"},
		map[string]any{"url": "https://cdn.worldota.net/t/{size}/content/2.jpg", "category_slug": "hotel_front"},
	}}
	h, err := newTestEngine(nil).Normalize(domain.SupplierRateHawkNew, raw)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.worldota.net/t/1024x768/content/2.jpg", *h.PrimaryPhoto)

	raw = map[string]any{"id": "rh", "images": []any{"https://cdn.worldota.net/t/{size}/content/9.jpg"}}
	h, err = newTestEngine(nil).Normalize(domain.SupplierRateHawkNew, raw)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.worldota.net/t/1024x768/content/9.jpg", *h.PrimaryPhoto)
}

func TestFixedLiterals(t *testing.T) {
	e := newTestEngine(nil)
	h, err := e.Normalize(domain.SupplierRestel, minimalPayloads[domain.SupplierRestel])
	require.NoError(t, err)
	assert.Equal(t, "Pets are not allowed.", *h.Policies.Pets)

	h, err = e.Normalize(domain.SupplierLetsfly, minimalPayloads[domain.SupplierLetsfly])
	require.NoError(t, err)
	assert.Equal(t, "12:00", *h.Policies.Checkout.Time)
}

func TestDelimitedCollections(t *testing.T) {
	e := newTestEngine(nil)

	h, err := e.Normalize(domain.SupplierRNR, map[string]any{"hotel": map[string]any{
		"hotel_id": "r1", "amenities": "Wifi| Pool |", "photos": "a.jpg|b.jpg",
	}})
	require.NoError(t, err)
	require.Len(t, h.Amenities, 2)
	assert.Equal(t, "Pool", *h.Amenities[1].Title)
	assert.Equal(t, "a.jpg", *h.PrimaryPhoto)

	h, err = e.Normalize(domain.SupplierGRNConnect, map[string]any{
		"hotel":  map[string]any{"code": "g1", "facilities": "Bar; Gym;;Spa"},
		"images": map[string]any{"images": []any{map[string]any{"path": "z/1.jpg", "main_image": "Y"}}},
	})
	require.NoError(t, err)
	assert.Len(t, h.Facilities, 3)
	assert.Equal(t, "https://cdn.grnconnect.com/z/1.jpg", *h.PrimaryPhoto)

	h, err = e.Normalize(domain.SupplierTBO, map[string]any{"HotelDetails": []any{map[string]any{
		"HotelCode": "t1", "Map": "28.61|77.20", "HotelRating": "FourStar",
	}}})
	require.NoError(t, err)
	assert.InDelta(t, 28.61, *h.Address.Latitude, 1e-9)
	assert.InDelta(t, 77.20, *h.Address.Longitude, 1e-9)
	assert.Equal(t, "4", *h.StarRating)
}

func TestKiwiEdgesAndRakutenSections(t *testing.T) {
	e := newTestEngine(nil)

	h, err := e.Normalize(domain.SupplierKiwi, map[string]any{"data": map[string]any{"hotel": map[string]any{
		"id":     "k1",
		"photos": map[string]any{"edges": []any{map[string]any{"node": map[string]any{"url": "p.jpg"}}}},
		"languages": map[string]any{"edges": []any{
			map[string]any{"node": map[string]any{"name": "English"}},
			map[string]any{"node": map[string]any{"name": "German"}},
		}},
	}}})
	require.NoError(t, err)
	assert.Len(t, h.SpokenLanguages, 2)
	assert.Equal(t, "p.jpg", *h.PrimaryPhoto)

	h, err = e.Normalize(domain.SupplierRakuten, map[string]any{"hotels": []any{map[string]any{"hotel": []any{
		map[string]any{"hotelBasicInfo": map[string]any{"hotelNo": float64(1234), "hotelName": "Tokyo Inn", "hotelKanaName": "とうきょういん", "nearestStation": "Shinjuku"}},
		map[string]any{"hotelDetailInfo": map[string]any{"checkinTime": "15:00"}},
	}}}})
	require.NoError(t, err)
	assert.Equal(t, "1234", h.HotelID)
	assert.Equal(t, "とうきょういん", *h.NameLocal)
	assert.Equal(t, "15:00", *h.Policies.Checkin.BeginTime)
	require.Len(t, h.TrainStations, 1)
	assert.Equal(t, "Shinjuku", *h.TrainStations[0].Name)
}

func TestStringPayloadsAreDecoded(t *testing.T) {
	e := newTestEngine(nil)
	h, err := e.Normalize(domain.SupplierOryx, `{"hotelCode":"o1","hotelName":"Oryx"}`)
	require.NoError(t, err)
	assert.Equal(t, "Oryx", *h.Name)

	_, err = e.Normalize(domain.SupplierOryx, `{"hotelCode":`)
	var pe *domain.ParseError
	assert.True(t, errors.As(err, &pe))
}
