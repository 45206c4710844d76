package normalize

import (
	"strings"

	"hotel_content/internal/domain"
)

var tboStarWords = map[string]string{
	"onestar":   "1",
	"twostar":   "2",
	"threestar": "3",
	"fourstar":  "4",
	"fivestar":  "5",
}

func tboStars(v any) *string {
	if s, ok := tboStarWords[strings.ToLower(str(v))]; ok {
		return ptr(s)
	}
	return cleanStar(v)
}

func mapTBO(raw any, h *domain.CanonicalHotel) error {
	m, err := object(domain.SupplierTBO, raw)
	if err != nil {
		return err
	}
	hotel := dig(m, "HotelDetails", 0)
	if err := setID(h, dig(hotel, "HotelCode")); err != nil {
		return err
	}

	h.Name = digSP(hotel, "HotelName")
	h.StarRating = tboStars(dig(hotel, "HotelRating"))
	h.DestinationCode = digSP(hotel, "CityId")

	var lat, lng *float64
	if parts := strings.Split(digStr(hotel, "Map"), "|"); len(parts) == 2 {
		lat, lng = flt(parts[0]), flt(parts[1])
	}
	line1 := digStr(hotel, "Address")
	city := digStr(hotel, "CityName")
	country := digStr(hotel, "CountryName")
	h.Address = domain.Address{
		Latitude:     lat,
		Longitude:    lng,
		AddressLine1: ptr(line1),
		City:         ptr(city),
		Country:      ptr(country),
		CountryCode:  digSP(hotel, "CountryCode"),
		PostalCode:   digSP(hotel, "PinCode"),
		FullAddress:  ptr(joinNonEmpty(", ", line1, city, digStr(hotel, "PinCode"), country)),
		Mapping: domain.AddressMapping{
			CityID:    digSP(hotel, "CityId"),
			CountryID: digSP(hotel, "CountryCode"),
		},
	}

	h.Contacts.PhoneNumbers = appendNonEmpty(h.Contacts.PhoneNumbers, digStr(hotel, "PhoneNumber"))
	h.Contacts.Fax = appendNonEmpty(h.Contacts.Fax, digStr(hotel, "FaxNumber"))
	h.Contacts.EmailAddress = appendNonEmpty(h.Contacts.EmailAddress, digStr(hotel, "Email"))
	h.Contacts.Website = appendNonEmpty(h.Contacts.Website, digStr(hotel, "HotelWebsiteUrl"))

	h.Policies.Checkin.BeginTime = digSP(hotel, "CheckInTime")
	h.Policies.Checkout.Time = digSP(hotel, "CheckOutTime")

	addDescription(h, "Hotel Description", htmlText(digStr(hotel, "Description")))
	addFacilities(h, stringsOf(digList(hotel, "HotelFacilities"))...)

	h.PrimaryPhoto = digSP(hotel, "Image")
	for i, img := range digList(hotel, "Images") {
		addPhoto(h, str(i+1), "", str(img))
	}

	switch a := dig(hotel, "Attractions").(type) {
	case map[string]any:
		for _, k := range sortedKeys(a) {
			if name := htmlText(str(a[k])); name != "" {
				h.PointOfInterests = append(h.PointOfInterests, place(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(k), ")")), name))
			}
		}
	case []any:
		for _, it := range a {
			if name := htmlText(str(it)); name != "" {
				h.PointOfInterests = append(h.PointOfInterests, place("", name))
			}
		}
	}
	return nil
}
